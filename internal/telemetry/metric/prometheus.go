package metric

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pak"

// Hash check results used as the "result" label.
const (
	ResultMatch    = "match"
	ResultMismatch = "mismatch"
)

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	KeysIssued         prometheus.Counter
	HashChecks         *prometheus.CounterVec
	RandomnessFailures prometheus.Counter
	MalformedKeys      prometheus.Counter

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewRegistry creates a registry with the pak metrics plus the Go runtime
// and process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		KeysIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keys_issued_total",
			Help:      "Number of API keys generated.",
		}),
		HashChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hash_checks_total",
			Help:      "Number of key hash verifications by result.",
		}, []string{"result"}),
		RandomnessFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "randomness_failures_total",
			Help:      "Number of key generations that failed to draw randomness.",
		}),
		MalformedKeys: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "malformed_keys_total",
			Help:      "Number of key texts rejected by the parser.",
		}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests by path and status code.",
		}, []string{"path", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.KeysIssued,
		r.HashChecks,
		r.RandomnessFailures,
		r.MalformedKeys,
		r.RequestsTotal,
		r.RequestDuration,
	)
	return r
}

// Register adds extra collectors, such as a generator Collector.
func (r *Registry) Register(cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := r.registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Gatherer exposes the underlying registry for tests and custom exporters.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// IncKeysIssued counts one generated key.
func (r *Registry) IncKeysIssued() {
	r.KeysIssued.Inc()
}

// ObserveHashCheck counts one verification.
func (r *Registry) ObserveHashCheck(match bool) {
	result := ResultMismatch
	if match {
		result = ResultMatch
	}
	r.HashChecks.WithLabelValues(result).Inc()
}

// IncRandomnessFailures counts one failed draw from the random source.
func (r *Registry) IncRandomnessFailures() {
	r.RandomnessFailures.Inc()
}

// IncMalformedKeys counts one rejected key text.
func (r *Registry) IncMalformedKeys() {
	r.MalformedKeys.Inc()
}

// ObserveRequest records one finished HTTP request.
func (r *Registry) ObserveRequest(path string, status int, elapsed time.Duration) {
	r.RequestsTotal.WithLabelValues(path, strconv.Itoa(status)).Inc()
	r.RequestDuration.WithLabelValues(path).Observe(elapsed.Seconds())
}
