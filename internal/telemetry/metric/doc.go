// Package metric provides Prometheus metrics for pak.
//
//   - prometheus.go: the registry, key and HTTP counters, /metrics handler
//   - collector.go: a collector describing the active generator settings
//
// Metrics live on a private prometheus.Registry so tests can build as many
// as they like without duplicate registration panics.
package metric
