package httpserver

import (
	"net/http"
	"net/netip"

	"github.com/yndnr/pak-go/internal/core/service"
	"github.com/yndnr/pak-go/internal/server/httpserver/handler"
	"github.com/yndnr/pak-go/internal/telemetry/logger"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// KeyService issues and verifies keys.
	KeyService *service.KeyService

	// Logger for request logging.
	Logger logger.Logger

	// Observer receives per-request metrics. May be nil.
	Observer RequestObserver

	// MetricsHandler serves GET /metrics. Nil disables the endpoint.
	MetricsHandler http.Handler

	// MetricsToken, when set, is required as a bearer token on /metrics.
	MetricsToken string

	// RateLimit is the per client IP rate (requests/second). Zero disables it.
	RateLimit float64

	// RateBurst is the token bucket size for RateLimit.
	RateBurst int

	// TrustedProxies are the peers whose forwarding headers name the client.
	TrustedProxies []netip.Prefix

	// Ready reports readiness for GET /ready. Nil means always ready.
	Ready func() error
}

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	var opts []handler.Option
	if cfg.Ready != nil {
		opts = append(opts, handler.WithReadiness(cfg.Ready))
	}
	h := handler.New(cfg.KeyService, log, opts...)

	// Order: Recover -> RequestID -> ClientIP -> RateLimit -> Audit -> Handler
	middlewares := []Middleware{Recover(log), RequestID(), ClientIP(cfg.TrustedProxies)}
	if cfg.RateLimit > 0 {
		middlewares = append(middlewares, RateLimit(cfg.RateLimit, max(cfg.RateBurst, 1)))
	}
	middlewares = append(middlewares, Audit(log, cfg.Observer))

	mux := http.NewServeMux()
	mux.Handle("/", Chain(h, middlewares...))

	if cfg.MetricsHandler != nil {
		mux.Handle("GET /metrics", Chain(cfg.MetricsHandler,
			Recover(log),
			RequestID(),
			MetricsAuth(cfg.MetricsToken),
		))
	}

	return mux
}
