package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/yndnr/pak-go/internal/core/service"
	"github.com/yndnr/pak-go/internal/telemetry/logger"
	"github.com/yndnr/pak-go/pkg/pak"
)

// maxBodyBytes bounds request bodies. Key requests are tiny.
const maxBodyBytes = 64 << 10

// Handler routes key and health requests.
type Handler struct {
	keys   *service.KeyService
	logger logger.Logger
	ready  func() error
	mux    *http.ServeMux
}

// Option configures a Handler.
type Option func(*Handler)

// WithReadiness sets the check behind GET /ready. A non-nil error reports
// the server as not ready.
func WithReadiness(check func() error) Option {
	return func(h *Handler) {
		h.ready = check
	}
}

// New creates a Handler serving keys.
func New(keys *service.KeyService, log logger.Logger, opts ...Option) *Handler {
	if log == nil {
		log = logger.Default()
	}
	h := &Handler{
		keys:   keys,
		logger: log,
		ready:  func() error { return nil },
		mux:    http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("GET /ready", h.handleReady)

	h.mux.HandleFunc("POST /v1/keys", h.handleIssueKeys)
	h.mux.HandleFunc("POST /v1/keys/hash", h.handleHashKey)
	h.mux.HandleFunc("POST /v1/keys/verify", h.handleVerifyKey)
	h.mux.HandleFunc("POST /v1/keys/inspect", h.handleInspectKey)
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return service.ErrInvalidArgument.WithDetails("invalid request body").WithCause(err)
	}
	return nil
}

// writeJSON writes a JSON response with standard envelope format.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := logger.RequestIDFromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(NewResponse(requestID, data)); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response with standard envelope format.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, code, message string) {
	requestID := logger.RequestIDFromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(StatusForCode(code))
	json.NewEncoder(w).Encode(NewErrorResponse(requestID, code, message, nil))
}

// handleServiceError converts service errors to HTTP responses.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	code := pak.ErrorCode(err)
	if code == "" {
		logger.L(r.Context()).Error("internal error", "error", err)
		h.writeError(w, r, service.ErrInternal.Code, service.ErrInternal.Message)
		return
	}

	if StatusForCode(code) >= http.StatusInternalServerError {
		// Causes of server side failures stay in the log.
		logger.L(r.Context()).Error("request failed", "error", err)
		var pe *pak.Error
		if errors.As(err, &pe) {
			h.writeError(w, r, code, pe.Message)
			return
		}
	}
	// Messages may quote the submitted key.
	h.writeError(w, r, code, logger.RedactString(err.Error()))
}

// StatusForCode maps an error code to an HTTP status code.
func StatusForCode(code string) int {
	switch {
	case strings.HasSuffix(code, "-4290"):
		return http.StatusTooManyRequests
	case strings.HasPrefix(code, "PAK-KEY-"), strings.HasPrefix(code, "PAK-ARG-"):
		return http.StatusBadRequest
	case strings.HasPrefix(code, "PAK-RNG-"):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
