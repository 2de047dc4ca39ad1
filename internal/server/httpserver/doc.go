// Package httpserver provides the HTTP/HTTPS server for pak-server.
//
// This package exposes the key service using stdlib net/http:
//
//   - Key endpoints: POST /v1/keys, /v1/keys/hash, /v1/keys/verify, /v1/keys/inspect
//   - Health endpoints: /health, /ready
//   - Metrics endpoint: /metrics, optionally behind a bearer token
//
// Features:
//
//   - TLS when a certificate and key are configured
//   - Middleware chain: Recover, RequestID, RateLimit, Audit
//   - Graceful shutdown with configurable timeout
//   - Prometheus metrics integration
package httpserver
