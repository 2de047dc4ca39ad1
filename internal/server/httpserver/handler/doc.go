// Package handler provides HTTP request handlers for pak-server.
//
//   - key.go: issuing, hashing, verifying and inspecting keys
//   - health.go: health and readiness checks
//
// All handlers follow a consistent pattern:
//
//   - Parse and validate request
//   - Call the key service
//   - Format and return response
//   - Map error codes to HTTP status codes
package handler
