// Package connection provides the HTTP client pak-cli uses to reach a
// running pak-server.
//
// Responses arrive in the server's standard envelope; ParseResponse
// unwraps the data field and turns error envelopes into *APIError.
package connection
