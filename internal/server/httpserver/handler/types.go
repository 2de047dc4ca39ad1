package handler

import "time"

// Response is the standard API response envelope.
// All JSON responses use this format (except /metrics which uses Prometheus format).
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Details   any    `json:"details,omitempty"`
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string, details any) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
}

// IssueKeysRequest is the request body for POST /v1/keys.
// An empty body issues one key.
type IssueKeysRequest struct {
	Count int `json:"count,omitempty"`
}

// IssuedKeyResponse is one generated key. Key is shown only once.
type IssuedKeyResponse struct {
	Key        string `json:"key"`
	Prefix     string `json:"prefix"`
	ShortToken string `json:"short_token"`
	Hash       string `json:"hash"`
}

// IssueKeysResponse is the response body for POST /v1/keys.
type IssueKeysResponse struct {
	Keys []IssuedKeyResponse `json:"keys"`
}

// KeyRequest is the request body for POST /v1/keys/hash and /v1/keys/inspect.
type KeyRequest struct {
	Key string `json:"key"`
}

// HashKeyResponse is the response body for POST /v1/keys/hash.
type HashKeyResponse struct {
	Hash string `json:"hash"`
}

// VerifyKeyRequest is the request body for POST /v1/keys/verify.
type VerifyKeyRequest struct {
	Key  string `json:"key"`
	Hash string `json:"hash"`
}

// VerifyKeyResponse is the response body for POST /v1/keys/verify.
type VerifyKeyResponse struct {
	Match bool `json:"match"`
}
