package connection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yndnr/pak-go/internal/infra/buildinfo"
	"github.com/yndnr/pak-go/internal/server/httpserver/handler"
)

// DefaultTimeout bounds every request made by HTTPClient.
const DefaultTimeout = 30 * time.Second

// APIError is an error envelope returned by the server.
type APIError struct {
	Status    int
	Code      string
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// HTTPClient provides HTTP communication with the server.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a new HTTP client. A server address without a
// scheme is taken as plain HTTP.
func NewHTTPClient(server string) *HTTPClient {
	baseURL := strings.TrimRight(server, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}

	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
}

// BaseURL returns the base URL of the client.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.addHeaders(req)
	return c.client.Do(req)
}

// Post performs a POST request with JSON body.
func (c *HTTPClient) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.addHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.client.Do(req)
}

func (c *HTTPClient) addHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "pak-cli/"+buildinfo.Version)
	req.Header.Set("Accept", "application/json")
}

// Health calls GET /health and returns the reported status.
func (c *HTTPClient) Health(ctx context.Context) (map[string]string, error) {
	resp, err := c.Get(ctx, "/health")
	if err != nil {
		return nil, err
	}
	var status map[string]string
	if err := ParseResponse(resp, &status); err != nil {
		return nil, err
	}
	return status, nil
}

// IssueKeys asks the server for count new keys.
func (c *HTTPClient) IssueKeys(ctx context.Context, count int) ([]handler.IssuedKeyResponse, error) {
	resp, err := c.Post(ctx, "/v1/keys", handler.IssueKeysRequest{Count: count})
	if err != nil {
		return nil, err
	}
	var out handler.IssueKeysResponse
	if err := ParseResponse(resp, &out); err != nil {
		return nil, err
	}
	return out.Keys, nil
}

// Hash asks the server for the hash of key.
func (c *HTTPClient) Hash(ctx context.Context, key string) (string, error) {
	resp, err := c.Post(ctx, "/v1/keys/hash", handler.KeyRequest{Key: key})
	if err != nil {
		return "", err
	}
	var out handler.HashKeyResponse
	if err := ParseResponse(resp, &out); err != nil {
		return "", err
	}
	return out.Hash, nil
}

// Verify asks the server whether hash belongs to key.
func (c *HTTPClient) Verify(ctx context.Context, key, hash string) (bool, error) {
	resp, err := c.Post(ctx, "/v1/keys/verify", handler.VerifyKeyRequest{Key: key, Hash: hash})
	if err != nil {
		return false, err
	}
	var out handler.VerifyKeyResponse
	if err := ParseResponse(resp, &out); err != nil {
		return false, err
	}
	return out.Match, nil
}

// ParseResponse decodes the envelope's data field into target and closes
// the body. Error statuses become *APIError.
func ParseResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	var envelope struct {
		Code      string          `json:"code"`
		Message   string          `json:"message"`
		RequestID string          `json:"request_id"`
		Data      json.RawMessage `json:"data"`
	}
	decodeErr := json.NewDecoder(resp.Body).Decode(&envelope)

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Code = envelope.Code
			apiErr.Message = envelope.Message
			apiErr.RequestID = envelope.RequestID
		}
		return apiErr
	}

	if decodeErr != nil {
		return fmt.Errorf("parse response: %w", decodeErr)
	}
	if target != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, target); err != nil {
			return fmt.Errorf("parse response data: %w", err)
		}
	}
	return nil
}
