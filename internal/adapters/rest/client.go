// Package rest implements the typed resource client for the tracking
// backend. One method per (resource, verb) pair; every call attaches
// the session's bearer token and surfaces non-2xx responses as
// *APIError with the backend's message when the body carries one.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crewdeck/crewdeck/internal/infrastructure/logger"
	"github.com/crewdeck/crewdeck/internal/ports"
)

// maxErrorBody bounds how much of an error response body is read when
// extracting a message.
const maxErrorBody = 64 * 1024

// genericErrorMessage is the fallback shown when the backend gives no
// structured message.
const genericErrorMessage = "request failed"

// APIError is a non-2xx backend response.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", genericErrorMessage, e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to the backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    ports.SessionStore
	logger     *logger.Logger
}

var _ ports.ResourceClient = (*Client)(nil)

// NewClient creates a resource client. The session store supplies the
// bearer token on every request, so sign-in and sign-out take effect
// without rebuilding the client.
func NewClient(baseURL string, timeout time.Duration, session ports.SessionStore, log *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		session:    session,
		logger:     log.WithComponent("rest"),
	}
}

// do issues one request and decodes the JSON response into out when
// out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.session.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.LogAPICall(method, path, requestID, 0, durationMS(start), err)
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	c.logger.LogAPICall(method, path, requestID, resp.StatusCode, durationMS(start), nil)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(resp.Body),
			RequestID:  requestID,
		}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			// Some mutations answer with an empty body; callers fall
			// back to their local copy.
			return nil
		}
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// extractMessage pulls the human-readable message out of an error
// body, tolerating both {"message": ...} and {"error": ...} shapes.
func extractMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

func durationMS(start time.Time) float64 {
	return float64(time.Since(start).Nanoseconds()) / 1e6
}
