// api/provenance/client.go
package provenance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	logger "github.com/anish-goyal/finboard/api/logging"
)

// CorrelationHeader is the well-known request header carrying the per-call
// correlation identifier, so server-side logs can be joined to client-side
// decisions.
const CorrelationHeader = "X-Correlation-ID"

// Response bodies may spell the identifier either way.
const (
	correlationFieldCamel = "correlationId"
	correlationFieldSnake = "correlation_id"
)

// CallInfo describes a completed call: the identifier we sent and the one
// the backend echoed or generated.
type CallInfo struct {
	CorrelationID         string
	ResponseCorrelationID string
	Status                int
}

// Client performs outbound calls while enforcing that every response is
// attributable to the request that produced it. It is single-attempt and
// fail-fast: no retries, no backoff, no default timeout. Retries are a
// caller policy and must generate a fresh correlation identifier per attempt.
// Callers bound latency through the context deadline; cancellation surfaces
// as a transport failure and is never a distinct error kind.
type Client struct {
	httpClient *http.Client
	newID      func() string
}

// NewClient creates a provenance-enforcing client. A nil httpClient falls
// back to http.DefaultClient.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		newID:      uuid.NewString,
	}
}

// CallOption adjusts a single call.
type CallOption func(*callConfig)

type callConfig struct {
	correlationID string
	header        http.Header
}

// WithCorrelationID supplies a caller-generated correlation identifier
// instead of a fresh one.
func WithCorrelationID(id string) CallOption {
	return func(cfg *callConfig) {
		cfg.correlationID = id
	}
}

// WithHeader adds a request header to the call.
func WithHeader(key, value string) CallOption {
	return func(cfg *callConfig) {
		cfg.header.Set(key, value)
	}
}

// Call performs a single outbound HTTP call and decodes the response body
// into out (out may be nil to discard it). The contract, in order:
//
//  1. a correlation identifier is attached to the request;
//  2. transport failures wrap ErrTransport;
//  3. non-JSON bodies wrap ErrMalformedBody;
//  4. a body without a correlation identifier raises *ProvenanceError,
//     regardless of HTTP status; a 200 is not trusted merely for being 200;
//  5. a non-2xx status with the identifier present raises *HTTPError;
//  6. on success the parsed body is returned through out.
//
// Provenance is checked before success/failure branching so a passing status
// can never mask a missing identifier.
func (c *Client) Call(ctx context.Context, method, url string, body interface{}, out interface{}, opts ...CallOption) (*CallInfo, error) {
	cfg := &callConfig{header: http.Header{}}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.correlationID == "" {
		cfg.correlationID = c.newID()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	for key, values := range cfg.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set(CorrelationHeader, cfg.correlationID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response from %s: %v", ErrTransport, url, err)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: response from %s is not a JSON object: %v", ErrMalformedBody, url, err)
	}

	// Provenance is the outer invariant: checked unconditionally, before the
	// status is even considered.
	responseID := extractCorrelationID(envelope)
	if responseID == "" {
		logger.Error("Response carries no correlation identifier",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
			zap.String("correlationID", cfg.correlationID))
		return nil, &ProvenanceError{
			URL:           url,
			Status:        resp.StatusCode,
			CorrelationID: cfg.correlationID,
		}
	}

	info := &CallInfo{
		CorrelationID:         cfg.correlationID,
		ResponseCorrelationID: responseID,
		Status:                resp.StatusCode,
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return info, &HTTPError{
			Status:        resp.StatusCode,
			Message:       extractErrorMessage(envelope),
			CorrelationID: responseID,
		}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return info, fmt.Errorf("%w: decoding response from %s: %v", ErrMalformedBody, url, err)
		}
	}

	logger.Debug("Provenance-checked call completed",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.String("correlationID", cfg.correlationID))
	return info, nil
}

func extractCorrelationID(envelope map[string]json.RawMessage) string {
	for _, field := range []string{correlationFieldCamel, correlationFieldSnake} {
		raw, ok := envelope[field]
		if !ok {
			continue
		}
		var id string
		if err := json.Unmarshal(raw, &id); err == nil && id != "" {
			return id
		}
	}
	return ""
}

func extractErrorMessage(envelope map[string]json.RawMessage) string {
	for _, field := range []string{"message", "error"} {
		raw, ok := envelope[field]
		if !ok {
			continue
		}
		var msg string
		if err := json.Unmarshal(raw, &msg); err == nil && msg != "" {
			return msg
		}
	}
	return ""
}
