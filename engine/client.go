package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ftahirops/ncdadvisor/model"
	"github.com/google/uuid"
)

// DefaultEndpoint is the analysis service the client talks to unless
// configured otherwise.
const DefaultEndpoint = "http://127.0.0.1:8000/analyze"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

var (
	// ErrBackendUnavailable covers every transport failure: connection
	// errors, timeouts and non-2xx statuses.
	ErrBackendUnavailable = errors.New("analysis backend unavailable")
	// ErrMalformedResponse is returned when a 2xx body is not an analysis
	// result.
	ErrMalformedResponse = errors.New("malformed analysis response")
)

// Analyzer submits form values for analysis.
type Analyzer interface {
	Analyze(ctx context.Context, in model.FormInput) (*model.AnalysisResult, error)
}

type requestIDKey struct{}

// WithRequestID attaches the submission ID sent as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the submission ID carried by ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// NewRequestID returns a fresh submission ID.
func NewRequestID() string {
	return uuid.NewString()
}

// Client posts form values to the analysis service.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a client for endpoint. A zero timeout leaves the request
// unbounded: it waits until the transport gives up or ctx is cancelled.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

// Analyze sends one POST with in as the JSON body. Values are sent as the
// strings the user typed. There is no retry.
func (c *Client) Analyze(ctx context.Context, in model.FormInput) (*model.AnalysisResult, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	id := RequestID(ctx)
	if id == "" {
		id = NewRequestID()
	}
	req.Header.Set("X-Request-ID", id)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		slog.Warn("analysis request failed", "request_id", id, "endpoint", c.endpoint, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrBackendUnavailable, err)
	}
	slog.Debug("analysis response", "request_id", id, "status", resp.StatusCode,
		"bytes", len(data), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrBackendUnavailable, resp.StatusCode)
	}

	result, err := model.DecodeAnalysisResult(data)
	if err != nil {
		slog.Warn("analysis response rejected", "request_id", id, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return result, nil
}
