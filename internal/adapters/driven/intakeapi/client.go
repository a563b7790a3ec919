package intakeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driven"
	"github.com/custodia-labs/docintake/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.IntakeAPI = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = domain.DefaultServerURL
	DefaultTimeout = domain.DefaultServerTimeout

	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 32 << 20

	// breakerOpenTimeout is how long the breaker stays open before
	// letting a trial request through.
	breakerOpenTimeout = 30 * time.Second
)

// ErrCircuitOpen is wrapped in the TransportError returned while the
// breaker rejects requests.
var ErrCircuitOpen = errors.New("service unavailable, circuit open")

// Config holds configuration for the intake API client.
type Config struct {
	// BaseURL is the service root (default: http://localhost:8000).
	BaseURL string

	// Timeout bounds every request (default: 120s).
	Timeout time.Duration

	// RequestsPerSecond throttles requests. Zero disables throttling.
	RequestsPerSecond float64

	// BreakerFailures is the number of consecutive failures that opens
	// the circuit. Zero disables the breaker.
	BreakerFailures int

	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// ConfigFromSettings maps application settings onto a client config.
func ConfigFromSettings(s domain.AppSettings) Config {
	return Config{
		BaseURL:           s.ServerURL,
		Timeout:           s.Timeout,
		RequestsPerSecond: s.RequestsPerSecond,
		BreakerFailures:   s.BreakerFailures,
	}
}

// Client talks to the document intake service.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// New creates a new intake API client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	c := &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}

	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	if cfg.BreakerFailures > 0 {
		threshold := uint32(cfg.BreakerFailures)
		c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:        "intake-api",
			MaxRequests: 1,
			Timeout:     breakerOpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			IsSuccessful: countsAsSuccess,
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("Circuit breaker %s: %s -> %s", name, from, to)
			},
		})
	}

	return c
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// countsAsSuccess keeps client errors (4xx) from tripping the breaker;
// only faults and server errors count against the service.
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	var te *domain.TransportError
	if errors.As(err, &te) {
		return te.StatusCode >= 400 && te.StatusCode < 500
	}
	return false
}

// do sends req once and returns the body of a 2xx response.
func (c *Client) do(op string, req *http.Request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, &domain.TransportError{Op: op, Err: err}
		}
	}

	if c.breaker == nil {
		return c.roundTrip(op, req)
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.roundTrip(op, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &domain.TransportError{Op: op, Err: fmt.Errorf("%w: %w", ErrCircuitOpen, err)}
	}
	return body, err
}

func (c *Client) roundTrip(op string, req *http.Request) ([]byte, error) {
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")

	logger.Debug("%s %s [%s]", req.Method, req.URL.Path, requestID)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &domain.TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	logger.Debug("%s %s -> %d in %s", req.Method, req.URL.Path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		te := &domain.TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(body),
		}
		if resp.StatusCode == http.StatusNotFound {
			te.Err = domain.ErrNotFound
		}
		return nil, te
	}
	return body, nil
}

// errorDetail extracts the "detail" member of an error body. Non-string
// details, such as validation error lists, are returned as compact JSON.
func errorDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}
	if string(payload.Detail) == "null" {
		return ""
	}
	return string(payload.Detail)
}

// decodeError wraps a malformed success body.
func decodeError(op string, err error) error {
	return &domain.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
}

// newRequest builds a request against the service root.
func (c *Client) newRequest(ctx context.Context, op, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	return req, nil
}
