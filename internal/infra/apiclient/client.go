// Package apiclient is the shared outbound HTTP client for the explorer's
// remote data sources. Every call passes through a token bucket, a circuit
// breaker and a traced transport, and is recorded in Prometheus.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"country-explorer/internal/observability/logging"
	"country-explorer/internal/observability/metrics"
	"country-explorer/internal/observability/tracing"
	"country-explorer/internal/resilience/circuitbreaker"
)

const (
	maxBodyBytes      = 8 << 20 // 8MB; the full country directory is about 300KB
	maxErrorBodyBytes = 512
	userAgent         = "country-explorer/1.0"
)

// Config configures one Client. One client serves one remote service.
type Config struct {
	// Service names the remote service in logs, metrics and breaker state.
	Service string

	// BaseURL is prefixed to every request path.
	BaseURL string

	// Timeout bounds one request including reading the body.
	Timeout time.Duration

	// RateLimit and Burst configure the outbound token bucket.
	RateLimit float64
	Burst     int

	// Breaker configures the circuit breaker. Its Name is replaced by Service.
	Breaker circuitbreaker.Config

	// Transport overrides the base transport, mainly for tests.
	Transport http.RoundTripper
}

// Client issues GET requests against one remote service.
type Client struct {
	service    string
	baseURL    string
	httpClient *http.Client
	limiter    *RateLimiter
	breaker    *circuitbreaker.CircuitBreaker
}

// New creates a Client for cfg.
func New(cfg Config) *Client {
	breakerCfg := cfg.Breaker
	breakerCfg.Name = cfg.Service
	if breakerCfg.IsSuccessful == nil {
		breakerCfg.IsSuccessful = countsAsHealthy
	}

	return &Client{
		service: cfg.Service,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: tracing.NewTransport(cfg.Transport),
		},
		limiter: NewRateLimiter(cfg.RateLimit, cfg.Burst),
		breaker: circuitbreaker.New(breakerCfg),
	}
}

// Service returns the service name.
func (c *Client) Service() string {
	return c.service
}

// CircuitOpen reports whether the service's breaker is rejecting calls.
func (c *Client) CircuitOpen() bool {
	return c.breaker.IsOpen()
}

// MissingKey records a call that could not be made for lack of a credential
// and returns ErrMissingAPIKey wrapped with the service name.
func (c *Client) MissingKey(envVar string) error {
	metrics.RecordRemoteCall(c.service, "missing_key", 0)
	return fmt.Errorf("%s: %w (set %s)", c.service, ErrMissingAPIKey, envVar)
}

// GetJSON requests baseURL+path with query and decodes a JSON body into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	body, err := c.Get(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		metrics.RecordRemoteCall(c.service, "decode_error", 0)
		return fmt.Errorf("%s %s: %w: %v", c.service, path, ErrDecode, err)
	}
	return nil
}

// Get requests baseURL+path with query and returns the raw body of a 2xx response.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.GetURL(ctx, c.baseURL+path, query)
}

// GetURL requests an absolute URL. Query values are merged into any query the URL already has.
func (c *Client) GetURL(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse url: %w", c.service, err)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	logger := logging.FromContext(ctx).With(
		slog.String("service", c.service),
		slog.String("path", u.Path),
	)

	if err := c.limiter.Allow(ctx); err != nil {
		return nil, fmt.Errorf("%s: rate limit wait: %w", c.service, err)
	}

	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.do(ctx, u.String())
	})
	duration := time.Since(start)

	if err != nil {
		outcome := classify(err)
		metrics.RecordRemoteCall(c.service, outcome, duration)
		logger.Warn("remote call failed",
			slog.String("outcome", outcome),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		if circuitbreaker.IsRejection(err) {
			return nil, fmt.Errorf("%s: circuit open: %w", c.service, err)
		}
		return nil, err
	}

	metrics.RecordRemoteCall(c.service, "success", duration)
	logger.Debug("remote call succeeded", slog.Duration("duration", duration))
	return result.([]byte), nil
}

func (c *Client) do(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", c.service, err)
	}
	req.Header.Set("Accept", "application/json, application/rss+xml, application/xml;q=0.9, */*;q=0.8")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: execute request: %w", c.service, redact(err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &HTTPError{
			Service:    c.service,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", c.service, err)
	}
	return body, nil
}

// countsAsHealthy keeps request-shaped failures (unknown code, bad key, caller
// cancellation) from tripping the breaker.
func countsAsHealthy(err error) bool {
	if err == nil {
		return true
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.IsClientError()
	}
	return errors.Is(err, context.Canceled)
}

func classify(err error) string {
	var httpErr *HTTPError
	var urlErr *url.Error
	switch {
	case circuitbreaker.IsRejection(err):
		return "circuit_open"
	case errors.As(err, &httpErr):
		return "http_error"
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &urlErr) && urlErr.Timeout():
		return "timeout"
	default:
		return "network_error"
	}
}

// redact strips the query string from url.Error values so API keys never reach logs.
func redact(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	if u, perr := url.Parse(urlErr.URL); perr == nil {
		u.RawQuery = ""
		return &url.Error{Op: urlErr.Op, URL: u.String(), Err: urlErr.Err}
	}
	return err
}
