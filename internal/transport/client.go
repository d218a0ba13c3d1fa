// Package transport issues the raw GET requests provider pipelines need and
// hands back generic JSON documents.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/weather-forecast-collection/internal/common"
	"github.com/i474232898/weather-forecast-collection/internal/forecast"
)

// Config bundles HTTP client and resilience settings for one provider.
type Config struct {
	Timeout time.Duration
	// RPS limits outgoing requests; zero disables limiting.
	RPS     float64
	Burst   int
	Backoff BackoffConfig
}

// DefaultConfig returns settings suitable for the public weather APIs.
func DefaultConfig() Config {
	return Config{
		Timeout: 10 * time.Second,
		RPS:     5,
		Burst:   5,
		Backoff: DefaultBackoff,
	}
}

// Client implements forecast.Fetcher for a single provider. Each provider gets
// its own circuit breaker and rate limiter.
type Client struct {
	provider string
	http     *http.Client
	backoff  BackoffConfig
	circuit  *gobreaker.CircuitBreaker
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// New creates a Client for provider. A nil httpClient gets one with cfg.Timeout.
func New(provider string, httpClient *http.Client, cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RPS > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), burst)
	}
	logger = logger.With("provider", provider)

	return &Client{
		provider: provider,
		http:     httpClient,
		backoff:  cfg.Backoff,
		circuit:  newCircuitBreaker(provider, logger),
		limiter:  limiter,
		logger:   logger,
	}
}

// Fetch performs the GET and decodes the JSON body. Every failure before a
// document is available is reported as forecast.ErrTransport.
func (c *Client) Fetch(ctx context.Context, req forecast.Request) (any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, forecast.TransportFailure(c.provider, req.Endpoint, 0, fmt.Errorf("rate limit wait canceled: %w", err))
	}

	start := time.Now()
	resp, err := doRequestWithResilience(ctx, c.http, c.backoff, c.circuit, c.logger,
		func(ctx context.Context) (*http.Request, error) {
			r, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL(), nil)
			if err != nil {
				return nil, err
			}
			for k, vs := range req.Header {
				for _, v := range vs {
					r.Header.Add(k, v)
				}
			}
			if r.Header.Get("Accept") == "" {
				r.Header.Set("Accept", "application/json")
			}
			return r, nil
		})
	if err != nil {
		var se *statusError
		status := 0
		if errors.As(err, &se) {
			status = se.code
		}
		c.logger.Warn("request failed", "endpoint", req.Endpoint, "status", status, "error", err)
		return nil, forecast.TransportFailure(c.provider, req.Endpoint, status, err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); common.HasAny(ct, "html", "xml") {
		return nil, forecast.Malformed(c.provider, "", "unexpected content type %q", ct)
	}

	var doc any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, &forecast.Error{
			Kind:     forecast.ErrMalformedResponse,
			Provider: c.provider,
			Msg:      "response body is not JSON",
			Err:      err,
		}
	}

	c.logger.Debug("request completed", "endpoint", req.Endpoint, "status", resp.StatusCode, "elapsed", time.Since(start))
	return doc, nil
}

var _ forecast.Fetcher = (*Client)(nil)
