// Package farcaster is a rate-limited, circuit-broken client for the fnames
// registry and the Farcaster hub HTTP API.
package farcaster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/followscope/followscope/internal/metrics"
)

// Defaults used when an Option is not supplied.
const (
	DefaultFnamesURL    = "https://fnames.farcaster.xyz"
	DefaultHubURL       = "https://hub.farcaster.standardcrypto.vc:2281"
	DefaultTimeout      = 15 * time.Second
	DefaultRPS          = 20
	DefaultBurst        = 40
	DefaultPageSize     = 1000
	DefaultMaxPages     = 10
	DefaultFIDCacheSize = 4096
	DefaultFIDCacheTTL  = 1 * time.Hour
)

// maxResponseBytes bounds a single upstream response body.
const maxResponseBytes = 16 << 20

// HTTPDoer allows injecting a custom HTTP client in tests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the fnames registry and a Farcaster hub.
type Client struct {
	fnamesURL  string
	hubURL     string
	apiKey     string
	httpClient HTTPDoer
	limiter    *rate.Limiter
	fnames     *gobreaker.CircuitBreaker
	hub        *gobreaker.CircuitBreaker
	fids       *expirable.LRU[string, uint64]
	log        *logrus.Logger
	pageSize   int
	maxPages   int
	rps        float64
	burst      int
	cacheSize  int
	cacheTTL   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithFnamesURL overrides the fnames registry base URL.
func WithFnamesURL(u string) Option {
	return func(c *Client) { c.fnamesURL = u }
}

// WithHubURL overrides the hub base URL.
func WithHubURL(u string) Option {
	return func(c *Client) { c.hubURL = u }
}

// WithAPIKey sets the hub API key, sent as the api_key header.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc HTTPDoer) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit caps upstream requests per second across all endpoints.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		c.rps = rps
		c.burst = burst
	}
}

// WithPaging sets the link page size and the maximum pages fetched per FID.
func WithPaging(pageSize, maxPages int) Option {
	return func(c *Client) {
		c.pageSize = pageSize
		c.maxPages = maxPages
	}
}

// WithFIDCache sizes the username to FID cache.
func WithFIDCache(size int, ttl time.Duration) Option {
	return func(c *Client) {
		c.cacheSize = size
		c.cacheTTL = ttl
	}
}

// New creates a Client.
func New(log *logrus.Logger, opts ...Option) *Client {
	c := &Client{
		fnamesURL:  DefaultFnamesURL,
		hubURL:     DefaultHubURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        log,
		pageSize:   DefaultPageSize,
		maxPages:   DefaultMaxPages,
		rps:        DefaultRPS,
		burst:      DefaultBurst,
		cacheSize:  DefaultFIDCacheSize,
		cacheTTL:   DefaultFIDCacheTTL,
	}
	for _, o := range opts {
		o(c)
	}

	c.limiter = rate.NewLimiter(rate.Limit(c.rps), c.burst)
	c.fnames = newBreaker("fnames", log)
	c.hub = newBreaker("hub", log)
	c.fids = expirable.NewLRU[string, uint64](c.cacheSize, nil, c.cacheTTL)

	return c
}

func newBreaker(name string, log *logrus.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}

			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"upstream": name,
				"from":     from.String(),
				"to":       to.String(),
			}).Warn("upstream circuit breaker state changed")
		},
		// 4xx answers mean the upstream is healthy; only transport errors and
		// 5xx count against it.
		IsSuccessful: func(err error) bool {
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return apiErr.StatusCode < http.StatusInternalServerError
			}

			return err == nil || errors.Is(err, context.Canceled)
		},
	})
}

// getJSON performs a rate-limited, circuit-broken GET and decodes the JSON body.
func (c *Client) getJSON(ctx context.Context, cb *gobreaker.CircuitBreaker, endpoint, base, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", err)
	}

	start := time.Now()

	_, err := cb.Execute(func() (any, error) {
		return nil, c.do(ctx, endpoint, base, path, params, out)
	})

	outcome := "ok"

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		outcome = "circuit_open"
		err = fmt.Errorf("%s: %w", endpoint, ErrUnavailable)
	case err != nil:
		outcome = "error"
	}

	metrics.UpstreamDuration.WithLabelValues(endpoint, outcome).Observe(time.Since(start).Seconds())

	return err
}

func (c *Client) do(ctx context.Context, endpoint, base, path string, params url.Values, out any) error {
	u := base + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api_key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s read response: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(endpoint, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s decode response: %w", endpoint, err)
	}

	return nil
}
