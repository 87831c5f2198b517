package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/rshade/postdeck/internal/cache"
	"github.com/rshade/postdeck/internal/logging"
)

// Client defaults.
const (
	DefaultTimeout = 10 * time.Second

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 4 << 20

	// breakerFailureThreshold trips the breaker after this many consecutive failures.
	breakerFailureThreshold = 3
	breakerOpenTimeout      = 30 * time.Second
	breakerInterval         = 60 * time.Second
)

// ResponseCache stores raw GET response bodies. *cache.FileStore satisfies it.
type ResponseCache interface {
	Get(key string) (*cache.Entry, error)
	Set(key string, data json.RawMessage) error
	Delete(key string) error
	Clear() error
}

// Options configures a Client.
type Options struct {
	// BaseURL is the backend root, e.g. http://localhost:5001.
	BaseURL string

	// Timeout bounds every request. Zero means DefaultTimeout.
	Timeout time.Duration

	// UserAgent is sent on every request.
	UserAgent string

	// HTTPClient overrides the transport. Its Timeout is left untouched.
	HTTPClient *http.Client

	// Logger receives request logs. The zero value discards.
	Logger zerolog.Logger

	// Registerer receives the client's collectors. Nil uses a private registry.
	Registerer prometheus.Registerer

	// Cache serves GET responses when set.
	Cache ResponseCache
}

// Client talks to the users/posts backend.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    zerolog.Logger
	breaker   *gobreaker.CircuitBreaker
	metrics   *clientMetrics
	cache     ResponseCache
}

// NewClient validates opts and builds a Client.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, errors.New("api base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base URL %q: %w", opts.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base URL %q: scheme must be http or https", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "postdeck"
	}

	c := &Client{
		baseURL:   base,
		http:      httpClient,
		userAgent: userAgent,
		logger:    opts.Logger.With().Str("component", "api").Logger(),
		metrics:   newClientMetrics(reg),
		cache:     opts.Cache,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "backend",
		MaxRequests: 1,
		Interval:    breakerInterval,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		IsSuccessful: breakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.metrics.breaker.Set(float64(to))
			c.logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})

	return c, nil
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// breakerSuccess counts client-side rejections (4xx) and cancellations as
// successes so only an unhealthy backend opens the circuit.
func breakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return !apiErr.IsServerError()
	}
	return false
}

// request describes one backend call.
type request struct {
	endpoint string // metrics label, e.g. "users.list"
	method   string
	path     string
	query    url.Values
	body     any
}

func (r request) pathWithQuery() string {
	if len(r.query) == 0 {
		return r.path
	}
	return r.path + "?" + r.query.Encode()
}

// call performs r and decodes the envelope data into T. It returns the
// envelope message alongside the data.
func call[T any](ctx context.Context, c *Client, r request) (T, string, error) {
	var zero T

	cacheKey := ""
	if c.cache != nil && r.method == http.MethodGet {
		cacheKey = cache.Key(r.method, r.pathWithQuery())
		if entry, err := c.cache.Get(cacheKey); err == nil {
			if data, msg, decodeErr := decodeEnvelope[T](http.StatusOK, entry.Data); decodeErr == nil {
				c.metrics.requests.WithLabelValues(r.endpoint, outcomeCacheHit).Inc()
				c.logger.Debug().
					Str("endpoint", r.endpoint).
					Dur("age", entry.Age()).
					Dur("expires_in", entry.TimeUntilExpiration()).
					Msg("served from cache")
				return data, msg, nil
			}
		}
	}

	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.send(ctx, r)
	})
	c.metrics.latency.WithLabelValues(r.endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}
		c.metrics.requests.WithLabelValues(r.endpoint, outcomeFor(err)).Inc()
		c.logger.Debug().Err(err).Str("endpoint", r.endpoint).Msg("request failed")
		return zero, "", err
	}

	raw, ok := result.(rawResponse)
	if !ok {
		return zero, "", fmt.Errorf("unexpected response type %T", result)
	}

	data, msg, err := decodeEnvelope[T](raw.status, raw.body)
	c.metrics.requests.WithLabelValues(r.endpoint, outcomeFor(err)).Inc()
	if err != nil {
		return zero, "", err
	}

	if cacheKey != "" {
		if setErr := c.cache.Set(cacheKey, raw.body); setErr != nil {
			c.logger.Debug().Err(setErr).Msg("cache write failed")
		}
	}
	return data, msg, nil
}

type rawResponse struct {
	status int
	body   []byte
}

// send executes the HTTP exchange. A parseable failed envelope or a 5xx
// status is returned as an error so the breaker sees it.
func (c *Client) send(ctx context.Context, r request) (rawResponse, error) {
	target := c.baseURL.JoinPath(r.path)
	target.RawQuery = r.query.Encode()

	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return rawResponse{}, fmt.Errorf("encoding %s body: %w", r.endpoint, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target.String(), body)
	if err != nil {
		return rawResponse{}, fmt.Errorf("building %s request: %w", r.endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if id := logging.TraceIDFromContext(ctx); id != "" {
		req.Header.Set(logging.TraceIDHeader, id)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug().
		Str("method", r.method).
		Str("url", target.String()).
		Msg("sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return rawResponse{}, ctxErr
		}
		return rawResponse{}, &NetworkError{Op: r.method + " " + r.path, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return rawResponse{}, &NetworkError{Op: "reading " + r.path, Err: err}
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		_, _, envErr := decodeEnvelope[json.RawMessage](resp.StatusCode, payload)
		return rawResponse{}, envErr
	}

	return rawResponse{status: resp.StatusCode, body: payload}, nil
}

// decodeEnvelope unwraps body. success=false fails regardless of status, and
// a 4xx/5xx status fails regardless of the envelope.
func decodeEnvelope[T any](status int, body []byte) (T, string, error) {
	var env Envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		var zero T
		if status >= http.StatusBadRequest {
			return zero, "", &APIError{StatusCode: status}
		}
		return zero, "", &APIError{StatusCode: status, Message: "malformed response from backend"}
	}

	if !env.Success || status >= http.StatusBadRequest {
		var zero T
		return zero, "", &APIError{StatusCode: status, Message: env.Message}
	}
	return env.Data, env.Message, nil
}

func outcomeFor(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, ErrCircuitOpen):
		return outcomeOpen
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCancelled
	case errors.Is(err, ErrNetworkFailure):
		return outcomeNetwork
	default:
		return outcomeAPIError
	}
}

// invalidate drops a cached GET response after a mutation.
func (c *Client) invalidate(path string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(cache.Key(http.MethodGet, path)); err != nil {
		c.logger.Debug().Err(err).Str("path", path).Msg("cache invalidation failed")
	}
}

// invalidateAll drops every cached response.
func (c *Client) invalidateAll() {
	if c.cache == nil {
		return
	}
	if err := c.cache.Clear(); err != nil {
		c.logger.Debug().Err(err).Msg("cache clear failed")
	}
}
