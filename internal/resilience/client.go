package resilience

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
)

// Client is the uniform wrapper around every call to the external inference
// provider: per-attempt timeout, retry with exponential backoff on transient
// failures, per-endpoint circuit breaking, and optional rate limiting. It is
// the only code path allowed to reach the provider.
type Client struct {
	breakers   *BreakerSet
	limiter    *rate.Limiter // nil disables rate limiting
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	logger     arbor.ILogger
}

// Options configures a resilience client
type Options struct {
	Timeout          time.Duration // Per-attempt bound (default 12s)
	MaxRetries       int           // Retries after the first attempt (default 3)
	Backoff          time.Duration // Initial backoff, doubled each retry (default 1s)
	FailureThreshold int           // Circuit opens at this many consecutive failures (default 5)
	ResetWindow      time.Duration // Half-open trial permitted after this elapses (default 60s)
	RatePerSecond    float64       // 0 disables rate limiting
}

// NewClient creates a resilience client with its own breaker set
func NewClient(opts Options, logger arbor.ILogger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 12 * time.Second
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 3
	}
	if opts.Backoff <= 0 {
		opts.Backoff = time.Second
	}
	if opts.FailureThreshold <= 0 {
		opts.FailureThreshold = 5
	}
	if opts.ResetWindow <= 0 {
		opts.ResetWindow = 60 * time.Second
	}

	var limiter *rate.Limiter
	if opts.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), 1)
	}

	return &Client{
		breakers:   NewBreakerSet(opts.FailureThreshold, opts.ResetWindow),
		limiter:    limiter,
		timeout:    opts.Timeout,
		maxRetries: opts.MaxRetries,
		backoff:    opts.Backoff,
		logger:     logger,
	}
}

// Breakers exposes the circuit state, mainly for tests and diagnostics
func (c *Client) Breakers() *BreakerSet {
	return c.breakers
}

// Call invokes fn under the resilience policy for the given endpoint key.
// An open circuit fails fast with ErrCircuitOpen before any network attempt.
// Transient failures (HTTP 429/502/503, timeout) are retried with exponential
// backoff; any other error propagates immediately. A success resets the
// endpoint's failure counter; an exhausted-retry failure increments it.
func (c *Client) Call(ctx context.Context, endpointKey string, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	if !c.breakers.Allow(endpointKey) {
		c.logger.Warn().Str("endpoint", endpointKey).Msg("Circuit open, failing fast")
		return nil, ErrCircuitOpen
	}

	var lastErr error
	backoff := c.backoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn().
				Str("endpoint", endpointKey).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Err(lastErr).
				Msg("Retrying provider call")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		result, err := fn(attemptCtx)
		cancel()

		if err == nil {
			c.breakers.RecordSuccess(endpointKey)
			return result, nil
		}

		lastErr = err
		if !IsTransient(err) {
			// Non-retryable: propagate immediately. Only exhausted retries
			// count against the circuit; a 400 is the caller's fault, not an
			// unhealthy endpoint.
			return nil, err
		}
	}

	c.breakers.RecordFailure(endpointKey)
	c.logger.Error().
		Str("endpoint", endpointKey).
		Int("retries", c.maxRetries).
		Err(lastErr).
		Msg("Provider call failed after exhausting retries")
	return nil, lastErr
}

// Do is the typed convenience wrapper around Call
func Do[T any](ctx context.Context, c *Client, endpointKey string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	result, err := c.Call(ctx, endpointKey, func(ctx context.Context) (interface{}, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("endpoint %s returned unexpected result type %T", endpointKey, result)
	}
	return typed, nil
}
