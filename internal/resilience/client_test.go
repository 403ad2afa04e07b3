package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func testClient(maxRetries int) *Client {
	return NewClient(Options{
		Timeout:          time.Second,
		MaxRetries:       maxRetries,
		Backoff:          time.Millisecond,
		FailureThreshold: 5,
		ResetWindow:      60 * time.Second,
	}, arbor.NewLogger())
}

func TestCall_RetriesTransientThenSucceeds(t *testing.T) {
	client := testClient(3)

	attempts := 0
	result, err := Do(context.Background(), client, "generation", func(ctx context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", &HTTPError{StatusCode: 503}
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 0, client.Breakers().Failures("generation"))
}

func TestCall_NonTransientPropagatesImmediately(t *testing.T) {
	client := testClient(3)

	attempts := 0
	permanent := errors.New("invalid request")
	_, err := Do(context.Background(), client, "generation", func(ctx context.Context) (string, error) {
		attempts++
		return "", permanent
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, attempts, "non-transient errors must not be retried")
}

func TestCall_ExhaustedRetriesReturnsLastError(t *testing.T) {
	client := testClient(2)

	attempts := 0
	_, err := Do(context.Background(), client, "rerank", func(ctx context.Context) (string, error) {
		attempts++
		return "", &HTTPError{StatusCode: 429}
	})

	require.Error(t, err)
	var httpErr *HTTPError
	assert.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 3, attempts, "initial attempt plus two retries")
	assert.Equal(t, 1, client.Breakers().Failures("rerank"))
}

func TestCall_NonTransientNeverOpensCircuit(t *testing.T) {
	client := testClient(0)

	for i := 0; i < 6; i++ {
		_, err := Do(context.Background(), client, "chat", func(ctx context.Context) (string, error) {
			return "", &HTTPError{StatusCode: 400}
		})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrCircuitOpen, "the caller's 400 must keep surfacing, not a tripped circuit")
	}

	assert.False(t, client.Breakers().IsOpen("chat"))
	assert.Equal(t, 0, client.Breakers().Failures("chat"), "only exhausted retries count against the circuit")
}

func TestDo_UntypedNilResultErrors(t *testing.T) {
	client := testClient(0)

	_, err := Do[interface{}](context.Background(), client, "vision", func(ctx context.Context) (interface{}, error) {
		return nil, nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected result type")
}

func TestCall_CircuitOpensAfterFiveFailures(t *testing.T) {
	client := testClient(0)

	for i := 0; i < 5; i++ {
		_, err := Do(context.Background(), client, "embedding", func(ctx context.Context) (string, error) {
			return "", &HTTPError{StatusCode: 502}
		})
		require.Error(t, err)
	}
	assert.True(t, client.Breakers().IsOpen("embedding"))

	// Sixth call must fail fast without invoking fn
	invoked := false
	_, err := Do(context.Background(), client, "embedding", func(ctx context.Context) (string, error) {
		invoked = true
		return "ok", nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, invoked, "open circuit must not attempt a network call")
}

func TestCall_HalfOpenTrialAfterResetWindow(t *testing.T) {
	client := testClient(0)

	for i := 0; i < 5; i++ {
		_, _ = Do(context.Background(), client, "chat", func(ctx context.Context) (string, error) {
			return "", &HTTPError{StatusCode: 503}
		})
	}
	require.True(t, client.Breakers().IsOpen("chat"))

	// Advance the breaker clock past the reset window
	client.Breakers().now = func() time.Time { return time.Now().Add(61 * time.Second) }

	result, err := Do(context.Background(), client, "chat", func(ctx context.Context) (string, error) {
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", result)
	assert.False(t, client.Breakers().IsOpen("chat"))
	assert.Equal(t, 0, client.Breakers().Failures("chat"))
}

func TestCall_TimeoutCountsAsTransient(t *testing.T) {
	client := NewClient(Options{
		Timeout:          20 * time.Millisecond,
		MaxRetries:       1,
		Backoff:          time.Millisecond,
		FailureThreshold: 5,
		ResetWindow:      time.Minute,
	}, arbor.NewLogger())

	attempts := 0
	_, err := Do(context.Background(), client, "transcription", func(ctx context.Context) (string, error) {
		attempts++
		<-ctx.Done()
		return "", ctx.Err()
	})

	require.Error(t, err)
	assert.Equal(t, 2, attempts, "timeouts are transient and retried")
}

func TestTTLCache_Expiry(t *testing.T) {
	cache := NewTTLCache(30 * time.Millisecond)

	cache.Set("k", "v")
	v, ok := cache.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	time.Sleep(50 * time.Millisecond)
	_, ok = cache.Get("k")
	assert.False(t, ok, "entry must be absent once the TTL elapses")
}
