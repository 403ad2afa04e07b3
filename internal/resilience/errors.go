package resilience

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrCircuitOpen is returned without a network attempt when the endpoint's
// circuit is open and the reset window has not elapsed.
var ErrCircuitOpen = errors.New("circuit open")

// HTTPError carries a provider HTTP status so the retry policy can classify it
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("provider returned status %d", e.StatusCode)
}

// IsTransient reports whether an error should be retried: HTTP 429/502/503 or
// a timeout. Any other error propagates immediately without retry.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case 429, 502, 503:
			return true
		}
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}
