package resilience

import (
	"sync"
	"time"
)

// breaker tracks consecutive failures for a single endpoint key.
// Transitions: closed -> open once failures reach the threshold;
// open -> half-open after the reset window, permitting one trial call that
// resets the counter on success.
type breaker struct {
	mu          sync.Mutex
	failures    int
	lastFailure time.Time
	open        bool
}

// BreakerSet owns the per-endpoint circuit breakers. It is constructor
// injected rather than module-global so tests can reset state between runs.
type BreakerSet struct {
	mu        sync.Mutex
	breakers  map[string]*breaker
	threshold int
	resetWin  time.Duration
	now       func() time.Time // Injectable clock for tests
}

// NewBreakerSet creates a breaker set opening after threshold consecutive
// failures, with a half-open trial permitted after resetWindow.
func NewBreakerSet(threshold int, resetWindow time.Duration) *BreakerSet {
	return &BreakerSet{
		breakers:  make(map[string]*breaker),
		threshold: threshold,
		resetWin:  resetWindow,
		now:       time.Now,
	}
}

func (s *BreakerSet) get(key string) *breaker {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.breakers[key]
	if !ok {
		b = &breaker{}
		s.breakers[key] = b
	}
	return b
}

// Allow reports whether a call to the endpoint may proceed. An open circuit
// whose reset window has elapsed permits one half-open trial.
func (s *BreakerSet) Allow(key string) bool {
	b := s.get(key)
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return true
	}
	if s.now().Sub(b.lastFailure) >= s.resetWin {
		// Half-open: permit the trial call; outcome decides the transition
		return true
	}
	return false
}

// RecordSuccess resets the endpoint's failure counter and closes the circuit
func (s *BreakerSet) RecordSuccess(key string) {
	b := s.get(key)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.open = false
}

// RecordFailure increments the endpoint's failure counter, opening the
// circuit once the threshold is reached.
func (s *BreakerSet) RecordFailure(key string) {
	b := s.get(key)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures++
	b.lastFailure = s.now()
	if b.failures >= s.threshold {
		b.open = true
	}
}

// Failures returns the current consecutive failure count for an endpoint
func (s *BreakerSet) Failures(key string) int {
	b := s.get(key)
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

// IsOpen reports whether the endpoint's circuit is currently open
func (s *BreakerSet) IsOpen(key string) bool {
	b := s.get(key)
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}
