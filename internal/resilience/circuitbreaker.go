package resilience

import (
	"errors"
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	StateClosed   State = iota // Normal operation
	StateOpen                  // Failing, reject calls
	StateHalfOpen              // Testing if service recovered
)

// ErrCircuitOpen is returned when the circuit breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreaker guards the text-generation backend against repeated
// failures. Transitions: Closed → Open after failThreshold consecutive
// failures; Open → HalfOpen after openTimeout; HalfOpen → Closed on success
// or back to Open on failure.
type CircuitBreaker struct {
	mu            sync.Mutex
	state         State
	failCount     int
	failThreshold int
	openTimeout   time.Duration
	openedAt      time.Time
}

// NewCircuitBreaker creates a circuit breaker with the given thresholds.
func NewCircuitBreaker(failThreshold int, openTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		state:         StateClosed,
		failThreshold: failThreshold,
		openTimeout:   openTimeout,
	}
}

// Execute runs fn through the circuit breaker.
// Returns ErrCircuitOpen if the circuit is open and the timeout hasn't elapsed.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if !cb.allow() {
		return ErrCircuitOpen
	}
	return cb.record(fn())
}

// allow decides whether a call may proceed, moving Open → HalfOpen once the
// timeout has elapsed.
func (cb *CircuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != StateOpen {
		return true
	}
	if time.Since(cb.openedAt) > cb.openTimeout {
		cb.state = StateHalfOpen
		return true
	}
	return false
}

// record books the call outcome and updates the breaker state.
func (cb *CircuitBreaker) record(err error) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failCount++
		if cb.failCount >= cb.failThreshold {
			cb.state = StateOpen
			cb.openedAt = time.Now()
		}
		return err
	}

	cb.failCount = 0
	cb.state = StateClosed
	return nil
}

// CurrentState returns the current state of the circuit breaker.
func (cb *CircuitBreaker) CurrentState() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
