package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned by Execute when the breaker rejects a call without
// invoking the backend.
var ErrOpen = errors.New("circuit breaker open")

type State int

const (
	StateClosed   State = iota // Normal operation
	StateOpen                  // Blocking requests
	StateHalfOpen              // Testing with one trial request
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF-OPEN"
	default:
		return "UNKNOWN"
	}
}

// Metrics is a point-in-time read-only view of one breaker.
type Metrics struct {
	State           State     `json:"state"`
	TotalRequests   int64     `json:"total_requests"`
	Succeeded       int64     `json:"succeeded_requests"`
	Failed          int64     `json:"failed_requests"`
	Rejected        int64     `json:"rejected_requests"`
	SuccessRate     float64   `json:"success_rate"`
	LastStateChange time.Time `json:"last_state_change"`
}

// CircuitBreaker gates calls to a single backend. State transitions happen
// inside AllowRequest/RecordSuccess/RecordFailure; there is no background
// timer goroutine.
type CircuitBreaker struct {
	mutex sync.Mutex

	state           State
	consecFailures  int
	trialInFlight   bool
	lastStateChange time.Time

	total     int64
	succeeded int64
	failed    int64
	rejected  int64

	failureThreshold int
	recoveryInterval time.Duration
}

func New(threshold int, recovery time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		state:            StateClosed,
		failureThreshold: threshold,
		recoveryInterval: recovery,
		lastStateChange:  time.Now(),
	}
}

// AllowRequest reports whether a call may proceed right now. In the open
// state, an elapsed recovery interval moves the breaker to half-open and
// claims the single trial slot as a side effect. While a half-open trial is
// outstanding, every other caller is rejected as if the breaker were open.
func (cb *CircuitBreaker) AllowRequest() bool {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	switch cb.state {
	case StateClosed:
		return true
	case StateOpen:
		if time.Since(cb.lastStateChange) >= cb.recoveryInterval {
			cb.setState(StateHalfOpen)
			cb.trialInFlight = true
			return true
		}
		return false
	case StateHalfOpen:
		if cb.trialInFlight {
			return false
		}
		cb.trialInFlight = true
		return true
	default:
		return true
	}
}

// RecordSuccess clears the consecutive-failure counter and, when half-open,
// closes the breaker.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	cb.succeeded++
	cb.consecFailures = 0

	if cb.state == StateHalfOpen {
		cb.trialInFlight = false
		cb.setState(StateClosed)
	}
}

// RecordFailure counts a failed call. A half-open trial failure reopens the
// breaker and restarts the recovery timer; in the closed state the breaker
// trips once the consecutive-failure counter reaches the threshold.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	cb.failed++

	switch cb.state {
	case StateHalfOpen:
		cb.trialInFlight = false
		cb.setState(StateOpen)
	case StateClosed:
		cb.consecFailures++
		if cb.consecFailures >= cb.failureThreshold {
			cb.setState(StateOpen)
		}
	}
}

// IsOpen reports whether the breaker is currently refusing calls outright.
// An open breaker whose recovery interval has elapsed reports false so that
// callers include it as a candidate for the half-open trial.
func (cb *CircuitBreaker) IsOpen() bool {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	if cb.state != StateOpen {
		return false
	}
	return time.Since(cb.lastStateChange) < cb.recoveryInterval
}

func (cb *CircuitBreaker) State() State {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) SuccessRate() float64 {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return successRate(cb.succeeded, cb.total)
}

// Metrics returns a snapshot of the breaker's counters and state. Counters
// accumulate until Reset; they survive state transitions.
func (cb *CircuitBreaker) Metrics() Metrics {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	return Metrics{
		State:           cb.state,
		TotalRequests:   cb.total,
		Succeeded:       cb.succeeded,
		Failed:          cb.failed,
		Rejected:        cb.rejected,
		SuccessRate:     successRate(cb.succeeded, cb.total),
		LastStateChange: cb.lastStateChange,
	}
}

// Reset unconditionally returns the breaker to the closed state with zeroed
// counters, regardless of its current state.
func (cb *CircuitBreaker) Reset() {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	cb.consecFailures = 0
	cb.trialInFlight = false
	cb.total = 0
	cb.succeeded = 0
	cb.failed = 0
	cb.rejected = 0

	if cb.state != StateClosed {
		cb.setState(StateClosed)
	}
}

func (cb *CircuitBreaker) setState(s State) {
	cb.state = s
	cb.lastStateChange = time.Now()
}

func (cb *CircuitBreaker) reject() {
	cb.mutex.Lock()
	cb.rejected++
	cb.mutex.Unlock()
}

func (cb *CircuitBreaker) beginAttempt() {
	cb.mutex.Lock()
	cb.total++
	cb.mutex.Unlock()
}

// Execute runs fn through the breaker. A rejected call fails fast with
// ErrOpen and never invokes fn; an allowed call counts toward the total and
// records its outcome against the breaker.
func Execute[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	var zero T

	if !cb.AllowRequest() {
		cb.reject()
		return zero, ErrOpen
	}

	cb.beginAttempt()

	result, err := fn()
	if err != nil {
		cb.RecordFailure()
		return zero, err
	}

	cb.RecordSuccess()
	return result, nil
}

func successRate(succeeded, total int64) float64 {
	if total == 0 {
		return 1.0
	}
	return float64(succeeded) / float64(total)
}
