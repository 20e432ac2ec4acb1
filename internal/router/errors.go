package router

import (
	"errors"
	"fmt"
)

// ErrNoAvailableBackend is returned by Route when every candidate's breaker
// is open before dispatch. No executor is invoked in that case.
var ErrNoAvailableBackend = errors.New("no available backend: all circuit breakers open")

// AllBackendsFailedError is returned by Route when every available
// candidate was attempted and failed. It wraps the last underlying error.
type AllBackendsFailedError struct {
	Attempts    int
	LastBackend string
	Err         error
}

func (e *AllBackendsFailedError) Error() string {
	return fmt.Sprintf("all backends failed after %d attempts, last backend %q: %v",
		e.Attempts, e.LastBackend, e.Err)
}

func (e *AllBackendsFailedError) Unwrap() error {
	return e.Err
}
