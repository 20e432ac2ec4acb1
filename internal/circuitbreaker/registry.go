package circuitbreaker

import (
	"sync"
	"time"
)

// Registry owns one breaker per backend name, created lazily on first
// reference. It is shared by reference so breaker state persists across
// every router targeting the same backend names.
type Registry struct {
	mutex     sync.RWMutex
	breakers  map[string]*CircuitBreaker
	threshold int
	recovery  time.Duration
}

func NewRegistry(threshold int, recovery time.Duration) *Registry {
	return &Registry{
		breakers:  make(map[string]*CircuitBreaker),
		threshold: threshold,
		recovery:  recovery,
	}
}

// GetOrCreate returns the breaker for name, constructing one with the
// registry defaults on first access. Callers always share the same instance.
func (r *Registry) GetOrCreate(name string) *CircuitBreaker {
	r.mutex.RLock()
	cb, exists := r.breakers[name]
	r.mutex.RUnlock()

	if exists {
		return cb
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	// Double-check: another goroutine may have created it
	if cb, exists = r.breakers[name]; exists {
		return cb
	}

	cb = New(r.threshold, r.recovery)
	r.breakers[name] = cb
	return cb
}

// Reset resets the named breaker if it exists. Unknown names are not an
// error, just a no-op.
func (r *Registry) Reset(name string) {
	r.mutex.RLock()
	cb, exists := r.breakers[name]
	r.mutex.RUnlock()

	if exists {
		cb.Reset()
	}
}

// ResetAll resets every known breaker in place. Breakers stay registered so
// accumulated identity (and shared references) survive the reset.
func (r *Registry) ResetAll() {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, cb := range r.breakers {
		cb.Reset()
	}
}

// AllMetrics snapshots every known breaker's metrics, keyed by backend name.
func (r *Registry) AllMetrics() map[string]Metrics {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	all := make(map[string]Metrics, len(r.breakers))
	for name, cb := range r.breakers {
		all[name] = cb.Metrics()
	}
	return all
}
