// Package circuitbreaker implements per-backend circuit breakers for
// provider failover.
//
// A circuit breaker prevents cascading failures by temporarily blocking
// requests to failing backends. It has three states:
//
//   - CLOSED: Normal operation, requests pass through
//   - OPEN: Backend failing, requests rejected without being sent
//   - HALF-OPEN: Testing recovery with a single trial request
//
// Usage:
//
//	registry := circuitbreaker.NewRegistry(5, 30*time.Second)
//	cb := registry.GetOrCreate("openai")
//	resp, err := circuitbreaker.Execute(cb, func() (*Response, error) {
//	    return client.Complete(ctx, req)
//	})
//	if errors.Is(err, circuitbreaker.ErrOpen) {
//	    // Rejected without a backend call; try the next provider.
//	}
package circuitbreaker
