package router

// ProviderHealth is the read-only per-backend view exposed for dashboards
// and alerting.
type ProviderHealth struct {
	Name           string  `json:"name"`
	State          string  `json:"state"`
	Healthy        bool    `json:"healthy"`
	SuccessRate    float64 `json:"success_rate"`
	TotalRequests  int64   `json:"total_requests"`
	FailedRequests int64   `json:"failed_requests"`
}

// GetProviderHealth reports every configured backend in configuration
// order. A backend is healthy when its breaker is not refusing calls.
func (r *Router[T]) GetProviderHealth() []ProviderHealth {
	r.mutex.RLock()
	names := make([]string, len(r.routes))
	for i, rt := range r.routes {
		names[i] = rt.Name
	}
	r.mutex.RUnlock()

	health := make([]ProviderHealth, len(names))
	for i, name := range names {
		cb := r.registry.GetOrCreate(name)
		m := cb.Metrics()
		health[i] = ProviderHealth{
			Name:           name,
			State:          m.State.String(),
			Healthy:        !cb.IsOpen(),
			SuccessRate:    m.SuccessRate,
			TotalRequests:  m.TotalRequests,
			FailedRequests: m.Failed,
		}
	}
	return health
}

// GetAvailableProviderCount counts backends whose breaker currently admits
// calls.
func (r *Router[T]) GetAvailableProviderCount() int {
	count := 0
	for _, h := range r.GetProviderHealth() {
		if h.Healthy {
			count++
		}
	}
	return count
}

// GetUnavailableProviders lists the names of backends currently excluded
// from dispatch.
func (r *Router[T]) GetUnavailableProviders() []string {
	unavailable := make([]string, 0)
	for _, h := range r.GetProviderHealth() {
		if !h.Healthy {
			unavailable = append(unavailable, h.Name)
		}
	}
	return unavailable
}

// ResetProvider resets the named backend's breaker. Unknown names are a
// no-op.
func (r *Router[T]) ResetProvider(name string) {
	r.registry.Reset(name)
}

// ResetAll resets the breakers of every backend this router routes to.
func (r *Router[T]) ResetAll() {
	for _, h := range r.GetProviderHealth() {
		r.registry.Reset(h.Name)
	}
}
