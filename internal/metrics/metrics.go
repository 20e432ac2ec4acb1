package metrics

import (
	"sort"
	"sync"
	"time"
)

// latencyWindow bounds the per-provider latency samples kept for
// percentile computation.
const latencyWindow = 1000

type providerStats struct {
	attempts  int64
	successes int64
	failures  int64
	rejected  int64
	healthy   bool
	latencies []time.Duration
}

// Metrics accumulates per-provider routing outcomes.
type Metrics struct {
	mutex     sync.RWMutex
	providers map[string]*providerStats
	routed    int64
	exhausted int64
	startTime time.Time
}

// Snapshot is the JSON-serializable view of accumulated metrics.
type Snapshot struct {
	RoutedRequests    int64                     `json:"routed_requests"`
	ExhaustedRequests int64                     `json:"exhausted_requests"`
	Uptime            time.Duration             `json:"uptime"`
	Strategy          string                    `json:"strategy"`
	Providers         map[string]ProviderReport `json:"providers"`
}

// ProviderReport summarizes one provider's observed behavior.
type ProviderReport struct {
	Attempts   int64         `json:"attempts"`
	Successes  int64         `json:"successes"`
	Failures   int64         `json:"failures"`
	Rejected   int64         `json:"rejected"`
	Healthy    bool          `json:"healthy"`
	AvgLatency time.Duration `json:"avg_latency"`
	P50Latency time.Duration `json:"p50_latency"`
	P95Latency time.Duration `json:"p95_latency"`
	P99Latency time.Duration `json:"p99_latency"`
}

func NewMetrics() *Metrics {
	return &Metrics{
		providers: make(map[string]*providerStats),
		startTime: time.Now(),
	}
}

func (m *Metrics) stats(provider string) *providerStats {
	ps, ok := m.providers[provider]
	if !ok {
		ps = &providerStats{healthy: true}
		m.providers[provider] = ps
	}
	return ps
}

// RecordSuccess records a successful attempt against a provider.
func (m *Metrics) RecordSuccess(provider string, latency time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	ps := m.stats(provider)
	ps.attempts++
	ps.successes++
	ps.recordLatency(latency)
	m.routed++
}

// RecordFailure records a failed attempt against a provider.
func (m *Metrics) RecordFailure(provider string, latency time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	ps := m.stats(provider)
	ps.attempts++
	ps.failures++
	ps.recordLatency(latency)
}

// RecordRejection records a breaker fail-fast for a provider (no backend
// call happened).
func (m *Metrics) RecordRejection(provider string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.stats(provider).rejected++
}

// RecordExhausted records a Route call that ran out of candidates.
func (m *Metrics) RecordExhausted() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.exhausted++
}

// UpdateHealthStatus records the latest health verdict for a provider.
func (m *Metrics) UpdateHealthStatus(provider string, healthy bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.stats(provider).healthy = healthy
}

func (ps *providerStats) recordLatency(latency time.Duration) {
	ps.latencies = append(ps.latencies, latency)
	if len(ps.latencies) > latencyWindow {
		ps.latencies = ps.latencies[1:]
	}
}

// Snapshot returns a copy of all accumulated metrics.
func (m *Metrics) Snapshot(strategy string) Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		RoutedRequests:    m.routed,
		ExhaustedRequests: m.exhausted,
		Uptime:            time.Since(m.startTime),
		Strategy:          strategy,
		Providers:         make(map[string]ProviderReport, len(m.providers)),
	}

	for name, ps := range m.providers {
		report := ProviderReport{
			Attempts:  ps.attempts,
			Successes: ps.successes,
			Failures:  ps.failures,
			Rejected:  ps.rejected,
			Healthy:   ps.healthy,
		}

		if len(ps.latencies) > 0 {
			sorted := make([]time.Duration, len(ps.latencies))
			copy(sorted, ps.latencies)
			sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

			report.AvgLatency = average(sorted)
			report.P50Latency = percentile(sorted, 0.50)
			report.P95Latency = percentile(sorted, 0.95)
			report.P99Latency = percentile(sorted, 0.99)
		}

		snap.Providers[name] = report
	}

	return snap
}

func average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}
	return sum / time.Duration(len(durations))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}
