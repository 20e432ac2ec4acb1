package strategy

import (
	"sort"
	"time"
)

const (
	// neutralLatency is the estimate for candidates with no recorded
	// requests, so unknown providers sort between proven-good and
	// proven-bad ones.
	neutralLatency = 500 * time.Millisecond

	// maxFailurePenalty caps the estimate added for a fully failing
	// candidate.
	maxFailurePenalty = 5 * time.Second
)

type lowestLatencyStrategy struct {
	neutral    time.Duration
	maxPenalty time.Duration
}

// Order sorts ascending by estimated latency derived from breaker metrics.
// A candidate's estimate grows proportionally with its observed failure
// rate, so flaky providers are attempted later.
func (l *lowestLatencyStrategy) Order(candidates []Candidate) []Candidate {
	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)

	sort.SliceStable(ordered, func(i, j int) bool {
		return l.estimate(ordered[i]) < l.estimate(ordered[j])
	})

	return ordered
}

func (l *lowestLatencyStrategy) estimate(c Candidate) time.Duration {
	if c.Metrics.TotalRequests == 0 {
		return l.neutral
	}

	failureRate := float64(c.Metrics.Failed) / float64(c.Metrics.TotalRequests)

	penalty := time.Duration(failureRate * float64(l.maxPenalty))
	if penalty > l.maxPenalty {
		penalty = l.maxPenalty
	}

	return l.neutral + penalty
}

func NewLowestLatencyStrategy() Strategy {
	return &lowestLatencyStrategy{
		neutral:    neutralLatency,
		maxPenalty: maxFailurePenalty,
	}
}

// NewLowestLatencyStrategyWith builds the strategy with custom baseline and
// penalty cap, mainly for tests and tuning.
func NewLowestLatencyStrategyWith(neutral, maxPenalty time.Duration) Strategy {
	return &lowestLatencyStrategy{
		neutral:    neutral,
		maxPenalty: maxPenalty,
	}
}
