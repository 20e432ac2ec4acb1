package strategy

import (
	"fmt"

	"github.com/kitium-ai/modelrouter/internal/circuitbreaker"
)

// Candidate is the non-generic view of one healthy route that strategies
// order before dispatch.
type Candidate struct {
	Name      string
	CostClass int
	Weight    int
	Metrics   circuitbreaker.Metrics
}

// Strategy orders the healthy candidates; the router attempts them in the
// returned order. Implementations must not mutate the input slice.
type Strategy interface {
	Order(candidates []Candidate) []Candidate
}

// Kind enumerates the supported ordering strategies.
type Kind int

const (
	FirstSuccess Kind = iota
	LeastCost
	LowestLatency
)

func (k Kind) String() string {
	switch k {
	case FirstSuccess:
		return "first-success"
	case LeastCost:
		return "least-cost"
	case LowestLatency:
		return "lowest-latency"
	default:
		return "unknown"
	}
}

// ParseKind maps a config string to a strategy kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "first-success":
		return FirstSuccess, nil
	case "least-cost":
		return LeastCost, nil
	case "lowest-latency":
		return LowestLatency, nil
	default:
		return FirstSuccess, fmt.Errorf("unknown strategy %q", s)
	}
}

// ForKind constructs the strategy implementation for a kind.
func ForKind(k Kind) Strategy {
	switch k {
	case LeastCost:
		return NewLeastCostStrategy()
	case LowestLatency:
		return NewLowestLatencyStrategy()
	default:
		return NewFirstSuccessStrategy()
	}
}
