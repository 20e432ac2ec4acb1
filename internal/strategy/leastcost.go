package strategy

import "sort"

type leastCostStrategy struct{}

// Order sorts ascending by cost class. The sort is stable so equally priced
// candidates keep their configured order.
func (l *leastCostStrategy) Order(candidates []Candidate) []Candidate {
	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CostClass < ordered[j].CostClass
	})

	return ordered
}

func NewLeastCostStrategy() Strategy {
	return &leastCostStrategy{}
}
