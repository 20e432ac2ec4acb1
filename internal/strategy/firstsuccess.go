package strategy

type firstSuccessStrategy struct{}

// Order preserves the configured order: primary first, fallbacks after.
func (f *firstSuccessStrategy) Order(candidates []Candidate) []Candidate {
	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)
	return ordered
}

func NewFirstSuccessStrategy() Strategy {
	return &firstSuccessStrategy{}
}
