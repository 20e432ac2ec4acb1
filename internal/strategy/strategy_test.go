package strategy_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kitium-ai/modelrouter/internal/circuitbreaker"
	"github.com/kitium-ai/modelrouter/internal/strategy"
)

func names(candidates []strategy.Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Name
	}
	return out
}

func withStats(name string, total, failed int64) strategy.Candidate {
	return strategy.Candidate{
		Name: name,
		Metrics: circuitbreaker.Metrics{
			TotalRequests: total,
			Succeeded:     total - failed,
			Failed:        failed,
		},
	}
}

var _ = Describe("FirstSuccess", func() {
	It("should preserve the configured order", func() {
		in := []strategy.Candidate{{Name: "a"}, {Name: "b"}, {Name: "c"}}
		out := strategy.NewFirstSuccessStrategy().Order(in)
		Expect(names(out)).To(Equal([]string{"a", "b", "c"}))
	})

	It("should not mutate the input slice", func() {
		in := []strategy.Candidate{{Name: "a"}, {Name: "b"}}
		out := strategy.NewFirstSuccessStrategy().Order(in)
		out[0].Name = "changed"
		Expect(in[0].Name).To(Equal("a"))
	})
})

var _ = Describe("LeastCost", func() {
	It("should order ascending by cost class", func() {
		in := []strategy.Candidate{
			{Name: "a", CostClass: 80},
			{Name: "b", CostClass: 20},
			{Name: "c", CostClass: 100},
		}
		out := strategy.NewLeastCostStrategy().Order(in)
		Expect(names(out)).To(Equal([]string{"b", "a", "c"}))
	})

	It("should keep configured order for equal cost classes", func() {
		in := []strategy.Candidate{
			{Name: "a", CostClass: 10},
			{Name: "b", CostClass: 10},
			{Name: "c", CostClass: 5},
		}
		out := strategy.NewLeastCostStrategy().Order(in)
		Expect(names(out)).To(Equal([]string{"c", "a", "b"}))
	})
})

var _ = Describe("LowestLatency", func() {
	var strat strategy.Strategy

	BeforeEach(func() {
		strat = strategy.NewLowestLatencyStrategyWith(100*time.Millisecond, time.Second)
	})

	It("should order healthy candidates before failing ones", func() {
		in := []strategy.Candidate{
			withStats("flaky", 10, 5),
			withStats("healthy", 10, 0),
		}
		out := strat.Order(in)
		Expect(names(out)).To(Equal([]string{"healthy", "flaky"}))
	})

	It("should order by failure rate among failing candidates", func() {
		in := []strategy.Candidate{
			withStats("worst", 10, 9),
			withStats("bad", 10, 3),
			withStats("meh", 10, 1),
		}
		out := strat.Order(in)
		Expect(names(out)).To(Equal([]string{"meh", "bad", "worst"}))
	})

	It("should give unproven candidates the neutral estimate", func() {
		in := []strategy.Candidate{
			withStats("failing", 10, 10),
			withStats("unknown", 0, 0),
		}
		out := strat.Order(in)
		Expect(names(out)).To(Equal([]string{"unknown", "failing"}))
	})

	It("should keep configured order for equal estimates", func() {
		in := []strategy.Candidate{
			withStats("first", 0, 0),
			withStats("second", 0, 0),
		}
		out := strat.Order(in)
		Expect(names(out)).To(Equal([]string{"first", "second"}))
	})
})

var _ = Describe("Kind", func() {
	DescribeTable("ForKind constructs a strategy for every kind",
		func(k strategy.Kind) {
			Expect(strategy.ForKind(k)).NotTo(BeNil())
		},
		Entry("first-success", strategy.FirstSuccess),
		Entry("least-cost", strategy.LeastCost),
		Entry("lowest-latency", strategy.LowestLatency),
	)

	DescribeTable("ParseKind round-trips String",
		func(k strategy.Kind) {
			parsed, err := strategy.ParseKind(k.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(k))
		},
		Entry("first-success", strategy.FirstSuccess),
		Entry("least-cost", strategy.LeastCost),
		Entry("lowest-latency", strategy.LowestLatency),
	)

	It("should reject unknown strategy names", func() {
		_, err := strategy.ParseKind("round-robin")
		Expect(err).To(HaveOccurred())
	})
})
