package circuitbreaker_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kitium-ai/modelrouter/internal/circuitbreaker"
)

var _ = Describe("Registry", func() {
	var registry *circuitbreaker.Registry

	BeforeEach(func() {
		registry = circuitbreaker.NewRegistry(5, 30*time.Second)
	})

	Describe("GetOrCreate", func() {
		It("should create a closed breaker for an unseen name", func() {
			cb := registry.GetOrCreate("openai")
			Expect(cb).NotTo(BeNil())
			Expect(cb.State()).To(Equal(circuitbreaker.StateClosed))
		})

		It("should return the same breaker for the same name", func() {
			cb1 := registry.GetOrCreate("openai")
			cb2 := registry.GetOrCreate("openai")
			Expect(cb1).To(BeIdenticalTo(cb2))
		})

		It("should return different breakers for different names", func() {
			cb1 := registry.GetOrCreate("openai")
			cb2 := registry.GetOrCreate("anthropic")
			Expect(cb1).NotTo(BeIdenticalTo(cb2))
		})

		It("should apply the registry threshold to new breakers", func() {
			registry = circuitbreaker.NewRegistry(2, 100*time.Millisecond)
			cb := registry.GetOrCreate("openai")

			cb.RecordFailure()
			cb.RecordFailure()
			Expect(cb.State()).To(Equal(circuitbreaker.StateOpen))
		})

		It("should apply the registry recovery interval to new breakers", func() {
			registry = circuitbreaker.NewRegistry(2, 50*time.Millisecond)
			cb := registry.GetOrCreate("openai")

			cb.RecordFailure()
			cb.RecordFailure()
			Expect(cb.State()).To(Equal(circuitbreaker.StateOpen))

			time.Sleep(60 * time.Millisecond)
			Expect(cb.AllowRequest()).To(BeTrue())
			Expect(cb.State()).To(Equal(circuitbreaker.StateHalfOpen))
		})
	})

	Describe("Concurrent access", func() {
		It("should hand every goroutine the same breaker for one name", func() {
			const goroutines = 100

			var wg sync.WaitGroup
			wg.Add(goroutines)

			for i := 0; i < goroutines; i++ {
				go func() {
					defer wg.Done()
					for j := 0; j < 10; j++ {
						cb := registry.GetOrCreate("openai")
						Expect(cb).NotTo(BeNil())
					}
				}()
			}

			wg.Wait()

			Expect(registry.AllMetrics()).To(HaveLen(1))
		})

		It("should survive concurrent outcome recording on one breaker", func() {
			const goroutines = 50

			var wg sync.WaitGroup
			wg.Add(goroutines * 2)

			cb := registry.GetOrCreate("openai")

			for i := 0; i < goroutines; i++ {
				go func() {
					defer wg.Done()
					cb.RecordFailure()
				}()
				go func() {
					defer wg.Done()
					cb.RecordSuccess()
				}()
			}

			wg.Wait()

			m := cb.Metrics()
			Expect(m.Succeeded).To(Equal(int64(goroutines)))
			Expect(m.Failed).To(Equal(int64(goroutines)))
			Expect(m.State).To(BeElementOf(
				circuitbreaker.StateClosed,
				circuitbreaker.StateOpen,
				circuitbreaker.StateHalfOpen,
			))
		})
	})

	Describe("Reset", func() {
		It("should reset only the named breaker", func() {
			cb1 := registry.GetOrCreate("openai")
			cb2 := registry.GetOrCreate("anthropic")

			for i := 0; i < 5; i++ {
				cb1.RecordFailure()
				cb2.RecordFailure()
			}

			registry.Reset("openai")

			Expect(cb1.State()).To(Equal(circuitbreaker.StateClosed))
			Expect(cb2.State()).To(Equal(circuitbreaker.StateOpen))
		})

		It("should ignore unknown names", func() {
			Expect(func() { registry.Reset("nope") }).NotTo(Panic())
		})
	})

	Describe("ResetAll", func() {
		It("should reset every breaker but keep them registered", func() {
			cb1 := registry.GetOrCreate("openai")
			cb2 := registry.GetOrCreate("anthropic")

			for i := 0; i < 5; i++ {
				cb1.RecordFailure()
				cb2.RecordFailure()
			}

			registry.ResetAll()

			all := registry.AllMetrics()
			Expect(all).To(HaveLen(2))
			Expect(all["openai"].State).To(Equal(circuitbreaker.StateClosed))
			Expect(all["anthropic"].State).To(Equal(circuitbreaker.StateClosed))
			Expect(registry.GetOrCreate("openai")).To(BeIdenticalTo(cb1))
		})
	})

	Describe("AllMetrics", func() {
		It("should snapshot the state of every known breaker", func() {
			registry.GetOrCreate("openai")
			cb2 := registry.GetOrCreate("anthropic")

			for i := 0; i < 5; i++ {
				cb2.RecordFailure()
			}

			all := registry.AllMetrics()
			Expect(all).To(HaveLen(2))
			Expect(all["openai"].State).To(Equal(circuitbreaker.StateClosed))
			Expect(all["anthropic"].State).To(Equal(circuitbreaker.StateOpen))
			Expect(all["anthropic"].Failed).To(Equal(int64(5)))
		})

		It("should be empty before any breaker is referenced", func() {
			Expect(registry.AllMetrics()).To(BeEmpty())
		})
	})
})
