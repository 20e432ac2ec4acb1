package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kitium-ai/modelrouter/internal/circuitbreaker"
	"github.com/kitium-ai/modelrouter/internal/metrics"
	"github.com/kitium-ai/modelrouter/internal/provider"
	"github.com/kitium-ai/modelrouter/internal/strategy"
)

// Config describes a router: one primary route, ordered fallbacks, the
// initial ordering strategy, and the advisory health polling interval.
type Config[T any] struct {
	Primary             provider.Route[T]
	Fallbacks           []provider.Route[T]
	Strategy            strategy.Kind
	HealthCheckInterval time.Duration
}

// Router dispatches calls to the first available backend, falling back in
// strategy order. Breaker state lives in the shared registry, so several
// routers targeting the same backend names see the same breakers.
type Router[T any] struct {
	mutex          sync.RWMutex
	routes         []provider.Route[T] // primary first, configured order
	kind           strategy.Kind
	strat          strategy.Strategy
	registry       *circuitbreaker.Registry
	logger         *slog.Logger
	collector      *metrics.Collector
	healthInterval time.Duration
}

// New validates the configuration and builds a router. The collector may be
// nil; routing never depends on observability.
func New[T any](cfg Config[T], registry *circuitbreaker.Registry, logger *slog.Logger, collector *metrics.Collector) (*Router[T], error) {
	if registry == nil {
		return nil, errors.New("router: registry is required")
	}
	if cfg.Primary.Name == "" || cfg.Primary.Exec == nil {
		return nil, errors.New("router: primary route needs a name and an executor")
	}
	for _, fb := range cfg.Fallbacks {
		if fb.Name == "" || fb.Exec == nil {
			return nil, fmt.Errorf("router: fallback route %q needs a name and an executor", fb.Name)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	routes := make([]provider.Route[T], 0, len(cfg.Fallbacks)+1)
	routes = append(routes, cfg.Primary)
	for _, fb := range cfg.Fallbacks {
		routes = replaceOrAppend(routes, fb)
	}

	return &Router[T]{
		routes:         routes,
		kind:           cfg.Strategy,
		strat:          strategy.ForKind(cfg.Strategy),
		registry:       registry,
		logger:         logger,
		collector:      collector,
		healthInterval: cfg.HealthCheckInterval,
	}, nil
}

// Route dispatches one logical request: filter out backends whose breaker is
// open, order the remainder by the current strategy, then attempt each in
// turn through its breaker. The first success wins; exhaustion returns an
// AllBackendsFailedError wrapping the last failure.
func (r *Router[T]) Route(ctx context.Context, operation string, call provider.CallFunc[T]) (T, error) {
	var zero T

	routes, strat := r.dispatchView()

	available := make([]provider.Route[T], 0, len(routes))
	for _, rt := range routes {
		if !r.registry.GetOrCreate(rt.Name).IsOpen() {
			available = append(available, rt)
		}
	}

	if len(available) == 0 {
		r.logger.Warn("No available backend",
			slog.String("operation", operation),
			slog.Int("configured", len(routes)))
		r.emit(metrics.Event{
			Type:      metrics.EventRouteExhausted,
			Timestamp: time.Now(),
			Operation: operation,
		})
		return zero, ErrNoAvailableBackend
	}

	byName := make(map[string]provider.Route[T], len(available))
	candidates := make([]strategy.Candidate, len(available))
	for i, rt := range available {
		byName[rt.Name] = rt
		candidates[i] = strategy.Candidate{
			Name:      rt.Name,
			CostClass: rt.CostClass,
			Weight:    rt.Weight,
			Metrics:   r.registry.GetOrCreate(rt.Name).Metrics(),
		}
	}

	var (
		lastErr  error
		lastName string
		attempts int
	)

	for _, c := range strat.Order(candidates) {
		rt := byName[c.Name]
		cb := r.registry.GetOrCreate(c.Name)

		start := time.Now()
		result, err := circuitbreaker.Execute(cb, func() (T, error) {
			return call(ctx, rt.Exec)
		})
		elapsed := time.Since(start)

		if err == nil {
			r.logger.Debug("Routed request",
				slog.String("operation", operation),
				slog.String("backend", rt.Name),
				slog.Duration("duration", elapsed))
			r.emit(metrics.Event{
				Type:      metrics.EventAttemptSucceeded,
				Timestamp: time.Now(),
				Provider:  rt.Name,
				Operation: operation,
				Duration:  elapsed,
			})
			return result, nil
		}

		attempts++
		lastErr = err
		lastName = rt.Name

		if errors.Is(err, circuitbreaker.ErrOpen) {
			// Breaker state changed between filtering and dispatch,
			// or a half-open trial is already in flight.
			r.logger.Debug("Backend rejected by breaker",
				slog.String("operation", operation),
				slog.String("backend", rt.Name))
			r.emit(metrics.Event{
				Type:      metrics.EventBreakerRejected,
				Timestamp: time.Now(),
				Provider:  rt.Name,
				Operation: operation,
			})
			continue
		}

		r.logger.Warn("Backend attempt failed, trying next",
			slog.String("operation", operation),
			slog.String("backend", rt.Name),
			slog.Duration("duration", elapsed),
			slog.Any("err", err))
		r.emit(metrics.Event{
			Type:      metrics.EventAttemptFailed,
			Timestamp: time.Now(),
			Provider:  rt.Name,
			Operation: operation,
			Duration:  elapsed,
		})
	}

	r.logger.Error("All backends failed",
		slog.String("operation", operation),
		slog.Int("attempts", attempts),
		slog.String("last_backend", lastName),
		slog.Any("err", lastErr))
	r.emit(metrics.Event{
		Type:      metrics.EventRouteExhausted,
		Timestamp: time.Now(),
		Operation: operation,
	})

	return zero, &AllBackendsFailedError{
		Attempts:    attempts,
		LastBackend: lastName,
		Err:         lastErr,
	}
}

// SetStrategy switches the ordering strategy, effective on the next Route
// call.
func (r *Router[T]) SetStrategy(kind strategy.Kind) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.kind = kind
	r.strat = strategy.ForKind(kind)
}

// Strategy returns the currently selected strategy kind.
func (r *Router[T]) Strategy() strategy.Kind {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.kind
}

// Register adds a fallback route, replacing any existing route with the
// same name (including the primary). Administrative; takes effect on the
// next Route call.
func (r *Router[T]) Register(route provider.Route[T]) error {
	if route.Name == "" || route.Exec == nil {
		return errors.New("router: route needs a name and an executor")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.routes = replaceOrAppend(r.routes, route)
	return nil
}

// HealthCheckInterval is the advisory interval for external health pollers.
func (r *Router[T]) HealthCheckInterval() time.Duration {
	return r.healthInterval
}

func (r *Router[T]) dispatchView() ([]provider.Route[T], strategy.Strategy) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	routes := make([]provider.Route[T], len(r.routes))
	copy(routes, r.routes)
	return routes, r.strat
}

func (r *Router[T]) emit(event metrics.Event) {
	if r.collector == nil {
		return
	}
	r.collector.Emit(event)
}

func replaceOrAppend[T any](routes []provider.Route[T], route provider.Route[T]) []provider.Route[T] {
	for i, existing := range routes {
		if existing.Name == route.Name {
			routes[i] = route
			return routes
		}
	}
	return append(routes, route)
}
