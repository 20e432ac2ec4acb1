package metrics

import (
	"context"
	"log/slog"
	"time"
)

type EventType string

const (
	EventAttemptSucceeded EventType = "attempt_succeeded"
	EventAttemptFailed    EventType = "attempt_failed"
	EventBreakerRejected  EventType = "breaker_rejected"
	EventRouteExhausted   EventType = "route_exhausted"
	EventHealthChanged    EventType = "health_changed"
)

// Event is one routing observation. Provider is empty for route-level
// events.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Provider  string
	Operation string
	Duration  time.Duration
	Healthy   bool
}

// Collector consumes routing events off a buffered channel so that emitting
// an event never blocks or fails a dispatch. When the buffer is full the
// event is dropped by the sender.
type Collector struct {
	eventCh chan Event
	metrics *Metrics
	logger  *slog.Logger
}

func NewCollector(bufferSize int, logger *slog.Logger) *Collector {
	return &Collector{
		eventCh: make(chan Event, bufferSize),
		metrics: NewMetrics(),
		logger:  logger,
	}
}

// Emit offers an event to the collector without blocking. Events are
// dropped when the buffer is full; routing outcome is never affected.
func (c *Collector) Emit(event Event) {
	select {
	case c.eventCh <- event:
	default:
	}
}

func (c *Collector) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Collector) run(ctx context.Context) {
	c.logger.Info("Metrics collector started")
	defer c.logger.Info("Metrics collector stopped")

	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		case <-ctx.Done():
			// Drain remaining events before shutdown
			c.drain()
			return
		}
	}
}

func (c *Collector) processEvent(event Event) {
	switch event.Type {
	case EventAttemptSucceeded:
		c.metrics.RecordSuccess(event.Provider, event.Duration)

	case EventAttemptFailed:
		c.metrics.RecordFailure(event.Provider, event.Duration)

	case EventBreakerRejected:
		c.metrics.RecordRejection(event.Provider)

	case EventRouteExhausted:
		c.metrics.RecordExhausted()

	case EventHealthChanged:
		c.metrics.UpdateHealthStatus(event.Provider, event.Healthy)
	}
}

func (c *Collector) drain() {
	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		default:
			return
		}
	}
}

func (c *Collector) Snapshot(strategy string) Snapshot {
	return c.metrics.Snapshot(strategy)
}
