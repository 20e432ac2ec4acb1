package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/kitium-ai/modelrouter/internal/metrics"
	"github.com/kitium-ai/modelrouter/internal/router"
)

// Source is the health surface the monitor polls, normally a router.
type Source interface {
	GetProviderHealth() []router.ProviderHealth
}

// Watch periodically polls the source's provider health, logs up/down
// transitions, and forwards them to the collector. It returns when ctx is
// canceled.
func Watch(
	ctx context.Context,
	src Source,
	interval time.Duration,
	logger *slog.Logger,
	collector *metrics.Collector,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	known := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Provider health monitor stopped")
			return

		case <-ticker.C:
			for _, h := range src.GetProviderHealth() {
				prev, seen := known[h.Name]
				if seen && prev == h.Healthy {
					continue
				}
				known[h.Name] = h.Healthy

				if h.Healthy {
					if seen {
						logger.Info("Provider is back up",
							slog.String("provider", h.Name),
							slog.String("state", h.State))
					}
				} else {
					logger.Warn("Provider is down",
						slog.String("provider", h.Name),
						slog.String("state", h.State),
						slog.Float64("success_rate", h.SuccessRate))
				}

				if collector != nil {
					collector.Emit(metrics.Event{
						Type:      metrics.EventHealthChanged,
						Timestamp: time.Now(),
						Provider:  h.Name,
						Healthy:   h.Healthy,
					})
				}
			}
		}
	}
}
