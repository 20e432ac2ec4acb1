package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kitium-ai/modelrouter/config"
	"github.com/kitium-ai/modelrouter/internal/admin"
	"github.com/kitium-ai/modelrouter/internal/circuitbreaker"
	"github.com/kitium-ai/modelrouter/internal/health"
	"github.com/kitium-ai/modelrouter/internal/httpserver"
	"github.com/kitium-ai/modelrouter/internal/metrics"
	"github.com/kitium-ai/modelrouter/internal/provider"
	"github.com/kitium-ai/modelrouter/internal/router"
	"github.com/kitium-ai/modelrouter/internal/strategy"
	"github.com/kitium-ai/modelrouter/pkg/logger"
)

const metricsBufferSize = 1024

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, true, cfg.Server.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	registry, err := buildRegistry(cfg)
	if err != nil {
		log.Error("Failed to build breaker registry", slog.Any("err", err))
		os.Exit(1)
	}

	collector := metrics.NewCollector(metricsBufferSize, log)
	collector.Start(ctx)

	rt, err := buildRouter(cfg, registry, log, collector)
	if err != nil {
		log.Error("Failed to build router", slog.Any("err", err))
		os.Exit(1)
	}

	go health.Watch(ctx, rt, rt.HealthCheckInterval(), log, collector)

	adminHandler := admin.NewHandler(log, rt, collector)

	srv, err := httpserver.New(cfg.Server.Address, adminHandler.Routes())
	if err != nil {
		log.Error("Failed to create admin server", slog.Any("err", err))
		os.Exit(1)
	}

	log.Info("Model router started",
		slog.String("address", cfg.Server.Address),
		slog.String("strategy", rt.Strategy().String()),
		slog.Int("providers", len(cfg.Providers)))

	srvErrCh := make(chan error, 1)

	go func() {
		srvErrCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Error during shutdown", slog.Any("err", err))
		}
	case err := <-srvErrCh:
		if err != nil {
			log.Error("Error starting admin server", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

func buildRegistry(cfg *config.Config) (*circuitbreaker.Registry, error) {
	recovery, err := time.ParseDuration(cfg.Breaker.RecoveryInterval)
	if err != nil {
		return nil, err
	}

	return circuitbreaker.NewRegistry(cfg.Breaker.FailureThreshold, recovery), nil
}

func buildRouter(
	cfg *config.Config,
	registry *circuitbreaker.Registry,
	log *slog.Logger,
	collector *metrics.Collector,
) (*router.Router[*provider.Response], error) {
	kind, err := strategy.ParseKind(cfg.Strategy.Type)
	if err != nil {
		return nil, err
	}

	healthInterval, err := time.ParseDuration(cfg.HealthCheck.Interval)
	if err != nil {
		return nil, err
	}

	routes := buildRoutes(cfg.Providers)

	return router.New(router.Config[*provider.Response]{
		Primary:             routes[0],
		Fallbacks:           routes[1:],
		Strategy:            kind,
		HealthCheckInterval: healthInterval,
	}, registry, log, collector)
}

func buildRoutes(providers []config.ProviderConfig) []provider.Route[*provider.Response] {
	routes := make([]provider.Route[*provider.Response], len(providers))
	for i, pc := range providers {
		routes[i] = provider.Route[*provider.Response]{
			Name:      pc.Name,
			Exec:      provider.NewHTTPExecutor(pc.Name, pc.Endpoint),
			CostClass: pc.CostClass,
			Weight:    pc.Weight,
		}
	}
	return routes
}
