// Package timelineservice boots the timeline HTTP service.
package timelineservice

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/api"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/config"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/factory"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/health"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/logger"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/metrics"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/timeline"
)

const healthProbeInterval = 15 * time.Second

// Run starts the timeline service HTTP server and blocks until shutdown or
// error.
func Run() error {
	log := logger.New("timeline-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	log = logger.NewWithLevel("timeline-service", cfg.LogLevel)

	// Root context bound to SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, db, err := factory.NewStore(cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store unavailable")
		return err
	}
	defer func() { _ = db.Close() }()

	opts := []timeline.Option{
		timeline.WithSlowQueryThreshold(time.Duration(cfg.SlowQueryThresholdMs) * time.Millisecond),
		timeline.WithAdapterTimeout(time.Duration(cfg.AdapterTimeoutMs) * time.Millisecond),
	}
	if cfg.MetricsEnabled {
		opts = append(opts, timeline.WithMetrics(metrics.Default()))
	}
	svc := timeline.NewService(st, log, opts...)

	var checker *health.Checker
	if p, ok := st.(health.Pinger); ok {
		checker = health.NewChecker("store", p, log)
		go checker.Start(ctx, healthProbeInterval)
	}

	router := api.NewRouter(svc, log, api.RouterOptions{
		HealthChecker:  checker,
		MetricsEnabled: cfg.MetricsEnabled,
	})

	server := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}
