// Package app wires configuration, infrastructure connections, and the
// HTTP/cron surfaces together, adapted from nightowl's internal/app.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/ANGHOOO/godlife/internal/config"
	"github.com/ANGHOOO/godlife/internal/httpserver"
	"github.com/ANGHOOO/godlife/internal/jobs"
	"github.com/ANGHOOO/godlife/internal/platform"
	"github.com/ANGHOOO/godlife/internal/seed"
	"github.com/ANGHOOO/godlife/internal/telemetry"
	"github.com/ANGHOOO/godlife/pkg/exerciseplan"
	"github.com/ANGHOOO/godlife/pkg/notification"
	"github.com/ANGHOOO/godlife/pkg/reading"
	"github.com/ANGHOOO/godlife/pkg/summary"
	"github.com/ANGHOOO/godlife/pkg/user"
	"github.com/ANGHOOO/godlife/pkg/webhook"
)

// Run is godlife's entry point. It reads config, connects to
// infrastructure, applies migrations, and starts the selected mode.
func Run(ctx context.Context, cfg *config.Config) error {
	logger := telemetry.NewLogger(cfg.LogFormat, cfg.LogLevel)

	logger.Info("starting godlife", "mode", cfg.Mode, "listen", cfg.ListenAddr())

	pool, err := platform.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	rdb, err := platform.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Error("closing redis", "error", err)
		}
	}()

	if err := platform.RunMigrations(cfg.MigrationsDir, cfg.DatabaseURL); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("migrations applied")

	switch cfg.Mode {
	case "seed":
		return seed.Run(ctx, pool, logger)
	case "serve":
		return runServe(ctx, cfg, logger, pool, rdb)
	default:
		return fmt.Errorf("unknown mode: %s", cfg.Mode)
	}
}

// runServe starts the HTTP API and the background job cron scheduler, and
// blocks until ctx is canceled or the server fails.
func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool, rdb *redis.Client) error {
	srv := httpserver.New(httpserver.ServerConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}, httpserver.Deps{Pool: pool, Redis: rdb, Logger: logger})

	srv.WithTransaction(func(r chi.Router) {
		user.NewHandler(logger).RegisterRoutes(r)
		exerciseplan.NewHandler(logger).RegisterRoutes(r)
		notification.NewHandler(logger).RegisterRoutes(r)
		reading.NewHandler(logger).RegisterRoutes(r)
		summary.NewHandler(logger).RegisterRoutes(r)
		webhook.NewHandler(logger, rdb).RegisterRoutes(r)
	})

	// Background jobs: reminder sweep and outbox drainer, sharing one
	// cron scheduler (robfig/cron/v3, borrowed from hibernator's
	// escalation engine wiring).
	c := cron.New()
	reminderDriver := jobs.NewReminderDriver(pool, logger)
	if _, err := reminderDriver.Start(c, cfg.ReminderTickInterval); err != nil {
		return fmt.Errorf("scheduling reminder driver: %w", err)
	}
	outboxDrainer := jobs.NewOutboxDrainer(pool, logger, cfg.OutboxLeaseLimit)
	if _, err := outboxDrainer.Start(c, cfg.OutboxTickInterval); err != nil {
		return fmt.Errorf("scheduling outbox drainer: %w", err)
	}
	c.Start()
	defer c.Stop()

	httpSrv := &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      srv.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server listening", "addr", cfg.ListenAddr())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
