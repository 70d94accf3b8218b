// Command api serves the users collection resource the web UI talks to.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"usermgmt/internal/app/user"
	"usermgmt/internal/cache"
	"usermgmt/internal/config"
	"usermgmt/internal/db"
	"usermgmt/internal/db/repository"
	dom "usermgmt/internal/domain/user"
	"usermgmt/internal/http/handlers/health"
	userhandler "usermgmt/internal/http/handlers/user"
	"usermgmt/internal/http/router"
	"usermgmt/internal/kafka"
	"usermgmt/internal/logging"
	"usermgmt/internal/telemetry"
)

func main() {
	// Top-level context with graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1) Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2) Initialize logger
	logger := logging.New(
		cfg.Observability.ServiceName+"-api",
		cfg.Observability.ServiceEnv,
		cfg.LogLevel,
	)
	defer logging.Sync(logger)

	logger.Info("starting service",
		"env", cfg.Environment,
	)

	// 3) Initialize telemetry (OpenTelemetry)
	otelShutdown, err := telemetry.Setup(ctx, cfg.Observability, logger)
	if err != nil {
		logger.Error("failed to setup telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown telemetry", "error", err)
		}
	}()

	checks := map[string]health.Pinger{}

	// 4) Storage: Postgres when configured, otherwise in memory
	var userRepo dom.Repository
	if cfg.Postgres.Enabled() {
		dbClient, err := db.NewClient(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Error("failed to init database", "error", err)
			os.Exit(1)
		}
		defer func(dbClient *db.Client) {
			_ = dbClient.Close()
		}(dbClient)

		if err := dbClient.Migrate(ctx); err != nil {
			logger.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
		userRepo = repository.NewUserRepository(dbClient, logger)
		checks["db"] = dbClient
	} else {
		logger.Info("postgres not configured, using in-memory users")
		userRepo = repository.NewMemoryUserRepository()
	}

	// 5) Redis cache
	var userCache cache.UserCache = cache.NoopUserCache{}
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Error("failed to init redis", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("failed to close redis", "error", err)
			}
		}()
		userCache = cache.NewUserCache(redisClient)
		checks["redis"] = redisClient
	}

	// 6) Kafka bus (Watermill) for change events
	bus, closeBus, err := kafka.NewBus(cfg.Kafka, logger)
	if err != nil {
		logger.Error("failed to init kafka bus", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = closeBus(context.Background())
	}()

	// 7) Services & handlers
	userService := user.NewService(
		userRepo,
		userCache,
		kafka.NewUserEvents(bus, cfg.Kafka, logger),
		logger)

	httpRouter := router.NewRouter(
		logger,
		health.NewHandler(checks),
		userhandler.NewHandler(userService, logger),
	)

	// 8) HTTP server
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           otelhttp.NewHandler(httpRouter, cfg.Observability.ServiceName+"-api"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting",
			"host", cfg.HTTP.Host,
			"port", cfg.HTTP.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 9) Wait for shutdown signal or an error
	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-errCh:
		logger.Error("fatal error from http server", "error", err)
		stop()
	}

	// 10) Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown http server", "error", err)
	}

	logger.Info("service stopped")
}
