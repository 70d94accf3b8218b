// Command web serves the user management UI against a users collection API.
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

	"usermgmt/internal/app/usersync"
	"usermgmt/internal/cache"
	"usermgmt/internal/clients/usersapi"
	"usermgmt/internal/config"
	"usermgmt/internal/http/handlers/health"
	"usermgmt/internal/http/handlers/web"
	"usermgmt/internal/http/router"
	"usermgmt/internal/kafka"
	"usermgmt/internal/logging"
	"usermgmt/internal/telemetry"
	"usermgmt/internal/validation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1) Configuration & logging
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(
		cfg.Observability.ServiceName+"-web",
		cfg.Observability.ServiceEnv,
		cfg.LogLevel,
	)
	defer logging.Sync(logger)

	logger.Info("starting service",
		"env", cfg.Environment,
		"users_api", cfg.UsersAPI.URL,
	)

	// 2) Telemetry
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

	// 3) Remote collection client
	remote, err := usersapi.New(cfg.UsersAPI.URL, cfg.UsersAPI.Timeout, logger)
	if err != nil {
		logger.Error("failed to init users api client", "error", err)
		os.Exit(1)
	}

	// 4) Session store: Redis when enabled, otherwise in process
	checks := map[string]health.Pinger{}
	var sessionCache cache.SessionCache = cache.NewMemorySessionCache()
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
		sessionCache = cache.NewSessionCache(redisClient)
		checks["redis"] = redisClient
	}

	// 5) Change feed: remote user events make every session reload its list
	feed := usersync.NewChangeFeed()
	kafkaRouter, err := kafka.NewRouter(ctx, cfg.Kafka, logger, func(ctx context.Context, env kafka.Envelope) error {
		if !kafka.IsUserEvent(env.Type) {
			return nil
		}
		var ref kafka.UserRef
		if err := env.Decode(&ref); err != nil {
			logger.Error("undecodable user event", "type", env.Type, "error", err)
		}
		gen := feed.Bump()
		logger.Debug("users changed remotely", "type", env.Type, "id", ref.ID, "generation", gen)
		return nil
	})
	if err != nil {
		logger.Error("failed to init kafka router", "error", err)
		os.Exit(1)
	}

	// 6) Controller, handlers, router
	webHandler := web.NewHandler(
		usersync.NewController(remote, logger),
		validation.Default(),
		web.NewSessions(sessionCache, cfg.UI.CookieName, cfg.UI.SessionTTL, logger),
		feed,
		web.Options{SurfaceErrors: cfg.UI.SurfaceErrors},
		logger,
	)

	httpRouter := router.NewWebRouter(logger, health.NewHandler(checks), webHandler)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port),
		Handler:           otelhttp.NewHandler(httpRouter, cfg.Observability.ServiceName+"-web"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 7) Start HTTP server and Kafka router
	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting",
			"host", cfg.Web.Host,
			"port", cfg.Web.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	go func() {
		if err := kafkaRouter.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-errCh:
		logger.Error("fatal error from subsystem", "error", err)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown http server", "error", err)
	}
	if err := kafkaRouter.Close(shutdownCtx); err != nil {
		logger.Error("failed to close kafka router", "error", err)
	}

	logger.Info("service stopped")
}
