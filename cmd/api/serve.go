package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-contact-api/config"
	v1 "portfolio-contact-api/internal/delivery/http/v1"
	"portfolio-contact-api/internal/usecase"
	"portfolio-contact-api/pkg/logger"
	"portfolio-contact-api/pkg/redis"
	"portfolio-contact-api/pkg/telemetry"
	"portfolio-contact-api/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.Log)
	defer logger.Close()
	logger.Log.Info("Starting portfolio contact API", "port", cfg.Port, "relay", cfg.Relay)
	gin.SetMode(cfg.GinMode)

	// 3. Setup Relay (fail fast, no built-in credentials)
	relay, err := newRelay(cfg)
	if err != nil {
		logger.Log.Error("Contact relay is not configured", "error", err)
		return err
	}

	// 4. Setup Tracing
	shutdownTracing, err := telemetry.Setup(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		logger.Log.Warn("Tracing disabled", "error", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	// 5. Setup Redis (optional, rate limiting)
	var redisProbe usecase.HealthProbe
	if err := redis.Initialize(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		if errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
		} else {
			logger.Log.Warn("Redis unavailable. Rate limiting will use in-memory fallback.", "error", err)
		}
	} else {
		redisProbe = redis.HealthCheck
		defer redis.Close()
	}

	// 6. Setup UseCases
	contactUC := usecase.NewContactUsecase(relay, validation.New(), cfg.SendTimeout)
	healthUC := usecase.NewHealthUsecase(relay, redisProbe)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		Config:    cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			logger.Log.Error("Listen failed", "error", err)
			return err
		}
		return nil
	case <-quit:
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
		return err
	}

	logger.Log.Info("Server exiting")
	return nil
}
