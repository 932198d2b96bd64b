package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/venue-booking-backend/internal/app"
	"github.com/nekogravitycat/venue-booking-backend/internal/auth"
	"github.com/nekogravitycat/venue-booking-backend/internal/config"
	"github.com/nekogravitycat/venue-booking-backend/internal/db"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/logger"
	"github.com/nekogravitycat/venue-booking-backend/internal/queue"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.IsProduction, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logg.Sync()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		logg.Fatal("failed to connect to db", "error", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		logg.Fatal("failed to apply schema", "error", err)
	}

	appCfg := app.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		DBPool:       pool,
		JWTSecret:    cfg.JWTSecret,
		SessionTTL:   cfg.SessionTTL,
		BcryptCost:   cfg.BcryptCost,
		Logger:       logg,
	}

	// Redis keeps logged-out sessions revoked across restarts and instances.
	if cfg.RedisAddr != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logg.Warn("redis unavailable, using in-memory session revocation", "error", err)
		} else {
			defer func() { _ = rdb.Close() }()
			appCfg.Revoker = auth.NewRedisRevoker(rdb)
		}
	}

	if cfg.AMQPURL != "" {
		publisher := queue.NewPublisher(cfg.AMQPURL)
		defer func() { _ = publisher.Close() }()
		appCfg.Publisher = publisher
	} else {
		logg.Info("AMQP_URL not set, booking events are disabled")
	}

	container := app.NewContainer(appCfg)

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in separate goroutine
	go func() {
		logg.Info("server running", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("server error", "error", err)
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	logg.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error("server forced to shutdown", "error", err)
	}

	logg.Info("server exited gracefully")
}
