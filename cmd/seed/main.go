// Command seed applies the database schema and installs the reference catalog.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nekogravitycat/venue-booking-backend/internal/config"
	"github.com/nekogravitycat/venue-booking-backend/internal/db"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/logger"
	"github.com/nekogravitycat/venue-booking-backend/internal/venue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.IsProduction, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logg.Sync()

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		logg.Fatal("failed to connect to db", "error", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		logg.Fatal("failed to apply schema", "error", err)
	}
	logg.Info("schema applied")

	created, err := venue.Seed(ctx, venue.NewPgxRepository(pool))
	if err != nil {
		logg.Fatal("failed to seed catalog", "error", err)
	}
	logg.Info("catalog seeded", "venues_created", created)
}
