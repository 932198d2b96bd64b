// Command worker consumes booking.confirmed events and writes them to the log.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nekogravitycat/venue-booking-backend/internal/booking"
	"github.com/nekogravitycat/venue-booking-backend/internal/config"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/logger"
	"github.com/nekogravitycat/venue-booking-backend/internal/queue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadWorker()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.IsProduction, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logg.Sync()

	consumer := queue.NewConsumer(cfg.AMQPURL, func(_ context.Context, evt booking.ConfirmedEvent) error {
		logg.Info("booking confirmed",
			"booking_id", evt.BookingID,
			"user_id", evt.UserID,
			"username", evt.Username,
			"venue", evt.VenueName,
			"date", evt.Date,
			"start_time", evt.StartTime,
			"duration_hours", evt.DurationHours,
			"payment_method", evt.PaymentMethod,
			"grand_total", evt.GrandTotal.StringFixed(2),
			"confirmed_at", evt.ConfirmedAt,
		)
		return nil
	}, logg)

	logg.Info("worker started", "queue", booking.ConfirmedEventType)
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Fatal("worker stopped", "error", err)
	}
	logg.Info("worker exited gracefully")
}
