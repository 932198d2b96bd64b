package booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ConfirmedEventType is the routing key of ConfirmedEvent.
const ConfirmedEventType = "booking.confirmed"

// ConfirmedEvent is published once a booking's payment has been recorded.
type ConfirmedEvent struct {
	BookingID     string          `json:"booking_id"`
	UserID        string          `json:"user_id"`
	Username      string          `json:"username"`
	VenueID       string          `json:"venue_id"`
	VenueName     string          `json:"venue_name"`
	Date          string          `json:"date"`
	StartTime     string          `json:"start_time"`
	DurationHours int             `json:"duration_hours"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	ConfirmedAt   time.Time       `json:"confirmed_at"`
}

// EventPublisher delivers booking events to other processes.
type EventPublisher interface {
	PublishConfirmed(ctx context.Context, evt ConfirmedEvent) error
}

type nopPublisher struct{}

func (nopPublisher) PublishConfirmed(context.Context, ConfirmedEvent) error { return nil }

// NewConfirmedEvent builds the event for a confirmed booking.
func NewConfirmedEvent(b *Booking, at time.Time) ConfirmedEvent {
	return ConfirmedEvent{
		BookingID:     b.ID,
		UserID:        b.UserID,
		Username:      b.Username,
		VenueID:       b.Venue.ID,
		VenueName:     b.Venue.Name,
		Date:          b.Date.Format(DateLayout),
		StartTime:     b.StartTime.Format(TimeLayout),
		DurationHours: b.DurationHours,
		PaymentMethod: b.PaymentMethod,
		GrandTotal:    b.GrandTotal,
		ConfirmedAt:   at.UTC(),
	}
}
