package booking

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/logger"
	"github.com/nekogravitycat/venue-booking-backend/internal/venue"
)

type CreateRequest struct {
	UserID        string
	VenueID       string
	Date          time.Time
	StartTime     time.Time
	DurationHours int
	AddOnIDs      []string
	Notes         string
}

type Service interface {
	// Create stores a waiting booking with its add-ons and computes its totals.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	// CalculateTotals recomputes and persists the money amounts of a booking.
	CalculateTotals(ctx context.Context, bookingID string) (Totals, error)
	GetForUser(ctx context.Context, id, userID string) (*Booking, error)
	// ConfirmPayment records the payment method and confirms a waiting booking.
	ConfirmPayment(ctx context.Context, id, userID string, method PaymentMethod) (*Booking, error)
}

// publishTimeout bounds the delivery of one event after the request has returned.
const publishTimeout = 10 * time.Second

type service struct {
	repo           Repository
	venueSvc       venue.Service
	publisher      EventPublisher
	publishTimeout time.Duration
	log            *logger.Logger
	now            func() time.Time
}

// NewService creates a booking Service. A nil publisher disables events.
func NewService(repo Repository, venueSvc venue.Service, publisher EventPublisher, log *logger.Logger) Service {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &service{
		repo:           repo,
		venueSvc:       venueSvc,
		publisher:      publisher,
		publishTimeout: publishTimeout,
		log:            log,
		now:            time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	v, err := s.venueSvc.GetByID(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}

	if req.DurationHours < MinDurationHours || req.DurationHours > MaxDurationHours {
		return nil, ErrInvalidDuration
	}

	addonIDs := make([]string, 0, len(req.AddOnIDs))
	addons := make([]venue.AddOn, 0, len(req.AddOnIDs))
	for _, id := range req.AddOnIDs {
		if slices.Contains(addonIDs, id) {
			continue
		}
		a, ok := v.AddOn(id)
		if !ok {
			return nil, ErrInvalidAddOn
		}
		addonIDs = append(addonIDs, id)
		addons = append(addons, a)
	}

	b := &Booking{
		UserID:        req.UserID,
		Venue:         *v,
		Date:          req.Date,
		StartTime:     req.StartTime,
		DurationHours: req.DurationHours,
		AddOns:        addons,
		Notes:         req.Notes,
		Status:        StatusWaiting,
	}

	if err := s.repo.Create(ctx, b, addonIDs); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	totals, err := s.CalculateTotals(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	b.Totals = totals

	return b, nil
}

func (s *service) CalculateTotals(ctx context.Context, bookingID string) (Totals, error) {
	snap, err := s.repo.GetPricing(ctx, bookingID)
	if err != nil {
		return Totals{}, err
	}

	totals := ComputeTotals(snap.PricePerHour, snap.DurationHours, snap.AddOnPrices)
	if err := s.repo.UpdateTotals(ctx, bookingID, totals); err != nil {
		return Totals{}, err
	}
	return totals, nil
}

func (s *service) GetForUser(ctx context.Context, id, userID string) (*Booking, error) {
	return s.repo.GetForUser(ctx, id, userID)
}

func (s *service) ConfirmPayment(ctx context.Context, id, userID string, method PaymentMethod) (*Booking, error) {
	b, err := s.repo.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if !method.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	next, err := b.Status.Transition(StatusConfirmed)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePayment(ctx, b.ID, method, b.Status, next); err != nil {
		return nil, err
	}
	b.PaymentMethod = method
	b.Status = next

	s.publishConfirmed(ctx, NewConfirmedEvent(b, s.now()))
	return b, nil
}

// publishConfirmed delivers the event in the background. The payment is already
// recorded, so a slow or unreachable broker only costs the event.
func (s *service) publishConfirmed(ctx context.Context, evt ConfirmedEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	go func() {
		defer cancel()
		if err := s.publisher.PublishConfirmed(ctx, evt); err != nil {
			s.log.Warn("failed to publish booking confirmed event", "booking_id", evt.BookingID, "error", err)
		}
	}()
}
