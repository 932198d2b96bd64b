package booking

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/venue-booking-backend/internal/venue"
)

const (
	MinDurationHours = 1
	MaxDurationHours = 12

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	ErrNotFound             = apperror.NotFound("booking not found")
	ErrInvalidTransition    = apperror.Conflict("invalid booking status transition")
	ErrInvalidDuration      = apperror.New(http.StatusBadRequest, "duration must be between 1 and 12 hours")
	ErrInvalidAddOn         = apperror.New(http.StatusBadRequest, "add-on is not offered by this venue")
	ErrInvalidPaymentMethod = apperror.New(http.StatusBadRequest, "invalid payment method")
	ErrInvalidDate          = apperror.New(http.StatusBadRequest, "invalid date")
	ErrInvalidStartTime     = apperror.New(http.StatusBadRequest, "invalid start time")
)

// DepositAmount is the fixed deposit charged on every booking.
var DepositAmount = decimal.RequireFromString("10000.00")

type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusConfirmed Status = "confirmed"
	// StatusCompleted is a valid stored state, but nothing in the application moves a booking into it.
	StatusCompleted Status = "completed"
)

var statusLabels = map[Status]string{
	StatusWaiting:   "Waiting for confirmation",
	StatusConfirmed: "Confirmed",
	StatusCompleted: "Completed",
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s Status) Label() string {
	return statusLabels[s]
}

// allowedTransitions lists, per state, the states it may move to.
var allowedTransitions = map[Status][]Status{
	StatusWaiting: {StatusConfirmed},
}

// Transition returns the new status when moving from s to `to` is allowed,
// and ErrInvalidTransition otherwise.
func (s Status) Transition(to Status) (Status, error) {
	for _, next := range allowedTransitions[s] {
		if next == to {
			return to, nil
		}
	}
	return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, to)
}

type PaymentMethod string

const (
	PaymentQRIS  PaymentMethod = "qris"
	PaymentGoPay PaymentMethod = "gopay"
)

// PaymentMethods lists the accepted methods in display order.
var PaymentMethods = []PaymentMethod{PaymentQRIS, PaymentGoPay}

func (m PaymentMethod) Valid() bool {
	return m == PaymentQRIS || m == PaymentGoPay
}

func (m PaymentMethod) Label() string {
	switch m {
	case PaymentQRIS:
		return "QRIS"
	case PaymentGoPay:
		return "GoPay"
	default:
		return ""
	}
}

// Totals are the money amounts of a booking.
type Totals struct {
	Subtotal      decimal.Decimal
	DepositAmount decimal.Decimal
	GrandTotal    decimal.Decimal
}

// ComputeTotals prices a booking:
//
//	subtotal    = pricePerHour * durationHours + sum(addonPrices)
//	grand total = subtotal + DepositAmount
//
// It performs no validation.
func ComputeTotals(pricePerHour decimal.Decimal, durationHours int, addonPrices []decimal.Decimal) Totals {
	addonTotal := decimal.Zero
	for _, p := range addonPrices {
		addonTotal = addonTotal.Add(p)
	}
	venueTotal := pricePerHour.Mul(decimal.NewFromInt(int64(durationHours)))
	subtotal := venueTotal.Add(addonTotal)

	return Totals{
		Subtotal:      subtotal,
		DepositAmount: DepositAmount,
		GrandTotal:    subtotal.Add(DepositAmount),
	}
}

// PricingSnapshot holds the stored inputs of ComputeTotals for one booking.
type PricingSnapshot struct {
	PricePerHour  decimal.Decimal
	DurationHours int
	AddOnPrices   []decimal.Decimal
}

type Booking struct {
	ID            string
	UserID        string
	Username      string
	Venue         venue.Venue
	Date          time.Time
	StartTime     time.Time // time of day, on the zero date
	DurationHours int
	AddOns        []venue.AddOn
	Notes         string
	Totals
	PaymentMethod PaymentMethod
	Status        Status
	CreatedAt     time.Time
}

// ParseDate accepts YYYY-MM-DD from year 1 to 9999.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil || d.Year() < 1 {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// ParseStartTime accepts HH:MM and HH:MM:SS.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{TimeLayout, time.TimeOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidStartTime
}
