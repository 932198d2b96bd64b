package http

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/venue-booking-backend/internal/booking"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/form"
	"github.com/nekogravitycat/venue-booking-backend/internal/venue"
	venueHttp "github.com/nekogravitycat/venue-booking-backend/internal/venue/http"
)

const (
	msgInvalidDate   = "Enter a valid date."
	msgInvalidTime   = "Enter a valid time."
	msgWholeNumber   = "Enter a whole number."
	msgDurationBelow = "Ensure this value is greater than or equal to 1."
	msgDurationAbove = "Ensure this value is less than or equal to 12."
)

// CreateBookingRequest is the payload of the booking form.
type CreateBookingRequest struct {
	Date          string   `form:"date" json:"date" binding:"required"`
	StartTime     string   `form:"start_time" json:"start_time" binding:"required"`
	DurationHours string   `form:"duration_hours" json:"duration_hours" binding:"required"`
	AddOns        []string `form:"addons" json:"addons" binding:"omitempty,dive,uuid"`
	Notes         string   `form:"notes" json:"notes"`
}

// Validate parses the form against the venue being booked.
// Add-ons must be offered by that venue.
func (r *CreateBookingRequest) Validate(v *venue.Venue) (booking.CreateRequest, *form.Errors) {
	errs := &form.Errors{}
	var req booking.CreateRequest

	date, err := booking.ParseDate(r.Date)
	if err != nil {
		errs.Add("date", msgInvalidDate)
	}
	req.Date = date

	start, err := booking.ParseStartTime(r.StartTime)
	if err != nil {
		errs.Add("start_time", msgInvalidTime)
	}
	req.StartTime = start

	hours, err := strconv.Atoi(strings.TrimSpace(r.DurationHours))
	switch {
	case err != nil:
		errs.Add("duration_hours", msgWholeNumber)
	case hours < booking.MinDurationHours:
		errs.Add("duration_hours", msgDurationBelow)
	case hours > booking.MaxDurationHours:
		errs.Add("duration_hours", msgDurationAbove)
	}
	req.DurationHours = hours

	for _, id := range r.AddOns {
		if _, ok := v.AddOn(id); !ok {
			errs.Add("addons", form.MsgInvalidChoice)
			break
		}
	}
	req.AddOnIDs = r.AddOns
	req.VenueID = v.ID
	req.Notes = r.Notes

	return req, errs.OrNil()
}

// NewBookingForm builds the booking form for a venue, keeping submitted values.
func NewBookingForm(v *venue.Venue, r CreateBookingRequest) *form.Form {
	duration := r.DurationHours
	if duration == "" {
		duration = "1"
	}

	choices := make([]form.Choice, len(v.AddOns))
	for i, a := range v.AddOns {
		choices[i] = form.Choice{Value: a.ID, Label: a.Label(), Selected: slices.Contains(r.AddOns, a.ID)}
	}

	return form.New(
		&form.Field{Name: "date", Label: "Date", Widget: form.DateInput, Value: r.Date,
			Attrs: map[string]string{"type": "date"}},
		&form.Field{Name: "start_time", Label: "Start time", Widget: form.TimeInput, Value: r.StartTime,
			Attrs: map[string]string{"type": "time"}},
		&form.Field{Name: "duration_hours", Label: "Duration hours", Widget: form.NumberInput, Value: duration,
			Attrs: map[string]string{"min": "1", "max": "12"}},
		&form.Field{Name: "addons", Label: "Add-ons", Widget: form.CheckboxSelectMultiple, Choices: choices},
		&form.Field{Name: "notes", Label: "Notes", Widget: form.Textarea, Value: r.Notes,
			Attrs: map[string]string{"rows": "3", "placeholder": "Notes or requirements"}},
	)
}

// PaymentRequest is the payload of the payment form.
type PaymentRequest struct {
	PaymentMethod string `form:"payment_method" json:"payment_method" binding:"required,oneof=qris gopay"`
}

// NewPaymentForm builds the payment method radio group.
func NewPaymentForm(r PaymentRequest) *form.Form {
	choices := make([]form.Choice, len(booking.PaymentMethods))
	for i, m := range booking.PaymentMethods {
		choices[i] = form.Choice{Value: string(m), Label: m.Label(), Selected: r.PaymentMethod == string(m)}
	}
	return form.New(
		&form.Field{Name: "payment_method", Label: "Payment method", Widget: form.RadioSelect, Choices: choices},
	)
}

type BookingResponse struct {
	ID            string                    `json:"id"`
	Venue         venueHttp.VenueResponse   `json:"venue"`
	Date          string                    `json:"date"`
	StartTime     string                    `json:"start_time"`
	DurationHours int                       `json:"duration_hours"`
	AddOns        []venueHttp.AddOnResponse `json:"addons"`
	Notes         string                    `json:"notes"`
	Subtotal      decimal.Decimal           `json:"subtotal"`
	DepositAmount decimal.Decimal           `json:"deposit_amount"`
	GrandTotal    decimal.Decimal           `json:"grand_total"`
	PaymentMethod booking.PaymentMethod     `json:"payment_method"`
	Status        booking.Status            `json:"status"`
	StatusLabel   string                    `json:"status_label"`
	CreatedAt     time.Time                 `json:"created_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	addons := make([]venueHttp.AddOnResponse, len(b.AddOns))
	for i, a := range b.AddOns {
		addons[i] = venueHttp.NewAddOnResponse(a)
	}

	return BookingResponse{
		ID:            b.ID,
		Venue:         venueHttp.NewVenueResponse(&b.Venue),
		Date:          b.Date.Format(booking.DateLayout),
		StartTime:     b.StartTime.Format(booking.TimeLayout),
		DurationHours: b.DurationHours,
		AddOns:        addons,
		Notes:         b.Notes,
		Subtotal:      b.Subtotal,
		DepositAmount: b.DepositAmount,
		GrandTotal:    b.GrandTotal,
		PaymentMethod: b.PaymentMethod,
		Status:        b.Status,
		StatusLabel:   b.Status.Label(),
		CreatedAt:     b.CreatedAt,
	}
}

type BookingFormPage struct {
	Venue venueHttp.VenueResponse `json:"venue"`
	Form  *form.Form              `json:"form"`
}

type PaymentPage struct {
	Booking    BookingResponse `json:"booking"`
	Form       *form.Form      `json:"form"`
	Deposit    decimal.Decimal `json:"deposit"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

type SuccessPage struct {
	Booking BookingResponse `json:"booking"`
}
