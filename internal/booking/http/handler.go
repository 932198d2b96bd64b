package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/venue-booking-backend/internal/auth"
	"github.com/nekogravitycat/venue-booking-backend/internal/booking"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/flash"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/form"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/venue-booking-backend/internal/venue"
	venueHttp "github.com/nekogravitycat/venue-booking-backend/internal/venue/http"
)

const (
	bookingFormTemplate = "booking_form.tmpl"
	paymentTemplate     = "booking_payment.tmpl"
	successTemplate     = "booking_success.tmpl"
)

type Handler struct {
	service      booking.Service
	venueService venue.Service
}

func NewHandler(service booking.Service, venueService venue.Service) *Handler {
	return &Handler{
		service:      service,
		venueService: venueService,
	}
}

// BookPage renders the booking form of a venue.
func (h *Handler) BookPage(c *gin.Context) {
	v, ok := h.venue(c)
	if !ok {
		return
	}
	h.renderBookingForm(c, http.StatusOK, v, CreateBookingRequest{}, nil)
}

// Create places a waiting booking and sends the user to the payment page.
func (h *Handler) Create(c *gin.Context) {
	v, ok := h.venue(c)
	if !ok {
		return
	}

	var body CreateBookingRequest
	bindErrs := form.Bind(c, &body)
	req, verrs := body.Validate(v)
	if errs := bindErrs.Merge(verrs); !errs.Empty() {
		h.renderBookingForm(c, http.StatusBadRequest, v, body, errs)
		return
	}
	req.UserID = auth.GetUserID(c)

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		errs := &form.Errors{}
		switch {
		case errors.Is(err, booking.ErrInvalidAddOn):
			errs.Add("addons", form.MsgInvalidChoice)
		case errors.Is(err, booking.ErrInvalidDuration):
			errs.Add("duration_hours", form.MsgInvalidValue)
		default:
			response.Error(c, err)
			return
		}
		h.renderBookingForm(c, http.StatusBadRequest, v, body, errs)
		return
	}

	flash.Info(c, "Booking created. Please complete the payment to confirm.")
	c.Redirect(http.StatusFound, "/booking/"+b.ID+"/payment")
}

// PaymentPage shows the totals of the user's booking and the payment form.
func (h *Handler) PaymentPage(c *gin.Context) {
	b, ok := h.booking(c)
	if !ok {
		return
	}
	h.renderPayment(c, http.StatusOK, b, PaymentRequest{}, nil)
}

// Pay records the payment method and confirms the booking.
func (h *Handler) Pay(c *gin.Context) {
	b, ok := h.booking(c)
	if !ok {
		return
	}

	var body PaymentRequest
	if errs := form.Bind(c, &body); !errs.Empty() {
		h.renderPayment(c, http.StatusBadRequest, b, body, errs)
		return
	}

	method := booking.PaymentMethod(body.PaymentMethod)
	if _, err := h.service.ConfirmPayment(c.Request.Context(), b.ID, auth.GetUserID(c), method); err != nil {
		if errors.Is(err, booking.ErrInvalidPaymentMethod) {
			errs := &form.Errors{}
			errs.Add("payment_method", form.MsgInvalidChoice)
			h.renderPayment(c, http.StatusBadRequest, b, body, errs)
			return
		}
		response.Error(c, err)
		return
	}

	flash.Success(c, "Payment confirmed! Enjoy your game.")
	c.Redirect(http.StatusFound, "/booking/"+b.ID+"/success")
}

// Success shows the confirmation page.
func (h *Handler) Success(c *gin.Context) {
	b, ok := h.booking(c)
	if !ok {
		return
	}
	response.Render(c, http.StatusOK, successTemplate, SuccessPage{Booking: NewBookingResponse(b)})
}

func (h *Handler) venue(c *gin.Context) (*venue.Venue, bool) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.NotFound(c)
		return nil, false
	}
	v, err := h.venueService.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return v, true
}

// booking loads the booking in the path. Bookings of other users are not found.
func (h *Handler) booking(c *gin.Context) (*booking.Booking, bool) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.NotFound(c)
		return nil, false
	}
	b, err := h.service.GetForUser(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return b, true
}

func (h *Handler) renderBookingForm(c *gin.Context, status int, v *venue.Venue, body CreateBookingRequest, errs *form.Errors) {
	response.Render(c, status, bookingFormTemplate, BookingFormPage{
		Venue: venueHttp.NewVenueResponse(v),
		Form:  NewBookingForm(v, body).WithErrors(errs),
	})
}

func (h *Handler) renderPayment(c *gin.Context, status int, b *booking.Booking, body PaymentRequest, errs *form.Errors) {
	response.Render(c, status, paymentTemplate, PaymentPage{
		Booking:    NewBookingResponse(b),
		Form:       NewPaymentForm(body).WithErrors(errs),
		Deposit:    b.DepositAmount,
		Subtotal:   b.Subtotal,
		GrandTotal: b.GrandTotal,
	})
}
