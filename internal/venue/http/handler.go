package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/venue-booking-backend/internal/auth"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/venue-booking-backend/internal/review"
	reviewHttp "github.com/nekogravitycat/venue-booking-backend/internal/review/http"
	"github.com/nekogravitycat/venue-booking-backend/internal/venue"
	"github.com/nekogravitycat/venue-booking-backend/internal/wishlist"
)

type VenueHandler struct {
	venueService    venue.Service
	reviewService   review.Service
	wishlistService wishlist.Service
}

func NewHandler(venueService venue.Service, reviewService review.Service, wishlistService wishlist.Service) *VenueHandler {
	return &VenueHandler{
		venueService:    venueService,
		reviewService:   reviewService,
		wishlistService: wishlistService,
	}
}

// Home shows the three most booked venues matching the filters.
func (h *VenueHandler) Home(c *gin.Context) {
	panel, filter, ok := h.filterPanel(c)
	if !ok {
		return
	}

	venues, err := h.venueService.Popular(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Render(c, http.StatusOK, "home.tmpl", HomePage{
		FilterPanel:   panel,
		PopularVenues: NewVenueListResponse(venues),
	})
}

// Catalog lists every venue matching the filters.
func (h *VenueHandler) Catalog(c *gin.Context) {
	panel, filter, ok := h.filterPanel(c)
	if !ok {
		return
	}

	venues, err := h.venueService.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Render(c, http.StatusOK, "catalog.tmpl", CatalogPage{
		FilterPanel: panel,
		Venues:      NewVenueListResponse(venues),
	})
}

// Detail shows a venue with its reviews and the current user's wishlist state.
func (h *VenueHandler) Detail(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.NotFound(c)
		return
	}

	ctx := c.Request.Context()

	v, err := h.venueService.GetByID(ctx, req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	reviews, err := h.reviewService.ListByVenue(ctx, v.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	listed, err := h.wishlistService.IsListed(ctx, auth.GetUserID(c), v.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Render(c, http.StatusOK, "venue_detail.tmpl", DetailPage{
		Venue:        NewVenueResponse(v),
		Reviews:      reviewHttp.NewReviewListResponse(reviews),
		ReviewForm:   reviewHttp.NewReviewForm(),
		IsWishlisted: listed,
	})
}

// filterPanel reads the filter query and loads the filter options.
// It renders the error itself and returns ok=false on failure.
func (h *VenueHandler) filterPanel(c *gin.Context) (FilterPanel, venue.Filter, bool) {
	var in venue.FilterInput
	// Filter inputs are free text; binding them cannot fail in a way worth reporting.
	_ = c.ShouldBindQuery(&in)

	opts, err := h.venueService.FilterOptions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return FilterPanel{}, venue.Filter{}, false
	}

	panel := FilterPanel{
		Filters:             in,
		AvailableCities:     opts.Cities,
		AvailableCategories: opts.Categories,
	}
	return panel, in.Filter(), true
}
