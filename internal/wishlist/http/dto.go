package http

import (
	"time"

	venueHttp "github.com/nekogravitycat/venue-booking-backend/internal/venue/http"
	"github.com/nekogravitycat/venue-booking-backend/internal/wishlist"
)

type ItemResponse struct {
	ID        string                  `json:"id"`
	Venue     venueHttp.VenueResponse `json:"venue"`
	CreatedAt time.Time               `json:"created_at"`
}

type WishlistPage struct {
	Items []ItemResponse `json:"items"`
}

type ToggleResponse struct {
	Action  wishlist.Action `json:"action"`
	VenueID string          `json:"venue_id"`
}

func NewItemResponse(it *wishlist.Item) ItemResponse {
	return ItemResponse{
		ID:        it.ID,
		Venue:     venueHttp.NewVenueResponse(&it.Venue),
		CreatedAt: it.CreatedAt,
	}
}
