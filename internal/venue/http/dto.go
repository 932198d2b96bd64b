package http

import (
	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/form"
	reviewHttp "github.com/nekogravitycat/venue-booking-backend/internal/review/http"
	"github.com/nekogravitycat/venue-booking-backend/internal/venue"
)

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AddOnResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Label string          `json:"label"`
}

type VenueResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	City          string           `json:"city"`
	Category      CategoryResponse `json:"category"`
	PricePerHour  decimal.Decimal  `json:"price_per_hour"`
	StartingPrice decimal.Decimal  `json:"starting_price"`
	Description   string           `json:"description,omitempty"`
	Facilities    string           `json:"facilities,omitempty"`
	ImageURL      string           `json:"image_url,omitempty"`
	Address       string           `json:"address,omitempty"`
	AddOns        []AddOnResponse  `json:"addons,omitempty"`
	BookingCount  int              `json:"booking_count"`
}

func NewAddOnResponse(a venue.AddOn) AddOnResponse {
	return AddOnResponse{
		ID:    a.ID,
		Name:  a.Name,
		Price: a.Price,
		Label: a.Label(),
	}
}

func NewVenueResponse(v *venue.Venue) VenueResponse {
	addons := make([]AddOnResponse, len(v.AddOns))
	for i, a := range v.AddOns {
		addons[i] = NewAddOnResponse(a)
	}

	return VenueResponse{
		ID:            v.ID,
		Name:          v.Name,
		City:          v.City,
		Category:      CategoryResponse{ID: v.Category.ID, Name: v.Category.Name},
		PricePerHour:  v.PricePerHour,
		StartingPrice: v.StartingPrice(),
		Description:   v.Description,
		Facilities:    v.Facilities,
		ImageURL:      v.ImageURL,
		Address:       v.Address,
		AddOns:        addons,
		BookingCount:  v.BookingCount,
	}
}

func NewVenueListResponse(venues []*venue.Venue) []VenueResponse {
	items := make([]VenueResponse, len(venues))
	for i, v := range venues {
		items[i] = NewVenueResponse(v)
	}
	return items
}

// FilterPanel is the filter form state shared by the home and catalog pages.
type FilterPanel struct {
	Filters             venue.FilterInput `json:"filters"`
	AvailableCities     []string          `json:"available_cities"`
	AvailableCategories []string          `json:"available_categories"`
}

type HomePage struct {
	FilterPanel
	PopularVenues []VenueResponse `json:"popular_venues"`
}

type CatalogPage struct {
	FilterPanel
	Venues []VenueResponse `json:"venues"`
}

type DetailPage struct {
	Venue        VenueResponse               `json:"venue"`
	Reviews      []reviewHttp.ReviewResponse `json:"reviews"`
	ReviewForm   *form.Form                  `json:"review_form"`
	IsWishlisted bool                        `json:"is_wishlisted"`
}
