package venue

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.NotFound("venue not found")
	ErrCategoryRequired = apperror.New(http.StatusBadRequest, "category name is required")
)

type Category struct {
	ID   string
	Name string
}

// AddOn is an optional extra offered by a venue, such as equipment rental.
type AddOn struct {
	ID      string
	VenueID string
	Name    string
	Price   decimal.Decimal
}

// Label is the text shown next to the add-on checkbox, e.g. "Match Official - Rp150,000".
func (a AddOn) Label() string {
	return fmt.Sprintf("%s - Rp%s", a.Name, FormatThousands(a.Price))
}

type Venue struct {
	ID           string
	Name         string
	City         string
	Category     Category
	PricePerHour decimal.Decimal
	Description  string
	Facilities   string
	ImageURL     string
	Address      string
	AddOns       []AddOn
	BookingCount int
}

// StartingPrice is the cheapest price a venue can be booked for.
func (v *Venue) StartingPrice() decimal.Decimal {
	return v.PricePerHour
}

// AddOn returns the add-on with the given ID, if the venue offers it.
func (v *Venue) AddOn(id string) (AddOn, bool) {
	for _, a := range v.AddOns {
		if a.ID == id {
			return a, true
		}
	}
	return AddOn{}, false
}

// FormatThousands renders the whole part of d with comma thousands separators.
// The fractional part is truncated.
func FormatThousands(d decimal.Decimal) string {
	s := d.Truncate(0).Abs().String()

	var b strings.Builder
	if d.IsNegative() && s != "0" {
		b.WriteByte('-')
	}
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
