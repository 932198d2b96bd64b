package wishlist

import (
	"time"

	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/venue-booking-backend/internal/venue"
)

var (
	ErrNotFound      = apperror.NotFound("wishlist item not found")
	ErrAlreadyListed = apperror.Conflict("venue is already in the wishlist")
)

// Action is the outcome of a toggle.
type Action string

const (
	ActionAdded   Action = "added"
	ActionRemoved Action = "removed"
)

// Item is a venue saved by a user. Venue carries list fields only (no add-ons).
type Item struct {
	ID        string
	UserID    string
	Venue     venue.Venue
	CreatedAt time.Time
}
