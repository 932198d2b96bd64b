package review

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/apperror"
)

const (
	MinRating = 1
	MaxRating = 5
)

var (
	ErrInvalidRating   = apperror.New(http.StatusBadRequest, "rating must be between 1 and 5")
	ErrCommentRequired = apperror.New(http.StatusBadRequest, "comment is required")
)

type Review struct {
	ID        string
	UserID    string
	Username  string
	VenueID   string
	Rating    int
	Comment   string
	CreatedAt time.Time
}
