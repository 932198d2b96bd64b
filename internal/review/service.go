package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/nekogravitycat/venue-booking-backend/internal/venue"
)

type Service interface {
	Create(ctx context.Context, userID, venueID string, rating int, comment string) (*Review, error)
	ListByVenue(ctx context.Context, venueID string) ([]*Review, error)
}

type service struct {
	repo     Repository
	venueSvc venue.Service
}

func NewService(repo Repository, venueSvc venue.Service) Service {
	return &service{repo: repo, venueSvc: venueSvc}
}

// Create stores a review. The venue must exist; rating must be within
// [MinRating, MaxRating] and the comment must not be blank.
func (s *service) Create(ctx context.Context, userID, venueID string, rating int, comment string) (*Review, error) {
	if _, err := s.venueSvc.GetByID(ctx, venueID); err != nil {
		return nil, err
	}

	if rating < MinRating || rating > MaxRating {
		return nil, ErrInvalidRating
	}
	if strings.TrimSpace(comment) == "" {
		return nil, ErrCommentRequired
	}

	rv := &Review{
		UserID:  userID,
		VenueID: venueID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return rv, nil
}

func (s *service) ListByVenue(ctx context.Context, venueID string) ([]*Review, error) {
	return s.repo.ListByVenue(ctx, venueID)
}
