package wishlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/nekogravitycat/venue-booking-backend/internal/venue"
)

type Service interface {
	// Toggle adds the venue when it is not listed and removes it otherwise.
	Toggle(ctx context.Context, userID, venueID string) (Action, *venue.Venue, error)
	IsListed(ctx context.Context, userID, venueID string) (bool, error)
	List(ctx context.Context, userID string) ([]*Item, error)
}

type service struct {
	repo     Repository
	venueSvc venue.Service
}

func NewService(repo Repository, venueSvc venue.Service) Service {
	return &service{repo: repo, venueSvc: venueSvc}
}

func (s *service) Toggle(ctx context.Context, userID, venueID string) (Action, *venue.Venue, error) {
	v, err := s.venueSvc.GetByID(ctx, venueID)
	if err != nil {
		return "", nil, err
	}

	listed, err := s.repo.Exists(ctx, userID, venueID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to check wishlist: %w", err)
	}

	if listed {
		// A concurrent toggle may have removed it already; the outcome is the same.
		if err := s.repo.Remove(ctx, userID, venueID); err != nil && !errors.Is(err, ErrNotFound) {
			return "", nil, fmt.Errorf("failed to remove from wishlist: %w", err)
		}
		return ActionRemoved, v, nil
	}

	if err := s.repo.Add(ctx, userID, venueID); err != nil {
		if errors.Is(err, ErrAlreadyListed) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("failed to add to wishlist: %w", err)
	}
	return ActionAdded, v, nil
}

func (s *service) IsListed(ctx context.Context, userID, venueID string) (bool, error) {
	return s.repo.Exists(ctx, userID, venueID)
}

func (s *service) List(ctx context.Context, userID string) ([]*Item, error) {
	return s.repo.ListByUser(ctx, userID)
}
