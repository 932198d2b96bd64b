package venue

import (
	"context"
	"fmt"
)

const popularLimit = 3

// Options lists the values offered by the filter form.
type Options struct {
	Cities     []string
	Categories []string
}

type Service interface {
	// Popular returns the most booked venues matching the filter.
	Popular(ctx context.Context, filter Filter) ([]*Venue, error)
	// List returns every venue matching the filter, with add-ons, ordered by name.
	List(ctx context.Context, filter Filter) ([]*Venue, error)
	// GetByID returns a venue with its add-ons.
	GetByID(ctx context.Context, id string) (*Venue, error)
	FilterOptions(ctx context.Context) (*Options, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Popular(ctx context.Context, filter Filter) ([]*Venue, error) {
	return s.repo.List(ctx, filter, ListOptions{Popular: true, Limit: popularLimit})
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Venue, error) {
	venues, err := s.repo.List(ctx, filter, ListOptions{})
	if err != nil {
		return nil, err
	}
	if err := s.attachAddOns(ctx, venues...); err != nil {
		return nil, err
	}
	return venues, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Venue, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachAddOns(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) FilterOptions(ctx context.Context) (*Options, error) {
	cities, err := s.repo.DistinctCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	categories, err := s.repo.DistinctCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return &Options{Cities: cities, Categories: categories}, nil
}

func (s *service) attachAddOns(ctx context.Context, venues ...*Venue) error {
	ids := make([]string, 0, len(venues))
	for _, v := range venues {
		ids = append(ids, v.ID)
	}

	addons, err := s.repo.AddOnsByVenue(ctx, ids...)
	if err != nil {
		return fmt.Errorf("failed to load add-ons: %w", err)
	}
	for _, v := range venues {
		v.AddOns = addons[v.ID]
		if v.AddOns == nil {
			v.AddOns = make([]AddOn, 0)
		}
	}
	return nil
}
