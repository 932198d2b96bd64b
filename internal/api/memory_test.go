package api

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/venue-booking-backend/internal/booking"
	"github.com/nekogravitycat/venue-booking-backend/internal/review"
	"github.com/nekogravitycat/venue-booking-backend/internal/user"
	"github.com/nekogravitycat/venue-booking-backend/internal/venue"
	"github.com/nekogravitycat/venue-booking-backend/internal/wishlist"
)

// memoryStore backs every repository of the router tests.
type memoryStore struct {
	mu         sync.Mutex
	users      map[string]*user.User
	categories map[string]venue.Category
	venues     []*venue.Venue
	reviews    []*review.Review
	wishlist   []*wishlist.Item
	bookings   map[string]*memoryBooking
}

type memoryBooking struct {
	booking  booking.Booking
	addonIDs []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:      make(map[string]*user.User),
		categories: make(map[string]venue.Category),
		bookings:   make(map[string]*memoryBooking),
	}
}

// Users

type memoryUsers struct{ s *memoryStore }

func (r memoryUsers) GetByUsername(_ context.Context, username string) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (r memoryUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r memoryUsers) Create(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return user.ErrUsernameTaken
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r memoryUsers) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		u.LastLoginAt = &t
	}
	return nil
}

// Venues

type memoryVenues struct{ s *memoryStore }

func (r memoryVenues) bookingCount(venueID string) int {
	n := 0
	for _, b := range r.s.bookings {
		if b.booking.Venue.ID == venueID {
			n++
		}
	}
	return n
}

func (r memoryVenues) List(_ context.Context, f venue.Filter, opts venue.ListOptions) ([]*venue.Venue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*venue.Venue
	for _, v := range r.s.venues {
		if f.City != "" && !strings.EqualFold(v.City, f.City) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(v.Category.Name, f.Category) {
			continue
		}
		if f.MaxPrice != nil && v.PricePerHour.GreaterThan(*f.MaxPrice) {
			continue
		}
		cp := *v
		cp.AddOns = nil
		cp.BookingCount = r.bookingCount(v.ID)
		out = append(out, &cp)
	}

	slices.SortFunc(out, func(a, b *venue.Venue) int {
		if opts.Popular && a.BookingCount != b.BookingCount {
			return b.BookingCount - a.BookingCount
		}
		return strings.Compare(a.Name, b.Name)
	})
	if opts.Limit > 0 && uint64(len(out)) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (r memoryVenues) GetByID(_ context.Context, id string) (*venue.Venue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := r.s.venue(id)
	if v == nil {
		return nil, venue.ErrNotFound
	}
	cp := *v
	cp.AddOns = nil
	cp.BookingCount = r.bookingCount(v.ID)
	return &cp, nil
}

func (s *memoryStore) venue(id string) *venue.Venue {
	for _, v := range s.venues {
		if v.ID == id {
			return v
		}
	}
	return nil
}

func (r memoryVenues) AddOnsByVenue(_ context.Context, ids ...string) (map[string][]venue.AddOn, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string][]venue.AddOn)
	for _, id := range ids {
		if v := r.s.venue(id); v != nil && len(v.AddOns) > 0 {
			out[id] = append([]venue.AddOn(nil), v.AddOns...)
		}
	}
	return out, nil
}

func (r memoryVenues) DistinctCities(context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var cities []string
	for _, v := range r.s.venues {
		if !slices.Contains(cities, v.City) {
			cities = append(cities, v.City)
		}
	}
	slices.Sort(cities)
	return cities, nil
}

func (r memoryVenues) DistinctCategories(context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var names []string
	for _, v := range r.s.venues {
		if !slices.Contains(names, v.Category.Name) {
			names = append(names, v.Category.Name)
		}
	}
	slices.Sort(names)
	return names, nil
}

func (r memoryVenues) UpsertCategory(_ context.Context, c *venue.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing, ok := r.s.categories[c.Name]; ok {
		*c = existing
		return nil
	}
	c.ID = uuid.NewString()
	r.s.categories[c.Name] = *c
	return nil
}

func (r memoryVenues) ExistsByName(_ context.Context, name string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.venues {
		if v.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r memoryVenues) Create(_ context.Context, v *venue.Venue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v.ID = uuid.NewString()
	for i := range v.AddOns {
		v.AddOns[i].ID = uuid.NewString()
		v.AddOns[i].VenueID = v.ID
	}
	cp := *v
	r.s.venues = append(r.s.venues, &cp)
	return nil
}

// Reviews

type memoryReviews struct{ s *memoryStore }

func (r memoryReviews) Create(_ context.Context, rv *review.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv.ID = uuid.NewString()
	rv.CreatedAt = time.Now()
	if u, ok := r.s.users[rv.UserID]; ok {
		rv.Username = u.Username
	}
	cp := *rv
	r.s.reviews = append(r.s.reviews, &cp)
	return nil
}

func (r memoryReviews) ListByVenue(_ context.Context, venueID string) ([]*review.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*review.Review
	for i := len(r.s.reviews) - 1; i >= 0; i-- {
		if r.s.reviews[i].VenueID == venueID {
			cp := *r.s.reviews[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Wishlist

type memoryWishlist struct{ s *memoryStore }

func (r memoryWishlist) index(userID, venueID string) int {
	return slices.IndexFunc(r.s.wishlist, func(it *wishlist.Item) bool {
		return it.UserID == userID && it.Venue.ID == venueID
	})
}

func (r memoryWishlist) Exists(_ context.Context, userID, venueID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.index(userID, venueID) >= 0, nil
}

func (r memoryWishlist) Add(_ context.Context, userID, venueID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.index(userID, venueID) >= 0 {
		return wishlist.ErrAlreadyListed
	}
	v := r.s.venue(venueID)
	if v == nil {
		return venue.ErrNotFound
	}
	item := &wishlist.Item{ID: uuid.NewString(), UserID: userID, Venue: *v, CreatedAt: time.Now()}
	item.Venue.AddOns = nil
	r.s.wishlist = append(r.s.wishlist, item)
	return nil
}

func (r memoryWishlist) Remove(_ context.Context, userID, venueID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.index(userID, venueID)
	if i < 0 {
		return wishlist.ErrNotFound
	}
	r.s.wishlist = slices.Delete(r.s.wishlist, i, i+1)
	return nil
}

func (r memoryWishlist) ListByUser(_ context.Context, userID string) ([]*wishlist.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*wishlist.Item
	for i := len(r.s.wishlist) - 1; i >= 0; i-- {
		if it := r.s.wishlist[i]; it.UserID == userID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Bookings

type memoryBookings struct{ s *memoryStore }

func (r memoryBookings) Create(_ context.Context, b *booking.Booking, addonIDs []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now()
	b.Totals = booking.Totals{Subtotal: decimal.Zero, DepositAmount: booking.DepositAmount, GrandTotal: decimal.Zero}
	r.s.bookings[b.ID] = &memoryBooking{booking: *b, addonIDs: slices.Clone(addonIDs)}
	return nil
}

func (r memoryBookings) GetForUser(_ context.Context, id, userID string) (*booking.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	mb, ok := r.s.bookings[id]
	if !ok || mb.booking.UserID != userID {
		return nil, booking.ErrNotFound
	}
	cp := mb.booking
	if u, ok := r.s.users[cp.UserID]; ok {
		cp.Username = u.Username
	}
	return &cp, nil
}

func (r memoryBookings) GetPricing(_ context.Context, id string) (*booking.PricingSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	mb, ok := r.s.bookings[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	snap := &booking.PricingSnapshot{
		PricePerHour:  mb.booking.Venue.PricePerHour,
		DurationHours: mb.booking.DurationHours,
	}
	for _, a := range mb.booking.AddOns {
		snap.AddOnPrices = append(snap.AddOnPrices, a.Price)
	}
	return snap, nil
}

func (r memoryBookings) UpdateTotals(_ context.Context, id string, t booking.Totals) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	mb, ok := r.s.bookings[id]
	if !ok {
		return booking.ErrNotFound
	}
	mb.booking.Totals = t
	return nil
}

func (r memoryBookings) UpdatePayment(_ context.Context, id string, method booking.PaymentMethod, from, to booking.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	mb, ok := r.s.bookings[id]
	if !ok || mb.booking.Status != from {
		return booking.ErrInvalidTransition
	}
	mb.booking.PaymentMethod = method
	mb.booking.Status = to
	return nil
}
