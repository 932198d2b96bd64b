package venue

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// SeedVenue is one venue of the reference catalog.
type SeedVenue struct {
	Venue    Venue
	Category string
	AddOns   []AddOn
}

func addon(name string, price int64) AddOn {
	return AddOn{Name: name, Price: decimal.NewFromInt(price)}
}

// ReferenceCatalog is the catalog installed on a fresh database.
var ReferenceCatalog = []SeedVenue{
	{
		Category: "Futsal",
		Venue: Venue{
			Name:         "Arena Nusantara Futsal",
			City:         "Jakarta",
			PricePerHour: decimal.NewFromInt(250000),
			Description:  "Premium synthetic turf with climate control and pro-grade lighting.",
			Facilities:   "Locker room, shower, scoreboard, cafe corner",
			ImageURL:     "https://images.unsplash.com/photo-1521412644187-c49fa049e84d?auto=format&fit=crop&w=800&q=80",
			Address:      "Jl. Merdeka No. 8, Jakarta Pusat",
		},
		AddOns: []AddOn{addon("Match Official", 150000), addon("Team Jersey Rental", 200000)},
	},
	{
		Category: "Badminton",
		Venue: Venue{
			Name:         "Yogyakarta Smash Court",
			City:         "Yogyakarta",
			PricePerHour: decimal.NewFromInt(120000),
			Description:  "Tournament-ready badminton courts with professional flooring.",
			Facilities:   "Air conditioned hall, stringing service, pro shop",
			ImageURL:     "https://images.unsplash.com/photo-1521412644187-c49fa049e84d?auto=format&fit=crop&w=800&q=80",
			Address:      "Jl. Malioboro No. 12, Yogyakarta",
		},
		AddOns: []AddOn{addon("Racket Stringing", 80000), addon("Coaching Session", 180000)},
	},
	{
		Category: "Basketball",
		Venue: Venue{
			Name:         "Bandung Hoop Center",
			City:         "Bandung",
			PricePerHour: decimal.NewFromInt(300000),
			Description:  "Indoor basketball arena with wooden flooring and digital scoreboard.",
			Facilities:   "Locker room, physiotherapy room, cafe",
			ImageURL:     "https://images.unsplash.com/photo-1517649763962-0c623066013b?auto=format&fit=crop&w=800&q=80",
			Address:      "Jl. Braga No. 22, Bandung",
		},
		AddOns: []AddOn{addon("Scorekeeper", 100000), addon("Video Highlights", 220000)},
	},
}

// Seed installs ReferenceCatalog. Venues that already exist by name are skipped,
// so running it twice is harmless. It returns the number of venues created.
func Seed(ctx context.Context, repo Repository) (int, error) {
	categories := make(map[string]Category)
	created := 0

	for _, sv := range ReferenceCatalog {
		cat, ok := categories[sv.Category]
		if !ok {
			cat = Category{Name: sv.Category}
			if err := repo.UpsertCategory(ctx, &cat); err != nil {
				return created, fmt.Errorf("seed category %q: %w", sv.Category, err)
			}
			categories[sv.Category] = cat
		}

		exists, err := repo.ExistsByName(ctx, sv.Venue.Name)
		if err != nil {
			return created, fmt.Errorf("seed venue %q: %w", sv.Venue.Name, err)
		}
		if exists {
			continue
		}

		v := sv.Venue
		v.Category = cat
		v.AddOns = append([]AddOn(nil), sv.AddOns...)
		if err := repo.Create(ctx, &v); err != nil {
			return created, fmt.Errorf("seed venue %q: %w", sv.Venue.Name, err)
		}
		created++
	}

	return created, nil
}
