package venue

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ListOptions controls ordering and size of a venue listing.
type ListOptions struct {
	// Popular orders by booking count (desc) before name.
	Popular bool
	Limit   uint64
}

type Repository interface {
	List(ctx context.Context, filter Filter, opts ListOptions) ([]*Venue, error)
	GetByID(ctx context.Context, id string) (*Venue, error)
	AddOnsByVenue(ctx context.Context, venueIDs ...string) (map[string][]AddOn, error)
	DistinctCities(ctx context.Context) ([]string, error)
	DistinctCategories(ctx context.Context) ([]string, error)

	// Used by the seeder.
	UpsertCategory(ctx context.Context, c *Category) error
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, v *Venue) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func selectVenues() squirrel.SelectBuilder {
	return psql.Select(
		"v.id", "v.name", "v.city", "c.id", "c.name", "v.price_per_hour::text",
		"v.description", "v.facilities", "v.image_url", "v.address",
		"(SELECT count(*) FROM public.bookings b WHERE b.venue_id = v.id) AS booking_count",
	).
		From("public.venues v").
		Join("public.categories c ON v.category_id = c.id")
}

func scanVenue(row pgx.Row) (*Venue, error) {
	var v Venue
	var price string
	if err := row.Scan(
		&v.ID, &v.Name, &v.City, &v.Category.ID, &v.Category.Name, &price,
		&v.Description, &v.Facilities, &v.ImageURL, &v.Address, &v.BookingCount,
	); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse price_per_hour %q: %w", price, err)
	}
	v.PricePerHour = d
	return &v, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter, opts ListOptions) ([]*Venue, error) {
	query := filter.Apply(selectVenues())
	if opts.Popular {
		query = query.OrderBy("booking_count DESC", "v.name ASC")
	} else {
		query = query.OrderBy("v.name ASC")
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list venues query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list venues failed: %w", err)
	}
	defer rows.Close()

	venues := make([]*Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venue failed: %w", err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate venues failed: %w", err)
	}

	return venues, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Venue, error) {
	sql, args, err := selectVenues().Where(squirrel.Eq{"v.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get venue query failed: %w", err)
	}

	v, err := scanVenue(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get venue failed: %w", err)
	}
	return v, nil
}

func (r *pgxRepository) AddOnsByVenue(ctx context.Context, venueIDs ...string) (map[string][]AddOn, error) {
	result := make(map[string][]AddOn, len(venueIDs))
	if len(venueIDs) == 0 {
		return result, nil
	}

	sql, args, err := psql.Select("a.id", "a.venue_id", "a.name", "a.price::text").
		From("public.addons a").
		Where(squirrel.Eq{"a.venue_id": venueIDs}).
		OrderBy("a.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list addons query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list addons failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a AddOn
		var price string
		if err := rows.Scan(&a.ID, &a.VenueID, &a.Name, &price); err != nil {
			return nil, fmt.Errorf("scan addon failed: %w", err)
		}
		if a.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse addon price %q: %w", price, err)
		}
		result[a.VenueID] = append(result[a.VenueID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate addons failed: %w", err)
	}

	return result, nil
}

func (r *pgxRepository) DistinctCities(ctx context.Context) ([]string, error) {
	return r.strings(ctx, psql.Select("DISTINCT v.city").
		From("public.venues v").
		OrderBy("v.city"))
}

// DistinctCategories lists the names of categories that have at least one venue.
func (r *pgxRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	return r.strings(ctx, psql.Select("DISTINCT c.name").
		From("public.venues v").
		Join("public.categories c ON v.category_id = c.id").
		OrderBy("c.name"))
}

func (r *pgxRepository) strings(ctx context.Context, q squirrel.SelectBuilder) ([]string, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build distinct query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("distinct query failed: %w", err)
	}

	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect distinct values failed: %w", err)
	}
	return values, nil
}

func (r *pgxRepository) UpsertCategory(ctx context.Context, c *Category) error {
	if c.Name == "" {
		return ErrCategoryRequired
	}

	sql, args, err := psql.Insert("public.categories").
		Columns("name").
		Values(c.Name).
		Suffix("ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert category query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&c.ID); err != nil {
		return fmt.Errorf("upsert category failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM public.venues WHERE name = $1)", name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check venue exists failed: %w", err)
	}
	return exists, nil
}

// Create inserts the venue and its add-ons in one transaction.
func (r *pgxRepository) Create(ctx context.Context, v *Venue) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create venue tx failed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sql, args, err := psql.Insert("public.venues").
		Columns("category_id", "name", "city", "price_per_hour", "description", "facilities", "image_url", "address").
		Values(v.Category.ID, v.Name, v.City, v.PricePerHour.String(), v.Description, v.Facilities, v.ImageURL, v.Address).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create venue query failed: %w", err)
	}
	if err := tx.QueryRow(ctx, sql, args...).Scan(&v.ID); err != nil {
		return fmt.Errorf("create venue failed: %w", err)
	}

	for i := range v.AddOns {
		a := &v.AddOns[i]
		a.VenueID = v.ID

		sql, args, err := psql.Insert("public.addons").
			Columns("venue_id", "name", "price").
			Values(a.VenueID, a.Name, a.Price.String()).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("build create addon query failed: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&a.ID); err != nil {
			return fmt.Errorf("create addon failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create venue failed: %w", err)
	}
	return nil
}
