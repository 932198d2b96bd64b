package wishlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Exists(ctx context.Context, userID, venueID string) (bool, error)
	Add(ctx context.Context, userID, venueID string) error
	Remove(ctx context.Context, userID, venueID string) error
	// ListByUser returns the user's items, most recently added first.
	ListByUser(ctx context.Context, userID string) ([]*Item, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Exists(ctx context.Context, userID, venueID string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sub, args, err := psql.Select("1").
		From("public.wishlist_items").
		Where(squirrel.Eq{"user_id": userID, "venue_id": venueID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build wishlist exists query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check wishlist item failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) Add(ctx context.Context, userID, venueID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.wishlist_items").
		Columns("user_id", "venue_id").
		Values(userID, venueID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build add wishlist item query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyListed
		}
		return fmt.Errorf("add wishlist item failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Remove(ctx context.Context, userID, venueID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.wishlist_items").
		Where(squirrel.Eq{"user_id": userID, "venue_id": venueID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build remove wishlist item query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("remove wishlist item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListByUser(ctx context.Context, userID string) ([]*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"w.id", "w.user_id", "w.created_at",
		"v.id", "v.name", "v.city", "c.id", "c.name", "v.price_per_hour::text", "v.image_url", "v.address",
	).
		From("public.wishlist_items w").
		Join("public.venues v ON w.venue_id = v.id").
		Join("public.categories c ON v.category_id = c.id").
		Where(squirrel.Eq{"w.user_id": userID}).
		OrderBy("w.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list wishlist query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list wishlist failed: %w", err)
	}
	defer rows.Close()

	items := make([]*Item, 0)
	for rows.Next() {
		var it Item
		var price string
		if err := rows.Scan(
			&it.ID, &it.UserID, &it.CreatedAt,
			&it.Venue.ID, &it.Venue.Name, &it.Venue.City, &it.Venue.Category.ID, &it.Venue.Category.Name,
			&price, &it.Venue.ImageURL, &it.Venue.Address,
		); err != nil {
			return nil, fmt.Errorf("scan wishlist item failed: %w", err)
		}
		if it.Venue.PricePerHour, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse price_per_hour %q: %w", price, err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishlist failed: %w", err)
	}

	return items, nil
}
