package review

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, r *Review) error
	// ListByVenue returns the reviews of a venue, newest first.
	ListByVenue(ctx context.Context, venueID string) ([]*Review, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rv *Review) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.reviews").
		Columns("user_id", "venue_id", "rating", "comment").
		Values(rv.UserID, rv.VenueID, rv.Rating, rv.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create review query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rv.ID, &rv.CreatedAt); err != nil {
		return fmt.Errorf("create review failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListByVenue(ctx context.Context, venueID string) ([]*Review, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"r.id", "r.user_id", "u.username", "r.venue_id", "r.rating", "r.comment", "r.created_at",
	).
		From("public.reviews r").
		Join("public.users u ON r.user_id = u.id").
		Where(squirrel.Eq{"r.venue_id": venueID}).
		OrderBy("r.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reviews query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews failed: %w", err)
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		var rv Review
		if err := rows.Scan(
			&rv.ID, &rv.UserID, &rv.Username, &rv.VenueID, &rv.Rating, &rv.Comment, &rv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review failed: %w", err)
		}
		reviews = append(reviews, &rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews failed: %w", err)
	}

	return reviews, nil
}
