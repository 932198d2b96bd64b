package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/venue-booking-backend/internal/venue"
)

type Repository interface {
	// Create inserts a waiting booking and links its add-ons in one transaction.
	Create(ctx context.Context, b *Booking, addonIDs []string) error
	// GetForUser returns the booking only when it belongs to userID.
	GetForUser(ctx context.Context, id, userID string) (*Booking, error)
	GetPricing(ctx context.Context, id string) (*PricingSnapshot, error)
	UpdateTotals(ctx context.Context, id string, t Totals) error
	// UpdatePayment stores the payment method and new status, provided the
	// booking is still in status `from`.
	UpdatePayment(ctx context.Context, id string, method PaymentMethod, from, to Status) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking, addonIDs []string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("user_id", "venue_id", "date", "start_time", "duration_hours", "notes", "status").
		Values(
			b.UserID, b.Venue.ID, b.Date.Format(DateLayout), b.StartTime.Format(time.TimeOnly),
			b.DurationHours, b.Notes, b.Status,
		).
		Suffix("RETURNING id, created_at, subtotal::text, deposit_amount::text, grand_total::text").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	var subtotal, deposit, grand string
	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &subtotal, &deposit, &grand); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	if b.Totals, err = parseTotals(subtotal, deposit, grand); err != nil {
		return err
	}

	if len(addonIDs) > 0 {
		ins := psql.Insert("public.booking_addons").Columns("booking_id", "addon_id")
		for _, id := range addonIDs {
			ins = ins.Values(b.ID, id)
		}
		query, args, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("build link addons query failed: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("link booking addons failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetForUser(ctx context.Context, id, userID string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"b.id", "b.user_id", "u.username",
		"v.id", "v.name", "v.city", "v.address", "v.image_url", "v.price_per_hour::text", "c.id", "c.name",
		"b.date", "b.start_time::text", "b.duration_hours", "b.notes",
		"b.subtotal::text", "b.deposit_amount::text", "b.grand_total::text",
		"b.payment_method", "b.status", "b.created_at",
	).
		From("public.bookings b").
		Join("public.users u ON b.user_id = u.id").
		Join("public.venues v ON b.venue_id = v.id").
		Join("public.categories c ON v.category_id = c.id").
		Where(squirrel.Eq{"b.id": id, "b.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	var price, startTime, subtotal, deposit, grand string
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.UserID, &b.Username,
		&b.Venue.ID, &b.Venue.Name, &b.Venue.City, &b.Venue.Address, &b.Venue.ImageURL, &price,
		&b.Venue.Category.ID, &b.Venue.Category.Name,
		&b.Date, &startTime, &b.DurationHours, &b.Notes,
		&subtotal, &deposit, &grand,
		&b.PaymentMethod, &b.Status, &b.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}

	if !b.Status.Valid() {
		return nil, fmt.Errorf("booking %s has unknown status %q", b.ID, b.Status)
	}
	if b.Venue.PricePerHour, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("parse price_per_hour %q: %w", price, err)
	}
	if b.StartTime, err = time.Parse(time.TimeOnly, startTime); err != nil {
		return nil, fmt.Errorf("parse start_time %q: %w", startTime, err)
	}
	if b.Totals, err = parseTotals(subtotal, deposit, grand); err != nil {
		return nil, err
	}

	if b.AddOns, err = r.addOns(ctx, b.ID); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) addOns(ctx context.Context, bookingID string) ([]venue.AddOn, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("a.id", "a.venue_id", "a.name", "a.price::text").
		From("public.booking_addons ba").
		Join("public.addons a ON ba.addon_id = a.id").
		Where(squirrel.Eq{"ba.booking_id": bookingID}).
		OrderBy("a.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build booking addons query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list booking addons failed: %w", err)
	}
	defer rows.Close()

	addons := make([]venue.AddOn, 0)
	for rows.Next() {
		var a venue.AddOn
		var price string
		if err := rows.Scan(&a.ID, &a.VenueID, &a.Name, &price); err != nil {
			return nil, fmt.Errorf("scan booking addon failed: %w", err)
		}
		if a.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse addon price %q: %w", price, err)
		}
		addons = append(addons, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking addons failed: %w", err)
	}
	return addons, nil
}

func (r *pgxRepository) GetPricing(ctx context.Context, id string) (*PricingSnapshot, error) {
	const query = `
		SELECT
			v.price_per_hour::text,
			b.duration_hours,
			COALESCE(
				(
					SELECT array_agg(a.price::text)
					FROM public.booking_addons ba
					JOIN public.addons a ON ba.addon_id = a.id
					WHERE ba.booking_id = b.id
				),
				'{}'::text[]
			)
		FROM public.bookings b
		JOIN public.venues v ON b.venue_id = v.id
		WHERE b.id = $1
	`

	var price string
	var addonPrices []string
	var snap PricingSnapshot
	if err := r.pool.QueryRow(ctx, query, id).Scan(&price, &snap.DurationHours, &addonPrices); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking pricing failed: %w", err)
	}

	var err error
	if snap.PricePerHour, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("parse price_per_hour %q: %w", price, err)
	}
	snap.AddOnPrices = make([]decimal.Decimal, 0, len(addonPrices))
	for _, p := range addonPrices {
		d, err := decimal.NewFromString(p)
		if err != nil {
			return nil, fmt.Errorf("parse addon price %q: %w", p, err)
		}
		snap.AddOnPrices = append(snap.AddOnPrices, d)
	}
	return &snap, nil
}

func (r *pgxRepository) UpdateTotals(ctx context.Context, id string, t Totals) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("subtotal", t.Subtotal.String()).
		Set("deposit_amount", t.DepositAmount.String()).
		Set("grand_total", t.GrandTotal.String()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update totals query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking totals failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) UpdatePayment(ctx context.Context, id string, method PaymentMethod, from, to Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("payment_method", method).
		Set("status", to).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update payment query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking payment failed: %w", err)
	}
	// The row exists (the caller loaded it), so no match means the status moved on.
	if ct.RowsAffected() == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func parseTotals(subtotal, deposit, grand string) (Totals, error) {
	var t Totals
	var err error
	if t.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return Totals{}, fmt.Errorf("parse subtotal %q: %w", subtotal, err)
	}
	if t.DepositAmount, err = decimal.NewFromString(deposit); err != nil {
		return Totals{}, fmt.Errorf("parse deposit_amount %q: %w", deposit, err)
	}
	if t.GrandTotal, err = decimal.NewFromString(grand); err != nil {
		return Totals{}, fmt.Errorf("parse grand_total %q: %w", grand, err)
	}
	return t, nil
}
