package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vanhire/backend/internal/domain"
)

// BookingRepo defines the persistence operations for Bookings.
// Writes that must stay in lockstep with the availability ledger are always
// performed through transaction-scoped instances (Atomic.WithTx).
type BookingRepo interface {
	// Create inserts a new booking and returns the persisted record.
	Create(ctx context.Context, b domain.Booking) (domain.Booking, error)

	// GetByID retrieves a single booking by its UUID primary key.
	// Returns domain.ErrNotFound if no booking with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error)

	// ListByUser returns all bookings owned by userID, newest range first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error)

	// ListAll returns one page of all bookings plus the total count.
	ListAll(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error)

	// Update overwrites the mutable fields (dates, total price) of an
	// existing booking. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, b domain.Booking) (domain.Booking, error)

	// Delete removes a booking by ID. Returns domain.ErrNotFound if it does
	// not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByVan removes all bookings for a van. Part of the van deletion
	// cascade; must run in the same transaction as the van delete.
	DeleteByVan(ctx context.Context, vanID uuid.UUID) error
}

type pgBookingRepo struct {
	db db
}

// NewBookingRepo constructs a BookingRepo backed by the provided db connection.
func NewBookingRepo(db db) BookingRepo {
	return &pgBookingRepo{db: db}
}

const bookingColumns = `id, user_id, van_id, start_date, end_date, total_price, created_at, updated_at`

func (r *pgBookingRepo) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	const q = `
		INSERT INTO bookings (user_id, van_id, start_date, end_date, total_price)
		VALUES (@user_id, @van_id, @start_date, @end_date, @total_price)
		RETURNING ` + bookingColumns

	args := pgx.NamedArgs{
		"user_id":     b.UserID,
		"van_id":      b.VanID,
		"start_date":  b.Dates.Start,
		"end_date":    b.Dates.End,
		"total_price": b.TotalPrice,
	}

	result, err := scanBooking(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = @id`

	result, err := scanBooking(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgBookingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	const q = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = @user_id
		ORDER BY start_date DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows, "repo.BookingRepo.ListByUser")
}

func (r *pgBookingRepo) ListAll(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error) {
	const countQ = `SELECT count(*) FROM bookings`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.BookingRepo.ListAll: count: %w", err)
	}

	const q = `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY start_date DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.BookingRepo.ListAll: %w", err)
	}
	defer rows.Close()

	bookings, err := collectBookings(rows, "repo.BookingRepo.ListAll")
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *pgBookingRepo) Update(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	const q = `
		UPDATE bookings
		SET start_date  = @start_date,
		    end_date    = @end_date,
		    total_price = @total_price,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + bookingColumns

	args := pgx.NamedArgs{
		"id":          b.ID,
		"start_date":  b.Dates.Start,
		"end_date":    b.Dates.End,
		"total_price": b.TotalPrice,
	}

	result, err := scanBooking(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM bookings WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.BookingRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.BookingRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgBookingRepo) DeleteByVan(ctx context.Context, vanID uuid.UUID) error {
	const q = `DELETE FROM bookings WHERE van_id = @van_id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"van_id": vanID}); err != nil {
		return fmt.Errorf("repo.BookingRepo.DeleteByVan: %w", err)
	}
	return nil
}

// collectBookings drains rows into a slice, wrapping errors with op.
func collectBookings(rows pgx.Rows, op string) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return bookings, nil
}

// scanBooking maps a single database row into a domain.Booking, rebuilding
// the DateRange from the stored date columns.
func scanBooking(s scanner) (domain.Booking, error) {
	var (
		b          domain.Booking
		id, userID pgtype.UUID
		vanID      pgtype.UUID
		start, end pgtype.Date
	)

	err := s.Scan(&id, &userID, &vanID, &start, &end, &b.TotalPrice, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Booking{}, domain.ErrNotFound
		}
		return domain.Booking{}, err
	}

	b.ID = uuid.UUID(id.Bytes)
	b.UserID = uuid.UUID(userID.Bytes)
	b.VanID = uuid.UUID(vanID.Bytes)
	b.Dates, err = domain.NewDateRange(start.Time, end.Time)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("stored range invalid: %w", err)
	}
	return b, nil
}
