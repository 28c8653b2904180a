package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vanhire/backend/internal/domain"
)

// LedgerRepo persists the availability ledger: one row per committed date
// range per van. The booking service only reads or writes these rows while
// holding the van's row lock inside Atomic.WithTx, so the no-overlap
// invariant checked in memory (domain.Ledger) holds in the table too.
// A unique index on (van_id, start_date, end_date) backstops exact duplicates.
type LedgerRepo interface {
	// ListByVan returns all committed ranges for a van. Order is not
	// significant to callers; rows come back sorted by start_date for
	// stable output.
	ListByVan(ctx context.Context, vanID uuid.UUID) ([]domain.DateRange, error)

	// Add commits a range for a van. The caller has already verified
	// availability under the van lock.
	Add(ctx context.Context, vanID uuid.UUID, r domain.DateRange) error

	// Remove deletes the entry exactly matching r and reports whether a row
	// was deleted. A false return without error is the ledger-inconsistency
	// signal the caller must surface.
	Remove(ctx context.Context, vanID uuid.UUID, r domain.DateRange) (bool, error)

	// DeleteByVan removes every ledger entry for a van. Used by the van
	// deletion cascade, inside the same transaction as the van delete.
	DeleteByVan(ctx context.Context, vanID uuid.UUID) error
}

type pgLedgerRepo struct {
	db db
}

// NewLedgerRepo constructs a LedgerRepo backed by the provided db connection.
func NewLedgerRepo(db db) LedgerRepo {
	return &pgLedgerRepo{db: db}
}

func (r *pgLedgerRepo) ListByVan(ctx context.Context, vanID uuid.UUID) ([]domain.DateRange, error) {
	const q = `
		SELECT start_date, end_date
		FROM van_availability
		WHERE van_id = @van_id
		ORDER BY start_date`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"van_id": vanID})
	if err != nil {
		return nil, fmt.Errorf("repo.LedgerRepo.ListByVan: %w", err)
	}
	defer rows.Close()

	var ranges []domain.DateRange
	for rows.Next() {
		var start, end pgtype.Date
		if err := rows.Scan(&start, &end); err != nil {
			return nil, fmt.Errorf("repo.LedgerRepo.ListByVan: scan: %w", err)
		}
		dr, err := domain.NewDateRange(start.Time, end.Time)
		if err != nil {
			return nil, fmt.Errorf("repo.LedgerRepo.ListByVan: stored range invalid: %w", err)
		}
		ranges = append(ranges, dr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LedgerRepo.ListByVan: rows: %w", err)
	}

	return ranges, nil
}

func (r *pgLedgerRepo) Add(ctx context.Context, vanID uuid.UUID, dr domain.DateRange) error {
	const q = `
		INSERT INTO van_availability (van_id, start_date, end_date)
		VALUES (@van_id, @start_date, @end_date)`

	args := pgx.NamedArgs{
		"van_id":     vanID,
		"start_date": dr.Start,
		"end_date":   dr.End,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.LedgerRepo.Add: %w", err)
	}
	return nil
}

func (r *pgLedgerRepo) Remove(ctx context.Context, vanID uuid.UUID, dr domain.DateRange) (bool, error) {
	const q = `
		DELETE FROM van_availability
		WHERE van_id = @van_id AND start_date = @start_date AND end_date = @end_date`

	args := pgx.NamedArgs{
		"van_id":     vanID,
		"start_date": dr.Start,
		"end_date":   dr.End,
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return false, fmt.Errorf("repo.LedgerRepo.Remove: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *pgLedgerRepo) DeleteByVan(ctx context.Context, vanID uuid.UUID) error {
	const q = `DELETE FROM van_availability WHERE van_id = @van_id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"van_id": vanID}); err != nil {
		return fmt.Errorf("repo.LedgerRepo.DeleteByVan: %w", err)
	}
	return nil
}
