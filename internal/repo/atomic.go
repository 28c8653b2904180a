package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repos bundles every repository bound to a single transaction. It is
// handed to the function passed to Atomic.WithTx; all reads and writes made
// through it commit or roll back as one unit.
type Repos struct {
	Users    UserRepo
	Vans     VanRepo
	Bookings BookingRepo
	Ledger   LedgerRepo
	Reviews  ReviewRepo
}

// Atomic runs a function against transaction-scoped repositories. The
// booking service uses it for every check-then-commit sequence: lock the van
// row, test the ledger, then write the ledger entry and the booking together
// or not at all.
//
// Service tests substitute a fake that invokes fn with mock repos.
type Atomic interface {
	WithTx(ctx context.Context, fn func(r Repos) error) error
}

// pgAtomic implements Atomic on a pgx connection pool.
type pgAtomic struct {
	pool *pgxpool.Pool
}

// NewAtomic constructs an Atomic backed by the provided pool.
func NewAtomic(pool *pgxpool.Pool) Atomic {
	return &pgAtomic{pool: pool}
}

// WithTx begins a transaction, builds Repos bound to it, and runs fn.
// The transaction commits only when fn returns nil; any error (or panic)
// rolls everything back.
func (a *pgAtomic) WithTx(ctx context.Context, fn func(r Repos) error) error {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.Atomic.WithTx: begin: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after a successful commit

	r := Repos{
		Users:    NewUserRepo(tx),
		Vans:     NewVanRepo(tx),
		Bookings: NewBookingRepo(tx),
		Ledger:   NewLedgerRepo(tx),
		Reviews:  NewReviewRepo(tx),
	}

	if err := fn(r); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.Atomic.WithTx: commit: %w", err)
	}
	return nil
}
