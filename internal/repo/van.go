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

// VanRepo defines the persistence operations for Vans.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows services to be unit-tested with mocks.
type VanRepo interface {
	// Create inserts a new van and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, van domain.Van) (domain.Van, error)

	// GetByID retrieves a single van by its UUID primary key.
	// Returns domain.ErrNotFound if no van with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Van, error)

	// GetForUpdate retrieves a van and locks its row for the remainder of
	// the surrounding transaction (SELECT ... FOR UPDATE). Every
	// check-then-commit sequence against a van's ledger takes this lock
	// first, serializing concurrent bookings per van while leaving
	// cross-van traffic fully parallel. Only meaningful inside Atomic.WithTx.
	GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Van, error)

	// List returns all vans ordered by name.
	List(ctx context.Context) ([]domain.Van, error)

	// Update overwrites the mutable fields of an existing van and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, van domain.Van) (domain.Van, error)

	// Delete removes a van by ID. Returns domain.ErrNotFound if it does not
	// exist. Callers must remove the van's bookings and ledger entries in
	// the same transaction first; the schema enforces this with RESTRICT.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgVanRepo struct {
	db db
}

// NewVanRepo constructs a VanRepo backed by the provided db connection.
// In production pass *pgxpool.Pool or the tx inside Atomic.WithTx.
func NewVanRepo(db db) VanRepo {
	return &pgVanRepo{db: db}
}

const vanColumns = `id, name, price_per_day, created_at, updated_at`

func (r *pgVanRepo) Create(ctx context.Context, van domain.Van) (domain.Van, error) {
	const q = `
		INSERT INTO vans (name, price_per_day)
		VALUES (@name, @price_per_day)
		RETURNING ` + vanColumns

	args := pgx.NamedArgs{
		"name":          van.Name,
		"price_per_day": van.PricePerDay,
	}

	result, err := scanVan(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Van{}, fmt.Errorf("repo.VanRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgVanRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Van, error) {
	const q = `SELECT ` + vanColumns + ` FROM vans WHERE id = @id`

	result, err := scanVan(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Van{}, fmt.Errorf("repo.VanRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgVanRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Van, error) {
	const q = `SELECT ` + vanColumns + ` FROM vans WHERE id = @id FOR UPDATE`

	result, err := scanVan(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Van{}, fmt.Errorf("repo.VanRepo.GetForUpdate: %w", err)
	}
	return result, nil
}

func (r *pgVanRepo) List(ctx context.Context) ([]domain.Van, error) {
	const q = `SELECT ` + vanColumns + ` FROM vans ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.VanRepo.List: %w", err)
	}
	defer rows.Close()

	var vans []domain.Van
	for rows.Next() {
		v, err := scanVan(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.VanRepo.List: scan: %w", err)
		}
		vans = append(vans, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.VanRepo.List: rows: %w", err)
	}

	return vans, nil
}

func (r *pgVanRepo) Update(ctx context.Context, van domain.Van) (domain.Van, error) {
	const q = `
		UPDATE vans
		SET name          = @name,
		    price_per_day = @price_per_day,
		    updated_at    = now()
		WHERE id = @id
		RETURNING ` + vanColumns

	args := pgx.NamedArgs{
		"id":            van.ID,
		"name":          van.Name,
		"price_per_day": van.PricePerDay,
	}

	result, err := scanVan(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Van{}, fmt.Errorf("repo.VanRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgVanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM vans WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.VanRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.VanRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanVan maps a single database row into a domain.Van.
func scanVan(s scanner) (domain.Van, error) {
	var (
		v  domain.Van
		id pgtype.UUID
	)

	err := s.Scan(&id, &v.Name, &v.PricePerDay, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Van{}, domain.ErrNotFound
		}
		return domain.Van{}, err
	}

	v.ID = uuid.UUID(id.Bytes)
	return v, nil
}
