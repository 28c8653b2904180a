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

// ReviewRepo defines the persistence operations for Reviews.
type ReviewRepo interface {
	// Create inserts a new review and returns the persisted record.
	Create(ctx context.Context, rv domain.Review) (domain.Review, error)

	// GetByID retrieves a single review by its UUID primary key.
	// Returns domain.ErrNotFound if no review with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Review, error)

	// List returns all reviews, newest first.
	List(ctx context.Context) ([]domain.Review, error)

	// Update overwrites rating and comment. Returns domain.ErrNotFound if
	// the review does not exist.
	Update(ctx context.Context, rv domain.Review) (domain.Review, error)

	// Delete removes a review by ID. Returns domain.ErrNotFound if it does
	// not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgReviewRepo struct {
	db db
}

// NewReviewRepo constructs a ReviewRepo backed by the provided db connection.
func NewReviewRepo(db db) ReviewRepo {
	return &pgReviewRepo{db: db}
}

const reviewColumns = `id, booking_id, user_id, rating, comment, created_at, updated_at`

func (r *pgReviewRepo) Create(ctx context.Context, rv domain.Review) (domain.Review, error) {
	const q = `
		INSERT INTO reviews (booking_id, user_id, rating, comment)
		VALUES (@booking_id, @user_id, @rating, @comment)
		RETURNING ` + reviewColumns

	args := pgx.NamedArgs{
		"booking_id": rv.BookingID,
		"user_id":    rv.UserID,
		"rating":     rv.Rating,
		"comment":    rv.Comment,
	}

	result, err := scanReview(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Review{}, fmt.Errorf("repo.ReviewRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = @id`

	result, err := scanReview(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Review{}, fmt.Errorf("repo.ReviewRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgReviewRepo) List(ctx context.Context) ([]domain.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ReviewRepo.List: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ReviewRepo.List: scan: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ReviewRepo.List: rows: %w", err)
	}

	return reviews, nil
}

func (r *pgReviewRepo) Update(ctx context.Context, rv domain.Review) (domain.Review, error) {
	const q = `
		UPDATE reviews
		SET rating     = @rating,
		    comment    = @comment,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + reviewColumns

	args := pgx.NamedArgs{
		"id":      rv.ID,
		"rating":  rv.Rating,
		"comment": rv.Comment,
	}

	result, err := scanReview(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Review{}, fmt.Errorf("repo.ReviewRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM reviews WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ReviewRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ReviewRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanReview maps a single database row into a domain.Review.
func scanReview(s scanner) (domain.Review, error) {
	var (
		rv                    domain.Review
		id, bookingID, userID pgtype.UUID
	)

	err := s.Scan(&id, &bookingID, &userID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Review{}, domain.ErrNotFound
		}
		return domain.Review{}, err
	}

	rv.ID = uuid.UUID(id.Bytes)
	rv.BookingID = uuid.UUID(bookingID.Bytes)
	rv.UserID = uuid.UUID(userID.Bytes)
	return rv, nil
}
