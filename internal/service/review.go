package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vanhire/backend/internal/domain"
	"github.com/vanhire/backend/internal/repo"
)

// ReviewService implements feedback on bookings. A review is always
// attributed to the booking's owner; authorship is validated against the
// booking, not taken from the request.
type ReviewService struct {
	reviews  repo.ReviewRepo
	bookings repo.BookingRepo
}

// NewReviewService constructs a ReviewService backed by the provided repos.
func NewReviewService(reviews repo.ReviewRepo, bookings repo.BookingRepo) *ReviewService {
	return &ReviewService{reviews: reviews, bookings: bookings}
}

// Create attaches a review to a booking. The requester must own the booking
// (admins may file on behalf of the owner); strangers get domain.ErrNotFound
// so booking existence is not leaked. Rating must be within 1..5.
func (s *ReviewService) Create(ctx context.Context, requester domain.Requester, bookingID uuid.UUID, rating int, comment string) (domain.Review, error) {
	if err := validateRating(rating); err != nil {
		return domain.Review{}, err
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Create: %w", err)
	}
	if !requester.CanActFor(b.UserID) {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Create: %w", domain.ErrNotFound)
	}

	created, err := s.reviews.Create(ctx, domain.Review{
		BookingID: b.ID,
		UserID:    b.UserID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	})
	if err != nil {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single review. Public.
func (s *ReviewService) GetByID(ctx context.Context, id uuid.UUID) (domain.Review, error) {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return domain.Review{}, fmt.Errorf("service.ReviewService.GetByID: %w", err)
	}
	return rv, nil
}

// List returns all reviews, newest first. Public.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ReviewService) List(ctx context.Context) ([]domain.Review, error) {
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ReviewService.List: %w", err)
	}
	if reviews == nil {
		return []domain.Review{}, nil
	}
	return reviews, nil
}

// Update changes a review's rating and comment. Author or admin only;
// anyone else gets domain.ErrNotFound.
func (s *ReviewService) Update(ctx context.Context, requester domain.Requester, id uuid.UUID, rating int, comment string) (domain.Review, error) {
	if err := validateRating(rating); err != nil {
		return domain.Review{}, err
	}

	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Update: %w", err)
	}
	if !requester.CanActFor(rv.UserID) {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Update: %w", domain.ErrNotFound)
	}

	rv.Rating = rating
	rv.Comment = strings.TrimSpace(comment)
	updated, err := s.reviews.Update(ctx, rv)
	if err != nil {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a review. Author or admin only.
func (s *ReviewService) Delete(ctx context.Context, requester domain.Requester, id uuid.UUID) error {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.ReviewService.Delete: %w", err)
	}
	if !requester.CanActFor(rv.UserID) {
		return fmt.Errorf("service.ReviewService.Delete: %w", domain.ErrNotFound)
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ReviewService.Delete: %w", err)
	}
	return nil
}

// validateRating enforces the 1..5 rating scale.
func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}
	return nil
}
