// Package service contains the business logic for the van rental API.
// Services validate inputs, enforce access rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vanhire/backend/internal/domain"
	"github.com/vanhire/backend/internal/repo"
)

// BookingService is the booking lifecycle manager. It owns the pairing
// between booking rows and availability ledger entries: every create,
// date change, and cancellation writes both inside one transaction with
// the van's row locked, so the check-then-commit span is serialized per van
// and two overlapping concurrent requests can never both succeed.
type BookingService struct {
	atomic   repo.Atomic
	bookings repo.BookingRepo
	ledger   repo.LedgerRepo
	log      *slog.Logger
}

// NewBookingService constructs a BookingService. The pool-scoped bookings
// and ledger repos serve plain reads; all writes go through atomic.
func NewBookingService(atomic repo.Atomic, bookings repo.BookingRepo, ledger repo.LedgerRepo, log *slog.Logger) *BookingService {
	return &BookingService{atomic: atomic, bookings: bookings, ledger: ledger, log: log}
}

// Create books a van for userID over dates. A zero userID books for the
// requester; booking on behalf of someone else requires admin rights.
//
// The availability check and the two writes (ledger entry + booking row)
// happen under the van's row lock, so a concurrent overlapping Create for
// the same van blocks until this one commits and then fails its own check.
//
// Returns domain.ErrNotFound (van or user missing), domain.ErrDatesInPast,
// domain.ErrUnauthorized, or an UnavailableError carrying the conflicting
// committed range.
func (s *BookingService) Create(ctx context.Context, requester domain.Requester, userID, vanID uuid.UUID, dates domain.DateRange) (domain.Booking, error) {
	if userID == uuid.Nil {
		userID = requester.ID
	}
	if !requester.CanActFor(userID) {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w", domain.ErrUnauthorized)
	}
	if err := rejectPastDates(dates, time.Now()); err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w", err)
	}

	var created domain.Booking
	err := s.atomic.WithTx(ctx, func(r repo.Repos) error {
		van, err := r.Vans.GetForUpdate(ctx, vanID)
		if err != nil {
			return err
		}
		if _, err := r.Users.GetByID(ctx, userID); err != nil {
			return err
		}

		entries, err := r.Ledger.ListByVan(ctx, vanID)
		if err != nil {
			return err
		}
		ledger := domain.NewLedger(entries)
		if conflict, ok := ledger.Conflict(dates); ok {
			return &domain.UnavailableError{VanID: vanID, Conflict: conflict}
		}

		price, err := domain.TotalPrice(van.PricePerDay, dates)
		if err != nil {
			return err
		}

		if err := r.Ledger.Add(ctx, vanID, dates); err != nil {
			return err
		}
		created, err = r.Bookings.Create(ctx, domain.Booking{
			UserID:     userID,
			VanID:      vanID,
			Dates:      dates,
			TotalPrice: price,
		})
		return err
	})
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w", err)
	}
	return created, nil
}

// Update changes a booking's date range and reprices it. A zero newDates is
// a no-op that returns the stored booking. Owners may update their own
// bookings; admins may update any. Strangers get domain.ErrNotFound so the
// booking's existence is not leaked.
//
// The ledger swap is all-or-nothing: on conflict the transaction rolls back
// and neither the booking nor the ledger shows any partial change.
func (s *BookingService) Update(ctx context.Context, requester domain.Requester, bookingID uuid.UUID, newDates domain.DateRange) (domain.Booking, error) {
	var updated domain.Booking
	err := s.atomic.WithTx(ctx, func(r repo.Repos) error {
		b, err := r.Bookings.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if !requester.CanActFor(b.UserID) {
			return domain.ErrNotFound
		}
		if newDates.IsZero() || newDates.Equal(b.Dates) {
			updated = b
			return nil
		}
		if err := rejectPastDates(newDates, time.Now()); err != nil {
			return err
		}

		van, err := r.Vans.GetForUpdate(ctx, b.VanID)
		if err != nil {
			return err
		}
		entries, err := r.Ledger.ListByVan(ctx, b.VanID)
		if err != nil {
			return err
		}

		ledger := domain.NewLedger(entries)
		if err := ledger.Replace(b.Dates, newDates); err != nil {
			var ue *domain.UnavailableError
			if errors.As(err, &ue) {
				ue.VanID = b.VanID
			}
			if errors.Is(err, domain.ErrLedgerInconsistency) {
				s.log.Error("ledger entry missing on update",
					"booking_id", b.ID, "van_id", b.VanID, "range", b.Dates.String())
			}
			return err
		}

		// The in-memory swap succeeded; mirror it to storage.
		if _, err := r.Ledger.Remove(ctx, b.VanID, b.Dates); err != nil {
			return err
		}
		if err := r.Ledger.Add(ctx, b.VanID, newDates); err != nil {
			return err
		}

		price, err := domain.TotalPrice(van.PricePerDay, newDates)
		if err != nil {
			return err
		}
		b.Dates = newDates
		b.TotalPrice = price
		updated, err = r.Bookings.Update(ctx, b)
		return err
	})
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Update: %w", err)
	}
	return updated, nil
}

// Cancel releases a booking's ledger entry and deletes the booking record in
// one transaction. Owners may cancel their own bookings; admins any;
// strangers get domain.ErrNotFound.
//
// A release that finds no matching ledger entry means a prior partial
// failure left the records out of step. The cancellation still completes —
// deleting the booking converges the two — but the inconsistency is logged
// at error level, never treated as an ordinary success path.
func (s *BookingService) Cancel(ctx context.Context, requester domain.Requester, bookingID uuid.UUID) error {
	err := s.atomic.WithTx(ctx, func(r repo.Repos) error {
		b, err := r.Bookings.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if !requester.CanActFor(b.UserID) {
			return domain.ErrNotFound
		}
		if _, err := r.Vans.GetForUpdate(ctx, b.VanID); err != nil {
			return err
		}

		removed, err := r.Ledger.Remove(ctx, b.VanID, b.Dates)
		if err != nil {
			return err
		}
		if !removed {
			s.log.Error("ledger entry missing on cancel",
				"booking_id", b.ID, "van_id", b.VanID, "range", b.Dates.String(),
				"error", domain.ErrLedgerInconsistency)
		}
		return r.Bookings.Delete(ctx, bookingID)
	})
	if err != nil {
		return fmt.Errorf("service.BookingService.Cancel: %w", err)
	}
	return nil
}

// GetByID returns a booking visible to the requester. Admins see any
// booking; owners their own; everyone else gets domain.ErrNotFound whether
// or not the booking exists.
func (s *BookingService) GetByID(ctx context.Context, requester domain.Requester, id uuid.UUID) (domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.GetByID: %w", err)
	}
	if !requester.CanActFor(b.UserID) {
		return domain.Booking{}, fmt.Errorf("service.BookingService.GetByID: %w", domain.ErrNotFound)
	}
	return b, nil
}

// ListForUser returns the requester's own bookings.
// Always returns a non-nil slice so callers can safely range over it.
func (s *BookingService) ListForUser(ctx context.Context, requester domain.Requester) ([]domain.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, requester.ID)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.ListForUser: %w", err)
	}
	if bookings == nil {
		return []domain.Booking{}, nil
	}
	return bookings, nil
}

// ListAll returns one page of every booking in the system. Admin only.
func (s *BookingService) ListAll(ctx context.Context, requester domain.Requester, p domain.PaginationParams) ([]domain.Booking, int64, error) {
	if !requester.Admin {
		return nil, 0, fmt.Errorf("service.BookingService.ListAll: %w", domain.ErrUnauthorized)
	}
	bookings, total, err := s.bookings.ListAll(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.BookingService.ListAll: %w", err)
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, total, nil
}

// RangesForVan returns the committed date ranges for a van, for rendering
// unavailable dates in a booking calendar. Public: the ranges reveal no
// booker identity.
func (s *BookingService) RangesForVan(ctx context.Context, vanID uuid.UUID) ([]domain.DateRange, error) {
	ranges, err := s.ledger.ListByVan(ctx, vanID)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.RangesForVan: %w", err)
	}
	if ranges == nil {
		return []domain.DateRange{}, nil
	}
	return ranges, nil
}

// rejectPastDates fails with domain.ErrDatesInPast when any part of dates
// falls before the current calendar day. now is fixed once per call so the
// comparison cannot straddle midnight.
func rejectPastDates(dates domain.DateRange, now time.Time) error {
	today := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)
	if dates.Start.Before(today) {
		return domain.ErrDatesInPast
	}
	return nil
}
