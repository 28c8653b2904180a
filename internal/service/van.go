package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/vanhire/backend/internal/domain"
	"github.com/vanhire/backend/internal/repo"
)

// VanService implements fleet management. All mutation is admin-only.
// Deleting a van cascades to its bookings and ledger entries inside one
// transaction, so no orphaned booking can survive its van.
type VanService struct {
	atomic repo.Atomic
	vans   repo.VanRepo
	log    *slog.Logger
}

// NewVanService constructs a VanService backed by the provided repos.
func NewVanService(atomic repo.Atomic, vans repo.VanRepo, log *slog.Logger) *VanService {
	return &VanService{atomic: atomic, vans: vans, log: log}
}

// Create adds a van to the fleet. Admin only.
func (s *VanService) Create(ctx context.Context, requester domain.Requester, van domain.Van) (domain.Van, error) {
	if !requester.Admin {
		return domain.Van{}, fmt.Errorf("service.VanService.Create: %w", domain.ErrUnauthorized)
	}
	if err := validateVan(van); err != nil {
		return domain.Van{}, err
	}
	created, err := s.vans.Create(ctx, van)
	if err != nil {
		return domain.Van{}, fmt.Errorf("service.VanService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single van. Public.
func (s *VanService) GetByID(ctx context.Context, id uuid.UUID) (domain.Van, error) {
	van, err := s.vans.GetByID(ctx, id)
	if err != nil {
		return domain.Van{}, fmt.Errorf("service.VanService.GetByID: %w", err)
	}
	return van, nil
}

// List returns the whole fleet. Public.
// Always returns a non-nil slice so callers can safely range over it.
func (s *VanService) List(ctx context.Context) ([]domain.Van, error) {
	vans, err := s.vans.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.VanService.List: %w", err)
	}
	if vans == nil {
		return []domain.Van{}, nil
	}
	return vans, nil
}

// Update overwrites a van's name and day rate. Admin only.
// Existing bookings keep the price they were committed at; repricing a live
// booking only happens through a booking update.
func (s *VanService) Update(ctx context.Context, requester domain.Requester, van domain.Van) (domain.Van, error) {
	if !requester.Admin {
		return domain.Van{}, fmt.Errorf("service.VanService.Update: %w", domain.ErrUnauthorized)
	}
	if err := validateVan(van); err != nil {
		return domain.Van{}, err
	}
	updated, err := s.vans.Update(ctx, van)
	if err != nil {
		return domain.Van{}, fmt.Errorf("service.VanService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a van and cascades to everything it owns: the van's
// bookings and its availability ledger entries go in the same transaction
// as the van row. Admin only. The van lock is taken first so no booking can
// slip in while the cascade runs.
func (s *VanService) Delete(ctx context.Context, requester domain.Requester, id uuid.UUID) error {
	if !requester.Admin {
		return fmt.Errorf("service.VanService.Delete: %w", domain.ErrUnauthorized)
	}

	err := s.atomic.WithTx(ctx, func(r repo.Repos) error {
		if _, err := r.Vans.GetForUpdate(ctx, id); err != nil {
			return err
		}
		if err := r.Bookings.DeleteByVan(ctx, id); err != nil {
			return err
		}
		if err := r.Ledger.DeleteByVan(ctx, id); err != nil {
			return err
		}
		return r.Vans.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("service.VanService.Delete: %w", err)
	}

	s.log.Info("van deleted with cascading bookings", "van_id", id)
	return nil
}

// validateVan enforces fleet rules common to Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - PricePerDay must be a positive finite number.
func validateVan(van domain.Van) error {
	if strings.TrimSpace(van.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if math.IsNaN(van.PricePerDay) || math.IsInf(van.PricePerDay, 0) || van.PricePerDay <= 0 {
		return fmt.Errorf("%w: price per day must be a positive number", domain.ErrInvalidRate)
	}
	return nil
}
