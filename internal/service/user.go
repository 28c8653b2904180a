package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/vanhire/backend/internal/domain"
	"github.com/vanhire/backend/internal/repo"
)

// TokenIssuer mints a signed bearer token for an authenticated user.
// Satisfied by *auth.TokenManager; defined here so UserService can be
// tested without real signing.
type TokenIssuer interface {
	Issue(userID uuid.UUID, admin bool) (string, error)
}

// PasswordHasher hashes and verifies passwords. Satisfied by *auth.Hasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// UserService implements account management and sign-in. Deleting an
// account cascades the user's bookings, releasing each ledger entry, in one
// transaction — the same dual-bookkeeping rule the booking service follows.
type UserService struct {
	atomic repo.Atomic
	users  repo.UserRepo
	tokens TokenIssuer
	hasher PasswordHasher
	log    *slog.Logger
}

// NewUserService constructs a UserService backed by the provided dependencies.
func NewUserService(atomic repo.Atomic, users repo.UserRepo, tokens TokenIssuer, hasher PasswordHasher, log *slog.Logger) *UserService {
	return &UserService{atomic: atomic, users: users, tokens: tokens, hasher: hasher, log: log}
}

// Register creates an account with a bcrypt-hashed password.
// Returns domain.ErrEmailTaken when the email is already registered and
// domain.ErrValidation for weak or missing fields.
func (s *UserService) Register(ctx context.Context, u domain.User, password string) (domain.User, error) {
	if err := validateNewUser(u, password); err != nil {
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: %w", err)
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.PasswordHash = hash

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: %w", err)
	}
	return created, nil
}

// Authenticate verifies email+password and returns a signed bearer token
// along with the user. Unknown email and wrong password both collapse into
// domain.ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (string, domain.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.User{}, fmt.Errorf("service.UserService.Authenticate: %w", domain.ErrInvalidCredentials)
		}
		return "", domain.User{}, fmt.Errorf("service.UserService.Authenticate: %w", err)
	}
	if !s.hasher.Compare(u.PasswordHash, password) {
		return "", domain.User{}, fmt.Errorf("service.UserService.Authenticate: %w", domain.ErrInvalidCredentials)
	}

	token, err := s.tokens.Issue(u.ID, u.Admin)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("service.UserService.Authenticate: %w", err)
	}
	return token, u, nil
}

// GetByID returns a user visible to the requester: admins see anyone,
// everyone else only themselves (strangers get domain.ErrNotFound).
func (s *UserService) GetByID(ctx context.Context, requester domain.Requester, id uuid.UUID) (domain.User, error) {
	if !requester.CanActFor(id) {
		return domain.User{}, fmt.Errorf("service.UserService.GetByID: %w", domain.ErrNotFound)
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByID: %w", err)
	}
	return u, nil
}

// ListAll returns every user. Admin only.
func (s *UserService) ListAll(ctx context.Context, requester domain.Requester) ([]domain.User, error) {
	if !requester.Admin {
		return nil, fmt.Errorf("service.UserService.ListAll: %w", domain.ErrUnauthorized)
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.UserService.ListAll: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

// Update overwrites a user's profile fields. Owners may update themselves;
// admins anyone. Password changes are rejected here (use ChangePassword),
// and only admins may flip the admin flag.
func (s *UserService) Update(ctx context.Context, requester domain.Requester, u domain.User) (domain.User, error) {
	if !requester.CanActFor(u.ID) {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w", domain.ErrNotFound)
	}

	current, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w", err)
	}
	if !requester.Admin {
		u.Admin = current.Admin
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return domain.User{}, fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	}

	updated, err := s.users.Update(ctx, u)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w", err)
	}
	return updated, nil
}

// ChangePassword replaces the requester's own password after verifying the
// current one.
func (s *UserService) ChangePassword(ctx context.Context, requester domain.Requester, oldPassword, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}

	u, err := s.users.GetByID(ctx, requester.ID)
	if err != nil {
		return fmt.Errorf("service.UserService.ChangePassword: %w", err)
	}
	if !s.hasher.Compare(u.PasswordHash, oldPassword) {
		return fmt.Errorf("service.UserService.ChangePassword: %w", domain.ErrInvalidCredentials)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("service.UserService.ChangePassword: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return fmt.Errorf("service.UserService.ChangePassword: %w", err)
	}
	return nil
}

// Delete removes an account and cascades its bookings: each booking's
// ledger entry is released under the van's lock, then the booking and
// finally the user row go, all in one transaction. Owners may delete
// themselves; admins anyone.
func (s *UserService) Delete(ctx context.Context, requester domain.Requester, id uuid.UUID) error {
	if !requester.CanActFor(id) {
		return fmt.Errorf("service.UserService.Delete: %w", domain.ErrNotFound)
	}

	err := s.atomic.WithTx(ctx, func(r repo.Repos) error {
		bookings, err := r.Bookings.ListByUser(ctx, id)
		if err != nil {
			return err
		}
		for _, b := range bookings {
			if _, err := r.Vans.GetForUpdate(ctx, b.VanID); err != nil {
				return err
			}
			removed, err := r.Ledger.Remove(ctx, b.VanID, b.Dates)
			if err != nil {
				return err
			}
			if !removed {
				s.log.Error("ledger entry missing on user delete",
					"booking_id", b.ID, "van_id", b.VanID, "range", b.Dates.String(),
					"error", domain.ErrLedgerInconsistency)
			}
			if err := r.Bookings.Delete(ctx, b.ID); err != nil {
				return err
			}
		}
		return r.Users.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("service.UserService.Delete: %w", err)
	}
	return nil
}

const minPasswordLen = 8

// validateNewUser enforces the registration rules.
func validateNewUser(u domain.User, password string) error {
	if strings.TrimSpace(u.FirstName) == "" || strings.TrimSpace(u.LastName) == "" {
		return fmt.Errorf("%w: first and last name are required", domain.ErrValidation)
	}
	email := strings.TrimSpace(u.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}
	return nil
}
