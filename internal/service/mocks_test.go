package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vanhire/backend/internal/domain"
	"github.com/vanhire/backend/internal/repo"
)

// The mocks below are hand-written test doubles: each method is a function
// field, and a test sets only the ones it needs. No mock generation library
// required for interfaces this size.

type mockVanRepo struct {
	create       func(ctx context.Context, van domain.Van) (domain.Van, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Van, error)
	getForUpdate func(ctx context.Context, id uuid.UUID) (domain.Van, error)
	list         func(ctx context.Context) ([]domain.Van, error)
	update       func(ctx context.Context, van domain.Van) (domain.Van, error)
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockVanRepo) Create(ctx context.Context, van domain.Van) (domain.Van, error) {
	return m.create(ctx, van)
}
func (m *mockVanRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Van, error) {
	return m.getByID(ctx, id)
}
func (m *mockVanRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Van, error) {
	return m.getForUpdate(ctx, id)
}
func (m *mockVanRepo) List(ctx context.Context) ([]domain.Van, error) { return m.list(ctx) }
func (m *mockVanRepo) Update(ctx context.Context, van domain.Van) (domain.Van, error) {
	return m.update(ctx, van)
}
func (m *mockVanRepo) Delete(ctx context.Context, id uuid.UUID) error { return m.delete(ctx, id) }

var _ repo.VanRepo = (*mockVanRepo)(nil)

type mockBookingRepo struct {
	create      func(ctx context.Context, b domain.Booking) (domain.Booking, error)
	getByID     func(ctx context.Context, id uuid.UUID) (domain.Booking, error)
	listByUser  func(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error)
	listAll     func(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error)
	update      func(ctx context.Context, b domain.Booking) (domain.Booking, error)
	delete      func(ctx context.Context, id uuid.UUID) error
	deleteByVan func(ctx context.Context, vanID uuid.UUID) error
}

func (m *mockBookingRepo) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	return m.create(ctx, b)
}
func (m *mockBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	return m.getByID(ctx, id)
}
func (m *mockBookingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockBookingRepo) ListAll(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error) {
	return m.listAll(ctx, p)
}
func (m *mockBookingRepo) Update(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	return m.update(ctx, b)
}
func (m *mockBookingRepo) Delete(ctx context.Context, id uuid.UUID) error { return m.delete(ctx, id) }
func (m *mockBookingRepo) DeleteByVan(ctx context.Context, vanID uuid.UUID) error {
	return m.deleteByVan(ctx, vanID)
}

var _ repo.BookingRepo = (*mockBookingRepo)(nil)

type mockLedgerRepo struct {
	listByVan   func(ctx context.Context, vanID uuid.UUID) ([]domain.DateRange, error)
	add         func(ctx context.Context, vanID uuid.UUID, r domain.DateRange) error
	remove      func(ctx context.Context, vanID uuid.UUID, r domain.DateRange) (bool, error)
	deleteByVan func(ctx context.Context, vanID uuid.UUID) error
}

func (m *mockLedgerRepo) ListByVan(ctx context.Context, vanID uuid.UUID) ([]domain.DateRange, error) {
	return m.listByVan(ctx, vanID)
}
func (m *mockLedgerRepo) Add(ctx context.Context, vanID uuid.UUID, r domain.DateRange) error {
	return m.add(ctx, vanID, r)
}
func (m *mockLedgerRepo) Remove(ctx context.Context, vanID uuid.UUID, r domain.DateRange) (bool, error) {
	return m.remove(ctx, vanID, r)
}
func (m *mockLedgerRepo) DeleteByVan(ctx context.Context, vanID uuid.UUID) error {
	return m.deleteByVan(ctx, vanID)
}

var _ repo.LedgerRepo = (*mockLedgerRepo)(nil)

type mockUserRepo struct {
	create         func(ctx context.Context, u domain.User) (domain.User, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByEmail     func(ctx context.Context, email string) (domain.User, error)
	list           func(ctx context.Context) ([]domain.User, error)
	update         func(ctx context.Context, u domain.User) (domain.User, error)
	updatePassword func(ctx context.Context, id uuid.UUID, hash string) error
	delete         func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.create(ctx, u)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) { return m.list(ctx) }
func (m *mockUserRepo) Update(ctx context.Context, u domain.User) (domain.User, error) {
	return m.update(ctx, u)
}
func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return m.updatePassword(ctx, id, hash)
}
func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return m.delete(ctx, id) }

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockReviewRepo struct {
	create  func(ctx context.Context, rv domain.Review) (domain.Review, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Review, error)
	list    func(ctx context.Context) ([]domain.Review, error)
	update  func(ctx context.Context, rv domain.Review) (domain.Review, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockReviewRepo) Create(ctx context.Context, rv domain.Review) (domain.Review, error) {
	return m.create(ctx, rv)
}
func (m *mockReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Review, error) {
	return m.getByID(ctx, id)
}
func (m *mockReviewRepo) List(ctx context.Context) ([]domain.Review, error) { return m.list(ctx) }
func (m *mockReviewRepo) Update(ctx context.Context, rv domain.Review) (domain.Review, error) {
	return m.update(ctx, rv)
}
func (m *mockReviewRepo) Delete(ctx context.Context, id uuid.UUID) error { return m.delete(ctx, id) }

var _ repo.ReviewRepo = (*mockReviewRepo)(nil)

// fakeAtomic satisfies repo.Atomic by invoking fn directly with the mock
// repos — no transaction, no database. Tests that assert rollback behaviour
// check that the service returned an error before any visible side effect.
type fakeAtomic struct {
	repos repo.Repos
}

func (f *fakeAtomic) WithTx(_ context.Context, fn func(r repo.Repos) error) error {
	return fn(f.repos)
}

var _ repo.Atomic = (*fakeAtomic)(nil)

// futureRange returns a valid far-future range so past-date validation never
// interferes with tests that target other behaviour.
func futureRange(t *testing.T, start, end string) domain.DateRange {
	t.Helper()
	s, err := time.Parse("2006-01-02", start)
	require.NoError(t, err)
	e, err := time.Parse("2006-01-02", end)
	require.NoError(t, err)
	r, err := domain.NewDateRange(s, e)
	require.NoError(t, err)
	return r
}
