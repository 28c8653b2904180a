package repo_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanhire/backend/internal/domain"
	"github.com/vanhire/backend/internal/repo"
	"github.com/vanhire/backend/internal/service"
	"github.com/vanhire/backend/testutil"
)

// TestConcurrentOverlappingBookings drives the real locking path: two
// goroutines race to book overlapping ranges on the same van through a real
// pool-backed Atomic. The van row lock serializes them, so exactly one must
// win and the loser must see the winner's range as the conflict.
//
// Unlike the other tests in this package it commits real rows, so it cleans
// the tables itself instead of relying on transaction rollback.
func TestConcurrentOverlappingBookings(t *testing.T) {
	pool := testutil.NewPool(t)
	testutil.TruncateAll(t, pool)
	t.Cleanup(func() { testutil.TruncateAll(t, pool) })

	ctx := context.Background()
	users := repo.NewUserRepo(pool)
	vans := repo.NewVanRepo(pool)
	bookings := repo.NewBookingRepo(pool)
	ledger := repo.NewLedgerRepo(pool)

	u, err := users.Create(ctx, domain.User{
		FirstName: "Race", LastName: "Tester",
		Email: uuid.NewString() + "@example.com", PasswordHash: "x",
	})
	require.NoError(t, err)
	v, err := vans.Create(ctx, domain.Van{Name: "Contested", PricePerDay: 100})
	require.NoError(t, err)

	svc := service.NewBookingService(repo.NewAtomic(pool), bookings, ledger, slog.Default())
	requester := domain.Requester{ID: u.ID}

	ranges := []domain.DateRange{
		dateRange(t, "2044-05-01", "2044-05-10"),
		dateRange(t, "2044-05-05", "2044-05-15"),
	}

	var wg sync.WaitGroup
	errs := make([]error, len(ranges))
	for i, r := range ranges {
		wg.Add(1)
		go func(i int, r domain.DateRange) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, requester, uuid.Nil, v.ID, r)
		}(i, r)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, domain.ErrVanUnavailable):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, won, "exactly one booking must commit")
	assert.Equal(t, 1, lost, "the other must fail with a conflict")

	// The table agrees: one booking, one ledger entry.
	got, err := bookings.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	committed, err := ledger.ListByVan(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, committed, 1)
	assert.True(t, committed[0].Equal(got[0].Dates))
}

// TestConcurrentDisjointBookings verifies the lock does not reject
// non-overlapping traffic on the same van: both commits must succeed.
func TestConcurrentDisjointBookings(t *testing.T) {
	pool := testutil.NewPool(t)
	testutil.TruncateAll(t, pool)
	t.Cleanup(func() { testutil.TruncateAll(t, pool) })

	ctx := context.Background()
	users := repo.NewUserRepo(pool)
	vans := repo.NewVanRepo(pool)
	bookings := repo.NewBookingRepo(pool)
	ledger := repo.NewLedgerRepo(pool)

	u, err := users.Create(ctx, domain.User{
		FirstName: "Race", LastName: "Tester",
		Email: uuid.NewString() + "@example.com", PasswordHash: "x",
	})
	require.NoError(t, err)
	v, err := vans.Create(ctx, domain.Van{Name: "Busy", PricePerDay: 100})
	require.NoError(t, err)

	svc := service.NewBookingService(repo.NewAtomic(pool), bookings, ledger, slog.Default())
	requester := domain.Requester{ID: u.ID}

	ranges := []domain.DateRange{
		dateRange(t, "2044-05-01", "2044-05-10"),
		dateRange(t, "2044-05-11", "2044-05-20"),
	}

	var wg sync.WaitGroup
	errs := make([]error, len(ranges))
	for i, r := range ranges {
		wg.Add(1)
		go func(i int, r domain.DateRange) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, requester, uuid.Nil, v.ID, r)
		}(i, r)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "booking %d", i)
	}

	committed, err := ledger.ListByVan(ctx, v.ID)
	require.NoError(t, err)
	assert.Len(t, committed, 2)
}
