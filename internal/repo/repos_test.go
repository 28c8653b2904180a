package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vanhire/backend/internal/domain"
	"github.com/vanhire/backend/internal/repo"
	"github.com/vanhire/backend/testutil"
)

// newTestRepos opens a transaction against the test database and returns
// every repo bound to it. The transaction is rolled back when the test
// finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL to be set; migrations are applied by TestMain.
func newTestRepos(t *testing.T) repo.Repos {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test — no cleanup SQL needed.
		_ = tx.Rollback(context.Background())
	})

	return repo.Repos{
		Users:    repo.NewUserRepo(tx),
		Vans:     repo.NewVanRepo(tx),
		Bookings: repo.NewBookingRepo(tx),
		Ledger:   repo.NewLedgerRepo(tx),
		Reviews:  repo.NewReviewRepo(tx),
	}
}

// dateRange builds a DateRange from two YYYY-MM-DD strings.
func dateRange(t *testing.T, start, end string) domain.DateRange {
	t.Helper()
	s, err := time.Parse("2006-01-02", start)
	require.NoError(t, err)
	e, err := time.Parse("2006-01-02", end)
	require.NoError(t, err)
	r, err := domain.NewDateRange(s, e)
	require.NoError(t, err)
	return r
}

// createTestUser inserts a user with a unique email and returns it.
func createTestUser(t *testing.T, r repo.Repos) domain.User {
	t.Helper()
	u, err := r.Users.Create(context.Background(), domain.User{
		FirstName:    "Test",
		LastName:     "Booker",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Licence:      "DL-0001",
	})
	require.NoError(t, err)
	return u
}

// createTestVan inserts a van and returns it.
func createTestVan(t *testing.T, r repo.Repos) domain.Van {
	t.Helper()
	v, err := r.Vans.Create(context.Background(), domain.Van{
		Name:        "Modest Explorer",
		PricePerDay: 60,
	})
	require.NoError(t, err)
	return v
}

// createTestBooking inserts a booking (without a ledger entry) and returns it.
func createTestBooking(t *testing.T, r repo.Repos, userID, vanID uuid.UUID, dates domain.DateRange) domain.Booking {
	t.Helper()
	b, err := r.Bookings.Create(context.Background(), domain.Booking{
		UserID:     userID,
		VanID:      vanID,
		Dates:      dates,
		TotalPrice: float64(dates.Days()) * 60,
	})
	require.NoError(t, err)
	return b
}
