package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanhire/backend/internal/domain"
)

// mustRange builds a DateRange from two YYYY-MM-DD strings, failing the test
// on bad input. Used throughout the domain tests.
func mustRange(t *testing.T, start, end string) domain.DateRange {
	t.Helper()
	s, err := time.Parse("2006-01-02", start)
	require.NoError(t, err)
	e, err := time.Parse("2006-01-02", end)
	require.NoError(t, err)
	r, err := domain.NewDateRange(s, e)
	require.NoError(t, err)
	return r
}

func TestNewDateRange_StartAfterEnd(t *testing.T) {
	start := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	_, err := domain.NewDateRange(start, end)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNewDateRange_NormalizesWallClockTimes(t *testing.T) {
	// Two instants on the same calendar day, one of them in a non-UTC zone,
	// must produce equal ranges.
	loc := time.FixedZone("UTC+2", 2*60*60)
	a, err := domain.NewDateRange(
		time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		time.Date(2024, 5, 10, 23, 59, 59, 0, time.UTC),
	)
	require.NoError(t, err)
	b, err := domain.NewDateRange(
		time.Date(2024, 5, 1, 2, 0, 0, 0, loc),
		time.Date(2024, 5, 10, 12, 0, 0, 0, loc),
	)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
}

func TestDateRange_Days(t *testing.T) {
	// Inclusive of both endpoints: a single-day range bills one day.
	assert.Equal(t, 1, mustRange(t, "2024-05-01", "2024-05-01").Days())
	assert.Equal(t, 10, mustRange(t, "2024-05-01", "2024-05-10").Days())
	assert.Equal(t, 2, mustRange(t, "2024-12-31", "2025-01-01").Days())
}

func TestDateRange_Overlaps(t *testing.T) {
	base := mustRange(t, "2024-05-05", "2024-05-10")

	tests := []struct {
		name  string
		other domain.DateRange
		want  bool
	}{
		{"itself", base, true},
		{"contained", mustRange(t, "2024-05-06", "2024-05-08"), true},
		{"containing", mustRange(t, "2024-05-01", "2024-05-20"), true},
		{"partial left", mustRange(t, "2024-05-01", "2024-05-05"), true},
		{"partial right", mustRange(t, "2024-05-10", "2024-05-15"), true},
		// Both endpoints are booked days, so touching ranges collide.
		{"adjacent before", mustRange(t, "2024-05-01", "2024-05-04"), false},
		{"adjacent after", mustRange(t, "2024-05-11", "2024-05-15"), false},
		{"disjoint before", mustRange(t, "2024-04-01", "2024-04-10"), false},
		{"disjoint after", mustRange(t, "2024-06-01", "2024-06-10"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestDateRange_Equal(t *testing.T) {
	a := mustRange(t, "2024-05-01", "2024-05-10")
	b := mustRange(t, "2024-05-01", "2024-05-10")
	c := mustRange(t, "2024-05-01", "2024-05-11")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestDateRange_IsZero(t *testing.T) {
	assert.True(t, domain.DateRange{}.IsZero())
	assert.False(t, mustRange(t, "2024-05-01", "2024-05-10").IsZero())
}

func TestDateRange_String(t *testing.T) {
	assert.Equal(t, "2024-05-01..2024-05-10", mustRange(t, "2024-05-01", "2024-05-10").String())
}
