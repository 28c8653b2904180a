// Package domain contains the core data types for the van rental backend.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"fmt"
	"time"
)

// DateRange is an immutable span of calendar days, inclusive of both ends.
// A range of 2024-05-01..2024-05-01 covers one billable day.
//
// Both bounds are normalized to midnight UTC so that two ranges built from
// different wall-clock times on the same calendar day compare equal.
type DateRange struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// NewDateRange builds a DateRange from two calendar instants.
// Returns ErrValidation when start falls after end.
func NewDateRange(start, end time.Time) (DateRange, error) {
	s, e := midnightUTC(start), midnightUTC(end)
	if s.After(e) {
		return DateRange{}, fmt.Errorf("%w: start date is after end date", ErrValidation)
	}
	return DateRange{Start: s, End: e}, nil
}

// Days returns the number of billable days the range covers.
// Both endpoints count, so a single-day range bills one day.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start)/(24*time.Hour)) + 1
}

// Overlaps reports whether r and other share at least one billable day.
// The check is symmetric, and a range always overlaps itself.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

// Equal reports exact date-range equality. Ledger releases match on this,
// never on partial or fuzzy overlap.
func (r DateRange) Equal(other DateRange) bool {
	return r.Start.Equal(other.Start) && r.End.Equal(other.End)
}

// IsZero reports whether r is the zero value (no range supplied).
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// String renders the range as "2024-05-01..2024-05-10" for logs and errors.
func (r DateRange) String() string {
	return r.Start.Format("2006-01-02") + ".." + r.End.Format("2006-01-02")
}

// midnightUTC truncates t to the start of its calendar day in UTC.
func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
