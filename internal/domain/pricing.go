package domain

import (
	"fmt"
	"math"
)

// TotalPrice computes the price of booking a van for the given range:
// billable days times the van's per-day rate. Pure function, no I/O.
//
// Both endpoints bill, matching the inclusive-both-ends convention of
// DateRange: 130/day over 2024-05-01..2024-05-10 prices at 1300.
// Returns ErrInvalidRate when dayRate is negative, NaN, or infinite.
func TotalPrice(dayRate float64, r DateRange) (float64, error) {
	if math.IsNaN(dayRate) || math.IsInf(dayRate, 0) || dayRate < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRate, dayRate)
	}
	return float64(r.Days()) * dayRate, nil
}
