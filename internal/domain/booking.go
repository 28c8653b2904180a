package domain

import (
	"time"

	"github.com/google/uuid"
)

// Booking reserves one van for one user over a date range. TotalPrice is
// derived from the van's day rate at creation or update time and stored.
//
// A live booking's Dates always has a matching entry in the van's
// availability ledger. The pairing is maintained by the booking service,
// which writes both records inside one transaction; bookings are never
// inserted directly.
type Booking struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	VanID      uuid.UUID
	Dates      DateRange
	TotalPrice float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
