package domain

import (
	"time"

	"github.com/google/uuid"
)

// Van is a rentable vehicle in the fleet. Its availability ledger (the set
// of committed booking ranges) lives in its own table and is mutated only by
// the booking service; deleting a van cascades to its bookings and ledger
// entries in the same transaction.
type Van struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PricePerDay float64   `json:"price_per_day"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
