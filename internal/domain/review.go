package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is feedback left against a completed booking.
// Rating is constrained to 1..5 by the review service.
type Review struct {
	ID        uuid.UUID
	BookingID uuid.UUID
	UserID    uuid.UUID
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
