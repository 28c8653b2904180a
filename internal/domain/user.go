package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. Admin users may manage the fleet and act on
// any booking; everyone else is restricted to their own records.
// PasswordHash is a bcrypt hash and never leaves the service layer.
type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	DateOfBirth  *time.Time
	Address      string
	Licence      string
	Admin        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
