package domain

import "github.com/google/uuid"

// Requester identifies the caller of a service operation. It is resolved by
// the auth middleware from a verified bearer token; services trust it as
// already authenticated and only decide what it may see or touch.
type Requester struct {
	ID    uuid.UUID
	Admin bool
}

// CanActFor reports whether the requester may act on records owned by
// userID. Admins may act on anything; everyone else only on their own.
func (r Requester) CanActFor(userID uuid.UUID) bool {
	return r.Admin || r.ID == userID
}
