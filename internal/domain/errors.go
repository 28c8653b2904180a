package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist — and, deliberately, when a caller without rights
// looks up a booking by ID. Returning "not found" instead of "forbidden"
// avoids leaking the existence of other users' bookings.
// Handlers map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. start date after end date, missing required field, rating out of
// range). Handlers map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrDatesInPast is returned when a booking range lies fully or partially
// before the current date. Handlers map this to HTTP 422.
var ErrDatesInPast = errors.New("booking dates must not be in the past")

// ErrInvalidRate is returned by the pricing calculator when a van's day rate
// is negative or not a finite number.
var ErrInvalidRate = errors.New("invalid day rate")

// ErrVanUnavailable is the sentinel matched by errors.Is against an
// UnavailableError. Handlers map this to HTTP 409 Conflict.
var ErrVanUnavailable = errors.New("van unavailable for the selected dates")

// ErrUnauthorized is returned when the requester is authenticated but lacks
// the rights for an operation (e.g. non-admin listing all bookings).
// Handlers map this to HTTP 403.
var ErrUnauthorized = errors.New("unauthorized")

// ErrLedgerInconsistency signals that a ledger release found no matching
// entry: the bookings table and the availability ledger have drifted, which
// can only happen after a partial failure. It must be logged and surfaced,
// never swallowed.
var ErrLedgerInconsistency = errors.New("availability ledger inconsistency")

// ErrEmailTaken is returned on registration when the email is already in use.
var ErrEmailTaken = errors.New("a user with this email already exists")

// ErrInvalidCredentials is returned on sign-in when the email is unknown or
// the password does not match. One error for both cases, again to avoid
// leaking which accounts exist.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UnavailableError reports a booking conflict together with the committed
// range that blocks the request, so callers can decide retry vs. abort.
type UnavailableError struct {
	VanID    uuid.UUID
	Conflict DateRange
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("van unavailable: requested dates overlap committed range %s", e.Conflict)
}

// Is lets errors.Is(err, ErrVanUnavailable) match an UnavailableError.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrVanUnavailable
}
