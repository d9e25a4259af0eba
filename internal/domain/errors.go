package domain

import "errors"

// Sentinel errors shared across services. Controllers map these to HTTP
// status codes; anything else is treated as an infrastructure error.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Check-in failure taxonomy. All are user-visible messages, none fatal.
var (
	ErrEventNotActive      = errors.New("event is not currently active for check-in")
	ErrInvalidMembership   = errors.New("invalid membership")
	ErrInvalidCheckInToken = errors.New("invalid or expired check-in token")
	ErrInvalidProfile      = errors.New("invalid profile ID")

	// ErrAlreadyCheckedIn is a soft failure: the resolved profile is still
	// returned alongside it so the caller can render an "already in" state.
	ErrAlreadyCheckedIn = errors.New("already checked in")

	ErrAlreadyMember = errors.New("profile already holds a membership for this term")
)
