package domain

import "context"

// CheckInService implements the event check-in flows. Self check-in proves
// presence with a rotating HMAC token; manual check-in trusts the admin
// caller's assertion. Both share the window check, duplicate check, and
// idempotent insert.
type CheckInService interface {
	// SelfCheckIn validates the event window, resolves the membership to a
	// profile, verifies the presented token against the profile's rotating
	// token, and records attendance. On ErrAlreadyCheckedIn the resolved
	// profile is still returned.
	SelfCheckIn(ctx context.Context, eventID, membershipID, token string) (*Profile, error)
	// ManualCheckIn records attendance for a directly identified profile
	// without a token. Admin-only; the caller's role is enforced upstream.
	ManualCheckIn(ctx context.Context, eventID, profileID string) (*Profile, error)
	// UncheckIn removes an attendance record unconditionally (no window
	// check). Returns ErrNotFound when no row existed.
	UncheckIn(ctx context.Context, eventID, profileID string) error
	// Status reports whether the profile is checked in to the event.
	Status(ctx context.Context, eventID, profileID string) (bool, error)
	// ListAttendance returns the event's attendance with profiles.
	ListAttendance(ctx context.Context, eventID string) ([]*AttendanceWithProfile, error)
}
