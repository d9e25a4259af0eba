package domain

import (
	"context"
	"time"
)

// Attendance records that a profile checked in to an event. At most one row
// exists per (event, profile) pair, enforced by a database unique constraint.
// swagger:model Attendance
type Attendance struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	ProfileID string    `json:"profile_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAttendance returns a new Attendance. ID is set by the repository on create.
func NewAttendance(eventID, profileID string, createdAt time.Time) *Attendance {
	return &Attendance{
		EventID:   eventID,
		ProfileID: profileID,
		CreatedAt: createdAt,
	}
}

// AttendanceWithProfile bundles an attendance row with the attendee's
// profile for admin listings.
type AttendanceWithProfile struct {
	Attendance *Attendance `json:"attendance"`
	Profile    *Profile    `json:"profile"`
}

// AttendanceRepository defines storage operations for attendance. Create
// must be atomic with respect to the unique constraint: two racing inserts
// for the same pair degrade to one row, never two.
type AttendanceRepository interface {
	// Create inserts the attendance row, ignoring a conflicting existing
	// row. Returns created=false when the pair was already present.
	Create(ctx context.Context, a *Attendance) (created bool, err error)
	Exists(ctx context.Context, eventID, profileID string) (bool, error)
	// Delete removes the row and reports whether one existed.
	Delete(ctx context.Context, eventID, profileID string) (deleted bool, err error)
	ListByEventID(ctx context.Context, eventID string) ([]*AttendanceWithProfile, error)
}
