package domain

import (
	"context"
	"time"
)

// Membership is a capability record: its existence means the holder may
// check in to events for the given term.
// swagger:model Membership
type Membership struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id"`
	Term      string    `json:"term"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMembership returns a new Membership. ID is set by the repository on create.
func NewMembership(profileID, term string, createdAt time.Time) *Membership {
	return &Membership{
		ProfileID: profileID,
		Term:      term,
		CreatedAt: createdAt,
	}
}

// MembershipWithProfile bundles a membership with the holder's profile for
// admin listings.
type MembershipWithProfile struct {
	Membership *Membership `json:"membership"`
	Profile    *Profile    `json:"profile"`
}

// MembershipRepository defines storage operations for memberships.
type MembershipRepository interface {
	// Create inserts the membership; returns ErrAlreadyMember when the
	// (profile, term) pair already exists.
	Create(ctx context.Context, m *Membership) error
	GetByID(ctx context.Context, id string) (*Membership, error)
	// GetCurrentByProfile returns the profile's newest membership, or
	// ErrNotFound.
	GetCurrentByProfile(ctx context.Context, profileID string) (*Membership, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, term string, params PaginationParams) ([]*MembershipWithProfile, int, error)
}

// MembershipService defines membership management; grant/revoke/list are
// admin-only.
type MembershipService interface {
	Grant(ctx context.Context, profileID, term string) (*Membership, error)
	Revoke(ctx context.Context, membershipID string) error
	GetCurrentByProfile(ctx context.Context, profileID string) (*Membership, error)
	List(ctx context.Context, term string, params PaginationParams) ([]*MembershipWithProfile, int, error)
}
