package domain

import (
	"context"
	"time"
)

// Profile roles.
const (
	RoleMember = "member"
	RoleExec   = "exec"
	RoleAdmin  = "admin"
)

// Profile is a club member's identity record.
// swagger:model Profile
type Profile struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	WatIAM          string    `json:"wat_iam"`
	Faculty         string    `json:"faculty"`
	Term            string    `json:"term"`
	IsMathSocMember bool      `json:"is_math_soc_member"`
	Role            string    `json:"role"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewProfile returns a new Profile with the member role. ID is set by the
// repository on create.
func NewProfile(email, firstName, lastName string, createdAt, updatedAt time.Time) *Profile {
	return &Profile{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Role:      RoleMember,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// IsElevated reports whether the profile may access exec/admin surfaces.
func (p *Profile) IsElevated() bool {
	return p.Role == RoleExec || p.Role == RoleAdmin
}

// ProfileUpdate carries the optional fields of a profile-completion update.
// Nil means "leave unchanged".
type ProfileUpdate struct {
	FirstName       *string
	LastName        *string
	WatIAM          *string
	Faculty         *string
	Term            *string
	IsMathSocMember *bool
}

// ProfileRepository defines storage operations for profiles. Password
// credentials are stored on the profile row but exposed only through the
// credential methods, which the auth service alone consumes.
type ProfileRepository interface {
	Create(ctx context.Context, p *Profile, passwordHash, salt string) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	// GetCredentialsByEmail returns the profile plus its stored password
	// hash and salt, or ErrNotFound.
	GetCredentialsByEmail(ctx context.Context, email string) (p *Profile, passwordHash, salt string, err error)
	Update(ctx context.Context, id string, upd *ProfileUpdate) (*Profile, error)
	List(ctx context.Context, search string, params PaginationParams) ([]*Profile, int, error)
}

// ProfileService defines profile read/completion operations.
type ProfileService interface {
	GetByID(ctx context.Context, id string) (*Profile, error)
	Update(ctx context.Context, id string, upd *ProfileUpdate) (*Profile, error)
	List(ctx context.Context, search string, params PaginationParams) ([]*Profile, int, error)
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues session tokens (e.g. JWT) for an authenticated profile.
type TokenIssuer interface {
	Issue(profileID, email, role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a session token and returns the profile ID and role.
type TokenVerifier interface {
	Verify(token string) (profileID, role string, err error)
}

// SignUpParams carries the fields of a new account request.
type SignUpParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthService defines account creation and login.
type AuthService interface {
	SignUp(ctx context.Context, params *SignUpParams) (token string, p *Profile, err error)
	LogIn(ctx context.Context, email, password string) (token string, p *Profile, err error)
}
