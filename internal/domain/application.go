package domain

import (
	"context"
	"time"
)

// Application statuses.
const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// Application is an exec-position application submitted by a member.
// swagger:model Application
type Application struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id"`
	Position  string    `json:"position"`
	Answers   string    `json:"answers"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewApplication returns a pending Application. ID is set by the repository
// on create.
func NewApplication(profileID, position, answers string, createdAt, updatedAt time.Time) *Application {
	return &Application{
		ProfileID: profileID,
		Position:  position,
		Answers:   answers,
		Status:    ApplicationPending,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// ApplicationRepository defines storage operations for applications.
type ApplicationRepository interface {
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	ListByProfileID(ctx context.Context, profileID string) ([]*Application, error)
	// List returns applications filtered by status ("" for all), paginated.
	List(ctx context.Context, status string, params PaginationParams) ([]*Application, int, error)
	UpdateStatus(ctx context.Context, id, status string) (*Application, error)
}

// ApplicationService defines application submission and review. Decide is
// admin-only and emails the applicant the outcome.
type ApplicationService interface {
	Submit(ctx context.Context, profileID, position, answers string) (*Application, error)
	ListMine(ctx context.Context, profileID string) ([]*Application, error)
	List(ctx context.Context, status string, params PaginationParams) ([]*Application, int, error)
	Decide(ctx context.Context, applicationID string, accept bool) (*Application, error)
}
