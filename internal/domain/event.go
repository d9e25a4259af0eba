package domain

import (
	"context"
	"time"
)

// Event is a club event. BufferedStart/BufferedEnd are the grace-padded
// bounds that define check-in eligibility.
// swagger:model Event
type Event struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	ImageURL      *string   `json:"image_url,omitempty"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	BufferedStart time.Time `json:"buffered_start_time"`
	BufferedEnd   time.Time `json:"buffered_end_time"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewEvent returns a new Event. ID is set by the repository on create.
func NewEvent(name, description, location string, start, end, bufferedStart, bufferedEnd time.Time, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:          name,
		Description:   description,
		Location:      location,
		StartTime:     start,
		EndTime:       end,
		BufferedStart: bufferedStart,
		BufferedEnd:   bufferedEnd,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

// CheckInOpen reports whether now falls inside the buffered check-in window.
// Both bounds are inclusive.
func (e *Event) CheckInOpen(now time.Time) bool {
	return !now.Before(e.BufferedStart) && !now.After(e.BufferedEnd)
}

// ValidateWindow checks the ordering invariant
// buffered_start <= start <= end <= buffered_end.
func (e *Event) ValidateWindow() error {
	if e.BufferedStart.After(e.StartTime) ||
		e.StartTime.After(e.EndTime) ||
		e.EndTime.After(e.BufferedEnd) {
		return ErrInvalidInput
	}
	return nil
}

// EventUpdate carries the optional fields of an event update. Nil means
// "leave unchanged". When Start/End change without explicit buffered bounds,
// the service recomputes the buffered window from the grace duration.
type EventUpdate struct {
	Name          *string
	Description   *string
	Location      *string
	ImageURL      *string
	StartTime     *time.Time
	EndTime       *time.Time
	BufferedStart *time.Time
	BufferedEnd   *time.Time
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	// ListActive returns events whose buffered window contains now, bounds
	// inclusive.
	ListActive(ctx context.Context, now time.Time) ([]*Event, error)
	Update(ctx context.Context, id string, upd *EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines event CRUD; mutating operations are admin-only and
// enforce the buffered-window invariant.
type EventService interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	ListActive(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, id string, upd *EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
}
