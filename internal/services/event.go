package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clubportal/internal/domain"
)

type eventService struct {
	eventRepo    domain.EventRepository
	checkInGrace time.Duration
}

// NewEventService creates an EventService. checkInGrace pads the nominal
// start/end into the buffered check-in window when explicit buffered bounds
// are not supplied.
func NewEventService(eventRepo domain.EventRepository, checkInGrace time.Duration) domain.EventService {
	return &eventService{
		eventRepo:    eventRepo,
		checkInGrace: checkInGrace,
	}
}

func (s *eventService) Create(ctx context.Context, event *domain.Event) error {
	event.Name = strings.TrimSpace(event.Name)
	if event.Name == "" {
		return domain.ErrInvalidInput
	}
	if event.EndTime.Before(event.StartTime) {
		return domain.ErrInvalidInput
	}

	if event.BufferedStart.IsZero() {
		event.BufferedStart = event.StartTime.Add(-s.checkInGrace)
	}
	if event.BufferedEnd.IsZero() {
		event.BufferedEnd = event.EndTime.Add(s.checkInGrace)
	}
	if err := event.ValidateWindow(); err != nil {
		return err
	}

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) ListActive(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.eventRepo.ListActive(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("list active events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) Update(ctx context.Context, id string, upd *domain.EventUpdate) (*domain.Event, error) {
	current, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// Rebuffer when the nominal times move without explicit buffered bounds.
	if upd.StartTime != nil && upd.BufferedStart == nil {
		bs := upd.StartTime.Add(-s.checkInGrace)
		upd.BufferedStart = &bs
	}
	if upd.EndTime != nil && upd.BufferedEnd == nil {
		be := upd.EndTime.Add(s.checkInGrace)
		upd.BufferedEnd = &be
	}

	// Validate the window the row would have after the update.
	next := *current
	if upd.StartTime != nil {
		next.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		next.EndTime = *upd.EndTime
	}
	if upd.BufferedStart != nil {
		next.BufferedStart = *upd.BufferedStart
	}
	if upd.BufferedEnd != nil {
		next.BufferedEnd = *upd.BufferedEnd
	}
	if err := next.ValidateWindow(); err != nil {
		return nil, err
	}

	updated, err := s.eventRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
