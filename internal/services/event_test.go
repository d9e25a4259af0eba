package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubportal/internal/domain"
)

const testGrace = 30 * time.Minute

func TestEventService_Create_ComputesBufferedWindow(t *testing.T) {
	ctx := context.Background()
	repo := &mockEventRepository{events: map[string]*domain.Event{}}
	svc := NewEventService(repo, testGrace)

	start := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	event := &domain.Event{
		Name:      "Intro to Go Workshop",
		Location:  "MC 4045",
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
	}
	require.NoError(t, svc.Create(ctx, event))
	assert.Equal(t, start.Add(-testGrace), event.BufferedStart)
	assert.Equal(t, start.Add(2*time.Hour+testGrace), event.BufferedEnd)
	assert.NotEmpty(t, event.ID)
}

func TestEventService_Create_KeepsExplicitBufferedBounds(t *testing.T) {
	ctx := context.Background()
	repo := &mockEventRepository{events: map[string]*domain.Event{}}
	svc := NewEventService(repo, testGrace)

	start := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	event := &domain.Event{
		Name:          "Exec Social",
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		BufferedStart: start.Add(-5 * time.Minute),
		BufferedEnd:   start.Add(time.Hour + 5*time.Minute),
	}
	require.NoError(t, svc.Create(ctx, event))
	assert.Equal(t, start.Add(-5*time.Minute), event.BufferedStart)
}

func TestEventService_Create_Invalid(t *testing.T) {
	ctx := context.Background()
	svc := NewEventService(&mockEventRepository{}, testGrace)

	start := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		event *domain.Event
	}{
		{"empty name", &domain.Event{StartTime: start, EndTime: start.Add(time.Hour)}},
		{"end before start", &domain.Event{Name: "x", StartTime: start, EndTime: start.Add(-time.Hour)}},
		{
			"buffered start after start",
			&domain.Event{
				Name: "x", StartTime: start, EndTime: start.Add(time.Hour),
				BufferedStart: start.Add(time.Minute), BufferedEnd: start.Add(2 * time.Hour),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, svc.Create(ctx, tt.event), domain.ErrInvalidInput)
		})
	}
}

func TestEventService_Update_RebuffersOnTimeChange(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	repo := &mockEventRepository{events: map[string]*domain.Event{
		"ev-1": {
			ID: "ev-1", Name: "Games Night",
			StartTime: start, EndTime: start.Add(time.Hour),
			BufferedStart: start.Add(-testGrace), BufferedEnd: start.Add(time.Hour + testGrace),
		},
	}}
	svc := NewEventService(repo, testGrace)

	newStart := start.Add(24 * time.Hour)
	newEnd := newStart.Add(time.Hour)
	updated, err := svc.Update(ctx, "ev-1", &domain.EventUpdate{StartTime: &newStart, EndTime: &newEnd})
	require.NoError(t, err)
	assert.Equal(t, newStart.Add(-testGrace), updated.BufferedStart)
	assert.Equal(t, newEnd.Add(testGrace), updated.BufferedEnd)
}

func TestEventService_Update_RejectsBrokenWindow(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	repo := &mockEventRepository{events: map[string]*domain.Event{
		"ev-1": {
			ID: "ev-1", Name: "Games Night",
			StartTime: start, EndTime: start.Add(time.Hour),
			BufferedStart: start.Add(-testGrace), BufferedEnd: start.Add(time.Hour + testGrace),
		},
	}}
	svc := NewEventService(repo, testGrace)

	// Buffered end pulled inside the event.
	badEnd := start.Add(30 * time.Minute)
	_, err := svc.Update(ctx, "ev-1", &domain.EventUpdate{BufferedEnd: &badEnd})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEventService_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewEventService(&mockEventRepository{events: map[string]*domain.Event{}}, testGrace)
	_, err := svc.Update(ctx, "ev-404", &domain.EventUpdate{})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventService_ListActive(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	repo := &mockEventRepository{events: map[string]*domain.Event{
		"open": {
			ID: "open", Name: "Open",
			BufferedStart: now.Add(-time.Hour), BufferedEnd: now.Add(time.Hour),
		},
		"past": {
			ID: "past", Name: "Past",
			BufferedStart: now.Add(-3 * time.Hour), BufferedEnd: now.Add(-2 * time.Hour),
		},
	}}
	svc := NewEventService(repo, testGrace)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "open", active[0].ID)
}
