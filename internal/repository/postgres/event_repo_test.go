package postgres

import (
	"context"
	"testing"
	"time"

	"clubportal/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eventRowColumns = []string{
	"id", "name", "description", "location", "image_url",
	"start_time", "end_time", "buffered_start_time", "buffered_end_time",
	"created_at", "updated_at",
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT .+ FROM events WHERE id = \$1`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows(eventRowColumns).
				AddRow("ev-1", "Game Night", "Board games", "MC 3001", nil,
					start, start.Add(2*time.Hour), start.Add(-30*time.Minute), start.Add(2*time.Hour+30*time.Minute),
					start, start))

		repo := NewEventRepository(db)
		ev, err := repo.GetByID(ctx, "ev-1")
		require.NoError(t, err)
		assert.Equal(t, "Game Night", ev.Name)
		assert.Nil(t, ev.ImageURL)
		assert.True(t, ev.BufferedStart.Before(ev.StartTime))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT .+ FROM events WHERE id = \$1`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(eventRowColumns))

		repo := NewEventRepository(db)
		_, err = repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_ListActive(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 18, 15, 0, 0, time.UTC)
	start := now.Add(-15 * time.Minute)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`buffered_start_time <= \$1 AND buffered_end_time >= \$1`).
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows(eventRowColumns).
			AddRow("ev-1", "Game Night", "Board games", "MC 3001", "https://cdn.example.org/gn.png",
				start, start.Add(2*time.Hour), start.Add(-30*time.Minute), start.Add(2*time.Hour+30*time.Minute),
				start, start))

	repo := NewEventRepository(db)
	events, err := repo.ListActive(ctx, now)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].ImageURL)
	assert.Equal(t, "https://cdn.example.org/gn.png", *events[0].ImageURL)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	t.Run("partial update", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		name := "Game Night (rescheduled)"
		mock.ExpectQuery(`UPDATE events SET updated_at = NOW\(\), name = \$1`).
			WithArgs(name, "ev-1").
			WillReturnRows(sqlmock.NewRows(eventRowColumns).
				AddRow("ev-1", name, "Board games", "MC 3001", nil,
					start, start.Add(2*time.Hour), start.Add(-30*time.Minute), start.Add(2*time.Hour+30*time.Minute),
					start, start))

		repo := NewEventRepository(db)
		ev, err := repo.Update(ctx, "ev-1", &domain.EventUpdate{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, name, ev.Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty update reads current row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT .+ FROM events WHERE id = \$1`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows(eventRowColumns).
				AddRow("ev-1", "Game Night", "Board games", "MC 3001", nil,
					start, start.Add(2*time.Hour), start.Add(-30*time.Minute), start.Add(2*time.Hour+30*time.Minute),
					start, start))

		repo := NewEventRepository(db)
		ev, err := repo.Update(ctx, "ev-1", &domain.EventUpdate{})
		require.NoError(t, err)
		assert.Equal(t, "Game Night", ev.Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
			WithArgs("ev-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewEventRepository(db)
		require.NoError(t, repo.Delete(ctx, "ev-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewEventRepository(db)
		assert.ErrorIs(t, repo.Delete(ctx, "missing"), domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
