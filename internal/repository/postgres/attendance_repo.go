package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"clubportal/internal/domain"
)

type attendanceRepository struct {
	DB *sql.DB
}

func NewAttendanceRepository(db *sql.DB) domain.AttendanceRepository {
	return &attendanceRepository{DB: db}
}

// Create inserts the attendance row. The ON CONFLICT clause makes two racing
// inserts for the same (event, profile) pair degrade to a single row; the
// unique constraint, not application locking, is the correctness guarantee.
func (r *attendanceRepository) Create(ctx context.Context, a *domain.Attendance) (bool, error) {
	query := `
		INSERT INTO attendance (event_id, profile_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, profile_id) DO NOTHING
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, a.EventID, a.ProfileID, a.CreatedAt).Scan(&a.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Conflict: the pair already existed, nothing inserted.
			return false, nil
		}
		// Backstop for schemas without the ON CONFLICT target.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *attendanceRepository) Exists(ctx context.Context, eventID, profileID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM attendance WHERE event_id = $1 AND profile_id = $2)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, eventID, profileID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *attendanceRepository) Delete(ctx context.Context, eventID, profileID string) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM attendance WHERE event_id = $1 AND profile_id = $2`, eventID, profileID)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (r *attendanceRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.AttendanceWithProfile, error) {
	query := `
		SELECT a.id, a.event_id, a.profile_id, a.created_at,
		       p.id, p.email, p.first_name, p.last_name, p.wat_iam, p.faculty, p.term, p.is_math_soc_member, p.role, p.created_at, p.updated_at
		FROM attendance a
		JOIN profiles p ON p.id = a.profile_id
		WHERE a.event_id = $1
		ORDER BY a.created_at
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]*domain.AttendanceWithProfile, 0)
	for rows.Next() {
		a := &domain.Attendance{}
		p := &domain.Profile{}
		var watIAM, faculty, term sql.NullString
		if err := rows.Scan(
			&a.ID, &a.EventID, &a.ProfileID, &a.CreatedAt,
			&p.ID, &p.Email, &p.FirstName, &p.LastName, &watIAM, &faculty, &term, &p.IsMathSocMember, &p.Role, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		p.WatIAM = watIAM.String
		p.Faculty = faculty.String
		p.Term = term.String
		list = append(list, &domain.AttendanceWithProfile{Attendance: a, Profile: p})
	}
	return list, rows.Err()
}
