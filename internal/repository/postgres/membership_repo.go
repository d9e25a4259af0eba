package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"clubportal/internal/domain"
)

type membershipRepository struct {
	DB *sql.DB
}

func NewMembershipRepository(db *sql.DB) domain.MembershipRepository {
	return &membershipRepository{DB: db}
}

func (r *membershipRepository) Create(ctx context.Context, m *domain.Membership) error {
	query := `
		INSERT INTO memberships (profile_id, term, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, m.ProfileID, m.Term, m.CreatedAt).Scan(&m.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrAlreadyMember
		}
		return err
	}
	return nil
}

func (r *membershipRepository) GetByID(ctx context.Context, id string) (*domain.Membership, error) {
	query := `SELECT id, profile_id, term, created_at FROM memberships WHERE id = $1`
	m := &domain.Membership{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.ProfileID, &m.Term, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *membershipRepository) GetCurrentByProfile(ctx context.Context, profileID string) (*domain.Membership, error) {
	query := `
		SELECT id, profile_id, term, created_at
		FROM memberships
		WHERE profile_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	m := &domain.Membership{}
	err := r.DB.QueryRowContext(ctx, query, profileID).Scan(&m.ID, &m.ProfileID, &m.Term, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *membershipRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM memberships WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *membershipRepository) List(ctx context.Context, term string, params domain.PaginationParams) ([]*domain.MembershipWithProfile, int, error) {
	where := ""
	args := []any{}
	if term != "" {
		where = `WHERE m.term = $1`
		args = append(args, term)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM memberships m ` + where
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT m.id, m.profile_id, m.term, m.created_at,
		       p.id, p.email, p.first_name, p.last_name, p.wat_iam, p.faculty, p.term, p.is_math_soc_member, p.role, p.created_at, p.updated_at
		FROM memberships m
		JOIN profiles p ON p.id = m.profile_id
		%s
		ORDER BY m.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	list := make([]*domain.MembershipWithProfile, 0)
	for rows.Next() {
		m := &domain.Membership{}
		p := &domain.Profile{}
		var watIAM, faculty, profTerm sql.NullString
		if err := rows.Scan(
			&m.ID, &m.ProfileID, &m.Term, &m.CreatedAt,
			&p.ID, &p.Email, &p.FirstName, &p.LastName, &watIAM, &faculty, &profTerm, &p.IsMathSocMember, &p.Role, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		p.WatIAM = watIAM.String
		p.Faculty = faculty.String
		p.Term = profTerm.String
		list = append(list, &domain.MembershipWithProfile{Membership: m, Profile: p})
	}
	return list, total, rows.Err()
}
