package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"clubportal/internal/domain"
)

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{DB: db}
}

const profileColumns = `id, email, first_name, last_name, wat_iam, faculty, term, is_math_soc_member, role, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (*domain.Profile, error) {
	p := &domain.Profile{}
	var watIAM, faculty, term sql.NullString
	err := row.Scan(
		&p.ID, &p.Email, &p.FirstName, &p.LastName,
		&watIAM, &faculty, &term, &p.IsMathSocMember, &p.Role,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.WatIAM = watIAM.String
	p.Faculty = faculty.String
	p.Term = term.String
	return p, nil
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile, passwordHash, salt string) error {
	query := `
		INSERT INTO profiles (email, password_hash, salt, first_name, last_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		p.Email, passwordHash, salt, p.FirstName, p.LastName, p.Role, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	p, err := scanProfile(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	p, err := scanProfile(r.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) GetCredentialsByEmail(ctx context.Context, email string) (*domain.Profile, string, string, error) {
	query := `
		SELECT ` + profileColumns + `, password_hash, salt
		FROM profiles WHERE email = $1
	`
	p := &domain.Profile{}
	var watIAM, faculty, term sql.NullString
	var hash, salt string
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&p.ID, &p.Email, &p.FirstName, &p.LastName,
		&watIAM, &faculty, &term, &p.IsMathSocMember, &p.Role,
		&p.CreatedAt, &p.UpdatedAt,
		&hash, &salt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", "", domain.ErrNotFound
		}
		return nil, "", "", err
	}
	p.WatIAM = watIAM.String
	p.Faculty = faculty.String
	p.Term = term.String
	return p, hash, salt, nil
}

func (r *profileRepository) Update(ctx context.Context, id string, upd *domain.ProfileUpdate) (*domain.Profile, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	add := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if upd.FirstName != nil {
		add("first_name", *upd.FirstName)
	}
	if upd.LastName != nil {
		add("last_name", *upd.LastName)
	}
	if upd.WatIAM != nil {
		add("wat_iam", *upd.WatIAM)
	}
	if upd.Faculty != nil {
		add("faculty", *upd.Faculty)
	}
	if upd.Term != nil {
		add("term", *upd.Term)
	}
	if upd.IsMathSocMember != nil {
		add("is_math_soc_member", *upd.IsMathSocMember)
	}
	if n == 1 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE profiles SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, profileColumns)
	p, err := scanProfile(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) List(ctx context.Context, search string, params domain.PaginationParams) ([]*domain.Profile, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = `WHERE email ILIKE $1 OR first_name ILIKE $1 OR last_name ILIKE $1 OR wat_iam ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM profiles ` + where
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM profiles %s
		ORDER BY last_name, first_name
		LIMIT $%d OFFSET $%d
	`, profileColumns, where, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	profiles := make([]*domain.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, p)
	}
	return profiles, total, rows.Err()
}
