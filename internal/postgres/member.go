package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tresmastres/or-hayeladim/internal/domain"
)

const memberColumns = `id, family_id, first_name, last_name,
	COALESCE(email, ''), birth_date, COALESCE(affiliation, ''), created_at`

func scanMember(row pgx.Row) (domain.Member, error) {
	var m domain.Member
	err := row.Scan(
		&m.ID,
		&m.FamilyID,
		&m.FirstName,
		&m.LastName,
		&m.Email,
		&m.BirthDate,
		&m.Affiliation,
		&m.CreatedAt,
	)
	return m, err
}

// CreateMember inserts a member.
func (s *Store) CreateMember(ctx context.Context, params domain.CreateMemberParams) (domain.Member, error) {
	return scanMember(s.pool.QueryRow(ctx, `
		INSERT INTO members (id, family_id, first_name, last_name, email, birth_date, affiliation)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, NULLIF($7, ''))
		RETURNING `+memberColumns,
		uuid.New(),
		params.FamilyID,
		params.FirstName,
		params.LastName,
		params.Email,
		params.BirthDate,
		params.Affiliation,
	))
}

// GetMember retrieves a member by ID.
func (s *Store) GetMember(ctx context.Context, id uuid.UUID) (domain.Member, error) {
	m, err := scanMember(s.pool.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = $1`, id))
	if err != nil {
		return domain.Member{}, notFound(err, "member.get", "member", id.String())
	}
	return m, nil
}

// ListMembers lists all members by last name.
func (s *Store) ListMembers(ctx context.Context) ([]domain.Member, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+memberColumns+` FROM members ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
