package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tresmastres/or-hayeladim/internal/domain"
)

const familyColumns = `id, name, COALESCE(email, ''), COALESCE(address, ''),
	COALESCE(city, ''), COALESCE(country, ''), COALESCE(phone, ''), created_at`

func scanFamily(row pgx.Row) (domain.Family, error) {
	var f domain.Family
	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Email,
		&f.Address,
		&f.City,
		&f.Country,
		&f.Phone,
		&f.CreatedAt,
	)
	return f, err
}

// CreateFamily inserts a family.
func (s *Store) CreateFamily(ctx context.Context, params domain.CreateFamilyParams) (domain.Family, error) {
	return scanFamily(s.pool.QueryRow(ctx, `
		INSERT INTO families (id, name, email, address, city, country, phone)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''))
		RETURNING `+familyColumns,
		uuid.New(),
		params.Name,
		params.Email,
		params.Address,
		params.City,
		params.Country,
		params.Phone,
	))
}

// GetFamily retrieves a family by ID.
func (s *Store) GetFamily(ctx context.Context, id uuid.UUID) (domain.Family, error) {
	f, err := scanFamily(s.pool.QueryRow(ctx,
		`SELECT `+familyColumns+` FROM families WHERE id = $1`, id))
	if err != nil {
		return domain.Family{}, notFound(err, "family.get", "family", id.String())
	}
	return f, nil
}

// ListFamilies lists all families by name.
func (s *Store) ListFamilies(ctx context.Context) ([]domain.Family, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+familyColumns+` FROM families ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var families []domain.Family
	for rows.Next() {
		f, err := scanFamily(rows)
		if err != nil {
			return nil, err
		}
		families = append(families, f)
	}
	return families, rows.Err()
}
