package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tresmastres/or-hayeladim/internal/domain"
)

const bankColumns = `id, name, COALESCE(account_number, ''), COALESCE(swift, ''), active, created_at`

func scanBank(row pgx.Row) (domain.Bank, error) {
	var b domain.Bank
	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.AccountNumber,
		&b.SWIFT,
		&b.Active,
		&b.CreatedAt,
	)
	return b, err
}

// CreateBank registers a bank account.
func (s *Store) CreateBank(ctx context.Context, params domain.CreateBankParams) (domain.Bank, error) {
	return scanBank(s.pool.QueryRow(ctx, `
		INSERT INTO banks (id, name, account_number, swift, active)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), TRUE)
		RETURNING `+bankColumns,
		uuid.New(),
		params.Name,
		params.AccountNumber,
		params.SWIFT,
	))
}

// ListBanks lists all bank accounts by name.
func (s *Store) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+bankColumns+` FROM banks ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banks []domain.Bank
	for rows.Next() {
		b, err := scanBank(rows)
		if err != nil {
			return nil, err
		}
		banks = append(banks, b)
	}
	return banks, rows.Err()
}
