package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tresmastres/or-hayeladim/internal/domain"
)

const donationColumns = `id, member_id, amount_cents, currency,
	COALESCE(campaign, ''), COALESCE(note, ''), method, COALESCE(external_id, ''),
	donated_at, created_at`

func scanDonation(row pgx.Row) (domain.Donation, error) {
	var d domain.Donation
	err := row.Scan(
		&d.ID,
		&d.MemberID,
		&d.AmountCents,
		&d.Currency,
		&d.Campaign,
		&d.Note,
		&d.Method,
		&d.ExternalID,
		&d.DonatedAt,
		&d.CreatedAt,
	)
	return d, err
}

// CreateDonation records a donation. A donation whose external ID was already
// recorded is reported with created=false and nothing is written, mirroring
// payment webhook deduplication.
func (s *Store) CreateDonation(ctx context.Context, params domain.CreateDonationParams) (domain.Donation, bool, error) {
	d, err := scanDonation(s.pool.QueryRow(ctx, `
		INSERT INTO donations (id, member_id, amount_cents, currency, campaign, note, method, external_id, donated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, NULLIF($8, ''), $9)
		RETURNING `+donationColumns,
		uuid.New(),
		params.MemberID,
		params.AmountCents,
		params.Currency,
		params.Campaign,
		params.Note,
		params.Method,
		params.ExternalID,
		params.DonatedAt,
	))
	if err != nil {
		if isUniqueViolation(err) && params.ExternalID != "" {
			existing, gerr := scanDonation(s.pool.QueryRow(ctx,
				`SELECT `+donationColumns+` FROM donations WHERE external_id = $1`,
				params.ExternalID))
			if gerr != nil {
				return domain.Donation{}, false, gerr
			}
			return existing, false, nil
		}
		return domain.Donation{}, false, err
	}
	return d, true, nil
}

// ListDonations lists all donations, newest first.
func (s *Store) ListDonations(ctx context.Context) ([]domain.Donation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+donationColumns+` FROM donations ORDER BY donated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donations []domain.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}
	return donations, rows.Err()
}
