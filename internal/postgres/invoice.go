package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tresmastres/or-hayeladim/internal/domain"
)

// allocateRetries bounds the internal retry loop for transient allocation
// contention. Contention on the sequence row normally just blocks on the row
// lock; retries only fire on serialization failures or deadlocks.
const allocateRetries = 3

const invoiceColumns = `id, member_id, description, amount_cents, currency,
	issue_date, due_date, status, series, number, full_number, created_at`

func scanInvoice(row pgx.Row) (domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(
		&inv.ID,
		&inv.MemberID,
		&inv.Description,
		&inv.AmountCents,
		&inv.Currency,
		&inv.IssueDate,
		&inv.DueDate,
		&inv.Status,
		&inv.Series,
		&inv.Number,
		&inv.FullNumber,
		&inv.CreatedAt,
	)
	return inv, err
}

// allocateNumber issues the next invoice number for (series, year) within tx.
//
// The single upsert-increment statement makes first-creation and steady-state
// allocation one atomic step: a brand-new key inserts next_number=2 and
// allocates 1; an existing key increments under its row lock. Concurrent
// allocations on the same key serialize on that lock; different keys touch
// different rows and do not block each other. Because the statement runs in
// the invoice creation transaction, a rolled-back insert also rolls back the
// increment, so the issued run stays gapless.
func allocateNumber(ctx context.Context, tx pgx.Tx, series string, year int) (int, error) {
	var number int
	err := tx.QueryRow(ctx, `
		INSERT INTO invoice_sequences (series, year, next_number)
		VALUES ($1, $2, 2)
		ON CONFLICT (series, year)
		DO UPDATE SET next_number = invoice_sequences.next_number + 1
		RETURNING next_number - 1`,
		series, year,
	).Scan(&number)
	if err != nil {
		return 0, fmt.Errorf("allocate invoice number %s/%d: %w", series, year, err)
	}
	return number, nil
}

// CreateInvoice allocates the next sequence number for the invoice's series
// and inserts the invoice row in the same transaction.
func (s *Store) CreateInvoice(ctx context.Context, params domain.CreateInvoiceParams) (domain.Invoice, error) {
	year := params.IssueDate.Year()

	var inv domain.Invoice
	var lastErr error
	for attempt := 0; attempt < allocateRetries; attempt++ {
		lastErr = s.withTx(ctx, func(tx pgx.Tx) error {
			number, err := allocateNumber(ctx, tx, params.Series, year)
			if err != nil {
				return err
			}

			var err2 error
			inv, err2 = scanInvoice(tx.QueryRow(ctx, `
				INSERT INTO invoices (id, member_id, description, amount_cents, currency,
					issue_date, due_date, status, series, number, full_number)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
				RETURNING `+invoiceColumns,
				uuid.New(),
				params.MemberID,
				params.Description,
				params.AmountCents,
				params.Currency,
				params.IssueDate,
				params.DueDate,
				domain.InvoiceOpen,
				params.Series,
				number,
				domain.FormatFullNumber(params.Series, number),
			))
			return err2
		})
		if lastErr == nil {
			return inv, nil
		}
		if !isRetryableTxError(lastErr) {
			return domain.Invoice{}, lastErr
		}
		s.logger.Warn("invoice number allocation retry",
			"series", params.Series,
			"year", year,
			"attempt", attempt+1,
			"error", lastErr,
		)
	}
	return domain.Invoice{}, fmt.Errorf("invoice creation did not settle after %d attempts: %w", allocateRetries, lastErr)
}

// GetInvoice retrieves an invoice by ID.
func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (domain.Invoice, error) {
	inv, err := scanInvoice(s.pool.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		return domain.Invoice{}, notFound(err, "invoice.get", "invoice", id.String())
	}
	return inv, nil
}

// ListInvoices lists all invoices, newest first.
func (s *Store) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	return s.queryInvoices(ctx,
		`SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC`)
}

// ListMemberInvoices lists a member's invoices in issue order.
func (s *Store) ListMemberInvoices(ctx context.Context, memberID uuid.UUID) ([]domain.Invoice, error) {
	return s.queryInvoices(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE member_id = $1 ORDER BY issue_date, full_number`,
		memberID)
}

func (s *Store) queryInvoices(ctx context.Context, sql string, args ...any) ([]domain.Invoice, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// VoidInvoice marks an invoice void. Void is terminal: the sequence number
// stays consumed and later reconciliations never change the status again.
func (s *Store) VoidInvoice(ctx context.Context, id uuid.UUID) (domain.Invoice, error) {
	inv, err := scanInvoice(s.pool.QueryRow(ctx, `
		UPDATE invoices SET status = $2 WHERE id = $1
		RETURNING `+invoiceColumns,
		id, domain.InvoiceVoid))
	if err != nil {
		return domain.Invoice{}, notFound(err, "invoice.void", "invoice", id.String())
	}
	return inv, nil
}
