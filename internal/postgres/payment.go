package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tresmastres/or-hayeladim/internal/domain"
)

const paymentColumns = `id, invoice_id, amount_cents, method, bank_id,
	COALESCE(external_id, ''), paid_at, created_at`

func scanPayment(row pgx.Row) (domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(
		&p.ID,
		&p.InvoiceID,
		&p.AmountCents,
		&p.Method,
		&p.BankID,
		&p.ExternalID,
		&p.PaidAt,
		&p.CreatedAt,
	)
	return p, err
}

// RegisterPayment inserts a payment and recomputes the invoice's settlement
// status from the full payment sum, all in one transaction.
//
// The invoice row is locked first so that concurrent registrations against the
// same invoice serialize and the persisted status always reflects the complete
// payment set at commit time. Payments carrying an already-seen external ID
// for the invoice are reported as duplicates without writing anything.
func (s *Store) RegisterPayment(ctx context.Context, params domain.RegisterPaymentParams) (*domain.PaymentResult, error) {
	var result domain.PaymentResult

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		inv, err := scanInvoice(tx.QueryRow(ctx,
			`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`,
			params.InvoiceID))
		if err != nil {
			return notFound(err, "payment.register", "invoice", params.InvoiceID.String())
		}
		result.PreviousStatus = inv.Status

		if params.ExternalID != "" {
			var seen bool
			err := tx.QueryRow(ctx, `
				SELECT EXISTS (
					SELECT 1 FROM payments
					WHERE invoice_id = $1 AND external_id = $2
				)`,
				params.InvoiceID, params.ExternalID,
			).Scan(&seen)
			if err != nil {
				return err
			}
			if seen {
				result.Duplicate = true
				result.Invoice = inv
				return nil
			}
		}

		result.Payment, err = scanPayment(tx.QueryRow(ctx, `
			INSERT INTO payments (id, invoice_id, amount_cents, method, bank_id, external_id, paid_at)
			VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
			RETURNING `+paymentColumns,
			uuid.New(),
			params.InvoiceID,
			params.AmountCents,
			params.Method,
			params.BankID,
			params.ExternalID,
			params.PaidAt,
		))
		if err != nil {
			return err
		}

		var paid int64
		err = tx.QueryRow(ctx,
			`SELECT COALESCE(SUM(amount_cents), 0) FROM payments WHERE invoice_id = $1`,
			params.InvoiceID,
		).Scan(&paid)
		if err != nil {
			return err
		}

		status := domain.SettlementStatus(inv.Status, inv.AmountCents, paid)
		if status != inv.Status {
			_, err = tx.Exec(ctx,
				`UPDATE invoices SET status = $2 WHERE id = $1`,
				params.InvoiceID, status)
			if err != nil {
				return err
			}
		}
		inv.Status = status
		result.Invoice = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListPayments lists all payments, newest first.
func (s *Store) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	return s.queryPayments(ctx,
		`SELECT `+paymentColumns+` FROM payments ORDER BY created_at DESC`)
}

// ListInvoicePayments lists an invoice's payments in registration order.
func (s *Store) ListInvoicePayments(ctx context.Context, invoiceID uuid.UUID) ([]domain.Payment, error) {
	return s.queryPayments(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE invoice_id = $1 ORDER BY created_at`,
		invoiceID)
}

func (s *Store) queryPayments(ctx context.Context, sql string, args ...any) ([]domain.Payment, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
