package domain

import (
	"time"

	"github.com/google/uuid"
)

// Payment records money received against one invoice. Payments are append
// only: they are never mutated or deleted once registered.
type Payment struct {
	ID          uuid.UUID  `json:"id"`
	InvoiceID   uuid.UUID  `json:"invoice_id"`
	AmountCents int64      `json:"amount_cents"`
	Method      string     `json:"method"` // cash, bank, stripe
	BankID      *uuid.UUID `json:"bank_id,omitempty"`
	ExternalID  string     `json:"external_id,omitempty"`
	PaidAt      time.Time  `json:"paid_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// RegisterPaymentParams contains parameters for registering a payment.
// ExternalID carries the processor idempotency token for webhook-originated
// payments; it is empty for manual entries.
type RegisterPaymentParams struct {
	InvoiceID   uuid.UUID
	AmountCents int64
	Method      string
	BankID      *uuid.UUID
	ExternalID  string
	PaidAt      time.Time
}

// PaymentResult reports the outcome of a payment registration, including the
// invoice status transition it caused.
type PaymentResult struct {
	Payment        Payment
	Invoice        Invoice
	PreviousStatus InvoiceStatus

	// Duplicate is true when the payment's external ID was already recorded
	// for this invoice. Nothing was written in that case.
	Duplicate bool
}

// BecamePaid reports whether this registration transitioned the invoice into
// the paid state.
func (r *PaymentResult) BecamePaid() bool {
	return !r.Duplicate && r.PreviousStatus != InvoicePaid && r.Invoice.Status == InvoicePaid
}
