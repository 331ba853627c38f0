package domain

// SettlementStatus computes the invoice status implied by the sum of its
// recorded payments. The computation is a pure projection of the payment set:
// calling it twice with the same inputs yields the same status, so callers may
// re-derive the stored status at any time without drift.
//
// Void is terminal. An explicitly voided invoice stays void regardless of
// payments.
func SettlementStatus(current InvoiceStatus, amountCents, paidCents int64) InvoiceStatus {
	if current == InvoiceVoid {
		return InvoiceVoid
	}
	switch {
	case paidCents <= 0:
		return InvoiceOpen
	case paidCents < amountCents:
		return InvoicePartial
	default:
		return InvoicePaid
	}
}

// Balance returns the outstanding amount, never negative.
func Balance(amountCents, paidCents int64) int64 {
	if paidCents >= amountCents {
		return 0
	}
	return amountCents - paidCents
}
