package domain

import (
	"context"

	"github.com/google/uuid"
)

// Store is the relational persistence boundary. The PostgreSQL implementation
// lives in internal/postgres; tests use an in-memory fake with the same
// transactional semantics.
//
// Two methods carry the system's correctness requirements:
//
//   - CreateInvoice allocates the next (series, year) sequence number and
//     inserts the invoice in one transaction. Concurrent creations on the same
//     key serialize on the sequence row and never receive the same number;
//     a failed insert releases the allocation with the rollback, keeping the
//     run gapless.
//
//   - RegisterPayment inserts the payment, recomputes the invoice status from
//     the full payment sum and persists it, all in one transaction. A payment
//     whose external ID was already recorded for the invoice is reported as a
//     duplicate and writes nothing.
type Store interface {
	// Users
	CreateUser(ctx context.Context, params CreateUserParams) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)

	// Families
	CreateFamily(ctx context.Context, params CreateFamilyParams) (Family, error)
	GetFamily(ctx context.Context, id uuid.UUID) (Family, error)
	ListFamilies(ctx context.Context) ([]Family, error)

	// Members
	CreateMember(ctx context.Context, params CreateMemberParams) (Member, error)
	GetMember(ctx context.Context, id uuid.UUID) (Member, error)
	ListMembers(ctx context.Context) ([]Member, error)

	// Banks
	CreateBank(ctx context.Context, params CreateBankParams) (Bank, error)
	ListBanks(ctx context.Context) ([]Bank, error)

	// Invoices
	CreateInvoice(ctx context.Context, params CreateInvoiceParams) (Invoice, error)
	GetInvoice(ctx context.Context, id uuid.UUID) (Invoice, error)
	ListInvoices(ctx context.Context) ([]Invoice, error)
	ListMemberInvoices(ctx context.Context, memberID uuid.UUID) ([]Invoice, error)
	VoidInvoice(ctx context.Context, id uuid.UUID) (Invoice, error)

	// Payments
	RegisterPayment(ctx context.Context, params RegisterPaymentParams) (*PaymentResult, error)
	ListPayments(ctx context.Context) ([]Payment, error)
	ListInvoicePayments(ctx context.Context, invoiceID uuid.UUID) ([]Payment, error)

	// Donations. The returned bool is false when the donation's external ID
	// was already recorded and nothing was written.
	CreateDonation(ctx context.Context, params CreateDonationParams) (Donation, bool, error)
	ListDonations(ctx context.Context) ([]Donation, error)
}
