package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tresmastres/or-hayeladim/internal/billing"
	"github.com/tresmastres/or-hayeladim/internal/domain"
	"github.com/tresmastres/or-hayeladim/internal/notify"
	"github.com/tresmastres/or-hayeladim/internal/telemetry"
)

// InvoiceService provides business logic for invoice operations.
type InvoiceService struct {
	store    domain.Store
	series   domain.SeriesPolicy
	notifier *notify.Notifier
	billing  billing.Provider // nil when online payments are not configured
	metrics  *telemetry.BusinessMetrics
	logger   *slog.Logger
}

func NewInvoiceService(store domain.Store, series domain.SeriesPolicy, notifier *notify.Notifier, provider billing.Provider, metrics *telemetry.BusinessMetrics, logger *slog.Logger) *InvoiceService {
	if series == nil {
		series = domain.YearSeries
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &InvoiceService{
		store:    store,
		series:   series,
		notifier: notifier,
		billing:  provider,
		metrics:  metrics,
		logger:   logger,
	}
}

// CreateInvoiceInput is the caller-facing shape for invoice creation.
// Series is an optional series name; the issue year is always appended.
type CreateInvoiceInput struct {
	MemberID    uuid.UUID
	Description string
	AmountCents int64
	Currency    string
	IssueDate   time.Time
	DueDate     *time.Time
	Series      string
}

// Create issues a new invoice with the next number of its fiscal series.
func (s *InvoiceService) Create(ctx context.Context, input CreateInvoiceInput) (domain.Invoice, error) {
	const op = "invoice.create"

	if input.AmountCents < 0 {
		return domain.Invoice{}, domain.Invalid(op, "amount must not be negative")
	}
	if input.IssueDate.IsZero() {
		input.IssueDate = time.Now()
	}
	if input.Currency == "" {
		input.Currency = "EUR"
	}
	input.Currency = strings.ToUpper(input.Currency)

	// Reject invoices for unknown members before consuming a number.
	member, err := s.store.GetMember(ctx, input.MemberID)
	if err != nil {
		return domain.Invoice{}, err
	}

	series := s.series(input.IssueDate, input.Series)

	inv, err := s.store.CreateInvoice(ctx, domain.CreateInvoiceParams{
		MemberID:    member.ID,
		Description: input.Description,
		AmountCents: input.AmountCents,
		Currency:    input.Currency,
		IssueDate:   input.IssueDate,
		DueDate:     input.DueDate,
		Series:      series,
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	if s.metrics != nil {
		s.metrics.InvoicesCreated.WithLabelValues(inv.Series).Inc()
		s.metrics.InvoiceAmount.WithLabelValues(inv.Series).Observe(float64(inv.AmountCents))
	}
	s.logger.Info("invoice created",
		"invoice", inv.FullNumber,
		"member_id", inv.MemberID,
		"amount_cents", inv.AmountCents,
	)
	return inv, nil
}

// Get retrieves an invoice by ID.
func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (domain.Invoice, error) {
	return s.store.GetInvoice(ctx, id)
}

// List lists all invoices.
func (s *InvoiceService) List(ctx context.Context) ([]domain.Invoice, error) {
	return s.store.ListInvoices(ctx)
}

// ListForMember lists a member's invoices.
func (s *InvoiceService) ListForMember(ctx context.Context, memberID uuid.UUID) ([]domain.Invoice, error) {
	return s.store.ListMemberInvoices(ctx, memberID)
}

// Void cancels an invoice. The number stays consumed and void is terminal.
func (s *InvoiceService) Void(ctx context.Context, id uuid.UUID) (domain.Invoice, error) {
	const op = "invoice.void"

	current, err := s.store.GetInvoice(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if current.Status == domain.InvoiceVoid {
		return current, nil
	}
	if current.Status == domain.InvoicePaid {
		return domain.Invoice{}, domain.Conflict(op, "cannot void a fully paid invoice")
	}

	inv, err := s.store.VoidInvoice(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if s.metrics != nil {
		s.metrics.InvoicesVoided.Inc()
	}
	s.logger.Info("invoice voided", "invoice", inv.FullNumber)
	return inv, nil
}

// Send emails the invoice PDF to the member. Delivery failures surface to the
// caller so the operator can retry.
func (s *InvoiceService) Send(ctx context.Context, id uuid.UUID) error {
	const op = "invoice.send"

	inv, err := s.store.GetInvoice(ctx, id)
	if err != nil {
		return err
	}
	if inv.Status == domain.InvoiceVoid {
		return domain.Conflict(op, "cannot send a void invoice")
	}

	member, err := s.store.GetMember(ctx, inv.MemberID)
	if err != nil {
		return err
	}

	return s.notifier.SendInvoice(ctx, inv, member)
}

// PaymentLink is the client-facing handle for an online payment.
type PaymentLink struct {
	PaymentIntentID string `json:"payment_intent_id"`
	ClientSecret    string `json:"client_secret"`
	AmountCents     int64  `json:"amount_cents"`
	Currency        string `json:"currency"`
}

// Pay opens an online payment for the invoice's outstanding balance.
// The configuration check runs before anything else so a misconfigured
// deployment fails cleanly without touching provider or database state.
func (s *InvoiceService) Pay(ctx context.Context, id uuid.UUID) (*PaymentLink, error) {
	const op = "invoice.pay"

	if s.billing == nil {
		return nil, domain.Errorf(domain.ENOTIMPL, op, "online payments are not configured")
	}

	inv, err := s.store.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	switch inv.Status {
	case domain.InvoiceVoid:
		return nil, domain.Conflict(op, "invoice is void")
	case domain.InvoicePaid:
		return nil, domain.Conflict(op, "invoice already paid in full")
	}

	outstanding, err := s.outstandingBalance(ctx, inv)
	if err != nil {
		return nil, err
	}
	if outstanding <= 0 {
		return nil, domain.Conflict(op, "invoice has no outstanding balance")
	}

	intent, err := s.billing.CreatePaymentIntent(ctx, billing.CreatePaymentIntentParams{
		AmountCents: outstanding,
		Currency:    strings.ToLower(inv.Currency),
		Description: fmt.Sprintf("Invoice %s", inv.FullNumber),
		Metadata: map[string]string{
			"invoice_id":  inv.ID.String(),
			"full_number": inv.FullNumber,
		},
		IdempotencyKey: fmt.Sprintf("invoice-%s-%d", inv.ID, outstanding),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to create payment intent")
	}

	s.logger.Info("payment intent created",
		"invoice", inv.FullNumber,
		"payment_intent", intent.ID,
		"amount_cents", outstanding,
	)
	return &PaymentLink{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		AmountCents:     intent.AmountCents,
		Currency:        intent.Currency,
	}, nil
}

func (s *InvoiceService) outstandingBalance(ctx context.Context, inv domain.Invoice) (int64, error) {
	payments, err := s.store.ListInvoicePayments(ctx, inv.ID)
	if err != nil {
		return 0, err
	}
	var paid int64
	for _, p := range payments {
		paid += p.AmountCents
	}
	return domain.Balance(inv.AmountCents, paid), nil
}
