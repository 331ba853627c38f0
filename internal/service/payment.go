package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tresmastres/or-hayeladim/internal/domain"
	"github.com/tresmastres/or-hayeladim/internal/notify"
	"github.com/tresmastres/or-hayeladim/internal/telemetry"
)

// Payment methods accepted by the register operation.
const (
	MethodCash   = "cash"
	MethodBank   = "bank"
	MethodStripe = "stripe"
)

// PaymentService provides business logic for payment registration and
// invoice settlement.
type PaymentService struct {
	store    domain.Store
	notifier *notify.Notifier
	metrics  *telemetry.BusinessMetrics
	logger   *slog.Logger
}

func NewPaymentService(store domain.Store, notifier *notify.Notifier, metrics *telemetry.BusinessMetrics, logger *slog.Logger) *PaymentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentService{store: store, notifier: notifier, metrics: metrics, logger: logger}
}

// RegisterPaymentInput is the caller-facing shape for payment registration.
type RegisterPaymentInput struct {
	InvoiceID   uuid.UUID
	AmountCents int64
	Method      string
	BankID      *uuid.UUID
	ExternalID  string
	PaidAt      time.Time
}

// Register records a payment against an invoice and reconciles its status.
// A payment whose external ID was already recorded is a silent no-op; the
// existing invoice state is returned unchanged.
func (s *PaymentService) Register(ctx context.Context, input RegisterPaymentInput) (*domain.PaymentResult, error) {
	const op = "payment.register"

	if input.AmountCents <= 0 {
		return nil, domain.Invalid(op, "amount must be positive")
	}
	switch input.Method {
	case MethodCash, MethodBank, MethodStripe:
	case "":
		return nil, domain.Invalid(op, "method is required")
	default:
		return nil, domain.Invalid(op, "unknown payment method: "+input.Method)
	}
	if input.PaidAt.IsZero() {
		input.PaidAt = time.Now()
	}

	result, err := s.store.RegisterPayment(ctx, domain.RegisterPaymentParams{
		InvoiceID:   input.InvoiceID,
		AmountCents: input.AmountCents,
		Method:      input.Method,
		BankID:      input.BankID,
		ExternalID:  input.ExternalID,
		PaidAt:      input.PaidAt,
	})
	if err != nil {
		return nil, err
	}

	if result.Duplicate {
		if s.metrics != nil {
			s.metrics.PaymentDuplicates.Inc()
		}
		s.logger.Info("payment replay ignored",
			"invoice", result.Invoice.FullNumber,
			"external_id", input.ExternalID,
		)
		return result, nil
	}

	if s.metrics != nil {
		s.metrics.PaymentsRecorded.WithLabelValues(input.Method).Inc()
	}
	s.logger.Info("payment recorded",
		"invoice", result.Invoice.FullNumber,
		"amount_cents", input.AmountCents,
		"method", input.Method,
		"status", result.Invoice.Status,
	)

	if result.BecamePaid() {
		if s.metrics != nil {
			s.metrics.InvoicesSettled.Inc()
		}
		s.notifySettled(ctx, result.Invoice)
	}

	return result, nil
}

// notifySettled emails the member that their invoice settled. This is best
// effort: a delivery failure never fails the payment that caused it.
func (s *PaymentService) notifySettled(ctx context.Context, inv domain.Invoice) {
	if s.notifier == nil {
		return
	}

	member, err := s.store.GetMember(ctx, inv.MemberID)
	if err == nil {
		err = s.notifier.SettlementNotice(ctx, inv, member)
	}
	if err != nil {
		if s.metrics != nil {
			s.metrics.NotificationFailed.Inc()
		}
		s.logger.Warn("settlement notification failed",
			"invoice", inv.FullNumber,
			"error", err,
		)
	}
}

// List lists all payments.
func (s *PaymentService) List(ctx context.Context) ([]domain.Payment, error) {
	return s.store.ListPayments(ctx)
}

// ListForInvoice lists the payments recorded against one invoice.
func (s *PaymentService) ListForInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.Payment, error) {
	return s.store.ListInvoicePayments(ctx, invoiceID)
}
