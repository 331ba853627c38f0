package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tresmastres/or-hayeladim/internal/billing"
	"github.com/tresmastres/or-hayeladim/internal/domain"
	"github.com/tresmastres/or-hayeladim/internal/telemetry"
)

// WebhookService applies verified payment provider events to local state.
// The provider retries deliveries, so every path must be idempotent: replays
// are absorbed by the external ID dedup in the store.
type WebhookService struct {
	payments  *PaymentService
	donations *DonationService
	metrics   *telemetry.BusinessMetrics
	logger    *slog.Logger
}

func NewWebhookService(payments *PaymentService, donations *DonationService, metrics *telemetry.BusinessMetrics, logger *slog.Logger) *WebhookService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookService{payments: payments, donations: donations, metrics: metrics, logger: logger}
}

// ProcessEvent handles one verified provider event. Unrecognized event types
// are acknowledged without action so the provider stops retrying them.
func (s *WebhookService) ProcessEvent(ctx context.Context, event *billing.WebhookEvent) error {
	if event.Type != "payment_intent.succeeded" {
		s.logger.Debug("webhook event ignored", "event_id", event.ID, "type", event.Type)
		return nil
	}
	if event.PaymentIntent == nil {
		return domain.Invalid("webhook.process", "payment_intent event without intent payload")
	}
	return s.applySucceededIntent(ctx, event.PaymentIntent)
}

func (s *WebhookService) applySucceededIntent(ctx context.Context, intent *billing.PaymentIntent) error {
	const op = "webhook.process"

	if intent.Metadata["kind"] == "donation" {
		return s.applyDonation(ctx, intent)
	}

	rawID, ok := intent.Metadata["invoice_id"]
	if !ok {
		// Not one of ours. Acknowledge so the provider stops retrying.
		s.logger.Warn("payment intent without invoice_id metadata", "payment_intent", intent.ID)
		return nil
	}
	invoiceID, err := uuid.Parse(rawID)
	if err != nil {
		return domain.Invalid(op, "malformed invoice_id metadata: "+rawID)
	}

	result, err := s.payments.Register(ctx, RegisterPaymentInput{
		InvoiceID:   invoiceID,
		AmountCents: intent.AmountCents,
		Method:      MethodStripe,
		ExternalID:  intent.ID,
		PaidAt:      time.Now(),
	})
	if err != nil {
		return err
	}
	if result.Duplicate {
		s.logger.Info("webhook replay absorbed", "payment_intent", intent.ID)
	}
	return nil
}

func (s *WebhookService) applyDonation(ctx context.Context, intent *billing.PaymentIntent) error {
	var memberID *uuid.UUID
	if raw, ok := intent.Metadata["member_id"]; ok {
		if id, err := uuid.Parse(raw); err == nil {
			memberID = &id
		}
	}

	_, err := s.donations.Record(ctx, domain.CreateDonationParams{
		MemberID:    memberID,
		AmountCents: intent.AmountCents,
		Currency:    intent.Currency,
		Campaign:    intent.Metadata["campaign"],
		Method:      MethodStripe,
		ExternalID:  intent.ID,
		DonatedAt:   time.Now(),
	})
	return err
}
