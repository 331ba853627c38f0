package billing

import (
	"context"
	"errors"
	"time"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeProvider implements Provider using the Stripe Go SDK.
type StripeProvider struct {
	client        *stripe.Client
	webhookSecret string
}

// NewStripeProvider creates a Stripe billing provider.
// Returns ErrNotConfigured when the secret key is empty so callers can
// decide whether online payments are available at all.
func NewStripeProvider(secretKey, webhookSecret string) (*StripeProvider, error) {
	if secretKey == "" {
		return nil, ErrNotConfigured
	}
	return &StripeProvider{
		client:        stripe.NewClient(secretKey, nil),
		webhookSecret: webhookSecret,
	}, nil
}

// CreatePaymentIntent creates a Stripe payment intent.
func (s *StripeProvider) CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error) {
	createParams := &stripe.PaymentIntentCreateParams{
		Amount:   stripe.Int64(params.AmountCents),
		Currency: stripe.String(params.Currency),
		Metadata: params.Metadata,
	}
	if params.Description != "" {
		createParams.Description = stripe.String(params.Description)
	}
	if params.IdempotencyKey != "" {
		createParams.SetIdempotencyKey(params.IdempotencyKey)
	}

	pi, err := s.client.V1PaymentIntents.Create(ctx, createParams)
	if err != nil {
		return nil, wrapStripeError(err)
	}
	return fromStripePaymentIntent(pi), nil
}

// GetPaymentIntent retrieves an existing Stripe payment intent.
func (s *StripeProvider) GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error) {
	pi, err := s.client.V1PaymentIntents.Retrieve(ctx, paymentIntentID, nil)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return nil, ErrPaymentIntentNotFound
		}
		return nil, wrapStripeError(err)
	}
	return fromStripePaymentIntent(pi), nil
}

// VerifyWebhook verifies a Stripe webhook signature and parses the event.
func (s *StripeProvider) VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, ErrInvalidWebhookSignature
	}

	out := &WebhookEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}

	// Only payment_intent.* payloads carry an intent object we care about.
	if pi, err := parseEventPaymentIntent(&event); err == nil && pi != nil {
		out.PaymentIntent = pi
	}
	return out, nil
}

func parseEventPaymentIntent(event *stripe.Event) (*PaymentIntent, error) {
	var pi stripe.PaymentIntent
	if err := pi.UnmarshalJSON(event.Data.Raw); err != nil {
		return nil, err
	}
	if pi.ID == "" {
		return nil, nil
	}
	return fromStripePaymentIntent(&pi), nil
}

func fromStripePaymentIntent(pi *stripe.PaymentIntent) *PaymentIntent {
	return &PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		AmountCents:  pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
		Metadata:     pi.Metadata,
		CreatedAt:    time.Unix(pi.Created, 0),
	}
}

func wrapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return &ProviderError{
			Message:       stripeErr.Msg,
			Code:          string(stripeErr.Code),
			DeclineCode:   string(stripeErr.DeclineCode),
			RequestID:     stripeErr.RequestID,
			OriginalError: err,
		}
	}
	return err
}
