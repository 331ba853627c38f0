package billing

import (
	"context"
	"time"
)

// Provider defines the interface for payment processing.
// Implementations can use Stripe, Redsys, PayPal, etc.
type Provider interface {
	// CreatePaymentIntent creates a payment intent for a one-time charge.
	// Returns payment intent with client_secret for frontend confirmation.
	CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error)

	// GetPaymentIntent retrieves an existing payment intent.
	GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error)

	// VerifyWebhook verifies a webhook request and returns the parsed event.
	// Processing must never trust an unverified payload.
	VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

// CreatePaymentIntentParams contains parameters for creating a payment intent.
type CreatePaymentIntentParams struct {
	// AmountCents is the amount in smallest currency unit (cents for EUR)
	AmountCents int64

	// Currency code (ISO 4217) - e.g., "eur", "usd"
	Currency string

	// Description appears on the customer's statement and in the dashboard
	Description string

	// Metadata for filtering and reconciliation (include invoice_id or kind=donation)
	Metadata map[string]string

	// IdempotencyKey prevents duplicate payment intents.
	// Typically the invoice ID or a unique charge identifier.
	IdempotencyKey string
}

// PaymentIntent represents a payment intent.
type PaymentIntent struct {
	// ID is the provider payment intent ID (pi_...)
	ID string

	// ClientSecret is used on the frontend to confirm payment
	ClientSecret string

	// AmountCents is the amount in smallest currency unit
	AmountCents int64

	// Currency code
	Currency string

	// Status: requires_payment_method, processing, succeeded, canceled, etc.
	Status string

	// Metadata passed during creation
	Metadata map[string]string

	// CreatedAt is when the payment intent was created
	CreatedAt time.Time
}

// WebhookEvent is a verified webhook notification from the provider.
type WebhookEvent struct {
	// ID is the provider event ID (evt_...)
	ID string

	// Type is the event type, e.g. "payment_intent.succeeded"
	Type string

	// PaymentIntent is populated for payment_intent.* events.
	PaymentIntent *PaymentIntent
}
