package billing

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned when no provider credentials are set.
	// Online payment endpoints surface this before touching any state.
	ErrNotConfigured = errors.New("billing: payment provider not configured")

	// ErrPaymentIntentNotFound is returned when payment intent does not exist.
	ErrPaymentIntentNotFound = errors.New("billing: payment intent not found")

	// ErrInvalidWebhookSignature is returned when webhook signature verification fails.
	ErrInvalidWebhookSignature = errors.New("billing: invalid webhook signature")

	// ErrAmountTooSmall is returned when payment amount is below the provider minimum.
	ErrAmountTooSmall = errors.New("billing: amount too small")
)

// ProviderError wraps a provider API error with additional context.
type ProviderError struct {
	Message       string // Human-readable error message
	Code          string // Provider error code (e.g., "card_declined")
	DeclineCode   string // Card decline reason (if applicable)
	RequestID     string // Provider request ID for debugging
	OriginalError error  // Original error from the SDK
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("billing: %s (code: %s)", e.Message, e.Code)
	}
	return fmt.Sprintf("billing: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.OriginalError
}

// IsDeclined returns true if error is due to card decline.
func (e *ProviderError) IsDeclined() bool {
	return e.Code == "card_declined" || e.DeclineCode != ""
}
