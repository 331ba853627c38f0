package billing

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockProvider implements Provider for testing.
// It stores created intents in memory and lets tests drive status changes.
type MockProvider struct {
	mu      sync.Mutex
	seq     int
	intents map[string]*PaymentIntent

	// CreateErr, when set, is returned by CreatePaymentIntent.
	CreateErr error
	// VerifyErr, when set, is returned by VerifyWebhook.
	VerifyErr error
	// NextEvent is returned by VerifyWebhook when VerifyErr is nil.
	NextEvent *WebhookEvent
}

func NewMockProvider() *MockProvider {
	return &MockProvider{intents: make(map[string]*PaymentIntent)}
}

func (m *MockProvider) CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.seq++
	pi := &PaymentIntent{
		ID:           fmt.Sprintf("pi_mock_%d", m.seq),
		ClientSecret: fmt.Sprintf("pi_mock_%d_secret", m.seq),
		AmountCents:  params.AmountCents,
		Currency:     params.Currency,
		Status:       "requires_payment_method",
		Metadata:     params.Metadata,
		CreatedAt:    time.Now(),
	}
	m.intents[pi.ID] = pi
	return pi, nil
}

func (m *MockProvider) GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pi, ok := m.intents[paymentIntentID]
	if !ok {
		return nil, ErrPaymentIntentNotFound
	}
	return pi, nil
}

func (m *MockProvider) VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.VerifyErr != nil {
		return nil, m.VerifyErr
	}
	return m.NextEvent, nil
}

// SucceedIntent marks a stored intent as succeeded, for webhook tests.
func (m *MockProvider) SucceedIntent(paymentIntentID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if pi, ok := m.intents[paymentIntentID]; ok {
		pi.Status = "succeeded"
	}
}
