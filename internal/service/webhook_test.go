package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tresmastres/or-hayeladim/internal/billing"
	"github.com/tresmastres/or-hayeladim/internal/domain"
)

func newWebhookService(store *memStore) *WebhookService {
	payments := NewPaymentService(store, nil, nil, testLogger())
	donations := NewDonationService(store, nil, testLogger())
	return NewWebhookService(payments, donations, nil, testLogger())
}

func succeededEvent(intent *billing.PaymentIntent) *billing.WebhookEvent {
	return &billing.WebhookEvent{
		ID:            "evt_1",
		Type:          "payment_intent.succeeded",
		PaymentIntent: intent,
	}
}

func TestWebhookService_InvoicePayment(t *testing.T) {
	store := newMemStore()
	svc := newWebhookService(store)
	inv := setupInvoice(t, store, 10000)

	event := succeededEvent(&billing.PaymentIntent{
		ID:          "pi_100",
		AmountCents: 10000,
		Currency:    "eur",
		Status:      "succeeded",
		Metadata:    map[string]string{"invoice_id": inv.ID.String()},
	})

	require.NoError(t, svc.ProcessEvent(context.Background(), event))

	got, err := store.GetInvoice(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePaid, got.Status)

	payments, err := store.ListInvoicePayments(context.Background(), inv.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, MethodStripe, payments[0].Method)
	assert.Equal(t, "pi_100", payments[0].ExternalID)
}

func TestWebhookService_ReplayIsIdempotent(t *testing.T) {
	store := newMemStore()
	svc := newWebhookService(store)
	inv := setupInvoice(t, store, 10000)

	event := succeededEvent(&billing.PaymentIntent{
		ID:          "pi_200",
		AmountCents: 10000,
		Currency:    "eur",
		Metadata:    map[string]string{"invoice_id": inv.ID.String()},
	})

	// Same delivery three times: one payment row, one status transition.
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.ProcessEvent(context.Background(), event))
	}

	payments, err := store.ListInvoicePayments(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 1)

	got, err := store.GetInvoice(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePaid, got.Status)
}

func TestWebhookService_Donation(t *testing.T) {
	store := newMemStore()
	svc := newWebhookService(store)

	event := succeededEvent(&billing.PaymentIntent{
		ID:          "pi_don_1",
		AmountCents: 2500,
		Currency:    "eur",
		Metadata:    map[string]string{"kind": "donation", "campaign": "building-fund"},
	})

	require.NoError(t, svc.ProcessEvent(context.Background(), event))
	// Replay records nothing new.
	require.NoError(t, svc.ProcessEvent(context.Background(), event))

	donations, err := store.ListDonations(context.Background())
	require.NoError(t, err)
	require.Len(t, donations, 1)
	assert.Equal(t, int64(2500), donations[0].AmountCents)
	assert.Equal(t, "building-fund", donations[0].Campaign)
	assert.Equal(t, "pi_don_1", donations[0].ExternalID)
}

func TestWebhookService_IgnoresOtherEvents(t *testing.T) {
	store := newMemStore()
	svc := newWebhookService(store)

	err := svc.ProcessEvent(context.Background(), &billing.WebhookEvent{
		ID:   "evt_2",
		Type: "charge.refunded",
	})
	require.NoError(t, err)

	payments, err := store.ListPayments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestWebhookService_UnknownIntentAcknowledged(t *testing.T) {
	store := newMemStore()
	svc := newWebhookService(store)

	// No invoice_id metadata: acknowledged without writing anything.
	event := succeededEvent(&billing.PaymentIntent{
		ID:          "pi_foreign",
		AmountCents: 500,
		Currency:    "eur",
		Metadata:    map[string]string{},
	})
	require.NoError(t, svc.ProcessEvent(context.Background(), event))

	payments, err := store.ListPayments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, payments)
}
