package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tresmastres/or-hayeladim/internal/billing"
	"github.com/tresmastres/or-hayeladim/internal/domain"
	"github.com/tresmastres/or-hayeladim/internal/email"
	"github.com/tresmastres/or-hayeladim/internal/notify"
	"github.com/tresmastres/or-hayeladim/internal/pdf"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testNotifier(sender email.Sender) *notify.Notifier {
	generator := pdf.NewGenerator(pdf.Issuer{Name: "Test Org", TaxID: "X0000000", Address: "Test St 1"})
	return notify.NewNotifier(generator, sender, nil, testLogger())
}

func newTestMember(t *testing.T, store *memStore) domain.Member {
	t.Helper()
	member, err := store.CreateMember(context.Background(), domain.CreateMemberParams{
		FirstName: "Ana",
		LastName:  "Lopez",
		Email:     "ana@example.org",
	})
	require.NoError(t, err)
	return member
}

func newInvoiceService(store *memStore, provider billing.Provider, sender email.Sender) *InvoiceService {
	if sender == nil {
		sender = email.NewMockSender()
	}
	return NewInvoiceService(store, domain.YearSeries, testNotifier(sender), provider, nil, testLogger())
}

func TestInvoiceService_Create_SequentialNumbers(t *testing.T) {
	store := newMemStore()
	svc := newInvoiceService(store, nil, nil)
	member := newTestMember(t, store)

	issue := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 5; i++ {
		inv, err := svc.Create(context.Background(), CreateInvoiceInput{
			MemberID:    member.ID,
			AmountCents: 10000,
			IssueDate:   issue,
		})
		require.NoError(t, err)
		assert.Equal(t, "2025", inv.Series)
		assert.Equal(t, i, inv.Number)
		assert.Equal(t, fmt.Sprintf("2025-%05d", i), inv.FullNumber)
		assert.Equal(t, domain.InvoiceOpen, inv.Status)
		assert.Equal(t, "EUR", inv.Currency)
	}
}

func TestInvoiceService_Create_ConcurrentAllocationsAreGapless(t *testing.T) {
	store := newMemStore()
	svc := newInvoiceService(store, nil, nil)
	member := newTestMember(t, store)

	const workers = 50
	issue := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	numbers := make(chan int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inv, err := svc.Create(context.Background(), CreateInvoiceInput{
				MemberID:    member.ID,
				AmountCents: 5000,
				IssueDate:   issue,
			})
			if err != nil {
				t.Error(err)
				return
			}
			numbers <- inv.Number
		}()
	}
	wg.Wait()
	close(numbers)

	var got []int
	for n := range numbers {
		got = append(got, n)
	}
	sort.Ints(got)

	require.Len(t, got, workers)
	for i, n := range got {
		assert.Equal(t, i+1, n, "numbers must form a gapless run starting at 1")
	}
}

func TestInvoiceService_Create_SeriesIsolation(t *testing.T) {
	store := newMemStore()
	svc := newInvoiceService(store, nil, nil)
	member := newTestMember(t, store)

	issue := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	def, err := svc.Create(context.Background(), CreateInvoiceInput{
		MemberID: member.ID, AmountCents: 1000, IssueDate: issue,
	})
	require.NoError(t, err)

	don, err := svc.Create(context.Background(), CreateInvoiceInput{
		MemberID: member.ID, AmountCents: 1000, IssueDate: issue, Series: "DON",
	})
	require.NoError(t, err)

	// Each series has its own run starting at 1.
	assert.Equal(t, 1, def.Number)
	assert.Equal(t, 1, don.Number)
	assert.Equal(t, "2025-00001", def.FullNumber)
	assert.Equal(t, "DON-2025-00001", don.FullNumber)

	// Next year restarts the run without reusing a full number.
	nextYear, err := svc.Create(context.Background(), CreateInvoiceInput{
		MemberID: member.ID, AmountCents: 1000, IssueDate: issue.AddDate(1, 0, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, nextYear.Number)
	assert.Equal(t, "2026-00001", nextYear.FullNumber)
}

func TestInvoiceService_Create_Validation(t *testing.T) {
	store := newMemStore()
	svc := newInvoiceService(store, nil, nil)
	member := newTestMember(t, store)

	_, err := svc.Create(context.Background(), CreateInvoiceInput{
		MemberID:    member.ID,
		AmountCents: -100,
	})
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	_, err = svc.Create(context.Background(), CreateInvoiceInput{
		MemberID:    uuid.New(),
		AmountCents: 100,
	})
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestInvoiceService_Void(t *testing.T) {
	store := newMemStore()
	svc := newInvoiceService(store, nil, nil)
	payments := NewPaymentService(store, nil, nil, testLogger())
	member := newTestMember(t, store)

	inv, err := svc.Create(context.Background(), CreateInvoiceInput{
		MemberID: member.ID, AmountCents: 10000,
	})
	require.NoError(t, err)

	voided, err := svc.Void(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceVoid, voided.Status)

	// Voiding again is a no-op, not an error.
	again, err := svc.Void(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceVoid, again.Status)

	// A settled invoice cannot be voided.
	paid, err := svc.Create(context.Background(), CreateInvoiceInput{
		MemberID: member.ID, AmountCents: 1000,
	})
	require.NoError(t, err)
	_, err = payments.Register(context.Background(), RegisterPaymentInput{
		InvoiceID: paid.ID, AmountCents: 1000, Method: MethodCash,
	})
	require.NoError(t, err)

	_, err = svc.Void(context.Background(), paid.ID)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))

	// The voided invoice's number stays consumed.
	next, err := svc.Create(context.Background(), CreateInvoiceInput{
		MemberID: member.ID, AmountCents: 1000,
	})
	require.NoError(t, err)
	assert.Greater(t, next.Number, paid.Number)
}

func TestInvoiceService_Send(t *testing.T) {
	store := newMemStore()
	sender := email.NewMockSender()
	svc := newInvoiceService(store, nil, sender)
	member := newTestMember(t, store)

	inv, err := svc.Create(context.Background(), CreateInvoiceInput{
		MemberID: member.ID, AmountCents: 12000, Description: "Annual fee",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Send(context.Background(), inv.ID))
	require.Equal(t, 1, sender.Count())

	sent := sender.Last()
	assert.Equal(t, []string{member.Email}, sent.To)
	assert.Contains(t, sent.Subject, inv.FullNumber)
	require.Len(t, sent.Attachments, 1)
	assert.Equal(t, "application/pdf", sent.Attachments[0].ContentType)
	assert.True(t, len(sent.Attachments[0].Content) > 0)
}

func TestInvoiceService_Send_FailureSurfaces(t *testing.T) {
	store := newMemStore()
	sender := email.NewMockSender()
	sender.SendErr = fmt.Errorf("smtp unreachable")
	svc := newInvoiceService(store, nil, sender)
	member := newTestMember(t, store)

	inv, err := svc.Create(context.Background(), CreateInvoiceInput{
		MemberID: member.ID, AmountCents: 12000,
	})
	require.NoError(t, err)

	err = svc.Send(context.Background(), inv.ID)
	require.Error(t, err)
	assert.Equal(t, domain.EINTERNAL, domain.ErrorCode(err))
}

func TestInvoiceService_Send_VoidRejected(t *testing.T) {
	store := newMemStore()
	svc := newInvoiceService(store, nil, nil)
	member := newTestMember(t, store)

	inv, err := svc.Create(context.Background(), CreateInvoiceInput{
		MemberID: member.ID, AmountCents: 100,
	})
	require.NoError(t, err)
	_, err = svc.Void(context.Background(), inv.ID)
	require.NoError(t, err)

	err = svc.Send(context.Background(), inv.ID)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
}

func TestInvoiceService_Pay_NotConfigured(t *testing.T) {
	store := newMemStore()
	svc := newInvoiceService(store, nil, nil) // no billing provider
	member := newTestMember(t, store)

	inv, err := svc.Create(context.Background(), CreateInvoiceInput{
		MemberID: member.ID, AmountCents: 10000,
	})
	require.NoError(t, err)

	_, err = svc.Pay(context.Background(), inv.ID)
	assert.Equal(t, domain.ENOTIMPL, domain.ErrorCode(err))
}

func TestInvoiceService_Pay_OutstandingBalance(t *testing.T) {
	store := newMemStore()
	provider := billing.NewMockProvider()
	svc := newInvoiceService(store, provider, nil)
	payments := NewPaymentService(store, nil, nil, testLogger())
	member := newTestMember(t, store)

	inv, err := svc.Create(context.Background(), CreateInvoiceInput{
		MemberID: member.ID, AmountCents: 10000,
	})
	require.NoError(t, err)

	// Partial payment first, then pay the rest online.
	_, err = payments.Register(context.Background(), RegisterPaymentInput{
		InvoiceID: inv.ID, AmountCents: 4000, Method: MethodBank,
	})
	require.NoError(t, err)

	link, err := svc.Pay(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), link.AmountCents)
	assert.NotEmpty(t, link.ClientSecret)

	intent, err := provider.GetPaymentIntent(context.Background(), link.PaymentIntentID)
	require.NoError(t, err)
	assert.Equal(t, inv.ID.String(), intent.Metadata["invoice_id"])
}

func TestInvoiceService_Pay_TerminalStates(t *testing.T) {
	store := newMemStore()
	provider := billing.NewMockProvider()
	svc := newInvoiceService(store, provider, nil)
	payments := NewPaymentService(store, nil, nil, testLogger())
	member := newTestMember(t, store)

	voided, err := svc.Create(context.Background(), CreateInvoiceInput{
		MemberID: member.ID, AmountCents: 1000,
	})
	require.NoError(t, err)
	_, err = svc.Void(context.Background(), voided.ID)
	require.NoError(t, err)

	_, err = svc.Pay(context.Background(), voided.ID)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))

	settled, err := svc.Create(context.Background(), CreateInvoiceInput{
		MemberID: member.ID, AmountCents: 1000,
	})
	require.NoError(t, err)
	_, err = payments.Register(context.Background(), RegisterPaymentInput{
		InvoiceID: settled.ID, AmountCents: 1000, Method: MethodCash,
	})
	require.NoError(t, err)

	_, err = svc.Pay(context.Background(), settled.ID)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
}
