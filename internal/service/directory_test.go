package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tresmastres/or-hayeladim/internal/domain"
)

func TestDirectoryService_FamilyAndMember(t *testing.T) {
	store := newMemStore()
	svc := NewDirectoryService(store, testLogger())

	_, err := svc.CreateFamily(context.Background(), domain.CreateFamilyParams{Name: "  "})
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	family, err := svc.CreateFamily(context.Background(), domain.CreateFamilyParams{
		Name: "Lopez", City: "Madrid",
	})
	require.NoError(t, err)

	member, err := svc.CreateMember(context.Background(), domain.CreateMemberParams{
		FamilyID:  &family.ID,
		FirstName: "Ana",
		LastName:  "Lopez",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Lopez", member.FullName())

	// Unknown family is rejected.
	other := family.ID
	other[0] ^= 0xff
	_, err = svc.CreateMember(context.Background(), domain.CreateMemberParams{
		FamilyID:  &other,
		FirstName: "Luis",
		LastName:  "Lopez",
	})
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestDirectoryService_Account(t *testing.T) {
	store := newMemStore()
	svc := NewDirectoryService(store, testLogger())
	invoices := newInvoiceService(store, nil, nil)
	payments := NewPaymentService(store, nil, nil, testLogger())
	member := newTestMember(t, store)

	// Invoice 1: 100.00 with 40.00 paid.
	inv1, err := invoices.Create(context.Background(), CreateInvoiceInput{
		MemberID: member.ID, AmountCents: 10000,
	})
	require.NoError(t, err)
	_, err = payments.Register(context.Background(), RegisterPaymentInput{
		InvoiceID: inv1.ID, AmountCents: 4000, Method: MethodBank,
	})
	require.NoError(t, err)

	// Invoice 2: 50.00 settled.
	inv2, err := invoices.Create(context.Background(), CreateInvoiceInput{
		MemberID: member.ID, AmountCents: 5000,
	})
	require.NoError(t, err)
	_, err = payments.Register(context.Background(), RegisterPaymentInput{
		InvoiceID: inv2.ID, AmountCents: 5000, Method: MethodCash,
	})
	require.NoError(t, err)

	// Invoice 3: 20.00 voided, contributes nothing to the balance.
	inv3, err := invoices.Create(context.Background(), CreateInvoiceInput{
		MemberID: member.ID, AmountCents: 2000,
	})
	require.NoError(t, err)
	_, err = invoices.Void(context.Background(), inv3.ID)
	require.NoError(t, err)

	statement, err := svc.Account(context.Background(), member.ID)
	require.NoError(t, err)
	require.Len(t, statement.Invoices, 3)
	assert.Equal(t, int64(6000), statement.TotalBalanceCents)

	byID := make(map[string]domain.AccountLine)
	for _, line := range statement.Invoices {
		byID[line.InvoiceID.String()] = line
	}
	assert.Equal(t, int64(6000), byID[inv1.ID.String()].BalanceCents)
	assert.Equal(t, int64(0), byID[inv2.ID.String()].BalanceCents)
	assert.Equal(t, domain.InvoicePaid, byID[inv2.ID.String()].Status)
	assert.Equal(t, int64(0), byID[inv3.ID.String()].BalanceCents)
	assert.Equal(t, domain.InvoiceVoid, byID[inv3.ID.String()].Status)
}
