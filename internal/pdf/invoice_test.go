package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tresmastres/or-hayeladim/internal/domain"
)

func TestGenerator_Invoice(t *testing.T) {
	g := NewGenerator(Issuer{
		Name:    "Test Org",
		TaxID:   "B12345678",
		Address: "Calle Mayor 1, Madrid",
	})

	due := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
	inv := domain.Invoice{
		ID:          uuid.New(),
		MemberID:    uuid.New(),
		Description: "Annual membership fee",
		AmountCents: 12000,
		Currency:    "EUR",
		IssueDate:   time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		DueDate:     &due,
		Status:      domain.InvoiceOpen,
		Series:      "2025",
		Number:      1,
		FullNumber:  "2025-00001",
	}
	member := domain.Member{
		FirstName: "Ana",
		LastName:  "Lopez",
		Email:     "ana@example.org",
	}

	doc, err := g.Invoice(inv, member)
	if err != nil {
		t.Fatalf("Invoice: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Errorf("output does not start with PDF header, got %q", doc[:min(8, len(doc))])
	}
	if len(doc) < 500 {
		t.Errorf("document suspiciously small: %d bytes", len(doc))
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		cents    int64
		currency string
		want     string
	}{
		{12000, "EUR", "120.00 EUR"},
		{1, "EUR", "0.01 EUR"},
		{0, "USD", "0.00 USD"},
		{999999, "EUR", "9999.99 EUR"},
	}

	for _, tt := range tests {
		if got := FormatAmount(tt.cents, tt.currency); got != tt.want {
			t.Errorf("FormatAmount(%d, %q) = %q, want %q", tt.cents, tt.currency, got, tt.want)
		}
	}
}
