package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// InvoiceStatus is the settlement state of an invoice.
type InvoiceStatus string

const (
	InvoiceOpen    InvoiceStatus = "open"
	InvoicePartial InvoiceStatus = "partial"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceVoid    InvoiceStatus = "void"
)

// Invoice-related domain errors.
var (
	ErrInvoiceVoid        = &Error{Code: ECONFLICT, Message: "Invoice is void"}
	ErrInvoiceAlreadyPaid = &Error{Code: ECONFLICT, Message: "Invoice already paid in full"}
)

// Invoice is a fiscal invoice issued to a member.
//
// Series, Number and FullNumber are assigned exactly once at creation and are
// immutable afterwards. FullNumber is unique across all invoices; Number forms
// a gapless ascending run starting at 1 within its (series, year) sequence.
type Invoice struct {
	ID          uuid.UUID     `json:"id"`
	MemberID    uuid.UUID     `json:"member_id"`
	Description string        `json:"description"`
	AmountCents int64         `json:"amount_cents"`
	Currency    string        `json:"currency"`
	IssueDate   time.Time     `json:"issue_date"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	Status      InvoiceStatus `json:"status"`
	Series      string        `json:"series"`
	Number      int           `json:"number"`
	FullNumber  string        `json:"full_number"`
	CreatedAt   time.Time     `json:"created_at"`
}

// FormatFullNumber derives the fiscal identity string for an allocated number.
func FormatFullNumber(series string, number int) string {
	return fmt.Sprintf("%s-%05d", series, number)
}

// SeriesPolicy resolves the fiscal series for an invoice. The issue date
// determines the sequence year; override is an optional caller-chosen series
// name (e.g., by invoice type).
type SeriesPolicy func(issueDate time.Time, override string) string

// YearSeries is the default series policy: the series is the issue year.
// A non-empty override is suffixed with the year so that numbering restarts
// per year without ever producing the same full number twice.
func YearSeries(issueDate time.Time, override string) string {
	if override == "" {
		return strconv.Itoa(issueDate.Year())
	}
	return fmt.Sprintf("%s-%d", override, issueDate.Year())
}

// CreateInvoiceParams contains parameters for creating an invoice.
// Series must already be resolved through a SeriesPolicy.
type CreateInvoiceParams struct {
	MemberID    uuid.UUID
	Description string
	AmountCents int64
	Currency    string
	IssueDate   time.Time
	DueDate     *time.Time
	Series      string
}

// AccountLine is one invoice row of a member account statement.
type AccountLine struct {
	InvoiceID    uuid.UUID     `json:"invoice_id"`
	FullNumber   string        `json:"full_number"`
	AmountCents  int64         `json:"amount_cents"`
	PaidCents    int64         `json:"paid_cents"`
	BalanceCents int64         `json:"balance_cents"`
	Status       InvoiceStatus `json:"status"`
}

// AccountStatement summarizes a member's invoices and outstanding balance.
type AccountStatement struct {
	MemberID          uuid.UUID     `json:"member_id"`
	Invoices          []AccountLine `json:"invoices"`
	TotalBalanceCents int64         `json:"total_balance_cents"`
}
