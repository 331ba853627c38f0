package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tresmastres/or-hayeladim/internal/service"
)

// InvoiceHandler exposes invoice lifecycle endpoints.
type InvoiceHandler struct {
	invoices *service.InvoiceService
	payments *service.PaymentService
	logger   *slog.Logger
}

func NewInvoiceHandler(invoices *service.InvoiceService, payments *service.PaymentService, logger *slog.Logger) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, payments: payments, logger: logger}
}

type createInvoiceRequest struct {
	MemberID    uuid.UUID  `json:"member_id" validate:"required"`
	Description string     `json:"description"`
	AmountCents int64      `json:"amount_cents" validate:"gte=0"`
	Currency    string     `json:"currency" validate:"omitempty,len=3"`
	IssueDate   *time.Time `json:"issue_date"`
	DueDate     *time.Time `json:"due_date"`
	Series      string     `json:"series"`
}

// Create issues an invoice.
// POST /invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := Decode(r, &req); err != nil {
		Error(w, r, h.logger, err)
		return
	}

	input := service.CreateInvoiceInput{
		MemberID:    req.MemberID,
		Description: req.Description,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		DueDate:     req.DueDate,
		Series:      req.Series,
	}
	if req.IssueDate != nil {
		input.IssueDate = *req.IssueDate
	}

	inv, err := h.invoices.Create(r.Context(), input)
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusCreated, inv)
}

// Get retrieves an invoice by ID.
// GET /invoices/{id}
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r)
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	inv, err := h.invoices.Get(r.Context(), id)
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusOK, inv)
}

// List lists all invoices.
// GET /invoices
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoices.List(r.Context())
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusOK, invoices)
}

// Void cancels an invoice.
// POST /invoices/{id}/void
func (h *InvoiceHandler) Void(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r)
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	inv, err := h.invoices.Void(r.Context(), id)
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusOK, inv)
}

// Send emails the invoice PDF to the member.
// POST /invoices/{id}/send
func (h *InvoiceHandler) Send(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r)
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	if err := h.invoices.Send(r.Context(), id); err != nil {
		Error(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// Pay opens an online payment for the invoice's outstanding balance.
// POST /invoices/{id}/pay
func (h *InvoiceHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r)
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	link, err := h.invoices.Pay(r.Context(), id)
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusOK, link)
}

// Payments lists the payments recorded against an invoice.
// GET /invoices/{id}/payments
func (h *InvoiceHandler) Payments(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r)
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	payments, err := h.payments.ListForInvoice(r.Context(), id)
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusOK, payments)
}
