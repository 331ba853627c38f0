package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tresmastres/or-hayeladim/internal/service"
)

// PaymentHandler exposes manual payment registration.
type PaymentHandler struct {
	payments *service.PaymentService
	logger   *slog.Logger
}

func NewPaymentHandler(payments *service.PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, logger: logger}
}

type registerPaymentRequest struct {
	InvoiceID   uuid.UUID  `json:"invoice_id" validate:"required"`
	AmountCents int64      `json:"amount_cents" validate:"gt=0"`
	Method      string     `json:"method" validate:"required,oneof=cash bank stripe"`
	BankID      *uuid.UUID `json:"bank_id"`
	ExternalID  string     `json:"external_id"`
	PaidAt      *time.Time `json:"paid_at"`
}

type paymentResponse struct {
	Payment   any    `json:"payment"`
	Invoice   any    `json:"invoice"`
	Duplicate bool   `json:"duplicate"`
	Status    string `json:"status"`
}

// Register records a payment against an invoice.
// POST /payments
func (h *PaymentHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerPaymentRequest
	if err := Decode(r, &req); err != nil {
		Error(w, r, h.logger, err)
		return
	}

	input := service.RegisterPaymentInput{
		InvoiceID:   req.InvoiceID,
		AmountCents: req.AmountCents,
		Method:      req.Method,
		BankID:      req.BankID,
		ExternalID:  req.ExternalID,
	}
	if req.PaidAt != nil {
		input.PaidAt = *req.PaidAt
	}

	result, err := h.payments.Register(r.Context(), input)
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	status := http.StatusCreated
	if result.Duplicate {
		status = http.StatusOK
	}
	JSON(w, status, paymentResponse{
		Payment:   result.Payment,
		Invoice:   result.Invoice,
		Duplicate: result.Duplicate,
		Status:    string(result.Invoice.Status),
	})
}

// List lists all payments.
// GET /payments
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.List(r.Context())
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusOK, payments)
}
