package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tresmastres/or-hayeladim/internal/domain"
	"github.com/tresmastres/or-hayeladim/internal/service"
)

// DonationHandler exposes donation endpoints.
type DonationHandler struct {
	donations *service.DonationService
	logger    *slog.Logger
}

func NewDonationHandler(donations *service.DonationService, logger *slog.Logger) *DonationHandler {
	return &DonationHandler{donations: donations, logger: logger}
}

type createDonationRequest struct {
	MemberID    *uuid.UUID `json:"member_id"`
	AmountCents int64      `json:"amount_cents" validate:"gt=0"`
	Currency    string     `json:"currency" validate:"omitempty,len=3"`
	Campaign    string     `json:"campaign"`
	Note        string     `json:"note"`
	Method      string     `json:"method" validate:"required,oneof=cash bank stripe"`
	DonatedAt   *time.Time `json:"donated_at"`
}

// Create records a donation.
// POST /donations
func (h *DonationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDonationRequest
	if err := Decode(r, &req); err != nil {
		Error(w, r, h.logger, err)
		return
	}

	params := domain.CreateDonationParams{
		MemberID:    req.MemberID,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Campaign:    req.Campaign,
		Note:        req.Note,
		Method:      req.Method,
	}
	if req.DonatedAt != nil {
		params.DonatedAt = *req.DonatedAt
	}

	donation, err := h.donations.Record(r.Context(), params)
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusCreated, donation)
}

// List lists all donations.
// GET /donations
func (h *DonationHandler) List(w http.ResponseWriter, r *http.Request) {
	donations, err := h.donations.List(r.Context())
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusOK, donations)
}
