package handler

import (
	"log/slog"
	"net/http"

	"github.com/tresmastres/or-hayeladim/internal/domain"
	"github.com/tresmastres/or-hayeladim/internal/service"
)

// BankHandler exposes organization bank account endpoints.
type BankHandler struct {
	directory *service.DirectoryService
	logger    *slog.Logger
}

func NewBankHandler(directory *service.DirectoryService, logger *slog.Logger) *BankHandler {
	return &BankHandler{directory: directory, logger: logger}
}

type createBankRequest struct {
	Name          string `json:"name" validate:"required"`
	AccountNumber string `json:"account_number"`
	SWIFT         string `json:"swift"`
}

// Create registers a bank account.
// POST /banks
func (h *BankHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBankRequest
	if err := Decode(r, &req); err != nil {
		Error(w, r, h.logger, err)
		return
	}

	bank, err := h.directory.CreateBank(r.Context(), domain.CreateBankParams{
		Name:          req.Name,
		AccountNumber: req.AccountNumber,
		SWIFT:         req.SWIFT,
	})
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusCreated, bank)
}

// List lists all bank accounts.
// GET /banks
func (h *BankHandler) List(w http.ResponseWriter, r *http.Request) {
	banks, err := h.directory.ListBanks(r.Context())
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusOK, banks)
}
