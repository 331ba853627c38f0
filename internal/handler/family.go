package handler

import (
	"log/slog"
	"net/http"

	"github.com/tresmastres/or-hayeladim/internal/domain"
	"github.com/tresmastres/or-hayeladim/internal/service"
)

// FamilyHandler exposes family directory endpoints.
type FamilyHandler struct {
	directory *service.DirectoryService
	logger    *slog.Logger
}

func NewFamilyHandler(directory *service.DirectoryService, logger *slog.Logger) *FamilyHandler {
	return &FamilyHandler{directory: directory, logger: logger}
}

type createFamilyRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
}

// Create registers a family.
// POST /families
func (h *FamilyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFamilyRequest
	if err := Decode(r, &req); err != nil {
		Error(w, r, h.logger, err)
		return
	}

	family, err := h.directory.CreateFamily(r.Context(), domain.CreateFamilyParams{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		City:    req.City,
		Country: req.Country,
		Phone:   req.Phone,
	})
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusCreated, family)
}

// Get retrieves a family by ID.
// GET /families/{id}
func (h *FamilyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r)
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	family, err := h.directory.GetFamily(r.Context(), id)
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusOK, family)
}

// List lists all families.
// GET /families
func (h *FamilyHandler) List(w http.ResponseWriter, r *http.Request) {
	families, err := h.directory.ListFamilies(r.Context())
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusOK, families)
}
