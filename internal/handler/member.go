package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tresmastres/or-hayeladim/internal/domain"
	"github.com/tresmastres/or-hayeladim/internal/service"
)

// MemberHandler exposes member directory and account endpoints.
type MemberHandler struct {
	directory *service.DirectoryService
	logger    *slog.Logger
}

func NewMemberHandler(directory *service.DirectoryService, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{directory: directory, logger: logger}
}

type createMemberRequest struct {
	FamilyID    *uuid.UUID `json:"family_id"`
	FirstName   string     `json:"first_name" validate:"required"`
	LastName    string     `json:"last_name" validate:"required"`
	Email       string     `json:"email" validate:"omitempty,email"`
	BirthDate   *time.Time `json:"birth_date"`
	Affiliation string     `json:"affiliation"`
}

// Create registers a member.
// POST /members
func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := Decode(r, &req); err != nil {
		Error(w, r, h.logger, err)
		return
	}

	member, err := h.directory.CreateMember(r.Context(), domain.CreateMemberParams{
		FamilyID:    req.FamilyID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		BirthDate:   req.BirthDate,
		Affiliation: req.Affiliation,
	})
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusCreated, member)
}

// Get retrieves a member by ID.
// GET /members/{id}
func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r)
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	member, err := h.directory.GetMember(r.Context(), id)
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusOK, member)
}

// List lists all members.
// GET /members
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.directory.ListMembers(r.Context())
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusOK, members)
}

// Account returns a member's account statement.
// GET /members/{id}/account
func (h *MemberHandler) Account(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r)
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	statement, err := h.directory.Account(r.Context(), id)
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusOK, statement)
}
