package handler

import (
	"log/slog"
	"net/http"

	"github.com/tresmastres/or-hayeladim/internal/service"
)

// AuthHandler exposes login for administrative accounts.
type AuthHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

func NewAuthHandler(users *service.UserService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates a user and returns a session token.
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := Decode(r, &req); err != nil {
		Error(w, r, h.logger, err)
		return
	}

	result, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusOK, result)
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	IsAdmin  bool   `json:"is_admin"`
}

// Register creates an additional account. Only reachable by authenticated
// users; the first admin comes from bootstrap.
// POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := Decode(r, &req); err != nil {
		Error(w, r, h.logger, err)
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Password, req.IsAdmin)
	if err != nil {
		Error(w, r, h.logger, err)
		return
	}

	JSON(w, http.StatusCreated, user)
}
