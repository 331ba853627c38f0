package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an administrative account that can authenticate against the API.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateUserParams contains parameters for creating a user account.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	IsAdmin      bool
}
