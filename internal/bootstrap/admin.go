// Package bootstrap handles one-time initialization tasks for the application.
package bootstrap

import (
	"context"
	"log/slog"

	"github.com/tresmastres/or-hayeladim/internal/auth"
	"github.com/tresmastres/or-hayeladim/internal/domain"
)

// EnsureAdmin creates the initial admin user if it doesn't exist.
// This function is idempotent - safe to call on every startup.
//
// If the admin user already exists (by email), it returns without error.
// If email or password is empty, it logs a warning and skips, which allows
// running without an admin in dev.
func EnsureAdmin(ctx context.Context, store domain.Store, email, password string, logger *slog.Logger) error {
	if email == "" || password == "" {
		logger.Warn("bootstrap: skipping admin creation - ADMIN_EMAIL or ADMIN_PASSWORD not set",
			"hint", "Set these environment variables to create an admin user on first startup",
		)
		return nil
	}

	if _, err := store.GetUserByEmail(ctx, email); err == nil {
		logger.Debug("bootstrap: admin user already exists", "email", email)
		return nil
	} else if !domain.IsCode(err, domain.ENOTFOUND) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user, err := store.CreateUser(ctx, domain.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
	})
	if err != nil {
		// A concurrent replica may have created it between the check and the insert.
		if domain.IsCode(err, domain.ECONFLICT) {
			return nil
		}
		return err
	}

	logger.Info("bootstrap: admin user created", "user_id", user.ID, "email", user.Email)
	return nil
}
