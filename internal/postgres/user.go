package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tresmastres/or-hayeladim/internal/domain"
)

const userColumns = `id, email, password_hash, is_admin, created_at`

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.CreatedAt,
	)
	return u, err
}

// CreateUser inserts a user account.
func (s *Store) CreateUser(ctx context.Context, params domain.CreateUserParams) (domain.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		uuid.New(),
		params.Email,
		params.PasswordHash,
		params.IsAdmin,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.Conflict("user.create", "email already registered")
		}
		return domain.User{}, err
	}
	return u, nil
}

// GetUserByEmail retrieves a user account by email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return domain.User{}, notFound(err, "user.get", "user", email)
	}
	return u, nil
}
