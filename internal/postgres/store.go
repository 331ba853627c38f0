// Package postgres implements domain.Store on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tresmastres/or-hayeladim/internal/domain"
)

// Store implements domain.Store using a pgx connection pool.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// Compile-time check to ensure Store implements domain.Store.
var _ domain.Store = (*Store)(nil)

// NewStore creates a new Store instance.
func NewStore(pool *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{pool: pool, logger: logger}
}

// withTx runs fn inside a transaction, committing on success and rolling back
// on error.
func (s *Store) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// isRetryableTxError reports whether the error is transient contention
// (serialization failure or deadlock) and the transaction can be retried.
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

// isUniqueViolation reports whether the error is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505"
}

// notFound maps pgx.ErrNoRows to a domain not-found error.
func notFound(err error, op, resource, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NotFound(op, resource, id)
	}
	return err
}
