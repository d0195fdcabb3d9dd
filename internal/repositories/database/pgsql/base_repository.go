package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/equity_management_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, mapError("failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return mapError("failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", err)
	}
	return nil
}

// Postgres SQLSTATE codes the repositories translate.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgAdminShutdown        = "57P01"
)

// mapError translates driver errors into the apperrors vocabulary.
// Connection loss, timeouts and aborted transactions become ErrStoreUnavailable so callers may retry.
func mapError(msg string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, msg)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || pgconn.Timeout(err) {
		return unavailable(msg, err)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return unavailable(msg, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation:
			return apperrors.NewAppError(http.StatusConflict, msg, fmt.Errorf("%w: %s", apperrors.ErrDuplicate, pgErr.ConstraintName))
		case pgErr.Code == pgForeignKeyViolation:
			return apperrors.NewAppError(http.StatusNotFound, msg, fmt.Errorf("%w: %s", apperrors.ErrNotFound, pgErr.ConstraintName))
		case pgErr.Code == pgCheckViolation:
			return apperrors.NewAppError(http.StatusUnprocessableEntity, msg, fmt.Errorf("%w: %s", apperrors.ErrInvalidConfig, pgErr.ConstraintName))
		case pgErr.Code == pgSerializationFailure, pgErr.Code == pgDeadlockDetected, pgErr.Code == pgAdminShutdown,
			len(pgErr.Code) == 5 && pgErr.Code[:2] == "08": // connection exceptions
			return unavailable(msg, err)
		}
	}
	return apperrors.NewAppError(http.StatusInternalServerError, msg, err)
}

func unavailable(msg string, err error) error {
	return apperrors.NewAppError(http.StatusServiceUnavailable, msg, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err))
}
