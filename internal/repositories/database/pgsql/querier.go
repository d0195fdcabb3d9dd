package pgsql

import (
	"context"

	"github.com/SscSPs/equity_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so select helpers serve reads and locked reads alike.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// collectRows runs query and maps every row through the model type M.
func collectRows[M, D any](ctx context.Context, q querier, msg, query string, toDomain func(M) D, args ...any) ([]D, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(msg, err)
	}
	defer rows.Close()
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[M])
	if err != nil {
		return nil, mapError(msg, err)
	}
	return mapping.ToDomainSlice(ms, toDomain), nil
}

// collectOne is collectRows for exactly one row; no rows maps to apperrors.ErrNotFound.
func collectOne[M, D any](ctx context.Context, q querier, msg, query string, toDomain func(M) D, args ...any) (*D, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(msg, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[M])
	if err != nil {
		return nil, mapError(msg, err)
	}
	d := toDomain(m)
	return &d, nil
}

// execOne runs a write that must touch exactly one row.
func execOne(ctx context.Context, q querier, msg, query string, args ...any) error {
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return mapError(msg, err)
	}
	if tag.RowsAffected() != 1 {
		return mapError(msg, pgx.ErrNoRows)
	}
	return nil
}
