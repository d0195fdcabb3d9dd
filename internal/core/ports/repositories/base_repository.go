package repositories

import "context"

// TransactionRunner hides the store's transaction mechanics from services.
// The postgres store maps it onto pgx Begin/Commit/Rollback; the memory store onto a
// copy-on-write snapshot.
type TransactionRunner interface {
	// WithTransaction runs fn in a single transaction. Any error returned by fn rolls it back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx EquityTx) error) error
}
