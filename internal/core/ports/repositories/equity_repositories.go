package repositories

import (
	"context"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
)

// EquityReader defines lock-free read operations on a company's equity records.
type EquityReader interface {
	// FetchShareConfiguration returns the company's share configuration or apperrors.ErrNotFound.
	FetchShareConfiguration(ctx context.Context, companyID string) (*domain.ShareConfiguration, error)

	// FetchActiveShareholdings returns every ACTIVE holding of the company, ordered by shareholder.
	FetchActiveShareholdings(ctx context.Context, companyID string) ([]domain.Shareholding, error)

	// FindShareholding returns the holding of one shareholder (active or not).
	FindShareholding(ctx context.Context, companyID, shareholderID string) (*domain.Shareholding, error)

	// FindIssuanceByID retrieves a single issuance.
	FindIssuanceByID(ctx context.Context, companyID, issuanceID string) (*domain.ShareIssuance, error)

	// ListIssuances returns a page of issuances, newest first, and the token for the next page.
	ListIssuances(ctx context.Context, companyID string, filter domain.IssuanceFilter) ([]domain.ShareIssuance, *string, error)

	// ListTransfers returns a page of transfers, newest first, and the token for the next page.
	ListTransfers(ctx context.Context, companyID string, filter domain.TransferFilter) ([]domain.ShareTransfer, *string, error)
}

// EquityTx is the set of operations available inside a store transaction.
// Callers lock the share configuration first so writers on one company are serialized.
type EquityTx interface {
	// LockShareConfiguration reads the configuration row with an exclusive row lock.
	LockShareConfiguration(ctx context.Context, companyID string) (*domain.ShareConfiguration, error)

	// SumActiveShares totals SharesOwned over ACTIVE holdings as seen by this transaction.
	SumActiveShares(ctx context.Context, companyID string) (int64, error)

	// LockShareholdings locks the holdings of the given shareholders in shareholder id order.
	// Missing holdings are simply absent from the returned map.
	LockShareholdings(ctx context.Context, companyID string, shareholderIDs []string) (map[string]domain.Shareholding, error)

	// FindShareholderByID retrieves a shareholder as seen by this transaction.
	FindShareholderByID(ctx context.Context, companyID, shareholderID string) (*domain.Shareholder, error)

	// LockIssuance reads an issuance with an exclusive row lock.
	LockIssuance(ctx context.Context, companyID, issuanceID string) (*domain.ShareIssuance, error)

	SaveShareConfiguration(ctx context.Context, cfg domain.ShareConfiguration) error
	UpdateShareConfiguration(ctx context.Context, cfg domain.ShareConfiguration) error

	// UpsertShareholding inserts the holding, or updates it when ShareholdingID already exists.
	UpsertShareholding(ctx context.Context, holding domain.Shareholding) error

	SaveIssuance(ctx context.Context, issuance domain.ShareIssuance) error
	UpdateIssuance(ctx context.Context, issuance domain.ShareIssuance) error
	SaveTransfer(ctx context.Context, transfer domain.ShareTransfer) error
	SaveBuyback(ctx context.Context, buyback domain.ShareBuyback) error
}

// EquityStore combines reads with transactional writes.
type EquityStore interface {
	EquityReader
	TransactionRunner
}
