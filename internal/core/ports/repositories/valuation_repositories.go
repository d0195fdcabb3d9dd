package repositories

import (
	"context"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValuationInputsReader reads the balance-sheet rows the valuation is derived from.
type ValuationInputsReader interface {
	FetchAssets(ctx context.Context, companyID string) ([]domain.Asset, error)
	FetchLiabilitiesTotal(ctx context.Context, companyID string) (decimal.Decimal, error)
	FetchIP(ctx context.Context, companyID string) ([]domain.IPItem, error)
	FetchInfrastructure(ctx context.Context, companyID string) ([]domain.InfrastructureItem, error)
}

// ValuationCache holds recently computed snapshots for a bounded staleness window.
// Implementations must be safe for concurrent use.
type ValuationCache interface {
	// Get returns the cached snapshot and true, or false on a miss or an expired entry.
	Get(ctx context.Context, companyID string) (*domain.ValuationSnapshot, bool, error)
	Set(ctx context.Context, companyID string, snapshot domain.ValuationSnapshot) error
	Invalidate(ctx context.Context, companyID string) error
}
