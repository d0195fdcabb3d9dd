package services

import (
	"context"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
)

// ValuationSvcFacade computes company valuations and per-share prices.
type ValuationSvcFacade interface {
	// GetValuation returns the company's valuation, served from cache unless refresh is set.
	GetValuation(ctx context.Context, companyID, requestingUserID string, refresh bool) (*domain.ValuationSnapshot, error)

	// InvalidateValuation drops any cached valuation of the company.
	InvalidateValuation(ctx context.Context, companyID string)
}
