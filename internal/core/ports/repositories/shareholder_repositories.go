package repositories

import (
	"context"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
)

// ShareholderReader defines read operations for shareholder data
type ShareholderReader interface {
	// FindShareholderByID retrieves a shareholder of a company by its ID.
	FindShareholderByID(ctx context.Context, companyID, shareholderID string) (*domain.Shareholder, error)

	// ListShareholders retrieves a company's shareholders ordered by name.
	ListShareholders(ctx context.Context, companyID string, limit, offset int) ([]domain.Shareholder, error)
}

// ShareholderWriter defines write operations for shareholder data
type ShareholderWriter interface {
	SaveShareholder(ctx context.Context, shareholder domain.Shareholder) error
}

// ShareholderRepositoryFacade combines shareholder read and write operations.
type ShareholderRepositoryFacade interface {
	ShareholderReader
	ShareholderWriter
}
