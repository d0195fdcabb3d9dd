package services

import (
	"context"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
	"github.com/SscSPs/equity_management_app/internal/dto"
)

// ShareholderSvcFacade defines operations on a company's shareholders.
type ShareholderSvcFacade interface {
	CreateShareholder(ctx context.Context, companyID, creatorUserID string, req dto.CreateShareholderRequest) (*domain.Shareholder, error)
	GetShareholder(ctx context.Context, companyID, shareholderID, requestingUserID string) (*domain.Shareholder, error)
	ListShareholders(ctx context.Context, companyID, requestingUserID string, limit, offset int) ([]domain.Shareholder, error)
}
