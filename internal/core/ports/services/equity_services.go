package services

import (
	"context"
	"time"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
	"github.com/SscSPs/equity_management_app/internal/dto"
)

// ShareConfigurationSvc manages a company's authorized and issued share register.
type ShareConfigurationSvc interface {
	GetShareConfiguration(ctx context.Context, companyID, requestingUserID string) (*domain.ShareConfiguration, error)
	SetupShareConfiguration(ctx context.Context, companyID, userID string, req dto.SetupShareConfigurationRequest) (*domain.ShareConfiguration, error)
	UpdateShareConfiguration(ctx context.Context, companyID, userID string, req dto.UpdateShareConfigurationRequest) (*domain.ShareConfiguration, error)
}

// AllocationSvc allocates already-issued shares to shareholders.
type AllocationSvc interface {
	Allocate(ctx context.Context, companyID, userID string, req dto.AllocateSharesRequest) (*domain.Shareholding, error)
}

// IssuanceSvc runs the two-party issuance lifecycle.
type IssuanceSvc interface {
	ProposeIssuance(ctx context.Context, companyID, proposerID string, req dto.ProposeIssuanceRequest) (*domain.ShareIssuance, error)
	ExecuteIssuance(ctx context.Context, companyID, issuanceID, approverID string) (*domain.Shareholding, error)
	RejectIssuance(ctx context.Context, companyID, issuanceID, approverID, reason string) (*domain.ShareIssuance, error)
	GetIssuance(ctx context.Context, companyID, issuanceID, requestingUserID string) (*domain.ShareIssuance, error)
	ListIssuances(ctx context.Context, companyID, requestingUserID string, filter domain.IssuanceFilter) ([]domain.ShareIssuance, *string, error)
}

// TransferSvc moves and retires shares between holders.
type TransferSvc interface {
	Transfer(ctx context.Context, companyID, userID string, req dto.TransferSharesRequest) (*domain.TransferResult, error)
	ListTransfers(ctx context.Context, companyID, requestingUserID string, filter domain.TransferFilter) ([]domain.ShareTransfer, *string, error)
	Buyback(ctx context.Context, companyID, userID string, req dto.BuybackSharesRequest) (*domain.ShareBuyback, *domain.Shareholding, error)
}

// HoldingReaderSvc reports holdings with derived ownership, value and vesting.
type HoldingReaderSvc interface {
	GetCapTable(ctx context.Context, companyID, requestingUserID string) (*domain.CapTable, error)
	GetShareholding(ctx context.Context, companyID, shareholderID, requestingUserID string) (*domain.Shareholding, error)
	GetVesting(ctx context.Context, companyID, shareholderID, requestingUserID string, asOf time.Time) (*domain.VestingStatus, error)
}

// EquitySvcFacade combines all equity-related service interfaces
// This is a facade for clients that need access to all operations
type EquitySvcFacade interface {
	ShareConfigurationSvc
	AllocationSvc
	IssuanceSvc
	TransferSvc
	HoldingReaderSvc
}
