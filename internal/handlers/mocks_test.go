package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/equity_management_app/internal/core/ports/services"
	"github.com/SscSPs/equity_management_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock CompanyService ---
type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) GetCompany(ctx context.Context, companyID, requestingUserID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyService) ListMembers(ctx context.Context, companyID, requestingUserID string) ([]domain.CompanyMember, error) {
	args := m.Called(ctx, companyID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompanyMember), args.Error(1)
}

func (m *MockCompanyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyService) AddMember(ctx context.Context, companyID, addingUserID string, req dto.AddMemberRequest) (*domain.CompanyMember, error) {
	args := m.Called(ctx, companyID, addingUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyMember), args.Error(1)
}

func (m *MockCompanyService) AuthorizeCapability(ctx context.Context, userID, companyID string, capability domain.Capability) error {
	return m.Called(ctx, userID, companyID, capability).Error(0)
}

var _ portssvc.CompanySvcFacade = (*MockCompanyService)(nil)

// --- Mock ShareholderService ---
type MockShareholderService struct {
	mock.Mock
}

func (m *MockShareholderService) CreateShareholder(ctx context.Context, companyID, creatorUserID string, req dto.CreateShareholderRequest) (*domain.Shareholder, error) {
	args := m.Called(ctx, companyID, creatorUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shareholder), args.Error(1)
}

func (m *MockShareholderService) GetShareholder(ctx context.Context, companyID, shareholderID, requestingUserID string) (*domain.Shareholder, error) {
	args := m.Called(ctx, companyID, shareholderID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shareholder), args.Error(1)
}

func (m *MockShareholderService) ListShareholders(ctx context.Context, companyID, requestingUserID string, limit, offset int) ([]domain.Shareholder, error) {
	args := m.Called(ctx, companyID, requestingUserID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Shareholder), args.Error(1)
}

var _ portssvc.ShareholderSvcFacade = (*MockShareholderService)(nil)

// --- Mock EquityService ---
type MockEquityService struct {
	mock.Mock
}

func (m *MockEquityService) GetShareConfiguration(ctx context.Context, companyID, requestingUserID string) (*domain.ShareConfiguration, error) {
	args := m.Called(ctx, companyID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareConfiguration), args.Error(1)
}

func (m *MockEquityService) SetupShareConfiguration(ctx context.Context, companyID, userID string, req dto.SetupShareConfigurationRequest) (*domain.ShareConfiguration, error) {
	args := m.Called(ctx, companyID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareConfiguration), args.Error(1)
}

func (m *MockEquityService) UpdateShareConfiguration(ctx context.Context, companyID, userID string, req dto.UpdateShareConfigurationRequest) (*domain.ShareConfiguration, error) {
	args := m.Called(ctx, companyID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareConfiguration), args.Error(1)
}

func (m *MockEquityService) Allocate(ctx context.Context, companyID, userID string, req dto.AllocateSharesRequest) (*domain.Shareholding, error) {
	args := m.Called(ctx, companyID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shareholding), args.Error(1)
}

func (m *MockEquityService) ProposeIssuance(ctx context.Context, companyID, proposerID string, req dto.ProposeIssuanceRequest) (*domain.ShareIssuance, error) {
	args := m.Called(ctx, companyID, proposerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareIssuance), args.Error(1)
}

func (m *MockEquityService) ExecuteIssuance(ctx context.Context, companyID, issuanceID, approverID string) (*domain.Shareholding, error) {
	args := m.Called(ctx, companyID, issuanceID, approverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shareholding), args.Error(1)
}

func (m *MockEquityService) RejectIssuance(ctx context.Context, companyID, issuanceID, approverID, reason string) (*domain.ShareIssuance, error) {
	args := m.Called(ctx, companyID, issuanceID, approverID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareIssuance), args.Error(1)
}

func (m *MockEquityService) GetIssuance(ctx context.Context, companyID, issuanceID, requestingUserID string) (*domain.ShareIssuance, error) {
	args := m.Called(ctx, companyID, issuanceID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareIssuance), args.Error(1)
}

func (m *MockEquityService) ListIssuances(ctx context.Context, companyID, requestingUserID string, filter domain.IssuanceFilter) ([]domain.ShareIssuance, *string, error) {
	args := m.Called(ctx, companyID, requestingUserID, filter)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.ShareIssuance), next, args.Error(2)
}

func (m *MockEquityService) Transfer(ctx context.Context, companyID, userID string, req dto.TransferSharesRequest) (*domain.TransferResult, error) {
	args := m.Called(ctx, companyID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferResult), args.Error(1)
}

func (m *MockEquityService) ListTransfers(ctx context.Context, companyID, requestingUserID string, filter domain.TransferFilter) ([]domain.ShareTransfer, *string, error) {
	args := m.Called(ctx, companyID, requestingUserID, filter)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.ShareTransfer), next, args.Error(2)
}

func (m *MockEquityService) Buyback(ctx context.Context, companyID, userID string, req dto.BuybackSharesRequest) (*domain.ShareBuyback, *domain.Shareholding, error) {
	args := m.Called(ctx, companyID, userID, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.ShareBuyback), args.Get(1).(*domain.Shareholding), args.Error(2)
}

func (m *MockEquityService) GetCapTable(ctx context.Context, companyID, requestingUserID string) (*domain.CapTable, error) {
	args := m.Called(ctx, companyID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CapTable), args.Error(1)
}

func (m *MockEquityService) GetShareholding(ctx context.Context, companyID, shareholderID, requestingUserID string) (*domain.Shareholding, error) {
	args := m.Called(ctx, companyID, shareholderID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shareholding), args.Error(1)
}

func (m *MockEquityService) GetVesting(ctx context.Context, companyID, shareholderID, requestingUserID string, asOf time.Time) (*domain.VestingStatus, error) {
	args := m.Called(ctx, companyID, shareholderID, requestingUserID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VestingStatus), args.Error(1)
}

var _ portssvc.EquitySvcFacade = (*MockEquityService)(nil)

// --- Mock ValuationService ---
type MockValuationService struct {
	mock.Mock
}

func (m *MockValuationService) GetValuation(ctx context.Context, companyID, requestingUserID string, refresh bool) (*domain.ValuationSnapshot, error) {
	args := m.Called(ctx, companyID, requestingUserID, refresh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValuationSnapshot), args.Error(1)
}

func (m *MockValuationService) InvalidateValuation(ctx context.Context, companyID string) {
	m.Called(ctx, companyID)
}

var _ portssvc.ValuationSvcFacade = (*MockValuationService)(nil)
