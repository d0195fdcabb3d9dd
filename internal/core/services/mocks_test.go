package services_test

import (
	"context"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/equity_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/equity_management_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock authorizer ---
type MockAuthorizer struct {
	mock.Mock
}

var _ portssvc.CompanyAuthorizerSvc = (*MockAuthorizer)(nil)

func (m *MockAuthorizer) AuthorizeCapability(ctx context.Context, userID, companyID string, capability domain.Capability) error {
	args := m.Called(ctx, userID, companyID, capability)
	return args.Error(0)
}

// --- Mock EquityStore ---
// WithTransaction hands fn the mock transaction unless an error is configured for the call.
type MockEquityStore struct {
	mock.Mock
	Tx *MockEquityTx
}

var _ portsrepo.EquityStore = (*MockEquityStore)(nil)

func (m *MockEquityStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx portsrepo.EquityTx) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m.Tx)
}

func (m *MockEquityStore) FetchShareConfiguration(ctx context.Context, companyID string) (*domain.ShareConfiguration, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareConfiguration), args.Error(1)
}

func (m *MockEquityStore) FetchActiveShareholdings(ctx context.Context, companyID string) ([]domain.Shareholding, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Shareholding), args.Error(1)
}

func (m *MockEquityStore) FindShareholding(ctx context.Context, companyID, shareholderID string) (*domain.Shareholding, error) {
	args := m.Called(ctx, companyID, shareholderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shareholding), args.Error(1)
}

func (m *MockEquityStore) FindIssuanceByID(ctx context.Context, companyID, issuanceID string) (*domain.ShareIssuance, error) {
	args := m.Called(ctx, companyID, issuanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareIssuance), args.Error(1)
}

func (m *MockEquityStore) ListIssuances(ctx context.Context, companyID string, filter domain.IssuanceFilter) ([]domain.ShareIssuance, *string, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		token := args.Get(1).(string)
		next = &token
	}
	return args.Get(0).([]domain.ShareIssuance), next, args.Error(2)
}

func (m *MockEquityStore) ListTransfers(ctx context.Context, companyID string, filter domain.TransferFilter) ([]domain.ShareTransfer, *string, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		token := args.Get(1).(string)
		next = &token
	}
	return args.Get(0).([]domain.ShareTransfer), next, args.Error(2)
}

// --- Mock EquityTx ---
type MockEquityTx struct {
	mock.Mock
}

var _ portsrepo.EquityTx = (*MockEquityTx)(nil)

func (m *MockEquityTx) LockShareConfiguration(ctx context.Context, companyID string) (*domain.ShareConfiguration, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Hand out a copy so the service cannot mutate the fixture.
	cfg := *args.Get(0).(*domain.ShareConfiguration)
	return &cfg, args.Error(1)
}

func (m *MockEquityTx) SumActiveShares(ctx context.Context, companyID string) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEquityTx) LockShareholdings(ctx context.Context, companyID string, shareholderIDs []string) (map[string]domain.Shareholding, error) {
	args := m.Called(ctx, companyID, shareholderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Shareholding), args.Error(1)
}

func (m *MockEquityTx) FindShareholderByID(ctx context.Context, companyID, shareholderID string) (*domain.Shareholder, error) {
	args := m.Called(ctx, companyID, shareholderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shareholder), args.Error(1)
}

func (m *MockEquityTx) LockIssuance(ctx context.Context, companyID, issuanceID string) (*domain.ShareIssuance, error) {
	args := m.Called(ctx, companyID, issuanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	issuance := *args.Get(0).(*domain.ShareIssuance)
	return &issuance, args.Error(1)
}

func (m *MockEquityTx) SaveShareConfiguration(ctx context.Context, cfg domain.ShareConfiguration) error {
	return m.Called(ctx, cfg).Error(0)
}

func (m *MockEquityTx) UpdateShareConfiguration(ctx context.Context, cfg domain.ShareConfiguration) error {
	return m.Called(ctx, cfg).Error(0)
}

func (m *MockEquityTx) UpsertShareholding(ctx context.Context, holding domain.Shareholding) error {
	return m.Called(ctx, holding).Error(0)
}

func (m *MockEquityTx) SaveIssuance(ctx context.Context, issuance domain.ShareIssuance) error {
	return m.Called(ctx, issuance).Error(0)
}

func (m *MockEquityTx) UpdateIssuance(ctx context.Context, issuance domain.ShareIssuance) error {
	return m.Called(ctx, issuance).Error(0)
}

func (m *MockEquityTx) SaveTransfer(ctx context.Context, transfer domain.ShareTransfer) error {
	return m.Called(ctx, transfer).Error(0)
}

func (m *MockEquityTx) SaveBuyback(ctx context.Context, buyback domain.ShareBuyback) error {
	return m.Called(ctx, buyback).Error(0)
}

// --- Mock CompanyRepository ---
type MockCompanyRepository struct {
	mock.Mock
}

var _ portsrepo.CompanyRepositoryFacade = (*MockCompanyRepository)(nil)

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company, founder domain.CompanyMember) error {
	return m.Called(ctx, company, founder).Error(0)
}

func (m *MockCompanyRepository) AddMember(ctx context.Context, membership domain.CompanyMember) error {
	return m.Called(ctx, membership).Error(0)
}

func (m *MockCompanyRepository) FindMember(ctx context.Context, userID, companyID string) (*domain.CompanyMember, error) {
	args := m.Called(ctx, userID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyMember), args.Error(1)
}

func (m *MockCompanyRepository) ListMembers(ctx context.Context, companyID string) ([]domain.CompanyMember, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompanyMember), args.Error(1)
}

// --- Mock ShareholderRepository ---
type MockShareholderRepository struct {
	mock.Mock
}

var _ portsrepo.ShareholderRepositoryFacade = (*MockShareholderRepository)(nil)

func (m *MockShareholderRepository) FindShareholderByID(ctx context.Context, companyID, shareholderID string) (*domain.Shareholder, error) {
	args := m.Called(ctx, companyID, shareholderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shareholder), args.Error(1)
}

func (m *MockShareholderRepository) ListShareholders(ctx context.Context, companyID string, limit, offset int) ([]domain.Shareholder, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Shareholder), args.Error(1)
}

func (m *MockShareholderRepository) SaveShareholder(ctx context.Context, shareholder domain.Shareholder) error {
	return m.Called(ctx, shareholder).Error(0)
}

// --- Mock valuation inputs and cache ---
type MockValuationInputs struct {
	mock.Mock
}

var _ portsrepo.ValuationInputsReader = (*MockValuationInputs)(nil)

func (m *MockValuationInputs) FetchAssets(ctx context.Context, companyID string) ([]domain.Asset, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}

func (m *MockValuationInputs) FetchLiabilitiesTotal(ctx context.Context, companyID string) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockValuationInputs) FetchIP(ctx context.Context, companyID string) ([]domain.IPItem, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IPItem), args.Error(1)
}

func (m *MockValuationInputs) FetchInfrastructure(ctx context.Context, companyID string) ([]domain.InfrastructureItem, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InfrastructureItem), args.Error(1)
}

type MockValuationCache struct {
	mock.Mock
}

var _ portsrepo.ValuationCache = (*MockValuationCache)(nil)

func (m *MockValuationCache) Get(ctx context.Context, companyID string) (*domain.ValuationSnapshot, bool, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	snap := *args.Get(0).(*domain.ValuationSnapshot)
	return &snap, args.Bool(1), args.Error(2)
}

func (m *MockValuationCache) Set(ctx context.Context, companyID string, snapshot domain.ValuationSnapshot) error {
	return m.Called(ctx, companyID, snapshot).Error(0)
}

func (m *MockValuationCache) Invalidate(ctx context.Context, companyID string) error {
	return m.Called(ctx, companyID).Error(0)
}

// --- Mock valuation service ---
type MockValuationService struct {
	mock.Mock
}

var _ portssvc.ValuationSvcFacade = (*MockValuationService)(nil)

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
