package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/equity_management_app/internal/apperrors"
	"github.com/SscSPs/equity_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/equity_management_app/internal/core/ports/services"
	"github.com/SscSPs/equity_management_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ValuationServiceTestSuite struct {
	suite.Suite
	inputs     *MockValuationInputs
	store      *MockEquityStore
	companies  *MockCompanyRepository
	cache      *MockValuationCache
	authorizer *MockAuthorizer
	service    portssvc.ValuationSvcFacade
	now        time.Time
}

func TestValuationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ValuationServiceTestSuite))
}

func (suite *ValuationServiceTestSuite) SetupTest() {
	suite.inputs = new(MockValuationInputs)
	suite.store = &MockEquityStore{Tx: new(MockEquityTx)}
	suite.companies = new(MockCompanyRepository)
	suite.cache = new(MockValuationCache)
	suite.authorizer = new(MockAuthorizer)
	suite.now = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	suite.service = services.NewValuationService(suite.inputs, suite.store, suite.companies,
		services.WithValuationAuthorizer(suite.authorizer),
		services.WithValuationCache(suite.cache),
		services.WithValuationClock(func() time.Time { return suite.now }),
	)
	suite.authorizer.On("AuthorizeCapability", mock.Anything, "u", "c", domain.CapViewEquity).Return(nil)
}

func (suite *ValuationServiceTestSuite) expectInputs() {
	suite.companies.On("FindCompanyByID", mock.Anything, "c").Return(&domain.Company{CompanyID: "c", DefaultCurrencyCode: "USD"}, nil).Once()
	suite.inputs.On("FetchAssets", mock.Anything, "c").Return([]domain.Asset{
		{AcquisitionCost: decimal.NewFromInt(500), AccumulatedDepreciation: decimal.NewFromInt(100), Status: domain.AssetActive},
		{AcquisitionCost: decimal.NewFromInt(900), Status: domain.AssetDisposed},
	}, nil).Once()
	suite.inputs.On("FetchLiabilitiesTotal", mock.Anything, "c").Return(decimal.NewFromInt(150), nil).Once()
	suite.inputs.On("FetchIP", mock.Anything, "c").Return([]domain.IPItem{
		{ValuationEstimate: decimal.NewFromInt(250), Status: domain.IPScaling},
		{ValuationEstimate: decimal.NewFromInt(999), Status: domain.IPConcept},
	}, nil).Once()
	suite.inputs.On("FetchInfrastructure", mock.Anything, "c").Return([]domain.InfrastructureItem{
		{ReplacementCost: decimal.NewFromInt(100), Status: domain.InfrastructureActive},
	}, nil).Once()
	suite.store.On("FetchShareConfiguration", mock.Anything, "c").Return(&domain.ShareConfiguration{AuthorizedShares: 3}, nil).Once()
}

func (suite *ValuationServiceTestSuite) TestCacheMissComputesAndStores() {
	ctx := context.Background()
	suite.cache.On("Get", ctx, "c").Return(nil, false, nil).Once()
	suite.expectInputs()
	suite.cache.On("Set", ctx, "c", mock.AnythingOfType("domain.ValuationSnapshot")).Return(nil).Once()

	snap, err := suite.service.GetValuation(ctx, "c", "u", false)

	suite.Require().NoError(err)
	suite.Equal("400", snap.TotalAssetBookValue.String())
	suite.Equal("250", snap.AccountingNetWorth.String())
	suite.Equal("600", snap.StrategicCompanyValue.String())
	suite.Equal("200", snap.PricePerShare.String())
	suite.Equal("USD", snap.CurrencyCode)
	suite.Equal(suite.now, snap.ComputedAt)
	suite.False(snap.FromCache)
	suite.cache.AssertExpectations(suite.T())
	suite.inputs.AssertExpectations(suite.T())
}

func (suite *ValuationServiceTestSuite) TestCacheHitSkipsInputs() {
	ctx := context.Background()
	suite.cache.On("Get", ctx, "c").Return(&domain.ValuationSnapshot{CompanyID: "c", PricePerShare: decimal.NewFromInt(7)}, true, nil).Once()

	snap, err := suite.service.GetValuation(ctx, "c", "u", false)

	suite.Require().NoError(err)
	suite.True(snap.FromCache)
	suite.Equal("7", snap.PricePerShare.String())
	suite.inputs.AssertNotCalled(suite.T(), "FetchAssets", mock.Anything, mock.Anything)
}

func (suite *ValuationServiceTestSuite) TestRefreshBypassesCache() {
	ctx := context.Background()
	suite.expectInputs()
	suite.cache.On("Set", ctx, "c", mock.AnythingOfType("domain.ValuationSnapshot")).Return(nil).Once()

	snap, err := suite.service.GetValuation(ctx, "c", "u", true)

	suite.Require().NoError(err)
	suite.False(snap.FromCache)
	suite.cache.AssertNotCalled(suite.T(), "Get", mock.Anything, mock.Anything)
}

func (suite *ValuationServiceTestSuite) TestCacheFailureFallsBackToCompute() {
	ctx := context.Background()
	suite.cache.On("Get", ctx, "c").Return(nil, false, errors.New("redis: connection refused")).Once()
	suite.expectInputs()
	suite.cache.On("Set", ctx, "c", mock.Anything).Return(errors.New("redis: connection refused")).Once()

	snap, err := suite.service.GetValuation(ctx, "c", "u", false)

	suite.Require().NoError(err)
	suite.Equal("200", snap.PricePerShare.String())
}

func (suite *ValuationServiceTestSuite) TestInputFailurePropagates() {
	ctx := context.Background()
	suite.cache.On("Get", ctx, "c").Return(nil, false, nil).Once()
	suite.companies.On("FindCompanyByID", ctx, "c").Return(&domain.Company{CompanyID: "c"}, nil).Once()
	suite.inputs.On("FetchAssets", ctx, "c").Return(nil, apperrors.ErrStoreUnavailable).Once()

	_, err := suite.service.GetValuation(ctx, "c", "u", false)

	suite.ErrorIs(err, apperrors.ErrStoreUnavailable)
	suite.cache.AssertNotCalled(suite.T(), "Set", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ValuationServiceTestSuite) TestMissingShareConfigurationPricesAtZero() {
	ctx := context.Background()
	suite.cache.On("Get", ctx, "c").Return(nil, false, nil).Once()
	suite.companies.On("FindCompanyByID", ctx, "c").Return(&domain.Company{CompanyID: "c"}, nil).Once()
	suite.inputs.On("FetchAssets", ctx, "c").Return([]domain.Asset{}, nil).Once()
	suite.inputs.On("FetchLiabilitiesTotal", ctx, "c").Return(decimal.Zero, nil).Once()
	suite.inputs.On("FetchIP", ctx, "c").Return([]domain.IPItem{}, nil).Once()
	suite.inputs.On("FetchInfrastructure", ctx, "c").Return([]domain.InfrastructureItem{}, nil).Once()
	suite.store.On("FetchShareConfiguration", ctx, "c").Return(nil, apperrors.ErrNotFound).Once()
	suite.cache.On("Set", ctx, "c", mock.Anything).Return(nil).Once()

	snap, err := suite.service.GetValuation(ctx, "c", "u", false)

	suite.Require().NoError(err)
	suite.True(snap.PricePerShare.IsZero())
	suite.Zero(snap.AuthorizedShares)
}

func (suite *ValuationServiceTestSuite) TestInvalidateIgnoresCacheErrors() {
	ctx := context.Background()
	suite.cache.On("Invalidate", ctx, "c").Return(errors.New("boom")).Once()

	suite.NotPanics(func() { suite.service.InvalidateValuation(ctx, "c") })
	suite.cache.AssertExpectations(suite.T())
}
