package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/equity_management_app/internal/apperrors"
	"github.com/SscSPs/equity_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/equity_management_app/internal/core/ports/services"
	"github.com/SscSPs/equity_management_app/internal/dto"
	"github.com/SscSPs/equity_management_app/internal/handlers"
	"github.com/SscSPs/equity_management_app/internal/platform/config"
	"github.com/SscSPs/equity_management_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testJWTSecret = "test-secret-key-that-is-long-enough"
	testIssuer    = "equity-test"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// --- Test Suite ---
type EquityHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCompany     *MockCompanyService
	mockShareholder *MockShareholderService
	mockEquity      *MockEquityService
	mockValuation   *MockValuationService

	companyID string
	userID    string
	token     string
}

func (suite *EquityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockCompany = new(MockCompanyService)
	suite.mockShareholder = new(MockShareholderService)
	suite.mockEquity = new(MockEquityService)
	suite.mockValuation = new(MockValuationService)

	cfg := &config.Config{JWTSecret: testJWTSecret, JWTIssuer: testIssuer, IsProduction: true}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Company:     suite.mockCompany,
		Shareholder: suite.mockShareholder,
		Equity:      suite.mockEquity,
		Valuation:   suite.mockValuation,
	})

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	token, err := utils.GenerateJWT(suite.userID, testJWTSecret, time.Hour, testIssuer)
	suite.Require().NoError(err)
	suite.token = token
}

func (suite *EquityHandlerTestSuite) TearDownTest() {
	suite.mockCompany.AssertExpectations(suite.T())
	suite.mockShareholder.AssertExpectations(suite.T())
	suite.mockEquity.AssertExpectations(suite.T())
	suite.mockValuation.AssertExpectations(suite.T())
}

func (suite *EquityHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+suite.token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *EquityHandlerTestSuite) companyPath(format string, args ...any) string {
	return fmt.Sprintf("/api/v1/companies/%s", suite.companyID) + fmt.Sprintf(format, args...)
}

func (suite *EquityHandlerTestSuite) decodeError(w *httptest.ResponseRecorder) errorBody {
	var body errorBody
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (suite *EquityHandlerTestSuite) usdConfig() *domain.ShareConfiguration {
	return &domain.ShareConfiguration{
		CompanyID:        suite.companyID,
		AuthorizedShares: 100_000,
		IssuedShares:     60_000,
		ParValue:         decimal.RequireFromString("0.01"),
		ClassType:        "COMMON",
		CurrencyCode:     "USD",
		Status:           domain.StatusActive,
	}
}

// --- Test Cases ---

func (suite *EquityHandlerTestSuite) TestHealthAndMetrics() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/metrics", nil)
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *EquityHandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, suite.companyPath("/cap-table"), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockEquity.AssertNotCalled(suite.T(), "GetCapTable")
}

func (suite *EquityHandlerTestSuite) TestSetupShareConfiguration_Success() {
	req := dto.SetupShareConfigurationRequest{AuthorizedShares: 100_000, IssuedShares: 60_000, CurrencyCode: "USD"}
	suite.mockEquity.On("SetupShareConfiguration", mock.Anything, suite.companyID, suite.userID, mock.MatchedBy(func(r dto.SetupShareConfigurationRequest) bool {
		return r.AuthorizedShares == 100_000 && r.IssuedShares == 60_000
	})).Return(suite.usdConfig(), nil).Once()

	w := suite.do(http.MethodPost, suite.companyPath("/share-configuration"), req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ShareConfigurationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(40_000), resp.UnissuedShares)
}

func (suite *EquityHandlerTestSuite) TestSetupShareConfiguration_InvalidConfig() {
	suite.mockEquity.On("SetupShareConfiguration", mock.Anything, suite.companyID, suite.userID, mock.Anything).
		Return(nil, fmt.Errorf("%w: issued 200 exceeds authorized 100", apperrors.ErrInvalidConfig)).Once()

	w := suite.do(http.MethodPost, suite.companyPath("/share-configuration"),
		dto.SetupShareConfigurationRequest{AuthorizedShares: 100, IssuedShares: 200})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Equal("INVALID_CONFIG", suite.decodeError(w).Code)
}

func (suite *EquityHandlerTestSuite) TestAllocate_Success_FormatsValueInRegisterCurrency() {
	shareholderID := uuid.NewString()
	holding := &domain.Shareholding{
		ShareholdingID:      uuid.NewString(),
		ShareholderID:       shareholderID,
		SharesOwned:         50_000,
		VestedShares:        50_000,
		EquityType:          domain.EquityPurchased,
		Status:              domain.StatusActive,
		OwnershipPercentage: decimal.RequireFromString("50"),
		ShareValue:          decimal.NewFromInt(25_000),
	}
	suite.mockEquity.On("Allocate", mock.Anything, suite.companyID, suite.userID, mock.MatchedBy(func(r dto.AllocateSharesRequest) bool {
		return r.ShareholderID == shareholderID && r.Shares == 50_000 && r.EquityType == "PURCHASED"
	})).Return(holding, nil).Once()
	suite.mockEquity.On("GetShareConfiguration", mock.Anything, suite.companyID, suite.userID).Return(suite.usdConfig(), nil).Once()

	w := suite.do(http.MethodPost, suite.companyPath("/allocations"), map[string]any{
		"shareholderID": shareholderID,
		"shares":        50_000,
		"equityType":    "PURCHASED",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ShareholdingResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(50_000), resp.SharesOwned)
	suite.True(resp.ShareValue.Equal(decimal.NewFromInt(25_000)))
	suite.Equal("$25,000.00", resp.ShareValueFormatted)
}

func (suite *EquityHandlerTestSuite) TestAllocate_UnknownEquityType_RejectedBeforeService() {
	w := suite.do(http.MethodPost, suite.companyPath("/allocations"), map[string]any{
		"shareholderID": uuid.NewString(),
		"shares":        10,
		"equityType":    "BORROWED",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("INVALID_INPUT", suite.decodeError(w).Code)
	suite.mockEquity.AssertNotCalled(suite.T(), "Allocate")
}

func (suite *EquityHandlerTestSuite) TestAllocate_InsufficientCapacity() {
	suite.mockEquity.On("Allocate", mock.Anything, suite.companyID, suite.userID, mock.Anything).
		Return(nil, fmt.Errorf("%w: 10 requested, 0 unallocated", apperrors.ErrInsufficientCapacity)).Once()

	w := suite.do(http.MethodPost, suite.companyPath("/allocations"), map[string]any{
		"shareholderID": uuid.NewString(),
		"shares":        10,
		"equityType":    "GRANTED",
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("INSUFFICIENT_CAPACITY", suite.decodeError(w).Code)
}

func (suite *EquityHandlerTestSuite) TestExecuteIssuance_ProposerForbidden() {
	issuanceID := uuid.NewString()
	suite.mockEquity.On("ExecuteIssuance", mock.Anything, suite.companyID, issuanceID, suite.userID).
		Return(nil, fmt.Errorf("%w: the proposer cannot approve", apperrors.ErrForbidden)).Once()

	w := suite.do(http.MethodPost, suite.companyPath("/issuances/%s/execute", issuanceID), nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("FORBIDDEN", suite.decodeError(w).Code)
}

func (suite *EquityHandlerTestSuite) TestRejectIssuance_RequiresReason() {
	w := suite.do(http.MethodPost, suite.companyPath("/issuances/%s/reject", uuid.NewString()), map[string]any{})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockEquity.AssertNotCalled(suite.T(), "RejectIssuance")
}

func (suite *EquityHandlerTestSuite) TestListIssuances_BuildsFilter() {
	next := "next-page"
	suite.mockEquity.On("ListIssuances", mock.Anything, suite.companyID, suite.userID, mock.MatchedBy(func(f domain.IssuanceFilter) bool {
		return f.Status != nil && *f.Status == domain.ApprovalPending && f.Limit == 5 && f.RecipientID == nil
	})).Return([]domain.ShareIssuance{{IssuanceID: "iss-1", ApprovalStatus: domain.ApprovalPending}}, &next, nil).Once()

	w := suite.do(http.MethodGet, suite.companyPath("/issuances?status=PENDING&limit=5"), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListIssuancesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Issuances, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
}

func (suite *EquityHandlerTestSuite) TestListIssuances_UnknownStatus() {
	w := suite.do(http.MethodGet, suite.companyPath("/issuances?status=DONE"), nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockEquity.AssertNotCalled(suite.T(), "ListIssuances")
}

func (suite *EquityHandlerTestSuite) TestTransfer_InsufficientShares() {
	suite.mockEquity.On("Transfer", mock.Anything, suite.companyID, suite.userID, mock.Anything).
		Return(nil, fmt.Errorf("%w: holder has 10", apperrors.ErrInsufficientShares)).Once()

	w := suite.do(http.MethodPost, suite.companyPath("/transfers"), map[string]any{
		"fromShareholderID": "a",
		"toShareholderID":   "b",
		"shares":            20,
		"transferType":      "SALE",
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("INSUFFICIENT_SHARES", suite.decodeError(w).Code)
}

func (suite *EquityHandlerTestSuite) TestStoreUnavailable_HidesDetails() {
	suite.mockEquity.On("GetCapTable", mock.Anything, suite.companyID, suite.userID).
		Return(nil, apperrors.NewAppError(http.StatusServiceUnavailable, "failed to query", fmt.Errorf("%w: dial tcp 10.0.0.7:5432", apperrors.ErrStoreUnavailable))).Once()

	w := suite.do(http.MethodGet, suite.companyPath("/cap-table"), nil)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	body := suite.decodeError(w)
	suite.Equal("STORE_UNAVAILABLE", body.Code)
	suite.NotContains(body.Error, "10.0.0.7")
}

func (suite *EquityHandlerTestSuite) TestCapTable_UsesTableCurrency() {
	table := &domain.CapTable{
		CompanyID:        suite.companyID,
		AuthorizedShares: 100_000,
		IssuedShares:     60_000,
		AllocatedShares:  50_000,
		PricePerShare:    decimal.RequireFromString("0.5"),
		CurrencyCode:     "EUR",
		Holdings: []domain.Shareholding{
			{ShareholderID: "s1", SharesOwned: 50_000, ShareValue: decimal.NewFromInt(25_000), Status: domain.StatusActive},
		},
	}
	suite.mockEquity.On("GetCapTable", mock.Anything, suite.companyID, suite.userID).Return(table, nil).Once()

	w := suite.do(http.MethodGet, suite.companyPath("/cap-table"), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CapTableResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("EUR", resp.CurrencyCode)
	suite.Require().Len(resp.Holdings, 1)
	suite.Contains(resp.Holdings[0].ShareValueFormatted, "25")
	suite.mockEquity.AssertNotCalled(suite.T(), "GetShareConfiguration")
}

func (suite *EquityHandlerTestSuite) TestGetVesting_PassesAsOf() {
	shareholderID := uuid.NewString()
	asOf := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)
	suite.mockEquity.On("GetVesting", mock.Anything, suite.companyID, shareholderID, suite.userID, mock.MatchedBy(func(t time.Time) bool {
		return t.Equal(asOf)
	})).Return(&domain.VestingStatus{ShareholderID: shareholderID, SharesOwned: 1000, VestedShares: 500, UnvestedShares: 500, AsOf: asOf}, nil).Once()

	w := suite.do(http.MethodGet, suite.companyPath("/shareholders/%s/vesting?asOf=2025-02-20T00:00:00Z", shareholderID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.VestingStatusResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(500), resp.VestedShares)
}

func (suite *EquityHandlerTestSuite) TestGetValuation_Refresh() {
	suite.mockValuation.On("GetValuation", mock.Anything, suite.companyID, suite.userID, true).
		Return(&domain.ValuationSnapshot{CompanyID: suite.companyID, PricePerShare: decimal.RequireFromString("0.1"), CurrencyCode: "USD"}, nil).Once()

	w := suite.do(http.MethodGet, suite.companyPath("/valuation?refresh=true"), nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *EquityHandlerTestSuite) TestCreateCompany_Success() {
	suite.mockCompany.On("CreateCompany", mock.Anything, mock.MatchedBy(func(r dto.CreateCompanyRequest) bool {
		return r.Name == "Acme" && r.DefaultCurrencyCode == "USD"
	}), suite.userID).Return(&domain.Company{CompanyID: suite.companyID, Name: "Acme", DefaultCurrencyCode: "USD", IsActive: true}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/companies", dto.CreateCompanyRequest{Name: "Acme", DefaultCurrencyCode: "USD"})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.CompanyResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(suite.companyID, resp.CompanyID)
}

func (suite *EquityHandlerTestSuite) TestGetShareholder_NotFound() {
	shareholderID := uuid.NewString()
	suite.mockShareholder.On("GetShareholder", mock.Anything, suite.companyID, shareholderID, suite.userID).
		Return(nil, fmt.Errorf("%w: shareholder %s", apperrors.ErrNotFound, shareholderID)).Once()

	w := suite.do(http.MethodGet, suite.companyPath("/shareholders/%s", shareholderID), nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("NOT_FOUND", suite.decodeError(w).Code)
}

// --- Run Test Suite ---
func TestEquityHandler(t *testing.T) {
	suite.Run(t, new(EquityHandlerTestSuite))
}
