package dto

import (
	"time"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
	"github.com/SscSPs/equity_management_app/internal/utils"
	"github.com/shopspring/decimal"
)

// GetValuationParams defines query parameters for the valuation endpoint.
type GetValuationParams struct {
	Refresh bool `form:"refresh"`
}

// ValuationResponse defines the data returned for a company valuation.
type ValuationResponse struct {
	CompanyID                      string          `json:"companyID"`
	TotalAssetBookValue            decimal.Decimal `json:"totalAssetBookValue"`
	TotalLiabilities               decimal.Decimal `json:"totalLiabilities"`
	TotalIPValuation               decimal.Decimal `json:"totalIPValuation"`
	TotalInfrastructureValue       decimal.Decimal `json:"totalInfrastructureValue"`
	AccountingNetWorth             decimal.Decimal `json:"accountingNetWorth"`
	StrategicCompanyValue          decimal.Decimal `json:"strategicCompanyValue"`
	StrategicCompanyValueFormatted string          `json:"strategicCompanyValueFormatted"`
	AuthorizedShares               int64           `json:"authorizedShares"`
	PricePerShare                  decimal.Decimal `json:"pricePerShare"`
	CurrencyCode                   string          `json:"currencyCode"`
	ComputedAt                     time.Time       `json:"computedAt"`
	FromCache                      bool            `json:"fromCache"`
	AccountingNetWorthFormatted    string          `json:"accountingNetWorthFormatted"`
}

// ToValuationResponse converts a domain.ValuationSnapshot to DTO.
func ToValuationResponse(v *domain.ValuationSnapshot) ValuationResponse {
	return ValuationResponse{
		CompanyID:                      v.CompanyID,
		TotalAssetBookValue:            v.TotalAssetBookValue,
		TotalLiabilities:               v.TotalLiabilities,
		TotalIPValuation:               v.TotalIPValuation,
		TotalInfrastructureValue:       v.TotalInfrastructureValue,
		AccountingNetWorth:             v.AccountingNetWorth,
		StrategicCompanyValue:          v.StrategicCompanyValue,
		StrategicCompanyValueFormatted: utils.FormatMoney(v.StrategicCompanyValue, v.CurrencyCode),
		AuthorizedShares:               v.AuthorizedShares,
		PricePerShare:                  v.PricePerShare,
		CurrencyCode:                   v.CurrencyCode,
		ComputedAt:                     v.ComputedAt,
		FromCache:                      v.FromCache,
		AccountingNetWorthFormatted:    utils.FormatMoney(v.AccountingNetWorth, v.CurrencyCode),
	}
}
