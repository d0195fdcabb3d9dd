package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetStatus is the lifecycle state of a balance-sheet asset.
type AssetStatus string

const (
	AssetActive      AssetStatus = "ACTIVE"
	AssetMaintenance AssetStatus = "MAINTENANCE"
	AssetDisposed    AssetStatus = "DISPOSED"
)

// Asset is a tangible asset carried at book value.
type Asset struct {
	AssetID                 string          `json:"assetID"`
	CompanyID               string          `json:"companyID"`
	Name                    string          `json:"name"`
	AcquisitionCost         decimal.Decimal `json:"acquisitionCost"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulatedDepreciation"`
	Status                  AssetStatus     `json:"status"`
}

// IPStatus is the development stage of an intellectual property item.
type IPStatus string

const (
	IPConcept     IPStatus = "CONCEPT"
	IPDevelopment IPStatus = "DEVELOPMENT"
	IPActive      IPStatus = "ACTIVE"
	IPScaling     IPStatus = "SCALING"
	IPMaintenance IPStatus = "MAINTENANCE"
	IPRetired     IPStatus = "RETIRED"
)

// IPItem is an intellectual property item with an estimated valuation.
type IPItem struct {
	IPID              string          `json:"ipID"`
	CompanyID         string          `json:"companyID"`
	Name              string          `json:"name"`
	ValuationEstimate decimal.Decimal `json:"valuationEstimate"`
	Status            IPStatus        `json:"status"`
}

// InfrastructureStatus is the operating state of an infrastructure item.
type InfrastructureStatus string

const (
	InfrastructureActive  InfrastructureStatus = "ACTIVE"
	InfrastructureRetired InfrastructureStatus = "RETIRED"
)

// InfrastructureItem is infrastructure valued at replacement cost.
type InfrastructureItem struct {
	InfrastructureID string               `json:"infrastructureID"`
	CompanyID        string               `json:"companyID"`
	Name             string               `json:"name"`
	ReplacementCost  decimal.Decimal      `json:"replacementCost"`
	Status           InfrastructureStatus `json:"status"`
}

// ValuationSnapshot is the derived company value at ComputedAt. It is never persisted.
type ValuationSnapshot struct {
	CompanyID                string          `json:"companyID"`
	TotalAssetBookValue      decimal.Decimal `json:"totalAssetBookValue"`
	TotalLiabilities         decimal.Decimal `json:"totalLiabilities"`
	TotalIPValuation         decimal.Decimal `json:"totalIPValuation"`
	TotalInfrastructureValue decimal.Decimal `json:"totalInfrastructureValue"`
	AccountingNetWorth       decimal.Decimal `json:"accountingNetWorth"`
	StrategicCompanyValue    decimal.Decimal `json:"strategicCompanyValue"`
	AuthorizedShares         int64           `json:"authorizedShares"`
	PricePerShare            decimal.Decimal `json:"pricePerShare"`
	CurrencyCode             string          `json:"currencyCode"`
	ComputedAt               time.Time       `json:"computedAt"`
	FromCache                bool            `json:"fromCache"`
}
