package models

import "github.com/shopspring/decimal"

// Asset represents a row of the assets table.
type Asset struct {
	AssetID                 string          `db:"asset_id"`
	CompanyID               string          `db:"company_id"`
	Name                    string          `db:"name"`
	AcquisitionCost         decimal.Decimal `db:"acquisition_cost"`
	AccumulatedDepreciation decimal.Decimal `db:"accumulated_depreciation"`
	Status                  string          `db:"status"`
}

// IPItem represents a row of the intellectual_property table.
type IPItem struct {
	IPID              string          `db:"ip_id"`
	CompanyID         string          `db:"company_id"`
	Name              string          `db:"name"`
	ValuationEstimate decimal.Decimal `db:"valuation_estimate"`
	Status            string          `db:"status"`
}

// InfrastructureItem represents a row of the infrastructure table.
type InfrastructureItem struct {
	InfrastructureID string          `db:"infrastructure_id"`
	CompanyID        string          `db:"company_id"`
	Name             string          `db:"name"`
	ReplacementCost  decimal.Decimal `db:"replacement_cost"`
	Status           string          `db:"status"`
}
