package domain

import "github.com/shopspring/decimal"

// RecordStatus is the soft-delete flag shared by equity records.
type RecordStatus string

const (
	StatusActive   RecordStatus = "ACTIVE"
	StatusInactive RecordStatus = "INACTIVE"
)

// ShareConfiguration is the per-company authorized/issued share register.
// Invariant: AuthorizedShares >= IssuedShares > 0.
type ShareConfiguration struct {
	CompanyID        string          `json:"companyID"`        // Primary Key, one row per company
	AuthorizedShares int64           `json:"authorizedShares"` // > 0
	IssuedShares     int64           `json:"issuedShares"`     // > 0, <= AuthorizedShares
	ParValue         decimal.Decimal `json:"parValue"`         // > 0
	ClassType        string          `json:"classType"`        // e.g., "COMMON"
	CurrencyCode     string          `json:"currencyCode"`
	Status           RecordStatus    `json:"status"`
	AuditFields
}

// UnissuedShares is the headroom left for new issuances.
func (c ShareConfiguration) UnissuedShares() int64 {
	return c.AuthorizedShares - c.IssuedShares
}
