package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EquityType distinguishes bought shares from granted (vesting) shares.
type EquityType string

const (
	EquityPurchased EquityType = "PURCHASED"
	EquityGranted   EquityType = "GRANTED"
)

// IsValid reports whether e is PURCHASED or GRANTED.
func (e EquityType) IsValid() bool {
	return e == EquityPurchased || e == EquityGranted
}

// VestingSchedule controls how vesting progresses between start and end.
type VestingSchedule string

const (
	VestingLinear  VestingSchedule = "LINEAR"  // continuous in time
	VestingMonthly VestingSchedule = "MONTHLY" // whole elapsed months only
)

// IsValid reports whether v is a known schedule. The empty value means LINEAR.
func (v VestingSchedule) IsValid() bool {
	return v == "" || v == VestingLinear || v == VestingMonthly
}

// VestingTerms describes a vesting grant. A zero value means "no vesting" (fully vested).
type VestingTerms struct {
	StartDate       *time.Time      `json:"vestingStartDate,omitempty"`
	EndDate         *time.Time      `json:"vestingEndDate,omitempty"`
	Schedule        VestingSchedule `json:"vestingSchedule,omitempty"`
	CliffPercentage decimal.Decimal `json:"cliffPercentage"` // 0-100, released at StartDate
}

// HasSchedule reports whether both vesting dates are set.
func (v VestingTerms) HasSchedule() bool {
	return v.StartDate != nil && v.EndDate != nil
}

// Shareholding is a shareholder's position in a company (one row per company and shareholder).
// Invariant: 0 <= VestedBaseline <= SharesOwned and 0 <= VestedShares <= SharesOwned.
type Shareholding struct {
	ShareholdingID   string          `json:"shareholdingID"` // Primary Key (UUID)
	CompanyID        string          `json:"companyID"`
	ShareholderID    string          `json:"shareholderID"` // FK -> shareholders
	SharesOwned      int64           `json:"sharesOwned"`
	ShareClass       string          `json:"shareClass"`
	EquityType       EquityType      `json:"equityType"`
	Vesting          VestingTerms    `json:"vesting"`
	VestedBaseline   int64           `json:"vestedBaseline"` // Vested outside Vesting; the schedule covers the rest
	VestedShares     int64           `json:"vestedShares"`   // As of the last read or write
	AcquisitionDate  time.Time       `json:"acquisitionDate"`
	AcquisitionPrice decimal.Decimal `json:"acquisitionPrice"`
	Status           RecordStatus    `json:"status"`

	// Derived for reporting, never persisted.
	OwnershipPercentage decimal.Decimal `json:"ownershipPercentage"`
	ShareValue          decimal.Decimal `json:"shareValue"`
	AuditFields
}

// IsActive reports whether the holding counts toward the allocated total.
func (h Shareholding) IsActive() bool {
	return h.Status == StatusActive
}

// CapTable is the company-wide view of every active holding.
type CapTable struct {
	CompanyID        string          `json:"companyID"`
	AuthorizedShares int64           `json:"authorizedShares"`
	IssuedShares     int64           `json:"issuedShares"`
	AllocatedShares  int64           `json:"allocatedShares"`
	PricePerShare    decimal.Decimal `json:"pricePerShare"`
	CurrencyCode     string          `json:"currencyCode"`
	Holdings         []Shareholding  `json:"holdings"`
	AsOf             time.Time       `json:"asOf"`
}

// VestingStatus is the vested/unvested split of a holding at a point in time.
type VestingStatus struct {
	ShareholderID  string    `json:"shareholderID"`
	SharesOwned    int64     `json:"sharesOwned"`
	VestedShares   int64     `json:"vestedShares"`
	UnvestedShares int64     `json:"unvestedShares"`
	AsOf           time.Time `json:"asOf"`
}
