package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShareConfiguration represents a row of the share_configurations table.
type ShareConfiguration struct {
	CompanyID        string          `db:"company_id"`
	AuthorizedShares int64           `db:"authorized_shares"`
	IssuedShares     int64           `db:"issued_shares"`
	ParValue         decimal.Decimal `db:"par_value"`
	ClassType        string          `db:"class_type"`
	CurrencyCode     string          `db:"currency_code"`
	Status           string          `db:"status"`
	AuditFields
}

// Shareholding represents a row of the shareholdings table.
type Shareholding struct {
	ShareholdingID   string          `db:"shareholding_id"`
	CompanyID        string          `db:"company_id"`
	ShareholderID    string          `db:"shareholder_id"`
	SharesOwned      int64           `db:"shares_owned"`
	ShareClass       string          `db:"share_class"`
	EquityType       string          `db:"equity_type"`
	VestingStartDate *time.Time      `db:"vesting_start_date"` // Nullable
	VestingEndDate   *time.Time      `db:"vesting_end_date"`   // Nullable
	VestingSchedule  string          `db:"vesting_schedule"`
	CliffPercentage  decimal.Decimal `db:"cliff_percentage"`
	VestedBaseline   int64           `db:"vested_baseline"`
	VestedShares     int64           `db:"vested_shares"`
	AcquisitionDate  time.Time       `db:"acquisition_date"`
	AcquisitionPrice decimal.Decimal `db:"acquisition_price"`
	Status           string          `db:"status"`
	AuditFields
}

// ShareIssuance represents a row of the share_issuances table.
type ShareIssuance struct {
	IssuanceID              string          `db:"issuance_id"`
	CompanyID               string          `db:"company_id"`
	SharesIssued            int64           `db:"shares_issued"`
	IssuedAtPrice           decimal.Decimal `db:"issued_at_price"`
	RecipientID             string          `db:"recipient_id"`
	EquityType              string          `db:"equity_type"`
	VestingStartDate        *time.Time      `db:"vesting_start_date"`
	VestingEndDate          *time.Time      `db:"vesting_end_date"`
	VestingSchedule         string          `db:"vesting_schedule"`
	CliffPercentage         decimal.Decimal `db:"cliff_percentage"`
	ApprovalStatus          string          `db:"approval_status"`
	PreviousIssuedShares    int64           `db:"previous_issued_shares"`
	OwnershipDilutionImpact decimal.Decimal `db:"ownership_dilution_impact"`
	ProposedBy              string          `db:"proposed_by"`
	ApprovedBy              *string         `db:"approved_by"`
	ApprovedAt              *time.Time      `db:"approved_at"`
	RejectionReason         string          `db:"rejection_reason"`
	Notes                   string          `db:"notes"`
	AuditFields
}

// ShareTransfer represents a row of the share_transfers table.
type ShareTransfer struct {
	TransferID            string              `db:"transfer_id"`
	CompanyID             string              `db:"company_id"`
	FromShareholderID     string              `db:"from_shareholder_id"`
	ToShareholderID       string              `db:"to_shareholder_id"`
	SharesTransferred     int64               `db:"shares_transferred"`
	TransferPricePerShare decimal.NullDecimal `db:"transfer_price_per_share"`
	TransferType          string              `db:"transfer_type"`
	TransferDate          time.Time           `db:"transfer_date"`
	Notes                 string              `db:"notes"`
	AuditFields
}

// ShareBuyback represents a row of the share_buybacks table.
type ShareBuyback struct {
	BuybackID          string          `db:"buyback_id"`
	CompanyID          string          `db:"company_id"`
	ShareholderID      string          `db:"shareholder_id"`
	SharesRepurchased  int64           `db:"shares_repurchased"`
	PricePerShare      decimal.Decimal `db:"price_per_share"`
	TotalAmount        decimal.Decimal `db:"total_amount"`
	IssuedSharesBefore int64           `db:"issued_shares_before"`
	IssuedSharesAfter  int64           `db:"issued_shares_after"`
	AuditFields
}
