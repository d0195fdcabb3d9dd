package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalStatus tracks the two-party issuance lifecycle.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

func (a ApprovalStatus) IsValid() bool {
	switch a {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// ShareIssuance is a proposal to create new shares for a recipient, executed by a second party.
type ShareIssuance struct {
	IssuanceID              string          `json:"issuanceID"` // Primary Key (UUID)
	CompanyID               string          `json:"companyID"`
	SharesIssued            int64           `json:"sharesIssued"`
	IssuedAtPrice           decimal.Decimal `json:"issuedAtPrice"`
	RecipientID             string          `json:"recipientID"` // FK -> shareholders
	EquityType              EquityType      `json:"equityType"`
	Vesting                 VestingTerms    `json:"vesting"`
	ApprovalStatus          ApprovalStatus  `json:"approvalStatus"`
	PreviousIssuedShares    int64           `json:"previousIssuedShares"`
	OwnershipDilutionImpact decimal.Decimal `json:"ownershipDilutionImpact"` // percent
	ProposedBy              string          `json:"proposedBy"`
	ApprovedBy              *string         `json:"approvedBy,omitempty"`
	ApprovedAt              *time.Time      `json:"approvedAt,omitempty"`
	RejectionReason         string          `json:"rejectionReason,omitempty"`
	Notes                   string          `json:"notes,omitempty"`
	AuditFields
}

// IsPending reports whether the issuance can still be executed or rejected.
func (i ShareIssuance) IsPending() bool {
	return i.ApprovalStatus == ApprovalPending
}

// IssuanceFilter narrows ListIssuances. Nil fields are not filtered on.
type IssuanceFilter struct {
	Status      *ApprovalStatus
	RecipientID *string
	Limit       int
	NextToken   *string
}
