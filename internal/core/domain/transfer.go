package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferType records why shares changed hands.
type TransferType string

const (
	TransferSale        TransferType = "SALE"
	TransferGift        TransferType = "GIFT"
	TransferInheritance TransferType = "INHERITANCE"
	TransferOther       TransferType = "OTHER"
)

// IsValid reports whether t is a known transfer type.
func (t TransferType) IsValid() bool {
	switch t {
	case TransferSale, TransferGift, TransferInheritance, TransferOther:
		return true
	}
	return false
}

// ShareTransfer moves existing shares between two holders. It never changes IssuedShares.
type ShareTransfer struct {
	TransferID            string           `json:"transferID"` // Primary Key (UUID)
	CompanyID             string           `json:"companyID"`
	FromShareholderID     string           `json:"fromShareholderID"`
	ToShareholderID       string           `json:"toShareholderID"`
	SharesTransferred     int64            `json:"sharesTransferred"`
	TransferPricePerShare *decimal.Decimal `json:"transferPricePerShare,omitempty"`
	TransferType          TransferType     `json:"transferType"`
	TransferDate          time.Time        `json:"transferDate"`
	Notes                 string           `json:"notes,omitempty"`
	AuditFields
}

// TransferResult is the outcome of a transfer: the record and both resulting balances.
type TransferResult struct {
	Transfer    ShareTransfer `json:"transfer"`
	FromBalance int64         `json:"fromBalance"`
	ToBalance   int64         `json:"toBalance"`
}

// TransferFilter narrows ListTransfers. Nil fields are not filtered on.
type TransferFilter struct {
	ShareholderID *string // matches either side of the transfer
	TransferType  *TransferType
	Limit         int
	NextToken     *string
}

// ShareBuyback records the company repurchasing and retiring a holder's shares.
type ShareBuyback struct {
	BuybackID          string          `json:"buybackID"` // Primary Key (UUID)
	CompanyID          string          `json:"companyID"`
	ShareholderID      string          `json:"shareholderID"`
	SharesRepurchased  int64           `json:"sharesRepurchased"`
	PricePerShare      decimal.Decimal `json:"pricePerShare"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	IssuedSharesBefore int64           `json:"issuedSharesBefore"`
	IssuedSharesAfter  int64           `json:"issuedSharesAfter"`
	AuditFields
}
