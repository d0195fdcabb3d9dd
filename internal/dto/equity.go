package dto

import (
	"time"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
	"github.com/SscSPs/equity_management_app/internal/utils"
	"github.com/shopspring/decimal"
)

// --- Share configuration ---

// SetupShareConfigurationRequest defines the data needed to create a company's share register.
type SetupShareConfigurationRequest struct {
	AuthorizedShares int64           `json:"authorizedShares" binding:"required"`
	IssuedShares     int64           `json:"issuedShares" binding:"required"`
	ParValue         decimal.Decimal `json:"parValue"`
	ClassType        string          `json:"classType"`    // Defaults to COMMON
	CurrencyCode     string          `json:"currencyCode"` // Defaults to the company currency
}

// UpdateShareConfigurationRequest defines the fields a founder may change.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateShareConfigurationRequest struct {
	AuthorizedShares *int64           `json:"authorizedShares"`
	IssuedShares     *int64           `json:"issuedShares"`
	ParValue         *decimal.Decimal `json:"parValue"`
	ClassType        *string          `json:"classType"`
	Status           *string          `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// ShareConfigurationResponse defines the data returned for a share configuration.
type ShareConfigurationResponse struct {
	CompanyID        string              `json:"companyID"`
	AuthorizedShares int64               `json:"authorizedShares"`
	IssuedShares     int64               `json:"issuedShares"`
	UnissuedShares   int64               `json:"unissuedShares"`
	ParValue         decimal.Decimal     `json:"parValue"`
	ClassType        string              `json:"classType"`
	CurrencyCode     string              `json:"currencyCode"`
	Status           domain.RecordStatus `json:"status"`
	LastUpdatedAt    time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy    string              `json:"lastUpdatedBy"`
}

// ToShareConfigurationResponse converts a domain.ShareConfiguration to DTO.
func ToShareConfigurationResponse(c *domain.ShareConfiguration) ShareConfigurationResponse {
	return ShareConfigurationResponse{
		CompanyID:        c.CompanyID,
		AuthorizedShares: c.AuthorizedShares,
		IssuedShares:     c.IssuedShares,
		UnissuedShares:   c.UnissuedShares(),
		ParValue:         c.ParValue,
		ClassType:        c.ClassType,
		CurrencyCode:     c.CurrencyCode,
		Status:           c.Status,
		LastUpdatedAt:    c.LastUpdatedAt,
		LastUpdatedBy:    c.LastUpdatedBy,
	}
}

// --- Vesting ---

// VestingTermsRequest carries optional vesting terms on allocations and issuances.
type VestingTermsRequest struct {
	VestingStartDate *time.Time       `json:"vestingStartDate"`
	VestingEndDate   *time.Time       `json:"vestingEndDate"`
	VestingSchedule  string           `json:"vestingSchedule" binding:"omitempty,oneof=LINEAR MONTHLY"`
	CliffPercentage  *decimal.Decimal `json:"cliffPercentage"`
}

// ToDomain converts the request terms. A missing cliff means 0%.
func (v VestingTermsRequest) ToDomain() domain.VestingTerms {
	terms := domain.VestingTerms{
		StartDate: v.VestingStartDate,
		EndDate:   v.VestingEndDate,
		Schedule:  domain.VestingSchedule(v.VestingSchedule),
	}
	if v.CliffPercentage != nil {
		terms.CliffPercentage = *v.CliffPercentage
	}
	return terms
}

// VestingStatusResponse is the vested/unvested split of a holding.
type VestingStatusResponse struct {
	ShareholderID  string    `json:"shareholderID"`
	SharesOwned    int64     `json:"sharesOwned"`
	VestedShares   int64     `json:"vestedShares"`
	UnvestedShares int64     `json:"unvestedShares"`
	AsOf           time.Time `json:"asOf"`
}

// ToVestingStatusResponse converts a domain.VestingStatus to DTO.
func ToVestingStatusResponse(v *domain.VestingStatus) VestingStatusResponse {
	return VestingStatusResponse{
		ShareholderID:  v.ShareholderID,
		SharesOwned:    v.SharesOwned,
		VestedShares:   v.VestedShares,
		UnvestedShares: v.UnvestedShares,
		AsOf:           v.AsOf,
	}
}

// GetVestingParams defines query parameters for the vesting endpoint.
type GetVestingParams struct {
	AsOf *time.Time `form:"asOf" time_format:"2006-01-02T15:04:05Z07:00"`
}

// --- Holdings ---

// AllocateSharesRequest defines the data needed to allocate issued shares to a shareholder.
type AllocateSharesRequest struct {
	ShareholderID    string           `json:"shareholderID" binding:"required"`
	Shares           int64            `json:"shares"`
	ShareClass       string           `json:"shareClass"`
	EquityType       string           `json:"equityType" binding:"required,equity_type"`
	AcquisitionPrice *decimal.Decimal `json:"acquisitionPrice"`
	VestingTermsRequest
}

// ShareholdingResponse defines the data returned for a holding.
type ShareholdingResponse struct {
	ShareholdingID      string                 `json:"shareholdingID"`
	ShareholderID       string                 `json:"shareholderID"`
	SharesOwned         int64                  `json:"sharesOwned"`
	VestedShares        int64                  `json:"vestedShares"`
	ShareClass          string                 `json:"shareClass"`
	EquityType          domain.EquityType      `json:"equityType"`
	VestingStartDate    *time.Time             `json:"vestingStartDate,omitempty"`
	VestingEndDate      *time.Time             `json:"vestingEndDate,omitempty"`
	VestingSchedule     domain.VestingSchedule `json:"vestingSchedule,omitempty"`
	CliffPercentage     decimal.Decimal        `json:"cliffPercentage"`
	AcquisitionDate     time.Time              `json:"acquisitionDate"`
	AcquisitionPrice    decimal.Decimal        `json:"acquisitionPrice"`
	Status              domain.RecordStatus    `json:"status"`
	OwnershipPercentage decimal.Decimal        `json:"ownershipPercentage"`
	ShareValue          decimal.Decimal        `json:"shareValue"`
	ShareValueFormatted string                 `json:"shareValueFormatted"`
	LastUpdatedAt       time.Time              `json:"lastUpdatedAt"`
}

// ToShareholdingResponse converts a domain.Shareholding to DTO, formatting money in currencyCode.
func ToShareholdingResponse(h *domain.Shareholding, currencyCode string) ShareholdingResponse {
	return ShareholdingResponse{
		ShareholdingID:      h.ShareholdingID,
		ShareholderID:       h.ShareholderID,
		SharesOwned:         h.SharesOwned,
		VestedShares:        h.VestedShares,
		ShareClass:          h.ShareClass,
		EquityType:          h.EquityType,
		VestingStartDate:    h.Vesting.StartDate,
		VestingEndDate:      h.Vesting.EndDate,
		VestingSchedule:     h.Vesting.Schedule,
		CliffPercentage:     h.Vesting.CliffPercentage,
		AcquisitionDate:     h.AcquisitionDate,
		AcquisitionPrice:    h.AcquisitionPrice,
		Status:              h.Status,
		OwnershipPercentage: h.OwnershipPercentage,
		ShareValue:          h.ShareValue,
		ShareValueFormatted: utils.FormatMoney(h.ShareValue, currencyCode),
		LastUpdatedAt:       h.LastUpdatedAt,
	}
}

// CapTableResponse lists every active holding with the register totals.
type CapTableResponse struct {
	CompanyID        string                 `json:"companyID"`
	AuthorizedShares int64                  `json:"authorizedShares"`
	IssuedShares     int64                  `json:"issuedShares"`
	AllocatedShares  int64                  `json:"allocatedShares"`
	PricePerShare    decimal.Decimal        `json:"pricePerShare"`
	CurrencyCode     string                 `json:"currencyCode"`
	Holdings         []ShareholdingResponse `json:"holdings"`
	AsOf             time.Time              `json:"asOf"`
}

// ToCapTableResponse converts a domain.CapTable to DTO.
func ToCapTableResponse(t *domain.CapTable) CapTableResponse {
	holdings := make([]ShareholdingResponse, len(t.Holdings))
	for i := range t.Holdings {
		holdings[i] = ToShareholdingResponse(&t.Holdings[i], t.CurrencyCode)
	}
	return CapTableResponse{
		CompanyID:        t.CompanyID,
		AuthorizedShares: t.AuthorizedShares,
		IssuedShares:     t.IssuedShares,
		AllocatedShares:  t.AllocatedShares,
		PricePerShare:    t.PricePerShare,
		CurrencyCode:     t.CurrencyCode,
		Holdings:         holdings,
		AsOf:             t.AsOf,
	}
}

// --- Issuances ---

// ProposeIssuanceRequest defines the data needed to propose new shares for a recipient.
type ProposeIssuanceRequest struct {
	Shares        int64            `json:"shares"`
	IssuedAtPrice *decimal.Decimal `json:"issuedAtPrice"`
	RecipientID   string           `json:"recipientID" binding:"required"`
	EquityType    string           `json:"equityType" binding:"required,equity_type"`
	Notes         string           `json:"notes"`
	VestingTermsRequest
}

// RejectIssuanceRequest defines the data needed to reject a pending issuance.
type RejectIssuanceRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListIssuancesParams defines query parameters for listing issuances.
type ListIssuancesParams struct {
	Status      string  `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	RecipientID string  `form:"recipientID"`
	Limit       int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken   *string `form:"nextToken"`
}

// ToFilter converts the query parameters into a typed filter.
func (p ListIssuancesParams) ToFilter() domain.IssuanceFilter {
	f := domain.IssuanceFilter{Limit: p.Limit, NextToken: p.NextToken}
	if p.Status != "" {
		status := domain.ApprovalStatus(p.Status)
		f.Status = &status
	}
	if p.RecipientID != "" {
		recipient := p.RecipientID
		f.RecipientID = &recipient
	}
	return f
}

// IssuanceResponse defines the data returned for an issuance.
type IssuanceResponse struct {
	IssuanceID              string                `json:"issuanceID"`
	SharesIssued            int64                 `json:"sharesIssued"`
	IssuedAtPrice           decimal.Decimal       `json:"issuedAtPrice"`
	RecipientID             string                `json:"recipientID"`
	EquityType              domain.EquityType     `json:"equityType"`
	ApprovalStatus          domain.ApprovalStatus `json:"approvalStatus"`
	PreviousIssuedShares    int64                 `json:"previousIssuedShares"`
	OwnershipDilutionImpact decimal.Decimal       `json:"ownershipDilutionImpact"`
	ProposedBy              string                `json:"proposedBy"`
	ApprovedBy              *string               `json:"approvedBy,omitempty"`
	ApprovedAt              *time.Time            `json:"approvedAt,omitempty"`
	RejectionReason         string                `json:"rejectionReason,omitempty"`
	Notes                   string                `json:"notes,omitempty"`
	CreatedAt               time.Time             `json:"createdAt"`
}

// ToIssuanceResponse converts a domain.ShareIssuance to DTO.
func ToIssuanceResponse(i *domain.ShareIssuance) IssuanceResponse {
	return IssuanceResponse{
		IssuanceID:              i.IssuanceID,
		SharesIssued:            i.SharesIssued,
		IssuedAtPrice:           i.IssuedAtPrice,
		RecipientID:             i.RecipientID,
		EquityType:              i.EquityType,
		ApprovalStatus:          i.ApprovalStatus,
		PreviousIssuedShares:    i.PreviousIssuedShares,
		OwnershipDilutionImpact: i.OwnershipDilutionImpact,
		ProposedBy:              i.ProposedBy,
		ApprovedBy:              i.ApprovedBy,
		ApprovedAt:              i.ApprovedAt,
		RejectionReason:         i.RejectionReason,
		Notes:                   i.Notes,
		CreatedAt:               i.CreatedAt,
	}
}

// ListIssuancesResponse wraps a page of issuances.
type ListIssuancesResponse struct {
	Issuances []IssuanceResponse `json:"issuances"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToListIssuancesResponse converts a page of domain.ShareIssuance to DTO.
func ToListIssuancesResponse(is []domain.ShareIssuance, nextToken *string) ListIssuancesResponse {
	list := make([]IssuanceResponse, len(is))
	for i := range is {
		list[i] = ToIssuanceResponse(&is[i])
	}
	return ListIssuancesResponse{Issuances: list, NextToken: nextToken}
}

// --- Transfers ---

// TransferSharesRequest defines the data needed to move shares between two holders.
type TransferSharesRequest struct {
	FromShareholderID string           `json:"fromShareholderID" binding:"required"`
	ToShareholderID   string           `json:"toShareholderID" binding:"required"`
	Shares            int64            `json:"shares"`
	PricePerShare     *decimal.Decimal `json:"pricePerShare"`
	TransferType      string           `json:"transferType" binding:"required,oneof=SALE GIFT INHERITANCE OTHER"`
	TransferDate      *time.Time       `json:"transferDate"` // Defaults to now
	Notes             string           `json:"notes"`
}

// ListTransfersParams defines query parameters for listing transfers.
type ListTransfersParams struct {
	ShareholderID string  `form:"shareholderID"`
	TransferType  string  `form:"transferType" binding:"omitempty,oneof=SALE GIFT INHERITANCE OTHER"`
	Limit         int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken     *string `form:"nextToken"`
}

// ToFilter converts the query parameters into a typed filter.
func (p ListTransfersParams) ToFilter() domain.TransferFilter {
	f := domain.TransferFilter{Limit: p.Limit, NextToken: p.NextToken}
	if p.ShareholderID != "" {
		holder := p.ShareholderID
		f.ShareholderID = &holder
	}
	if p.TransferType != "" {
		tt := domain.TransferType(p.TransferType)
		f.TransferType = &tt
	}
	return f
}

// TransferResponse defines the data returned for a transfer.
type TransferResponse struct {
	TransferID            string              `json:"transferID"`
	FromShareholderID     string              `json:"fromShareholderID"`
	ToShareholderID       string              `json:"toShareholderID"`
	SharesTransferred     int64               `json:"sharesTransferred"`
	TransferPricePerShare *decimal.Decimal    `json:"transferPricePerShare,omitempty"`
	TransferType          domain.TransferType `json:"transferType"`
	TransferDate          time.Time           `json:"transferDate"`
	Notes                 string              `json:"notes,omitempty"`
	CreatedBy             string              `json:"createdBy"`
}

// ToTransferResponse converts a domain.ShareTransfer to DTO.
func ToTransferResponse(t *domain.ShareTransfer) TransferResponse {
	return TransferResponse{
		TransferID:            t.TransferID,
		FromShareholderID:     t.FromShareholderID,
		ToShareholderID:       t.ToShareholderID,
		SharesTransferred:     t.SharesTransferred,
		TransferPricePerShare: t.TransferPricePerShare,
		TransferType:          t.TransferType,
		TransferDate:          t.TransferDate,
		Notes:                 t.Notes,
		CreatedBy:             t.CreatedBy,
	}
}

// TransferResultResponse is the transfer record with both resulting balances.
type TransferResultResponse struct {
	Transfer    TransferResponse `json:"transfer"`
	FromBalance int64            `json:"fromBalance"`
	ToBalance   int64            `json:"toBalance"`
}

// ToTransferResultResponse converts a domain.TransferResult to DTO.
func ToTransferResultResponse(r *domain.TransferResult) TransferResultResponse {
	return TransferResultResponse{
		Transfer:    ToTransferResponse(&r.Transfer),
		FromBalance: r.FromBalance,
		ToBalance:   r.ToBalance,
	}
}

// ListTransfersResponse wraps a page of transfers.
type ListTransfersResponse struct {
	Transfers []TransferResponse `json:"transfers"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToListTransfersResponse converts a page of domain.ShareTransfer to DTO.
func ToListTransfersResponse(ts []domain.ShareTransfer, nextToken *string) ListTransfersResponse {
	list := make([]TransferResponse, len(ts))
	for i := range ts {
		list[i] = ToTransferResponse(&ts[i])
	}
	return ListTransfersResponse{Transfers: list, NextToken: nextToken}
}

// --- Buybacks ---

// BuybackSharesRequest defines the data needed to repurchase and retire a holder's shares.
type BuybackSharesRequest struct {
	ShareholderID string          `json:"shareholderID" binding:"required"`
	Shares        int64           `json:"shares"`
	PricePerShare decimal.Decimal `json:"pricePerShare"`
}

// BuybackResponse defines the data returned for a buyback.
type BuybackResponse struct {
	BuybackID            string               `json:"buybackID"`
	ShareholderID        string               `json:"shareholderID"`
	SharesRepurchased    int64                `json:"sharesRepurchased"`
	PricePerShare        decimal.Decimal      `json:"pricePerShare"`
	TotalAmount          decimal.Decimal      `json:"totalAmount"`
	TotalAmountFormatted string               `json:"totalAmountFormatted"`
	IssuedSharesBefore   int64                `json:"issuedSharesBefore"`
	IssuedSharesAfter    int64                `json:"issuedSharesAfter"`
	Holding              ShareholdingResponse `json:"holding"`
}

// ToBuybackResponse converts a buyback and the resulting holding to DTO.
func ToBuybackResponse(b *domain.ShareBuyback, h *domain.Shareholding, currencyCode string) BuybackResponse {
	return BuybackResponse{
		BuybackID:            b.BuybackID,
		ShareholderID:        b.ShareholderID,
		SharesRepurchased:    b.SharesRepurchased,
		PricePerShare:        b.PricePerShare,
		TotalAmount:          b.TotalAmount,
		TotalAmountFormatted: utils.FormatMoney(b.TotalAmount, currencyCode),
		IssuedSharesBefore:   b.IssuedSharesBefore,
		IssuedSharesAfter:    b.IssuedSharesAfter,
		Holding:              ToShareholdingResponse(h, currencyCode),
	}
}
