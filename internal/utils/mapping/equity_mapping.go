package mapping

import (
	"github.com/SscSPs/equity_management_app/internal/core/domain"
	"github.com/SscSPs/equity_management_app/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelShareConfiguration converts a domain ShareConfiguration to a model ShareConfiguration
func ToModelShareConfiguration(d domain.ShareConfiguration) models.ShareConfiguration {
	return models.ShareConfiguration{
		CompanyID:        d.CompanyID,
		AuthorizedShares: d.AuthorizedShares,
		IssuedShares:     d.IssuedShares,
		ParValue:         d.ParValue,
		ClassType:        d.ClassType,
		CurrencyCode:     d.CurrencyCode,
		Status:           string(d.Status),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainShareConfiguration converts a model ShareConfiguration to a domain ShareConfiguration
func ToDomainShareConfiguration(m models.ShareConfiguration) domain.ShareConfiguration {
	return domain.ShareConfiguration{
		CompanyID:        m.CompanyID,
		AuthorizedShares: m.AuthorizedShares,
		IssuedShares:     m.IssuedShares,
		ParValue:         m.ParValue,
		ClassType:        m.ClassType,
		CurrencyCode:     m.CurrencyCode,
		Status:           domain.RecordStatus(m.Status),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// vestingScheduleOrDefault stores the empty schedule as LINEAR, which is what it means.
func vestingScheduleOrDefault(s domain.VestingSchedule) string {
	if s == "" {
		return string(domain.VestingLinear)
	}
	return string(s)
}

// ToModelShareholding converts a domain Shareholding to a model Shareholding.
// Derived reporting fields are dropped.
func ToModelShareholding(d domain.Shareholding) models.Shareholding {
	return models.Shareholding{
		ShareholdingID:   d.ShareholdingID,
		CompanyID:        d.CompanyID,
		ShareholderID:    d.ShareholderID,
		SharesOwned:      d.SharesOwned,
		ShareClass:       d.ShareClass,
		EquityType:       string(d.EquityType),
		VestingStartDate: d.Vesting.StartDate,
		VestingEndDate:   d.Vesting.EndDate,
		VestingSchedule:  vestingScheduleOrDefault(d.Vesting.Schedule),
		CliffPercentage:  d.Vesting.CliffPercentage,
		VestedBaseline:   d.VestedBaseline,
		VestedShares:     d.VestedShares,
		AcquisitionDate:  d.AcquisitionDate,
		AcquisitionPrice: d.AcquisitionPrice,
		Status:           string(d.Status),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainShareholding converts a model Shareholding to a domain Shareholding
func ToDomainShareholding(m models.Shareholding) domain.Shareholding {
	return domain.Shareholding{
		ShareholdingID: m.ShareholdingID,
		CompanyID:      m.CompanyID,
		ShareholderID:  m.ShareholderID,
		SharesOwned:    m.SharesOwned,
		ShareClass:     m.ShareClass,
		EquityType:     domain.EquityType(m.EquityType),
		Vesting: domain.VestingTerms{
			StartDate:       m.VestingStartDate,
			EndDate:         m.VestingEndDate,
			Schedule:        domain.VestingSchedule(m.VestingSchedule),
			CliffPercentage: m.CliffPercentage,
		},
		VestedBaseline:   m.VestedBaseline,
		VestedShares:     m.VestedShares,
		AcquisitionDate:  m.AcquisitionDate,
		AcquisitionPrice: m.AcquisitionPrice,
		Status:           domain.RecordStatus(m.Status),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelShareIssuance converts a domain ShareIssuance to a model ShareIssuance
func ToModelShareIssuance(d domain.ShareIssuance) models.ShareIssuance {
	return models.ShareIssuance{
		IssuanceID:              d.IssuanceID,
		CompanyID:               d.CompanyID,
		SharesIssued:            d.SharesIssued,
		IssuedAtPrice:           d.IssuedAtPrice,
		RecipientID:             d.RecipientID,
		EquityType:              string(d.EquityType),
		VestingStartDate:        d.Vesting.StartDate,
		VestingEndDate:          d.Vesting.EndDate,
		VestingSchedule:         vestingScheduleOrDefault(d.Vesting.Schedule),
		CliffPercentage:         d.Vesting.CliffPercentage,
		ApprovalStatus:          string(d.ApprovalStatus),
		PreviousIssuedShares:    d.PreviousIssuedShares,
		OwnershipDilutionImpact: d.OwnershipDilutionImpact,
		ProposedBy:              d.ProposedBy,
		ApprovedBy:              d.ApprovedBy,
		ApprovedAt:              d.ApprovedAt,
		RejectionReason:         d.RejectionReason,
		Notes:                   d.Notes,
		AuditFields:             ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainShareIssuance converts a model ShareIssuance to a domain ShareIssuance
func ToDomainShareIssuance(m models.ShareIssuance) domain.ShareIssuance {
	return domain.ShareIssuance{
		IssuanceID:    m.IssuanceID,
		CompanyID:     m.CompanyID,
		SharesIssued:  m.SharesIssued,
		IssuedAtPrice: m.IssuedAtPrice,
		RecipientID:   m.RecipientID,
		EquityType:    domain.EquityType(m.EquityType),
		Vesting: domain.VestingTerms{
			StartDate:       m.VestingStartDate,
			EndDate:         m.VestingEndDate,
			Schedule:        domain.VestingSchedule(m.VestingSchedule),
			CliffPercentage: m.CliffPercentage,
		},
		ApprovalStatus:          domain.ApprovalStatus(m.ApprovalStatus),
		PreviousIssuedShares:    m.PreviousIssuedShares,
		OwnershipDilutionImpact: m.OwnershipDilutionImpact,
		ProposedBy:              m.ProposedBy,
		ApprovedBy:              m.ApprovedBy,
		ApprovedAt:              m.ApprovedAt,
		RejectionReason:         m.RejectionReason,
		Notes:                   m.Notes,
		AuditFields:             ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelShareTransfer converts a domain ShareTransfer to a model ShareTransfer
func ToModelShareTransfer(d domain.ShareTransfer) models.ShareTransfer {
	m := models.ShareTransfer{
		TransferID:        d.TransferID,
		CompanyID:         d.CompanyID,
		FromShareholderID: d.FromShareholderID,
		ToShareholderID:   d.ToShareholderID,
		SharesTransferred: d.SharesTransferred,
		TransferType:      string(d.TransferType),
		TransferDate:      d.TransferDate,
		Notes:             d.Notes,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
	if d.TransferPricePerShare != nil {
		m.TransferPricePerShare = decimal.NewNullDecimal(*d.TransferPricePerShare)
	}
	return m
}

// ToDomainShareTransfer converts a model ShareTransfer to a domain ShareTransfer
func ToDomainShareTransfer(m models.ShareTransfer) domain.ShareTransfer {
	d := domain.ShareTransfer{
		TransferID:        m.TransferID,
		CompanyID:         m.CompanyID,
		FromShareholderID: m.FromShareholderID,
		ToShareholderID:   m.ToShareholderID,
		SharesTransferred: m.SharesTransferred,
		TransferType:      domain.TransferType(m.TransferType),
		TransferDate:      m.TransferDate,
		Notes:             m.Notes,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
	if m.TransferPricePerShare.Valid {
		price := m.TransferPricePerShare.Decimal
		d.TransferPricePerShare = &price
	}
	return d
}

// ToModelShareBuyback converts a domain ShareBuyback to a model ShareBuyback
func ToModelShareBuyback(d domain.ShareBuyback) models.ShareBuyback {
	return models.ShareBuyback{
		BuybackID:          d.BuybackID,
		CompanyID:          d.CompanyID,
		ShareholderID:      d.ShareholderID,
		SharesRepurchased:  d.SharesRepurchased,
		PricePerShare:      d.PricePerShare,
		TotalAmount:        d.TotalAmount,
		IssuedSharesBefore: d.IssuedSharesBefore,
		IssuedSharesAfter:  d.IssuedSharesAfter,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}
