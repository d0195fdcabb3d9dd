package mapping

import (
	"github.com/SscSPs/equity_management_app/internal/core/domain"
	"github.com/SscSPs/equity_management_app/internal/models"
)

// ToModelCompany converts a domain Company to a model Company
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:           d.CompanyID,
		Name:                d.Name,
		Description:         d.Description,
		DefaultCurrencyCode: d.DefaultCurrencyCode,
		IsActive:            d.IsActive,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:           m.CompanyID,
		Name:                m.Name,
		Description:         m.Description,
		DefaultCurrencyCode: m.DefaultCurrencyCode,
		IsActive:            m.IsActive,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelCompanyMember(d domain.CompanyMember) models.CompanyMember {
	return models.CompanyMember{
		UserID:    d.UserID,
		CompanyID: d.CompanyID,
		Role:      string(d.Role),
		JoinedAt:  d.JoinedAt,
	}
}

func ToDomainCompanyMember(m models.CompanyMember) domain.CompanyMember {
	return domain.CompanyMember{
		UserID:    m.UserID,
		CompanyID: m.CompanyID,
		Role:      domain.Role(m.Role),
		JoinedAt:  m.JoinedAt,
	}
}

// ToModelShareholder converts a domain Shareholder to a model Shareholder
func ToModelShareholder(d domain.Shareholder) models.Shareholder {
	return models.Shareholder{
		ShareholderID: d.ShareholderID,
		CompanyID:     d.CompanyID,
		UserID:        d.UserID,
		Name:          d.Name,
		Email:         d.Email,
		HolderType:    string(d.HolderType),
		Status:        string(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainShareholder converts a model Shareholder to a domain Shareholder
func ToDomainShareholder(m models.Shareholder) domain.Shareholder {
	return domain.Shareholder{
		ShareholderID: m.ShareholderID,
		CompanyID:     m.CompanyID,
		UserID:        m.UserID,
		Name:          m.Name,
		Email:         m.Email,
		HolderType:    domain.HolderType(m.HolderType),
		Status:        domain.RecordStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
