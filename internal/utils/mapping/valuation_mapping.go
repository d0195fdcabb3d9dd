package mapping

import (
	"github.com/SscSPs/equity_management_app/internal/core/domain"
	"github.com/SscSPs/equity_management_app/internal/models"
)

func ToDomainAsset(m models.Asset) domain.Asset {
	return domain.Asset{
		AssetID:                 m.AssetID,
		CompanyID:               m.CompanyID,
		Name:                    m.Name,
		AcquisitionCost:         m.AcquisitionCost,
		AccumulatedDepreciation: m.AccumulatedDepreciation,
		Status:                  domain.AssetStatus(m.Status),
	}
}

func ToDomainIPItem(m models.IPItem) domain.IPItem {
	return domain.IPItem{
		IPID:              m.IPID,
		CompanyID:         m.CompanyID,
		Name:              m.Name,
		ValuationEstimate: m.ValuationEstimate,
		Status:            domain.IPStatus(m.Status),
	}
}

func ToDomainInfrastructureItem(m models.InfrastructureItem) domain.InfrastructureItem {
	return domain.InfrastructureItem{
		InfrastructureID: m.InfrastructureID,
		CompanyID:        m.CompanyID,
		Name:             m.Name,
		ReplacementCost:  m.ReplacementCost,
		Status:           domain.InfrastructureStatus(m.Status),
	}
}
