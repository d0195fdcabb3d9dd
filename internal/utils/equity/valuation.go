package equity

import (
	"github.com/SscSPs/equity_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// pricePrecision is the number of decimal places kept on a per-share price.
const pricePrecision = 6

// ComputeValuation derives a company's accounting net worth and strategic value from its balance-sheet rows.
// It has no side effects; CompanyID, AuthorizedShares, PricePerShare and ComputedAt are left to the caller.
func ComputeValuation(assets []domain.Asset, liabilitiesTotal decimal.Decimal, ipItems []domain.IPItem, infraItems []domain.InfrastructureItem) domain.ValuationSnapshot {
	bookValue := decimal.Zero
	for _, a := range assets {
		if a.Status == domain.AssetDisposed {
			continue
		}
		net := a.AcquisitionCost.Sub(a.AccumulatedDepreciation)
		if net.IsPositive() {
			bookValue = bookValue.Add(net)
		}
	}

	ipValue := decimal.Zero
	for _, ip := range ipItems {
		switch ip.Status {
		case domain.IPActive, domain.IPScaling, domain.IPMaintenance:
			ipValue = ipValue.Add(ip.ValuationEstimate)
		}
	}

	infraValue := decimal.Zero
	for _, item := range infraItems {
		if item.Status == domain.InfrastructureActive {
			infraValue = infraValue.Add(item.ReplacementCost)
		}
	}

	netWorth := bookValue.Sub(liabilitiesTotal)

	return domain.ValuationSnapshot{
		TotalAssetBookValue:      bookValue,
		TotalLiabilities:         liabilitiesTotal,
		TotalIPValuation:         ipValue,
		TotalInfrastructureValue: infraValue,
		AccountingNetWorth:       netWorth,
		StrategicCompanyValue:    netWorth.Add(ipValue).Add(infraValue),
	}
}

// PricePerShare divides the strategic company value over the authorized share count.
// A non-positive share count yields zero rather than an error.
func PricePerShare(strategicValue decimal.Decimal, authorizedShares int64) decimal.Decimal {
	if authorizedShares <= 0 {
		return decimal.Zero
	}
	return strategicValue.DivRound(decimal.NewFromInt(authorizedShares), pricePrecision)
}
