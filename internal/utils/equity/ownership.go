package equity

import (
	"github.com/SscSPs/equity_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	percentPrecision  = 4
	dilutionPrecision = 4
)

var hundred = decimal.NewFromInt(100)

// OwnershipPercentage returns owned / authorized * 100, or zero when authorized is not positive.
func OwnershipPercentage(sharesOwned, authorizedShares int64) decimal.Decimal {
	if authorizedShares <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(sharesOwned).Mul(hundred).DivRound(decimal.NewFromInt(authorizedShares), percentPrecision)
}

// ShareValue returns owned * pricePerShare.
func ShareValue(sharesOwned int64, pricePerShare decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(sharesOwned).Mul(pricePerShare)
}

// DilutionImpact is the percentage of the post-issuance share count held by the new shares:
// n / (issuedBefore + n) * 100.
func DilutionImpact(issuedBefore, n int64) decimal.Decimal {
	total := issuedBefore + n
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(n).Mul(hundred).DivRound(decimal.NewFromInt(total), dilutionPrecision)
}

// EnrichHolding fills the reporting-only fields of a holding.
func EnrichHolding(h *domain.Shareholding, authorizedShares int64, pricePerShare decimal.Decimal) {
	h.OwnershipPercentage = OwnershipPercentage(h.SharesOwned, authorizedShares)
	h.ShareValue = ShareValue(h.SharesOwned, pricePerShare)
}

// SumActive totals SharesOwned over active holdings.
func SumActive(holdings []domain.Shareholding) int64 {
	var total int64
	for _, h := range holdings {
		if h.IsActive() {
			total += h.SharesOwned
		}
	}
	return total
}
