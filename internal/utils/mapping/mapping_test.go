package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestShareholdingMapping_DefaultsScheduleToLinear(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(4, 0, 0)
	d := domain.Shareholding{
		ShareholdingID: "h1",
		ShareholderID:  "s1",
		SharesOwned:    1000,
		EquityType:     domain.EquityGranted,
		Vesting:        domain.VestingTerms{StartDate: &start, EndDate: &end, CliffPercentage: decimal.NewFromInt(25)},
		Status:         domain.StatusActive,
		ShareValue:     decimal.NewFromInt(99),
	}

	m := ToModelShareholding(d)
	assert.Equal(t, "LINEAR", m.VestingSchedule)
	assert.Equal(t, "GRANTED", m.EquityType)

	back := ToDomainShareholding(m)
	assert.Equal(t, domain.VestingLinear, back.Vesting.Schedule)
	assert.True(t, back.ShareValue.IsZero(), "derived fields are not persisted")
	assert.True(t, back.Vesting.CliffPercentage.Equal(decimal.NewFromInt(25)))
}

func TestShareTransferMapping_OptionalPrice(t *testing.T) {
	withoutPrice := ToModelShareTransfer(domain.ShareTransfer{TransferID: "t1"})
	assert.False(t, withoutPrice.TransferPricePerShare.Valid)
	assert.Nil(t, ToDomainShareTransfer(withoutPrice).TransferPricePerShare)

	price := decimal.RequireFromString("1.25")
	withPrice := ToModelShareTransfer(domain.ShareTransfer{TransferID: "t2", TransferPricePerShare: &price})
	assert.True(t, withPrice.TransferPricePerShare.Valid)
	got := ToDomainShareTransfer(withPrice).TransferPricePerShare
	if assert.NotNil(t, got) {
		assert.True(t, got.Equal(price))
	}
}
