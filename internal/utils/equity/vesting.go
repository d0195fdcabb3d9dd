package equity

import (
	"time"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeVested returns how many of sharesOwned have vested at asOf.
//
// Nothing is vested before start and everything is vested at or after end. In between, the
// cliff portion (floor(owned * cliffPercent / 100)) is released at start and the remainder
// vests by elapsed time (LINEAR) or by whole elapsed months (MONTHLY). The result is floored
// and clamped to [0, sharesOwned].
func ComputeVested(sharesOwned int64, start, end time.Time, cliffPercent decimal.Decimal, schedule domain.VestingSchedule, asOf time.Time) int64 {
	if sharesOwned <= 0 {
		return 0
	}
	if asOf.Before(start) {
		return 0
	}
	if !asOf.Before(end) {
		return sharesOwned
	}

	cliff := cliffShares(sharesOwned, cliffPercent)
	remaining := decimal.NewFromInt(sharesOwned - cliff)

	var elapsed, total int64
	switch schedule {
	case domain.VestingMonthly:
		if months := wholeMonthsBetween(start, end); months > 0 {
			elapsed, total = int64(wholeMonthsBetween(start, asOf)), int64(months)
			break
		}
		fallthrough
	default:
		elapsed, total = int64(asOf.Sub(start)), int64(end.Sub(start))
	}

	progressed, _ := remaining.Mul(decimal.NewFromInt(elapsed)).QuoRem(decimal.NewFromInt(total), 0)
	vested := cliff + progressed.IntPart()
	return clamp(vested, 0, sharesOwned)
}

// VestedForHolding returns the holding's vested baseline plus what ComputeVested releases of the
// remaining shares. Holdings without both vesting dates are fully vested.
func VestedForHolding(h domain.Shareholding, asOf time.Time) int64 {
	if !h.Vesting.HasSchedule() {
		return h.SharesOwned
	}
	base := clamp(h.VestedBaseline, 0, max(h.SharesOwned, 0))
	return base + ComputeVested(h.SharesOwned-base, *h.Vesting.StartDate, *h.Vesting.EndDate, h.Vesting.CliffPercentage, h.Vesting.Schedule, asOf)
}

// AddShares credits shares to a holding without unvesting anything already vested at asOf.
//
// With terms, the shares vested so far become the baseline and the terms govern the rest
// (the new shares plus whatever was still unvested). Without terms, the new shares are vested
// straight away.
func AddShares(h domain.Shareholding, shares int64, terms domain.VestingTerms, asOf time.Time) domain.Shareholding {
	switch {
	case terms.HasSchedule():
		h.VestedBaseline = VestedForHolding(h, asOf)
		h.Vesting = terms
	case h.Vesting.HasSchedule():
		h.VestedBaseline = clamp(h.VestedBaseline, 0, h.SharesOwned) + shares
	}
	h.SharesOwned += shares
	h.VestedShares = VestedForHolding(h, asOf)
	return h
}

// RemoveShares debits shares from a holding, vested shares first. Whatever stays unvested keeps
// vesting toward the same end date, re-anchored at asOf once the schedule has started.
func RemoveShares(h domain.Shareholding, shares int64, asOf time.Time) domain.Shareholding {
	vested := VestedForHolding(h, asOf)
	fromVested := min(shares, vested)
	unvested := h.SharesOwned - vested - (shares - fromVested)
	h.SharesOwned -= shares

	switch {
	case !h.Vesting.HasSchedule():
	case unvested <= 0:
		h.Vesting = domain.VestingTerms{}
		h.VestedBaseline = 0
	default:
		h.VestedBaseline = vested - fromVested
		if !asOf.Before(*h.Vesting.StartDate) {
			start := asOf
			h.Vesting.StartDate = &start
			h.Vesting.CliffPercentage = decimal.Zero
		}
	}
	h.VestedShares = VestedForHolding(h, asOf)
	return h
}

// VestingStatusFor builds the vested/unvested split of a holding at asOf.
func VestingStatusFor(h domain.Shareholding, asOf time.Time) domain.VestingStatus {
	vested := VestedForHolding(h, asOf)
	return domain.VestingStatus{
		ShareholderID:  h.ShareholderID,
		SharesOwned:    h.SharesOwned,
		VestedShares:   vested,
		UnvestedShares: h.SharesOwned - vested,
		AsOf:           asOf,
	}
}

func cliffShares(sharesOwned int64, cliffPercent decimal.Decimal) int64 {
	if !cliffPercent.IsPositive() {
		return 0
	}
	if cliffPercent.GreaterThan(hundred) {
		cliffPercent = hundred
	}
	return decimal.NewFromInt(sharesOwned).Mul(cliffPercent).Div(hundred).Floor().IntPart()
}

// wholeMonthsBetween counts completed calendar months from a to b (b >= a).
func wholeMonthsBetween(a, b time.Time) int {
	b = b.In(a.Location())
	months := (b.Year()-a.Year())*12 + int(b.Month()-a.Month())
	if months > 0 && a.AddDate(0, months, 0).After(b) {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
