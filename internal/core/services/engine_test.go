package services_test

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/equity_management_app/internal/apperrors"
	"github.com/SscSPs/equity_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/equity_management_app/internal/core/ports/services"
	"github.com/SscSPs/equity_management_app/internal/core/services"
	"github.com/SscSPs/equity_management_app/internal/dto"
	"github.com/SscSPs/equity_management_app/internal/repositories/cache"
	"github.com/SscSPs/equity_management_app/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	founderID   = "user-founder"
	cofounderID = "user-cofounder"
	viewerID    = "user-viewer"
)

// ledger is a company running on the in-memory store with the real service graph.
type ledger struct {
	t         *testing.T
	store     *memory.Store
	svc       *portssvc.ServiceContainer
	companyID string
}

func newLedger(t *testing.T, authorized, issued int64) *ledger {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	svc := services.NewServiceContainer(store.Provider(), cache.NewLRUValuationCache(16, time.Minute))

	company, err := svc.Company.CreateCompany(ctx, dto.CreateCompanyRequest{Name: "Acme", DefaultCurrencyCode: "USD"}, founderID)
	require.NoError(t, err)
	_, err = svc.Company.AddMember(ctx, company.CompanyID, founderID, dto.AddMemberRequest{UserID: cofounderID, Role: "FOUNDER"})
	require.NoError(t, err)
	_, err = svc.Company.AddMember(ctx, company.CompanyID, founderID, dto.AddMemberRequest{UserID: viewerID, Role: "VIEWER"})
	require.NoError(t, err)

	_, err = svc.Equity.SetupShareConfiguration(ctx, company.CompanyID, founderID,
		dto.SetupShareConfigurationRequest{AuthorizedShares: authorized, IssuedShares: issued})
	require.NoError(t, err)

	store.AddAsset(domain.Asset{CompanyID: company.CompanyID, Name: "Servers",
		AcquisitionCost: decimal.NewFromInt(1_200_000), AccumulatedDepreciation: decimal.NewFromInt(200_000), Status: domain.AssetActive})

	return &ledger{t: t, store: store, svc: svc, companyID: company.CompanyID}
}

func (l *ledger) shareholder(name string) string {
	l.t.Helper()
	sh, err := l.svc.Shareholder.CreateShareholder(context.Background(), l.companyID, founderID,
		dto.CreateShareholderRequest{Name: name, HolderType: "INVESTOR"})
	require.NoError(l.t, err)
	return sh.ShareholderID
}

func (l *ledger) allocate(holder string, shares int64) (*domain.Shareholding, error) {
	return l.svc.Equity.Allocate(context.Background(), l.companyID, founderID,
		dto.AllocateSharesRequest{ShareholderID: holder, Shares: shares, EquityType: "PURCHASED"})
}

func (l *ledger) capTable() *domain.CapTable {
	l.t.Helper()
	table, err := l.svc.Equity.GetCapTable(context.Background(), l.companyID, viewerID)
	require.NoError(l.t, err)
	return table
}

// assertInvariants checks allocated <= issued <= authorized and 0 <= vested <= owned for every holding.
func (l *ledger) assertInvariants() {
	l.t.Helper()
	table := l.capTable()
	assert.LessOrEqual(l.t, table.AllocatedShares, table.IssuedShares)
	assert.LessOrEqual(l.t, table.IssuedShares, table.AuthorizedShares)
	assert.Positive(l.t, table.IssuedShares)
	for _, h := range table.Holdings {
		assert.Positive(l.t, h.SharesOwned, "active holdings are never empty")
		assert.GreaterOrEqual(l.t, h.VestedShares, int64(0))
		assert.LessOrEqual(l.t, h.VestedShares, h.SharesOwned)
	}
}

func TestEngine_AllocationWalkthrough(t *testing.T) {
	l := newLedger(t, 10_000_000, 1_000_000)
	ctx := context.Background()
	alice := l.shareholder("Alice")
	bob := l.shareholder("Bob")

	_, err := l.allocate(alice, 900_000)
	require.NoError(t, err)

	holding, err := l.allocate(bob, 50_000)
	require.NoError(t, err)
	assert.Equal(t, "0.5", holding.OwnershipPercentage.String())
	// 1,000,000 strategic value over 10,000,000 authorized shares
	assert.Equal(t, "5000", holding.ShareValue.String())

	_, err = l.allocate(bob, 150_000)
	require.ErrorIs(t, err, apperrors.ErrInsufficientCapacity)

	table := l.capTable()
	assert.Equal(t, int64(950_000), table.AllocatedShares)
	assert.Equal(t, int64(1_000_000), table.IssuedShares)
	assert.Equal(t, "0.1", table.PricePerShare.String())

	issuance, err := l.svc.Equity.ProposeIssuance(ctx, l.companyID, founderID,
		dto.ProposeIssuanceRequest{Shares: 100_000, RecipientID: bob, EquityType: "PURCHASED"})
	require.NoError(t, err)
	assert.Equal(t, "9.0909", issuance.OwnershipDilutionImpact.String())

	_, err = l.svc.Equity.ExecuteIssuance(ctx, l.companyID, issuance.IssuanceID, founderID)
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	holding, err = l.svc.Equity.ExecuteIssuance(ctx, l.companyID, issuance.IssuanceID, cofounderID)
	require.NoError(t, err)
	assert.Equal(t, int64(150_000), holding.SharesOwned)

	_, err = l.svc.Equity.ExecuteIssuance(ctx, l.companyID, issuance.IssuanceID, cofounderID)
	require.ErrorIs(t, err, apperrors.ErrAlreadyProcessed)

	table = l.capTable()
	assert.Equal(t, int64(1_100_000), table.IssuedShares)
	assert.Equal(t, int64(1_050_000), table.AllocatedShares)
	l.assertInvariants()
}

func TestEngine_TransferConservesShares(t *testing.T) {
	l := newLedger(t, 1_000_000, 500_000)
	ctx := context.Background()
	alice := l.shareholder("Alice")
	bob := l.shareholder("Bob")
	_, err := l.allocate(alice, 400_000)
	require.NoError(t, err)

	before := l.capTable()
	result, err := l.svc.Equity.Transfer(ctx, l.companyID, founderID, dto.TransferSharesRequest{
		FromShareholderID: alice, ToShareholderID: bob, Shares: 150_000, TransferType: "SALE",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(250_000), result.FromBalance)
	assert.Equal(t, int64(150_000), result.ToBalance)

	after := l.capTable()
	assert.Equal(t, before.AllocatedShares, after.AllocatedShares)
	assert.Equal(t, before.IssuedShares, after.IssuedShares)

	// Emptying a holding deactivates it; the next credit brings it back.
	_, err = l.svc.Equity.Transfer(ctx, l.companyID, founderID, dto.TransferSharesRequest{
		FromShareholderID: alice, ToShareholderID: bob, Shares: 250_000, TransferType: "GIFT",
	})
	require.NoError(t, err)
	emptied, err := l.store.FindShareholding(ctx, l.companyID, alice)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInactive, emptied.Status)
	assert.Len(t, l.capTable().Holdings, 1)

	_, err = l.allocate(alice, 10)
	require.NoError(t, err)
	assert.Len(t, l.capTable().Holdings, 2)

	transfers, _, err := l.svc.Equity.ListTransfers(ctx, l.companyID, viewerID, domain.TransferFilter{ShareholderID: &alice})
	require.NoError(t, err)
	assert.Len(t, transfers, 2)
}

func TestEngine_RejectedOperationsLeaveStateUnchanged(t *testing.T) {
	l := newLedger(t, 1_000, 500)
	ctx := context.Background()
	alice := l.shareholder("Alice")
	bob := l.shareholder("Bob")
	_, err := l.allocate(alice, 300)
	require.NoError(t, err)
	before := l.capTable()

	_, err = l.allocate(bob, 201)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientCapacity)

	_, err = l.svc.Equity.Transfer(ctx, l.companyID, founderID, dto.TransferSharesRequest{
		FromShareholderID: alice, ToShareholderID: bob, Shares: 301, TransferType: "SALE",
	})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientShares)

	_, _, err = l.svc.Equity.Buyback(ctx, l.companyID, founderID, dto.BuybackSharesRequest{ShareholderID: bob, Shares: 1})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientShares)

	_, err = l.svc.Equity.ProposeIssuance(ctx, l.companyID, founderID,
		dto.ProposeIssuanceRequest{Shares: 501, RecipientID: bob, EquityType: "PURCHASED"})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientCapacity)

	_, err = l.svc.Equity.Allocate(ctx, l.companyID, viewerID,
		dto.AllocateSharesRequest{ShareholderID: bob, Shares: 1, EquityType: "PURCHASED"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	after := l.capTable()
	assert.Equal(t, before.AllocatedShares, after.AllocatedShares)
	assert.Equal(t, before.IssuedShares, after.IssuedShares)
	assert.Equal(t, before.Holdings, after.Holdings)

	issuances, _, err := l.svc.Equity.ListIssuances(ctx, l.companyID, viewerID, domain.IssuanceFilter{})
	require.NoError(t, err)
	assert.Empty(t, issuances)
}

func TestEngine_BuybackRetiresShares(t *testing.T) {
	l := newLedger(t, 1_000, 500)
	ctx := context.Background()
	alice := l.shareholder("Alice")
	_, err := l.allocate(alice, 200)
	require.NoError(t, err)

	buyback, holding, err := l.svc.Equity.Buyback(ctx, l.companyID, founderID,
		dto.BuybackSharesRequest{ShareholderID: alice, Shares: 50, PricePerShare: decimal.RequireFromString("1.25")})
	require.NoError(t, err)
	assert.Equal(t, int64(500), buyback.IssuedSharesBefore)
	assert.Equal(t, int64(450), buyback.IssuedSharesAfter)
	assert.Equal(t, "62.5", buyback.TotalAmount.String())
	assert.Equal(t, int64(150), holding.SharesOwned)

	cfg, err := l.svc.Equity.GetShareConfiguration(ctx, l.companyID, viewerID)
	require.NoError(t, err)
	assert.Equal(t, int64(450), cfg.IssuedShares)
	l.assertInvariants()
}

func TestEngine_IssuanceRejection(t *testing.T) {
	l := newLedger(t, 1_000, 500)
	ctx := context.Background()
	bob := l.shareholder("Bob")

	issuance, err := l.svc.Equity.ProposeIssuance(ctx, l.companyID, founderID,
		dto.ProposeIssuanceRequest{Shares: 100, RecipientID: bob, EquityType: "PURCHASED"})
	require.NoError(t, err)

	rejected, err := l.svc.Equity.RejectIssuance(ctx, l.companyID, issuance.IssuanceID, cofounderID, "board declined")
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalRejected, rejected.ApprovalStatus)

	_, err = l.svc.Equity.ExecuteIssuance(ctx, l.companyID, issuance.IssuanceID, cofounderID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyProcessed)

	status := domain.ApprovalRejected
	listed, _, err := l.svc.Equity.ListIssuances(ctx, l.companyID, viewerID, domain.IssuanceFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "board declined", listed[0].RejectionReason)
	assert.Equal(t, int64(500), l.capTable().IssuedShares)
}

func TestEngine_GrantedIssuanceVests(t *testing.T) {
	l := newLedger(t, 10_000, 5_000)
	ctx := context.Background()
	carol := l.shareholder("Carol")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 100)
	cliff := decimal.NewFromInt(10)

	issuance, err := l.svc.Equity.ProposeIssuance(ctx, l.companyID, founderID, dto.ProposeIssuanceRequest{
		Shares: 1000, RecipientID: carol, EquityType: "GRANTED",
		VestingTermsRequest: dto.VestingTermsRequest{VestingStartDate: &start, VestingEndDate: &end, CliffPercentage: &cliff},
	})
	require.NoError(t, err)
	_, err = l.svc.Equity.ExecuteIssuance(ctx, l.companyID, issuance.IssuanceID, cofounderID)
	require.NoError(t, err)

	for _, tc := range []struct {
		asOf   time.Time
		vested int64
	}{
		{start.Add(-time.Second), 0},
		{start, 100},
		{start.AddDate(0, 0, 50), 550},
		{end, 1000},
	} {
		status, err := l.svc.Equity.GetVesting(ctx, l.companyID, carol, viewerID, tc.asOf)
		require.NoError(t, err)
		assert.Equal(t, tc.vested, status.VestedShares, "as of %s", tc.asOf)
	}
}

func TestEngine_NewGrantKeepsVestedShares(t *testing.T) {
	l := newLedger(t, 10_000, 5_000)
	ctx := context.Background()
	alice := l.shareholder("Alice")
	bob := l.shareholder("Bob")
	_, err := l.allocate(alice, 1000)
	require.NoError(t, err)

	start := time.Now().UTC().Truncate(time.Second).AddDate(0, 0, 1)
	end := start.AddDate(0, 0, 100)
	issuance, err := l.svc.Equity.ProposeIssuance(ctx, l.companyID, founderID, dto.ProposeIssuanceRequest{
		Shares: 1000, RecipientID: alice, EquityType: "GRANTED",
		VestingTermsRequest: dto.VestingTermsRequest{VestingStartDate: &start, VestingEndDate: &end},
	})
	require.NoError(t, err)
	holding, err := l.svc.Equity.ExecuteIssuance(ctx, l.companyID, issuance.IssuanceID, cofounderID)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), holding.SharesOwned)
	assert.Equal(t, int64(1000), holding.VestedShares, "purchased shares stay vested under a new grant")

	midway := start.AddDate(0, 0, 50)
	status, err := l.svc.Equity.GetVesting(ctx, l.companyID, alice, viewerID, midway)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), status.VestedShares)

	// The unvested grant cannot be handed over.
	_, err = l.svc.Equity.Transfer(ctx, l.companyID, founderID, dto.TransferSharesRequest{
		FromShareholderID: alice, ToShareholderID: bob, Shares: 1001, TransferType: "GIFT",
	})
	require.ErrorIs(t, err, apperrors.ErrInsufficientShares)

	_, err = l.svc.Equity.Transfer(ctx, l.companyID, founderID, dto.TransferSharesRequest{
		FromShareholderID: alice, ToShareholderID: bob, Shares: 1000, TransferType: "GIFT",
	})
	require.NoError(t, err)

	bobStatus, err := l.svc.Equity.GetVesting(ctx, l.companyID, bob, viewerID, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), bobStatus.VestedShares)

	aliceStatus, err := l.svc.Equity.GetVesting(ctx, l.companyID, alice, viewerID, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), aliceStatus.SharesOwned)
	assert.Equal(t, int64(0), aliceStatus.VestedShares)

	status, err = l.svc.Equity.GetVesting(ctx, l.companyID, alice, viewerID, midway)
	require.NoError(t, err)
	assert.Equal(t, int64(500), status.VestedShares)
	l.assertInvariants()
}

func TestEngine_ValuationCacheAndInvalidation(t *testing.T) {
	l := newLedger(t, 10_000_000, 1_000_000)
	ctx := context.Background()

	first, err := l.svc.Valuation.GetValuation(ctx, l.companyID, viewerID, false)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Equal(t, "0.1", first.PricePerShare.String())

	second, err := l.svc.Valuation.GetValuation(ctx, l.companyID, viewerID, false)
	require.NoError(t, err)
	assert.True(t, second.FromCache)

	refreshed, err := l.svc.Valuation.GetValuation(ctx, l.companyID, viewerID, true)
	require.NoError(t, err)
	assert.False(t, refreshed.FromCache)

	authorized := int64(20_000_000)
	_, err = l.svc.Equity.UpdateShareConfiguration(ctx, l.companyID, founderID,
		dto.UpdateShareConfigurationRequest{AuthorizedShares: &authorized})
	require.NoError(t, err)

	after, err := l.svc.Valuation.GetValuation(ctx, l.companyID, viewerID, false)
	require.NoError(t, err)
	assert.False(t, after.FromCache)
	assert.Equal(t, "0.05", after.PricePerShare.String())
}

func TestEngine_ConcurrentAllocationsNeverExceedIssued(t *testing.T) {
	l := newLedger(t, 10_000, 1_000)
	holders := make([]string, 10)
	for i := range holders {
		holders[i] = l.shareholder(string(rune('A' + i)))
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := l.allocate(holders[i%len(holders)], 30)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrInsufficientCapacity)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 33, succeeded)
	assert.Equal(t, int64(990), l.capTable().AllocatedShares)
	l.assertInvariants()
}

func TestEngine_RandomOperationsPreserveInvariants(t *testing.T) {
	l := newLedger(t, 100_000, 20_000)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))
	holders := []string{l.shareholder("A"), l.shareholder("B"), l.shareholder("C"), l.shareholder("D")}
	pick := func() string { return holders[rng.Intn(len(holders))] }

	expected := map[string]bool{
		"INSUFFICIENT_CAPACITY": true,
		"INSUFFICIENT_SHARES":   true,
		"INVALID_INPUT":         true,
		"INVALID_CONFIG":        true,
	}

	for step := 0; step < 300; step++ {
		shares := rng.Int63n(6_000) + 1
		var err error
		switch rng.Intn(4) {
		case 0:
			_, err = l.allocate(pick(), shares)
		case 1:
			_, err = l.svc.Equity.Transfer(ctx, l.companyID, founderID, dto.TransferSharesRequest{
				FromShareholderID: pick(), ToShareholderID: pick(), Shares: shares, TransferType: "OTHER",
			})
		case 2:
			_, _, err = l.svc.Equity.Buyback(ctx, l.companyID, founderID,
				dto.BuybackSharesRequest{ShareholderID: pick(), Shares: shares})
		case 3:
			var issuance *domain.ShareIssuance
			issuance, err = l.svc.Equity.ProposeIssuance(ctx, l.companyID, founderID,
				dto.ProposeIssuanceRequest{Shares: shares, RecipientID: pick(), EquityType: "PURCHASED"})
			if err == nil {
				_, err = l.svc.Equity.ExecuteIssuance(ctx, l.companyID, issuance.IssuanceID, cofounderID)
			}
		}
		if err != nil {
			require.True(t, expected[apperrors.Kind(err)], "step %d: unexpected error %v", step, err)
		}
		l.assertInvariants()
	}
}
