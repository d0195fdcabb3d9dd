package pgsql

import (
	"context"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/equity_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/equity_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxValuationRepository reads the balance-sheet inputs of the valuation.
// Status filtering is left to the valuation calculator so every row is visible here.
type PgxValuationRepository struct {
	BaseRepository
}

func newPgxValuationRepository(pool *pgxpool.Pool) portsrepo.ValuationInputsReader {
	return &PgxValuationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ValuationInputsReader = (*PgxValuationRepository)(nil)

func (r *PgxValuationRepository) FetchAssets(ctx context.Context, companyID string) ([]domain.Asset, error) {
	return collectRows(ctx, r.Pool, "failed to query assets", `
		SELECT asset_id, company_id, name, acquisition_cost, accumulated_depreciation, status
		FROM assets WHERE company_id = $1 ORDER BY asset_id
	`, mapping.ToDomainAsset, companyID)
}

// FetchLiabilitiesTotal sums the outstanding liabilities; settled ones no longer reduce net worth.
func (r *PgxValuationRepository) FetchLiabilitiesTotal(ctx context.Context, companyID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM liabilities WHERE company_id = $1 AND status = 'OUTSTANDING'
	`, companyID).Scan(&total)
	if err != nil {
		return decimal.Zero, mapError("failed to sum liabilities", err)
	}
	return total, nil
}

func (r *PgxValuationRepository) FetchIP(ctx context.Context, companyID string) ([]domain.IPItem, error) {
	return collectRows(ctx, r.Pool, "failed to query intellectual property", `
		SELECT ip_id, company_id, name, valuation_estimate, status
		FROM intellectual_property WHERE company_id = $1 ORDER BY ip_id
	`, mapping.ToDomainIPItem, companyID)
}

func (r *PgxValuationRepository) FetchInfrastructure(ctx context.Context, companyID string) ([]domain.InfrastructureItem, error) {
	return collectRows(ctx, r.Pool, "failed to query infrastructure", `
		SELECT infrastructure_id, company_id, name, replacement_cost, status
		FROM infrastructure WHERE company_id = $1 ORDER BY infrastructure_id
	`, mapping.ToDomainInfrastructureItem, companyID)
}
