package pgsql

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/equity_management_app/internal/apperrors"
	"github.com/SscSPs/equity_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/equity_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/equity_management_app/internal/utils/mapping"
	"github.com/SscSPs/equity_management_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEquityRepository struct {
	BaseRepository
}

// newPgxEquityRepository creates a new repository for share configurations, holdings and their ledgers.
func newPgxEquityRepository(pool *pgxpool.Pool) *PgxEquityRepository {
	return &PgxEquityRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxEquityRepository implements portsrepo.EquityStore
var _ portsrepo.EquityStore = (*PgxEquityRepository)(nil)

const FULL_SHARE_CONFIGURATION_SELECT_QUERY = `
SELECT
	c.company_id, c.authorized_shares, c.issued_shares, c.par_value, c.class_type, c.currency_code, c.status,
	c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
FROM share_configurations c
`

const FULL_SHAREHOLDING_SELECT_QUERY = `
SELECT
	h.shareholding_id, h.company_id, h.shareholder_id, h.shares_owned, h.share_class, h.equity_type,
	h.vesting_start_date, h.vesting_end_date, h.vesting_schedule, h.cliff_percentage, h.vested_baseline, h.vested_shares,
	h.acquisition_date, h.acquisition_price, h.status,
	h.created_at, h.created_by, h.last_updated_at, h.last_updated_by
FROM shareholdings h
`

const FULL_ISSUANCE_SELECT_QUERY = `
SELECT
	i.issuance_id, i.company_id, i.shares_issued, i.issued_at_price, i.recipient_id, i.equity_type,
	i.vesting_start_date, i.vesting_end_date, i.vesting_schedule, i.cliff_percentage,
	i.approval_status, i.previous_issued_shares, i.ownership_dilution_impact,
	i.proposed_by, i.approved_by, i.approved_at, i.rejection_reason, i.notes,
	i.created_at, i.created_by, i.last_updated_at, i.last_updated_by
FROM share_issuances i
`

const FULL_TRANSFER_SELECT_QUERY = `
SELECT
	t.transfer_id, t.company_id, t.from_shareholder_id, t.to_shareholder_id, t.shares_transferred,
	t.transfer_price_per_share, t.transfer_type, t.transfer_date, t.notes,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
FROM share_transfers t
`

// WithTransaction runs fn inside a READ COMMITTED transaction. Serialization between writers
// comes from the row locks the EquityTx methods take, starting with the share configuration.
func (r *PgxEquityRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx portsrepo.EquityTx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	if err := fn(ctx, &pgxEquityTx{tx: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxEquityRepository) FetchShareConfiguration(ctx context.Context, companyID string) (*domain.ShareConfiguration, error) {
	return fetchShareConfiguration(ctx, r.Pool, companyID, "")
}

func (r *PgxEquityRepository) FetchActiveShareholdings(ctx context.Context, companyID string) ([]domain.Shareholding, error) {
	return collectRows(ctx, r.Pool, "failed to query active shareholdings",
		FULL_SHAREHOLDING_SELECT_QUERY+` WHERE h.company_id = $1 AND h.status = 'ACTIVE' ORDER BY h.shareholder_id`,
		mapping.ToDomainShareholding, companyID)
}

func (r *PgxEquityRepository) FindShareholding(ctx context.Context, companyID, shareholderID string) (*domain.Shareholding, error) {
	return collectOne(ctx, r.Pool, "shareholding of shareholder "+shareholderID,
		FULL_SHAREHOLDING_SELECT_QUERY+` WHERE h.company_id = $1 AND h.shareholder_id = $2`,
		mapping.ToDomainShareholding, companyID, shareholderID)
}

func (r *PgxEquityRepository) FindIssuanceByID(ctx context.Context, companyID, issuanceID string) (*domain.ShareIssuance, error) {
	return findIssuance(ctx, r.Pool, companyID, issuanceID, "")
}

func (r *PgxEquityRepository) ListIssuances(ctx context.Context, companyID string, filter domain.IssuanceFilter) ([]domain.ShareIssuance, *string, error) {
	where := newWhereBuilder("i.company_id = %s", companyID)
	if filter.Status != nil {
		where.and("i.approval_status = %s", string(*filter.Status))
	}
	if filter.RecipientID != nil {
		where.and("i.recipient_id = %s", *filter.RecipientID)
	}
	if err := applyCursor(where, "i.created_at", "i.issuance_id", filter.NextToken); err != nil {
		return nil, nil, err
	}
	limit := pagination.NormalizeLimit(filter.Limit)
	query := FULL_ISSUANCE_SELECT_QUERY + where.String() +
		" ORDER BY i.created_at DESC, i.issuance_id DESC LIMIT " + where.limit(limit+1)

	issuances, err := collectRows(ctx, r.Pool, "failed to list issuances", query, mapping.ToDomainShareIssuance, where.Args()...)
	if err != nil {
		return nil, nil, err
	}
	return trimPage(issuances, limit, func(i domain.ShareIssuance) string {
		return pagination.EncodeToken(i.CreatedAt, i.IssuanceID)
	})
}

func (r *PgxEquityRepository) ListTransfers(ctx context.Context, companyID string, filter domain.TransferFilter) ([]domain.ShareTransfer, *string, error) {
	where := newWhereBuilder("t.company_id = %s", companyID)
	if filter.ShareholderID != nil {
		where.and("(t.from_shareholder_id = %s OR t.to_shareholder_id = %s)", *filter.ShareholderID, *filter.ShareholderID)
	}
	if filter.TransferType != nil {
		where.and("t.transfer_type = %s", string(*filter.TransferType))
	}
	if err := applyCursor(where, "t.created_at", "t.transfer_id", filter.NextToken); err != nil {
		return nil, nil, err
	}
	limit := pagination.NormalizeLimit(filter.Limit)
	query := FULL_TRANSFER_SELECT_QUERY + where.String() +
		" ORDER BY t.created_at DESC, t.transfer_id DESC LIMIT " + where.limit(limit+1)

	transfers, err := collectRows(ctx, r.Pool, "failed to list transfers", query, mapping.ToDomainShareTransfer, where.Args()...)
	if err != nil {
		return nil, nil, err
	}
	return trimPage(transfers, limit, func(t domain.ShareTransfer) string {
		return pagination.EncodeToken(t.CreatedAt, t.TransferID)
	})
}

func applyCursor(where *whereBuilder, createdAtCol, idCol string, nextToken *string) error {
	if nextToken == nil || *nextToken == "" {
		return nil
	}
	createdAt, id, err := pagination.DecodeToken(*nextToken)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	where.keysetBefore(createdAtCol, idCol, createdAt, id)
	return nil
}

// trimPage drops the look-ahead row and turns it into a next-page token.
func trimPage[T any](rows []T, limit int, tokenOf func(T) string) ([]T, *string, error) {
	if len(rows) <= limit {
		return rows, nil, nil
	}
	rows = rows[:limit]
	token := tokenOf(rows[limit-1])
	return rows, &token, nil
}

func fetchShareConfiguration(ctx context.Context, q querier, companyID, suffix string) (*domain.ShareConfiguration, error) {
	return collectOne(ctx, q, "share configuration of company "+companyID,
		FULL_SHARE_CONFIGURATION_SELECT_QUERY+` WHERE c.company_id = $1`+suffix,
		mapping.ToDomainShareConfiguration, companyID)
}

func findIssuance(ctx context.Context, q querier, companyID, issuanceID, suffix string) (*domain.ShareIssuance, error) {
	return collectOne(ctx, q, "issuance "+issuanceID,
		FULL_ISSUANCE_SELECT_QUERY+` WHERE i.company_id = $1 AND i.issuance_id = $2`+suffix,
		mapping.ToDomainShareIssuance, companyID, issuanceID)
}

// --- EquityTx ---

type pgxEquityTx struct {
	tx pgx.Tx
}

var _ portsrepo.EquityTx = (*pgxEquityTx)(nil)

func (t *pgxEquityTx) LockShareConfiguration(ctx context.Context, companyID string) (*domain.ShareConfiguration, error) {
	return fetchShareConfiguration(ctx, t.tx, companyID, " FOR UPDATE")
}

func (t *pgxEquityTx) SumActiveShares(ctx context.Context, companyID string) (int64, error) {
	var total int64
	err := t.tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(shares_owned), 0) FROM shareholdings WHERE company_id = $1 AND status = 'ACTIVE'`,
		companyID,
	).Scan(&total)
	if err != nil {
		return 0, mapError("failed to sum active shares", err)
	}
	return total, nil
}

func (t *pgxEquityTx) LockShareholdings(ctx context.Context, companyID string, shareholderIDs []string) (map[string]domain.Shareholding, error) {
	ids := append([]string(nil), shareholderIDs...)
	sort.Strings(ids)
	holdings, err := collectRows(ctx, t.tx, "failed to lock shareholdings",
		FULL_SHAREHOLDING_SELECT_QUERY+` WHERE h.company_id = $1 AND h.shareholder_id = ANY($2) ORDER BY h.shareholder_id FOR UPDATE`,
		mapping.ToDomainShareholding, companyID, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.Shareholding, len(holdings))
	for _, h := range holdings {
		out[h.ShareholderID] = h
	}
	return out, nil
}

func (t *pgxEquityTx) FindShareholderByID(ctx context.Context, companyID, shareholderID string) (*domain.Shareholder, error) {
	return findShareholder(ctx, t.tx, companyID, shareholderID)
}

func (t *pgxEquityTx) LockIssuance(ctx context.Context, companyID, issuanceID string) (*domain.ShareIssuance, error) {
	return findIssuance(ctx, t.tx, companyID, issuanceID, " FOR UPDATE")
}

func (t *pgxEquityTx) SaveShareConfiguration(ctx context.Context, cfg domain.ShareConfiguration) error {
	m := mapping.ToModelShareConfiguration(cfg)
	_, err := t.tx.Exec(ctx, `
		INSERT INTO share_configurations (
			company_id, authorized_shares, issued_shares, par_value, class_type, currency_code, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`,
		m.CompanyID, m.AuthorizedShares, m.IssuedShares, m.ParValue, m.ClassType, m.CurrencyCode, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError("failed to insert share configuration of company "+cfg.CompanyID, err)
}

func (t *pgxEquityTx) UpdateShareConfiguration(ctx context.Context, cfg domain.ShareConfiguration) error {
	m := mapping.ToModelShareConfiguration(cfg)
	return execOne(ctx, t.tx, "share configuration of company "+cfg.CompanyID, `
		UPDATE share_configurations
		SET authorized_shares = $2, issued_shares = $3, par_value = $4, class_type = $5,
			currency_code = $6, status = $7, last_updated_at = $8, last_updated_by = $9
		WHERE company_id = $1;
	`,
		m.CompanyID, m.AuthorizedShares, m.IssuedShares, m.ParValue, m.ClassType,
		m.CurrencyCode, m.Status, m.LastUpdatedAt, m.LastUpdatedBy,
	)
}

// UpsertShareholding relies on the (company_id, shareholder_id) unique key: one holding per shareholder.
func (t *pgxEquityTx) UpsertShareholding(ctx context.Context, h domain.Shareholding) error {
	m := mapping.ToModelShareholding(h)
	_, err := t.tx.Exec(ctx, `
		INSERT INTO shareholdings (
			shareholding_id, company_id, shareholder_id, shares_owned, share_class, equity_type,
			vesting_start_date, vesting_end_date, vesting_schedule, cliff_percentage, vested_baseline, vested_shares,
			acquisition_date, acquisition_price, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (company_id, shareholder_id) DO UPDATE SET
			shares_owned = EXCLUDED.shares_owned,
			share_class = EXCLUDED.share_class,
			equity_type = EXCLUDED.equity_type,
			vesting_start_date = EXCLUDED.vesting_start_date,
			vesting_end_date = EXCLUDED.vesting_end_date,
			vesting_schedule = EXCLUDED.vesting_schedule,
			cliff_percentage = EXCLUDED.cliff_percentage,
			vested_baseline = EXCLUDED.vested_baseline,
			vested_shares = EXCLUDED.vested_shares,
			acquisition_date = EXCLUDED.acquisition_date,
			acquisition_price = EXCLUDED.acquisition_price,
			status = EXCLUDED.status,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`,
		m.ShareholdingID, m.CompanyID, m.ShareholderID, m.SharesOwned, m.ShareClass, m.EquityType,
		m.VestingStartDate, m.VestingEndDate, m.VestingSchedule, m.CliffPercentage, m.VestedBaseline, m.VestedShares,
		m.AcquisitionDate, m.AcquisitionPrice, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError("failed to upsert shareholding of shareholder "+h.ShareholderID, err)
}

func (t *pgxEquityTx) SaveIssuance(ctx context.Context, issuance domain.ShareIssuance) error {
	m := mapping.ToModelShareIssuance(issuance)
	_, err := t.tx.Exec(ctx, `
		INSERT INTO share_issuances (
			issuance_id, company_id, shares_issued, issued_at_price, recipient_id, equity_type,
			vesting_start_date, vesting_end_date, vesting_schedule, cliff_percentage,
			approval_status, previous_issued_shares, ownership_dilution_impact,
			proposed_by, approved_by, approved_at, rejection_reason, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`,
		m.IssuanceID, m.CompanyID, m.SharesIssued, m.IssuedAtPrice, m.RecipientID, m.EquityType,
		m.VestingStartDate, m.VestingEndDate, m.VestingSchedule, m.CliffPercentage,
		m.ApprovalStatus, m.PreviousIssuedShares, m.OwnershipDilutionImpact,
		m.ProposedBy, m.ApprovedBy, m.ApprovedAt, m.RejectionReason, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError("failed to insert issuance "+issuance.IssuanceID, err)
}

func (t *pgxEquityTx) UpdateIssuance(ctx context.Context, issuance domain.ShareIssuance) error {
	m := mapping.ToModelShareIssuance(issuance)
	return execOne(ctx, t.tx, "issuance "+issuance.IssuanceID, `
		UPDATE share_issuances
		SET approval_status = $3, previous_issued_shares = $4, ownership_dilution_impact = $5,
			approved_by = $6, approved_at = $7, rejection_reason = $8,
			last_updated_at = $9, last_updated_by = $10
		WHERE company_id = $1 AND issuance_id = $2;
	`,
		m.CompanyID, m.IssuanceID, m.ApprovalStatus, m.PreviousIssuedShares, m.OwnershipDilutionImpact,
		m.ApprovedBy, m.ApprovedAt, m.RejectionReason,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
}

func (t *pgxEquityTx) SaveTransfer(ctx context.Context, transfer domain.ShareTransfer) error {
	m := mapping.ToModelShareTransfer(transfer)
	_, err := t.tx.Exec(ctx, `
		INSERT INTO share_transfers (
			transfer_id, company_id, from_shareholder_id, to_shareholder_id, shares_transferred,
			transfer_price_per_share, transfer_type, transfer_date, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`,
		m.TransferID, m.CompanyID, m.FromShareholderID, m.ToShareholderID, m.SharesTransferred,
		m.TransferPricePerShare, m.TransferType, m.TransferDate, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError("failed to insert transfer "+transfer.TransferID, err)
}

func (t *pgxEquityTx) SaveBuyback(ctx context.Context, buyback domain.ShareBuyback) error {
	m := mapping.ToModelShareBuyback(buyback)
	_, err := t.tx.Exec(ctx, `
		INSERT INTO share_buybacks (
			buyback_id, company_id, shareholder_id, shares_repurchased, price_per_share, total_amount,
			issued_shares_before, issued_shares_after,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`,
		m.BuybackID, m.CompanyID, m.ShareholderID, m.SharesRepurchased, m.PricePerShare, m.TotalAmount,
		m.IssuedSharesBefore, m.IssuedSharesAfter,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError("failed to insert buyback "+buyback.BuybackID, err)
}
