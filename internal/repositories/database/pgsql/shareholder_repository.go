package pgsql

import (
	"context"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/equity_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/equity_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxShareholderRepository struct {
	BaseRepository
}

func newPgxShareholderRepository(pool *pgxpool.Pool) portsrepo.ShareholderRepositoryFacade {
	return &PgxShareholderRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ShareholderRepositoryFacade = (*PgxShareholderRepository)(nil)

const FULL_SHAREHOLDER_SELECT_QUERY = `
SELECT
	s.shareholder_id, s.company_id, s.user_id, s.name, s.email, s.holder_type, s.status,
	s.created_at, s.created_by, s.last_updated_at, s.last_updated_by
FROM shareholders s
`

func findShareholder(ctx context.Context, q querier, companyID, shareholderID string) (*domain.Shareholder, error) {
	return collectOne(ctx, q, "shareholder "+shareholderID,
		FULL_SHAREHOLDER_SELECT_QUERY+` WHERE s.company_id = $1 AND s.shareholder_id = $2`,
		mapping.ToDomainShareholder, companyID, shareholderID)
}

func (r *PgxShareholderRepository) FindShareholderByID(ctx context.Context, companyID, shareholderID string) (*domain.Shareholder, error) {
	return findShareholder(ctx, r.Pool, companyID, shareholderID)
}

func (r *PgxShareholderRepository) ListShareholders(ctx context.Context, companyID string, limit, offset int) ([]domain.Shareholder, error) {
	return collectRows(ctx, r.Pool, "failed to list shareholders",
		FULL_SHAREHOLDER_SELECT_QUERY+` WHERE s.company_id = $1 ORDER BY lower(s.name), s.shareholder_id LIMIT $2 OFFSET $3`,
		mapping.ToDomainShareholder, companyID, limit, offset)
}

func (r *PgxShareholderRepository) SaveShareholder(ctx context.Context, shareholder domain.Shareholder) error {
	m := mapping.ToModelShareholder(shareholder)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO shareholders (
			shareholder_id, company_id, user_id, name, email, holder_type, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`,
		m.ShareholderID, m.CompanyID, m.UserID, m.Name, m.Email, m.HolderType, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapError("failed to insert shareholder "+shareholder.ShareholderID, err)
}
