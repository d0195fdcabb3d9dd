package pgsql

import (
	"context"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/equity_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/equity_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for companies and their members.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCompanyRepository implements portsrepo.CompanyRepositoryFacade
var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

const FULL_COMPANY_SELECT_QUERY = `
SELECT
	c.company_id, c.name, c.description, c.default_currency_code, c.is_active,
	c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
FROM companies c
`

const FULL_COMPANY_MEMBER_SELECT_QUERY = `
SELECT m.user_id, m.company_id, m.role, m.joined_at
FROM company_members m
`

const upsertMemberQuery = `
	INSERT INTO company_members (user_id, company_id, role, joined_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (user_id, company_id) DO UPDATE SET role = EXCLUDED.role;
`

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	return collectOne(ctx, r.Pool, "company "+companyID,
		FULL_COMPANY_SELECT_QUERY+` WHERE c.company_id = $1`,
		mapping.ToDomainCompany, companyID)
}

// SaveCompany inserts the company and its founding member in one transaction.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company, founder domain.CompanyMember) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	c := mapping.ToModelCompany(company)
	m := mapping.ToModelCompanyMember(founder)

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO companies (
			company_id, name, description, default_currency_code, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`, c.CompanyID, c.Name, c.Description, c.DefaultCurrencyCode, c.IsActive,
		c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy)
	batch.Queue(upsertMemberQuery, m.UserID, m.CompanyID, m.Role, m.JoinedAt)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return mapError("failed to insert company "+company.CompanyID, err)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxCompanyRepository) AddMember(ctx context.Context, membership domain.CompanyMember) error {
	m := mapping.ToModelCompanyMember(membership)
	_, err := r.Pool.Exec(ctx, upsertMemberQuery, m.UserID, m.CompanyID, m.Role, m.JoinedAt)
	return mapError("failed to add member "+membership.UserID+" to company "+membership.CompanyID, err)
}

func (r *PgxCompanyRepository) FindMember(ctx context.Context, userID, companyID string) (*domain.CompanyMember, error) {
	return collectOne(ctx, r.Pool, "membership of user "+userID,
		FULL_COMPANY_MEMBER_SELECT_QUERY+` WHERE m.user_id = $1 AND m.company_id = $2`,
		mapping.ToDomainCompanyMember, userID, companyID)
}

func (r *PgxCompanyRepository) ListMembers(ctx context.Context, companyID string) ([]domain.CompanyMember, error) {
	return collectRows(ctx, r.Pool, "failed to list company members",
		FULL_COMPANY_MEMBER_SELECT_QUERY+` WHERE m.company_id = $1 ORDER BY m.joined_at, m.user_id`,
		mapping.ToDomainCompanyMember, companyID)
}
