package pgsql

import (
	portsrepo "github.com/SscSPs/equity_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		EquityStore:     newPgxEquityRepository(dbPool),
		ValuationInputs: newPgxValuationRepository(dbPool),
		ShareholderRepo: newPgxShareholderRepository(dbPool),
		CompanyRepo:     newPgxCompanyRepository(dbPool),
	}
}
