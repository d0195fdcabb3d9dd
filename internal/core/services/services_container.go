package services

import (
	portsrepo "github.com/SscSPs/equity_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/equity_management_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// cache may be nil, in which case every valuation is recomputed.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cache portsrepo.ValuationCache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Company service first: it is the authorizer for every other service
	container.Company = NewCompanyService(repos.CompanyRepo)
	authorizer := container.Company.(portssvc.CompanyAuthorizerSvc)

	valuationOpts := []ValuationOption{WithValuationAuthorizer(authorizer)}
	if cache != nil {
		valuationOpts = append(valuationOpts, WithValuationCache(cache))
	}
	container.Valuation = NewValuationService(repos.ValuationInputs, repos.EquityStore, repos.CompanyRepo, valuationOpts...)

	container.Shareholder = NewShareholderService(repos.ShareholderRepo, authorizer)
	container.Equity = NewEquityService(
		repos.EquityStore,
		repos.CompanyRepo,
		WithEquityAuthorizer(authorizer),
		WithValuationService(container.Valuation),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CompanySvcFacade     = (*companyService)(nil)
	_ portssvc.ShareholderSvcFacade = (*shareholderService)(nil)
	_ portssvc.EquitySvcFacade      = (*equityService)(nil)
	_ portssvc.ValuationSvcFacade   = (*valuationService)(nil)
)
