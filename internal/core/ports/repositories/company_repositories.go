package repositories

import (
	"context"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
)

// CompanyReader defines read operations for company data
type CompanyReader interface {
	// FindCompanyByID retrieves a specific company by its ID.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
}

// CompanyWriter defines write operations for company data
type CompanyWriter interface {
	// SaveCompany persists a new company together with its founding member.
	SaveCompany(ctx context.Context, company domain.Company, founder domain.CompanyMember) error
}

// CompanyMembershipManager defines operations for managing company memberships
type CompanyMembershipManager interface {
	// AddMember adds a user to a company, or updates the role of an existing member.
	AddMember(ctx context.Context, membership domain.CompanyMember) error

	// FindMember retrieves a user's membership of a company.
	FindMember(ctx context.Context, userID, companyID string) (*domain.CompanyMember, error)

	// ListMembers retrieves every member of a company.
	ListMembers(ctx context.Context, companyID string) ([]domain.CompanyMember, error)
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
	CompanyMembershipManager
}
