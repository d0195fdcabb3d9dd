package services

import (
	"context"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
	"github.com/SscSPs/equity_management_app/internal/dto"
)

// CompanyReaderSvc defines read operations for company data
type CompanyReaderSvc interface {
	// GetCompany retrieves a company the requesting user is a member of.
	GetCompany(ctx context.Context, companyID, requestingUserID string) (*domain.Company, error)

	// ListMembers retrieves all members of a company.
	ListMembers(ctx context.Context, companyID, requestingUserID string) ([]domain.CompanyMember, error)
}

// CompanyWriterSvc defines write operations for company data
type CompanyWriterSvc interface {
	// CreateCompany persists a new company and makes the creator its founder.
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error)

	// AddMember adds a user to a company with a role, or changes the role of an existing member.
	// Nobody can change their own role or act on roles ranked above their own.
	AddMember(ctx context.Context, companyID, addingUserID string, req dto.AddMemberRequest) (*domain.CompanyMember, error)
}

// CompanyAuthorizerSvc defines operations for company authorization
type CompanyAuthorizerSvc interface {
	// AuthorizeCapability returns apperrors.ErrForbidden unless the user's role in the company grants capability.
	AuthorizeCapability(ctx context.Context, userID, companyID string, capability domain.Capability) error
}

// CompanySvcFacade combines all company-related service interfaces
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyWriterSvc
	CompanyAuthorizerSvc
}
