package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/equity_management_app/internal/apperrors"
	"github.com/SscSPs/equity_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/equity_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/equity_management_app/internal/core/ports/services"
	"github.com/SscSPs/equity_management_app/internal/dto"
	"github.com/google/uuid"
)

// companyService implements the CompanySvcFacade interface
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new company service. The service is its own authorizer.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	svc := &companyService{companyRepo: companyRepo}
	svc.CompanyAuthorizer = svc
	return svc
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// GetCompany retrieves a company the requesting user can view
func (s *companyService) GetCompany(ctx context.Context, companyID, requestingUserID string) (*domain.Company, error) {
	if err := s.Authorize(ctx, requestingUserID, companyID, domain.CapViewEquity); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find company by ID",
				slog.String("company_id", companyID))
		}
		return nil, err
	}
	return company, nil
}

// ListMembers retrieves every member of a company
func (s *companyService) ListMembers(ctx context.Context, companyID, requestingUserID string) ([]domain.CompanyMember, error) {
	if err := s.Authorize(ctx, requestingUserID, companyID, domain.CapViewEquity); err != nil {
		return nil, err
	}

	members, err := s.companyRepo.ListMembers(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list company members",
			slog.String("company_id", companyID))
		return nil, err
	}
	if members == nil {
		return []domain.CompanyMember{}, nil
	}
	return members, nil
}

// CreateCompany creates a company and makes the creator its founder in the same write
func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: company name is required", apperrors.ErrInvalidInput)
	}

	now := time.Now().UTC()
	company := domain.Company{
		CompanyID:           uuid.NewString(),
		Name:                name,
		Description:         req.Description,
		DefaultCurrencyCode: strings.ToUpper(req.DefaultCurrencyCode),
		IsActive:            true,
		AuditFields:         domain.NewAuditFields(creatorUserID, now),
	}
	founder := domain.CompanyMember{
		UserID:    creatorUserID,
		CompanyID: company.CompanyID,
		Role:      domain.RoleFounder,
		JoinedAt:  now,
	}

	if err := s.companyRepo.SaveCompany(ctx, company, founder); err != nil {
		s.LogError(ctx, err, "Failed to save company",
			slog.String("company_id", company.CompanyID))
		return nil, err
	}

	s.LogInfo(ctx, "Company created successfully",
		slog.String("company_id", company.CompanyID),
		slog.String("creator_id", creatorUserID))
	return &company, nil
}

// AddMember adds a user to a company, or changes the role of an existing member
func (s *companyService) AddMember(ctx context.Context, companyID, addingUserID string, req dto.AddMemberRequest) (*domain.CompanyMember, error) {
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, fmt.Errorf("%w: userID is required", apperrors.ErrInvalidInput)
	}

	adder, err := s.findMembership(ctx, addingUserID, companyID)
	if err != nil {
		return nil, err
	}
	if !domain.Can(adder.Role, domain.CapManageMembers) {
		return nil, fmt.Errorf("%w: role %s cannot manage members", apperrors.ErrForbidden, adder.Role)
	}
	if req.UserID == addingUserID {
		return nil, fmt.Errorf("%w: members cannot change their own role", apperrors.ErrForbidden)
	}
	if role.Outranks(adder.Role) {
		return nil, fmt.Errorf("%w: role %s cannot grant %s", apperrors.ErrForbidden, adder.Role, role)
	}
	existing, err := s.companyRepo.FindMember(ctx, req.UserID, companyID)
	switch {
	case err == nil:
		if existing.Role.Outranks(adder.Role) {
			return nil, fmt.Errorf("%w: role %s cannot change a %s", apperrors.ErrForbidden, adder.Role, existing.Role)
		}
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to look up company membership",
			slog.String("user_id", req.UserID),
			slog.String("company_id", companyID))
		return nil, err
	}

	member := domain.CompanyMember{
		UserID:    req.UserID,
		CompanyID: companyID,
		Role:      role,
		JoinedAt:  time.Now().UTC(),
	}
	if err := s.companyRepo.AddMember(ctx, member); err != nil {
		s.LogError(ctx, err, "Failed to add member to company",
			slog.String("company_id", companyID),
			slog.String("target_user_id", req.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "Member added to company",
		slog.String("company_id", companyID),
		slog.String("adding_user_id", addingUserID),
		slog.String("target_user_id", req.UserID),
		slog.String("role", string(role)))
	return &member, nil
}

// AuthorizeCapability implements portssvc.CompanyAuthorizerSvc
func (s *companyService) AuthorizeCapability(ctx context.Context, userID, companyID string, capability domain.Capability) error {
	member, err := s.findMembership(ctx, userID, companyID)
	if err != nil {
		return err
	}
	if !domain.Can(member.Role, capability) {
		s.LogDebug(ctx, "Capability denied",
			slog.String("user_id", userID),
			slog.String("company_id", companyID),
			slog.String("role", string(member.Role)),
			slog.String("capability", string(capability)))
		return fmt.Errorf("%w: role %s lacks %s", apperrors.ErrForbidden, member.Role, capability)
	}
	return nil
}

// findMembership maps a missing membership to ErrForbidden so non-members learn nothing about the company.
func (s *companyService) findMembership(ctx context.Context, userID, companyID string) (*domain.CompanyMember, error) {
	member, err := s.companyRepo.FindMember(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user is not a member of company %s", apperrors.ErrForbidden, companyID)
		}
		s.LogError(ctx, err, "Failed to look up company membership",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return nil, err
	}
	return member, nil
}
