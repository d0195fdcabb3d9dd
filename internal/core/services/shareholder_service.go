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
	"github.com/SscSPs/equity_management_app/internal/utils/pagination"
	"github.com/google/uuid"
)

type shareholderService struct {
	BaseService
	shareholderRepo portsrepo.ShareholderRepositoryFacade
}

// NewShareholderService creates a shareholder service guarded by authorizer.
func NewShareholderService(repo portsrepo.ShareholderRepositoryFacade, authorizer portssvc.CompanyAuthorizerSvc) portssvc.ShareholderSvcFacade {
	return &shareholderService{
		BaseService:     BaseService{CompanyAuthorizer: authorizer},
		shareholderRepo: repo,
	}
}

var _ portssvc.ShareholderSvcFacade = (*shareholderService)(nil)

func (s *shareholderService) CreateShareholder(ctx context.Context, companyID, creatorUserID string, req dto.CreateShareholderRequest) (*domain.Shareholder, error) {
	if err := s.Authorize(ctx, creatorUserID, companyID, domain.CapManageShareholders); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: shareholder name is required", apperrors.ErrInvalidInput)
	}
	holderType := domain.HolderType(strings.ToUpper(req.HolderType))
	if !holderType.IsValid() {
		return nil, fmt.Errorf("%w: unknown holder type %q", apperrors.ErrInvalidInput, req.HolderType)
	}

	now := time.Now().UTC()
	shareholder := domain.Shareholder{
		ShareholderID: uuid.NewString(),
		CompanyID:     companyID,
		UserID:        req.UserID,
		Name:          name,
		Email:         strings.TrimSpace(req.Email),
		HolderType:    holderType,
		Status:        domain.StatusActive,
		AuditFields:   domain.NewAuditFields(creatorUserID, now),
	}

	if err := s.shareholderRepo.SaveShareholder(ctx, shareholder); err != nil {
		s.LogError(ctx, err, "Failed to save shareholder",
			slog.String("company_id", companyID),
			slog.String("shareholder_id", shareholder.ShareholderID))
		return nil, err
	}

	s.LogInfo(ctx, "Shareholder created",
		slog.String("company_id", companyID),
		slog.String("shareholder_id", shareholder.ShareholderID),
		slog.String("holder_type", string(holderType)))
	return &shareholder, nil
}

func (s *shareholderService) GetShareholder(ctx context.Context, companyID, shareholderID, requestingUserID string) (*domain.Shareholder, error) {
	if err := s.Authorize(ctx, requestingUserID, companyID, domain.CapViewEquity); err != nil {
		return nil, err
	}

	shareholder, err := s.shareholderRepo.FindShareholderByID(ctx, companyID, shareholderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find shareholder",
				slog.String("company_id", companyID),
				slog.String("shareholder_id", shareholderID))
		}
		return nil, err
	}
	return shareholder, nil
}

func (s *shareholderService) ListShareholders(ctx context.Context, companyID, requestingUserID string, limit, offset int) ([]domain.Shareholder, error) {
	if err := s.Authorize(ctx, requestingUserID, companyID, domain.CapViewEquity); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}

	shareholders, err := s.shareholderRepo.ListShareholders(ctx, companyID, pagination.NormalizeLimit(limit), offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list shareholders",
			slog.String("company_id", companyID))
		return nil, err
	}
	if shareholders == nil {
		return []domain.Shareholder{}, nil
	}
	return shareholders, nil
}
