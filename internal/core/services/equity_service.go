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
	"github.com/SscSPs/equity_management_app/internal/platform/metrics"
	"github.com/SscSPs/equity_management_app/internal/utils/equity"
	"github.com/SscSPs/equity_management_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultClassType = "COMMON"
)

var defaultParValue = decimal.RequireFromString("0.01")

// equityService implements the EquitySvcFacade interface
type equityService struct {
	BaseService
	store       portsrepo.EquityStore
	companyRepo portsrepo.CompanyReader
	valuation   portssvc.ValuationSvcFacade
	now         func() time.Time
}

// EquityOption is a functional option for configuring the equity service
type EquityOption func(*equityService)

// WithEquityAuthorizer adds the company authorizer dependency
func WithEquityAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) EquityOption {
	return func(s *equityService) {
		s.CompanyAuthorizer = authorizer
	}
}

// WithValuationService prices holdings and is told when the authorized share count changes.
func WithValuationService(valuation portssvc.ValuationSvcFacade) EquityOption {
	return func(s *equityService) {
		s.valuation = valuation
	}
}

// WithEquityClock overrides the clock used for audit fields and vesting.
func WithEquityClock(now func() time.Time) EquityOption {
	return func(s *equityService) {
		s.now = now
	}
}

// NewEquityService creates a new equity service with the provided options
func NewEquityService(store portsrepo.EquityStore, companyRepo portsrepo.CompanyReader, options ...EquityOption) portssvc.EquitySvcFacade {
	svc := &equityService{
		store:       store,
		companyRepo: companyRepo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.EquitySvcFacade = (*equityService)(nil)

// --- Share configuration ---

func (s *equityService) GetShareConfiguration(ctx context.Context, companyID, requestingUserID string) (*domain.ShareConfiguration, error) {
	if err := s.Authorize(ctx, requestingUserID, companyID, domain.CapViewEquity); err != nil {
		return nil, err
	}
	cfg, err := s.store.FetchShareConfiguration(ctx, companyID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to fetch share configuration", slog.String("company_id", companyID))
		return nil, err
	}
	return cfg, nil
}

func (s *equityService) SetupShareConfiguration(ctx context.Context, companyID, userID string, req dto.SetupShareConfigurationRequest) (_ *domain.ShareConfiguration, err error) {
	defer s.track("setup_share_configuration", time.Now(), &err)

	if err = s.Authorize(ctx, userID, companyID, domain.CapConfigureShares); err != nil {
		return nil, err
	}
	if err = equity.ValidateConfiguration(req.AuthorizedShares, req.IssuedShares); err != nil {
		return nil, err
	}
	parValue := req.ParValue
	if parValue.IsZero() {
		parValue = defaultParValue
	}
	if !parValue.IsPositive() {
		return nil, fmt.Errorf("%w: parValue must be positive", apperrors.ErrInvalidInput)
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to load company for share configuration", slog.String("company_id", companyID))
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if currency == "" {
		currency = company.DefaultCurrencyCode
	}
	classType := strings.ToUpper(strings.TrimSpace(req.ClassType))
	if classType == "" {
		classType = defaultClassType
	}

	now := s.now().UTC()
	cfg := domain.ShareConfiguration{
		CompanyID:        companyID,
		AuthorizedShares: req.AuthorizedShares,
		IssuedShares:     req.IssuedShares,
		ParValue:         parValue,
		ClassType:        classType,
		CurrencyCode:     currency,
		Status:           domain.StatusActive,
		AuditFields:      domain.NewAuditFields(userID, now),
	}

	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx portsrepo.EquityTx) error {
		return tx.SaveShareConfiguration(ctx, cfg)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to set up share configuration", slog.String("company_id", companyID))
		return nil, err
	}
	s.invalidateValuation(ctx, companyID)

	s.LogInfo(ctx, "Share configuration created",
		slog.String("company_id", companyID),
		slog.Int64("authorized_shares", cfg.AuthorizedShares),
		slog.Int64("issued_shares", cfg.IssuedShares))
	return &cfg, nil
}

func (s *equityService) UpdateShareConfiguration(ctx context.Context, companyID, userID string, req dto.UpdateShareConfigurationRequest) (_ *domain.ShareConfiguration, err error) {
	defer s.track("update_share_configuration", time.Now(), &err)

	if err = s.Authorize(ctx, userID, companyID, domain.CapConfigureShares); err != nil {
		return nil, err
	}
	if req.ParValue != nil && !req.ParValue.IsPositive() {
		return nil, fmt.Errorf("%w: parValue must be positive", apperrors.ErrInvalidInput)
	}
	if req.Status != nil {
		status := domain.RecordStatus(strings.ToUpper(*req.Status))
		if status != domain.StatusActive && status != domain.StatusInactive {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidInput, *req.Status)
		}
	}

	var updated domain.ShareConfiguration
	var authorizedChanged bool
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx portsrepo.EquityTx) error {
		cfg, err := tx.LockShareConfiguration(ctx, companyID)
		if err != nil {
			return err
		}
		next := *cfg
		if req.AuthorizedShares != nil {
			next.AuthorizedShares = *req.AuthorizedShares
		}
		if req.IssuedShares != nil {
			next.IssuedShares = *req.IssuedShares
		}
		if req.ParValue != nil {
			next.ParValue = *req.ParValue
		}
		if req.ClassType != nil && strings.TrimSpace(*req.ClassType) != "" {
			next.ClassType = strings.ToUpper(strings.TrimSpace(*req.ClassType))
		}
		if req.Status != nil {
			next.Status = domain.RecordStatus(strings.ToUpper(*req.Status))
		}
		if err := equity.ValidateConfiguration(next.AuthorizedShares, next.IssuedShares); err != nil {
			return err
		}
		if next.IssuedShares < cfg.IssuedShares {
			allocated, err := tx.SumActiveShares(ctx, companyID)
			if err != nil {
				return err
			}
			if allocated > next.IssuedShares {
				return fmt.Errorf("%w: issued shares %d would fall below the %d already allocated",
					apperrors.ErrInvalidConfig, next.IssuedShares, allocated)
			}
		}

		next.Touch(userID, s.now().UTC())
		if err := tx.UpdateShareConfiguration(ctx, next); err != nil {
			return err
		}
		updated = next
		authorizedChanged = next.AuthorizedShares != cfg.AuthorizedShares
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to update share configuration", slog.String("company_id", companyID))
		return nil, err
	}
	if authorizedChanged {
		s.invalidateValuation(ctx, companyID)
	}

	s.LogInfo(ctx, "Share configuration updated",
		slog.String("company_id", companyID),
		slog.Int64("authorized_shares", updated.AuthorizedShares),
		slog.Int64("issued_shares", updated.IssuedShares))
	return &updated, nil
}

// --- Allocation ---

func (s *equityService) Allocate(ctx context.Context, companyID, userID string, req dto.AllocateSharesRequest) (_ *domain.Shareholding, err error) {
	defer s.track("allocate", time.Now(), &err)

	if err = s.Authorize(ctx, userID, companyID, domain.CapAllocateShares); err != nil {
		return nil, err
	}
	if err = equity.ValidatePositiveShares("shares", req.Shares); err != nil {
		return nil, err
	}
	equityType, err := parseEquityType(req.EquityType)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	vesting, err := vestingFromRequest(req.VestingTermsRequest, now)
	if err != nil {
		return nil, err
	}
	price, err := nonNegativePrice("acquisitionPrice", req.AcquisitionPrice)
	if err != nil {
		return nil, err
	}

	var holding domain.Shareholding
	var authorized int64
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx portsrepo.EquityTx) error {
		cfg, err := lockActiveConfiguration(ctx, tx, companyID)
		if err != nil {
			return err
		}
		if _, err := tx.FindShareholderByID(ctx, companyID, req.ShareholderID); err != nil {
			return err
		}

		allocated, err := tx.SumActiveShares(ctx, companyID)
		if err != nil {
			return err
		}
		if err := equity.ValidateAllocationChange(allocated, req.Shares, cfg.IssuedShares); err != nil {
			return err
		}

		holdings, err := tx.LockShareholdings(ctx, companyID, []string{req.ShareholderID})
		if err != nil {
			return err
		}
		credit := holdingCredit{
			shares:     req.Shares,
			shareClass: req.ShareClass,
			equityType: equityType,
			vesting:    vesting,
			price:      price,
		}
		holding = s.creditHolding(holdings, cfg, req.ShareholderID, credit, now, userID)
		authorized = cfg.AuthorizedShares
		return tx.UpsertShareholding(ctx, holding)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to allocate shares",
			slog.String("company_id", companyID),
			slog.String("shareholder_id", req.ShareholderID),
			slog.Int64("shares", req.Shares))
		return nil, err
	}

	s.enrichAfterWrite(ctx, companyID, userID, authorized, &holding)
	s.LogInfo(ctx, "Shares allocated",
		slog.String("company_id", companyID),
		slog.String("shareholder_id", req.ShareholderID),
		slog.Int64("shares", req.Shares),
		slog.Int64("shares_owned", holding.SharesOwned))
	return &holding, nil
}

// --- Issuance ---

func (s *equityService) ProposeIssuance(ctx context.Context, companyID, proposerID string, req dto.ProposeIssuanceRequest) (_ *domain.ShareIssuance, err error) {
	defer s.track("propose_issuance", time.Now(), &err)

	if err = s.Authorize(ctx, proposerID, companyID, domain.CapProposeIssuance); err != nil {
		return nil, err
	}
	if err = equity.ValidatePositiveShares("shares", req.Shares); err != nil {
		return nil, err
	}
	equityType, err := parseEquityType(req.EquityType)
	if err != nil {
		return nil, err
	}
	if equityType == domain.EquityGranted && req.VestingEndDate == nil {
		return nil, fmt.Errorf("%w: granted equity requires a vesting end date", apperrors.ErrInvalidInput)
	}
	now := s.now().UTC()
	vesting, err := vestingFromRequest(req.VestingTermsRequest, now)
	if err != nil {
		return nil, err
	}
	price, err := nonNegativePrice("issuedAtPrice", req.IssuedAtPrice)
	if err != nil {
		return nil, err
	}

	var issuance domain.ShareIssuance
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx portsrepo.EquityTx) error {
		cfg, err := lockActiveConfiguration(ctx, tx, companyID)
		if err != nil {
			return err
		}
		if _, err := tx.FindShareholderByID(ctx, companyID, req.RecipientID); err != nil {
			return err
		}
		if err := equity.ValidateIssuanceCapacity(cfg.IssuedShares, req.Shares, cfg.AuthorizedShares); err != nil {
			return err
		}

		issuance = domain.ShareIssuance{
			IssuanceID:              uuid.NewString(),
			CompanyID:               companyID,
			SharesIssued:            req.Shares,
			IssuedAtPrice:           price,
			RecipientID:             req.RecipientID,
			EquityType:              equityType,
			Vesting:                 vesting,
			ApprovalStatus:          domain.ApprovalPending,
			PreviousIssuedShares:    cfg.IssuedShares,
			OwnershipDilutionImpact: equity.DilutionImpact(cfg.IssuedShares, req.Shares),
			ProposedBy:              proposerID,
			Notes:                   req.Notes,
			AuditFields:             domain.NewAuditFields(proposerID, now),
		}
		return tx.SaveIssuance(ctx, issuance)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to propose issuance",
			slog.String("company_id", companyID),
			slog.String("recipient_id", req.RecipientID),
			slog.Int64("shares", req.Shares))
		return nil, err
	}

	s.LogInfo(ctx, "Issuance proposed",
		slog.String("company_id", companyID),
		slog.String("issuance_id", issuance.IssuanceID),
		slog.Int64("shares", issuance.SharesIssued),
		slog.String("dilution", issuance.OwnershipDilutionImpact.String()))
	return &issuance, nil
}

func (s *equityService) ExecuteIssuance(ctx context.Context, companyID, issuanceID, approverID string) (_ *domain.Shareholding, err error) {
	defer s.track("execute_issuance", time.Now(), &err)

	if err = s.Authorize(ctx, approverID, companyID, domain.CapApproveIssuance); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	var holding domain.Shareholding
	var authorized int64
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx portsrepo.EquityTx) error {
		cfg, err := lockActiveConfiguration(ctx, tx, companyID)
		if err != nil {
			return err
		}
		issuance, err := tx.LockIssuance(ctx, companyID, issuanceID)
		if err != nil {
			return err
		}
		if !issuance.IsPending() {
			return fmt.Errorf("%w: issuance %s is %s", apperrors.ErrAlreadyProcessed, issuanceID, issuance.ApprovalStatus)
		}
		if issuance.ProposedBy == approverID {
			return fmt.Errorf("%w: the proposer of an issuance cannot approve it", apperrors.ErrForbidden)
		}
		if err := equity.ValidateIssuanceCapacity(cfg.IssuedShares, issuance.SharesIssued, cfg.AuthorizedShares); err != nil {
			return err
		}

		next := *cfg
		next.IssuedShares += issuance.SharesIssued
		next.Touch(approverID, now)
		if err := tx.UpdateShareConfiguration(ctx, next); err != nil {
			return err
		}

		holdings, err := tx.LockShareholdings(ctx, companyID, []string{issuance.RecipientID})
		if err != nil {
			return err
		}
		credit := holdingCredit{
			shares:     issuance.SharesIssued,
			equityType: issuance.EquityType,
			vesting:    issuance.Vesting,
			price:      issuance.IssuedAtPrice,
		}
		holding = s.creditHolding(holdings, &next, issuance.RecipientID, credit, now, approverID)
		if err := tx.UpsertShareholding(ctx, holding); err != nil {
			return err
		}

		approved := *issuance
		approved.ApprovalStatus = domain.ApprovalApproved
		approved.ApprovedBy = &approverID
		approved.ApprovedAt = &now
		approved.PreviousIssuedShares = cfg.IssuedShares
		approved.OwnershipDilutionImpact = equity.DilutionImpact(cfg.IssuedShares, issuance.SharesIssued)
		approved.Touch(approverID, now)
		authorized = next.AuthorizedShares
		return tx.UpdateIssuance(ctx, approved)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to execute issuance",
			slog.String("company_id", companyID),
			slog.String("issuance_id", issuanceID))
		return nil, err
	}

	s.enrichAfterWrite(ctx, companyID, approverID, authorized, &holding)
	s.LogInfo(ctx, "Issuance executed",
		slog.String("company_id", companyID),
		slog.String("issuance_id", issuanceID),
		slog.String("approver_id", approverID),
		slog.String("recipient_id", holding.ShareholderID))
	return &holding, nil
}

func (s *equityService) RejectIssuance(ctx context.Context, companyID, issuanceID, approverID, reason string) (_ *domain.ShareIssuance, err error) {
	defer s.track("reject_issuance", time.Now(), &err)

	if err = s.Authorize(ctx, approverID, companyID, domain.CapApproveIssuance); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", apperrors.ErrInvalidInput)
	}

	now := s.now().UTC()
	var rejected domain.ShareIssuance
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx portsrepo.EquityTx) error {
		if _, err := tx.LockShareConfiguration(ctx, companyID); err != nil {
			return err
		}
		issuance, err := tx.LockIssuance(ctx, companyID, issuanceID)
		if err != nil {
			return err
		}
		if !issuance.IsPending() {
			return fmt.Errorf("%w: issuance %s is %s", apperrors.ErrAlreadyProcessed, issuanceID, issuance.ApprovalStatus)
		}
		rejected = *issuance
		rejected.ApprovalStatus = domain.ApprovalRejected
		rejected.ApprovedBy = &approverID
		rejected.ApprovedAt = &now
		rejected.RejectionReason = reason
		rejected.Touch(approverID, now)
		return tx.UpdateIssuance(ctx, rejected)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to reject issuance",
			slog.String("company_id", companyID),
			slog.String("issuance_id", issuanceID))
		return nil, err
	}

	s.LogInfo(ctx, "Issuance rejected",
		slog.String("company_id", companyID),
		slog.String("issuance_id", issuanceID),
		slog.String("approver_id", approverID))
	return &rejected, nil
}

func (s *equityService) GetIssuance(ctx context.Context, companyID, issuanceID, requestingUserID string) (*domain.ShareIssuance, error) {
	if err := s.Authorize(ctx, requestingUserID, companyID, domain.CapViewEquity); err != nil {
		return nil, err
	}
	issuance, err := s.store.FindIssuanceByID(ctx, companyID, issuanceID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find issuance",
			slog.String("company_id", companyID),
			slog.String("issuance_id", issuanceID))
		return nil, err
	}
	return issuance, nil
}

func (s *equityService) ListIssuances(ctx context.Context, companyID, requestingUserID string, filter domain.IssuanceFilter) ([]domain.ShareIssuance, *string, error) {
	if err := s.Authorize(ctx, requestingUserID, companyID, domain.CapViewEquity); err != nil {
		return nil, nil, err
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, nil, fmt.Errorf("%w: unknown approval status %q", apperrors.ErrInvalidInput, *filter.Status)
	}
	if err := validateToken(filter.NextToken); err != nil {
		return nil, nil, err
	}
	filter.Limit = pagination.NormalizeLimit(filter.Limit)

	issuances, next, err := s.store.ListIssuances(ctx, companyID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list issuances", slog.String("company_id", companyID))
		return nil, nil, err
	}
	if issuances == nil {
		issuances = []domain.ShareIssuance{}
	}
	return issuances, next, nil
}

// --- Transfers and buybacks ---

func (s *equityService) Transfer(ctx context.Context, companyID, userID string, req dto.TransferSharesRequest) (_ *domain.TransferResult, err error) {
	defer s.track("transfer", time.Now(), &err)

	if err = s.Authorize(ctx, userID, companyID, domain.CapTransferShares); err != nil {
		return nil, err
	}
	if req.FromShareholderID == req.ToShareholderID {
		return nil, fmt.Errorf("%w: cannot transfer shares to the same shareholder", apperrors.ErrInvalidInput)
	}
	if err = equity.ValidatePositiveShares("shares", req.Shares); err != nil {
		return nil, err
	}
	transferType := domain.TransferType(strings.ToUpper(req.TransferType))
	if !transferType.IsValid() {
		return nil, fmt.Errorf("%w: unknown transfer type %q", apperrors.ErrInvalidInput, req.TransferType)
	}
	if req.PricePerShare != nil && req.PricePerShare.IsNegative() {
		return nil, fmt.Errorf("%w: pricePerShare cannot be negative", apperrors.ErrInvalidInput)
	}

	now := s.now().UTC()
	transferDate := now
	if req.TransferDate != nil {
		transferDate = req.TransferDate.UTC()
	}

	var result domain.TransferResult
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx portsrepo.EquityTx) error {
		cfg, err := lockActiveConfiguration(ctx, tx, companyID)
		if err != nil {
			return err
		}
		for _, id := range []string{req.FromShareholderID, req.ToShareholderID} {
			if _, err := tx.FindShareholderByID(ctx, companyID, id); err != nil {
				return err
			}
		}

		holdings, err := tx.LockShareholdings(ctx, companyID, []string{req.FromShareholderID, req.ToShareholderID})
		if err != nil {
			return err
		}
		from, ok := holdings[req.FromShareholderID]
		if !ok || !from.IsActive() || from.SharesOwned < req.Shares {
			return fmt.Errorf("%w: shareholder %s holds %d shares, %d requested",
				apperrors.ErrInsufficientShares, req.FromShareholderID, from.SharesOwned, req.Shares)
		}
		// Only vested shares can change hands.
		if vested := equity.VestedForHolding(from, now); vested < req.Shares {
			return fmt.Errorf("%w: shareholder %s has %d vested shares, %d requested",
				apperrors.ErrInsufficientShares, req.FromShareholderID, vested, req.Shares)
		}

		from = debitHolding(from, req.Shares, now, userID)
		credit := holdingCredit{
			shares:     req.Shares,
			shareClass: from.ShareClass,
			equityType: from.EquityType,
			acquiredAt: transferDate,
		}
		if req.PricePerShare != nil {
			credit.price = *req.PricePerShare
		}
		to := s.creditHolding(holdings, cfg, req.ToShareholderID, credit, now, userID)

		// Both rows were locked together above; the write order follows the same id order.
		for _, h := range orderedByShareholder(from, to) {
			if err := tx.UpsertShareholding(ctx, h); err != nil {
				return err
			}
		}

		transfer := domain.ShareTransfer{
			TransferID:            uuid.NewString(),
			CompanyID:             companyID,
			FromShareholderID:     req.FromShareholderID,
			ToShareholderID:       req.ToShareholderID,
			SharesTransferred:     req.Shares,
			TransferPricePerShare: req.PricePerShare,
			TransferType:          transferType,
			TransferDate:          transferDate,
			Notes:                 req.Notes,
			AuditFields:           domain.NewAuditFields(userID, now),
		}
		if err := tx.SaveTransfer(ctx, transfer); err != nil {
			return err
		}
		result = domain.TransferResult{Transfer: transfer, FromBalance: from.SharesOwned, ToBalance: to.SharesOwned}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to transfer shares",
			slog.String("company_id", companyID),
			slog.String("from_shareholder_id", req.FromShareholderID),
			slog.String("to_shareholder_id", req.ToShareholderID),
			slog.Int64("shares", req.Shares))
		return nil, err
	}

	s.LogInfo(ctx, "Shares transferred",
		slog.String("company_id", companyID),
		slog.String("transfer_id", result.Transfer.TransferID),
		slog.Int64("shares", req.Shares))
	return &result, nil
}

func (s *equityService) ListTransfers(ctx context.Context, companyID, requestingUserID string, filter domain.TransferFilter) ([]domain.ShareTransfer, *string, error) {
	if err := s.Authorize(ctx, requestingUserID, companyID, domain.CapViewEquity); err != nil {
		return nil, nil, err
	}
	if filter.TransferType != nil && !filter.TransferType.IsValid() {
		return nil, nil, fmt.Errorf("%w: unknown transfer type %q", apperrors.ErrInvalidInput, *filter.TransferType)
	}
	if err := validateToken(filter.NextToken); err != nil {
		return nil, nil, err
	}
	filter.Limit = pagination.NormalizeLimit(filter.Limit)

	transfers, next, err := s.store.ListTransfers(ctx, companyID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transfers", slog.String("company_id", companyID))
		return nil, nil, err
	}
	if transfers == nil {
		transfers = []domain.ShareTransfer{}
	}
	return transfers, next, nil
}

// Buyback repurchases shares from a holder and retires them, so IssuedShares drops by the same amount.
func (s *equityService) Buyback(ctx context.Context, companyID, userID string, req dto.BuybackSharesRequest) (_ *domain.ShareBuyback, _ *domain.Shareholding, err error) {
	defer s.track("buyback", time.Now(), &err)

	if err = s.Authorize(ctx, userID, companyID, domain.CapBuybackShares); err != nil {
		return nil, nil, err
	}
	if err = equity.ValidatePositiveShares("shares", req.Shares); err != nil {
		return nil, nil, err
	}
	if req.PricePerShare.IsNegative() {
		return nil, nil, fmt.Errorf("%w: pricePerShare cannot be negative", apperrors.ErrInvalidInput)
	}

	now := s.now().UTC()
	var buyback domain.ShareBuyback
	var holding domain.Shareholding
	var authorized int64
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx portsrepo.EquityTx) error {
		cfg, err := lockActiveConfiguration(ctx, tx, companyID)
		if err != nil {
			return err
		}
		if _, err := tx.FindShareholderByID(ctx, companyID, req.ShareholderID); err != nil {
			return err
		}
		holdings, err := tx.LockShareholdings(ctx, companyID, []string{req.ShareholderID})
		if err != nil {
			return err
		}
		current, ok := holdings[req.ShareholderID]
		if !ok || !current.IsActive() || current.SharesOwned < req.Shares {
			return fmt.Errorf("%w: shareholder %s holds %d shares, %d requested",
				apperrors.ErrInsufficientShares, req.ShareholderID, current.SharesOwned, req.Shares)
		}
		if cfg.IssuedShares-req.Shares <= 0 {
			return fmt.Errorf("%w: a buyback cannot retire every issued share", apperrors.ErrInvalidConfig)
		}

		next := *cfg
		next.IssuedShares -= req.Shares
		next.Touch(userID, now)
		if err := equity.ValidateConfiguration(next.AuthorizedShares, next.IssuedShares); err != nil {
			return err
		}
		if err := tx.UpdateShareConfiguration(ctx, next); err != nil {
			return err
		}

		holding = debitHolding(current, req.Shares, now, userID)
		if err := tx.UpsertShareholding(ctx, holding); err != nil {
			return err
		}

		buyback = domain.ShareBuyback{
			BuybackID:          uuid.NewString(),
			CompanyID:          companyID,
			ShareholderID:      req.ShareholderID,
			SharesRepurchased:  req.Shares,
			PricePerShare:      req.PricePerShare,
			TotalAmount:        req.PricePerShare.Mul(decimal.NewFromInt(req.Shares)),
			IssuedSharesBefore: cfg.IssuedShares,
			IssuedSharesAfter:  next.IssuedShares,
			AuditFields:        domain.NewAuditFields(userID, now),
		}
		authorized = next.AuthorizedShares
		return tx.SaveBuyback(ctx, buyback)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to buy back shares",
			slog.String("company_id", companyID),
			slog.String("shareholder_id", req.ShareholderID),
			slog.Int64("shares", req.Shares))
		return nil, nil, err
	}

	s.enrichAfterWrite(ctx, companyID, userID, authorized, &holding)
	s.LogInfo(ctx, "Shares bought back",
		slog.String("company_id", companyID),
		slog.String("buyback_id", buyback.BuybackID),
		slog.Int64("shares", req.Shares),
		slog.Int64("issued_shares_after", buyback.IssuedSharesAfter))
	return &buyback, &holding, nil
}

// --- Holdings ---

func (s *equityService) GetCapTable(ctx context.Context, companyID, requestingUserID string) (*domain.CapTable, error) {
	if err := s.Authorize(ctx, requestingUserID, companyID, domain.CapViewEquity); err != nil {
		return nil, err
	}
	cfg, err := s.store.FetchShareConfiguration(ctx, companyID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to fetch share configuration", slog.String("company_id", companyID))
		return nil, err
	}
	holdings, err := s.store.FetchActiveShareholdings(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch shareholdings", slog.String("company_id", companyID))
		return nil, err
	}
	price, err := s.pricePerShare(ctx, companyID, requestingUserID)
	if err != nil {
		return nil, err
	}

	asOf := s.now().UTC()
	if holdings == nil {
		holdings = []domain.Shareholding{}
	}
	for i := range holdings {
		holdings[i].VestedShares = equity.VestedForHolding(holdings[i], asOf)
		equity.EnrichHolding(&holdings[i], cfg.AuthorizedShares, price)
	}

	return &domain.CapTable{
		CompanyID:        companyID,
		AuthorizedShares: cfg.AuthorizedShares,
		IssuedShares:     cfg.IssuedShares,
		AllocatedShares:  equity.SumActive(holdings),
		PricePerShare:    price,
		CurrencyCode:     cfg.CurrencyCode,
		Holdings:         holdings,
		AsOf:             asOf,
	}, nil
}

func (s *equityService) GetShareholding(ctx context.Context, companyID, shareholderID, requestingUserID string) (*domain.Shareholding, error) {
	if err := s.Authorize(ctx, requestingUserID, companyID, domain.CapViewEquity); err != nil {
		return nil, err
	}
	holding, err := s.store.FindShareholding(ctx, companyID, shareholderID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find shareholding",
			slog.String("company_id", companyID),
			slog.String("shareholder_id", shareholderID))
		return nil, err
	}
	cfg, err := s.store.FetchShareConfiguration(ctx, companyID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to fetch share configuration", slog.String("company_id", companyID))
		return nil, err
	}
	price, err := s.pricePerShare(ctx, companyID, requestingUserID)
	if err != nil {
		return nil, err
	}

	holding.VestedShares = equity.VestedForHolding(*holding, s.now().UTC())
	equity.EnrichHolding(holding, cfg.AuthorizedShares, price)
	return holding, nil
}

func (s *equityService) GetVesting(ctx context.Context, companyID, shareholderID, requestingUserID string, asOf time.Time) (*domain.VestingStatus, error) {
	if err := s.Authorize(ctx, requestingUserID, companyID, domain.CapViewEquity); err != nil {
		return nil, err
	}
	holding, err := s.store.FindShareholding(ctx, companyID, shareholderID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find shareholding",
			slog.String("company_id", companyID),
			slog.String("shareholder_id", shareholderID))
		return nil, err
	}
	if asOf.IsZero() {
		asOf = s.now()
	}
	status := equity.VestingStatusFor(*holding, asOf.UTC())
	return &status, nil
}

// --- helpers ---

// holdingCredit describes shares being added to a holding.
type holdingCredit struct {
	shares     int64
	shareClass string
	equityType domain.EquityType
	vesting    domain.VestingTerms
	price      decimal.Decimal
	acquiredAt time.Time // zero means now
}

// creditHolding adds shares to the shareholder's holding, creating it when absent and
// reactivating it when it had been emptied. Shares already vested stay vested.
func (s *equityService) creditHolding(existing map[string]domain.Shareholding, cfg *domain.ShareConfiguration, shareholderID string, c holdingCredit, now time.Time, userID string) domain.Shareholding {
	acquiredAt := c.acquiredAt
	if acquiredAt.IsZero() {
		acquiredAt = now
	}

	h, ok := existing[shareholderID]
	if !ok {
		h = domain.Shareholding{
			ShareholdingID:   uuid.NewString(),
			CompanyID:        cfg.CompanyID,
			ShareholderID:    shareholderID,
			ShareClass:       cfg.ClassType,
			EquityType:       c.equityType,
			AcquisitionDate:  acquiredAt,
			AcquisitionPrice: c.price,
			AuditFields:      domain.NewAuditFields(userID, now),
		}
	} else if !h.IsActive() || h.SharesOwned == 0 {
		h.EquityType = c.equityType
		h.AcquisitionDate = acquiredAt
		h.AcquisitionPrice = c.price
		h.Vesting = domain.VestingTerms{}
		h.VestedBaseline = 0
	}

	if class := strings.ToUpper(strings.TrimSpace(c.shareClass)); class != "" {
		h.ShareClass = class
	}
	h = equity.AddShares(h, c.shares, c.vesting, now)
	h.Status = domain.StatusActive
	h.Touch(userID, now)
	return h
}

// debitHolding removes shares from a holding and deactivates it once empty.
func debitHolding(h domain.Shareholding, shares int64, now time.Time, userID string) domain.Shareholding {
	h = equity.RemoveShares(h, shares, now)
	if h.SharesOwned == 0 {
		h.Status = domain.StatusInactive
	}
	h.Touch(userID, now)
	return h
}

func orderedByShareholder(a, b domain.Shareholding) []domain.Shareholding {
	if a.ShareholderID > b.ShareholderID {
		a, b = b, a
	}
	return []domain.Shareholding{a, b}
}

// lockActiveConfiguration locks the share configuration and rejects changes against a deactivated register.
func lockActiveConfiguration(ctx context.Context, tx portsrepo.EquityTx, companyID string) (*domain.ShareConfiguration, error) {
	cfg, err := tx.LockShareConfiguration(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if cfg.Status != domain.StatusActive {
		return nil, fmt.Errorf("%w: share configuration of company %s is %s", apperrors.ErrInvalidConfig, companyID, cfg.Status)
	}
	return cfg, nil
}

func parseEquityType(raw string) (domain.EquityType, error) {
	t := domain.EquityType(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: unknown equity type %q", apperrors.ErrInvalidInput, raw)
	}
	return t, nil
}

// vestingFromRequest validates vesting terms. A missing start date defaults to now when an end date is given.
func vestingFromRequest(req dto.VestingTermsRequest, now time.Time) (domain.VestingTerms, error) {
	terms := req.ToDomain()
	terms.Schedule = domain.VestingSchedule(strings.ToUpper(string(terms.Schedule)))
	if !terms.Schedule.IsValid() {
		return domain.VestingTerms{}, fmt.Errorf("%w: unknown vesting schedule %q", apperrors.ErrInvalidInput, req.VestingSchedule)
	}
	if terms.CliffPercentage.IsNegative() || terms.CliffPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return domain.VestingTerms{}, fmt.Errorf("%w: cliffPercentage must be between 0 and 100", apperrors.ErrInvalidInput)
	}

	switch {
	case terms.StartDate == nil && terms.EndDate == nil:
		return domain.VestingTerms{}, nil
	case terms.EndDate == nil:
		return domain.VestingTerms{}, fmt.Errorf("%w: vestingStartDate requires vestingEndDate", apperrors.ErrInvalidInput)
	case terms.StartDate == nil:
		start := now
		terms.StartDate = &start
	}
	start, end := terms.StartDate.UTC(), terms.EndDate.UTC()
	if !end.After(start) {
		return domain.VestingTerms{}, fmt.Errorf("%w: vestingEndDate must be after vestingStartDate", apperrors.ErrInvalidInput)
	}
	terms.StartDate, terms.EndDate = &start, &end
	if terms.Schedule == "" {
		terms.Schedule = domain.VestingLinear
	}
	return terms, nil
}

func nonNegativePrice(field string, price *decimal.Decimal) (decimal.Decimal, error) {
	if price == nil {
		return decimal.Zero, nil
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s cannot be negative", apperrors.ErrInvalidInput, field)
	}
	return *price, nil
}

func validateToken(token *string) error {
	if token == nil || *token == "" {
		return nil
	}
	if _, _, err := pagination.DecodeToken(*token); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return nil
}

// pricePerShare reads the (possibly cached) valuation price. Without a valuation service holdings are valued at zero.
func (s *equityService) pricePerShare(ctx context.Context, companyID, userID string) (decimal.Decimal, error) {
	if s.valuation == nil {
		return decimal.Zero, nil
	}
	snap, err := s.valuation.GetValuation(ctx, companyID, userID, false)
	if err != nil {
		return decimal.Zero, err
	}
	return snap.PricePerShare, nil
}

// enrichAfterWrite fills ownership and value on a committed holding. A pricing failure leaves value at zero.
func (s *equityService) enrichAfterWrite(ctx context.Context, companyID, userID string, authorized int64, h *domain.Shareholding) {
	price, err := s.pricePerShare(ctx, companyID, userID)
	if err != nil {
		s.LogWarn(ctx, err, "Could not price holding after write",
			slog.String("company_id", companyID),
			slog.String("shareholder_id", h.ShareholderID))
	}
	equity.EnrichHolding(h, authorized, price)
}

func (s *equityService) invalidateValuation(ctx context.Context, companyID string) {
	if s.valuation != nil {
		s.valuation.InvalidateValuation(ctx, companyID)
	}
}

// logFailure logs expected business outcomes at warn and everything else at error.
func (s *equityService) logFailure(ctx context.Context, err error, msg string, attrs ...any) {
	switch apperrors.Kind(err) {
	case "STORE_UNAVAILABLE", "INTERNAL":
		s.LogError(ctx, err, msg, attrs...)
	default:
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, msg, append(attrs, slog.String("error", err.Error()))...)
			return
		}
		s.LogWarn(ctx, err, msg, attrs...)
	}
}

func (s *equityService) track(operation string, start time.Time, err *error) {
	metrics.RecordEquityOperation(operation, *err, time.Since(start))
}
