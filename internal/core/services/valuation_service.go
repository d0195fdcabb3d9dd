package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/equity_management_app/internal/apperrors"
	"github.com/SscSPs/equity_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/equity_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/equity_management_app/internal/core/ports/services"
	"github.com/SscSPs/equity_management_app/internal/platform/metrics"
	"github.com/SscSPs/equity_management_app/internal/utils/equity"
)

type valuationService struct {
	BaseService
	inputs      portsrepo.ValuationInputsReader
	equity      portsrepo.EquityReader
	companyRepo portsrepo.CompanyReader
	cache       portsrepo.ValuationCache
	now         func() time.Time
}

// ValuationOption is a functional option for configuring the valuation service
type ValuationOption func(*valuationService)

// WithValuationCache serves snapshots from cache for the cache's TTL.
func WithValuationCache(cache portsrepo.ValuationCache) ValuationOption {
	return func(s *valuationService) {
		s.cache = cache
	}
}

// WithValuationAuthorizer adds the company authorizer dependency
func WithValuationAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) ValuationOption {
	return func(s *valuationService) {
		s.CompanyAuthorizer = authorizer
	}
}

// WithValuationClock overrides the clock stamped on computed snapshots.
func WithValuationClock(now func() time.Time) ValuationOption {
	return func(s *valuationService) {
		s.now = now
	}
}

// NewValuationService creates the valuation service. Without WithValuationCache every call recomputes.
func NewValuationService(
	inputs portsrepo.ValuationInputsReader,
	equityReader portsrepo.EquityReader,
	companyRepo portsrepo.CompanyReader,
	options ...ValuationOption,
) portssvc.ValuationSvcFacade {
	svc := &valuationService{
		inputs:      inputs,
		equity:      equityReader,
		companyRepo: companyRepo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ValuationSvcFacade = (*valuationService)(nil)

func (s *valuationService) GetValuation(ctx context.Context, companyID, requestingUserID string, refresh bool) (*domain.ValuationSnapshot, error) {
	if err := s.Authorize(ctx, requestingUserID, companyID, domain.CapViewEquity); err != nil {
		return nil, err
	}

	if s.cache != nil && !refresh {
		snap, ok, err := s.cache.Get(ctx, companyID)
		switch {
		case err != nil:
			metrics.RecordValuationCache(metrics.CacheError)
			s.LogWarn(ctx, err, "Valuation cache lookup failed, recomputing",
				slog.String("company_id", companyID))
		case ok:
			metrics.RecordValuationCache(metrics.CacheHit)
			snap.FromCache = true
			return snap, nil
		default:
			metrics.RecordValuationCache(metrics.CacheMiss)
		}
	} else if s.cache != nil {
		metrics.RecordValuationCache(metrics.CacheBypass)
	}

	snap, err := s.compute(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, companyID, *snap); err != nil {
			metrics.RecordValuationCache(metrics.CacheError)
			s.LogWarn(ctx, err, "Failed to cache valuation",
				slog.String("company_id", companyID))
		}
	}

	s.LogDebug(ctx, "Valuation computed",
		slog.String("company_id", companyID),
		slog.String("strategic_value", snap.StrategicCompanyValue.String()),
		slog.String("price_per_share", snap.PricePerShare.String()),
		slog.Bool("refresh", refresh))
	return snap, nil
}

func (s *valuationService) InvalidateValuation(ctx context.Context, companyID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, companyID); err != nil {
		metrics.RecordValuationCache(metrics.CacheError)
		s.LogWarn(ctx, err, "Failed to invalidate cached valuation",
			slog.String("company_id", companyID))
	}
}

// compute reads the inputs without locks. A company without a share configuration prices at zero.
func (s *valuationService) compute(ctx context.Context, companyID string) (*domain.ValuationSnapshot, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load company for valuation", slog.String("company_id", companyID))
		}
		return nil, err
	}

	assets, err := s.inputs.FetchAssets(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch assets", slog.String("company_id", companyID))
		return nil, err
	}
	liabilities, err := s.inputs.FetchLiabilitiesTotal(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch liabilities", slog.String("company_id", companyID))
		return nil, err
	}
	ipItems, err := s.inputs.FetchIP(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch IP items", slog.String("company_id", companyID))
		return nil, err
	}
	infra, err := s.inputs.FetchInfrastructure(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch infrastructure", slog.String("company_id", companyID))
		return nil, err
	}

	snap := equity.ComputeValuation(assets, liabilities, ipItems, infra)
	snap.CompanyID = companyID
	snap.CurrencyCode = company.DefaultCurrencyCode
	snap.ComputedAt = s.now().UTC()

	cfg, err := s.equity.FetchShareConfiguration(ctx, companyID)
	switch {
	case err == nil:
		snap.AuthorizedShares = cfg.AuthorizedShares
		if cfg.CurrencyCode != "" {
			snap.CurrencyCode = cfg.CurrencyCode
		}
	case errors.Is(err, apperrors.ErrNotFound):
		snap.AuthorizedShares = 0
	default:
		s.LogError(ctx, err, "Failed to fetch share configuration", slog.String("company_id", companyID))
		return nil, err
	}
	snap.PricePerShare = equity.PricePerShare(snap.StrategicCompanyValue, snap.AuthorizedShares)

	return &snap, nil
}
