// Package memory is an in-process ledger store. Transactions are serialized by a single lock
// and applied to a copy of the state that replaces the live state only on commit.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"

	"github.com/SscSPs/equity_management_app/internal/apperrors"
	"github.com/SscSPs/equity_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/equity_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/equity_management_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type state struct {
	companies    map[string]domain.Company
	members      map[string]domain.CompanyMember // companyID|userID
	shareholders map[string]domain.Shareholder   // companyID|shareholderID
	configs      map[string]domain.ShareConfiguration
	holdings     map[string]domain.Shareholding // companyID|shareholderID
	issuances    map[string]domain.ShareIssuance
	transfers    map[string]domain.ShareTransfer
	buybacks     map[string]domain.ShareBuyback

	assets      map[string][]domain.Asset
	ipItems     map[string][]domain.IPItem
	infra       map[string][]domain.InfrastructureItem
	liabilities map[string]decimal.Decimal
}

func newState() *state {
	return &state{
		companies:    map[string]domain.Company{},
		members:      map[string]domain.CompanyMember{},
		shareholders: map[string]domain.Shareholder{},
		configs:      map[string]domain.ShareConfiguration{},
		holdings:     map[string]domain.Shareholding{},
		issuances:    map[string]domain.ShareIssuance{},
		transfers:    map[string]domain.ShareTransfer{},
		buybacks:     map[string]domain.ShareBuyback{},
		assets:       map[string][]domain.Asset{},
		ipItems:      map[string][]domain.IPItem{},
		infra:        map[string][]domain.InfrastructureItem{},
		liabilities:  map[string]decimal.Decimal{},
	}
}

// clone copies the ledger tables a transaction can write. Valuation inputs are shared.
func (st *state) clone() *state {
	c := *st
	c.companies = maps.Clone(st.companies)
	c.members = maps.Clone(st.members)
	c.shareholders = maps.Clone(st.shareholders)
	c.configs = maps.Clone(st.configs)
	c.holdings = maps.Clone(st.holdings)
	c.issuances = maps.Clone(st.issuances)
	c.transfers = maps.Clone(st.transfers)
	c.buybacks = maps.Clone(st.buybacks)
	return &c
}

func key(companyID, id string) string {
	return companyID + "|" + id
}

// Store implements every repository port in memory.
type Store struct {
	mu sync.RWMutex
	st *state
}

var (
	_ portsrepo.EquityStore                 = (*Store)(nil)
	_ portsrepo.ValuationInputsReader       = (*Store)(nil)
	_ portsrepo.ShareholderRepositoryFacade = (*Store)(nil)
	_ portsrepo.CompanyRepositoryFacade     = (*Store)(nil)
)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Provider exposes the store through every repository port.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		EquityStore:     s,
		ValuationInputs: s,
		ShareholderRepo: s,
		CompanyRepo:     s,
	}
}

func checkCtx(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Store) read(ctx context.Context, fn func(st *state) error) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

// WithTransaction runs fn against a private copy of the state and publishes it if fn succeeds.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx portsrepo.EquityTx) error) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{st: s.st.clone()}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.st = tx.st
	return nil
}

// --- EquityReader ---

func (s *Store) FetchShareConfiguration(ctx context.Context, companyID string) (*domain.ShareConfiguration, error) {
	var out *domain.ShareConfiguration
	err := s.read(ctx, func(st *state) error {
		cfg, err := st.config(companyID)
		out = cfg
		return err
	})
	return out, err
}

func (s *Store) FetchActiveShareholdings(ctx context.Context, companyID string) ([]domain.Shareholding, error) {
	var out []domain.Shareholding
	err := s.read(ctx, func(st *state) error {
		for _, h := range st.holdings {
			if h.CompanyID == companyID && h.IsActive() {
				out = append(out, h)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ShareholderID < out[j].ShareholderID })
		return nil
	})
	return out, err
}

func (s *Store) FindShareholding(ctx context.Context, companyID, shareholderID string) (*domain.Shareholding, error) {
	var out *domain.Shareholding
	err := s.read(ctx, func(st *state) error {
		h, ok := st.holdings[key(companyID, shareholderID)]
		if !ok {
			return fmt.Errorf("%w: shareholding of shareholder %s", apperrors.ErrNotFound, shareholderID)
		}
		out = &h
		return nil
	})
	return out, err
}

func (s *Store) FindIssuanceByID(ctx context.Context, companyID, issuanceID string) (*domain.ShareIssuance, error) {
	var out *domain.ShareIssuance
	err := s.read(ctx, func(st *state) error {
		i, err := st.issuance(companyID, issuanceID)
		out = i
		return err
	})
	return out, err
}

func (s *Store) ListIssuances(ctx context.Context, companyID string, filter domain.IssuanceFilter) ([]domain.ShareIssuance, *string, error) {
	var rows []domain.ShareIssuance
	err := s.read(ctx, func(st *state) error {
		for _, i := range st.issuances {
			if i.CompanyID != companyID {
				continue
			}
			if filter.Status != nil && i.ApprovalStatus != *filter.Status {
				continue
			}
			if filter.RecipientID != nil && i.RecipientID != *filter.RecipientID {
				continue
			}
			rows = append(rows, i)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return page(rows, filter.Limit, filter.NextToken, func(i domain.ShareIssuance) (string, domain.AuditFields) {
		return i.IssuanceID, i.AuditFields
	})
}

func (s *Store) ListTransfers(ctx context.Context, companyID string, filter domain.TransferFilter) ([]domain.ShareTransfer, *string, error) {
	var rows []domain.ShareTransfer
	err := s.read(ctx, func(st *state) error {
		for _, t := range st.transfers {
			if t.CompanyID != companyID {
				continue
			}
			if filter.ShareholderID != nil && t.FromShareholderID != *filter.ShareholderID && t.ToShareholderID != *filter.ShareholderID {
				continue
			}
			if filter.TransferType != nil && t.TransferType != *filter.TransferType {
				continue
			}
			rows = append(rows, t)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return page(rows, filter.Limit, filter.NextToken, func(t domain.ShareTransfer) (string, domain.AuditFields) {
		return t.TransferID, t.AuditFields
	})
}

// page orders rows by (created_at DESC, id DESC) and cuts the page after nextToken.
func page[T any](rows []T, limit int, nextToken *string, keyOf func(T) (string, domain.AuditFields)) ([]T, *string, error) {
	sort.Slice(rows, func(i, j int) bool {
		idI, aI := keyOf(rows[i])
		idJ, aJ := keyOf(rows[j])
		if !aI.CreatedAt.Equal(aJ.CreatedAt) {
			return aI.CreatedAt.After(aJ.CreatedAt)
		}
		return idI > idJ
	})

	if nextToken != nil && *nextToken != "" {
		after, afterID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		start := len(rows)
		for i, r := range rows {
			id, a := keyOf(r)
			if a.CreatedAt.Before(after) || (a.CreatedAt.Equal(after) && id < afterID) {
				start = i
				break
			}
		}
		rows = rows[start:]
	}

	limit = pagination.NormalizeLimit(limit)
	if len(rows) <= limit {
		return rows, nil, nil
	}
	rows = rows[:limit]
	id, a := keyOf(rows[limit-1])
	token := pagination.EncodeToken(a.CreatedAt, id)
	return rows, &token, nil
}

// --- EquityTx ---

type memTx struct {
	st *state
}

var _ portsrepo.EquityTx = (*memTx)(nil)

func (st *state) config(companyID string) (*domain.ShareConfiguration, error) {
	cfg, ok := st.configs[companyID]
	if !ok {
		return nil, fmt.Errorf("%w: share configuration of company %s", apperrors.ErrNotFound, companyID)
	}
	return &cfg, nil
}

func (st *state) issuance(companyID, issuanceID string) (*domain.ShareIssuance, error) {
	i, ok := st.issuances[issuanceID]
	if !ok || i.CompanyID != companyID {
		return nil, fmt.Errorf("%w: issuance %s", apperrors.ErrNotFound, issuanceID)
	}
	return &i, nil
}

func (st *state) shareholder(companyID, shareholderID string) (*domain.Shareholder, error) {
	sh, ok := st.shareholders[key(companyID, shareholderID)]
	if !ok {
		return nil, fmt.Errorf("%w: shareholder %s", apperrors.ErrNotFound, shareholderID)
	}
	return &sh, nil
}

func (tx *memTx) LockShareConfiguration(_ context.Context, companyID string) (*domain.ShareConfiguration, error) {
	return tx.st.config(companyID)
}

func (tx *memTx) SumActiveShares(_ context.Context, companyID string) (int64, error) {
	var total int64
	for _, h := range tx.st.holdings {
		if h.CompanyID == companyID && h.IsActive() {
			total += h.SharesOwned
		}
	}
	return total, nil
}

func (tx *memTx) LockShareholdings(_ context.Context, companyID string, shareholderIDs []string) (map[string]domain.Shareholding, error) {
	out := make(map[string]domain.Shareholding, len(shareholderIDs))
	for _, id := range shareholderIDs {
		if h, ok := tx.st.holdings[key(companyID, id)]; ok {
			out[id] = h
		}
	}
	return out, nil
}

func (tx *memTx) FindShareholderByID(_ context.Context, companyID, shareholderID string) (*domain.Shareholder, error) {
	return tx.st.shareholder(companyID, shareholderID)
}

func (tx *memTx) LockIssuance(_ context.Context, companyID, issuanceID string) (*domain.ShareIssuance, error) {
	return tx.st.issuance(companyID, issuanceID)
}

func (tx *memTx) SaveShareConfiguration(_ context.Context, cfg domain.ShareConfiguration) error {
	if _, ok := tx.st.configs[cfg.CompanyID]; ok {
		return fmt.Errorf("%w: share configuration of company %s", apperrors.ErrDuplicate, cfg.CompanyID)
	}
	if _, ok := tx.st.companies[cfg.CompanyID]; !ok {
		return fmt.Errorf("%w: company %s", apperrors.ErrNotFound, cfg.CompanyID)
	}
	tx.st.configs[cfg.CompanyID] = cfg
	return nil
}

func (tx *memTx) UpdateShareConfiguration(_ context.Context, cfg domain.ShareConfiguration) error {
	if _, ok := tx.st.configs[cfg.CompanyID]; !ok {
		return fmt.Errorf("%w: share configuration of company %s", apperrors.ErrNotFound, cfg.CompanyID)
	}
	// Mirrors the CHECK constraints of the SQL schema.
	if cfg.AuthorizedShares <= 0 || cfg.IssuedShares <= 0 || cfg.IssuedShares > cfg.AuthorizedShares {
		return fmt.Errorf("%w: authorized %d, issued %d", apperrors.ErrInvalidConfig, cfg.AuthorizedShares, cfg.IssuedShares)
	}
	tx.st.configs[cfg.CompanyID] = cfg
	return nil
}

func (tx *memTx) UpsertShareholding(_ context.Context, h domain.Shareholding) error {
	if h.SharesOwned < 0 || h.VestedShares < 0 || h.VestedShares > h.SharesOwned ||
		h.VestedBaseline < 0 || h.VestedBaseline > h.SharesOwned {
		return fmt.Errorf("%w: holding of %s would hold %d shares (%d vested)", apperrors.ErrInvalidInput, h.ShareholderID, h.SharesOwned, h.VestedShares)
	}
	h.OwnershipPercentage = decimal.Zero
	h.ShareValue = decimal.Zero
	tx.st.holdings[key(h.CompanyID, h.ShareholderID)] = h
	return nil
}

func (tx *memTx) SaveIssuance(_ context.Context, issuance domain.ShareIssuance) error {
	if _, ok := tx.st.issuances[issuance.IssuanceID]; ok {
		return fmt.Errorf("%w: issuance %s", apperrors.ErrDuplicate, issuance.IssuanceID)
	}
	tx.st.issuances[issuance.IssuanceID] = issuance
	return nil
}

func (tx *memTx) UpdateIssuance(_ context.Context, issuance domain.ShareIssuance) error {
	if _, err := tx.st.issuance(issuance.CompanyID, issuance.IssuanceID); err != nil {
		return err
	}
	tx.st.issuances[issuance.IssuanceID] = issuance
	return nil
}

func (tx *memTx) SaveTransfer(_ context.Context, transfer domain.ShareTransfer) error {
	tx.st.transfers[transfer.TransferID] = transfer
	return nil
}

func (tx *memTx) SaveBuyback(_ context.Context, buyback domain.ShareBuyback) error {
	tx.st.buybacks[buyback.BuybackID] = buyback
	return nil
}

// --- Shareholders ---

func (s *Store) FindShareholderByID(ctx context.Context, companyID, shareholderID string) (*domain.Shareholder, error) {
	var out *domain.Shareholder
	err := s.read(ctx, func(st *state) error {
		sh, err := st.shareholder(companyID, shareholderID)
		out = sh
		return err
	})
	return out, err
}

func (s *Store) ListShareholders(ctx context.Context, companyID string, limit, offset int) ([]domain.Shareholder, error) {
	var out []domain.Shareholder
	err := s.read(ctx, func(st *state) error {
		for _, sh := range st.shareholders {
			if sh.CompanyID == companyID {
				out = append(out, sh)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		}
		return out[i].ShareholderID < out[j].ShareholderID
	})
	if offset >= len(out) {
		return []domain.Shareholder{}, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) SaveShareholder(ctx context.Context, sh domain.Shareholder) error {
	return s.write(ctx, func(st *state) error {
		if _, ok := st.companies[sh.CompanyID]; !ok {
			return fmt.Errorf("%w: company %s", apperrors.ErrNotFound, sh.CompanyID)
		}
		k := key(sh.CompanyID, sh.ShareholderID)
		if _, ok := st.shareholders[k]; ok {
			return fmt.Errorf("%w: shareholder %s", apperrors.ErrDuplicate, sh.ShareholderID)
		}
		st.shareholders[k] = sh
		return nil
	})
}

// --- Companies ---

func (s *Store) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	var out *domain.Company
	err := s.read(ctx, func(st *state) error {
		c, ok := st.companies[companyID]
		if !ok {
			return fmt.Errorf("%w: company %s", apperrors.ErrNotFound, companyID)
		}
		out = &c
		return nil
	})
	return out, err
}

func (s *Store) SaveCompany(ctx context.Context, company domain.Company, founder domain.CompanyMember) error {
	return s.write(ctx, func(st *state) error {
		if _, ok := st.companies[company.CompanyID]; ok {
			return fmt.Errorf("%w: company %s", apperrors.ErrDuplicate, company.CompanyID)
		}
		st.companies[company.CompanyID] = company
		st.members[key(founder.CompanyID, founder.UserID)] = founder
		return nil
	})
}

func (s *Store) AddMember(ctx context.Context, membership domain.CompanyMember) error {
	return s.write(ctx, func(st *state) error {
		if _, ok := st.companies[membership.CompanyID]; !ok {
			return fmt.Errorf("%w: company %s", apperrors.ErrNotFound, membership.CompanyID)
		}
		k := key(membership.CompanyID, membership.UserID)
		if existing, ok := st.members[k]; ok {
			membership.JoinedAt = existing.JoinedAt
		}
		st.members[k] = membership
		return nil
	})
}

func (s *Store) FindMember(ctx context.Context, userID, companyID string) (*domain.CompanyMember, error) {
	var out *domain.CompanyMember
	err := s.read(ctx, func(st *state) error {
		m, ok := st.members[key(companyID, userID)]
		if !ok {
			return fmt.Errorf("%w: membership of user %s", apperrors.ErrNotFound, userID)
		}
		out = &m
		return nil
	})
	return out, err
}

func (s *Store) ListMembers(ctx context.Context, companyID string) ([]domain.CompanyMember, error) {
	var out []domain.CompanyMember
	err := s.read(ctx, func(st *state) error {
		for _, m := range st.members {
			if m.CompanyID == companyID {
				out = append(out, m)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].JoinedAt.Before(out[j].JoinedAt) })
	return out, err
}

// write applies a change outside an equity transaction, all or nothing.
func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.st.clone()
	if err := fn(next); err != nil {
		return err
	}
	s.st = next
	return nil
}

// --- Valuation inputs ---

func (s *Store) FetchAssets(ctx context.Context, companyID string) ([]domain.Asset, error) {
	var out []domain.Asset
	err := s.read(ctx, func(st *state) error {
		out = append(out, st.assets[companyID]...)
		return nil
	})
	return out, err
}

func (s *Store) FetchLiabilitiesTotal(ctx context.Context, companyID string) (decimal.Decimal, error) {
	var out decimal.Decimal
	err := s.read(ctx, func(st *state) error {
		out = st.liabilities[companyID]
		return nil
	})
	return out, err
}

func (s *Store) FetchIP(ctx context.Context, companyID string) ([]domain.IPItem, error) {
	var out []domain.IPItem
	err := s.read(ctx, func(st *state) error {
		out = append(out, st.ipItems[companyID]...)
		return nil
	})
	return out, err
}

func (s *Store) FetchInfrastructure(ctx context.Context, companyID string) ([]domain.InfrastructureItem, error) {
	var out []domain.InfrastructureItem
	err := s.read(ctx, func(st *state) error {
		out = append(out, st.infra[companyID]...)
		return nil
	})
	return out, err
}

// AddAsset records a balance-sheet asset. The valuation inputs are owned by the accounting side,
// so the store only offers seeding for them.
func (s *Store) AddAsset(a domain.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.assets[a.CompanyID] = append(s.st.assets[a.CompanyID], a)
}

func (s *Store) AddIP(ip domain.IPItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.ipItems[ip.CompanyID] = append(s.st.ipItems[ip.CompanyID], ip)
}

func (s *Store) AddInfrastructure(item domain.InfrastructureItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.infra[item.CompanyID] = append(s.st.infra[item.CompanyID], item)
}

func (s *Store) SetLiabilitiesTotal(companyID string, total decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.liabilities[companyID] = total
}
