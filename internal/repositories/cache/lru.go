package cache

import (
	"context"
	"time"

	"github.com/SscSPs/equity_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/equity_management_app/internal/core/ports/repositories"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LRUValuationCache keeps snapshots in process memory, bounded by size and expired by TTL.
type LRUValuationCache struct {
	entries *expirable.LRU[string, domain.ValuationSnapshot]
}

var _ portsrepo.ValuationCache = (*LRUValuationCache)(nil)

// NewLRUValuationCache creates an in-process cache holding at most size companies for ttl each.
func NewLRUValuationCache(size int, ttl time.Duration) *LRUValuationCache {
	return &LRUValuationCache{
		entries: expirable.NewLRU[string, domain.ValuationSnapshot](size, nil, ttl),
	}
}

func (c *LRUValuationCache) Get(_ context.Context, companyID string) (*domain.ValuationSnapshot, bool, error) {
	snap, ok := c.entries.Get(companyID)
	if !ok {
		return nil, false, nil
	}
	return &snap, true, nil
}

func (c *LRUValuationCache) Set(_ context.Context, companyID string, snapshot domain.ValuationSnapshot) error {
	c.entries.Add(companyID, snapshot)
	return nil
}

func (c *LRUValuationCache) Invalidate(_ context.Context, companyID string) error {
	c.entries.Remove(companyID)
	return nil
}
