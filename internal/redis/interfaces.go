package redis

import (
	"context"
	"time"
)

// QuoteCacheInterface defines the interface for fare quote caching.
type QuoteCacheInterface interface {
	Get(ctx context.Context, key string) (*CachedQuote, error)
	Set(ctx context.Context, key string, quote *CachedQuote) error
}

// ClaimStoreInterface defines the interface for order-claim locking.
type ClaimStoreInterface interface {
	AcquireOrderClaim(ctx context.Context, orderID string, ttl time.Duration) (bool, error)
	ReleaseOrderClaim(ctx context.Context, orderID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ QuoteCacheInterface = (*QuoteCache)(nil)
	_ ClaimStoreInterface = (*ClaimStore)(nil)
)
