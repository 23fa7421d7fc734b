package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/domain"
)

// QuoteCacheTTL keeps cached quotes short-lived: peak windows and tax
// quotes shift with the clock.
const QuoteCacheTTL = 60 * time.Second

const quoteCachePrefix = "cache:quote:"

// CachedQuote is the cached result of a fare quote.
type CachedQuote struct {
	Route domain.RouteEstimate `json:"route"`
	Fare  domain.FareBreakdown `json:"fare"`
}

// QuoteCache caches fare quotes in Redis keyed by their inputs.
type QuoteCache struct {
	client *redis.Client
}

// NewQuoteCache creates a new QuoteCache.
func NewQuoteCache(client *redis.Client) *QuoteCache {
	return &QuoteCache{client: client}
}

// Get retrieves a cached quote. A cache miss returns (nil, nil).
func (c *QuoteCache) Get(ctx context.Context, key string) (*CachedQuote, error) {
	data, err := c.client.Get(ctx, quoteCachePrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var quote CachedQuote
	if err := json.Unmarshal(data, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// Set stores a quote in cache.
func (c *QuoteCache) Set(ctx context.Context, key string, quote *CachedQuote) error {
	data, err := json.Marshal(quote)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, quoteCachePrefix+key, data, QuoteCacheTTL).Err()
}
