package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ClaimStore handles distributed order-claim locking in Redis. The claim
// lock prevents two drivers from accepting the same order concurrently.
type ClaimStore struct {
	client *redis.Client
}

// NewClaimStore creates a new ClaimStore.
func NewClaimStore(client *redis.Client) *ClaimStore {
	return &ClaimStore{client: client}
}

// AcquireOrderClaim attempts to acquire the claim lock for an order.
// Returns true if the lock was acquired, false if already held.
func (s *ClaimStore) AcquireOrderClaim(ctx context.Context, orderID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("claim:order:%s", orderID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseOrderClaim releases the claim lock for an order.
func (s *ClaimStore) ReleaseOrderClaim(ctx context.Context, orderID string) error {
	key := fmt.Sprintf("claim:order:%s", orderID)

	return s.client.Del(ctx, key).Err()
}
