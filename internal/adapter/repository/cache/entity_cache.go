package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when the key is absent; callers fall through to the
// authoritative repository.
var ErrMiss = errors.New("cache miss")

const defaultTTL = 1 * time.Hour

// EntityCache is a per-session cache keyed by entity id. Mutations must
// invalidate their keys, never merge into them; stale reads are resolved by
// re-querying the repository.
type EntityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewEntityCache(addr string) (*EntityCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &EntityCache{client: client, ttl: defaultTTL}, nil
}

// NewEntityCacheWithClient wraps an existing client. For tests and app wiring.
func NewEntityCacheWithClient(client *redis.Client) *EntityCache {
	return &EntityCache{client: client, ttl: defaultTTL}
}

func (c *EntityCache) Get(ctx context.Context, key string, out interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (c *EntityCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *EntityCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *EntityCache) Close() error {
	return c.client.Close()
}

// Key builders keep cache-key formats in one place.

func ListingKey(id string) string       { return "listing:" + id }
func TransactionKey(id string) string   { return "transaction:" + id }
func SellerReviewsKey(id string) string { return "reviews:seller:" + id }
func SchoolNamesKey() string            { return "listings:school-names" }
