package cache

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/tastefolio/personalization-service/internal/domain"
)

// Cache keeps a redis copy of the latest recommendation record per
// (email, domain) so reads avoid the Postgres sort-and-pick-first
// query. Expiry only causes a Postgres read; the regeneration decision
// is snapshot equality, never record age.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func buildKey(email, dom string) string {
	return fmt.Sprintf("rec:latest:%s:%s", email, dom)
}

// Get returns the cached latest record, or nil on a miss.
func (c *Cache) Get(ctx context.Context, email, dom string) (*domain.Record, error) {
	val, err := c.client.Get(ctx, buildKey(email, dom)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get latest record from cache: %w", err)
	}

	rec := &domain.Record{}
	if err := json.Unmarshal([]byte(val), rec); err != nil {
		return nil, fmt.Errorf("unmarshal cached record %s: %w", buildKey(email, dom), err)
	}
	return rec, nil
}

// Set stores a record as the latest for its (email, domain) pair.
func (c *Cache) Set(ctx context.Context, rec *domain.Record) error {
	val, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	key := buildKey(rec.Email, rec.Domain)
	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("set latest record in cache: %w", err)
	}
	return nil
}

// Clear drops the cached record for one (email, domain) pair; used when
// preferences are saved so the next read goes back to Postgres.
func (c *Cache) Clear(ctx context.Context, email, dom string) error {
	if err := c.client.Del(ctx, buildKey(email, dom)).Err(); err != nil {
		return fmt.Errorf("cache delete %s: %w", buildKey(email, dom), err)
	}
	return nil
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
