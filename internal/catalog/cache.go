package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Cache wraps Redis helpers for JSON payloads.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// GetJSON unmarshals a cached JSON payload into dst. It reports whether the key existed.
func (c *Cache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	if c == nil || c.client == nil || key == "" {
		return false, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON serialises v as JSON and stores it with the configured TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, v any) error {
	if c == nil || c.client == nil || key == "" {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Ping checks the cache backend.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

const listCacheKey = "catalog:products:v1"

// CachedSource serves the listing from Redis when present and falls through
// to Source otherwise. Cache errors never fail a fetch.
type CachedSource struct {
	Source Provider
	Cache  *Cache
	Logger zerolog.Logger
}

// Fetch implements Provider.
func (s CachedSource) Fetch(ctx context.Context) ([]Product, error) {
	var cached []Product
	ok, err := s.Cache.GetJSON(ctx, listCacheKey, &cached)
	if err != nil {
		s.Logger.Warn().Err(err).Msg("read catalog cache")
	}
	if ok && err == nil {
		return cached, nil
	}
	products, err := s.Source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.SetJSON(ctx, listCacheKey, products); err != nil {
		s.Logger.Warn().Err(err).Msg("write catalog cache")
	}
	return products, nil
}
