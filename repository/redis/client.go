package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"connectfour/searcher"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "connectfour:search:"

// Connect returns a client for addr, or nil when Redis is not configured or
// does not answer. Callers then search without a shared cache.
func Connect(ctx context.Context, addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msgf("could not connect to redis at %s, searching without a shared cache", addr)
		client.Close()
		return nil
	}

	log.Info().Msg("connected to redis")
	return client
}

// SearchCache stores root search results in Redis as JSON.
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ searcher.Cache = (*SearchCache)(nil)

func NewSearchCache(client *redis.Client, ttl time.Duration) *SearchCache {
	return &SearchCache{client: client, ttl: ttl}
}

func (c *SearchCache) Get(ctx context.Context, key string) (searcher.Entry, bool, error) {
	value, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return searcher.Entry{}, false, nil
	}
	if err != nil {
		return searcher.Entry{}, false, fmt.Errorf("failed to get search result: %w", err)
	}

	var entry searcher.Entry
	if err := json.Unmarshal(value, &entry); err != nil {
		return searcher.Entry{}, false, fmt.Errorf("failed to decode search result: %w", err)
	}
	return entry, true, nil
}

func (c *SearchCache) Set(ctx context.Context, key string, entry searcher.Entry) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode search result: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set search result: %w", err)
	}
	return nil
}
