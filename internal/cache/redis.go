package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gigbud/internal/config"

	"github.com/redis/go-redis/v9"
)

// QueryCache is a small cache-aside layer for read-heavy query results
// (nearby tasks, location prefix search). Values are stored as JSON with a
// TTL; a miss simply falls through to the database.
type QueryCache struct {
	client *redis.Client
}

func NewQueryCache(cfg *config.Config) (*QueryCache, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &QueryCache{client: client}, nil
}

func (q *QueryCache) Close() error {
	return q.client.Close()
}

// Get unmarshals the cached value into dest. The second return is false on a
// miss.
func (q *QueryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := q.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cached value: %w", err)
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached value: %w", err)
	}
	return true, nil
}

func (q *QueryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	if err := q.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store value in Redis: %w", err)
	}
	return nil
}

// NearbyKey builds the cache key for a nearby-tasks query.
func NearbyKey(lat, lng, radiusKm float64) string {
	return fmt.Sprintf("nearby:%.4f:%.4f:%.1f", lat, lng, radiusKm)
}

// SearchKey builds the cache key for a location prefix search.
func SearchKey(prefix string) string {
	return fmt.Sprintf("locsearch:%s", prefix)
}
