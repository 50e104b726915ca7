package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL = 15 * time.Minute
	maxJitter  = 5 * time.Minute

	versionField = "v"
	dataField    = "d"
)

// KEYS[1] user hash; ARGV[1] version, ARGV[2] payload, ARGV[3] ttl in ms.
// Returns 0 when the cached version is the same or newer.
var setIfNewer = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'v')
if cur and tonumber(cur) >= tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'v', ARGV[1], 'd', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

func NewRedisCache(client *redis.Client, baseTTL time.Duration) *RedisCache {
	if baseTTL <= 0 {
		baseTTL = defaultTTL
	}
	return &RedisCache{
		client:  client,
		baseTTL: baseTTL,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

// Get reads the document stored under the "d" field of the user's hash.
func (r *RedisCache) Get(ctx context.Context, userID string) (*domain.User, error) {
	vals, err := r.client.HMGet(ctx, cacheKey(userID), versionField, dataField).Result()
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	data, ok := vals[1].(string)
	if !ok {
		return nil, ErrCacheMiss
	}

	var u domain.User
	if err := json.Unmarshal([]byte(data), &u); err != nil {
		return nil, fmt.Errorf("unmarshal user failed: %w", err)
	}
	if v, ok := vals[0].(string); ok {
		u.Version, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse cached version failed: %w", err)
		}
	}
	u.Normalize()
	return &u, nil
}

// Set is a no-op when the cached copy has the same or a newer version.
func (r *RedisCache) Set(ctx context.Context, userID string, user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user failed: %w", err)
	}

	keys := []string{cacheKey(userID)}
	if err := setIfNewer.Run(ctx, r.client, keys, user.Version, data, r.ttl(userID).Milliseconds()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, cacheKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

// ttl spreads expirations per key so hot users do not expire together.
func (r *RedisCache) ttl(userID string) time.Duration {
	jitter := time.Duration(xxhash.Sum64String(userID) % uint64(maxJitter/time.Second))
	return r.baseTTL + jitter*time.Second
}

func cacheKey(userID string) string {
	return fmt.Sprintf("user:%s", userID)
}
