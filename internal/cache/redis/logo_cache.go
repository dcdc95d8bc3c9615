package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/barhop/barhop/internal/domain"
)

// logoTTL bounds how long a resolved logo URL stays cached. Logos change
// rarely; the TTL mostly exists so negative results get retried eventually.
const logoTTL = 7 * 24 * time.Hour

// negativeMarker stores "looked up, nothing found" distinctly from an
// absent key, since the cached URL itself may legitimately be empty.
const negativeMarker = "\x00none"

// LogoCache implements domain.LogoCache on Redis, shared across processes.
type LogoCache struct {
	rdb *redis.Client
}

// NewLogoCache creates a LogoCache backed by the given Client.
func NewLogoCache(c *Client) *LogoCache {
	return &LogoCache{rdb: c.Underlying()}
}

func logoKey(key string) string {
	return "logo:" + key
}

// Get returns the cached URL for key and whether the key was present.
func (lc *LogoCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := lc.rdb.Get(ctx, logoKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis: logo get %s: %w", key, err)
	}
	if val == negativeMarker {
		return "", true, nil
	}
	return val, true, nil
}

// Set stores the URL (possibly empty) for key.
func (lc *LogoCache) Set(ctx context.Context, key, url string) error {
	val := url
	if val == "" {
		val = negativeMarker
	}
	if err := lc.rdb.Set(ctx, logoKey(key), val, logoTTL).Err(); err != nil {
		return fmt.Errorf("redis: logo set %s: %w", key, err)
	}
	return nil
}

// Len reports the number of cached logo entries.
func (lc *LogoCache) Len(ctx context.Context) (int, error) {
	var count int
	var cursor uint64
	for {
		keys, next, err := lc.rdb.Scan(ctx, cursor, logoKey("*"), 512).Result()
		if err != nil {
			return 0, fmt.Errorf("redis: logo len: %w", err)
		}
		count += len(keys)
		cursor = next
		if cursor == 0 {
			return count, nil
		}
	}
}

var _ domain.LogoCache = (*LogoCache)(nil)
