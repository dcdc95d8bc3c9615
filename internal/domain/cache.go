package domain

import (
	"context"
	"time"
)

// LogoCache memoizes logo lookups, including negative results (an empty URL
// with ok=true means "looked up before, nothing found"). Implementations
// must be bounded; the resolver never evicts explicitly.
type LogoCache interface {
	// Get returns the cached URL for key and whether the key was present.
	Get(ctx context.Context, key string) (url string, ok bool, err error)

	// Set stores the URL (possibly empty) for key.
	Set(ctx context.Context, key, url string) error

	// Len reports the current number of cached entries.
	Len(ctx context.Context) (int, error)
}

// RateLimiter limits request rates per key.
type RateLimiter interface {
	// Allow reports whether a request for key is permitted under the
	// limit for the window, counting the request if so.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
