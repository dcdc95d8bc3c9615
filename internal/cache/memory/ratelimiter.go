package memory

import (
	"context"
	"sync"
	"time"

	"github.com/barhop/barhop/internal/domain"
)

type window struct {
	start time.Time
	count int
}

// RateLimiter is a fixed-window in-process rate limiter, used when no Redis
// is configured. Stale windows are dropped lazily on access.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

// NewRateLimiter creates an in-process rate limiter.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow reports whether a request for key fits in the current fixed window,
// counting it if so.
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, windowSize time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	w, ok := r.windows[key]
	if !ok || now.Sub(w.start) >= windowSize {
		r.windows[key] = &window{start: now, count: 1}
		return true, nil
	}

	if w.count >= limit {
		return false, nil
	}
	w.count++
	return true, nil
}

var _ domain.RateLimiter = (*RateLimiter)(nil)
