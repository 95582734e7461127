package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/etude-leroux/site-api/internal/utils"
)

const (
	// Contact form budget: 5 accepted submissions per client address per
	// rolling 60-second window.
	ContactLimitPerWindow = 5
	ContactWindow         = time.Minute

	// Expired ledger entries are pruned on this cadence. Pruning is
	// resource hygiene only; Allow is correct without it.
	SweepEvery = 5 * time.Minute

	rateLimitKeyPrefix = "contact:ip:"
)

// RateLimiterService bounds request rate per client key within a rolling
// window. Injected into the contact controller so the ledger can live in
// memory or in Redis without the endpoint knowing.
type RateLimiterService interface {
	// Allow records one attempt for key and reports whether it fits the
	// current window.
	Allow(ctx context.Context, key string) (bool, error)
	// Sweep drops expired ledger entries.
	Sweep(ctx context.Context) error
}

/* ------------------------------------------------------------------
   In-memory ledger
------------------------------------------------------------------ */

type windowEntry struct {
	count   int
	resetAt time.Time
}

type memoryRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	limit   int
	window  time.Duration
	now     func() time.Time
}

func NewMemoryRateLimiter(limit int, window time.Duration) RateLimiterService {
	return &memoryRateLimiter{
		entries: make(map[string]*windowEntry),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

func (l *memoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	ent, ok := l.entries[key]
	if !ok || now.After(ent.resetAt) {
		l.entries[key] = &windowEntry{count: 1, resetAt: now.Add(l.window)}
		return true, nil
	}

	ent.count++
	return ent.count <= l.limit, nil
}

func (l *memoryRateLimiter) Sweep(_ context.Context) error {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, ent := range l.entries {
		if now.After(ent.resetAt) {
			delete(l.entries, key)
		}
	}
	return nil
}

/* ------------------------------------------------------------------
   Redis ledger
------------------------------------------------------------------ */

// redisRateLimiter keeps the ledger in Redis so several instances share
// one budget. Keys carry a TTL, which makes Sweep a no-op.
type redisRateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewRedisRateLimiter(rdb *redis.Client, limit int, window time.Duration) RateLimiterService {
	return &redisRateLimiter{rdb: rdb, limit: limit, window: window}
}

func (l *redisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := rateLimitKeyPrefix + key

	count, err := l.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return count <= int64(l.limit), nil
}

func (l *redisRateLimiter) Sweep(_ context.Context) error {
	// Redis expires keys itself.
	return nil
}

/* ------------------------------------------------------------------
   Sweep scheduling helper
------------------------------------------------------------------ */

// RunSweep is the cron callback; failures are logged, never fatal.
func RunSweep(limiter RateLimiterService) {
	if err := limiter.Sweep(context.Background()); err != nil {
		utils.Logger.WithError(err).Warn("Rate limit ledger sweep failed")
		return
	}
	utils.Logger.Debug("Rate limit ledger sweep completed")
}
