// Package ratelimit is the per-client-IP token bucket. State lives in the
// shared KV backend; when the backend is unreachable the limiter fails
// open for the fleet while an in-process bucket still bounds any single
// hot IP.
package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/yungbote/typeset-backend/internal/kv"
	"github.com/yungbote/typeset-backend/internal/pkg/logger"
)

const (
	keyPrefix = "ratelimit:"
	window    = time.Minute
	opTimeout = 250 * time.Millisecond
)

type Config struct {
	Enabled   bool
	PerMinute int
	Burst     int
}

// bucket is the persisted shape: remaining tokens plus the refill
// timestamp, TTL'd to the window length.
type bucket struct {
	Count   float64 `json:"count"`
	ResetAt float64 `json:"reset_at"`
}

type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter int
}

type Limiter struct {
	cfg        Config
	store      kv.Store
	log        *logger.Logger
	refillRate float64

	mu    sync.Mutex
	local map[string]*rate.Limiter
	now   func() time.Time
}

func New(cfg Config, store kv.Store, log *logger.Logger) *Limiter {
	if cfg.PerMinute <= 0 {
		cfg.PerMinute = 60
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 20
	}
	return &Limiter{
		cfg:        cfg,
		store:      store,
		log:        log.With("service", "RateLimiter"),
		refillRate: float64(cfg.PerMinute) / window.Seconds(),
		local:      make(map[string]*rate.Limiter),
		now:        time.Now,
	}
}

// Allow decides whether one request from clientIP proceeds.
func (l *Limiter) Allow(ctx context.Context, clientIP string) Decision {
	if !l.cfg.Enabled {
		return Decision{Allowed: true, Limit: l.cfg.PerMinute, Remaining: l.cfg.Burst}
	}
	if l.store == nil {
		return l.allowLocal(clientIP)
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	key := keyPrefix + clientIP
	now := float64(l.now().UnixNano()) / float64(time.Second)

	b := bucket{Count: float64(l.cfg.Burst), ResetAt: now}
	raw, err := l.store.Get(opCtx, key)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(raw, &b); jsonErr != nil {
			b = bucket{Count: float64(l.cfg.Burst), ResetAt: now}
		}
	case errors.Is(err, kv.ErrNotFound):
		// first request in the window
	default:
		l.log.Warn("Rate limit backend unavailable, failing open", "error", err)
		return l.allowLocal(clientIP)
	}

	tokens := math.Min(float64(l.cfg.Burst), b.Count+(now-b.ResetAt)*l.refillRate)
	allowed := tokens >= 1
	if allowed {
		tokens--
	}

	updated, _ := json.Marshal(bucket{Count: tokens, ResetAt: now})
	if err := l.store.Set(opCtx, key, updated, window); err != nil {
		l.log.Warn("Rate limit state not persisted", "error", err)
	}

	d := Decision{
		Allowed:   allowed,
		Limit:     l.cfg.PerMinute,
		Remaining: int(math.Max(0, tokens)),
	}
	if !allowed {
		d.RetryAfter = int(math.Ceil((1 - tokens) / l.refillRate))
		if d.RetryAfter > int(window.Seconds()) {
			d.RetryAfter = int(window.Seconds())
		}
	}
	return d
}

func (l *Limiter) allowLocal(clientIP string) Decision {
	l.mu.Lock()
	lim, ok := l.local[clientIP]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(l.refillRate), l.cfg.Burst)
		l.local[clientIP] = lim
	}
	l.mu.Unlock()
	if lim.Allow() {
		return Decision{Allowed: true, Limit: l.cfg.PerMinute, Remaining: int(lim.Tokens())}
	}
	return Decision{Allowed: false, Limit: l.cfg.PerMinute, Remaining: 0, RetryAfter: int(window.Seconds())}
}
