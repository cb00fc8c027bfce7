// Package cache is the content-addressed document cache. The backing store
// is external KV with TTL semantics; when it is unavailable the cache runs
// disabled (gets miss, sets are no-ops) and the render path proceeds.
package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/yungbote/typeset-backend/internal/kv"
	"github.com/yungbote/typeset-backend/internal/pkg/logger"
)

type Config struct {
	Enabled   bool
	PDFTTL    time.Duration
	TypstTTL  time.Duration
	OpTimeout time.Duration
}

type Cache struct {
	cfg   Config
	store kv.Store
	log   *logger.Logger

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
	errors atomic.Int64
}

type Metrics struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Sets      int64   `json:"sets"`
	Errors    int64   `json:"errors"`
	Total     int64   `json:"total"`
	HitRate   float64 `json:"hit_rate"`
	Connected bool    `json:"connected"`
	Enabled   bool    `json:"enabled"`
}

// New builds the cache. A nil store puts it in disabled mode regardless of
// cfg.Enabled.
func New(store kv.Store, cfg Config, log *logger.Logger) *Cache {
	if cfg.PDFTTL <= 0 {
		cfg.PDFTTL = 24 * time.Hour
	}
	if cfg.TypstTTL <= 0 {
		cfg.TypstTTL = 12 * time.Hour
	}
	if cfg.OpTimeout <= 0 {
		cfg.OpTimeout = 250 * time.Millisecond
	}
	return &Cache{cfg: cfg, store: store, log: log.With("service", "DocumentCache")}
}

func (c *Cache) enabled() bool {
	return c.cfg.Enabled && c.store != nil
}

// opCtx bounds every store round-trip so the render path never stalls on a
// slow backend; on timeout a get is a miss and a set is dropped.
func (c *Cache) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.cfg.OpTimeout)
}

func (c *Cache) GetPDF(ctx context.Context, key string) ([]byte, bool) {
	return c.get(ctx, key)
}

func (c *Cache) SetPDF(ctx context.Context, key string, pdf []byte) {
	c.set(ctx, key, pdf, c.cfg.PDFTTL)
}

func (c *Cache) GetTypst(ctx context.Context, key string) (string, bool) {
	val, ok := c.get(ctx, key)
	if !ok {
		return "", false
	}
	return string(val), true
}

func (c *Cache) SetTypst(ctx context.Context, key, source string) {
	c.set(ctx, key, []byte(source), c.cfg.TypstTTL)
}

func (c *Cache) get(ctx context.Context, key string) ([]byte, bool) {
	if !c.enabled() {
		c.misses.Add(1)
		return nil, false
	}
	opCtx, cancel := c.opCtx(ctx)
	defer cancel()
	val, err := c.store.Get(opCtx, key)
	switch {
	case err == nil:
		c.hits.Add(1)
		return val, true
	case errors.Is(err, kv.ErrNotFound):
		c.misses.Add(1)
		return nil, false
	default:
		// Cache errors are counted and logged, never propagated.
		c.errors.Add(1)
		c.misses.Add(1)
		c.log.Warn("Cache get failed, treating as miss", "key", key, "error", err)
		return nil, false
	}
}

func (c *Cache) set(ctx context.Context, key string, val []byte, ttl time.Duration) {
	if !c.enabled() {
		return
	}
	opCtx, cancel := c.opCtx(ctx)
	defer cancel()
	if err := c.store.Set(opCtx, key, val, ttl); err != nil {
		c.errors.Add(1)
		c.log.Warn("Cache set failed", "key", key, "error", err)
		return
	}
	c.sets.Add(1)
}

func (c *Cache) Invalidate(ctx context.Context, key string) {
	if !c.enabled() {
		return
	}
	opCtx, cancel := c.opCtx(ctx)
	defer cancel()
	if err := c.store.Del(opCtx, key); err != nil {
		c.errors.Add(1)
		c.log.Warn("Cache invalidate failed", "key", key, "error", err)
	}
}

func (c *Cache) Metrics(ctx context.Context) Metrics {
	m := Metrics{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Sets:    c.sets.Load(),
		Errors:  c.errors.Load(),
		Enabled: c.cfg.Enabled,
	}
	m.Total = m.Hits + m.Misses
	if m.Total > 0 {
		m.HitRate = float64(m.Hits) / float64(m.Total)
	}
	if c.enabled() {
		opCtx, cancel := c.opCtx(ctx)
		defer cancel()
		m.Connected = c.store.Ping(opCtx) == nil
	}
	return m
}
