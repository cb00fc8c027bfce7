package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/typeset-backend/internal/kv"
	"github.com/yungbote/typeset-backend/internal/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	require.NoError(t, err)
	return log
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := New(kv.NewMemory(), Config{Enabled: true}, testLogger(t))

	_, hit := c.GetPDF(ctx, "pdf:resume:classic:abc")
	assert.False(t, hit)

	c.SetPDF(ctx, "pdf:resume:classic:abc", []byte("%PDF-1.7 data"))
	got, hit := c.GetPDF(ctx, "pdf:resume:classic:abc")
	require.True(t, hit)
	assert.Equal(t, []byte("%PDF-1.7 data"), got)

	c.SetTypst(ctx, "typst:resume:classic:abc", "#set page()")
	src, hit := c.GetTypst(ctx, "typst:resume:classic:abc")
	require.True(t, hit)
	assert.Equal(t, "#set page()", src)
}

func TestCacheDisabledMode(t *testing.T) {
	ctx := context.Background()
	c := New(nil, Config{Enabled: true}, testLogger(t))

	c.SetPDF(ctx, "k", []byte("x"))
	_, hit := c.GetPDF(ctx, "k")
	assert.False(t, hit)

	m := c.Metrics(ctx)
	assert.False(t, m.Connected)
	assert.Equal(t, int64(1), m.Misses)
	assert.Equal(t, int64(0), m.Hits)
}

func TestCacheConfigDisabled(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	c := New(store, Config{Enabled: false}, testLogger(t))
	c.SetPDF(ctx, "k", []byte("x"))
	_, hit := c.GetPDF(ctx, "k")
	assert.False(t, hit)
	// Nothing reached the store.
	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestCacheTTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	now := time.Now()
	store.SetClock(func() time.Time { return now })

	c := New(store, Config{Enabled: true, PDFTTL: time.Hour}, testLogger(t))
	c.SetPDF(ctx, "k", []byte("x"))
	_, hit := c.GetPDF(ctx, "k")
	require.True(t, hit)

	now = now.Add(2 * time.Hour)
	_, hit = c.GetPDF(ctx, "k")
	assert.False(t, hit)
}

func TestCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	c := New(kv.NewMemory(), Config{Enabled: true}, testLogger(t))
	c.SetPDF(ctx, "k", []byte("x"))
	c.Invalidate(ctx, "k")
	_, hit := c.GetPDF(ctx, "k")
	assert.False(t, hit)
}

func TestCacheMetrics(t *testing.T) {
	ctx := context.Background()
	c := New(kv.NewMemory(), Config{Enabled: true}, testLogger(t))
	c.SetPDF(ctx, "k", []byte("x"))
	c.GetPDF(ctx, "k")
	c.GetPDF(ctx, "missing")
	m := c.Metrics(ctx)
	assert.Equal(t, int64(1), m.Hits)
	assert.Equal(t, int64(1), m.Misses)
	assert.Equal(t, int64(1), m.Sets)
	assert.Equal(t, int64(2), m.Total)
	assert.InDelta(t, 0.5, m.HitRate, 0.001)
	assert.True(t, m.Connected)
}
