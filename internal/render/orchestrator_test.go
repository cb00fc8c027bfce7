package render

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/typeset-backend/internal/cache"
	"github.com/yungbote/typeset-backend/internal/docx"
	"github.com/yungbote/typeset-backend/internal/errdefs"
	"github.com/yungbote/typeset-backend/internal/kv"
	"github.com/yungbote/typeset-backend/internal/pkg/logger"
	"github.com/yungbote/typeset-backend/internal/types"
)

// stubCompiler is a deterministic typst.Compiler: it returns a fake PDF
// and counts invocations.
type stubCompiler struct {
	calls atomic.Int64
	delay time.Duration
	fail  bool
	mu    sync.Mutex
	out   []byte
}

func (s *stubCompiler) Compile(ctx context.Context, source string) ([]byte, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, errdefs.Wrap(ctx.Err(), errdefs.APIRequestTimeout, "cancelled")
		}
	}
	if s.fail {
		return nil, errdefs.E(errdefs.TplTypstCompileFailed, "Typst compilation failed: boom")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.out != nil {
		return s.out, nil
	}
	return []byte("%PDF-1.7\n" + source[:min(16, len(source))]), nil
}

func (s *stubCompiler) Ready() bool { return true }

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func testOrchestrator(t *testing.T, comp *stubCompiler) *Orchestrator {
	t.Helper()
	log, err := logger.New("development")
	require.NoError(t, err)
	documentCache := cache.New(kv.NewMemory(), cache.Config{Enabled: true}, log)
	return New(Config{}, log, documentCache, comp, docx.NewGenerator(log))
}

func pdfRequest() *types.DocumentRequest {
	return &types.DocumentRequest{
		DocumentType: types.DocumentTypeResume,
		Template:     "classic",
		Format:       types.FormatPDF,
		Data: map[string]any{
			"personalInfo": map[string]any{"name": "A B", "email": "a@b.co"},
		},
	}
}

func TestGeneratePDFMissThenHit(t *testing.T) {
	comp := &stubCompiler{}
	o := testOrchestrator(t, comp)
	ctx := context.Background()

	art, err := o.Generate(ctx, pdfRequest())
	require.NoError(t, err)
	assert.False(t, art.CacheHit)
	assert.Equal(t, "resume_A_B.pdf", art.Filename)
	assert.Equal(t, "application/pdf", art.ContentType)
	assert.True(t, strings.HasPrefix(string(art.Bytes), "%PDF"))

	art2, err := o.Generate(ctx, pdfRequest())
	require.NoError(t, err)
	assert.True(t, art2.CacheHit)
	assert.Equal(t, art.Bytes, art2.Bytes)
	assert.Equal(t, int64(1), comp.calls.Load())
}

func TestGenerateSingleFlight(t *testing.T) {
	comp := &stubCompiler{delay: 50 * time.Millisecond}
	o := testOrchestrator(t, comp)

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			_, err := o.Generate(context.Background(), pdfRequest())
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int64(1), comp.calls.Load())
}

func TestGenerateUnknownTemplate(t *testing.T) {
	o := testOrchestrator(t, &stubCompiler{})
	req := pdfRequest()
	req.Template = "neon"
	_, err := o.Generate(context.Background(), req)
	require.Error(t, err)
	te := errdefs.As(err)
	assert.Equal(t, errdefs.TplNotFound, te.Code)
	assert.Equal(t, "classic, two_column", te.Context["available_templates"])
}

func TestGenerateValidationError(t *testing.T) {
	o := testOrchestrator(t, &stubCompiler{})
	req := pdfRequest()
	req.Data = map[string]any{"personalInfo": map[string]any{"name": "A"}}
	_, err := o.Generate(context.Background(), req)
	require.Error(t, err)
	te := errdefs.As(err)
	assert.Equal(t, errdefs.ValMissingField, te.Code)
	assert.Equal(t, "personalInfo.email", te.FieldPath)
}

func TestGenerateInvalidFormat(t *testing.T) {
	o := testOrchestrator(t, &stubCompiler{})
	req := pdfRequest()
	req.Format = "png"
	_, err := o.Generate(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, errdefs.TplFormatUnsupported, errdefs.As(err).Code)
}

func TestGenerateTypstFormat(t *testing.T) {
	comp := &stubCompiler{}
	o := testOrchestrator(t, comp)
	req := pdfRequest()
	req.Format = types.FormatTypst

	art, err := o.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, art.CacheHit)
	assert.Equal(t, "resume_A_B.typ", art.Filename)
	assert.Contains(t, string(art.Bytes), "#set page")
	// The compiler is never involved for source output.
	assert.Equal(t, int64(0), comp.calls.Load())

	art2, err := o.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, art2.CacheHit)
	assert.Equal(t, art.Bytes, art2.Bytes)
}

func TestGenerateDocxBypassesCompiler(t *testing.T) {
	comp := &stubCompiler{}
	o := testOrchestrator(t, comp)
	req := pdfRequest()
	req.Format = types.FormatDOCX

	art, err := o.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "resume_A_B.docx", art.Filename)
	assert.NotEmpty(t, art.Bytes)
	assert.Equal(t, int64(0), comp.calls.Load())
}

func TestGenerateCompileErrorSurfaced(t *testing.T) {
	comp := &stubCompiler{fail: true}
	o := testOrchestrator(t, comp)
	_, err := o.Generate(context.Background(), pdfRequest())
	require.Error(t, err)
	assert.Equal(t, errdefs.TplTypstCompileFailed, errdefs.As(err).Code)
}

func TestGenerateArtifactCeiling(t *testing.T) {
	comp := &stubCompiler{out: make([]byte, 2048)}
	log, err := logger.New("development")
	require.NoError(t, err)
	documentCache := cache.New(kv.NewMemory(), cache.Config{Enabled: true}, log)
	o := New(Config{MaxArtifactBytes: 1024}, log, documentCache, comp, docx.NewGenerator(log))

	_, err = o.Generate(context.Background(), pdfRequest())
	require.Error(t, err)
	assert.Equal(t, errdefs.SysResourceExhausted, errdefs.As(err).Code)
}

// Equal canonical payloads share one cache entry even when the maps were
// assembled differently.
func TestGenerateEquivalentRequestsShareCache(t *testing.T) {
	comp := &stubCompiler{}
	o := testOrchestrator(t, comp)

	req1 := pdfRequest()
	req2 := &types.DocumentRequest{
		DocumentType: types.DocumentTypeResume,
		Template:     "classic",
		Format:       types.FormatPDF,
		Data: map[string]any{
			"personalInfo": map[string]any{"email": "a@b.co", "name": "A B"},
		},
	}
	_, err := o.Generate(context.Background(), req1)
	require.NoError(t, err)
	art, err := o.Generate(context.Background(), req2)
	require.NoError(t, err)
	assert.True(t, art.CacheHit)
	assert.Equal(t, int64(1), comp.calls.Load())
}
