// Package render drives the synchronous pipeline: validate, select helper,
// render markup, compile, cache. Single-flight collapses concurrent
// identical requests onto one compilation.
package render

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yungbote/typeset-backend/internal/cache"
	"github.com/yungbote/typeset-backend/internal/docx"
	"github.com/yungbote/typeset-backend/internal/errdefs"
	"github.com/yungbote/typeset-backend/internal/observability"
	"github.com/yungbote/typeset-backend/internal/pkg/logger"
	"github.com/yungbote/typeset-backend/internal/templates"
	"github.com/yungbote/typeset-backend/internal/typst"
	"github.com/yungbote/typeset-backend/internal/types"
	"github.com/yungbote/typeset-backend/internal/validation"
)

type Config struct {
	// MaxArtifactBytes rejects pathological outputs; 0 means the default
	// 25 MB.
	MaxArtifactBytes int64
	// Timeout is the overall sync deadline applied when the caller's
	// context has none.
	Timeout time.Duration
}

type Orchestrator struct {
	cfg      Config
	log      *logger.Logger
	cache    *cache.Cache
	compiler typst.Compiler
	docx     *docx.Generator
	group    singleflight.Group
}

// Artifact is the terminal output of one generate call.
type Artifact struct {
	Bytes       []byte
	Filename    string
	ContentType string
	Format      types.OutputFormat
	CacheHit    bool
	CacheKey    string
}

func New(cfg Config, log *logger.Logger, c *cache.Cache, compiler typst.Compiler, docxGen *docx.Generator) *Orchestrator {
	if cfg.MaxArtifactBytes <= 0 {
		cfg.MaxArtifactBytes = 25 * 1024 * 1024
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &Orchestrator{
		cfg:      cfg,
		log:      log.With("service", "RenderOrchestrator"),
		cache:    c,
		compiler: compiler,
		docx:     docxGen,
	}
}

// Generate runs the full pipeline for one request and returns the
// artifact. The request's data is never mutated; the validator's
// normalized copy feeds all downstream steps.
func (o *Orchestrator) Generate(ctx context.Context, req *types.DocumentRequest) (*Artifact, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}

	if !req.DocumentType.Valid() {
		return nil, errdefs.E(errdefs.APIInvalidParameter, "document_type '%s' is not supported", req.DocumentType).
			WithField("document_type")
	}
	format, ok := types.NormalizeFormat(string(req.Format))
	if !ok {
		return nil, errdefs.E(errdefs.TplFormatUnsupported, "format '%s' is not supported", req.Format).
			WithField("format")
	}
	info, err := templates.Get(req.DocumentType, req.Template)
	if err != nil {
		return nil, err
	}

	data, err := validation.Run(req.DocumentType, req.Data, req.UltraValidation)
	if err != nil {
		return nil, err
	}

	if format == types.FormatDOCX {
		payload, filename, err := o.docx.Generate(req.DocumentType, data)
		if err != nil {
			return nil, err
		}
		return &Artifact{
			Bytes:       payload,
			Filename:    filename,
			ContentType: format.ContentType(),
			Format:      format,
		}, nil
	}

	spacing, ok := types.NormalizeSpacing(string(req.SpacingMode))
	if !ok {
		return nil, errdefs.E(errdefs.APIInvalidParameter, "spacing_mode '%s' is not supported", req.SpacingMode).
			WithField("spacing_mode")
	}
	cfg := templates.Config{SpacingMode: spacing}

	key, err := cache.Key(req.DocumentType, req.Template, data, format)
	if err != nil {
		return nil, errdefs.Wrap(err, errdefs.SysUnexpected, "cache key derivation failed")
	}

	if format == types.FormatTypst {
		if source, hit := o.cache.GetTypst(ctx, key); hit {
			return o.textArtifact(req, data, source, key, true), nil
		}
		source, err := renderSource(info.New, data, cfg)
		if err != nil {
			return nil, err
		}
		o.cache.SetTypst(ctx, key, source)
		return o.textArtifact(req, data, source, key, false), nil
	}

	if pdf, hit := o.cache.GetPDF(ctx, key); hit {
		return o.pdfArtifact(req, data, pdf, key, true), nil
	}

	pdf, err := o.compileSingleFlight(ctx, key, info.New, data, cfg)
	if err != nil {
		return nil, err
	}
	return o.pdfArtifact(req, data, pdf, key, false), nil
}

// compileSingleFlight ensures at most one compilation per key runs
// process-wide. Followers who inherit a leader's compiler failure retry
// once independently; deterministic failures (validation, rendering) are
// shared as-is.
func (o *Orchestrator) compileSingleFlight(ctx context.Context, key string, ctor templates.Constructor, data map[string]any, cfg templates.Config) ([]byte, error) {
	v, err, shared := o.group.Do(key, func() (any, error) {
		// A follower may have populated the cache while we queued.
		if pdf, hit := o.cache.GetPDF(ctx, key); hit {
			return pdf, nil
		}
		return o.renderAndCompile(ctx, key, ctor, data, cfg)
	})
	if err != nil {
		if shared && isCompilerFailure(err) {
			o.log.Debug("Shared compilation failed, retrying independently", "key", key)
			pdf, retryErr := o.renderAndCompile(ctx, key, ctor, data, cfg)
			if retryErr != nil {
				return nil, retryErr
			}
			return pdf, nil
		}
		return nil, err
	}
	return v.([]byte), nil
}

func (o *Orchestrator) renderAndCompile(ctx context.Context, key string, ctor templates.Constructor, data map[string]any, cfg templates.Config) ([]byte, error) {
	ctx, span := observability.Tracer().Start(ctx, "render.compile")
	defer span.End()

	source, err := renderSource(ctor, data, cfg)
	if err != nil {
		return nil, err
	}
	pdf, err := o.compiler.Compile(ctx, source)
	if err != nil {
		return nil, err
	}
	if int64(len(pdf)) > o.cfg.MaxArtifactBytes {
		return nil, errdefs.E(errdefs.SysResourceExhausted, "artifact size %d exceeds the %d byte ceiling", len(pdf), o.cfg.MaxArtifactBytes)
	}
	// Fire-and-forget: a failed set is logged inside the cache and the
	// response proceeds.
	o.cache.SetPDF(ctx, key, pdf)
	return pdf, nil
}

func renderSource(ctor templates.Constructor, data map[string]any, cfg templates.Config) (string, error) {
	helper := ctor(data, cfg)
	if err := helper.ValidateData(); err != nil {
		return "", err
	}
	source, err := helper.Render()
	if err != nil {
		return "", err
	}
	if source == "" {
		return "", errdefs.E(errdefs.TplRenderFailed, "template produced empty markup")
	}
	return source, nil
}

func (o *Orchestrator) pdfArtifact(req *types.DocumentRequest, data map[string]any, pdf []byte, key string, hit bool) *Artifact {
	return &Artifact{
		Bytes:       pdf,
		Filename:    types.Filename(req.DocumentType, data, types.FormatPDF),
		ContentType: types.FormatPDF.ContentType(),
		Format:      types.FormatPDF,
		CacheHit:    hit,
		CacheKey:    key,
	}
}

func (o *Orchestrator) textArtifact(req *types.DocumentRequest, data map[string]any, source, key string, hit bool) *Artifact {
	return &Artifact{
		Bytes:       []byte(source),
		Filename:    types.Filename(req.DocumentType, data, types.FormatTypst),
		ContentType: types.FormatTypst.ContentType(),
		Format:      types.FormatTypst,
		CacheHit:    hit,
		CacheKey:    key,
	}
}

func isCompilerFailure(err error) bool {
	var te *errdefs.Error
	if !errors.As(err, &te) {
		return false
	}
	return te.Code == errdefs.TplTypstCompileFailed || te.Code == errdefs.TplPDFFailed
}
