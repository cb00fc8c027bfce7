// Package typst binds the external Typst compiler. The engine is treated
// as an opaque dependency: source text in, PDF bytes or a diagnostic out.
package typst

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yungbote/typeset-backend/internal/errdefs"
	"github.com/yungbote/typeset-backend/internal/pkg/logger"
)

// Compiler compiles Typst source to PDF bytes.
type Compiler interface {
	Compile(ctx context.Context, source string) ([]byte, error)
	Ready() bool
}

type Config struct {
	// Bin is the pinned typst executable.
	Bin string
	// FontDir is the pinned font catalog passed via --font-path.
	FontDir string
	// MaxConcurrent bounds simultaneous compilations; each runs in its own
	// process, so there is no shared compiler state to corrupt.
	MaxConcurrent int
}

// CLICompiler shells out to the typst binary, one process per compile.
// Initialization is lazy and one-shot: it resolves the binary, loads the
// font catalog, and runs a warm-up compile so the first request does not
// pay the cold-start alone.
type CLICompiler struct {
	cfg      Config
	log      *logger.Logger
	initOnce sync.Once
	initErr  error
	catalog  *FontCatalog
	sem      chan struct{}
	ready    atomic.Bool
}

func New(cfg Config, log *logger.Logger) *CLICompiler {
	if cfg.Bin == "" {
		cfg.Bin = "typst"
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 4
	}
	return &CLICompiler{
		cfg: cfg,
		log: log.With("service", "TypstCompiler"),
		sem: make(chan struct{}, cfg.MaxConcurrent),
	}
}

func (c *CLICompiler) initialize() {
	start := time.Now()
	if _, err := exec.LookPath(c.cfg.Bin); err != nil {
		c.initErr = errdefs.Wrap(err, errdefs.SysDependencyMissing, "typst binary '%s' not found", c.cfg.Bin)
		return
	}
	catalog, err := LoadCatalog(c.cfg.FontDir)
	if err != nil {
		c.log.Warn("Font catalog unavailable, falling back to system fonts", "dir", c.cfg.FontDir, "error", err)
		catalog = &FontCatalog{}
	}
	c.catalog = catalog

	// Warm-up: a trivial document exercises the binary and the font scan.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := c.run(ctx, "#set page(width: 10cm, height: 10cm)\nwarm-up\n"); err != nil {
		c.initErr = err
		return
	}
	c.ready.Store(true)
	c.log.Info("Typst compiler initialized", "fonts", len(catalog.Files), "took", time.Since(start).String())
}

func (c *CLICompiler) Ready() bool { return c.ready.Load() }

// Compile renders source to PDF bytes. Concurrent callers are bounded by
// the configured pool; each invocation is a fresh process, so no state
// leaks across requests.
func (c *CLICompiler) Compile(ctx context.Context, source string) ([]byte, error) {
	c.initOnce.Do(c.initialize)
	if c.initErr != nil {
		return nil, c.initErr
	}
	select {
	case c.sem <- struct{}{}:
		defer func() { <-c.sem }()
	case <-ctx.Done():
		return nil, errdefs.Wrap(ctx.Err(), errdefs.APIRequestTimeout, "compilation slot not acquired before deadline")
	}
	return c.run(ctx, source)
}

func (c *CLICompiler) run(ctx context.Context, source string) ([]byte, error) {
	args := []string{"compile"}
	if c.catalog != nil && c.catalog.Dir != "" {
		args = append(args, "--font-path", c.catalog.Dir)
	}
	// "-" "-": source on stdin, PDF on stdout.
	args = append(args, "-", "-")

	cmd := exec.CommandContext(ctx, c.cfg.Bin, args...)
	cmd.Stdin = strings.NewReader(source)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, errdefs.Wrap(ctx.Err(), errdefs.APIRequestTimeout, "compilation cancelled before completion")
		}
		diag := errdefs.TruncateDiagnostic(strings.TrimSpace(stderr.String()))
		if diag == "" {
			diag = err.Error()
		}
		return nil, errdefs.Wrap(err, errdefs.TplTypstCompileFailed, "Typst compilation failed: %s", diag).
			WithContext("diagnostic", diag)
	}
	pdf := stdout.Bytes()
	if len(pdf) == 0 {
		return nil, errdefs.E(errdefs.TplPDFFailed, "compiler produced no output")
	}
	return pdf, nil
}
