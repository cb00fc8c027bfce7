package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/typeset-backend/internal/app"
	"github.com/yungbote/typeset-backend/internal/cache"
	"github.com/yungbote/typeset-backend/internal/docx"
	httpx "github.com/yungbote/typeset-backend/internal/http"
	httpH "github.com/yungbote/typeset-backend/internal/http/handlers"
	"github.com/yungbote/typeset-backend/internal/jobs"
	"github.com/yungbote/typeset-backend/internal/kv"
	"github.com/yungbote/typeset-backend/internal/observability"
	"github.com/yungbote/typeset-backend/internal/pkg/logger"
	"github.com/yungbote/typeset-backend/internal/ratelimit"
	"github.com/yungbote/typeset-backend/internal/render"
	"github.com/yungbote/typeset-backend/internal/typst"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file loaded", "error", err)
	}
	cfg := app.LoadConfig(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing
	shutdownTracing, tracingOn, err := observability.Setup(ctx, observability.Config{
		Mode:     cfg.OtelMode,
		Endpoint: cfg.OtelEndpoint,
	}, log)
	if err != nil {
		log.Warn("Tracing setup failed, continuing without", "error", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	// KV backend. Unreachable Redis is survivable: the cache degrades to
	// disabled mode, the limiter fails open, but the job store cannot run.
	log.Info("Connecting KV backend...")
	var store kv.Store
	store, err = kv.NewRedis(kv.RedisConfig{
		Host:           cfg.RedisHost,
		Port:           cfg.RedisPort,
		DB:             cfg.RedisDB,
		Password:       cfg.RedisPassword,
		SSL:            cfg.RedisSSL,
		MaxConnections: cfg.RedisMaxConns,
	}, log)
	if err != nil {
		log.Warn("Redis unavailable; cache disabled and rate limiter failing open", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	// Services
	log.Info("Setting up services...")
	documentCache := cache.New(store, cache.Config{
		Enabled:   cfg.CacheEnabled,
		PDFTTL:    cfg.PDFCacheTTL,
		TypstTTL:  cfg.TypstTTL,
		OpTimeout: cfg.CacheOpTO,
	}, log)
	compiler := typst.New(typst.Config{
		Bin:           cfg.TypstBin,
		FontDir:       cfg.FontDir,
		MaxConcurrent: cfg.MaxWorkers,
	}, log)
	docxGen := docx.NewGenerator(log)
	orchestrator := render.New(render.Config{
		MaxArtifactBytes: cfg.MaxPDFSizeBytes,
		Timeout:          cfg.RequestTimeout,
	}, log, documentCache, compiler, docxGen)

	// Warm the compiler off the request path.
	go func() {
		warmCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
		defer cancel()
		if _, err := compiler.Compile(warmCtx, "#set page(width: 10cm, height: 10cm)\nready\n"); err != nil {
			log.Warn("Compiler warm-up failed", "error", err)
		}
	}()

	// Jobs
	var jobQueue *jobs.Queue
	var jobStore *jobs.Store
	if store != nil {
		jobStore = jobs.NewStore(store, cfg.JobRetention, log)
		jobQueue = jobs.NewQueue(jobs.QueueConfig{
			Workers:     cfg.JobWorkers,
			QueueSize:   cfg.JobQueueSize,
			JobDeadline: cfg.JobDeadline,
		}, log, jobStore, orchestrator)
		jobQueue.Start(ctx)
	} else {
		log.Warn("Async job facility disabled: no KV backend")
	}

	// Rate limiter
	limiter := ratelimit.New(ratelimit.Config{
		Enabled:   cfg.RateLimitEnabled,
		PerMinute: cfg.RateLimitPerMinute,
		Burst:     cfg.RateLimitBurst,
	}, store, log)

	// Handlers
	log.Info("Setting up handlers...")
	routerCfg := httpx.RouterConfig{
		Log:             log,
		HealthHandler:   httpH.NewHealthHandler(compiler),
		MetricsHandler:  httpH.NewMetricsHandler(documentCache),
		TemplateHandler: httpH.NewTemplateHandler(),
		GenerateHandler: httpH.NewGenerateHandler(log, orchestrator),
		RateLimiter:     limiter,
		TracingOn:       tracingOn,
		MaxBodyBytes:    cfg.MaxRequestBytes,
	}
	if jobQueue != nil {
		routerCfg.JobHandler = httpH.NewJobHandler(jobQueue, jobStore)
	}
	router := httpx.NewRouter(routerCfg)

	srv := httpx.NewServer(":"+cfg.Port, router, cfg.RequestTimeout)
	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")
	if err := httpx.Shutdown(srv, 15*time.Second); err != nil {
		log.Warn("Graceful shutdown incomplete", "error", err)
	}
	if jobQueue != nil {
		jobQueue.Wait()
	}
}
