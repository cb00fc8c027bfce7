package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/typeset-backend/internal/http/handlers"
	httpMW "github.com/yungbote/typeset-backend/internal/http/middleware"
	"github.com/yungbote/typeset-backend/internal/pkg/logger"
	"github.com/yungbote/typeset-backend/internal/ratelimit"
)

type RouterConfig struct {
	Log *logger.Logger

	HealthHandler   *httpH.HealthHandler
	MetricsHandler  *httpH.MetricsHandler
	TemplateHandler *httpH.TemplateHandler
	GenerateHandler *httpH.GenerateHandler
	JobHandler      *httpH.JobHandler

	RateLimiter  *ratelimit.Limiter
	TracingOn    bool
	MaxBodyBytes int64
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLog(cfg.Log))
	}
	r.Use(httpMW.CORS())
	if cfg.MaxBodyBytes > 0 {
		r.Use(httpMW.BodyLimit(cfg.MaxBodyBytes))
	}
	if cfg.TracingOn {
		r.Use(otelgin.Middleware("typeset-backend"))
	}
	if cfg.RateLimiter != nil {
		r.Use(httpMW.RateLimit(cfg.RateLimiter))
	}

	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Banner)
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}
	if cfg.MetricsHandler != nil {
		r.GET("/metrics", cfg.MetricsHandler.Metrics)
	}
	if cfg.TemplateHandler != nil {
		r.GET("/templates", cfg.TemplateHandler.List)
		r.GET("/templates/:doc_type", cfg.TemplateHandler.ListByType)
		r.GET("/template-info/:doc_type/:name", cfg.TemplateHandler.Info)
		r.GET("/schema/:doc_type", cfg.TemplateHandler.Schema)
	}
	if cfg.GenerateHandler != nil {
		r.POST("/validate", cfg.GenerateHandler.Validate)
		r.POST("/generate", cfg.GenerateHandler.Generate)
		r.POST("/generate-yaml", cfg.GenerateHandler.GenerateYAML)
		r.POST("/analyze", cfg.GenerateHandler.Analyze)
		r.POST("/analyze-pdf", cfg.GenerateHandler.AnalyzePDF)
	}
	if cfg.JobHandler != nil {
		r.POST("/generate/async", cfg.JobHandler.Submit)
		r.GET("/jobs/:id", cfg.JobHandler.Get)
		r.GET("/jobs/:id/download", cfg.JobHandler.Download)
		r.POST("/jobs/:id/cancel", cfg.JobHandler.Cancel)
	}

	return r
}
