package app

import (
	"time"

	"github.com/yungbote/typeset-backend/internal/pkg/logger"
	"github.com/yungbote/typeset-backend/internal/utils"
)

type Config struct {
	Port    string
	LogMode string

	CacheEnabled bool
	PDFCacheTTL  time.Duration
	TypstTTL     time.Duration
	CacheOpTO    time.Duration

	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	RedisSSL      bool
	RedisMaxConns int

	MaxWorkers      int
	JobWorkers      int
	JobQueueSize    int
	JobRetention    time.Duration
	JobDeadline     time.Duration
	MaxPDFSizeBytes int64
	MaxRequestBytes int64
	RequestTimeout  time.Duration

	RateLimitEnabled   bool
	RateLimitPerMinute int
	RateLimitBurst     int

	TypstBin string
	FontDir  string

	OtelMode     string
	OtelEndpoint string
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:    utils.GetEnv("PORT", "8080", log),
		LogMode: utils.GetEnv("LOG_MODE", "development", log),

		CacheEnabled: utils.GetEnvAsBool("CACHE_ENABLED", true, log),
		PDFCacheTTL:  utils.GetEnvAsDuration("PDF_CACHE_TTL", 24*time.Hour, log),
		TypstTTL:     utils.GetEnvAsDuration("TYPST_CACHE_TTL", 12*time.Hour, log),
		CacheOpTO:    time.Duration(utils.GetEnvAsInt("CACHE_OP_TIMEOUT_MS", 250, log)) * time.Millisecond,

		RedisHost:     utils.GetEnv("REDIS_HOST", "localhost", log),
		RedisPort:     utils.GetEnvAsInt("REDIS_PORT", 6379, log),
		RedisDB:       utils.GetEnvAsInt("REDIS_DB", 0, log),
		RedisPassword: utils.GetEnv("REDIS_PASSWORD", "", log),
		RedisSSL:      utils.GetEnvAsBool("REDIS_SSL", false, log),
		RedisMaxConns: utils.GetEnvAsInt("REDIS_MAX_CONNECTIONS", 50, log),

		MaxWorkers:      utils.GetEnvAsInt("MAX_WORKERS", 4, log),
		JobWorkers:      utils.GetEnvAsInt("JOB_WORKERS", 32, log),
		JobQueueSize:    utils.GetEnvAsInt("JOB_QUEUE_SIZE", 256, log),
		JobRetention:    utils.GetEnvAsDuration("JOB_RETENTION_SECONDS", time.Hour, log),
		JobDeadline:     utils.GetEnvAsDuration("JOB_DEADLINE_SECONDS", 5*time.Minute, log),
		MaxPDFSizeBytes: utils.GetEnvAsInt64("MAX_PDF_SIZE_BYTES", 26214400, log),
		MaxRequestBytes: utils.GetEnvAsInt64("MAX_REQUEST_BYTES", 10485760, log),
		RequestTimeout:  utils.GetEnvAsDuration("REQUEST_TIMEOUT_SECONDS", 120*time.Second, log),

		RateLimitEnabled:   utils.GetEnvAsBool("RATE_LIMIT_ENABLED", true, log),
		RateLimitPerMinute: utils.GetEnvAsInt("RATE_LIMIT_PER_MINUTE", 60, log),
		RateLimitBurst:     utils.GetEnvAsInt("RATE_LIMIT_BURST", 20, log),

		TypstBin: utils.GetEnv("TYPST_BIN", "typst", log),
		FontDir:  utils.GetEnv("FONT_DIR", "fonts", log),

		OtelMode:     utils.GetEnv("OTEL_MODE", "off", log),
		OtelEndpoint: utils.GetEnv("OTEL_ENDPOINT", "", log),
	}
}
