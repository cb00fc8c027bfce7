package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/typeset-backend/internal/cache"
	"github.com/yungbote/typeset-backend/internal/http/response"
)

type MetricsHandler struct {
	cache *cache.Cache
}

func NewMetricsHandler(c *cache.Cache) *MetricsHandler {
	return &MetricsHandler{cache: c}
}

// GET /metrics
func (h *MetricsHandler) Metrics(c *gin.Context) {
	response.RespondOK(c, gin.H{"cache": h.cache.Metrics(c.Request.Context())})
}
