package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/typeset-backend/internal/http/response"
	"github.com/yungbote/typeset-backend/internal/typst"
)

const serviceVersion = "1.0.0"

type HealthHandler struct {
	compiler typst.Compiler
}

func NewHealthHandler(compiler typst.Compiler) *HealthHandler {
	return &HealthHandler{compiler: compiler}
}

// GET /
func (h *HealthHandler) Banner(c *gin.Context) {
	response.RespondOK(c, gin.H{
		"service": "typeset-backend",
		"message": "Resume and cover letter template engine",
		"version": serviceVersion,
	})
}

// GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ready := h.compiler != nil && h.compiler.Ready()
	response.RespondOK(c, gin.H{
		"status":         "healthy",
		"compiler_ready": ready,
	})
}
