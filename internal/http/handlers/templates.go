package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/typeset-backend/internal/errdefs"
	"github.com/yungbote/typeset-backend/internal/http/response"
	"github.com/yungbote/typeset-backend/internal/templates"
	"github.com/yungbote/typeset-backend/internal/types"
)

type TemplateHandler struct{}

func NewTemplateHandler() *TemplateHandler { return &TemplateHandler{} }

func docTypeParam(c *gin.Context) (types.DocumentType, error) {
	docType := types.DocumentType(c.Param("doc_type"))
	if !docType.Valid() {
		return "", errdefs.E(errdefs.APINotFound, "Document type '%s' is not supported", docType).
			WithContext("available_types", "resume, cover_letter")
	}
	return docType, nil
}

// GET /templates
func (h *TemplateHandler) List(c *gin.Context) {
	response.RespondOK(c, gin.H{"templates": templates.List("")})
}

// GET /templates/:doc_type
func (h *TemplateHandler) ListByType(c *gin.Context) {
	docType, err := docTypeParam(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"templates": templates.List(docType)})
}

// GET /template-info/:doc_type/:name
func (h *TemplateHandler) Info(c *gin.Context) {
	docType, err := docTypeParam(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	info, err := templates.Get(docType, c.Param("name"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, info)
}

// GET /schema/:doc_type
func (h *TemplateHandler) Schema(c *gin.Context) {
	docType, err := docTypeParam(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"schema":  templates.JSONSchema(docType),
		"example": templates.ExampleData(docType),
	})
}
