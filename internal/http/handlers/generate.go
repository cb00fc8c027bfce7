package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/typeset-backend/internal/errdefs"
	"github.com/yungbote/typeset-backend/internal/http/response"
	"github.com/yungbote/typeset-backend/internal/pkg/logger"
	"github.com/yungbote/typeset-backend/internal/render"
	"github.com/yungbote/typeset-backend/internal/templates"
	"github.com/yungbote/typeset-backend/internal/types"
	"github.com/yungbote/typeset-backend/internal/validation"
)

type GenerateHandler struct {
	log  *logger.Logger
	orch *render.Orchestrator
}

func NewGenerateHandler(log *logger.Logger, orch *render.Orchestrator) *GenerateHandler {
	return &GenerateHandler{log: log.With("service", "GenerateHandler"), orch: orch}
}

func bindRequest(c *gin.Context) (*types.DocumentRequest, error) {
	var req types.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errdefs.Wrap(err, errdefs.APIRequestTooLarge, "request body exceeds the %d byte limit", tooLarge.Limit)
		}
		return nil, errdefs.Wrap(err, errdefs.APIMalformedRequest, "request body does not match the expected shape: %s", err.Error())
	}
	return &req, nil
}

// POST /generate
func (h *GenerateHandler) Generate(c *gin.Context) {
	req, err := bindRequest(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	h.respondArtifact(c, req)
}

// POST /generate-yaml
func (h *GenerateHandler) GenerateYAML(c *gin.Context) {
	var yreq types.YAMLDocumentRequest
	if err := c.ShouldBindJSON(&yreq); err != nil {
		response.RespondError(c, errdefs.Wrap(err, errdefs.APIMalformedRequest, "request body does not match the expected shape: %s", err.Error()))
		return
	}
	var data map[string]any
	if err := yaml.Unmarshal([]byte(yreq.Data), &data); err != nil {
		response.RespondError(c, errdefs.Wrap(err, errdefs.ValInvalidYAML, "data field is not valid YAML: %s", err.Error()))
		return
	}
	h.respondArtifact(c, &types.DocumentRequest{
		DocumentType:    yreq.DocumentType,
		Template:        yreq.Template,
		Format:          yreq.Format,
		Data:            data,
		UltraValidation: yreq.UltraValidation,
		SpacingMode:     yreq.SpacingMode,
	})
}

func (h *GenerateHandler) respondArtifact(c *gin.Context, req *types.DocumentRequest) {
	artifact, err := h.orch.Generate(c.Request.Context(), req)
	if err != nil {
		te := errdefs.As(err)
		if te.Code == errdefs.SysUnexpected || te.Code == errdefs.SysInternal {
			h.log.Error("Generate failed unexpectedly", "error", err)
		}
		response.RespondError(c, err)
		return
	}
	if artifact.CacheHit {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	response.RespondArtifact(c, artifact.ContentType, artifact.Filename, artifact.Bytes)
}

// POST /validate runs the validator without rendering and reports every
// finding.
func (h *GenerateHandler) Validate(c *gin.Context) {
	req, err := bindRequest(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if !req.DocumentType.Valid() {
		response.RespondError(c, errdefs.E(errdefs.APIInvalidParameter, "document_type '%s' is not supported", req.DocumentType).
			WithField("document_type"))
		return
	}
	if req.UltraValidation {
		result := validation.Ultra(req.DocumentType, req.Data, false)
		payload := gin.H{
			"valid":    result.Valid,
			"errors":   result.Errors,
			"warnings": result.Warnings,
		}
		if result.Valid {
			payload["normalized_data"] = result.Data
		}
		response.RespondOK(c, payload)
		return
	}
	if _, err := validation.Standard(req.DocumentType, req.Data); err != nil {
		te := errdefs.As(err)
		response.RespondOK(c, gin.H{
			"valid": false,
			"errors": []validation.Issue{{
				Code:     te.Code,
				Severity: errdefs.SeverityError,
				Field:    te.FieldPath,
				Message:  te.Message,
			}},
			"warnings": []validation.Issue{},
		})
		return
	}
	response.RespondOK(c, gin.H{"valid": true, "errors": []validation.Issue{}, "warnings": []validation.Issue{}})
}

// POST /analyze
func (h *GenerateHandler) Analyze(c *gin.Context) {
	analysis, err := h.analysisFor(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"analysis": analysis})
}

// POST /analyze-pdf
func (h *GenerateHandler) AnalyzePDF(c *gin.Context) {
	analysis, err := h.analysisFor(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"analysis": analysis.Density()})
}

func (h *GenerateHandler) analysisFor(c *gin.Context) (*templates.Analysis, error) {
	req, err := bindRequest(c)
	if err != nil {
		return nil, err
	}
	if !req.DocumentType.Valid() {
		return nil, errdefs.E(errdefs.APIInvalidParameter, "document_type '%s' is not supported", req.DocumentType).
			WithField("document_type")
	}
	return templates.Analyze(req.DocumentType, req.Template, req.Data, templates.Config{SpacingMode: req.SpacingMode})
}
