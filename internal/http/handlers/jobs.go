package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/typeset-backend/internal/errdefs"
	"github.com/yungbote/typeset-backend/internal/http/response"
	"github.com/yungbote/typeset-backend/internal/jobs"
	"github.com/yungbote/typeset-backend/internal/types"
)

type JobHandler struct {
	queue *jobs.Queue
	store *jobs.Store
}

func NewJobHandler(queue *jobs.Queue, store *jobs.Store) *JobHandler {
	return &JobHandler{queue: queue, store: store}
}

func jobIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errdefs.Wrap(err, errdefs.APIInvalidParameter, "job id is not a valid UUID")
	}
	return id, nil
}

// POST /generate/async
func (h *JobHandler) Submit(c *gin.Context) {
	req, err := bindRequest(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	job, err := h.queue.Submit(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondAccepted(c, gin.H{"job_id": job.ID, "state": job.State})
}

// GET /jobs/:id
func (h *JobHandler) Get(c *gin.Context) {
	id, err := jobIDParam(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	job, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	payload := gin.H{
		"job_id":     job.ID,
		"state":      job.State,
		"created_at": job.CreatedAt,
	}
	if job.FinishedAt != nil {
		payload["finished_at"] = job.FinishedAt
	}
	if job.Error != nil {
		payload["error"] = job.Error.Error
	}
	response.RespondOK(c, payload)
}

// GET /jobs/:id/download
func (h *JobHandler) Download(c *gin.Context) {
	id, err := jobIDParam(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	job, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	switch job.State {
	case types.JobSuccess:
		payload, err := h.store.GetResult(c.Request.Context(), job.ResultRef)
		if err != nil {
			response.RespondError(c, err)
			return
		}
		filename := job.Filename
		if filename == "" {
			filename = "document.pdf"
		}
		response.RespondArtifact(c, types.FormatPDF.ContentType(), filename, payload)
	case types.JobPending, types.JobRunning:
		// Still baking: the client should keep polling.
		err := errdefs.E(errdefs.APIConflict, "job %s is %s; retry when it reports success", id, job.State)
		c.JSON(http.StatusTooEarly, errdefs.NewEnvelope(err))
	default:
		response.RespondError(c, errdefs.E(errdefs.APINotFound, "job %s has no downloadable result (state %s)", id, job.State))
	}
}

// POST /jobs/:id/cancel
func (h *JobHandler) Cancel(c *gin.Context) {
	id, err := jobIDParam(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	job, err := h.store.Cancel(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"job_id": job.ID, "state": job.State})
}
