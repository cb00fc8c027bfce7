package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/typeset-backend/internal/errdefs"
)

type JobState string

const (
	JobPending   JobState = "pending"
	JobRunning   JobState = "running"
	JobSuccess   JobState = "success"
	JobFailed    JobState = "failed"
	JobCancelled JobState = "cancelled"
)

func (s JobState) Terminal() bool {
	return s == JobSuccess || s == JobFailed || s == JobCancelled
}

// Job is the persisted record of one async render. A success holds a
// ResultRef (cache key of the PDF bytes); a failure holds the structured
// error; the two are mutually exclusive.
type Job struct {
	ID         uuid.UUID              `json:"id"`
	State      JobState               `json:"state"`
	Request    *DocumentRequest       `json:"request,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	FinishedAt *time.Time             `json:"finished_at,omitempty"`
	ResultRef  string                 `json:"result_ref,omitempty"`
	Error      *errdefs.Envelope      `json:"error,omitempty"`
	Filename   string                 `json:"filename,omitempty"`
}
