// Package jobs is the async facility: a KV-backed job store with CAS state
// transitions and a fixed-size worker pool that runs the render pipeline.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/typeset-backend/internal/errdefs"
	"github.com/yungbote/typeset-backend/internal/kv"
	"github.com/yungbote/typeset-backend/internal/pkg/logger"
	"github.com/yungbote/typeset-backend/internal/types"
)

const (
	jobKeyPrefix    = "job:"
	resultKeyPrefix = "jobresult:"
	opTimeout       = 5 * time.Second
	// pendingTTL bounds how long a never-claimed record can linger.
	pendingTTL = 24 * time.Hour
)

type Store struct {
	store     kv.Store
	log       *logger.Logger
	retention time.Duration
}

func NewStore(store kv.Store, retention time.Duration, log *logger.Logger) *Store {
	if retention <= 0 {
		retention = time.Hour
	}
	return &Store{store: store, log: log.With("service", "JobStore"), retention: retention}
}

func jobKey(id uuid.UUID) string    { return jobKeyPrefix + id.String() }
func resultKey(id uuid.UUID) string { return resultKeyPrefix + id.String() }

func (s *Store) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, opTimeout)
}

func (s *Store) Create(ctx context.Context, job *types.Job) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return errdefs.Wrap(err, errdefs.SysUnexpected, "job encode failed")
	}
	opCtx, cancel := s.opCtx(ctx)
	defer cancel()
	ok, err := s.store.CompareAndSwap(opCtx, jobKey(job.ID), nil, raw, pendingTTL)
	if err != nil {
		return errdefs.Wrap(err, errdefs.SysDatabaseFailed, "job store unavailable")
	}
	if !ok {
		return errdefs.E(errdefs.APIConflict, "job %s already exists", job.ID)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	opCtx, cancel := s.opCtx(ctx)
	defer cancel()
	raw, err := s.store.Get(opCtx, jobKey(id))
	if errors.Is(err, kv.ErrNotFound) {
		return nil, errdefs.E(errdefs.APINotFound, "job %s not found", id)
	}
	if err != nil {
		return nil, errdefs.Wrap(err, errdefs.SysDatabaseFailed, "job store unavailable")
	}
	var job types.Job
	if err := json.Unmarshal(raw, &job); err != nil {
		return nil, errdefs.Wrap(err, errdefs.SysUnexpected, "job decode failed")
	}
	return &job, nil
}

// transition applies mutate under a read-CAS loop so concurrent writers
// (worker and cancel endpoint) cannot clobber each other. mutate returns
// false to abort without error.
func (s *Store) transition(ctx context.Context, id uuid.UUID, mutate func(*types.Job) bool) (*types.Job, bool, error) {
	for attempt := 0; attempt < 3; attempt++ {
		opCtx, cancel := s.opCtx(ctx)
		old, err := s.store.Get(opCtx, jobKey(id))
		cancel()
		if errors.Is(err, kv.ErrNotFound) {
			return nil, false, errdefs.E(errdefs.APINotFound, "job %s not found", id)
		}
		if err != nil {
			return nil, false, errdefs.Wrap(err, errdefs.SysDatabaseFailed, "job store unavailable")
		}
		var job types.Job
		if err := json.Unmarshal(old, &job); err != nil {
			return nil, false, errdefs.Wrap(err, errdefs.SysUnexpected, "job decode failed")
		}
		if !mutate(&job) {
			return &job, false, nil
		}
		raw, err := json.Marshal(&job)
		if err != nil {
			return nil, false, errdefs.Wrap(err, errdefs.SysUnexpected, "job encode failed")
		}
		ttl := pendingTTL
		if job.State.Terminal() {
			// Terminal jobs are reaped by TTL after the retention window.
			ttl = s.retention
		}
		opCtx, cancel = s.opCtx(ctx)
		swapped, err := s.store.CompareAndSwap(opCtx, jobKey(id), old, raw, ttl)
		cancel()
		if err != nil {
			return nil, false, errdefs.Wrap(err, errdefs.SysDatabaseFailed, "job store unavailable")
		}
		if swapped {
			return &job, true, nil
		}
	}
	return nil, false, errdefs.E(errdefs.APIConflict, "job %s transition contention", id)
}

// MarkRunning claims a pending job. Returns false when the job is no
// longer pending (cancelled while queued).
func (s *Store) MarkRunning(ctx context.Context, id uuid.UUID) (bool, error) {
	_, moved, err := s.transition(ctx, id, func(job *types.Job) bool {
		if job.State != types.JobPending {
			return false
		}
		job.State = types.JobRunning
		return true
	})
	return moved, err
}

func (s *Store) MarkSuccess(ctx context.Context, id uuid.UUID, resultRef, filename string) error {
	_, _, err := s.transition(ctx, id, func(job *types.Job) bool {
		if job.State != types.JobRunning {
			return false
		}
		now := time.Now().UTC()
		job.State = types.JobSuccess
		job.FinishedAt = &now
		job.ResultRef = resultRef
		job.Filename = filename
		job.Error = nil
		// The request snapshot is no longer needed once the job is
		// terminal; dropping it keeps reaped records small.
		job.Request = nil
		return true
	})
	return err
}

func (s *Store) MarkFailed(ctx context.Context, id uuid.UUID, cause error) error {
	envelope := errdefs.NewEnvelope(cause)
	_, _, err := s.transition(ctx, id, func(job *types.Job) bool {
		if job.State.Terminal() {
			return false
		}
		now := time.Now().UTC()
		job.State = types.JobFailed
		job.FinishedAt = &now
		job.ResultRef = ""
		job.Error = &envelope
		job.Request = nil
		return true
	})
	return err
}

// Cancel moves a pending job to cancelled. Running jobs are reported as a
// conflict; they complete or are abandoned per the best-effort contract.
func (s *Store) Cancel(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	job, moved, err := s.transition(ctx, id, func(job *types.Job) bool {
		if job.State != types.JobPending {
			return false
		}
		now := time.Now().UTC()
		job.State = types.JobCancelled
		job.FinishedAt = &now
		job.Request = nil
		return true
	})
	if err != nil {
		return nil, err
	}
	if !moved && !job.State.Terminal() {
		return nil, errdefs.E(errdefs.APIConflict, "job %s is %s and cannot be cancelled", id, job.State)
	}
	return job, nil
}

// PutResult stores the artifact bytes for a successful job under the
// retention TTL and returns the reference.
func (s *Store) PutResult(ctx context.Context, id uuid.UUID, payload []byte) (string, error) {
	opCtx, cancel := s.opCtx(ctx)
	defer cancel()
	ref := resultKey(id)
	if err := s.store.Set(opCtx, ref, payload, s.retention); err != nil {
		return "", errdefs.Wrap(err, errdefs.SysDatabaseFailed, "job result store unavailable")
	}
	return ref, nil
}

func (s *Store) GetResult(ctx context.Context, ref string) ([]byte, error) {
	opCtx, cancel := s.opCtx(ctx)
	defer cancel()
	raw, err := s.store.Get(opCtx, ref)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, errdefs.E(errdefs.APINotFound, "job result expired or missing")
	}
	if err != nil {
		return nil, errdefs.Wrap(err, errdefs.SysDatabaseFailed, "job result store unavailable")
	}
	return raw, nil
}
