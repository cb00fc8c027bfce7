package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/typeset-backend/internal/errdefs"
	"github.com/yungbote/typeset-backend/internal/pkg/logger"
	"github.com/yungbote/typeset-backend/internal/render"
	"github.com/yungbote/typeset-backend/internal/types"
)

type QueueConfig struct {
	Workers     int
	QueueSize   int
	JobDeadline time.Duration
}

// Queue accepts render requests, persists a job record, and hands the
// snapshot to a fixed-size worker pool over a bounded channel. A full
// channel rejects the submission; it never blocks a request goroutine for
// long or drops work silently.
type Queue struct {
	cfg   QueueConfig
	log   *logger.Logger
	store *Store
	orch  *render.Orchestrator
	tasks chan *types.Job
	group *errgroup.Group
}

func NewQueue(cfg QueueConfig, log *logger.Logger, store *Store, orch *render.Orchestrator) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 32
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.JobDeadline <= 0 {
		cfg.JobDeadline = 5 * time.Minute
	}
	return &Queue{
		cfg:   cfg,
		log:   log.With("service", "JobQueue"),
		store: store,
		orch:  orch,
		tasks: make(chan *types.Job, cfg.QueueSize),
	}
}

// Start launches the worker pool. Workers exit when ctx is cancelled.
func (q *Queue) Start(ctx context.Context) {
	group, groupCtx := errgroup.WithContext(ctx)
	q.group = group
	for i := 0; i < q.cfg.Workers; i++ {
		group.Go(func() error {
			for {
				select {
				case <-groupCtx.Done():
					return groupCtx.Err()
				case job := <-q.tasks:
					q.process(groupCtx, job)
				}
			}
		})
	}
	q.log.Info("Job workers started", "workers", q.cfg.Workers, "queue_size", q.cfg.QueueSize)
}

// Wait blocks until every worker has exited; call after cancelling the
// context passed to Start.
func (q *Queue) Wait() {
	if q.group != nil {
		_ = q.group.Wait()
	}
}

// Submit persists a pending job and enqueues it. A full queue rejects with
// a resource-exhausted error and marks the record failed.
func (q *Queue) Submit(ctx context.Context, req *types.DocumentRequest) (*types.Job, error) {
	job := &types.Job{
		ID:        uuid.New(),
		State:     types.JobPending,
		Request:   req,
		CreatedAt: time.Now().UTC(),
	}
	if err := q.store.Create(ctx, job); err != nil {
		return nil, err
	}
	select {
	case q.tasks <- job:
		return job, nil
	default:
		_ = q.store.MarkFailed(ctx, job.ID,
			errdefs.E(errdefs.SysResourceExhausted, "job queue is full"))
		return nil, errdefs.E(errdefs.SysResourceExhausted, "job queue is full, retry later")
	}
}

func (q *Queue) process(ctx context.Context, job *types.Job) {
	claimed, err := q.store.MarkRunning(ctx, job.ID)
	if err != nil {
		q.log.Warn("Job claim failed", "job_id", job.ID, "error", err)
		return
	}
	if !claimed {
		// Cancelled while queued.
		return
	}

	jobCtx, cancel := context.WithTimeout(ctx, q.cfg.JobDeadline)
	defer cancel()

	started := time.Now()
	artifact, err := q.orch.Generate(jobCtx, job.Request)
	if err != nil {
		if errors.Is(jobCtx.Err(), context.DeadlineExceeded) {
			err = errdefs.Wrap(err, errdefs.APIRequestTimeout, "job exceeded its deadline")
		}
		q.log.Warn("Job failed", "job_id", job.ID, "took", time.Since(started).String(), "error", err)
		if markErr := q.store.MarkFailed(ctx, job.ID, err); markErr != nil {
			q.log.Error("Job failure not recorded", "job_id", job.ID, "error", markErr)
		}
		return
	}

	ref, err := q.store.PutResult(ctx, job.ID, artifact.Bytes)
	if err != nil {
		q.log.Error("Job result not stored", "job_id", job.ID, "error", err)
		_ = q.store.MarkFailed(ctx, job.ID, err)
		return
	}
	if err := q.store.MarkSuccess(ctx, job.ID, ref, artifact.Filename); err != nil {
		q.log.Warn("Job success not recorded, result discarded", "job_id", job.ID, "error", err)
		return
	}
	q.log.Info("Job completed", "job_id", job.ID, "took", time.Since(started).String(), "bytes", len(artifact.Bytes))
}
