package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/typeset-backend/internal/cache"
	"github.com/yungbote/typeset-backend/internal/docx"
	"github.com/yungbote/typeset-backend/internal/errdefs"
	"github.com/yungbote/typeset-backend/internal/kv"
	"github.com/yungbote/typeset-backend/internal/pkg/logger"
	"github.com/yungbote/typeset-backend/internal/render"
	"github.com/yungbote/typeset-backend/internal/types"
)

type okCompiler struct{}

func (okCompiler) Compile(_ context.Context, source string) ([]byte, error) {
	return []byte("%PDF-1.7 stub"), nil
}
func (okCompiler) Ready() bool { return true }

type failCompiler struct{}

func (failCompiler) Compile(context.Context, string) ([]byte, error) {
	return nil, errdefs.E(errdefs.TplTypstCompileFailed, "Typst compilation failed: boom")
}
func (failCompiler) Ready() bool { return true }

func testLog(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	require.NoError(t, err)
	return log
}

func testQueue(t *testing.T, comp interface {
	Compile(context.Context, string) ([]byte, error)
	Ready() bool
}) (*Queue, *Store, context.CancelFunc) {
	t.Helper()
	log := testLog(t)
	store := NewStore(kv.NewMemory(), time.Hour, log)
	documentCache := cache.New(kv.NewMemory(), cache.Config{Enabled: true}, log)
	orch := render.New(render.Config{}, log, documentCache, comp, docx.NewGenerator(log))
	q := NewQueue(QueueConfig{Workers: 2, QueueSize: 4, JobDeadline: 10 * time.Second}, log, store, orch)
	ctx, cancel := context.WithCancel(context.Background())
	q.Start(ctx)
	return q, store, cancel
}

func renderRequest() *types.DocumentRequest {
	return &types.DocumentRequest{
		DocumentType: types.DocumentTypeResume,
		Template:     "classic",
		Format:       types.FormatPDF,
		Data: map[string]any{
			"personalInfo": map[string]any{"name": "A B", "email": "a@b.co"},
		},
	}
}

func waitTerminal(t *testing.T, store *Store, id uuid.UUID) *types.Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, err := store.Get(context.Background(), id)
		require.NoError(t, err)
		if job.State.Terminal() {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("job never reached a terminal state")
	return nil
}

func TestSubmitAndSucceed(t *testing.T) {
	q, store, cancel := testQueue(t, okCompiler{})
	defer cancel()

	job, err := q.Submit(context.Background(), renderRequest())
	require.NoError(t, err)
	assert.Equal(t, types.JobPending, job.State)

	done := waitTerminal(t, store, job.ID)
	assert.Equal(t, types.JobSuccess, done.State)
	assert.NotEmpty(t, done.ResultRef)
	assert.Nil(t, done.Error)
	assert.NotNil(t, done.FinishedAt)
	assert.Equal(t, "resume_A_B.pdf", done.Filename)

	payload, err := store.GetResult(context.Background(), done.ResultRef)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7 stub"), payload)
}

func TestSubmitAndFail(t *testing.T) {
	q, store, cancel := testQueue(t, failCompiler{})
	defer cancel()

	job, err := q.Submit(context.Background(), renderRequest())
	require.NoError(t, err)

	done := waitTerminal(t, store, job.ID)
	assert.Equal(t, types.JobFailed, done.State)
	assert.Empty(t, done.ResultRef)
	require.NotNil(t, done.Error)
	assert.Equal(t, errdefs.TplTypstCompileFailed, done.Error.Error.Code)
}

func TestQueueFullRejects(t *testing.T) {
	log := testLog(t)
	store := NewStore(kv.NewMemory(), time.Hour, log)
	documentCache := cache.New(kv.NewMemory(), cache.Config{Enabled: true}, log)
	orch := render.New(render.Config{}, log, documentCache, okCompiler{}, docx.NewGenerator(log))
	// Never started: nothing drains the channel.
	q := NewQueue(QueueConfig{Workers: 1, QueueSize: 2}, log, store, orch)

	_, err := q.Submit(context.Background(), renderRequest())
	require.NoError(t, err)
	_, err = q.Submit(context.Background(), renderRequest())
	require.NoError(t, err)
	_, err = q.Submit(context.Background(), renderRequest())
	require.Error(t, err)
	assert.Equal(t, errdefs.SysResourceExhausted, errdefs.As(err).Code)
}

func TestCancelPending(t *testing.T) {
	log := testLog(t)
	store := NewStore(kv.NewMemory(), time.Hour, log)

	job := &types.Job{ID: uuid.New(), State: types.JobPending, CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Create(context.Background(), job))

	cancelled, err := store.Cancel(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, types.JobCancelled, cancelled.State)

	// A cancelled job is never claimed.
	claimed, err := store.MarkRunning(context.Background(), job.ID)
	require.NoError(t, err)
	assert.False(t, claimed)

	// Cancelling again is a no-op on an already-terminal job.
	again, err := store.Cancel(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, types.JobCancelled, again.State)
}

func TestCancelRunningConflicts(t *testing.T) {
	log := testLog(t)
	store := NewStore(kv.NewMemory(), time.Hour, log)

	job := &types.Job{ID: uuid.New(), State: types.JobPending, CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Create(context.Background(), job))
	claimed, err := store.MarkRunning(context.Background(), job.ID)
	require.NoError(t, err)
	require.True(t, claimed)

	_, err = store.Cancel(context.Background(), job.ID)
	require.Error(t, err)
	assert.Equal(t, errdefs.APIConflict, errdefs.As(err).Code)
}

func TestStateInvariants(t *testing.T) {
	log := testLog(t)
	store := NewStore(kv.NewMemory(), time.Hour, log)

	job := &types.Job{ID: uuid.New(), State: types.JobPending, CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Create(context.Background(), job))

	// success requires running first
	require.NoError(t, store.MarkSuccess(context.Background(), job.ID, "jobresult:x", "f.pdf"))
	got, err := store.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, types.JobPending, got.State)

	claimed, err := store.MarkRunning(context.Background(), job.ID)
	require.NoError(t, err)
	require.True(t, claimed)
	require.NoError(t, store.MarkSuccess(context.Background(), job.ID, "jobresult:x", "f.pdf"))

	got, err = store.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, types.JobSuccess, got.State)
	assert.NotEmpty(t, got.ResultRef)
	assert.Nil(t, got.Error)
}

func TestGetUnknownJob(t *testing.T) {
	store := NewStore(kv.NewMemory(), time.Hour, testLog(t))
	_, err := store.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, errdefs.APINotFound, errdefs.As(err).Code)
}
