package jobs

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustimonials/internal/worker"
	"trustimonials/models"
)

type fakeQueue struct {
	pending []models.ProcessingJob
	limits  []int
	failed  map[string]string
}

func (q *fakeQueue) Claim(ctx context.Context, limit int) ([]models.ProcessingJob, error) {
	q.limits = append(q.limits, limit)
	if limit > len(q.pending) {
		limit = len(q.pending)
	}
	out := q.pending[:limit]
	q.pending = q.pending[limit:]
	return out, nil
}

func (q *fakeQueue) Fail(ctx context.Context, jobID string, message string) error {
	if q.failed == nil {
		q.failed = map[string]string{}
	}
	q.failed[jobID] = message
	return nil
}

type fakePool struct {
	capacity  int
	submitted []worker.Job
}

func (p *fakePool) SubmitJob(job worker.Job) error {
	if len(p.submitted) >= p.capacity {
		return worker.ErrQueueFull
	}
	p.submitted = append(p.submitted, job)
	return nil
}

func (p *fakePool) Available() int { return p.capacity - len(p.submitted) }

func thumbnailRecord(t *testing.T) models.ProcessingJob {
	t.Helper()
	meta, err := json.Marshal(models.ThumbnailJobMetadata{ProjectID: uuid.New(), VideoPath: "p/videos/a.mp4"})
	require.NoError(t, err)
	return models.ProcessingJob{ID: uuid.New(), JobType: models.JobTypeThumbnail, EntityID: uuid.New(), Metadata: meta}
}

func TestPoller_ClaimsOnlyWhatThePoolAccepts(t *testing.T) {
	queue := &fakeQueue{pending: []models.ProcessingJob{thumbnailRecord(t), thumbnailRecord(t), thumbnailRecord(t)}}
	pool := &fakePool{capacity: 2}
	p := &Poller{Queue: queue, Pool: pool, BatchSize: 10, Logger: quietLogger()}

	n, err := p.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, queue.pending, 1)

	n, err = p.Poll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, []int{2}, queue.limits, "a full pool does not claim")
}

func TestPoller_BatchSizeCapsClaims(t *testing.T) {
	queue := &fakeQueue{}
	p := &Poller{Queue: queue, Pool: &fakePool{capacity: 50}, BatchSize: 5, Logger: quietLogger()}
	_, err := p.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{5}, queue.limits)
}

func TestPoller_FailsUnknownJobs(t *testing.T) {
	bad := models.ProcessingJob{ID: uuid.New(), JobType: "transcode"}
	queue := &fakeQueue{pending: []models.ProcessingJob{bad, thumbnailRecord(t)}}
	pool := &fakePool{capacity: 5}
	p := &Poller{Queue: queue, Pool: pool, Logger: quietLogger()}

	n, err := p.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, queue.failed[bad.ID.String()], "unknown job type")
}

func TestPoller_RunStopsWithContext(t *testing.T) {
	p := &Poller{Queue: &fakeQueue{}, Pool: &fakePool{capacity: 1}, Interval: time.Millisecond, Logger: quietLogger()}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.NoError(t, p.Run(ctx))
}
