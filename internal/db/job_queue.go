package db

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"trustimonials/internal/store"
	"trustimonials/models"
)

// Conn is the part of *pgxpool.Pool the queue uses.
type Conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// JobQueue claims and settles rows of processing_jobs. Several processors may
// poll the same table; SKIP LOCKED keeps them from claiming the same row.
type JobQueue struct {
	conn Conn
}

func NewJobQueue(conn Conn) *JobQueue {
	return &JobQueue{conn: conn}
}

const claimSQL = `
UPDATE processing_jobs
SET status = 'processing', started_at = now(), updated_at = now()
WHERE id IN (
	SELECT id FROM processing_jobs
	WHERE status = 'pending'
	ORDER BY created_at
	LIMIT $1
	FOR UPDATE SKIP LOCKED
)
RETURNING id, job_type, entity_id, entity_type, status, metadata, created_at, updated_at, started_at`

// Claim marks up to limit pending jobs as processing and returns them, oldest first.
func (q *JobQueue) Claim(ctx context.Context, limit int) ([]models.ProcessingJob, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := q.conn.Query(ctx, claimSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to claim jobs: %w", err)
	}
	defer rows.Close()

	var claimed []models.ProcessingJob
	for rows.Next() {
		var (
			j        models.ProcessingJob
			metadata []byte
			started  *time.Time
		)
		if err := rows.Scan(&j.ID, &j.JobType, &j.EntityID, &j.EntityType, &j.Status, &metadata, &j.CreatedAt, &j.UpdatedAt, &started); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		j.Metadata = metadata
		j.StartedAt = started
		claimed = append(claimed, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read claimed jobs: %w", err)
	}
	// RETURNING does not preserve the subquery order.
	sort.SliceStable(claimed, func(a, b int) bool { return claimed[a].CreatedAt.Before(claimed[b].CreatedAt) })
	return claimed, nil
}

// Complete records a successful job and its output document.
func (q *JobQueue) Complete(ctx context.Context, jobID string, output interface{}) error {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return fmt.Errorf("invalid job id %q: %w", jobID, err)
	}
	var payload []byte
	if output != nil {
		if payload, err = json.Marshal(output); err != nil {
			return fmt.Errorf("failed to marshal output details: %w", err)
		}
	}
	tag, err := q.conn.Exec(ctx, `
UPDATE processing_jobs
SET status = 'completed', output = $2, error_message = NULL, completed_at = now(), updated_at = now()
WHERE id = $1`, id, payload)
	if err != nil {
		return fmt.Errorf("failed to complete job %s: %w", jobID, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Fail records a failed job. There is no automatic retry; the dashboard can
// enqueue a fresh job.
func (q *JobQueue) Fail(ctx context.Context, jobID string, message string) error {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return fmt.Errorf("invalid job id %q: %w", jobID, err)
	}
	tag, err := q.conn.Exec(ctx, `
UPDATE processing_jobs
SET status = 'failed', error_message = $2, completed_at = now(), updated_at = now()
WHERE id = $1`, id, message)
	if err != nil {
		return fmt.Errorf("failed to record failure of job %s: %w", jobID, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// RequeueStale returns jobs stuck in processing for longer than olderThan to
// pending. A processor that crashed mid-job leaves such rows behind.
func (q *JobQueue) RequeueStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	tag, err := q.conn.Exec(ctx, `
UPDATE processing_jobs
SET status = 'pending', started_at = NULL, updated_at = now()
WHERE status = 'processing' AND started_at < now() - make_interval(secs => $1)`, olderThan.Seconds())
	if err != nil {
		return 0, fmt.Errorf("failed to requeue stale jobs: %w", err)
	}
	return tag.RowsAffected(), nil
}

// MergeTestimonialData shallow-merges patch into testimonials.data. Keys whose
// value is nil are removed, matching models.MergeData.
func (q *JobQueue) MergeTestimonialData(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	set := map[string]interface{}{}
	var remove []string
	for k, v := range patch {
		if v == nil {
			remove = append(remove, k)
			continue
		}
		set[k] = v
	}
	payload, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to marshal data patch: %w", err)
	}
	if remove == nil {
		remove = []string{}
	}
	tag, err := q.conn.Exec(ctx, `
UPDATE testimonials
SET data = (coalesce(data, '{}'::jsonb) || $2::jsonb) - $3::text[], updated_at = now()
WHERE id = $1`, id, payload, remove)
	if err != nil {
		return fmt.Errorf("failed to update testimonial %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
