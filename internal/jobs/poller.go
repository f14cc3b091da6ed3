package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"trustimonials/internal/worker"
	"trustimonials/models"
)

// Claimer hands out pending processing_jobs rows. *db.JobQueue implements it.
type Claimer interface {
	Claim(ctx context.Context, limit int) ([]models.ProcessingJob, error)
	Fail(ctx context.Context, jobID string, message string) error
}

// Submitter is the part of *worker.Dispatcher the poller uses.
type Submitter interface {
	SubmitJob(job worker.Job) error
	Available() int
}

// Poller moves claimed rows onto the worker pool. It never claims more rows
// than the pool can queue, so claimed jobs are not left waiting in memory.
type Poller struct {
	Queue     Claimer
	Pool      Submitter
	Deps      Deps
	Interval  time.Duration
	BatchSize int
	Logger    *logrus.Logger
}

// Run polls every Interval until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	interval := p.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, err := p.Poll(ctx); err != nil && ctx.Err() == nil {
			p.Logger.WithError(err).Error("Failed to claim processing jobs")
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Poll claims and submits one batch and returns how many jobs were submitted.
func (p *Poller) Poll(ctx context.Context) (int, error) {
	limit := p.Pool.Available()
	if p.BatchSize > 0 && limit > p.BatchSize {
		limit = p.BatchSize
	}
	if limit <= 0 {
		return 0, nil
	}
	records, err := p.Queue.Claim(ctx, limit)
	if err != nil {
		return 0, err
	}

	submitted := 0
	for _, rec := range records {
		entry := p.Logger.WithFields(logrus.Fields{"job_id": rec.ID, "job_type": rec.JobType})
		job, err := FromRecord(rec, p.Deps)
		if err != nil {
			entry.WithError(err).Warn("Rejecting processing job")
			if failErr := p.Queue.Fail(ctx, rec.ID.String(), err.Error()); failErr != nil {
				entry.WithError(failErr).Error("Failed to mark job as failed")
			}
			continue
		}
		if err := p.Pool.SubmitJob(job); err != nil {
			// The row stays in processing and is requeued on the next start.
			entry.WithError(err).Warn("Could not submit claimed job")
			continue
		}
		submitted++
	}
	if submitted > 0 {
		p.Logger.WithField("count", submitted).Info("Submitted processing jobs")
	}
	return submitted, nil
}
