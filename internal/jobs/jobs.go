// Package jobs turns processing_jobs rows into runnable worker jobs.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"trustimonials/internal/ffmpeg"
	"trustimonials/internal/storage"
	"trustimonials/internal/worker"
	"trustimonials/models"
)

var ErrUnknownJobType = errors.New("unknown job type")

// Thumbnailer is implemented by *ffmpeg.Tool.
type Thumbnailer interface {
	GenerateThumbnail(ctx context.Context, input, output string, opts ffmpeg.ThumbnailOptions) (*ffmpeg.ThumbnailResult, error)
}

// DataMerger patches a testimonial's data blob without an ownership check.
type DataMerger interface {
	MergeTestimonialData(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error
}

// Deps are the collaborators shared by every job.
type Deps struct {
	Bucket      storage.Bucket
	Thumbnailer Thumbnailer
	Data        DataMerger
	Options     ffmpeg.ThumbnailOptions
	TempDir     string
	Logger      *logrus.Logger
}

// FromRecord builds the job described by a claimed processing_jobs row.
func FromRecord(rec models.ProcessingJob, deps Deps) (worker.Job, error) {
	switch rec.JobType {
	case models.JobTypeThumbnail:
		var meta models.ThumbnailJobMetadata
		if err := json.Unmarshal(rec.Metadata, &meta); err != nil {
			return nil, fmt.Errorf("invalid metadata for job %s: %w", rec.ID, err)
		}
		if meta.VideoPath == "" {
			return nil, fmt.Errorf("job %s has no video_path", rec.ID)
		}
		return NewThumbnailJob(rec.ID.String(), rec.EntityID, meta, deps), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownJobType, rec.JobType)
	}
}
