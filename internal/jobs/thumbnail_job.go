package jobs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"trustimonials/internal/storage"
	"trustimonials/internal/store"
	"trustimonials/models"
)

// ThumbnailJob renders the poster image of a video testimonial.
type ThumbnailJob struct {
	JobID         string
	TestimonialID uuid.UUID
	Meta          models.ThumbnailJobMetadata
	deps          Deps
}

// ThumbnailOutput is stored in processing_jobs.output.
type ThumbnailOutput struct {
	ThumbnailPath string  `json:"thumbnail_path"`
	ThumbnailURL  string  `json:"thumbnail_url"`
	Duration      float64 `json:"duration,omitempty"`
	Seek          float64 `json:"seek"`
}

func NewThumbnailJob(jobID string, testimonialID uuid.UUID, meta models.ThumbnailJobMetadata, deps Deps) *ThumbnailJob {
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}
	return &ThumbnailJob{JobID: jobID, TestimonialID: testimonialID, Meta: meta, deps: deps}
}

func (j *ThumbnailJob) ID() string   { return j.JobID }
func (j *ThumbnailJob) Type() string { return models.JobTypeThumbnail }

// Payload returns the input parameters of the job for logging.
func (j *ThumbnailJob) Payload() interface{} { return j.Meta }

// Execute downloads the video into a private temp dir, generates the WebP
// poster, uploads it next to the project's other thumbnails and records the
// URL on the testimonial. The temp dir is removed on every path.
func (j *ThumbnailJob) Execute(ctx context.Context) (interface{}, error) {
	log := j.deps.Logger.WithFields(logrus.Fields{
		"job_id":         j.JobID,
		"testimonial_id": j.TestimonialID,
		"video_path":     j.Meta.VideoPath,
	})

	scratch, err := os.MkdirTemp(j.deps.TempDir, "thumbnail-job-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	video, err := j.deps.Bucket.Download(ctx, j.Meta.VideoPath)
	if err != nil {
		return nil, err
	}
	input := filepath.Join(scratch, "input"+path.Ext(j.Meta.VideoPath))
	if err := os.WriteFile(input, video, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write video to temp dir: %w", err)
	}

	output := filepath.Join(scratch, "thumbnail.webp")
	res, err := j.deps.Thumbnailer.GenerateThumbnail(ctx, input, output, j.deps.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to generate thumbnail: %w", err)
	}

	f, err := os.Open(output)
	if err != nil {
		return nil, fmt.Errorf("failed to open thumbnail: %w", err)
	}
	defer f.Close()

	objectPath := storage.ThumbnailPath(j.Meta.ProjectID, j.TestimonialID)
	if err := j.deps.Bucket.Upload(ctx, objectPath, f, "image/webp"); err != nil {
		return nil, err
	}
	// The object path is stable across regenerations, so the URL carries the
	// job id to defeat CDN caches.
	url := j.deps.Bucket.PublicURL(objectPath) + "?v=" + j.JobID

	patch := map[string]interface{}{
		"thumbnail_url":  url,
		"thumbnail_path": objectPath,
	}
	if res.Duration > 0 {
		patch["duration"] = res.Duration.Seconds()
	}
	if err := j.deps.Data.MergeTestimonialData(ctx, j.TestimonialID, patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Deleted while the job ran; nothing references the upload.
			if rerr := j.deps.Bucket.Remove(context.WithoutCancel(ctx), objectPath); rerr != nil {
				log.WithError(rerr).Warn("Failed to remove orphaned thumbnail")
			}
		}
		return nil, fmt.Errorf("failed to record thumbnail on testimonial: %w", err)
	}

	log.WithField("thumbnail_path", objectPath).Info("Thumbnail generated")
	return ThumbnailOutput{
		ThumbnailPath: objectPath,
		ThumbnailURL:  url,
		Duration:      res.Duration.Seconds(),
		Seek:          res.Seek.Seconds(),
	}, nil
}
