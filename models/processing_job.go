package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Job types.
const (
	JobTypeThumbnail = "generate_thumbnail"
)

// Job statuses.
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// ProcessingJob represents the structure of a processing job in the database.
type ProcessingJob struct {
	ID           uuid.UUID       `json:"id"`
	JobType      string          `json:"job_type"`
	EntityID     uuid.UUID       `json:"entity_id"`
	EntityType   string          `json:"entity_type"`
	Status       string          `json:"status"`
	ErrorMessage *string         `json:"error_message,omitempty"` // Nullable TEXT
	Metadata     json.RawMessage `json:"metadata,omitempty"`      // Nullable JSONB
	Output       json.RawMessage `json:"output,omitempty"`        // Nullable JSONB
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	StartedAt    *time.Time      `json:"started_at,omitempty"`   // Nullable TIMESTAMPTZ
	CompletedAt  *time.Time      `json:"completed_at,omitempty"` // Nullable TIMESTAMPTZ
}

// ThumbnailJobMetadata is the metadata document of a thumbnail job.
type ThumbnailJobMetadata struct {
	ProjectID uuid.UUID `json:"project_id"`
	VideoPath string    `json:"video_path"`
}
