package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Testimonial types.
const (
	TypeText  = "text"
	TypeVideo = "video"
)

// Testimonial moderation statuses.
const (
	StatusPublic  = "public"
	StatusHidden  = "hidden"
	StatusPending = "pending"
)

// Testimonial sources recorded in data.source.
const (
	SourceManual          = "manual"
	SourceForm            = "form"
	SourcePrivateFeedback = "private_feedback"
)

// Testimonial represents the structure of a testimonial row in the database.
// Data is the free-form JSON blob edited by the dashboard; use ToView to read it.
type Testimonial struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	ProjectID uuid.UUID       `json:"project_id"`
	FormID    *uuid.UUID      `json:"form_id,omitempty"` // Nullable foreign key
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ValidStatus reports whether s is a known moderation status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPublic, StatusHidden, StatusPending:
		return true
	}
	return false
}

// ValidType reports whether t is a known testimonial type.
func ValidType(t string) bool {
	return t == TypeText || t == TypeVideo
}

// TestimonialData is the typed shape written into Testimonial.Data.
type TestimonialData struct {
	Name         string   `json:"name,omitempty"`
	Email        string   `json:"email,omitempty"`
	Title        string   `json:"title,omitempty"`
	Company      string   `json:"company,omitempty"`
	AvatarURL    string   `json:"avatar_url,omitempty"`
	Message      string   `json:"message,omitempty"`
	Rating       int      `json:"rating,omitempty"`
	VideoPath    string   `json:"video_path,omitempty"`
	VideoURL     string   `json:"video_url,omitempty"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	Duration     float64  `json:"duration,omitempty"`
	Images       []string `json:"images,omitempty"`
	ImagePaths   []string `json:"image_paths,omitempty"`
	Source       string   `json:"source,omitempty"`
	SourceURL    string   `json:"source_url,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Consent      bool     `json:"consent,omitempty"`
	Trim         *Trim    `json:"trim,omitempty"`
}

// Trim marks the playable window of a video testimonial, in seconds.
type Trim struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}
