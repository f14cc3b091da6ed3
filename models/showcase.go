package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ShowcaseKind distinguishes walls of love from embeddable widgets. Both share
// one shape and live in their own table.
type ShowcaseKind string

const (
	KindWall   ShowcaseKind = "wall"
	KindWidget ShowcaseKind = "widget"
)

// Table returns the database table for the kind.
func (k ShowcaseKind) Table() string {
	if k == KindWidget {
		return "widgets"
	}
	return "walls"
}

// ShowcaseConfig is the style document of a wall or widget. Style is opaque to
// the backend; only the theme name is validated.
type ShowcaseConfig struct {
	Theme string          `json:"theme" yaml:"theme"`
	Style json.RawMessage `json:"style,omitempty" yaml:"-"`
}

// Showcase represents a wall or widget row in the database.
type Showcase struct {
	ID             uuid.UUID      `json:"id"`
	UserID         uuid.UUID      `json:"user_id"`
	ProjectID      uuid.UUID      `json:"project_id"`
	Name           string         `json:"name"`
	Config         ShowcaseConfig `json:"config"`
	TestimonialIDs []uuid.UUID    `json:"testimonial_ids"`
	Published      bool           `json:"published"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// PublicShowcase is what embeds and wall pages receive.
type PublicShowcase struct {
	ID           uuid.UUID         `json:"id"`
	Kind         ShowcaseKind      `json:"kind"`
	Name         string            `json:"name"`
	Config       ShowcaseConfig    `json:"config"`
	Testimonials []TestimonialView `json:"testimonials"`
}
