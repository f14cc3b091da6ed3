// Package store is the data access layer for projects, testimonials, forms,
// showcases and processing jobs.
package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"trustimonials/internal/formflow"
	"trustimonials/models"
)

// ErrNotFound is returned when a row does not exist or is not owned by the caller.
var ErrNotFound = errors.New("record not found")

// Scope identifies the caller. Every dashboard query is filtered on both ids.
type Scope struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
}

// TestimonialFilter narrows ListTestimonials. Zero values match everything.
type TestimonialFilter struct {
	Status string
	Type   string
	Tag    string
	FormID *uuid.UUID
}

// TestimonialUpdate changes a testimonial. Nil fields are left as they are.
type TestimonialUpdate struct {
	Data   json.RawMessage
	Status *string
}

type FormUpdate struct {
	Name   *string
	Config *formflow.Config
}

type ShowcaseUpdate struct {
	Name           *string
	Config         *models.ShowcaseConfig
	TestimonialIDs *[]uuid.UUID
	Published      *bool
}

// Store is implemented by SupabaseStore and MemoryStore.
type Store interface {
	GetProjectByUser(ctx context.Context, userID uuid.UUID) (*models.Project, error)
	CreateProject(ctx context.Context, p models.Project) (*models.Project, error)

	ListTestimonials(ctx context.Context, scope Scope, f TestimonialFilter) ([]models.Testimonial, error)
	GetTestimonial(ctx context.Context, scope Scope, id uuid.UUID) (*models.Testimonial, error)
	GetTestimonialsByIDs(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) ([]models.Testimonial, error)
	CreateTestimonial(ctx context.Context, t models.Testimonial) (*models.Testimonial, error)
	UpdateTestimonial(ctx context.Context, scope Scope, id uuid.UUID, u TestimonialUpdate) (*models.Testimonial, error)
	DeleteTestimonial(ctx context.Context, scope Scope, id uuid.UUID) (*models.Testimonial, error)

	ListForms(ctx context.Context, scope Scope) ([]models.Form, error)
	GetForm(ctx context.Context, scope Scope, id uuid.UUID) (*models.Form, error)
	GetPublicForm(ctx context.Context, id uuid.UUID) (*models.Form, error)
	CreateForm(ctx context.Context, f models.Form) (*models.Form, error)
	UpdateForm(ctx context.Context, scope Scope, id uuid.UUID, u FormUpdate) (*models.Form, error)
	DeleteForm(ctx context.Context, scope Scope, id uuid.UUID) error

	ListShowcases(ctx context.Context, kind models.ShowcaseKind, scope Scope) ([]models.Showcase, error)
	GetShowcase(ctx context.Context, kind models.ShowcaseKind, scope Scope, id uuid.UUID) (*models.Showcase, error)
	GetPublishedShowcase(ctx context.Context, kind models.ShowcaseKind, id uuid.UUID) (*models.Showcase, error)
	CreateShowcase(ctx context.Context, kind models.ShowcaseKind, s models.Showcase) (*models.Showcase, error)
	UpdateShowcase(ctx context.Context, kind models.ShowcaseKind, scope Scope, id uuid.UUID, u ShowcaseUpdate) (*models.Showcase, error)
	DeleteShowcase(ctx context.Context, kind models.ShowcaseKind, scope Scope, id uuid.UUID) error

	CreateJob(ctx context.Context, j models.ProcessingJob) (*models.ProcessingJob, error)
}
