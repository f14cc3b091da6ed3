package models

import (
	"time"

	"github.com/google/uuid"

	"trustimonials/internal/formflow"
)

// Form represents a testimonial collection form. Config is stored as JSONB.
type Form struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	ProjectID uuid.UUID       `json:"project_id"`
	Name      string          `json:"name"`
	Config    formflow.Config `json:"config"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PublicForm is the read-only projection served to submitters.
type PublicForm struct {
	ID     uuid.UUID       `json:"id"`
	Name   string          `json:"name"`
	Config formflow.Config `json:"config"`
}

// Public strips ownership fields.
func (f Form) Public() PublicForm {
	return PublicForm{ID: f.ID, Name: f.Name, Config: f.Config}
}
