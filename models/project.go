package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents the structure of a project in the database.
// Every user owns exactly one, created on their first authenticated request.
type Project struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
