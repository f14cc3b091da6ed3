package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"trustimonials/internal/storage"
	"trustimonials/internal/store"
	"trustimonials/middleware"
)

// ProcessorStatus reports the health of the media processor.
// The concrete implementation is provided by the processorclient package.
type ProcessorStatus interface {
	Status(ctx context.Context) (string, error)
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Logger    *logrus.Logger
	Store     store.Store
	Bucket    storage.Bucket
	Metrics   *middleware.Metrics // optional
	Processor ProcessorStatus     // optional
	// PublicURL builds submitter-facing links on the web app.
	PublicURL func(path string) string

	validate *validator.Validate
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
func NewApplicationHandler(logger *logrus.Logger, st store.Store, bucket storage.Bucket, publicURL func(string) string) *ApplicationHandler {
	return &ApplicationHandler{
		Logger:    logger,
		Store:     st,
		Bucket:    bucket,
		PublicURL: publicURL,
		validate:  validator.New(),
	}
}
