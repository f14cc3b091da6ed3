package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"trustimonials/internal/storage"
	"trustimonials/internal/store"
	"trustimonials/models"
	"trustimonials/utils"
)

// CreateTestimonialRequest is a manual entry from the dashboard. Media fields
// are object paths returned by the upload endpoints.
type CreateTestimonialRequest struct {
	Type       string   `json:"type" validate:"required,oneof=text video"`
	Status     string   `json:"status" validate:"omitempty,oneof=public hidden pending"`
	Name       string   `json:"name" validate:"required,max=200"`
	Email      string   `json:"email" validate:"omitempty,email"`
	Title      string   `json:"title" validate:"max=200"`
	Company    string   `json:"company" validate:"max=200"`
	AvatarPath string   `json:"avatar_path"`
	Message    string   `json:"message" validate:"max=5000"`
	Rating     int      `json:"rating" validate:"min=0,max=5"`
	VideoPath  string   `json:"video_path"`
	ImagePaths []string `json:"image_paths" validate:"max=10"`
	SourceURL  string   `json:"source_url" validate:"omitempty,url"`
	Tags       []string `json:"tags" validate:"max=20,dive,max=50"`
}

// UpdateTestimonialRequest patches the data blob and/or the status.
// A null value in Data removes the key.
type UpdateTestimonialRequest struct {
	Data   map[string]interface{} `json:"data"`
	Status *string                `json:"status" validate:"omitempty,oneof=public hidden pending"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=public hidden pending"`
}

type TrimRequest struct {
	Start float64 `json:"start" validate:"min=0"`
	End   float64 `json:"end" validate:"gt=0"`
}

// serverOwnedKeys are written by uploads and jobs and cannot be patched directly.
var serverOwnedKeys = map[string]bool{
	"video_path":     true,
	"video_url":      true,
	"thumbnail_path": true,
	"thumbnail_url":  true,
	"duration":       true,
	"avatar_path":    true,
	"image_paths":    true,
	"images":         true,
}

// mediaKeys are data keys holding bucket object paths removed with the
// testimonial. Values are a single path or a list of paths.
var mediaKeys = []string{"video_path", "thumbnail_path", "avatar_path", "image_paths"}

const (
	maxTags      = 20
	maxTagLength = 50
)

// ListTestimonials godoc
// @Summary List testimonials
// @Tags testimonials
// @Produce json
// @Security BearerAuth
// @Param status query string false "public, hidden or pending"
// @Param type query string false "text or video"
// @Param tag query string false "Tag to match"
// @Param form_id query string false "Only submissions of this form"
// @Success 200 {array} models.TestimonialView
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /testimonials [get]
func (h *ApplicationHandler) ListTestimonials(c *fiber.Ctx) error {
	scope, err := h.scope(c)
	if err != nil {
		return h.fail(c, err, "Project", "list testimonials")
	}

	filter := store.TestimonialFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Tag:    c.Query("tag"),
	}
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid status filter")
	}
	if filter.Type != "" && !models.ValidType(filter.Type) {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid type filter")
	}
	if raw := c.Query("form_id"); raw != "" {
		formID, err := uuid.Parse(raw)
		if err != nil {
			return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid form_id filter")
		}
		filter.FormID = &formID
	}

	rows, err := h.Store.ListTestimonials(c.UserContext(), scope, filter)
	if err != nil {
		return h.fail(c, err, "Testimonials", "list testimonials")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, models.ToViews(rows))
}

// GetTestimonial godoc
// @Summary Get a testimonial
// @Tags testimonials
// @Produce json
// @Security BearerAuth
// @Param id path string true "Testimonial ID"
// @Success 200 {object} models.TestimonialView
// @Failure 404 {object} ErrorResponse
// @Router /testimonials/{id} [get]
func (h *ApplicationHandler) GetTestimonial(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid testimonial ID")
	}
	scope, err := h.scope(c)
	if err != nil {
		return h.fail(c, err, "Project", "load testimonial")
	}
	t, err := h.Store.GetTestimonial(c.UserContext(), scope, id)
	if err != nil {
		return h.fail(c, err, "Testimonial", "load testimonial")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, models.ToView(*t))
}

// CreateTestimonial godoc
// @Summary Create a testimonial manually
// @Description Text entries need a message, video entries a video_path from the upload endpoint. Video entries get a thumbnail job.
// @Tags testimonials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param testimonial body CreateTestimonialRequest true "Testimonial to create"
// @Success 201 {object} models.TestimonialView
// @Failure 400 {object} ErrorResponse
// @Router /testimonials [post]
func (h *ApplicationHandler) CreateTestimonial(c *fiber.Ctx) error {
	var req CreateTestimonialRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	scope, err := h.scope(c)
	if err != nil {
		return h.fail(c, err, "Project", "create testimonial")
	}

	switch {
	case req.Type == models.TypeText && req.Message == "":
		return utils.RespondWithError(c, fiber.StatusBadRequest, "A message is required for text testimonials")
	case req.Type == models.TypeVideo && req.VideoPath == "":
		return utils.RespondWithError(c, fiber.StatusBadRequest, "A video_path is required for video testimonials")
	}
	for _, p := range append([]string{req.VideoPath, req.AvatarPath}, req.ImagePaths...) {
		if p != "" && !storage.OwnedBy(scope.ProjectID, p) {
			return utils.RespondWithError(c, fiber.StatusBadRequest, "Media path does not belong to this project")
		}
	}

	data := models.TestimonialData{
		Name:      req.Name,
		Email:     req.Email,
		Title:     req.Title,
		Company:   req.Company,
		Message:   req.Message,
		Rating:    req.Rating,
		Source:    models.SourceManual,
		SourceURL: req.SourceURL,
		Tags:      cleanTags(req.Tags),
	}
	if req.Type == models.TypeVideo {
		data.VideoPath = req.VideoPath
		data.VideoURL = h.Bucket.PublicURL(req.VideoPath)
	}
	for _, p := range req.ImagePaths {
		if p == "" {
			continue
		}
		data.ImagePaths = append(data.ImagePaths, p)
		data.Images = append(data.Images, h.Bucket.PublicURL(p))
	}
	raw, err := encodeData(data, req.AvatarPath, h.Bucket)
	if err != nil {
		return h.fail(c, err, "Testimonial", "create testimonial")
	}

	status := req.Status
	if status == "" {
		status = models.StatusPublic
	}
	created, err := h.Store.CreateTestimonial(c.UserContext(), models.Testimonial{
		UserID:    scope.UserID,
		ProjectID: scope.ProjectID,
		Type:      req.Type,
		Data:      raw,
		Status:    status,
	})
	if err != nil {
		return h.fail(c, err, "Testimonial", "create testimonial")
	}
	if created.Type == models.TypeVideo {
		h.enqueueThumbnail(c.UserContext(), created, data.VideoPath)
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, models.ToView(*created))
}

// encodeData marshals data, adding the avatar path and its public URL when set.
func encodeData(data models.TestimonialData, avatarPath string, bucket storage.Bucket) (json.RawMessage, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode testimonial data: %w", err)
	}
	if avatarPath == "" {
		return raw, nil
	}
	return models.MergeData(raw, map[string]interface{}{
		"avatar_path": avatarPath,
		"avatar_url":  bucket.PublicURL(avatarPath),
	})
}

// UpdateTestimonial godoc
// @Summary Edit a testimonial
// @Description Merges data keys into the testimonial (null removes a key) and optionally sets the status.
// @Tags testimonials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Testimonial ID"
// @Param patch body UpdateTestimonialRequest true "Fields to change"
// @Success 200 {object} models.TestimonialView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /testimonials/{id} [patch]
func (h *ApplicationHandler) UpdateTestimonial(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid testimonial ID")
	}
	var req UpdateTestimonialRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	if len(req.Data) == 0 && req.Status == nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Nothing to update")
	}
	if msg := checkPatch(req.Data); msg != "" {
		return utils.RespondWithError(c, fiber.StatusBadRequest, msg)
	}

	scope, err := h.scope(c)
	if err != nil {
		return h.fail(c, err, "Project", "update testimonial")
	}
	ctx := c.UserContext()
	update := store.TestimonialUpdate{Status: req.Status}
	if len(req.Data) > 0 {
		current, err := h.Store.GetTestimonial(ctx, scope, id)
		if err != nil {
			return h.fail(c, err, "Testimonial", "update testimonial")
		}
		if update.Data, err = models.MergeData(current.Data, req.Data); err != nil {
			return h.fail(c, err, "Testimonial", "update testimonial")
		}
	}

	updated, err := h.Store.UpdateTestimonial(ctx, scope, id, update)
	if err != nil {
		return h.fail(c, err, "Testimonial", "update testimonial")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, models.ToView(*updated))
}

// checkPatch returns a client-facing message when patch is not acceptable.
// Accepted tags are normalized in place.
func checkPatch(patch map[string]interface{}) string {
	for key, value := range patch {
		if serverOwnedKeys[key] {
			return fmt.Sprintf("Field %q cannot be edited", key)
		}
		switch key {
		case "name":
			if s, ok := value.(string); !ok || s == "" {
				return "name must be a non-empty string"
			}
		case "rating":
			if value == nil {
				continue
			}
			n, ok := value.(float64)
			if !ok || n < 0 || n > 5 || n != math.Trunc(n) {
				return "rating must be a whole number between 0 and 5"
			}
		case "trim":
			if value != nil {
				return "Use the trim endpoint to change the trim window"
			}
		case "tags":
			if value == nil {
				continue
			}
			tags, ok := tagList(value)
			if !ok {
				return "tags must be a list of strings or a comma-separated string"
			}
			if len(tags) > maxTags {
				return fmt.Sprintf("at most %d tags are allowed", maxTags)
			}
			for _, t := range tags {
				if len(t) > maxTagLength {
					return fmt.Sprintf("tags must be at most %d characters", maxTagLength)
				}
			}
			patch[key] = tags
		}
	}
	return ""
}

// tagList reads a patched tags value into the stored array form, so the list
// filters match what the view shows.
func tagList(value interface{}) ([]string, bool) {
	var raw []string
	switch v := value.(type) {
	case string:
		raw = strings.Split(v, ",")
	case []interface{}:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			raw = append(raw, s)
		}
	default:
		return nil, false
	}
	return cleanTags(raw), true
}

// UpdateTestimonialStatus godoc
// @Summary Change the moderation status
// @Tags testimonials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Testimonial ID"
// @Param status body UpdateStatusRequest true "New status"
// @Success 200 {object} models.TestimonialView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /testimonials/{id}/status [patch]
func (h *ApplicationHandler) UpdateTestimonialStatus(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid testimonial ID")
	}
	var req UpdateStatusRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	scope, err := h.scope(c)
	if err != nil {
		return h.fail(c, err, "Project", "update status")
	}
	updated, err := h.Store.UpdateTestimonial(c.UserContext(), scope, id, store.TestimonialUpdate{Status: &req.Status})
	if err != nil {
		return h.fail(c, err, "Testimonial", "update status")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, models.ToView(*updated))
}

// DuplicateTestimonial godoc
// @Summary Duplicate a testimonial
// @Description The copy shares media with the original and starts hidden.
// @Tags testimonials
// @Produce json
// @Security BearerAuth
// @Param id path string true "Testimonial ID"
// @Success 201 {object} models.TestimonialView
// @Failure 404 {object} ErrorResponse
// @Router /testimonials/{id}/duplicate [post]
func (h *ApplicationHandler) DuplicateTestimonial(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid testimonial ID")
	}
	scope, err := h.scope(c)
	if err != nil {
		return h.fail(c, err, "Project", "duplicate testimonial")
	}
	ctx := c.UserContext()
	original, err := h.Store.GetTestimonial(ctx, scope, id)
	if err != nil {
		return h.fail(c, err, "Testimonial", "duplicate testimonial")
	}

	copied, err := h.Store.CreateTestimonial(ctx, models.Testimonial{
		UserID:    original.UserID,
		ProjectID: original.ProjectID,
		FormID:    original.FormID,
		Type:      original.Type,
		Data:      original.Data,
		Status:    models.StatusHidden,
	})
	if err != nil {
		return h.fail(c, err, "Testimonial", "duplicate testimonial")
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, models.ToView(*copied))
}

// TrimTestimonial godoc
// @Summary Set the playable window of a video testimonial
// @Tags testimonials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Testimonial ID"
// @Param trim body TrimRequest true "Window in seconds"
// @Success 200 {object} models.TestimonialView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /testimonials/{id}/trim [post]
func (h *ApplicationHandler) TrimTestimonial(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid testimonial ID")
	}
	var req TrimRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	scope, err := h.scope(c)
	if err != nil {
		return h.fail(c, err, "Project", "trim testimonial")
	}
	ctx := c.UserContext()
	current, err := h.Store.GetTestimonial(ctx, scope, id)
	if err != nil {
		return h.fail(c, err, "Testimonial", "trim testimonial")
	}
	if current.Type != models.TypeVideo {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Only video testimonials can be trimmed")
	}
	if req.End <= req.Start {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "end must be greater than start")
	}
	if d := models.ToView(*current).Duration; d > 0 && req.End > d {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("end must not exceed the video duration (%.2fs)", d))
	}

	data, err := models.MergeData(current.Data, map[string]interface{}{
		"trim": models.Trim{Start: req.Start, End: req.End},
	})
	if err != nil {
		return h.fail(c, err, "Testimonial", "trim testimonial")
	}
	updated, err := h.Store.UpdateTestimonial(ctx, scope, id, store.TestimonialUpdate{Data: data})
	if err != nil {
		return h.fail(c, err, "Testimonial", "trim testimonial")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, models.ToView(*updated))
}

// RegenerateThumbnail godoc
// @Summary Queue thumbnail generation for a video testimonial
// @Tags testimonials
// @Produce json
// @Security BearerAuth
// @Param id path string true "Testimonial ID"
// @Success 202 {object} models.ProcessingJob
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /testimonials/{id}/thumbnail [post]
func (h *ApplicationHandler) RegenerateThumbnail(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid testimonial ID")
	}
	scope, err := h.scope(c)
	if err != nil {
		return h.fail(c, err, "Project", "queue thumbnail")
	}
	t, err := h.Store.GetTestimonial(c.UserContext(), scope, id)
	if err != nil {
		return h.fail(c, err, "Testimonial", "queue thumbnail")
	}
	videoPath := models.DecodeData(*t).VideoPath
	if t.Type != models.TypeVideo || videoPath == "" {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Testimonial has no uploaded video")
	}
	job, err := h.createThumbnailJob(c.UserContext(), t, videoPath)
	if err != nil {
		return h.fail(c, err, "Testimonial", "queue thumbnail")
	}
	return utils.RespondWithJSON(c, fiber.StatusAccepted, job)
}

// DeleteTestimonial godoc
// @Summary Delete a testimonial
// @Description Media no other testimonial references is removed from storage on a best-effort basis.
// @Tags testimonials
// @Security BearerAuth
// @Param id path string true "Testimonial ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /testimonials/{id} [delete]
func (h *ApplicationHandler) DeleteTestimonial(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid testimonial ID")
	}
	scope, err := h.scope(c)
	if err != nil {
		return h.fail(c, err, "Project", "delete testimonial")
	}
	ctx := c.UserContext()
	deleted, err := h.Store.DeleteTestimonial(ctx, scope, id)
	if err != nil {
		return h.fail(c, err, "Testimonial", "delete testimonial")
	}

	if paths := h.orphanedMedia(ctx, scope, deleted); len(paths) > 0 {
		if err := h.Bucket.Remove(ctx, paths...); err != nil {
			h.Logger.WithFields(logrus.Fields{"testimonial_id": id, "paths": paths}).
				WithError(err).Warn("Failed to remove testimonial media")
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// orphanedMedia lists the deleted testimonial's object paths that no remaining
// testimonial of the project references. Duplicates share media.
func (h *ApplicationHandler) orphanedMedia(ctx context.Context, scope store.Scope, deleted *models.Testimonial) []string {
	paths := mediaPaths(deleted.Data)
	if len(paths) == 0 {
		return nil
	}
	remaining, err := h.Store.ListTestimonials(ctx, scope, store.TestimonialFilter{})
	if err != nil {
		h.Logger.WithError(err).Warn("Skipping media cleanup, could not list testimonials")
		return nil
	}
	inUse := map[string]bool{}
	for _, t := range remaining {
		for _, p := range mediaPaths(t.Data) {
			inUse[p] = true
		}
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !inUse[p] && storage.OwnedBy(scope.ProjectID, p) {
			out = append(out, p)
		}
	}
	return out
}

func mediaPaths(raw json.RawMessage) []string {
	var data map[string]interface{}
	if json.Unmarshal(raw, &data) != nil {
		return nil
	}
	var out []string
	for _, key := range mediaKeys {
		switch v := data[key].(type) {
		case string:
			if v != "" {
				out = append(out, v)
			}
		case []interface{}:
			for _, item := range v {
				if p, ok := item.(string); ok && p != "" {
					out = append(out, p)
				}
			}
		}
	}
	return out
}

// enqueueThumbnail queues a thumbnail job for a freshly created video
// testimonial. The testimonial is already stored, so a failure is only logged.
func (h *ApplicationHandler) enqueueThumbnail(ctx context.Context, t *models.Testimonial, videoPath string) {
	if _, err := h.createThumbnailJob(ctx, t, videoPath); err != nil {
		h.Logger.WithFields(logrus.Fields{"testimonial_id": t.ID}).WithError(err).Error("Failed to queue thumbnail job")
	}
}

func (h *ApplicationHandler) createThumbnailJob(ctx context.Context, t *models.Testimonial, videoPath string) (*models.ProcessingJob, error) {
	meta, err := json.Marshal(models.ThumbnailJobMetadata{ProjectID: t.ProjectID, VideoPath: videoPath})
	if err != nil {
		return nil, fmt.Errorf("encode job metadata: %w", err)
	}
	job, err := h.Store.CreateJob(ctx, models.ProcessingJob{
		JobType:    models.JobTypeThumbnail,
		EntityID:   t.ID,
		EntityType: "testimonial",
		Status:     models.JobStatusPending,
		Metadata:   meta,
	})
	if err != nil {
		return nil, err
	}
	h.Metrics.JobEnqueued(models.JobTypeThumbnail)
	h.Logger.WithFields(logrus.Fields{"job_id": job.ID, "testimonial_id": t.ID}).Info("Queued thumbnail job")
	return job, nil
}
