package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"trustimonials/internal/formflow"
	"trustimonials/internal/storage"
	"trustimonials/models"
	"trustimonials/utils"
)

// SubmissionResponse tells the form which closing screen to show.
type SubmissionResponse struct {
	ID       string `json:"id"`
	Negative bool   `json:"negative"`
}

// GetPublicForm godoc
// @Summary Read-only form config for the public page
// @Tags public
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} models.PublicForm
// @Failure 404 {object} ErrorResponse
// @Router /public/forms/{id} [get]
func (h *ApplicationHandler) GetPublicForm(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return utils.RespondWithError(c, fiber.StatusNotFound, "Form not found")
	}
	f, err := h.Store.GetPublicForm(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err, "Form", "load form")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, f.Public())
}

// SubmitForm godoc
// @Summary Submit a completed form
// @Description The answers are replayed through the form's steps. Positive submissions are stored pending for moderation. Ratings at or below the threshold are stored hidden as private feedback.
// @Tags public
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param answers body formflow.Answers true "Answers"
// @Success 201 {object} SubmissionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /public/forms/{id}/submissions [post]
func (h *ApplicationHandler) SubmitForm(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return utils.RespondWithError(c, fiber.StatusNotFound, "Form not found")
	}
	var answers formflow.Answers
	if ok, err := h.bind(c, &answers); !ok {
		return err
	}
	ctx := c.UserContext()
	form, err := h.Store.GetPublicForm(ctx, id)
	if err != nil {
		return h.fail(c, err, "Form", "load form")
	}

	result, err := formflow.Replay(form.Config, answers)
	switch {
	case errors.Is(err, formflow.ErrIncomplete):
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	case err != nil:
		return h.fail(c, err, "Form", "accept submission")
	}
	a := result.Answers
	for _, p := range []string{a.VideoPath, a.AvatarPath} {
		if p != "" && !storage.OwnedBy(form.ProjectID, p) {
			return utils.RespondWithError(c, fiber.StatusBadRequest, "Media path does not belong to this form")
		}
	}

	t := submissionTestimonial(form, result)
	raw, err := encodeData(submissionData(result, h.Bucket), a.AvatarPath, h.Bucket)
	if err != nil {
		return h.fail(c, err, "Form", "accept submission")
	}
	t.Data = raw

	created, err := h.Store.CreateTestimonial(ctx, t)
	if err != nil {
		return h.fail(c, err, "Form", "accept submission")
	}
	if created.Type == models.TypeVideo {
		h.enqueueThumbnail(ctx, created, a.VideoPath)
	}

	h.Logger.WithFields(logrus.Fields{
		"form_id":        form.ID,
		"testimonial_id": created.ID,
		"negative":       result.Negative,
	}).Info("Accepted form submission")
	return utils.RespondWithJSON(c, fiber.StatusCreated, SubmissionResponse{ID: created.ID.String(), Negative: result.Negative})
}

func submissionTestimonial(form *models.Form, result *formflow.Result) models.Testimonial {
	formID := form.ID
	t := models.Testimonial{
		UserID:    form.UserID,
		ProjectID: form.ProjectID,
		FormID:    &formID,
		Type:      models.TypeText,
		Status:    models.StatusPending,
	}
	switch {
	case result.Negative:
		t.Status = models.StatusHidden
	case result.Answers.VideoPath != "":
		t.Type = models.TypeVideo
	}
	return t
}

// submissionData maps replayed answers onto the data blob. On the negative
// branch the feedback becomes the message and any video is ignored.
func submissionData(result *formflow.Result, bucket storage.Bucket) models.TestimonialData {
	a := result.Answers
	d := models.TestimonialData{
		Name:    a.Name,
		Email:   a.Email,
		Title:   a.Title,
		Company: a.Company,
		Message: a.Message,
		Rating:  a.Rating,
		Consent: a.Consent,
		Source:  models.SourceForm,
	}
	if result.Negative {
		d.Source = models.SourcePrivateFeedback
		if a.Feedback != "" {
			d.Message = a.Feedback
		}
		return d
	}
	if a.VideoPath != "" {
		d.VideoPath = a.VideoPath
		d.VideoURL = bucket.PublicURL(a.VideoPath)
	}
	return d
}

// UploadSubmissionMedia godoc
// @Summary Upload a video or avatar while filling in a form
// @Tags public
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Form ID"
// @Param file formData file true "File"
// @Param kind formData string true "avatar or video"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /public/forms/{id}/uploads [post]
func (h *ApplicationHandler) UploadSubmissionMedia(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return utils.RespondWithError(c, fiber.StatusNotFound, "Form not found")
	}
	if kind := c.FormValue("kind"); kind != storage.KindAvatar && kind != storage.KindVideo {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "kind must be avatar or video")
	}
	form, err := h.Store.GetPublicForm(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err, "Form", "load form")
	}
	return h.storeUpload(c, form.ProjectID)
}
