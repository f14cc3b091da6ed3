package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"trustimonials/internal/storage"
	"trustimonials/utils"
)

// UploadResponse is returned by the multipart upload endpoints.
type UploadResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// SignedUploadRequest asks for a direct-to-storage upload URL, used for
// videos too large to proxy through the API.
type SignedUploadRequest struct {
	Kind        string `json:"kind" validate:"required,oneof=image avatar video"`
	Filename    string `json:"filename" validate:"required,max=255"`
	ContentType string `json:"content_type" validate:"required"`
	Size        int64  `json:"size" validate:"required,gt=0"`
}

type SignedUploadResponse struct {
	Path      string `json:"path"`
	UploadURL string `json:"upload_url"`
	URL       string `json:"url"`
}

// UploadFile godoc
// @Summary Upload a media file
// @Description Accepts images (jpeg, png, webp, gif, up to 5 MB) and videos (mp4, webm, mov, up to 100 MB).
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File"
// @Param kind formData string true "image, avatar or video"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} ErrorResponse
// @Router /uploads [post]
func (h *ApplicationHandler) UploadFile(c *fiber.Ctx) error {
	scope, err := h.scope(c)
	if err != nil {
		return h.fail(c, err, "Project", "upload file")
	}
	return h.storeUpload(c, scope.ProjectID)
}

// CreateSignedUpload godoc
// @Summary Get a signed direct upload URL
// @Tags uploads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param upload body SignedUploadRequest true "File description"
// @Success 201 {object} SignedUploadResponse
// @Failure 400 {object} ErrorResponse
// @Router /uploads/signed [post]
func (h *ApplicationHandler) CreateSignedUpload(c *fiber.Ctx) error {
	var req SignedUploadRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	scope, err := h.scope(c)
	if err != nil {
		return h.fail(c, err, "Project", "sign upload")
	}
	ext, err := storage.ValidateUpload(req.Kind, req.Filename, req.ContentType, req.Size)
	if err != nil {
		return respondUploadError(c, err)
	}

	objectPath := storage.ObjectPath(scope.ProjectID, req.Kind, ext)
	uploadURL, err := h.Bucket.SignedUploadURL(c.UserContext(), objectPath)
	if err != nil {
		return h.fail(c, err, "Upload", "sign upload")
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, SignedUploadResponse{
		Path:      objectPath,
		UploadURL: uploadURL,
		URL:       h.Bucket.PublicURL(objectPath),
	})
}

// storeUpload validates the multipart "file" field and writes it under the
// project's folder.
func (h *ApplicationHandler) storeUpload(c *fiber.Ctx, projectID uuid.UUID) error {
	kind := c.FormValue("kind")
	file, err := c.FormFile("file")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "A file is required")
	}
	ext, err := storage.ValidateUpload(kind, file.Filename, file.Header.Get(fiber.HeaderContentType), file.Size)
	if err != nil {
		return respondUploadError(c, err)
	}

	fileHandle, err := file.Open()
	if err != nil {
		return h.fail(c, err, "Upload", "read upload")
	}
	defer fileHandle.Close()

	objectPath := storage.ObjectPath(projectID, kind, ext)
	if err := h.Bucket.Upload(c.UserContext(), objectPath, fileHandle, file.Header.Get(fiber.HeaderContentType)); err != nil {
		return h.fail(c, err, "Upload", "store upload")
	}

	h.Logger.WithFields(logrus.Fields{
		"project_id": projectID,
		"path":       objectPath,
		"size":       file.Size,
	}).Info("Stored upload")
	return utils.RespondWithJSON(c, fiber.StatusCreated, UploadResponse{
		Path: objectPath,
		URL:  h.Bucket.PublicURL(objectPath),
	})
}

func respondUploadError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, storage.ErrTooLarge):
		return utils.RespondWithError(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, storage.ErrUnsupportedType):
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	}
	return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid upload")
}
