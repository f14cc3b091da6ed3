package handlers

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"

	"trustimonials/internal/storage"
	"trustimonials/utils"
)

// LocalMediaPrefix is where the in-process bucket is served when the API runs
// with the memory driver. Its URLs mirror Supabase storage paths.
const LocalMediaPrefix = "/storage"

// LocalMedia serves a MemoryBucket so the public and signed-upload URLs it
// hands out resolve against the API itself.
type LocalMedia struct {
	Bucket *storage.MemoryBucket
}

func (m LocalMedia) register(app *fiber.App) {
	app.Get(LocalMediaPrefix+"/object/public/*", m.Get)
	app.Put(LocalMediaPrefix+"/object/upload/sign/*", m.Put)
	app.Post(LocalMediaPrefix+"/object/upload/sign/*", m.Put)
}

// Get returns a stored object with the content type it was uploaded with.
func (m LocalMedia) Get(c *fiber.Ctx) error {
	objectPath := c.Params("*")
	contentType, ok := m.Bucket.Has(objectPath)
	if !ok {
		return utils.RespondWithError(c, fiber.StatusNotFound, "Object not found")
	}
	data, err := m.Bucket.Download(c.UserContext(), objectPath)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusNotFound, "Object not found")
	}
	if contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	return c.Send(data)
}

// Put stores the raw request body at the signed path.
func (m LocalMedia) Put(c *fiber.Ctx) error {
	if c.Query("token") != storage.LocalUploadToken {
		return utils.RespondWithError(c, fiber.StatusForbidden, "Invalid upload token")
	}
	objectPath := c.Params("*")
	err := m.Bucket.Upload(c.UserContext(), objectPath, bytes.NewReader(c.Body()), c.Get(fiber.HeaderContentType))
	if errors.Is(err, storage.ErrTooLarge) {
		return utils.RespondWithError(c, fiber.StatusRequestEntityTooLarge, "File is too large")
	}
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to store object")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"Key": objectPath})
}
