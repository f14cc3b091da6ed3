package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithError(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusNotFound, "Testimonial not found")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"error":"Testimonial not found"}`, string(body))
}

func TestRespondWithJSON(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return RespondWithJSON(c, fiber.StatusCreated, fiber.Map{"id": "abc"})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var got map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "success", got["status"])
	assert.Equal(t, map[string]interface{}{"id": "abc"}, got["data"])
}

func TestFormatValidationErrors(t *testing.T) {
	type payload struct {
		Status string `validate:"required,oneof=public hidden pending"`
		Rating int    `validate:"min=1"`
	}
	err := validator.New().Struct(payload{Status: "archived"})
	require.Error(t, err)

	msgs := FormatValidationErrors(err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Field 'Status' failed on the 'oneof' tag (value: public hidden pending)", msgs[0])
	assert.Equal(t, "Field 'Rating' failed on the 'min' tag (value: 1)", msgs[1])

	assert.Equal(t, []string{"boom"}, FormatValidationErrors(errors.New("boom")))
	assert.Nil(t, FormatValidationErrors(nil))
}
