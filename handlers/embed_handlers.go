package handlers

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/gofiber/fiber/v2"
)

//go:embed assets/embed.js
var embedSource string

var embedTemplate = template.Must(template.New("embed.js").Parse(embedSource))

// ResizeMessageType is the postMessage type widget iframes send with their height.
const ResizeMessageType = "trustimonials-resize"

// EmbedScript renders the widget loader once for the app origin and serves it.
//
// @Summary Widget loader script
// @Description Mounts an iframe after every script tag carrying data-widget-id and resizes it on trustimonials-resize messages from that iframe.
// @Tags public
// @Produce application/javascript
// @Success 200 {string} string
// @Router /embed.js [get]
func EmbedScript(appOrigin string) (fiber.Handler, error) {
	var buf bytes.Buffer
	err := embedTemplate.Execute(&buf, struct {
		Origin        string
		MessageType   string
		InitialHeight int
	}{
		Origin:        strings.TrimRight(appOrigin, "/"),
		MessageType:   ResizeMessageType,
		InitialHeight: 320,
	})
	if err != nil {
		return nil, fmt.Errorf("render embed script: %w", err)
	}
	script := buf.Bytes()

	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "application/javascript; charset=utf-8")
		c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
		c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		return c.Send(script)
	}, nil
}
