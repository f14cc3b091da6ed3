package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "trustimonials/docs"
	"trustimonials/internal/storage"
	"trustimonials/middleware"
	"trustimonials/models"
)

// RouteConfig carries what RegisterRoutes needs beyond the handler.
type RouteConfig struct {
	JWTSecret   string
	AppURL      string
	RateLimiter *middleware.RateLimiter
	Gatherer    prometheus.Gatherer
	MetricsUser string
	MetricsPass string
	// LocalMedia is set in memory mode to serve the bucket's URLs.
	LocalMedia *storage.MemoryBucket
}

// RegisterRoutes mounts every endpoint on app.
func RegisterRoutes(app *fiber.App, h *ApplicationHandler, rc RouteConfig) error {
	embed, err := EmbedScript(rc.AppURL)
	if err != nil {
		return err
	}

	app.Get("/health", h.Health)
	app.Get("/embed.js", embed)
	app.Get("/swagger/*", fiberSwagger.WrapHandler)
	if rc.Gatherer != nil {
		app.Get("/metrics",
			middleware.BasicAuth(rc.MetricsUser, rc.MetricsPass),
			adaptor.HTTPHandler(promhttp.HandlerFor(rc.Gatherer, promhttp.HandlerOpts{})),
		)
	}

	if rc.LocalMedia != nil {
		LocalMedia{Bucket: rc.LocalMedia}.register(app)
	}

	// Public routes
	public := app.Group("/api/public")
	if rc.RateLimiter != nil {
		public.Use(rc.RateLimiter.Handler())
	}
	public.Get("/forms/:id", h.GetPublicForm)
	public.Post("/forms/:id/submissions", h.SubmitForm)
	public.Post("/forms/:id/uploads", h.UploadSubmissionMedia)
	public.Get("/walls/:id", h.GetPublicShowcase(models.KindWall))
	public.Get("/widgets/:id", h.GetPublicShowcase(models.KindWidget))

	// Dashboard routes. Auth is attached per group so it never runs for /api/public.
	auth := middleware.Auth(rc.JWTSecret)
	api := app.Group("/api")

	api.Get("/projects/current", auth, h.GetCurrentProject)

	testimonials := api.Group("/testimonials", auth)
	testimonials.Get("", h.ListTestimonials)
	testimonials.Post("", h.CreateTestimonial)
	testimonials.Get("/:id", h.GetTestimonial)
	testimonials.Patch("/:id", h.UpdateTestimonial)
	testimonials.Delete("/:id", h.DeleteTestimonial)
	testimonials.Patch("/:id/status", h.UpdateTestimonialStatus)
	testimonials.Post("/:id/duplicate", h.DuplicateTestimonial)
	testimonials.Post("/:id/trim", h.TrimTestimonial)
	testimonials.Post("/:id/thumbnail", h.RegenerateThumbnail)

	uploads := api.Group("/uploads", auth)
	uploads.Post("", h.UploadFile)
	uploads.Post("/signed", h.CreateSignedUpload)

	forms := api.Group("/forms", auth)
	forms.Get("", h.ListForms)
	forms.Post("", h.CreateForm)
	forms.Get("/:id", h.GetForm)
	forms.Put("/:id", h.UpdateForm)
	forms.Delete("/:id", h.DeleteForm)
	forms.Get("/:id/qr", h.GetFormQRCode)

	for _, kind := range []models.ShowcaseKind{models.KindWall, models.KindWidget} {
		group := api.Group("/"+kind.Table(), auth)
		group.Get("", h.ListShowcases(kind))
		group.Post("", h.CreateShowcase(kind))
		group.Get("/:id", h.GetShowcase(kind))
		group.Put("/:id", h.UpdateShowcase(kind))
		group.Delete("/:id", h.DeleteShowcase(kind))
		group.Post("/:id/publish", h.PublishShowcase(kind))
	}
	return nil
}
