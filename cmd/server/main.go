// @title Trustimonials API
// @version 1.0
// @description Collect, moderate and embed customer testimonials.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Supabase access token, as "Bearer <token>"
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"trustimonials/config"
	"trustimonials/handlers"
	"trustimonials/internal/processorclient"
	"trustimonials/internal/storage"
	"trustimonials/internal/store"
	"trustimonials/middleware"
	"trustimonials/utils"
)

const (
	// Videos up to storage.MaxVideoBytes are proxied, plus multipart overhead.
	bodyLimit       = int(storage.MaxVideoBytes) + 1<<20
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	log := config.NewLogger(cfg.LogLevel)

	st, bucket, err := newBackends(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize storage backends")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(registry)

	h := handlers.NewApplicationHandler(log, st, bucket, cfg.PublicURL)
	h.Metrics = metrics
	if cfg.Processor.GRPCAddr != "" {
		processor, err := processorclient.New(cfg.Processor.GRPCAddr)
		if err != nil {
			log.WithError(err).Fatal("Failed to create processor client")
		}
		defer processor.Close()
		h.Processor = processor
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := middleware.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)
	go limiter.Cleanup(ctx, time.Minute, 3*time.Minute)

	app := fiber.New(fiber.Config{
		AppName:      "trustimonials",
		BodyLimit:    bodyLimit,
		ReadTimeout:  2 * time.Minute,
		ErrorHandler: errorHandler(log),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(metrics.Handler())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowCredentials: cfg.CORSOrigins != "*",
	}))

	routes := handlers.RouteConfig{
		JWTSecret:   cfg.Supabase.JWTSecret,
		AppURL:      cfg.AppURL,
		RateLimiter: limiter,
		Gatherer:    registry,
		MetricsUser: cfg.Metrics.User,
		MetricsPass: cfg.Metrics.Pass,
	}
	if mem, ok := bucket.(*storage.MemoryBucket); ok {
		routes.LocalMedia = mem
	}
	if err := handlers.RegisterRoutes(app, h, routes); err != nil {
		log.WithError(err).Fatal("Failed to register routes")
	}

	go func() {
		<-ctx.Done()
		log.Info("Shutting down API")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.WithError(err).Error("Graceful shutdown failed")
		}
	}()

	log.WithFields(logrus.Fields{"port": cfg.Port, "store": cfg.StoreDriver}).Info("Starting API")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}

func newBackends(cfg *config.Config) (store.Store, storage.Bucket, error) {
	if cfg.StoreDriver == config.DriverMemory {
		return store.NewMemoryStore(), storage.NewMemoryBucket("http://localhost:" + cfg.Port + handlers.LocalMediaPrefix), nil
	}
	client, err := config.NewSupabaseClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return store.NewSupabaseStore(client), storage.NewSupabaseBucket(client.Storage, cfg.Bucket, cfg.Supabase.URL), nil
}

// errorHandler keeps error bodies in the {"error": "..."} shape for errors
// that escape the handlers, such as fiber's own 404 and body limit errors.
func errorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "Internal server error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code, msg = fe.Code, fe.Message
		} else {
			log.WithError(err).Error("Unhandled error")
		}
		return utils.RespondWithError(c, code, msg)
	}
}
