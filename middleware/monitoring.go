package middleware

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the HTTP collectors. Register them once per registry.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	authRejections  *prometheus.CounterVec
	jobsEnqueued    *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
		authRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_rejections_total",
				Help: "Total number of unauthorized requests",
			},
			[]string{"reason"},
		),
		jobsEnqueued: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "processing_jobs_enqueued_total",
				Help: "Processing jobs inserted by the API",
			},
			[]string{"job_type"},
		),
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration, m.authRejections, m.jobsEnqueued)
	return m
}

// Handler records every request. The path label is the matched route
// template, so /api/testimonials/:id stays one series.
func (m *Metrics) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := statusOf(c, err)
		path := c.Route().Path
		if status == fiber.StatusNotFound && path == "/" {
			path = "unmatched"
		}
		m.requestsTotal.WithLabelValues(path, c.Method(), http.StatusText(status)).Inc()
		m.requestDuration.WithLabelValues(path, c.Method()).Observe(time.Since(start).Seconds())

		switch status {
		case fiber.StatusUnauthorized:
			m.authRejections.WithLabelValues("401_unauthorized").Inc()
		case fiber.StatusForbidden:
			m.authRejections.WithLabelValues("403_forbidden").Inc()
		}
		return err
	}
}

// JobEnqueued counts a processing job inserted by a handler.
func (m *Metrics) JobEnqueued(jobType string) {
	if m == nil {
		return
	}
	m.jobsEnqueued.WithLabelValues(jobType).Inc()
}

// BasicAuth protects /metrics. An empty user disables access entirely.
func BasicAuth(user, pass string) fiber.Handler {
	if user == "" {
		return func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusNotFound)
		}
	}
	return basicauth.New(basicauth.Config{
		Users: map[string]string{user: pass},
		Realm: "Metrics",
	})
}
