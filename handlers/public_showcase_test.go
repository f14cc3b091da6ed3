package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	postgrest "github.com/supabase-community/postgrest-go"

	"trustimonials/internal/storage"
	"trustimonials/internal/store"
	"trustimonials/models"
)

// tablePostgREST answers each table path with a fixed JSON body.
type tablePostgREST map[string]string

func (f tablePostgREST) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, ok := f[r.URL.Path]
	if !ok {
		body = `[]`
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func TestPublicShowcase_SupabaseKeepsSelectionOrder(t *testing.T) {
	projectID, wallID := uuid.New(), uuid.New()
	a, b, hidden := uuid.New(), uuid.New(), uuid.New()

	row := func(id uuid.UUID, status, name string) string {
		return `{"id":"` + id.String() + `","project_id":"` + projectID.String() +
			`","type":"text","status":"` + status + `","data":{"name":"` + name + `"}}`
	}
	srv := httptest.NewServer(tablePostgREST{
		"/walls": `[{"id":"` + wallID.String() + `","project_id":"` + projectID.String() +
			`","name":"Love","config":{"theme":"masonry"},"published":true,"testimonial_ids":["` +
			b.String() + `","` + hidden.String() + `","` + a.String() + `"]}]`,
		// Rows come back in table order, not selection order.
		"/testimonials": `[` + row(a, "public", "Ada") + `,` + row(hidden, "hidden", "Hal") + `,` + row(b, "public", "Bo") + `]`,
	})
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	st := store.NewSupabaseStore(postgrest.NewClient(srv.URL, "public", nil))
	h := NewApplicationHandler(logger, st, storage.NewMemoryBucket("https://storage.example.com"), func(path string) string {
		return testAppURL + path
	})
	app := fiber.New()
	require.NoError(t, RegisterRoutes(app, h, RouteConfig{JWTSecret: testSecret, AppURL: testAppURL}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/public/walls/"+wallID.String(), nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var wall models.PublicShowcase
	decode(t, resp, &wall)
	var got []uuid.UUID
	for _, v := range wall.Testimonials {
		got = append(got, v.ID)
	}
	assert.Equal(t, []uuid.UUID{b, a}, got)
	assert.Equal(t, "Bo", wall.Testimonials[0].Name)
}

func TestPublicInOrder(t *testing.T) {
	a, b, missing := uuid.New(), uuid.New(), uuid.New()
	rows := []models.Testimonial{
		{ID: a, Status: models.StatusPublic},
		{ID: b, Status: models.StatusPublic},
	}
	views := publicInOrder([]uuid.UUID{missing, b, a}, rows)
	require.Len(t, views, 2)
	assert.Equal(t, b, views[0].ID)
	assert.Equal(t, a, views[1].ID)

	assert.Empty(t, publicInOrder(nil, rows))
}
