package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	postgrest "github.com/supabase-community/postgrest-go"

	"trustimonials/models"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   string
}

// fakePostgREST answers every request with body and records what it saw.
type fakePostgREST struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func (f *fakePostgREST) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Body: string(b)})
	status, body := f.status, f.body
	f.mu.Unlock()
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (f *fakePostgREST) last(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func newFakeStore(t *testing.T, body string) (*SupabaseStore, *fakePostgREST) {
	t.Helper()
	fake := &fakePostgREST{body: body}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return NewSupabaseStore(postgrest.NewClient(srv.URL, "public", nil)), fake
}

func TestSupabaseStore_GetTestimonialFiltersOwnership(t *testing.T) {
	scope := newScope()
	id := uuid.New()
	s, fake := newFakeStore(t, `[]`)

	_, err := s.GetTestimonial(context.Background(), scope, id)
	assert.ErrorIs(t, err, ErrNotFound)

	req := fake.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/testimonials", req.Path)
	assert.Equal(t, "eq."+id.String(), req.Query.Get("id"))
	assert.Equal(t, "eq."+scope.UserID.String(), req.Query.Get("user_id"))
	assert.Equal(t, "eq."+scope.ProjectID.String(), req.Query.Get("project_id"))
}

func TestSupabaseStore_ListTestimonialsFilters(t *testing.T) {
	scope := newScope()
	rowID := uuid.New()
	s, fake := newFakeStore(t, `[{"id":"`+rowID.String()+`","type":"text","status":"public","data":{"name":"Ada"}}]`)

	rows, err := s.ListTestimonials(context.Background(), scope, TestimonialFilter{Status: "public", Tag: "saas"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, rowID, rows[0].ID)
	assert.Equal(t, "Ada", models.ToView(rows[0]).Name)

	req := fake.last(t)
	assert.Equal(t, "eq.public", req.Query.Get("status"))
	assert.Equal(t, `cs.["saas"]`, req.Query.Get("data->tags"))
	assert.Contains(t, req.Query.Get("order"), "created_at.desc")
}

func TestSupabaseStore_CreateTestimonialInsertsRow(t *testing.T) {
	scope := newScope()
	s, fake := newFakeStore(t, "")
	fake.body = `[{"id":"` + uuid.NewString() + `","status":"pending"}]`

	row, err := s.CreateTestimonial(context.Background(), models.Testimonial{
		UserID: scope.UserID, ProjectID: scope.ProjectID, Type: models.TypeText,
		Status: models.StatusPending, Data: json.RawMessage(`{"message":"hi"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, row.Status)

	req := fake.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(req.Body), &sent))
	assert.Equal(t, scope.UserID.String(), sent["user_id"])
	assert.NotEmpty(t, sent["id"])
	assert.Equal(t, map[string]interface{}{"message": "hi"}, sent["data"])
}

func TestSupabaseStore_UpdateWithNoMatchIsNotFound(t *testing.T) {
	s, fake := newFakeStore(t, `[]`)
	published := true
	_, err := s.UpdateShowcase(context.Background(), models.KindWidget, newScope(), uuid.New(), ShowcaseUpdate{Published: &published})
	assert.ErrorIs(t, err, ErrNotFound)

	req := fake.last(t)
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "/widgets", req.Path)
	assert.Contains(t, req.Body, `"published":true`)
}

func TestSupabaseStore_ServerErrorIsWrapped(t *testing.T) {
	s, fake := newFakeStore(t, `{"code":"42P01","message":"relation does not exist"}`)
	fake.status = http.StatusBadRequest

	_, err := s.ListForms(context.Background(), newScope())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "failed to list forms")
}

func TestSupabaseStore_GetTestimonialsByIDsSkipsEmpty(t *testing.T) {
	s, fake := newFakeStore(t, `[]`)
	rows, err := s.GetTestimonialsByIDs(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Empty(t, fake.requests)
}
