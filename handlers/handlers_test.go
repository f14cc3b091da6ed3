package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustimonials/internal/storage"
	"trustimonials/internal/store"
	"trustimonials/middleware"
	"trustimonials/models"
)

const (
	testSecret = "test-jwt-secret-with-enough-length-for-hs256"
	testAppURL = "https://app.example.com"
)

type testEnv struct {
	app    *fiber.App
	store  *store.MemoryStore
	bucket *storage.MemoryBucket
}

type fakeProcessor struct{ status string }

func (f fakeProcessor) Status(context.Context) (string, error) { return f.status, nil }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	env := &testEnv{
		store:  store.NewMemoryStore(),
		bucket: storage.NewMemoryBucket("https://storage.example.com"),
	}
	h := NewApplicationHandler(logger, env.store, env.bucket, func(path string) string {
		return testAppURL + path
	})
	reg := prometheus.NewRegistry()
	h.Metrics = middleware.NewMetrics(reg)
	h.Processor = fakeProcessor{status: "serving"}

	env.app = fiber.New()
	require.NoError(t, RegisterRoutes(env.app, h, RouteConfig{
		JWTSecret:   testSecret,
		AppURL:      testAppURL,
		RateLimiter: middleware.NewRateLimiter(1000, 1000),
		Gatherer:    reg,
		MetricsUser: "prom",
		MetricsPass: "pass",
	}))
	return env
}

func tokenFor(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID.String(),
		"aud":  "authenticated",
		"role": "authenticated",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

// do sends a JSON request. A zero user sends no token.
func (env *testEnv) do(t *testing.T, method, path string, user uuid.UUID, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != uuid.Nil {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, user))
	}
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decode reads the {"status":"success","data":...} envelope into dst.
func decode(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	var envelope struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Equal(t, "success", envelope.Status)
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}

func errorOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	msg, _ := body["error"].(string)
	return msg
}

func (env *testEnv) createTestimonial(t *testing.T, user uuid.UUID, body map[string]interface{}) models.TestimonialView {
	t.Helper()
	resp := env.do(t, http.MethodPost, "/api/testimonials", user, body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var view models.TestimonialView
	decode(t, resp, &view)
	return view
}

func (env *testEnv) projectOf(t *testing.T, user uuid.UUID) models.Project {
	t.Helper()
	resp := env.do(t, http.MethodGet, "/api/projects/current", user, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var p models.Project
	decode(t, resp, &p)
	return p
}

func TestCurrentProject_CreatedOnce(t *testing.T) {
	env := newTestEnv(t)
	user := uuid.New()

	first := env.projectOf(t, user)
	second := env.projectOf(t, user)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, user, first.UserID)
	assert.Equal(t, defaultProjectName, first.Name)
}

func TestDashboardRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	for _, path := range []string{"/api/projects/current", "/api/testimonials", "/api/forms", "/api/walls", "/api/widgets"} {
		resp := env.do(t, http.MethodGet, path, uuid.Nil, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestCreateTestimonial_Validation(t *testing.T) {
	env := newTestEnv(t)
	user := uuid.New()
	otherProject := uuid.New()

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing name", map[string]interface{}{"type": "text", "message": "hi"}},
		{"bad type", map[string]interface{}{"type": "audio", "name": "A", "message": "hi"}},
		{"text without message", map[string]interface{}{"type": "text", "name": "A"}},
		{"video without path", map[string]interface{}{"type": "video", "name": "A"}},
		{"rating out of range", map[string]interface{}{"type": "text", "name": "A", "message": "hi", "rating": 7}},
		{"foreign media", map[string]interface{}{"type": "video", "name": "A", "video_path": otherProject.String() + "/videos/x.mp4"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.do(t, http.MethodPost, "/api/testimonials", user, tc.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, errorOf(t, resp))
		})
	}
}

func TestCreateVideoTestimonial_QueuesThumbnail(t *testing.T) {
	env := newTestEnv(t)
	user := uuid.New()
	project := env.projectOf(t, user)
	videoPath := project.ID.String() + "/videos/clip.mp4"

	view := env.createTestimonial(t, user, map[string]interface{}{
		"type":       "video",
		"name":       "Lin",
		"video_path": videoPath,
		"tags":       []string{"launch", " launch ", "Launch", "support"},
	})
	assert.Equal(t, models.StatusPublic, view.Status)
	assert.Equal(t, "https://storage.example.com/object/public/"+videoPath, view.VideoURL)
	assert.Equal(t, []string{"launch", "support"}, view.Tags)

	jobs := env.store.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, models.JobTypeThumbnail, jobs[0].JobType)
	assert.Equal(t, view.ID, jobs[0].EntityID)

	var meta models.ThumbnailJobMetadata
	require.NoError(t, json.Unmarshal(jobs[0].Metadata, &meta))
	assert.Equal(t, models.ThumbnailJobMetadata{ProjectID: project.ID, VideoPath: videoPath}, meta)
}

func TestListTestimonials_FiltersAndOwnership(t *testing.T) {
	env := newTestEnv(t)
	user, other := uuid.New(), uuid.New()

	env.createTestimonial(t, user, map[string]interface{}{"type": "text", "name": "A", "message": "one", "status": "hidden", "tags": []string{"x"}})
	env.createTestimonial(t, user, map[string]interface{}{"type": "text", "name": "B", "message": "two"})
	env.createTestimonial(t, other, map[string]interface{}{"type": "text", "name": "C", "message": "three"})

	var all []models.TestimonialView
	decode(t, env.do(t, http.MethodGet, "/api/testimonials", user, nil), &all)
	require.Len(t, all, 2)
	assert.Equal(t, "B", all[0].Name, "newest first")

	var hidden []models.TestimonialView
	decode(t, env.do(t, http.MethodGet, "/api/testimonials?status=hidden", user, nil), &hidden)
	require.Len(t, hidden, 1)
	assert.Equal(t, "A", hidden[0].Name)

	var tagged []models.TestimonialView
	decode(t, env.do(t, http.MethodGet, "/api/testimonials?tag=x", user, nil), &tagged)
	assert.Len(t, tagged, 1)

	resp := env.do(t, http.MethodGet, "/api/testimonials?status=archived", user, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/testimonials/"+all[0].ID.String(), other, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateTestimonial(t *testing.T) {
	env := newTestEnv(t)
	user := uuid.New()
	view := env.createTestimonial(t, user, map[string]interface{}{"type": "text", "name": "Ada", "message": "old", "company": "ACME"})
	path := "/api/testimonials/" + view.ID.String()

	resp := env.do(t, http.MethodPatch, path, user, map[string]interface{}{
		"data":   map[string]interface{}{"message": "new", "company": nil, "rating": 4},
		"status": "hidden",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var updated models.TestimonialView
	decode(t, resp, &updated)
	assert.Equal(t, "new", updated.Message)
	assert.Empty(t, updated.Company)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "Ada", updated.Name)
	assert.Equal(t, models.StatusHidden, updated.Status)

	for _, patch := range []map[string]interface{}{
		{"thumbnail_url": "https://evil.example.com/x.webp"},
		{"image_paths": []string{"other/images/x.png"}},
		{"rating": 2.5},
		{"name": ""},
		{"tags": 7},
		{"tags": []interface{}{"ok", 3}},
	} {
		resp = env.do(t, http.MethodPatch, path, user, map[string]interface{}{"data": patch})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, patch)
	}

	resp = env.do(t, http.MethodPatch, path+"/status", user, map[string]string{"status": "archived"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp = env.do(t, http.MethodPatch, path+"/status", user, map[string]string{"status": "public"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUpdateTestimonial_TagsStayFilterable(t *testing.T) {
	env := newTestEnv(t)
	user := uuid.New()
	view := env.createTestimonial(t, user, map[string]interface{}{"type": "text", "name": "Ada", "message": "hi"})
	path := "/api/testimonials/" + view.ID.String()

	resp := env.do(t, http.MethodPatch, path, user, map[string]interface{}{
		"data": map[string]interface{}{"tags": "vip, beta ,VIP,"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var updated models.TestimonialView
	decode(t, resp, &updated)
	assert.Equal(t, []string{"vip", "beta"}, updated.Tags)

	stored, err := env.store.GetTestimonial(context.Background(), store.Scope{UserID: user, ProjectID: env.projectOf(t, user).ID}, view.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `["vip","beta"]`, string(mustField(t, stored.Data, "tags")))

	for _, tag := range []string{"vip", "beta"} {
		var tagged []models.TestimonialView
		decode(t, env.do(t, http.MethodGet, "/api/testimonials?tag="+tag, user, nil), &tagged)
		assert.Len(t, tagged, 1, tag)
	}

	resp = env.do(t, http.MethodPatch, path, user, map[string]interface{}{
		"data": map[string]interface{}{"tags": []string{" support "}},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &updated)
	assert.Equal(t, []string{"support"}, updated.Tags)
}

// mustField returns the raw JSON of key in the data object raw.
func mustField(t *testing.T, raw json.RawMessage, key string) json.RawMessage {
	t.Helper()
	var data map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &data))
	require.Contains(t, data, key)
	return data[key]
}

func TestDuplicateAndDelete_SharedMediaKept(t *testing.T) {
	env := newTestEnv(t)
	user := uuid.New()
	project := env.projectOf(t, user)
	videoPath := project.ID.String() + "/videos/clip.mp4"
	require.NoError(t, env.bucket.Upload(context.Background(), videoPath, bytes.NewReader([]byte("video")), "video/mp4"))

	imagePath := project.ID.String() + "/images/pic.png"
	require.NoError(t, env.bucket.Upload(context.Background(), imagePath, bytes.NewReader([]byte("png")), "image/png"))

	original := env.createTestimonial(t, user, map[string]interface{}{
		"type": "video", "name": "Lin", "video_path": videoPath, "image_paths": []string{imagePath},
	})
	assert.Equal(t, []string{env.bucket.PublicURL(imagePath)}, original.Images)

	resp := env.do(t, http.MethodPost, "/api/testimonials/"+original.ID.String()+"/duplicate", user, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var copied models.TestimonialView
	decode(t, resp, &copied)
	assert.NotEqual(t, original.ID, copied.ID)
	assert.Equal(t, models.StatusHidden, copied.Status)
	assert.Equal(t, original.VideoURL, copied.VideoURL)

	resp = env.do(t, http.MethodDelete, "/api/testimonials/"+original.ID.String(), user, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	_, stillThere := env.bucket.Has(videoPath)
	assert.True(t, stillThere, "the duplicate still references the video")
	_, stillThere = env.bucket.Has(imagePath)
	assert.True(t, stillThere, "the duplicate still references the image")

	resp = env.do(t, http.MethodDelete, "/api/testimonials/"+copied.ID.String(), user, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	_, stillThere = env.bucket.Has(videoPath)
	assert.False(t, stillThere)
	_, stillThere = env.bucket.Has(imagePath)
	assert.False(t, stillThere)

	resp = env.do(t, http.MethodDelete, "/api/testimonials/"+copied.ID.String(), user, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTrimTestimonial(t *testing.T) {
	env := newTestEnv(t)
	user := uuid.New()
	project := env.projectOf(t, user)
	video := env.createTestimonial(t, user, map[string]interface{}{"type": "video", "name": "Lin", "video_path": project.ID.String() + "/videos/a.mp4"})
	text := env.createTestimonial(t, user, map[string]interface{}{"type": "text", "name": "Ada", "message": "hi"})
	require.NoError(t, env.store.MergeTestimonialData(context.Background(), video.ID, map[string]interface{}{"duration": 12.5}))

	trimPath := "/api/testimonials/" + video.ID.String() + "/trim"
	resp := env.do(t, http.MethodPost, trimPath, user, map[string]float64{"start": 1, "end": 10})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var trimmed models.TestimonialView
	decode(t, resp, &trimmed)
	require.NotNil(t, trimmed.Trim)
	assert.Equal(t, models.Trim{Start: 1, End: 10}, *trimmed.Trim)

	for _, body := range []map[string]float64{
		{"start": 5, "end": 5},
		{"start": -1, "end": 3},
		{"start": 1, "end": 13},
	} {
		resp = env.do(t, http.MethodPost, trimPath, user, body)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, body)
	}

	resp = env.do(t, http.MethodPost, "/api/testimonials/"+text.ID.String()+"/trim", user, map[string]float64{"start": 0, "end": 1})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRegenerateThumbnail(t *testing.T) {
	env := newTestEnv(t)
	user := uuid.New()
	project := env.projectOf(t, user)
	video := env.createTestimonial(t, user, map[string]interface{}{"type": "video", "name": "Lin", "video_path": project.ID.String() + "/videos/a.mp4"})
	text := env.createTestimonial(t, user, map[string]interface{}{"type": "text", "name": "Ada", "message": "hi"})

	resp := env.do(t, http.MethodPost, "/api/testimonials/"+video.ID.String()+"/thumbnail", user, nil)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	assert.Len(t, env.store.Jobs(), 2)

	resp = env.do(t, http.MethodPost, "/api/testimonials/"+text.ID.String()+"/thumbnail", user, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func multipartRequest(t *testing.T, path, kind, filename, contentType string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("kind", kind))
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadFile(t *testing.T) {
	env := newTestEnv(t)
	user := uuid.New()
	project := env.projectOf(t, user)

	req := multipartRequest(t, "/api/uploads", "avatar", "me.png", "image/png", []byte("\x89PNG fake"))
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, user))
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var up UploadResponse
	decode(t, resp, &up)
	assert.True(t, storage.OwnedBy(project.ID, up.Path))
	contentType, ok := env.bucket.Has(up.Path)
	require.True(t, ok)
	assert.Equal(t, "image/png", contentType)

	req = multipartRequest(t, "/api/uploads", "image", "doc.pdf", "application/pdf", []byte("%PDF"))
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, user))
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateSignedUpload(t *testing.T) {
	env := newTestEnv(t)
	user := uuid.New()

	resp := env.do(t, http.MethodPost, "/api/uploads/signed", user, map[string]interface{}{
		"kind": "video", "filename": "talk.mp4", "content_type": "video/mp4", "size": 50 << 20,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var signed SignedUploadResponse
	decode(t, resp, &signed)
	assert.Contains(t, signed.UploadURL, signed.Path)

	resp = env.do(t, http.MethodPost, "/api/uploads/signed", user, map[string]interface{}{
		"kind": "video", "filename": "talk.mp4", "content_type": "video/mp4", "size": 200 << 20,
	})
	assert.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestForms(t *testing.T) {
	env := newTestEnv(t)
	user, other := uuid.New(), uuid.New()

	resp := env.do(t, http.MethodPost, "/api/forms", user, map[string]string{"name": "Launch feedback"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var form FormResponse
	decode(t, resp, &form)
	assert.NotEmpty(t, form.Config.Blocks, "default template applied")
	assert.Equal(t, testAppURL+"/f/"+form.ID.String(), form.ShareURL)

	resp = env.do(t, http.MethodPost, "/api/forms", user, map[string]interface{}{
		"name":   "Broken",
		"config": map[string]interface{}{"version": 1, "blocks": []interface{}{map[string]interface{}{"type": "poll", "enabled": true}}},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	formPath := "/api/forms/" + form.ID.String()
	resp = env.do(t, http.MethodPut, formPath, user, map[string]string{"name": "Renamed"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var renamed FormResponse
	decode(t, resp, &renamed)
	assert.Equal(t, "Renamed", renamed.Name)
	assert.Equal(t, form.Config, renamed.Config)

	resp = env.do(t, http.MethodGet, formPath, other, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodGet, formPath+"/qr?size=200", user, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	png, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	resp = env.do(t, http.MethodGet, formPath+"/qr?size=5000", user, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, formPath, user, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp = env.do(t, http.MethodGet, "/api/public/forms/"+form.ID.String(), uuid.Nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func (env *testEnv) createForm(t *testing.T, user uuid.UUID) FormResponse {
	t.Helper()
	resp := env.do(t, http.MethodPost, "/api/forms", user, map[string]string{"name": "Feedback"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var form FormResponse
	decode(t, resp, &form)
	return form
}

func TestSubmitForm(t *testing.T) {
	env := newTestEnv(t)
	user := uuid.New()
	form := env.createForm(t, user)
	submit := "/api/public/forms/" + form.ID.String() + "/submissions"

	resp := env.do(t, http.MethodGet, "/api/public/forms/"+form.ID.String(), uuid.Nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var public map[string]interface{}
	decode(t, resp, &public)
	assert.NotContains(t, public, "user_id")

	t.Run("positive submission is pending", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, submit, uuid.Nil, map[string]interface{}{
			"rating": 5, "message": "Loved it", "name": "Grace", "consent": true,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		var out SubmissionResponse
		decode(t, resp, &out)
		assert.False(t, out.Negative)

		var view models.TestimonialView
		decode(t, env.do(t, http.MethodGet, "/api/testimonials/"+out.ID, user, nil), &view)
		assert.Equal(t, models.StatusPending, view.Status)
		assert.Equal(t, models.SourceForm, view.Source)
		require.NotNil(t, view.FormID)
		assert.Equal(t, form.ID, *view.FormID)
	})

	t.Run("low rating is private feedback", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, submit, uuid.Nil, map[string]interface{}{
			"rating": 2, "feedback": "Support was slow",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		var out SubmissionResponse
		decode(t, resp, &out)
		assert.True(t, out.Negative)

		var view models.TestimonialView
		decode(t, env.do(t, http.MethodGet, "/api/testimonials/"+out.ID, user, nil), &view)
		assert.Equal(t, models.StatusHidden, view.Status)
		assert.Equal(t, models.SourcePrivateFeedback, view.Source)
		assert.Equal(t, "Support was slow", view.Message)
	})

	t.Run("incomplete answers", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, submit, uuid.Nil, map[string]interface{}{"rating": 5, "name": "Grace", "consent": true})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, errorOf(t, resp), "message")
	})

	t.Run("video from another project", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, submit, uuid.Nil, map[string]interface{}{
			"rating": 5, "video_path": uuid.NewString() + "/videos/x.mp4", "name": "Grace", "consent": true,
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("video submission queues a thumbnail", func(t *testing.T) {
		before := len(env.store.Jobs())
		resp := env.do(t, http.MethodPost, submit, uuid.Nil, map[string]interface{}{
			"rating": 4, "video_path": form.ProjectID.String() + "/videos/x.mp4", "name": "Grace", "consent": true,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.Len(t, env.store.Jobs(), before+1)
	})

	resp = env.do(t, http.MethodPost, "/api/public/forms/"+uuid.NewString()+"/submissions", uuid.Nil, map[string]interface{}{"rating": 5})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUploadSubmissionMedia(t *testing.T) {
	env := newTestEnv(t)
	form := env.createForm(t, uuid.New())

	req := multipartRequest(t, "/api/public/forms/"+form.ID.String()+"/uploads", "video", "me.mp4", "video/mp4", []byte("fake mp4"))
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var up UploadResponse
	decode(t, resp, &up)
	assert.True(t, storage.OwnedBy(form.ProjectID, up.Path))

	req = multipartRequest(t, "/api/public/forms/"+form.ID.String()+"/uploads", "image", "x.png", "image/png", []byte("png"))
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestShowcases(t *testing.T) {
	env := newTestEnv(t)
	user := uuid.New()

	first := env.createTestimonial(t, user, map[string]interface{}{"type": "text", "name": "First", "message": "a"})
	hidden := env.createTestimonial(t, user, map[string]interface{}{"type": "text", "name": "Hidden", "message": "b", "status": "hidden"})
	second := env.createTestimonial(t, user, map[string]interface{}{"type": "text", "name": "Second", "message": "c"})
	foreign := env.createTestimonial(t, uuid.New(), map[string]interface{}{"type": "text", "name": "Foreign", "message": "d"})

	resp := env.do(t, http.MethodPost, "/api/walls", user, map[string]interface{}{"name": "Love", "theme": "neon"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/walls", user, map[string]interface{}{"name": "   "})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "blank names are rejected after trimming")

	resp = env.do(t, http.MethodPost, "/api/walls", user, map[string]interface{}{
		"name": "Love", "testimonial_ids": []uuid.UUID{first.ID, foreign.ID},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/walls", user, map[string]interface{}{
		"name":            "Love",
		"testimonial_ids": []uuid.UUID{second.ID, hidden.ID, first.ID, second.ID},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var wall models.Showcase
	decode(t, resp, &wall)
	assert.Equal(t, []uuid.UUID{second.ID, hidden.ID, first.ID}, wall.TestimonialIDs)
	assert.NotEmpty(t, wall.Config.Theme)
	assert.False(t, wall.Published)

	publicPath := "/api/public/walls/" + wall.ID.String()
	resp = env.do(t, http.MethodGet, publicPath, uuid.Nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "unpublished walls are not public")

	resp = env.do(t, http.MethodPost, "/api/walls/"+wall.ID.String()+"/publish", user, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, publicPath, uuid.Nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var view models.PublicShowcase
	decode(t, resp, &view)
	require.Len(t, view.Testimonials, 2)
	assert.Equal(t, "Second", view.Testimonials[0].Name)
	assert.Equal(t, "First", view.Testimonials[1].Name)
	assert.Equal(t, models.KindWall, view.Kind)

	resp = env.do(t, http.MethodGet, "/api/public/widgets/"+wall.ID.String(), uuid.Nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "kinds do not mix")

	resp = env.do(t, http.MethodPut, "/api/walls/"+wall.ID.String(), user, map[string]interface{}{"name": " \t "})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp = env.do(t, http.MethodPut, "/api/walls/"+wall.ID.String(), user, map[string]interface{}{"name": "  Kudos  "})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var renamed models.Showcase
	decode(t, resp, &renamed)
	assert.Equal(t, "Kudos", renamed.Name)

	resp = env.do(t, http.MethodPost, "/api/walls/"+wall.ID.String()+"/publish", user, map[string]bool{"published": false})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = env.do(t, http.MethodGet, publicPath, uuid.Nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestWidgetThemeAndStyle(t *testing.T) {
	env := newTestEnv(t)
	user := uuid.New()

	resp := env.do(t, http.MethodPost, "/api/widgets", user, map[string]interface{}{"name": "Sidebar", "theme": "list"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var widget models.Showcase
	decode(t, resp, &widget)
	assert.Equal(t, "list", widget.Config.Theme)

	path := "/api/widgets/" + widget.ID.String()
	resp = env.do(t, http.MethodPut, path, user, map[string]interface{}{"style": map[string]string{"accent": "#ff0066"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var updated models.Showcase
	decode(t, resp, &updated)
	assert.Equal(t, "list", updated.Config.Theme)
	assert.JSONEq(t, `{"accent":"#ff0066"}`, string(updated.Config.Style))

	resp = env.do(t, http.MethodPut, path, user, map[string]interface{}{"style": []int{1}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, path, user, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp = env.do(t, http.MethodGet, path, user, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestEmbedScript(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/embed.js", uuid.Nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "javascript")

	body, _ := io.ReadAll(resp.Body)
	script := string(body)
	assert.Contains(t, script, `var ORIGIN = "https://app.example.com"`)
	assert.Contains(t, script, ResizeMessageType)
	assert.Contains(t, script, "event.source !== iframe.contentWindow")
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/health", uuid.Nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var health HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "serving", health.Processor)

	resp = env.do(t, http.MethodGet, "/metrics", uuid.Nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.SetBasicAuth("prom", "pass")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
