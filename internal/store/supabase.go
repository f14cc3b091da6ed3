package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	postgrest "github.com/supabase-community/postgrest-go"

	"trustimonials/models"
)

const (
	projectsTable     = "projects"
	testimonialsTable = "testimonials"
	formsTable        = "forms"
	jobsTable         = "processing_jobs"
)

// Querier is satisfied by both *supabase.Client and *postgrest.Client.
type Querier interface {
	From(table string) *postgrest.QueryBuilder
}

// SupabaseStore talks to PostgREST with the service key. Row-level security
// is bypassed, so every query carries explicit ownership filters.
type SupabaseStore struct {
	db  Querier
	now func() time.Time
}

func NewSupabaseStore(db Querier) *SupabaseStore {
	return &SupabaseStore{db: db, now: time.Now}
}

// decodeRows unmarshals a PostgREST array response.
func decodeRows[T any](body []byte) ([]T, error) {
	var rows []T
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode rows: %w", err)
	}
	return rows, nil
}

// first returns the only row of a representation response or ErrNotFound.
func first[T any](body []byte) (*T, error) {
	rows, err := decodeRows[T](body)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (s *SupabaseStore) GetProjectByUser(ctx context.Context, userID uuid.UUID) (*models.Project, error) {
	body, _, err := s.db.From(projectsTable).
		Select("*", "", false).
		Eq("user_id", userID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}
	return first[models.Project](body)
}

func (s *SupabaseStore) CreateProject(ctx context.Context, p models.Project) (*models.Project, error) {
	now := s.now().UTC()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt, p.UpdatedAt = now, now
	body, _, err := s.db.From(projectsTable).Insert(p, false, "", "representation", "").Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert project: %w", err)
	}
	return first[models.Project](body)
}

func (s *SupabaseStore) ListTestimonials(ctx context.Context, scope Scope, f TestimonialFilter) ([]models.Testimonial, error) {
	q := s.db.From(testimonialsTable).
		Select("*", "", false).
		Eq("user_id", scope.UserID.String()).
		Eq("project_id", scope.ProjectID.String())
	if f.Status != "" {
		q = q.Eq("status", f.Status)
	}
	if f.Type != "" {
		q = q.Eq("type", f.Type)
	}
	if f.FormID != nil {
		q = q.Eq("form_id", f.FormID.String())
	}
	if f.Tag != "" {
		tag, _ := json.Marshal([]string{f.Tag})
		q = q.Filter("data->tags", "cs", string(tag))
	}
	body, _, err := q.Order("created_at", &postgrest.OrderOpts{Ascending: false}).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	return decodeRows[models.Testimonial](body)
}

func (s *SupabaseStore) GetTestimonial(ctx context.Context, scope Scope, id uuid.UUID) (*models.Testimonial, error) {
	body, _, err := s.db.From(testimonialsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Eq("user_id", scope.UserID.String()).
		Eq("project_id", scope.ProjectID.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch testimonial: %w", err)
	}
	return first[models.Testimonial](body)
}

func (s *SupabaseStore) GetTestimonialsByIDs(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) ([]models.Testimonial, error) {
	if len(ids) == 0 {
		return []models.Testimonial{}, nil
	}
	values := make([]string, 0, len(ids))
	for _, id := range ids {
		values = append(values, id.String())
	}
	body, _, err := s.db.From(testimonialsTable).
		Select("*", "", false).
		Eq("project_id", projectID.String()).
		In("id", values).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch testimonials: %w", err)
	}
	return decodeRows[models.Testimonial](body)
}

func (s *SupabaseStore) CreateTestimonial(ctx context.Context, t models.Testimonial) (*models.Testimonial, error) {
	now := s.now().UTC()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt, t.UpdatedAt = now, now
	body, _, err := s.db.From(testimonialsTable).Insert(t, false, "", "representation", "").Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert testimonial: %w", err)
	}
	return first[models.Testimonial](body)
}

func (s *SupabaseStore) UpdateTestimonial(ctx context.Context, scope Scope, id uuid.UUID, u TestimonialUpdate) (*models.Testimonial, error) {
	updates := map[string]interface{}{"updated_at": s.now().UTC()}
	if u.Data != nil {
		updates["data"] = u.Data
	}
	if u.Status != nil {
		updates["status"] = *u.Status
	}
	body, _, err := s.db.From(testimonialsTable).
		Update(updates, "representation", "").
		Eq("id", id.String()).
		Eq("user_id", scope.UserID.String()).
		Eq("project_id", scope.ProjectID.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update testimonial: %w", err)
	}
	return first[models.Testimonial](body)
}

func (s *SupabaseStore) DeleteTestimonial(ctx context.Context, scope Scope, id uuid.UUID) (*models.Testimonial, error) {
	body, _, err := s.db.From(testimonialsTable).
		Delete("representation", "").
		Eq("id", id.String()).
		Eq("user_id", scope.UserID.String()).
		Eq("project_id", scope.ProjectID.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to delete testimonial: %w", err)
	}
	return first[models.Testimonial](body)
}

func (s *SupabaseStore) ListForms(ctx context.Context, scope Scope) ([]models.Form, error) {
	body, _, err := s.db.From(formsTable).
		Select("*", "", false).
		Eq("user_id", scope.UserID.String()).
		Eq("project_id", scope.ProjectID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}
	return decodeRows[models.Form](body)
}

func (s *SupabaseStore) GetForm(ctx context.Context, scope Scope, id uuid.UUID) (*models.Form, error) {
	body, _, err := s.db.From(formsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Eq("user_id", scope.UserID.String()).
		Eq("project_id", scope.ProjectID.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch form: %w", err)
	}
	return first[models.Form](body)
}

func (s *SupabaseStore) GetPublicForm(ctx context.Context, id uuid.UUID) (*models.Form, error) {
	body, _, err := s.db.From(formsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch form: %w", err)
	}
	return first[models.Form](body)
}

func (s *SupabaseStore) CreateForm(ctx context.Context, f models.Form) (*models.Form, error) {
	now := s.now().UTC()
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.CreatedAt, f.UpdatedAt = now, now
	body, _, err := s.db.From(formsTable).Insert(f, false, "", "representation", "").Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert form: %w", err)
	}
	return first[models.Form](body)
}

func (s *SupabaseStore) UpdateForm(ctx context.Context, scope Scope, id uuid.UUID, u FormUpdate) (*models.Form, error) {
	updates := map[string]interface{}{"updated_at": s.now().UTC()}
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Config != nil {
		updates["config"] = *u.Config
	}
	body, _, err := s.db.From(formsTable).
		Update(updates, "representation", "").
		Eq("id", id.String()).
		Eq("user_id", scope.UserID.String()).
		Eq("project_id", scope.ProjectID.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update form: %w", err)
	}
	return first[models.Form](body)
}

func (s *SupabaseStore) DeleteForm(ctx context.Context, scope Scope, id uuid.UUID) error {
	body, _, err := s.db.From(formsTable).
		Delete("representation", "").
		Eq("id", id.String()).
		Eq("user_id", scope.UserID.String()).
		Eq("project_id", scope.ProjectID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete form: %w", err)
	}
	_, err = first[models.Form](body)
	return err
}

func (s *SupabaseStore) ListShowcases(ctx context.Context, kind models.ShowcaseKind, scope Scope) ([]models.Showcase, error) {
	body, _, err := s.db.From(kind.Table()).
		Select("*", "", false).
		Eq("user_id", scope.UserID.String()).
		Eq("project_id", scope.ProjectID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind.Table(), err)
	}
	return decodeRows[models.Showcase](body)
}

func (s *SupabaseStore) GetShowcase(ctx context.Context, kind models.ShowcaseKind, scope Scope, id uuid.UUID) (*models.Showcase, error) {
	body, _, err := s.db.From(kind.Table()).
		Select("*", "", false).
		Eq("id", id.String()).
		Eq("user_id", scope.UserID.String()).
		Eq("project_id", scope.ProjectID.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", kind, err)
	}
	return first[models.Showcase](body)
}

func (s *SupabaseStore) GetPublishedShowcase(ctx context.Context, kind models.ShowcaseKind, id uuid.UUID) (*models.Showcase, error) {
	body, _, err := s.db.From(kind.Table()).
		Select("*", "", false).
		Eq("id", id.String()).
		Eq("published", "true").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", kind, err)
	}
	return first[models.Showcase](body)
}

func (s *SupabaseStore) CreateShowcase(ctx context.Context, kind models.ShowcaseKind, sc models.Showcase) (*models.Showcase, error) {
	now := s.now().UTC()
	if sc.ID == uuid.Nil {
		sc.ID = uuid.New()
	}
	if sc.TestimonialIDs == nil {
		sc.TestimonialIDs = []uuid.UUID{}
	}
	sc.CreatedAt, sc.UpdatedAt = now, now
	body, _, err := s.db.From(kind.Table()).Insert(sc, false, "", "representation", "").Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert %s: %w", kind, err)
	}
	return first[models.Showcase](body)
}

func (s *SupabaseStore) UpdateShowcase(ctx context.Context, kind models.ShowcaseKind, scope Scope, id uuid.UUID, u ShowcaseUpdate) (*models.Showcase, error) {
	updates := map[string]interface{}{"updated_at": s.now().UTC()}
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Config != nil {
		updates["config"] = *u.Config
	}
	if u.TestimonialIDs != nil {
		updates["testimonial_ids"] = *u.TestimonialIDs
	}
	if u.Published != nil {
		updates["published"] = *u.Published
	}
	body, _, err := s.db.From(kind.Table()).
		Update(updates, "representation", "").
		Eq("id", id.String()).
		Eq("user_id", scope.UserID.String()).
		Eq("project_id", scope.ProjectID.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", kind, err)
	}
	return first[models.Showcase](body)
}

func (s *SupabaseStore) DeleteShowcase(ctx context.Context, kind models.ShowcaseKind, scope Scope, id uuid.UUID) error {
	body, _, err := s.db.From(kind.Table()).
		Delete("representation", "").
		Eq("id", id.String()).
		Eq("user_id", scope.UserID.String()).
		Eq("project_id", scope.ProjectID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	_, err = first[models.Showcase](body)
	return err
}

func (s *SupabaseStore) CreateJob(ctx context.Context, j models.ProcessingJob) (*models.ProcessingJob, error) {
	now := s.now().UTC()
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Status == "" {
		j.Status = models.JobStatusPending
	}
	j.CreatedAt, j.UpdatedAt = now, now
	body, _, err := s.db.From(jobsTable).Insert(j, false, "", "representation", "").Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert processing job: %w", err)
	}
	return first[models.ProcessingJob](body)
}
