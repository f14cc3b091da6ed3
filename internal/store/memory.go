package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"trustimonials/models"
)

// MemoryStore keeps everything in process. It backs STORE_DRIVER=memory and tests.
type MemoryStore struct {
	mu           sync.RWMutex
	now          func() time.Time
	projects     map[uuid.UUID]models.Project
	testimonials map[uuid.UUID]models.Testimonial
	forms        map[uuid.UUID]models.Form
	showcases    map[models.ShowcaseKind]map[uuid.UUID]models.Showcase
	jobs         []models.ProcessingJob
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:          time.Now,
		projects:     map[uuid.UUID]models.Project{},
		testimonials: map[uuid.UUID]models.Testimonial{},
		forms:        map[uuid.UUID]models.Form{},
		showcases: map[models.ShowcaseKind]map[uuid.UUID]models.Showcase{
			models.KindWall:   {},
			models.KindWidget: {},
		},
	}
}

// stamp returns a strictly increasing timestamp so ordering by creation time
// is stable even when two rows are written within the clock resolution.
func (m *MemoryStore) stamp(last time.Time) time.Time {
	now := m.now().UTC()
	if !now.After(last) {
		now = last.Add(time.Microsecond)
	}
	return now
}

func (m *MemoryStore) latest() time.Time {
	var last time.Time
	for _, t := range m.testimonials {
		if t.CreatedAt.After(last) {
			last = t.CreatedAt
		}
	}
	return last
}

func owned(userID, projectID uuid.UUID, scope Scope) bool {
	return userID == scope.UserID && projectID == scope.ProjectID
}

func (m *MemoryStore) GetProjectByUser(ctx context.Context, userID uuid.UUID) (*models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var found *models.Project
	for _, p := range m.projects {
		if p.UserID != userID {
			continue
		}
		if found == nil || p.CreatedAt.Before(found.CreatedAt) {
			p := p
			found = &p
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (m *MemoryStore) CreateProject(ctx context.Context, p models.Project) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = m.stamp(time.Time{})
	p.UpdatedAt = p.CreatedAt
	m.projects[p.ID] = p
	return &p, nil
}

func (m *MemoryStore) ListTestimonials(ctx context.Context, scope Scope, f TestimonialFilter) ([]models.Testimonial, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Testimonial{}
	for _, t := range m.testimonials {
		if !owned(t.UserID, t.ProjectID, scope) {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.FormID != nil && (t.FormID == nil || *t.FormID != *f.FormID) {
			continue
		}
		if f.Tag != "" && !hasTag(t.Data, f.Tag) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// hasTag matches the stored tags array exactly, as the jsonb containment
// filter in SupabaseStore does.
func hasTag(data json.RawMessage, tag string) bool {
	var d struct {
		Tags []string `json:"tags"`
	}
	if json.Unmarshal(data, &d) != nil {
		return false
	}
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (m *MemoryStore) GetTestimonial(ctx context.Context, scope Scope, id uuid.UUID) (*models.Testimonial, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.testimonials[id]
	if !ok || !owned(t.UserID, t.ProjectID, scope) {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (m *MemoryStore) GetTestimonialsByIDs(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) ([]models.Testimonial, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Testimonial{}
	seen := map[uuid.UUID]bool{}
	for _, id := range ids {
		t, ok := m.testimonials[id]
		if !ok || t.ProjectID != projectID || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, t)
	}
	return out, nil
}

func (m *MemoryStore) CreateTestimonial(ctx context.Context, t models.Testimonial) (*models.Testimonial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = m.stamp(m.latest())
	t.UpdatedAt = t.CreatedAt
	t.Data = append(json.RawMessage(nil), t.Data...)
	m.testimonials[t.ID] = t
	return &t, nil
}

func (m *MemoryStore) UpdateTestimonial(ctx context.Context, scope Scope, id uuid.UUID, u TestimonialUpdate) (*models.Testimonial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.testimonials[id]
	if !ok || !owned(t.UserID, t.ProjectID, scope) {
		return nil, ErrNotFound
	}
	if u.Data != nil {
		t.Data = append(json.RawMessage(nil), u.Data...)
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	t.UpdatedAt = m.stamp(t.UpdatedAt)
	m.testimonials[id] = t
	return &t, nil
}

// MergeTestimonialData applies patch to a testimonial's data without an
// ownership check. The processor uses it after a job finishes.
func (m *MemoryStore) MergeTestimonialData(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.testimonials[id]
	if !ok {
		return ErrNotFound
	}
	data, err := models.MergeData(t.Data, patch)
	if err != nil {
		return err
	}
	t.Data = data
	t.UpdatedAt = m.stamp(t.UpdatedAt)
	m.testimonials[id] = t
	return nil
}

func (m *MemoryStore) DeleteTestimonial(ctx context.Context, scope Scope, id uuid.UUID) (*models.Testimonial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.testimonials[id]
	if !ok || !owned(t.UserID, t.ProjectID, scope) {
		return nil, ErrNotFound
	}
	delete(m.testimonials, id)
	return &t, nil
}

func (m *MemoryStore) ListForms(ctx context.Context, scope Scope) ([]models.Form, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Form{}
	for _, f := range m.forms {
		if owned(f.UserID, f.ProjectID, scope) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryStore) GetForm(ctx context.Context, scope Scope, id uuid.UUID) (*models.Form, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.forms[id]
	if !ok || !owned(f.UserID, f.ProjectID, scope) {
		return nil, ErrNotFound
	}
	return &f, nil
}

func (m *MemoryStore) GetPublicForm(ctx context.Context, id uuid.UUID) (*models.Form, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.forms[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &f, nil
}

func (m *MemoryStore) CreateForm(ctx context.Context, f models.Form) (*models.Form, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	var last time.Time
	for _, existing := range m.forms {
		if existing.CreatedAt.After(last) {
			last = existing.CreatedAt
		}
	}
	f.CreatedAt = m.stamp(last)
	f.UpdatedAt = f.CreatedAt
	m.forms[f.ID] = f
	return &f, nil
}

func (m *MemoryStore) UpdateForm(ctx context.Context, scope Scope, id uuid.UUID, u FormUpdate) (*models.Form, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.forms[id]
	if !ok || !owned(f.UserID, f.ProjectID, scope) {
		return nil, ErrNotFound
	}
	if u.Name != nil {
		f.Name = *u.Name
	}
	if u.Config != nil {
		f.Config = *u.Config
	}
	f.UpdatedAt = m.stamp(f.UpdatedAt)
	m.forms[id] = f
	return &f, nil
}

func (m *MemoryStore) DeleteForm(ctx context.Context, scope Scope, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.forms[id]
	if !ok || !owned(f.UserID, f.ProjectID, scope) {
		return ErrNotFound
	}
	delete(m.forms, id)
	return nil
}

func (m *MemoryStore) ListShowcases(ctx context.Context, kind models.ShowcaseKind, scope Scope) ([]models.Showcase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Showcase{}
	for _, s := range m.showcases[kind] {
		if owned(s.UserID, s.ProjectID, scope) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryStore) GetShowcase(ctx context.Context, kind models.ShowcaseKind, scope Scope, id uuid.UUID) (*models.Showcase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.showcases[kind][id]
	if !ok || !owned(s.UserID, s.ProjectID, scope) {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *MemoryStore) GetPublishedShowcase(ctx context.Context, kind models.ShowcaseKind, id uuid.UUID) (*models.Showcase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.showcases[kind][id]
	if !ok || !s.Published {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *MemoryStore) CreateShowcase(ctx context.Context, kind models.ShowcaseKind, s models.Showcase) (*models.Showcase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.showcases[kind]
	if !ok {
		return nil, ErrNotFound
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	var last time.Time
	for _, existing := range set {
		if existing.CreatedAt.After(last) {
			last = existing.CreatedAt
		}
	}
	s.TestimonialIDs = append([]uuid.UUID{}, s.TestimonialIDs...)
	s.CreatedAt = m.stamp(last)
	s.UpdatedAt = s.CreatedAt
	set[s.ID] = s
	return &s, nil
}

func (m *MemoryStore) UpdateShowcase(ctx context.Context, kind models.ShowcaseKind, scope Scope, id uuid.UUID, u ShowcaseUpdate) (*models.Showcase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.showcases[kind][id]
	if !ok || !owned(s.UserID, s.ProjectID, scope) {
		return nil, ErrNotFound
	}
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.Config != nil {
		s.Config = *u.Config
	}
	if u.TestimonialIDs != nil {
		s.TestimonialIDs = append([]uuid.UUID{}, (*u.TestimonialIDs)...)
	}
	if u.Published != nil {
		s.Published = *u.Published
	}
	s.UpdatedAt = m.stamp(s.UpdatedAt)
	m.showcases[kind][id] = s
	return &s, nil
}

func (m *MemoryStore) DeleteShowcase(ctx context.Context, kind models.ShowcaseKind, scope Scope, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.showcases[kind][id]
	if !ok || !owned(s.UserID, s.ProjectID, scope) {
		return ErrNotFound
	}
	delete(m.showcases[kind], id)
	return nil
}

func (m *MemoryStore) CreateJob(ctx context.Context, j models.ProcessingJob) (*models.ProcessingJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Status == "" {
		j.Status = models.JobStatusPending
	}
	j.CreatedAt = m.stamp(time.Time{})
	j.UpdatedAt = j.CreatedAt
	m.jobs = append(m.jobs, j)
	return &j, nil
}

// Jobs returns a copy of the queued processing jobs.
func (m *MemoryStore) Jobs() []models.ProcessingJob {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.ProcessingJob(nil), m.jobs...)
}
