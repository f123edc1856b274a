package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/errs"
	"github.com/rpupo63/portfolio-cms-backend/models"
)

// MemoryStorage keeps content in process memory. Contents are lost on restart.
type MemoryStorage struct {
	mu       sync.RWMutex
	projects []models.Project
	blogs    []models.Blog
	users    []models.User
	now      func() time.Time
}

type MemoryOption func(*MemoryStorage)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryStorage) { m.now = now }
}

// WithFixtures seeds the store with the sample projects and blog posts.
func WithFixtures() MemoryOption {
	return func(m *MemoryStorage) {
		m.projects = FixtureProjects()
		m.blogs = FixtureBlogs()
	}
}

func NewMemoryStorage(opts ...MemoryOption) *MemoryStorage {
	m := &MemoryStorage{now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// nextTimestamp returns the current time, pushed past prev when the clock has
// not moved, so updated_at always increases.
func (m *MemoryStorage) nextTimestamp(prev time.Time) time.Time {
	now := m.now().UTC().Truncate(time.Microsecond)
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	return now
}

func (m *MemoryStorage) ListProjects(_ context.Context, q models.ProjectQuery) (models.ProjectPage, error) {
	q = q.Normalize()

	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]models.Project, 0, len(m.projects))
	for _, p := range m.projects {
		if q.Matches(p) {
			matched = append(matched, p)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	page := paginate(matched, q.Offset, q.Limit)
	items := make([]models.Project, len(page))
	for i, p := range page {
		items[i] = p.Clone()
	}
	return models.ProjectPage{Items: items, Total: int64(len(matched))}, nil
}

func (m *MemoryStorage) GetProject(_ context.Context, id string) (*models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.projectIndex(func(p models.Project) bool { return p.ID == id }); i >= 0 {
		p := m.projects[i].Clone()
		return &p, nil
	}
	return nil, nil
}

func (m *MemoryStorage) GetProjectBySlug(_ context.Context, slug string) (*models.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.projectIndex(func(p models.Project) bool { return p.Slug == slug }); i >= 0 {
		p := m.projects[i].Clone()
		return &p, nil
	}
	return nil, nil
}

func (m *MemoryStorage) CreateProject(_ context.Context, in models.ProjectInput) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := in.NewProject(uuid.NewString(), m.nextTimestamp(time.Time{}))
	if m.projectIndex(func(o models.Project) bool { return o.Slug == p.Slug }) >= 0 {
		return nil, errs.NewUniqueConstraintViolationError("create", "project", "slug", nil)
	}
	m.projects = append(m.projects, p.Clone())
	return &p, nil
}

func (m *MemoryStorage) UpdateProject(_ context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.projectIndex(func(p models.Project) bool { return p.ID == id })
	if i < 0 {
		return nil, errs.NewNotFound("project")
	}
	updated := m.projects[i].Clone()
	patch.Apply(&updated)
	if m.projectIndex(func(o models.Project) bool { return o.ID != id && o.Slug == updated.Slug }) >= 0 {
		return nil, errs.NewUniqueConstraintViolationError("update", "project", "slug", nil)
	}
	updated.UpdatedAt = m.nextTimestamp(m.projects[i].UpdatedAt)
	m.projects[i] = updated.Clone()
	return &updated, nil
}

func (m *MemoryStorage) DeleteProject(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.projectIndex(func(p models.Project) bool { return p.ID == id })
	if i < 0 {
		return errs.NewNotFound("project")
	}
	m.projects = append(m.projects[:i], m.projects[i+1:]...)
	return nil
}

func (m *MemoryStorage) ListBlogs(_ context.Context, q models.BlogQuery) (models.BlogPage, error) {
	q = q.Normalize()

	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]models.Blog, 0, len(m.blogs))
	for _, b := range m.blogs {
		if q.Matches(b) {
			matched = append(matched, b)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	page := paginate(matched, q.Offset, q.Limit)
	items := make([]models.Blog, len(page))
	for i, b := range page {
		items[i] = b.Clone()
	}
	return models.BlogPage{Items: items, Total: int64(len(matched))}, nil
}

func (m *MemoryStorage) GetBlog(_ context.Context, id string) (*models.Blog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.blogIndex(func(b models.Blog) bool { return b.ID == id }); i >= 0 {
		b := m.blogs[i].Clone()
		return &b, nil
	}
	return nil, nil
}

func (m *MemoryStorage) GetBlogBySlug(_ context.Context, slug string) (*models.Blog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.blogIndex(func(b models.Blog) bool { return b.Slug == slug }); i >= 0 {
		b := m.blogs[i].Clone()
		return &b, nil
	}
	return nil, nil
}

func (m *MemoryStorage) CreateBlog(_ context.Context, in models.BlogInput) (*models.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := in.NewBlog(uuid.NewString(), m.nextTimestamp(time.Time{}))
	if m.blogIndex(func(o models.Blog) bool { return o.Slug == b.Slug }) >= 0 {
		return nil, errs.NewUniqueConstraintViolationError("create", "blog", "slug", nil)
	}
	m.blogs = append(m.blogs, b.Clone())
	return &b, nil
}

func (m *MemoryStorage) UpdateBlog(_ context.Context, id string, patch models.BlogPatch) (*models.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.blogIndex(func(b models.Blog) bool { return b.ID == id })
	if i < 0 {
		return nil, errs.NewNotFound("blog")
	}
	updated := m.blogs[i].Clone()
	patch.Apply(&updated)
	if m.blogIndex(func(o models.Blog) bool { return o.ID != id && o.Slug == updated.Slug }) >= 0 {
		return nil, errs.NewUniqueConstraintViolationError("update", "blog", "slug", nil)
	}
	updated.UpdatedAt = m.nextTimestamp(m.blogs[i].UpdatedAt)
	m.blogs[i] = updated.Clone()
	return &updated, nil
}

func (m *MemoryStorage) DeleteBlog(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.blogIndex(func(b models.Blog) bool { return b.ID == id })
	if i < 0 {
		return errs.NewNotFound("blog")
	}
	m.blogs = append(m.blogs[:i], m.blogs[i+1:]...)
	return nil
}

func (m *MemoryStorage) GetUser(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *MemoryStorage) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *MemoryStorage) CreateUser(_ context.Context, in models.UserInput) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == in.Username {
			return nil, errs.NewUniqueConstraintViolationError("create", "user", "username", nil)
		}
	}
	u := in.NewUser(uuid.NewString())
	m.users = append(m.users, u)
	return &u, nil
}

func (m *MemoryStorage) DashboardStats(_ context.Context) (models.DashboardStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := models.DashboardStats{
		TotalProjects:  int64(len(m.projects)),
		PublishedBlogs: int64(len(m.blogs)),
	}
	for _, p := range m.projects {
		if p.Featured {
			stats.FeaturedContent++
		}
	}
	for _, b := range m.blogs {
		if b.Featured {
			stats.FeaturedContent++
		}
	}
	return stats, nil
}

func (m *MemoryStorage) projectIndex(match func(models.Project) bool) int {
	for i, p := range m.projects {
		if match(p) {
			return i
		}
	}
	return -1
}

func (m *MemoryStorage) blogIndex(match func(models.Blog) bool) int {
	for i, b := range m.blogs {
		if match(b) {
			return i
		}
	}
	return -1
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := len(items)
	if limit < end-offset {
		end = offset + limit
	}
	return items[offset:end]
}
