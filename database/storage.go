package database

import (
	"context"

	"github.com/rpupo63/portfolio-cms-backend/models"
)

// ProjectStore manages projects.
//
// Get methods return nil, nil when nothing matches. Update and Delete on an
// unknown id fail with errs.ErrNotFound. A duplicate slug fails with
// errs.ErrUniqueConstraintViolation.
type ProjectStore interface {
	ListProjects(ctx context.Context, q models.ProjectQuery) (models.ProjectPage, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	GetProjectBySlug(ctx context.Context, slug string) (*models.Project, error)
	CreateProject(ctx context.Context, in models.ProjectInput) (*models.Project, error)
	UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// BlogStore manages blog posts, with the same contract as ProjectStore.
type BlogStore interface {
	ListBlogs(ctx context.Context, q models.BlogQuery) (models.BlogPage, error)
	GetBlog(ctx context.Context, id string) (*models.Blog, error)
	GetBlogBySlug(ctx context.Context, slug string) (*models.Blog, error)
	CreateBlog(ctx context.Context, in models.BlogInput) (*models.Blog, error)
	UpdateBlog(ctx context.Context, id string, patch models.BlogPatch) (*models.Blog, error)
	DeleteBlog(ctx context.Context, id string) error
}

// UserStore manages operator accounts. Users are never updated or deleted.
type UserStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, in models.UserInput) (*models.User, error)
}

// Storage is the content store. MemoryStorage and Database implement it.
type Storage interface {
	ProjectStore
	BlogStore
	UserStore
	DashboardStats(ctx context.Context) (models.DashboardStats, error)
}

var (
	_ Storage = (*MemoryStorage)(nil)
	_ Storage = Database{}
)
