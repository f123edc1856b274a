package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rpupo63/portfolio-cms-backend/errs"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Database is the Postgres-backed content store.
type Database struct {
	projectRepo *ProjectRepo
	blogRepo    *BlogRepo
	userRepo    *UserRepo
	now         func() time.Time
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo: NewProjectRepo(db),
		blogRepo:    NewBlogRepo(db),
		userRepo:    NewUserRepo(db),
		now:         time.Now,
	}
}

func (d Database) timestamp() time.Time {
	return d.now().UTC().Truncate(time.Microsecond)
}

// bumpUpdatedAt never lets updated_at go backwards or stand still, even when
// two updates land within the clock's resolution.
func bumpUpdatedAt(now time.Time) any {
	return gorm.Expr("GREATEST(?, updated_at + interval '1 microsecond')", now)
}

func (d Database) ListProjects(ctx context.Context, q models.ProjectQuery) (models.ProjectPage, error) {
	page, err := d.projectRepo.FindPage(ctx, q)
	if err != nil {
		return models.ProjectPage{}, errs.NewStoreError("fetch", "projects", err)
	}
	return page, nil
}

func (d Database) GetProject(ctx context.Context, id string) (*models.Project, error) {
	p, err := d.projectRepo.FindOne(ctx, "id", id)
	if err != nil {
		return nil, errs.NewStoreError("fetch", "project", err)
	}
	return p, nil
}

func (d Database) GetProjectBySlug(ctx context.Context, slug string) (*models.Project, error) {
	p, err := d.projectRepo.FindOne(ctx, "slug", slug)
	if err != nil {
		return nil, errs.NewStoreError("fetch", "project", err)
	}
	return p, nil
}

func (d Database) CreateProject(ctx context.Context, in models.ProjectInput) (*models.Project, error) {
	p := in.NewProject(uuid.NewString(), d.timestamp())
	if err := d.projectRepo.Add(ctx, &p); err != nil {
		return nil, wrapWriteError("create", "project", "slug", err)
	}
	return &p, nil
}

func (d Database) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	cols := patch.Columns()
	cols["updated_at"] = bumpUpdatedAt(d.timestamp())

	p, err := d.projectRepo.Update(ctx, id, cols)
	if err != nil {
		return nil, wrapWriteError("update", "project", "slug", err)
	}
	if p == nil {
		return nil, errs.NewNotFound("project")
	}
	return p, nil
}

func (d Database) DeleteProject(ctx context.Context, id string) error {
	deleted, err := d.projectRepo.Delete(ctx, id)
	if err != nil {
		return errs.NewStoreError("delete", "project", err)
	}
	if !deleted {
		return errs.NewNotFound("project")
	}
	return nil
}

func (d Database) ListBlogs(ctx context.Context, q models.BlogQuery) (models.BlogPage, error) {
	page, err := d.blogRepo.FindPage(ctx, q)
	if err != nil {
		return models.BlogPage{}, errs.NewStoreError("fetch", "blogs", err)
	}
	return page, nil
}

func (d Database) GetBlog(ctx context.Context, id string) (*models.Blog, error) {
	b, err := d.blogRepo.FindOne(ctx, "id", id)
	if err != nil {
		return nil, errs.NewStoreError("fetch", "blog", err)
	}
	return b, nil
}

func (d Database) GetBlogBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	b, err := d.blogRepo.FindOne(ctx, "slug", slug)
	if err != nil {
		return nil, errs.NewStoreError("fetch", "blog", err)
	}
	return b, nil
}

func (d Database) CreateBlog(ctx context.Context, in models.BlogInput) (*models.Blog, error) {
	b := in.NewBlog(uuid.NewString(), d.timestamp())
	if err := d.blogRepo.Add(ctx, &b); err != nil {
		return nil, wrapWriteError("create", "blog", "slug", err)
	}
	return &b, nil
}

func (d Database) UpdateBlog(ctx context.Context, id string, patch models.BlogPatch) (*models.Blog, error) {
	cols := patch.Columns()
	cols["updated_at"] = bumpUpdatedAt(d.timestamp())

	b, err := d.blogRepo.Update(ctx, id, cols)
	if err != nil {
		return nil, wrapWriteError("update", "blog", "slug", err)
	}
	if b == nil {
		return nil, errs.NewNotFound("blog")
	}
	return b, nil
}

func (d Database) DeleteBlog(ctx context.Context, id string) error {
	deleted, err := d.blogRepo.Delete(ctx, id)
	if err != nil {
		return errs.NewStoreError("delete", "blog", err)
	}
	if !deleted {
		return errs.NewNotFound("blog")
	}
	return nil
}

func (d Database) GetUser(ctx context.Context, id string) (*models.User, error) {
	u, err := d.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewStoreError("fetch", "user", err)
	}
	return u, nil
}

func (d Database) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := d.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, errs.NewStoreError("fetch", "user", err)
	}
	return u, nil
}

func (d Database) CreateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	u := in.NewUser(uuid.NewString())
	if err := d.userRepo.Add(ctx, &u); err != nil {
		return nil, wrapWriteError("create", "user", "username", err)
	}
	return &u, nil
}

// DashboardStats runs the four counts concurrently.
func (d Database) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	var (
		stats                           models.DashboardStats
		featuredProjects, featuredBlogs int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalProjects, err = d.projectRepo.Count(gctx, false)
		return err
	})
	g.Go(func() (err error) {
		stats.PublishedBlogs, err = d.blogRepo.Count(gctx, false)
		return err
	})
	g.Go(func() (err error) {
		featuredProjects, err = d.projectRepo.Count(gctx, true)
		return err
	})
	g.Go(func() (err error) {
		featuredBlogs, err = d.blogRepo.Count(gctx, true)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, errs.NewStoreError("fetch", "dashboard stats", err)
	}
	stats.FeaturedContent = featuredProjects + featuredBlogs
	return stats, nil
}

// wrapWriteError maps a failed insert or update onto the store's error
// taxonomy: unique violations name the field, everything else is generic.
func wrapWriteError(operation, entity, field string, err error) error {
	if isUniqueViolation(err) {
		return errs.NewUniqueConstraintViolationError(operation, entity, field, err)
	}
	return errs.NewStoreError(operation, entity, err)
}

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return strings.Contains(err.Error(), "duplicate key")
}

// likePattern escapes LIKE wildcards in s and wraps it for a substring match.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
