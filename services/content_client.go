package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/errs"
	"github.com/rpupo63/portfolio-cms-backend/models"
)

// DefaultBlogPageLimit is the blog page size the public site uses.
const DefaultBlogPageLimit = 9

// ContentClient gives the admin panel and tooling direct access to the content
// store, with the same rules the HTTP API applies, plus media uploads.
// Build one at startup and pass it where it is needed.
type ContentClient struct {
	uploader  FileUploader
	projects  *ProjectsClient
	blogs     *BlogsClient
	dashboard *DashboardClient
}

// NewContentClient wires the client to a store. uploader may be nil when
// object storage is not configured.
func NewContentClient(store database.Storage, uploader FileUploader) *ContentClient {
	return &ContentClient{
		uploader:  uploader,
		projects:  &ProjectsClient{store: store},
		blogs:     &BlogsClient{store: store},
		dashboard: &DashboardClient{store: store},
	}
}

func (c *ContentClient) Projects() *ProjectsClient {
	return c.projects
}

func (c *ContentClient) Blogs() *BlogsClient {
	return c.blogs
}

func (c *ContentClient) Dashboard() *DashboardClient {
	return c.dashboard
}

// UploadsEnabled reports whether object storage is configured.
func (c *ContentClient) UploadsEnabled() bool {
	return c.uploader != nil
}

// UploadFile stores f in bucket under key and returns its public URL. An
// empty key gets a unique one derived from the file name.
func (c *ContentClient) UploadFile(ctx context.Context, f File, bucket, key string) (string, error) {
	if c.uploader == nil {
		return "", errs.NewUploaderUnavailableError()
	}
	if strings.TrimSpace(key) == "" {
		key = ObjectKey("uploads", f.Name)
	}
	return c.uploader.Upload(ctx, f, bucket, key)
}

// UploadResult is the outcome of one file in UploadFiles.
type UploadResult struct {
	Name string
	URL  string
	Err  error
}

// UploadFiles uploads each file under prefix. A failed file is logged as a
// warning and reported in its result; the remaining files are still uploaded.
func (c *ContentClient) UploadFiles(ctx context.Context, files []File, bucket, prefix string) []UploadResult {
	results := make([]UploadResult, 0, len(files))
	for _, f := range files {
		url, err := c.UploadFile(ctx, f, bucket, ObjectKey(prefix, f.Name))
		if err != nil {
			log.Warn().Err(err).Str("file", f.Name).Str("bucket", bucket).Msg("Skipping asset that failed to upload")
		}
		results = append(results, UploadResult{Name: f.Name, URL: url, Err: err})
	}
	return results
}

// ProjectListOptions filter a project listing. Category "all" means any
// category unless ExactCategory is set.
type ProjectListOptions struct {
	Search        string
	Category      string
	ExactCategory bool
	Limit         int
	Offset        int
}

type ProjectsClient struct {
	store database.ProjectStore
}

func (c *ProjectsClient) GetAll(ctx context.Context, opts ProjectListOptions) (models.ProjectPage, error) {
	category := opts.Category
	if !opts.ExactCategory && strings.EqualFold(category, "all") {
		category = ""
	}
	return c.store.ListProjects(ctx, models.ProjectQuery{
		Limit:    opts.Limit,
		Offset:   opts.Offset,
		Search:   opts.Search,
		Category: category,
	})
}

// GetByID fails with errs.ErrNotFound when no project has the id.
func (c *ProjectsClient) GetByID(ctx context.Context, id string) (*models.Project, error) {
	p, err := c.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errs.NewNotFound("project")
	}
	return p, nil
}

func (c *ProjectsClient) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	p, err := c.store.GetProjectBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errs.NewNotFound("project")
	}
	return p, nil
}

// Create validates in and derives its slug before storing it.
func (c *ProjectsClient) Create(ctx context.Context, in models.ProjectInput) (*models.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Slug) == "" {
		in.Slug = models.Slugify(in.Title)
	}
	return c.store.CreateProject(ctx, in)
}

func (c *ProjectsClient) Update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return c.store.UpdateProject(ctx, id, patch)
}

func (c *ProjectsClient) Delete(ctx context.Context, id string) error {
	return c.store.DeleteProject(ctx, id)
}

// BlogListOptions filter a blog listing. Limit defaults to DefaultBlogPageLimit.
type BlogListOptions struct {
	Search string
	Status models.BlogStatus
	Limit  int
	Offset int
}

type BlogsClient struct {
	store database.BlogStore
}

func (c *BlogsClient) GetAll(ctx context.Context, opts BlogListOptions) (models.BlogPage, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultBlogPageLimit
	}
	return c.store.ListBlogs(ctx, models.BlogQuery{
		Limit:  limit,
		Offset: opts.Offset,
		Search: opts.Search,
		Status: opts.Status,
	})
}

func (c *BlogsClient) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	b, err := c.store.GetBlog(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, errs.NewNotFound("blog")
	}
	return b, nil
}

func (c *BlogsClient) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	b, err := c.store.GetBlogBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, errs.NewNotFound("blog")
	}
	return b, nil
}

func (c *BlogsClient) Create(ctx context.Context, in models.BlogInput) (*models.Blog, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Slug) == "" {
		in.Slug = models.Slugify(in.Title)
	}
	return c.store.CreateBlog(ctx, in)
}

func (c *BlogsClient) Update(ctx context.Context, id string, patch models.BlogPatch) (*models.Blog, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return c.store.UpdateBlog(ctx, id, patch)
}

func (c *BlogsClient) Delete(ctx context.Context, id string) error {
	return c.store.DeleteBlog(ctx, id)
}

type DashboardClient struct {
	store database.Storage
}

func (c *DashboardClient) GetStats(ctx context.Context) (models.DashboardStats, error) {
	return c.store.DashboardStats(ctx)
}
