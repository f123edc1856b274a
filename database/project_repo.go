package database

import (
	"context"
	"errors"

	"github.com/rpupo63/portfolio-cms-backend/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// projectFilters applies the search and category predicates of q.
func projectFilters(q models.ProjectQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.Search != "" {
			pattern := likePattern(q.Search)
			db = db.Where("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
		}
		if q.Category != "" {
			db = db.Where("category = ?", q.Category)
		}
		return db
	}
}

// FindPage returns one page of projects, newest first, and the filtered total.
func (r *ProjectRepo) FindPage(ctx context.Context, q models.ProjectQuery) (models.ProjectPage, error) {
	q = q.Normalize()
	page := models.ProjectPage{Items: []models.Project{}}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.WithContext(gctx).Model(&models.Project{}).
			Scopes(projectFilters(q)).
			Count(&page.Total).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).
			Scopes(projectFilters(q)).
			Order("created_at DESC").
			Limit(q.Limit).
			Offset(q.Offset).
			Find(&page.Items).Error
	})
	if err := g.Wait(); err != nil {
		return models.ProjectPage{}, err
	}
	return page, nil
}

// FindOne returns the first project matching the condition, or nil.
func (r *ProjectRepo) FindOne(ctx context.Context, column, value string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Update applies the column assignments to the project with the given id and
// returns the stored row. It returns nil when no row has that id.
func (r *ProjectRepo) Update(ctx context.Context, id string, columns map[string]any) (*models.Project, error) {
	var project models.Project
	res := r.db.WithContext(ctx).
		Model(&project).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(columns)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &project, nil
}

// Delete removes a project by id and reports whether a row was removed.
func (r *ProjectRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Project{})
	return res.RowsAffected > 0, res.Error
}

// Count returns the number of projects, optionally only featured ones.
func (r *ProjectRepo) Count(ctx context.Context, featuredOnly bool) (int64, error) {
	var n int64
	db := r.db.WithContext(ctx).Model(&models.Project{})
	if featuredOnly {
		db = db.Where("featured = ?", true)
	}
	if err := db.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
