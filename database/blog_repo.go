package database

import (
	"context"
	"errors"

	"github.com/rpupo63/portfolio-cms-backend/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlogRepo struct {
	db *gorm.DB
}

func NewBlogRepo(db *gorm.DB) *BlogRepo {
	return &BlogRepo{db}
}

func blogFilters(q models.BlogQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.Search != "" {
			pattern := likePattern(q.Search)
			db = db.Where("(title ILIKE ? OR short_description ILIKE ?)", pattern, pattern)
		}
		switch q.Status {
		case models.BlogStatusFeatured:
			db = db.Where("featured = ?", true)
		case models.BlogStatusPublished:
			db = db.Where("published = ?", true)
		case models.BlogStatusDraft:
			db = db.Where("published = ?", false)
		}
		return db
	}
}

func (r *BlogRepo) FindPage(ctx context.Context, q models.BlogQuery) (models.BlogPage, error) {
	q = q.Normalize()
	page := models.BlogPage{Items: []models.Blog{}}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.WithContext(gctx).Model(&models.Blog{}).
			Scopes(blogFilters(q)).
			Count(&page.Total).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).
			Scopes(blogFilters(q)).
			Order("created_at DESC").
			Limit(q.Limit).
			Offset(q.Offset).
			Find(&page.Items).Error
	})
	if err := g.Wait(); err != nil {
		return models.BlogPage{}, err
	}
	return page, nil
}

func (r *BlogRepo) FindOne(ctx context.Context, column, value string) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).First(&blog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *BlogRepo) Add(ctx context.Context, blog *models.Blog) error {
	return r.db.WithContext(ctx).Create(blog).Error
}

func (r *BlogRepo) Update(ctx context.Context, id string, columns map[string]any) (*models.Blog, error) {
	var blog models.Blog
	res := r.db.WithContext(ctx).
		Model(&blog).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(columns)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &blog, nil
}

func (r *BlogRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Blog{})
	return res.RowsAffected > 0, res.Error
}

func (r *BlogRepo) Count(ctx context.Context, featuredOnly bool) (int64, error) {
	var n int64
	db := r.db.WithContext(ctx).Model(&models.Blog{})
	if featuredOnly {
		db = db.Where("featured = ?", true)
	}
	if err := db.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
