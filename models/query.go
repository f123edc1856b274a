package models

import "strings"

const DefaultPageLimit = 10

// ProjectQuery filters and paginates a project listing.
type ProjectQuery struct {
	Limit    int
	Offset   int
	Search   string
	Category string
}

// Normalize applies the default limit and clamps a negative offset.
func (q ProjectQuery) Normalize() ProjectQuery {
	q.Limit, q.Offset = normalizePage(q.Limit, q.Offset)
	q.Search = strings.TrimSpace(q.Search)
	return q
}

// Matches reports whether p passes the search and category filters.
func (q ProjectQuery) Matches(p Project) bool {
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	return q.Search == "" || containsFold(p.Title, q.Search) || containsFold(p.Description, q.Search)
}

// BlogStatus filters blogs by their flags.
type BlogStatus string

const (
	BlogStatusAny       BlogStatus = ""
	BlogStatusFeatured  BlogStatus = "featured"
	BlogStatusPublished BlogStatus = "published"
	BlogStatusDraft     BlogStatus = "draft"
)

// ParseBlogStatus maps a query parameter to a status. Unrecognized values
// mean no filter.
func ParseBlogStatus(s string) BlogStatus {
	switch st := BlogStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case BlogStatusFeatured, BlogStatusPublished, BlogStatusDraft:
		return st
	}
	return BlogStatusAny
}

type BlogQuery struct {
	Limit  int
	Offset int
	Search string
	Status BlogStatus
}

func (q BlogQuery) Normalize() BlogQuery {
	q.Limit, q.Offset = normalizePage(q.Limit, q.Offset)
	q.Search = strings.TrimSpace(q.Search)
	q.Status = ParseBlogStatus(string(q.Status))
	return q
}

func (q BlogQuery) Matches(b Blog) bool {
	switch q.Status {
	case BlogStatusFeatured:
		if !b.Featured {
			return false
		}
	case BlogStatusPublished:
		if !b.Published {
			return false
		}
	case BlogStatusDraft:
		if b.Published {
			return false
		}
	}
	return q.Search == "" || containsFold(b.Title, q.Search) || containsFold(b.ShortDescription, q.Search)
}

// Page is one page of a listing. Total counts every match, not just Items.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

type (
	ProjectPage = Page[Project]
	BlogPage    = Page[Blog]
)

// DashboardStats are the admin dashboard counters. PublishedBlogs counts every
// blog regardless of its published flag.
type DashboardStats struct {
	TotalProjects   int64 `json:"totalProjects"`
	PublishedBlogs  int64 `json:"publishedBlogs"`
	FeaturedContent int64 `json:"featuredContent"`
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
