package database

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-cms-backend/errs"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock returns a clock that advances by one second on every call.
func stepClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(time.Second)
		return t
	}
}

// frozenClock always returns the same instant.
func frozenClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// storeFactory returns an empty store whose timestamps come from clock.
type storeFactory func(t *testing.T, clock func() time.Time) Storage

func projectInput(title string, featured bool) models.ProjectInput {
	return models.ProjectInput{Title: title, Description: title + " description", Category: "Web App", Featured: featured}
}

func blogInput(title string, featured bool) models.BlogInput {
	return models.BlogInput{Title: title, Author: "Jane", ShortDescription: title + " summary", PublishedDate: "2024-01-10", Featured: featured}
}

func runStorageContract(t *testing.T, newStore storeFactory) {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("pagination is a contiguous newest-first slice", func(t *testing.T) {
		s := newStore(t, stepClock(start))
		for i := 0; i < 7; i++ {
			_, err := s.CreateProject(ctx, projectInput(fmt.Sprintf("Project %d", i), false))
			require.NoError(t, err)
		}

		all, err := s.ListProjects(ctx, models.ProjectQuery{Limit: 100})
		require.NoError(t, err)
		require.Len(t, all.Items, 7)
		assert.EqualValues(t, 7, all.Total)
		for i := 1; i < len(all.Items); i++ {
			assert.True(t, all.Items[i-1].CreatedAt.After(all.Items[i].CreatedAt))
		}
		assert.Equal(t, "Project 6", all.Items[0].Title)

		for _, tc := range []struct{ limit, offset int }{{3, 0}, {3, 3}, {3, 6}, {2, 5}, {10, 0}, {3, 7}, {3, 20}} {
			page, err := s.ListProjects(ctx, models.ProjectQuery{Limit: tc.limit, Offset: tc.offset})
			require.NoError(t, err)
			assert.LessOrEqual(t, len(page.Items), tc.limit)
			assert.EqualValues(t, 7, page.Total, "total ignores pagination")

			end := tc.offset + tc.limit
			if end > 7 {
				end = 7
			}
			var want []string
			for i := tc.offset; i < end; i++ {
				want = append(want, all.Items[i].ID)
			}
			var got []string
			for _, p := range page.Items {
				got = append(got, p.ID)
			}
			assert.Equal(t, want, got, "limit=%d offset=%d", tc.limit, tc.offset)
		}
	})

	t.Run("search and category filter before counting", func(t *testing.T) {
		s := newStore(t, stepClock(start))
		_, err := s.CreateProject(ctx, models.ProjectInput{Title: "React Store", Description: "shop", Category: "Web App"})
		require.NoError(t, err)
		_, err = s.CreateProject(ctx, models.ProjectInput{Title: "Banking", Description: "built with REACT native", Category: "Mobile App"})
		require.NoError(t, err)
		_, err = s.CreateProject(ctx, models.ProjectInput{Title: "CLI", Description: "100% Go", Category: "Tool"})
		require.NoError(t, err)

		page, err := s.ListProjects(ctx, models.ProjectQuery{Search: "react", Limit: 1})
		require.NoError(t, err)
		assert.EqualValues(t, 2, page.Total)
		assert.Len(t, page.Items, 1)

		page, err = s.ListProjects(ctx, models.ProjectQuery{Search: "react", Category: "Mobile App"})
		require.NoError(t, err)
		require.EqualValues(t, 1, page.Total)
		assert.Equal(t, "Banking", page.Items[0].Title)

		page, err = s.ListProjects(ctx, models.ProjectQuery{Search: "0%"})
		require.NoError(t, err)
		require.EqualValues(t, 1, page.Total, "percent is matched literally")
		assert.Equal(t, "CLI", page.Items[0].Title)

		page, err = s.ListProjects(ctx, models.ProjectQuery{Search: "_"})
		require.NoError(t, err)
		assert.EqualValues(t, 0, page.Total, "underscore is matched literally")
	})

	t.Run("blog status filters", func(t *testing.T) {
		s := newStore(t, stepClock(start))
		draft := false
		_, err := s.CreateBlog(ctx, blogInput("Featured post", true))
		require.NoError(t, err)
		_, err = s.CreateBlog(ctx, blogInput("Plain post", false))
		require.NoError(t, err)
		in := blogInput("Draft post", false)
		in.Published = &draft
		_, err = s.CreateBlog(ctx, in)
		require.NoError(t, err)

		count := func(status models.BlogStatus) int64 {
			page, err := s.ListBlogs(ctx, models.BlogQuery{Status: status})
			require.NoError(t, err)
			return page.Total
		}
		assert.EqualValues(t, 3, count(models.BlogStatusAny))
		assert.EqualValues(t, 1, count(models.BlogStatusFeatured))
		assert.EqualValues(t, 2, count(models.BlogStatusPublished))
		assert.EqualValues(t, 1, count(models.BlogStatusDraft))
		assert.EqualValues(t, 3, count("archived"))

		page, err := s.ListBlogs(ctx, models.BlogQuery{Search: "PLAIN POST SUMMARY"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, page.Total)
	})

	t.Run("create derives slug and defaults", func(t *testing.T) {
		s := newStore(t, stepClock(start))
		p, err := s.CreateProject(ctx, models.ProjectInput{Title: "AI Chat Dashboard!", Description: "chat"})
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, "ai-chat-dashboard", p.Slug)
		assert.Equal(t, "AI Chat Dashboard!", p.Content.Data().Hero.Title)
		assert.NotNil(t, p.Technologies)

		got, err := s.GetProject(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "ai-chat-dashboard", got.Slug)
		assert.Equal(t, "chat", got.Content.Data().Hero.Description)

		b, err := s.CreateBlog(ctx, blogInput("Hello, World", false))
		require.NoError(t, err)
		assert.Equal(t, "hello-world", b.Slug)
		assert.True(t, b.Published)
		assert.Equal(t, models.DefaultHeroGradient, b.HeroSection.Data().Gradient)

		bySlug, err := s.GetBlogBySlug(ctx, "hello-world")
		require.NoError(t, err)
		require.NotNil(t, bySlug)
		assert.Equal(t, b.ID, bySlug.ID)
	})

	t.Run("sections keep their order and freeform documents", func(t *testing.T) {
		s := newStore(t, stepClock(start))
		freeform, err := models.NewFreeformSection([]byte(`{"type":"text","content":"raw","layout":{"cols":2}}`))
		require.NoError(t, err)
		in := blogInput("Sections", false)
		in.Sections = []models.Section{
			{Type: models.SectionConclusion, Title: "End", Content: "bye"},
			freeform,
			{Type: models.SectionIntro, Title: "Start", Features: []models.FeatureCard{{Title: "f"}}},
		}
		b, err := s.CreateBlog(ctx, in)
		require.NoError(t, err)

		got, err := s.GetBlog(ctx, b.ID)
		require.NoError(t, err)
		require.Len(t, got.Sections, 3)
		assert.Equal(t, models.SectionConclusion, got.Sections[0].Type)
		assert.True(t, got.Sections[1].IsFreeform())
		assert.JSONEq(t, `{"type":"text","content":"raw","layout":{"cols":2}}`, string(got.Sections[1].Freeform))
		assert.Equal(t, models.SectionIntro, got.Sections[2].Type)
	})

	t.Run("absent records are nil without error", func(t *testing.T) {
		s := newStore(t, stepClock(start))
		p, err := s.GetProject(ctx, "missing")
		assert.NoError(t, err)
		assert.Nil(t, p)
		b, err := s.GetBlogBySlug(ctx, "missing")
		assert.NoError(t, err)
		assert.Nil(t, b)
		u, err := s.GetUserByUsername(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("duplicate slug is a unique violation", func(t *testing.T) {
		s := newStore(t, stepClock(start))
		_, err := s.CreateProject(ctx, projectInput("Same Title", false))
		require.NoError(t, err)
		_, err = s.CreateProject(ctx, projectInput("Same Title", false))
		require.Error(t, err)
		assert.True(t, errs.IsUniqueConstraintViolationError(err))

		other, err := s.CreateProject(ctx, projectInput("Other", false))
		require.NoError(t, err)
		_, err = s.UpdateProject(ctx, other.ID, models.ProjectPatch{Slug: models.Some("same-title")})
		assert.True(t, errs.IsUniqueConstraintViolationError(err))

		_, err = s.CreateUser(ctx, models.UserInput{Username: "admin", Password: "x"})
		require.NoError(t, err)
		_, err = s.CreateUser(ctx, models.UserInput{Username: "admin", Password: "y"})
		assert.True(t, errs.IsUniqueConstraintViolationError(err))
	})

	t.Run("update merges present fields and bumps updated_at", func(t *testing.T) {
		s := newStore(t, frozenClock(start))
		img := "https://cdn.example.com/a.png"
		in := projectInput("Original", true)
		in.Image = &img
		in.Technologies = []string{"Go"}
		p, err := s.CreateProject(ctx, in)
		require.NoError(t, err)

		prev := p.UpdatedAt
		for i := 0; i < 3; i++ {
			updated, err := s.UpdateProject(ctx, p.ID, models.ProjectPatch{Title: models.Some(fmt.Sprintf("Renamed %d", i))})
			require.NoError(t, err)
			assert.True(t, updated.UpdatedAt.After(prev), "updated_at strictly increases even when the clock stands still")
			prev = updated.UpdatedAt
		}

		got, err := s.GetProject(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed 2", got.Title)
		assert.Equal(t, p.Slug, got.Slug)
		assert.Equal(t, p.Description, got.Description)
		assert.True(t, got.Featured)
		require.NotNil(t, got.Image)
		assert.Equal(t, img, *got.Image)
		assert.Equal(t, []string{"Go"}, []string(got.Technologies))
		assert.True(t, got.CreatedAt.Equal(p.CreatedAt))

		b, err := s.CreateBlog(ctx, blogInput("Post", true))
		require.NoError(t, err)
		updatedBlog, err := s.UpdateBlog(ctx, b.ID, models.BlogPatch{Published: models.Some(false)})
		require.NoError(t, err)
		assert.False(t, updatedBlog.Published)
		assert.True(t, updatedBlog.Featured)
		assert.Equal(t, "Post", updatedBlog.Title)
		assert.True(t, updatedBlog.UpdatedAt.After(b.UpdatedAt))
	})

	t.Run("update and delete on unknown id are not found", func(t *testing.T) {
		s := newStore(t, stepClock(start))
		_, err := s.UpdateProject(ctx, "missing", models.ProjectPatch{Title: models.Some("x")})
		assert.True(t, errs.IsNotFound(err))
		_, err = s.UpdateBlog(ctx, "missing", models.BlogPatch{Title: models.Some("x")})
		assert.True(t, errs.IsNotFound(err))
		assert.True(t, errs.IsNotFound(s.DeleteProject(ctx, "missing")))
		assert.True(t, errs.IsNotFound(s.DeleteBlog(ctx, "missing")))
	})

	t.Run("delete removes the record", func(t *testing.T) {
		s := newStore(t, stepClock(start))
		p, err := s.CreateProject(ctx, projectInput("Doomed", false))
		require.NoError(t, err)
		require.NoError(t, s.DeleteProject(ctx, p.ID))

		got, err := s.GetProject(ctx, p.ID)
		assert.NoError(t, err)
		assert.Nil(t, got)
		assert.True(t, errs.IsNotFound(s.DeleteProject(ctx, p.ID)))
	})

	t.Run("dashboard stats", func(t *testing.T) {
		s := newStore(t, stepClock(start))
		for i, featured := range []bool{true, true, false} {
			_, err := s.CreateProject(ctx, projectInput(fmt.Sprintf("P%d", i), featured))
			require.NoError(t, err)
		}
		draft := false
		b1 := blogInput("B1", true)
		b2 := blogInput("B2", false)
		b2.Published = &draft
		for _, in := range []models.BlogInput{b1, b2} {
			_, err := s.CreateBlog(ctx, in)
			require.NoError(t, err)
		}

		stats, err := s.DashboardStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.DashboardStats{TotalProjects: 3, PublishedBlogs: 2, FeaturedContent: 3}, stats)
	})
}
