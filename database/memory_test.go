package database

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage_Contract(t *testing.T) {
	runStorageContract(t, func(t *testing.T, clock func() time.Time) Storage {
		return NewMemoryStorage(WithClock(clock))
	})
}

func TestMemoryStorage_Fixtures(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage(WithFixtures())

	projects, err := s.ListProjects(ctx, models.ProjectQuery{})
	require.NoError(t, err)
	require.EqualValues(t, 3, projects.Total)
	assert.Equal(t, "AI Chat Dashboard", projects.Items[0].Title, "newest first")
	assert.Equal(t, "E-commerce Platform", projects.Items[2].Title)

	webApps, err := s.ListProjects(ctx, models.ProjectQuery{Category: "Web App"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, webApps.Total)

	blogs, err := s.ListBlogs(ctx, models.BlogQuery{Status: models.BlogStatusFeatured})
	require.NoError(t, err)
	assert.EqualValues(t, 2, blogs.Total)

	hooks, err := s.GetBlogBySlug(ctx, "getting-started-react-hooks")
	require.NoError(t, err)
	require.NotNil(t, hooks)
	require.Len(t, hooks.Sections, 3)
	assert.True(t, hooks.Sections[1].IsFreeform())
	assert.Equal(t, models.SectionType("code"), hooks.Sections[1].Type)

	stats, err := s.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DashboardStats{TotalProjects: 3, PublishedBlogs: 3, FeaturedContent: 4}, stats)

	again := NewMemoryStorage(WithFixtures())
	p, err := again.GetProjectBySlug(ctx, "ecommerce-platform")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, projects.Items[2].ID, p.ID, "fixture ids are stable")
}

func TestMemoryStorage_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()
	p, err := s.CreateProject(ctx, models.ProjectInput{Title: "Copy", Description: "d", Technologies: []string{"Go"}})
	require.NoError(t, err)

	p.Technologies[0] = "mutated"
	p.Title = "mutated"

	got, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Copy", got.Title)
	assert.Equal(t, "Go", got.Technologies[0])
}

func TestMemoryStorage_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := s.CreateProject(ctx, models.ProjectInput{Title: fmt.Sprintf("Concurrent %d", i), Description: "d"})
			if !assert.NoError(t, err) {
				return
			}
			_, err = s.UpdateProject(ctx, p.ID, models.ProjectPatch{Featured: models.Some(true)})
			assert.NoError(t, err)
			_, err = s.ListProjects(ctx, models.ProjectQuery{Search: "concurrent"})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	stats, err := s.DashboardStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 50, stats.TotalProjects)
	assert.EqualValues(t, 50, stats.FeaturedContent)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{1, 2}, paginate(items, 0, 2))
	assert.Equal(t, []int{5}, paginate(items, 4, 2))
	assert.Empty(t, paginate(items, 5, 2))
	assert.Empty(t, paginate(items, 9, 2))
	assert.Equal(t, []int{2, 3, 4, 5}, paginate(items, 1, math.MaxInt))
}
