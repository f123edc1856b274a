package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-cms-backend/models"
)

// SeedReport counts what SeedContent did.
type SeedReport struct {
	ProjectsCreated int
	ProjectsSkipped int
	BlogsCreated    int
	BlogsSkipped    int
}

// SeedContent copies the given projects and blogs into the store through the
// client. Items whose slug already exists are skipped, so seeding twice is safe.
func SeedContent(ctx context.Context, client *ContentClient, projects []models.Project, blogs []models.Blog) (SeedReport, error) {
	var report SeedReport

	for _, p := range projects {
		existing, err := client.projects.store.GetProjectBySlug(ctx, p.Slug)
		if err != nil {
			return report, fmt.Errorf("looking up project %q: %w", p.Slug, err)
		}
		if existing != nil {
			report.ProjectsSkipped++
			continue
		}
		if _, err := client.Projects().Create(ctx, p.Input()); err != nil {
			return report, fmt.Errorf("seeding project %q: %w", p.Slug, err)
		}
		report.ProjectsCreated++
	}

	for _, b := range blogs {
		existing, err := client.blogs.store.GetBlogBySlug(ctx, b.Slug)
		if err != nil {
			return report, fmt.Errorf("looking up blog %q: %w", b.Slug, err)
		}
		if existing != nil {
			report.BlogsSkipped++
			continue
		}
		if _, err := client.Blogs().Create(ctx, b.Input()); err != nil {
			return report, fmt.Errorf("seeding blog %q: %w", b.Slug, err)
		}
		report.BlogsCreated++
	}

	log.Info().
		Int("projectsCreated", report.ProjectsCreated).
		Int("projectsSkipped", report.ProjectsSkipped).
		Int("blogsCreated", report.BlogsCreated).
		Int("blogsSkipped", report.BlogsSkipped).
		Msg("Seeded content")
	return report, nil
}
