package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-cms-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"AI Chat Dashboard!", "ai-chat-dashboard"},
		{"E-commerce Platform", "e-commerce-platform"},
		{"  Building   Scalable APIs with Node.js ", "building-scalable-apis-with-nodejs"},
		{"Already-a-slug", "already-a-slug"},
		{"Café & Co", "caf-co"},
		{"!!!", ""},
		{"Hello !", "hello"},
		{" Go  Tips ", "go-tips"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestProjectContent_PreservesUnknownKeys(t *testing.T) {
	raw := `{
		"hero": {"title": "T", "subtitle": "S", "description": "D"},
		"features": ["a"],
		"architecture": {"frontend": "React"},
		"performance_metrics": [{"icon": "zap", "title": "Fast", "description": "p99 40ms"}],
		"gallery_layout": {"columns": 3}
	}`

	var c ProjectContent
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	assert.Equal(t, "T", c.Hero.Title)
	assert.Equal(t, []string{"a"}, c.Features)
	require.Len(t, c.PerformanceMetrics, 1)
	assert.Equal(t, "Fast", c.PerformanceMetrics[0].Title)
	require.Contains(t, c.Extra, "gallery_layout")

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestProjectContent_MarshalsEmptyCollections(t *testing.T) {
	out, err := json.Marshal(ProjectContent{Hero: Hero{Title: "x"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"hero":{"title":"x","subtitle":"","description":""},"features":[],"architecture":{}}`, string(out))
}

func TestSection_TypedRoundTrip(t *testing.T) {
	raw := `[
		{"type":"intro","title":"Why","subtitle":"","features":[{"title":"Speed","icon":"zap","description":"fast","gradient":"from-blue"}]},
		{"type":"comparison","title":"Compare","subtitle":"","table":{"headers":["Feature","A","B"],"rows":[["x","1","2"]]}},
		{"type":"code_examples","title":"Code","subtitle":"","examples":[{"title":"hello","language":"go","code":"fmt.Println()"}]},
		{"type":"conclusion","title":"End","subtitle":"","content":"bye"}
	]`

	var sections []Section
	require.NoError(t, json.Unmarshal([]byte(raw), &sections))
	require.Len(t, sections, 4)

	assert.Equal(t, SectionIntro, sections[0].Type)
	assert.False(t, sections[0].IsFreeform())
	require.Len(t, sections[0].Features, 1)
	assert.Equal(t, "from-blue", sections[0].Features[0].Gradient)

	require.NotNil(t, sections[1].Table)
	assert.Equal(t, [][]string{{"x", "1", "2"}}, sections[1].Table.Rows)

	assert.Equal(t, "go", sections[2].Examples[0].Language)
	assert.Equal(t, "bye", sections[3].Content)

	out, err := json.Marshal(sections)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestSection_Freeform(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown type", `{"type":"text","content":"hello"}`},
		{"known type with extra keys", `{"type":"intro","title":"x","features":[],"layout":"grid"}`},
		{"known type with wrong shape", `{"type":"comparison","table":"not a table"}`},
		{"unknown type with object title", `{"type":"custom_callout","title":{"text":"Hi"}}`},
		{"known type with numeric title", `{"type":"intro","title":42,"features":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Section
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &s))
			assert.True(t, s.IsFreeform())
			assert.NotEmpty(t, s.Type)

			out, err := json.Marshal(s)
			require.NoError(t, err)
			assert.JSONEq(t, tt.raw, string(out))
		})
	}
}

func TestSection_RejectsNonObject(t *testing.T) {
	var s Section
	assert.Error(t, json.Unmarshal([]byte(`"intro"`), &s))
}

func TestProjectInput_NewProject_Defaults(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	blank := ""
	p := ProjectInput{Title: "AI Chat Dashboard!", Description: "chat", CustomURL: &blank}.NewProject("id-1", now)

	assert.Equal(t, "ai-chat-dashboard", p.Slug)
	assert.Nil(t, p.CustomURL)
	assert.NotNil(t, p.Technologies)
	assert.Empty(t, p.Technologies)
	assert.NotNil(t, p.Screenshots)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)

	content := p.Content.Data()
	assert.Equal(t, Hero{Title: "AI Chat Dashboard!", Subtitle: "", Description: "chat"}, content.Hero)
	assert.NotNil(t, content.Features)
	assert.NotNil(t, content.Architecture)
}

func TestBlogInput_NewBlog_Defaults(t *testing.T) {
	now := time.Now()
	b := BlogInput{Title: "Hello World", Author: "a", ShortDescription: "s", PublishedDate: "2024-01-10"}.NewBlog("id-1", now)

	assert.Equal(t, "hello-world", b.Slug)
	assert.True(t, b.Published)
	assert.Equal(t, DefaultHeroSection("Hello World"), b.HeroSection.Data())
	assert.NotNil(t, b.Sections)

	draft := false
	b = BlogInput{Title: "Draft", Slug: "custom", Published: &draft}.NewBlog("id-2", now)
	assert.Equal(t, "custom", b.Slug)
	assert.False(t, b.Published)
}

func TestProjectPatch_ApplyAndColumns(t *testing.T) {
	var patch ProjectPatch
	require.NoError(t, json.Unmarshal([]byte(`{"title":"New","featured":false,"image":null}`), &patch))

	img := "https://cdn.example.com/a.png"
	p := Project{Title: "Old", Description: "keep", Featured: true, Image: &img}
	patch.Apply(&p)

	assert.Equal(t, "New", p.Title)
	assert.Equal(t, "keep", p.Description)
	assert.False(t, p.Featured)
	assert.Nil(t, p.Image)

	cols := patch.Columns()
	assert.Len(t, cols, 3)
	assert.Equal(t, "New", cols["title"])
	assert.Equal(t, false, cols["featured"])
	assert.Nil(t, cols["image"])
	assert.NotContains(t, cols, "description")
}

func TestBlogPatch_Sections(t *testing.T) {
	var patch BlogPatch
	require.NoError(t, json.Unmarshal([]byte(`{"sections":[{"type":"conclusion","content":"done"},{"type":"text","content":"x"}]}`), &patch))
	require.True(t, patch.Sections.Present())

	var b Blog
	patch.Apply(&b)
	require.Len(t, b.Sections, 2)
	assert.Equal(t, SectionConclusion, b.Sections[0].Type)
	assert.True(t, b.Sections[1].IsFreeform())
	assert.Contains(t, patch.Columns(), "sections")
}

func issuePaths(t *testing.T, err error) []string {
	t.Helper()
	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	paths := make([]string, 0, len(apiErr.Issues))
	for _, i := range apiErr.Issues {
		paths = append(paths, i.Path)
	}
	return paths
}

func TestProjectInput_Validate(t *testing.T) {
	assert.NoError(t, ProjectInput{Title: "x", Description: "y"}.Validate())

	err := ProjectInput{Description: "y"}.Validate()
	assert.True(t, errs.IsValidationError(err))
	assert.Equal(t, []string{"title"}, issuePaths(t, err))

	bad := "ftp://example.com"
	err = ProjectInput{Title: "x", Description: "y", CustomURL: &bad}.Validate()
	assert.Equal(t, []string{"custom_url"}, issuePaths(t, err))

	relative := "/demo"
	err = ProjectInput{Title: "x", Description: "y", CustomURL: &relative}.Validate()
	assert.Equal(t, []string{"custom_url"}, issuePaths(t, err))

	err = ProjectInput{Title: "!!!", Description: "y"}.Validate()
	assert.Equal(t, []string{"slug"}, issuePaths(t, err))
}

func TestProjectPatch_Validate(t *testing.T) {
	var empty ProjectPatch
	assert.NoError(t, empty.Validate())

	var patch ProjectPatch
	require.NoError(t, json.Unmarshal([]byte(`{"title":"","description":null,"technologies":null,"image":null}`), &patch))
	assert.ElementsMatch(t, []string{"title", "description", "technologies"}, issuePaths(t, patch.Validate()))
}

func TestBlogInput_Validate(t *testing.T) {
	valid := BlogInput{Title: "t", Author: "a", ShortDescription: "s", PublishedDate: "2024-01-10"}
	assert.NoError(t, valid.Validate())

	rfc := valid
	rfc.PublishedDate = "2024-01-10T08:00:00Z"
	assert.NoError(t, rfc.Validate())

	err := BlogInput{Title: "t"}.Validate()
	assert.ElementsMatch(t, []string{"author", "short_description", "published_date"}, issuePaths(t, err))

	badDate := valid
	badDate.PublishedDate = "January 10"
	assert.Equal(t, []string{"published_date"}, issuePaths(t, badDate.Validate()))

	untyped := valid
	freeform, ferr := NewFreeformSection(json.RawMessage(`{"content":"no type"}`))
	require.NoError(t, ferr)
	untyped.Sections = []Section{freeform}
	assert.Equal(t, []string{"sections[0].type"}, issuePaths(t, untyped.Validate()))
}

func TestValidate_JSONPaths(t *testing.T) {
	err := ProjectInput{Title: "   ", Description: "\t"}.Validate()
	assert.Equal(t, []string{"title", "description"}, issuePaths(t, err))

	blank := " "
	assert.NoError(t, ProjectInput{Title: "x", Description: "y", CustomURL: &blank}.Validate())

	err = UserInput{Username: "admin"}.Validate()
	assert.Equal(t, []string{"password"}, issuePaths(t, err))

	var patch BlogPatch
	require.NoError(t, json.Unmarshal([]byte(`{"published_date":"10/01/2024","sections":[{"type":"conclusion","content":"x"},{"content":"untyped"}]}`), &patch))
	assert.ElementsMatch(t, []string{"published_date", "sections[1].type"}, issuePaths(t, patch.Validate()))

	var apiErr *errs.ApiErr
	require.ErrorAs(t, BlogInput{Title: "t", Author: "a", ShortDescription: "s", PublishedDate: "soon"}.Validate(), &apiErr)
	require.Len(t, apiErr.Issues, 1)
	assert.Equal(t, "published_date must be an ISO date (YYYY-MM-DD)", apiErr.Issues[0].Message)
}

func TestQueryNormalize(t *testing.T) {
	pq := ProjectQuery{Limit: 0, Offset: -4, Search: "  react "}.Normalize()
	assert.Equal(t, DefaultPageLimit, pq.Limit)
	assert.Equal(t, 0, pq.Offset)
	assert.Equal(t, "react", pq.Search)

	bq := BlogQuery{Limit: 5, Offset: 2, Status: "Bogus"}.Normalize()
	assert.Equal(t, 5, bq.Limit)
	assert.Equal(t, 2, bq.Offset)
	assert.Equal(t, BlogStatusAny, bq.Status)

	assert.Equal(t, BlogStatusDraft, ParseBlogStatus(" DRAFT "))
}

func TestBlogQuery_Matches(t *testing.T) {
	published := Blog{Title: "Go tips", ShortDescription: "Concurrency", Published: true, Featured: true}
	draft := Blog{Title: "Draft", ShortDescription: "wip", Published: false}

	assert.True(t, BlogQuery{Status: BlogStatusDraft}.Matches(draft))
	assert.False(t, BlogQuery{Status: BlogStatusDraft}.Matches(published))
	assert.True(t, BlogQuery{Status: BlogStatusFeatured}.Matches(published))
	assert.False(t, BlogQuery{Status: BlogStatusPublished}.Matches(draft))
	assert.True(t, BlogQuery{Search: "concurrency"}.Matches(published))
	assert.False(t, BlogQuery{Search: "rust"}.Matches(published))
}

func TestProjectClone_IsDeep(t *testing.T) {
	p := ProjectInput{Title: "x", Description: "y", Technologies: []string{"Go"}}.NewProject("1", time.Now())
	c := p.Clone()
	c.Technologies[0] = "Rust"
	content := c.Content.Data()
	content.Architecture["db"] = "pg"

	assert.Equal(t, "Go", p.Technologies[0])
	assert.Empty(t, p.Content.Data().Architecture)
}

func TestDiffColumns(t *testing.T) {
	unknown, missing := diffColumns([]string{"id", "title", "legacy"}, []string{"id", "title", "slug"})
	assert.Equal(t, []string{"legacy"}, unknown)
	assert.Equal(t, []string{"slug"}, missing)
}
