package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// ProjectInput is the body of a project create request.
type ProjectInput struct {
	Title        string          `json:"title" validate:"notblank"`
	Slug         string          `json:"slug,omitempty"`
	Description  string          `json:"description" validate:"notblank"`
	Category     string          `json:"category"`
	Featured     bool            `json:"featured"`
	Technologies []string        `json:"technologies,omitempty"`
	CustomURL    *string         `json:"custom_url,omitempty" validate:"omitempty,weburl"`
	Image        *string         `json:"image,omitempty"`
	Screenshots  []string        `json:"screenshots,omitempty"`
	VideoPath    *string         `json:"video_path,omitempty"`
	Content      *ProjectContent `json:"content,omitempty"`
}

// NewProject fills in the slug, defaults and timestamps of a new project.
func (in ProjectInput) NewProject(id string, now time.Time) Project {
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = Slugify(in.Title)
	}
	content := DefaultProjectContent(in.Title, in.Description)
	if in.Content != nil {
		content = *in.Content
	}
	return Project{
		ID:           id,
		Title:        in.Title,
		Slug:         slug,
		Description:  in.Description,
		Image:        nonEmpty(in.Image),
		Category:     in.Category,
		Featured:     in.Featured,
		Technologies: datatypes.JSONSlice[string](orEmpty(in.Technologies)),
		CustomURL:    nonEmpty(in.CustomURL),
		Screenshots:  datatypes.JSONSlice[string](orEmpty(in.Screenshots)),
		VideoPath:    nonEmpty(in.VideoPath),
		Content:      datatypes.NewJSONType(content),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Input converts a stored project back into a create request, keeping its slug.
func (p Project) Input() ProjectInput {
	content := p.Content.Data()
	return ProjectInput{
		Title:        p.Title,
		Slug:         p.Slug,
		Description:  p.Description,
		Category:     p.Category,
		Featured:     p.Featured,
		Technologies: append([]string{}, p.Technologies...),
		CustomURL:    cloneString(p.CustomURL),
		Image:        cloneString(p.Image),
		Screenshots:  append([]string{}, p.Screenshots...),
		VideoPath:    cloneString(p.VideoPath),
		Content:      &content,
	}
}

// ProjectPatch is the body of a project update. Only fields present in the
// request are applied.
type ProjectPatch struct {
	Title        Optional[string]         `json:"title"`
	Slug         Optional[string]         `json:"slug"`
	Description  Optional[string]         `json:"description"`
	Image        Optional[string]         `json:"image"`
	Category     Optional[string]         `json:"category"`
	Featured     Optional[bool]           `json:"featured"`
	Technologies Optional[[]string]       `json:"technologies"`
	CustomURL    Optional[string]         `json:"custom_url"`
	Screenshots  Optional[[]string]       `json:"screenshots"`
	VideoPath    Optional[string]         `json:"video_path"`
	Content      Optional[ProjectContent] `json:"content"`
}

// Apply merges the patch into p. It does not touch UpdatedAt.
func (pt ProjectPatch) Apply(p *Project) {
	if pt.Title.Present() {
		p.Title = pt.Title.Value
	}
	if pt.Slug.Present() {
		p.Slug = strings.TrimSpace(pt.Slug.Value)
	}
	if pt.Description.Present() {
		p.Description = pt.Description.Value
	}
	if pt.Image.Set {
		p.Image = nonEmpty(pt.Image.ptr())
	}
	if pt.Category.Present() {
		p.Category = pt.Category.Value
	}
	if pt.Featured.Present() {
		p.Featured = pt.Featured.Value
	}
	if pt.Technologies.Present() {
		p.Technologies = datatypes.JSONSlice[string](orEmpty(pt.Technologies.Value))
	}
	if pt.CustomURL.Set {
		p.CustomURL = nonEmpty(pt.CustomURL.ptr())
	}
	if pt.Screenshots.Present() {
		p.Screenshots = datatypes.JSONSlice[string](orEmpty(pt.Screenshots.Value))
	}
	if pt.VideoPath.Set {
		p.VideoPath = nonEmpty(pt.VideoPath.ptr())
	}
	if pt.Content.Present() {
		p.Content = datatypes.NewJSONType(pt.Content.Value)
	}
}

// Columns returns the column assignments for the fields present in the patch.
func (pt ProjectPatch) Columns() map[string]any {
	var p Project
	pt.Apply(&p)

	cols := map[string]any{}
	set := func(present bool, column string, value any) {
		if present {
			cols[column] = value
		}
	}
	set(pt.Title.Present(), "title", p.Title)
	set(pt.Slug.Present(), "slug", p.Slug)
	set(pt.Description.Present(), "description", p.Description)
	set(pt.Image.Set, "image", p.Image)
	set(pt.Category.Present(), "category", p.Category)
	set(pt.Featured.Present(), "featured", p.Featured)
	set(pt.Technologies.Present(), "technologies", p.Technologies)
	set(pt.CustomURL.Set, "custom_url", p.CustomURL)
	set(pt.Screenshots.Present(), "screenshots", p.Screenshots)
	set(pt.VideoPath.Set, "video_path", p.VideoPath)
	set(pt.Content.Present(), "content", p.Content)
	return cols
}

// BlogInput is the body of a blog create request.
type BlogInput struct {
	Title            string       `json:"title" validate:"notblank"`
	Slug             string       `json:"slug,omitempty"`
	Thumbnail        *string      `json:"thumbnail,omitempty"`
	ShortDescription string       `json:"short_description" validate:"notblank"`
	Author           string       `json:"author" validate:"notblank"`
	PublishedDate    string       `json:"published_date" validate:"notblank,isodate"`
	HeroSection      *HeroSection `json:"hero_section,omitempty"`
	Sections         []Section    `json:"sections,omitempty" validate:"dive"`
	Featured         bool         `json:"featured"`
	Published        *bool        `json:"published,omitempty"`
}

// NewBlog fills in the slug, defaults and timestamps of a new blog.
func (in BlogInput) NewBlog(id string, now time.Time) Blog {
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = Slugify(in.Title)
	}
	hero := DefaultHeroSection(in.Title)
	if in.HeroSection != nil {
		hero = *in.HeroSection
	}
	published := true
	if in.Published != nil {
		published = *in.Published
	}
	return Blog{
		ID:               id,
		Title:            in.Title,
		Slug:             slug,
		Thumbnail:        nonEmpty(in.Thumbnail),
		ShortDescription: in.ShortDescription,
		Author:           in.Author,
		PublishedDate:    in.PublishedDate,
		HeroSection:      datatypes.NewJSONType(hero),
		Sections:         datatypes.JSONSlice[Section](orEmpty(in.Sections)),
		Featured:         in.Featured,
		Published:        published,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (b Blog) Input() BlogInput {
	hero := b.HeroSection.Data()
	published := b.Published
	return BlogInput{
		Title:            b.Title,
		Slug:             b.Slug,
		Thumbnail:        cloneString(b.Thumbnail),
		ShortDescription: b.ShortDescription,
		Author:           b.Author,
		PublishedDate:    b.PublishedDate,
		HeroSection:      &hero,
		Sections:         append([]Section{}, b.Sections...),
		Featured:         b.Featured,
		Published:        &published,
	}
}

// BlogPatch is the body of a blog update.
type BlogPatch struct {
	Title            Optional[string]      `json:"title"`
	Slug             Optional[string]      `json:"slug"`
	Thumbnail        Optional[string]      `json:"thumbnail"`
	ShortDescription Optional[string]      `json:"short_description"`
	Author           Optional[string]      `json:"author"`
	PublishedDate    Optional[string]      `json:"published_date"`
	HeroSection      Optional[HeroSection] `json:"hero_section"`
	Sections         Optional[[]Section]   `json:"sections"`
	Featured         Optional[bool]        `json:"featured"`
	Published        Optional[bool]        `json:"published"`
}

func (pt BlogPatch) Apply(b *Blog) {
	if pt.Title.Present() {
		b.Title = pt.Title.Value
	}
	if pt.Slug.Present() {
		b.Slug = strings.TrimSpace(pt.Slug.Value)
	}
	if pt.Thumbnail.Set {
		b.Thumbnail = nonEmpty(pt.Thumbnail.ptr())
	}
	if pt.ShortDescription.Present() {
		b.ShortDescription = pt.ShortDescription.Value
	}
	if pt.Author.Present() {
		b.Author = pt.Author.Value
	}
	if pt.PublishedDate.Present() {
		b.PublishedDate = pt.PublishedDate.Value
	}
	if pt.HeroSection.Present() {
		b.HeroSection = datatypes.NewJSONType(pt.HeroSection.Value)
	}
	if pt.Sections.Present() {
		b.Sections = datatypes.JSONSlice[Section](orEmpty(pt.Sections.Value))
	}
	if pt.Featured.Present() {
		b.Featured = pt.Featured.Value
	}
	if pt.Published.Present() {
		b.Published = pt.Published.Value
	}
}

func (pt BlogPatch) Columns() map[string]any {
	var b Blog
	pt.Apply(&b)

	cols := map[string]any{}
	set := func(present bool, column string, value any) {
		if present {
			cols[column] = value
		}
	}
	set(pt.Title.Present(), "title", b.Title)
	set(pt.Slug.Present(), "slug", b.Slug)
	set(pt.Thumbnail.Set, "thumbnail", b.Thumbnail)
	set(pt.ShortDescription.Present(), "short_description", b.ShortDescription)
	set(pt.Author.Present(), "author", b.Author)
	set(pt.PublishedDate.Present(), "published_date", b.PublishedDate)
	set(pt.HeroSection.Present(), "hero_section", b.HeroSection)
	set(pt.Sections.Present(), "sections", b.Sections)
	set(pt.Featured.Present(), "featured", b.Featured)
	set(pt.Published.Present(), "published", b.Published)
	return cols
}

// nonEmpty treats a blank optional URL the same as an absent one.
func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}
