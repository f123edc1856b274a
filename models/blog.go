package models

import (
	"time"

	"gorm.io/datatypes"
)

// Blog represents a blog post built from an ordered list of sections.
type Blog struct {
	ID               string                          `json:"id" db:"id" gorm:"column:id;type:varchar;primaryKey;not null"`
	Title            string                          `json:"title" db:"title" gorm:"column:title;type:text;not null"`
	Slug             string                          `json:"slug" db:"slug" gorm:"column:slug;type:text;not null;uniqueIndex"`
	Thumbnail        *string                         `json:"thumbnail" db:"thumbnail" gorm:"column:thumbnail;type:text"`
	ShortDescription string                          `json:"short_description" db:"short_description" gorm:"column:short_description;type:text;not null"`
	Author           string                          `json:"author" db:"author" gorm:"column:author;type:text;not null"`
	PublishedDate    string                          `json:"published_date" db:"published_date" gorm:"column:published_date;type:text;not null"`
	HeroSection      datatypes.JSONType[HeroSection] `json:"hero_section" db:"hero_section" gorm:"column:hero_section"`
	Sections         datatypes.JSONSlice[Section]    `json:"sections" db:"sections" gorm:"column:sections"`
	Featured         bool                            `json:"featured" db:"featured" gorm:"column:featured;not null"`
	Published        bool                            `json:"published" db:"published" gorm:"column:published;not null"`
	CreatedAt        time.Time                       `json:"created_at" db:"created_at" gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt        time.Time                       `json:"updated_at" db:"updated_at" gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

func (Blog) TableName() string {
	return "blogs"
}

type CTAButton struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

// HeroSection is the banner at the top of a blog post.
type HeroSection struct {
	Title      string      `json:"title"`
	Subtitle   string      `json:"subtitle"`
	Gradient   string      `json:"gradient"`
	Logo       string      `json:"logo,omitempty"`
	Image      string      `json:"image,omitempty"`
	Emoji      string      `json:"emoji,omitempty"`
	Tags       []string    `json:"tags,omitempty"`
	CTAButtons []CTAButton `json:"cta_buttons,omitempty"`
}

const DefaultHeroGradient = "gradient-blue"

// DefaultHeroSection is synthesized when a blog is created without one.
func DefaultHeroSection(title string) HeroSection {
	return HeroSection{Title: title, Subtitle: "", Gradient: DefaultHeroGradient}
}

func (b Blog) Clone() Blog {
	out := b
	out.Thumbnail = cloneString(b.Thumbnail)
	out.HeroSection = datatypes.NewJSONType(cloneJSON(b.HeroSection.Data()))
	out.Sections = cloneJSON(b.Sections)
	if out.Sections == nil {
		out.Sections = datatypes.JSONSlice[Section]{}
	}
	return out
}
