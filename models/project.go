package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Project represents a portfolio project and its landing-page content.
type Project struct {
	ID           string                             `json:"id" db:"id" gorm:"column:id;type:varchar;primaryKey;not null"`
	Title        string                             `json:"title" db:"title" gorm:"column:title;type:text;not null"`
	Slug         string                             `json:"slug" db:"slug" gorm:"column:slug;type:text;not null;uniqueIndex"`
	Description  string                             `json:"description" db:"description" gorm:"column:description;type:text;not null"`
	Image        *string                            `json:"image" db:"image" gorm:"column:image;type:text"`
	Category     string                             `json:"category" db:"category" gorm:"column:category;type:text;not null"`
	Featured     bool                               `json:"featured" db:"featured" gorm:"column:featured;not null"`
	Technologies datatypes.JSONSlice[string]        `json:"technologies" db:"technologies" gorm:"column:technologies"`
	CustomURL    *string                            `json:"custom_url" db:"custom_url" gorm:"column:custom_url;type:text"`
	Screenshots  datatypes.JSONSlice[string]        `json:"screenshots" db:"screenshots" gorm:"column:screenshots"`
	VideoPath    *string                            `json:"video_path" db:"video_path" gorm:"column:video_path;type:text"`
	Content      datatypes.JSONType[ProjectContent] `json:"content" db:"content" gorm:"column:content"`
	CreatedAt    time.Time                          `json:"created_at" db:"created_at" gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt    time.Time                          `json:"updated_at" db:"updated_at" gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

func (Project) TableName() string {
	return "projects"
}

// Hero is the banner shown at the top of a project page.
type Hero struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
}

// InfoCard is one entry of the performance metrics or overview grids.
type InfoCard struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ProjectContent is the nested document stored in projects.content.
// Keys the admin panel does not model yet are kept in Extra and written back
// unchanged.
type ProjectContent struct {
	Hero               Hero           `json:"hero"`
	Video              string         `json:"video,omitempty"`
	Features           []string       `json:"features"`
	Architecture       map[string]any `json:"architecture"`
	PerformanceMetrics []InfoCard     `json:"performance_metrics,omitempty"`
	ProjectOverview    []InfoCard     `json:"project_overview,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var projectContentKeys = map[string]struct{}{
	"hero":                {},
	"video":               {},
	"features":            {},
	"architecture":        {},
	"performance_metrics": {},
	"project_overview":    {},
}

// DefaultProjectContent is synthesized when a project is created without content.
func DefaultProjectContent(title, description string) ProjectContent {
	return ProjectContent{
		Hero:         Hero{Title: title, Subtitle: "", Description: description},
		Features:     []string{},
		Architecture: map[string]any{},
	}
}

type projectContentAlias ProjectContent

func (c ProjectContent) MarshalJSON() ([]byte, error) {
	a := projectContentAlias(c)
	if a.Features == nil {
		a.Features = []string{}
	}
	if a.Architecture == nil {
		a.Architecture = map[string]any{}
	}
	known, err := json.Marshal(a)
	if err != nil || len(c.Extra) == 0 {
		return known, err
	}

	merged := make(map[string]json.RawMessage, len(c.Extra)+len(projectContentKeys))
	for k, v := range c.Extra {
		merged[k] = v
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

func (c *ProjectContent) UnmarshalJSON(b []byte) error {
	var a projectContentAlias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	for k, v := range fields {
		if _, ok := projectContentKeys[k]; ok {
			continue
		}
		if a.Extra == nil {
			a.Extra = make(map[string]json.RawMessage)
		}
		a.Extra[k] = v
	}
	*c = ProjectContent(a)
	return nil
}

// Clone returns a deep copy so stored projects never share slices or maps
// with callers.
func (p Project) Clone() Project {
	out := p
	out.Image = cloneString(p.Image)
	out.CustomURL = cloneString(p.CustomURL)
	out.VideoPath = cloneString(p.VideoPath)
	out.Technologies = append(datatypes.JSONSlice[string]{}, p.Technologies...)
	out.Screenshots = append(datatypes.JSONSlice[string]{}, p.Screenshots...)
	out.Content = datatypes.NewJSONType(cloneJSON(p.Content.Data()))
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// cloneJSON deep-copies a JSON-shaped value by round-tripping it.
func cloneJSON[T any](v T) T {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}
