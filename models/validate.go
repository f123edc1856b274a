package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rpupo63/portfolio-cms-backend/errs"
)

func (in ProjectInput) Validate() error {
	var v errs.Validation
	checkStruct(&v, in)
	if in.Slug != "" {
		checkSlug(&v, "slug", in.Slug)
	} else if strings.TrimSpace(in.Title) != "" && Slugify(in.Title) == "" {
		v.Add("slug", "slug cannot be derived from the title, provide one")
	}
	return v.Err()
}

func (pt ProjectPatch) Validate() error {
	var v errs.Validation
	requiredText(&v, "title", pt.Title)
	requiredText(&v, "description", pt.Description)
	if pt.Slug.Set {
		if pt.Slug.Null {
			v.Add("slug", "slug cannot be null")
		} else {
			checkSlug(&v, "slug", pt.Slug.Value)
		}
	}
	notNull(&v, "category", pt.Category.Set, pt.Category.Null)
	notNull(&v, "featured", pt.Featured.Set, pt.Featured.Null)
	notNull(&v, "technologies", pt.Technologies.Set, pt.Technologies.Null)
	notNull(&v, "screenshots", pt.Screenshots.Set, pt.Screenshots.Null)
	notNull(&v, "content", pt.Content.Set, pt.Content.Null)
	if pt.CustomURL.Present() {
		checkVar(&v, "custom_url", pt.CustomURL.Value, "weburl")
	}
	return v.Err()
}

func (in BlogInput) Validate() error {
	var v errs.Validation
	checkStruct(&v, in)
	if in.Slug != "" {
		checkSlug(&v, "slug", in.Slug)
	} else if strings.TrimSpace(in.Title) != "" && Slugify(in.Title) == "" {
		v.Add("slug", "slug cannot be derived from the title, provide one")
	}
	return v.Err()
}

func (pt BlogPatch) Validate() error {
	var v errs.Validation
	requiredText(&v, "title", pt.Title)
	requiredText(&v, "author", pt.Author)
	requiredText(&v, "short_description", pt.ShortDescription)
	requiredText(&v, "published_date", pt.PublishedDate)
	if pt.PublishedDate.Present() && strings.TrimSpace(pt.PublishedDate.Value) != "" {
		checkVar(&v, "published_date", pt.PublishedDate.Value, "isodate")
	}
	if pt.Slug.Set {
		if pt.Slug.Null {
			v.Add("slug", "slug cannot be null")
		} else {
			checkSlug(&v, "slug", pt.Slug.Value)
		}
	}
	notNull(&v, "hero_section", pt.HeroSection.Set, pt.HeroSection.Null)
	notNull(&v, "sections", pt.Sections.Set, pt.Sections.Null)
	notNull(&v, "featured", pt.Featured.Set, pt.Featured.Null)
	notNull(&v, "published", pt.Published.Set, pt.Published.Null)
	if pt.Sections.Present() {
		for i, section := range pt.Sections.Value {
			checkVar(&v, fmt.Sprintf("sections[%d].type", i), string(section.Type), "notblank")
		}
	}
	return v.Err()
}

func (in UserInput) Validate() error {
	var v errs.Validation
	checkStruct(&v, in)
	return v.Err()
}

// requiredText rejects a required text field that is present but blank or null.
func requiredText(v *errs.Validation, path string, o Optional[string]) {
	if !o.Set {
		return
	}
	if o.Null || strings.TrimSpace(o.Value) == "" {
		v.Add(path, "%s cannot be empty", path)
	}
}

func notNull(v *errs.Validation, path string, set, null bool) {
	if set && null {
		v.Add(path, "%s cannot be null", path)
	}
}

func checkSlug(v *errs.Validation, path, slug string) {
	if strings.TrimSpace(slug) == "" {
		v.Add(path, "%s cannot be empty", path)
	}
}

// checkStruct runs the validate tags of s and records one issue per failed
// field, keyed by its JSON path.
func checkStruct(v *errs.Validation, s any) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(validate.Struct(s), &fieldErrs) {
		return
	}
	for _, fe := range fieldErrs {
		path := fe.Namespace()
		if _, rest, ok := strings.Cut(path, "."); ok {
			path = rest
		}
		addFieldIssue(v, path, fe.Tag())
	}
}

func checkVar(v *errs.Validation, path string, value any, tag string) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(validate.Var(value, tag), &fieldErrs) {
		return
	}
	for _, fe := range fieldErrs {
		addFieldIssue(v, path, fe.Tag())
	}
}

func addFieldIssue(v *errs.Validation, path, tag string) {
	switch tag {
	case "notblank":
		v.Add(path, "%s is required", path)
	case "weburl":
		v.Add(path, "%s must be an absolute http(s) URL", path)
	case "isodate":
		v.Add(path, "%s must be an ISO date (YYYY-MM-DD)", path)
	default:
		v.Add(path, "%s is invalid", path)
	}
}
