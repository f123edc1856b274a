package models

import (
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const publishedDateLayout = "2006-01-02"

var validate = newValidator()

// newValidator reports field errors under their JSON names and adds the
// content rules the built-in tags do not cover.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"notblank": validators.NotBlank,
		"weburl":   isWebURL,
		"isodate":  isISODate,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return v
}

// isWebURL accepts a blank value or an absolute http(s) URL.
func isWebURL(fl validator.FieldLevel) bool {
	raw := strings.TrimSpace(fl.Field().String())
	if raw == "" {
		return true
	}
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// isISODate accepts a calendar date or a full RFC 3339 timestamp.
func isISODate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if _, err := time.Parse(publishedDateLayout, value); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, value)
	return err == nil
}
