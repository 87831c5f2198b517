package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxTitleLen bounds post titles.
const maxTitleLen = 200

//nolint:gochecknoglobals // validator caches struct metadata; one instance per process.
var validate = newValidator()

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// NewPost is the payload for creating a post.
type NewPost struct {
	UserID ID     `json:"userId" validate:"required"`
	Title  string `json:"title"  validate:"required,max=200"`
	Body   string `json:"body"   validate:"required"`
}

// Normalize trims surrounding whitespace from every field.
func (p NewPost) Normalize() NewPost {
	return NewPost{
		UserID: ID(strings.TrimSpace(string(p.UserID))),
		Title:  strings.TrimSpace(p.Title),
		Body:   strings.TrimSpace(p.Body),
	}
}

// Validate checks that every field is present and the title fits.
// Field failures are returned as *PostError, which matches ErrInvalidPost.
func (p NewPost) Validate() error {
	err := validate.Struct(p.Normalize())
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidPost, err)
	}

	fe := fieldErrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return &PostError{Field: field, Problem: "is required"}
	case "max":
		return &PostError{Field: field, Problem: fmt.Sprintf("must be at most %d characters", maxTitleLen)}
	default:
		return &PostError{Field: field, Problem: fmt.Sprintf("failed %q", fe.Tag())}
	}
}
