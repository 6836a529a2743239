package validators

import (
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
)

const (
	// TagReportDate accepts report dates in the YYYY.MM.DD form used by report file names.
	TagReportDate = "reportdate"
	// TagGlob accepts well-formed doublestar glob patterns.
	TagGlob = "glob"

	ReportDateLayout = "2006.01.02"
)

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

// New creates a new validator instance with the project's custom tags registered.
func New() *Validate {
	v := validator.New()
	_ = v.RegisterValidation(TagReportDate, func(fl validator.FieldLevel) bool {
		_, err := time.Parse(ReportDateLayout, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation(TagGlob, func(fl validator.FieldLevel) bool {
		return doublestar.ValidatePattern(fl.Field().String())
	})
	return v
}
