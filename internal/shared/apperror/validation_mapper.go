package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var fieldCaser = cases.Title(language.English)

// formatFieldName turns a json tag into a label: worker_id -> Worker Id.
func formatFieldName(s string) string {
	return fieldCaser.String(strings.ReplaceAll(s, "_", " "))
}

// MapValidationError reports the first failing field of a binding error.
// Range tags carry their bound so a month of 13 reads "Month must be at
// most 12".
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return New(CodeInvalidInput, "Invalid input", http.StatusBadRequest)
	}

	e := errs[0]
	// Field() already yields the json name, see Init.
	field := formatFieldName(e.Field())

	switch e.Tag() {
	case "required":
		return RequiredField(field)
	case "gte", "min":
		return fieldRule(field, "must be at least "+e.Param())
	case "lte", "max":
		return fieldRule(field, "must be at most "+e.Param())
	case "gt":
		return fieldRule(field, "must be greater than "+e.Param())
	case "uuid", "uuid4":
		return fieldRule(field, "must be a valid UUID")
	case "oneof":
		return fieldRule(field, "must be one of: "+strings.ReplaceAll(e.Param(), " ", ", "))
	default:
		return InvalidField(field)
	}
}

func fieldRule(field, rule string) *AppError {
	return New(CodeInvalidInput, field+" "+rule, http.StatusBadRequest)
}
