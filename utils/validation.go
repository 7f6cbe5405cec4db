package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BindingError turns a gin binding failure into the taxonomy: tag-level
// validation failures become a 422 with a field→message map, anything else
// (malformed JSON, wrong types) a 400.
func BindingError(err error) *AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fieldName(fe)] = messageForTag(fe)
		}
		return Invalid("Validation failed", fields)
	}
	return BadRequest("Invalid request body")
}

func fieldName(fe validator.FieldError) string {
	// StructNamespace is Type.Field; json naming is snake_case of the field
	return toSnake(fe.Field())
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "hexcolor":
		return "Must be a hex color like #4361ee"
	case "datetime":
		return fmt.Sprintf("Must be a date in %s format", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "gtefield":
		return fmt.Sprintf("Must not be before %s", toSnake(fe.Param()))
	default:
		return "Invalid value"
	}
}

func toSnake(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
