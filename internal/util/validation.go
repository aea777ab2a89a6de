package util

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that names fields by their json tag, or the lowercased Go name.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(field.Name)
		}

		return name
	})

	return v
}

// DescribeValidationErrors renders every failed field as a short sentence joined by "; ".
func DescribeValidationErrors(errs validator.ValidationErrors) string {
	details := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		details = append(details, describeFieldError(fieldErr))
	}

	return strings.Join(details, "; ")
}

func describeFieldError(fieldErr validator.FieldError) string {
	field := fieldErr.Field()

	switch fieldErr.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fieldErr.Param())
	default:
		return fmt.Sprintf("%s failed %q validation", field, fieldErr.Tag())
	}
}
