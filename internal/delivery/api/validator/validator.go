// Package validator adapts go-playground/validator to echo.Validator.
package validator

import (
	domainerrors "todo/internal/domain/errors"
	"todo/internal/errors"
	"todo/internal/util"

	"github.com/go-playground/validator/v10"
)

// CustomValidator validates bound request bodies.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates the echo validator.
func New() *CustomValidator {
	return &CustomValidator{validate: util.NewValidator()}
}

// Validate returns ErrValidationFailed carrying the failed fields.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return domainerrors.ErrValidationFailed.WithDetails(util.DescribeValidationErrors(validationErrs))
	}

	return errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
}
