// Package impl contains the implementation of the application's business logic.
package impl

import (
	domainerrors "todo/internal/domain/errors"
	"todo/internal/errors"
	"todo/internal/util"

	"github.com/go-playground/validator/v10"
)

var inputValidator = util.NewValidator()

// validateInput checks the struct tags of a usecase input and reports every failed field.
func validateInput(input any) error {
	err := inputValidator.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.Wrap(err, "failed to validate input")
	}

	return domainerrors.ErrValidationFailed.WithDetails(util.DescribeValidationErrors(validationErrs))
}
