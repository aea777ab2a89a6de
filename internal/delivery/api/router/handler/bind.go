// Package handler contains the echo handlers of the JSON API.
package handler

import (
	domainerrors "todo/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// bindAndValidate decodes the request into req and runs the echo validator on it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("request body is not valid JSON for this endpoint")
	}

	return c.Validate(req)
}
