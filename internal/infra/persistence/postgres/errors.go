package postgres

import (
	domainerrors "todo/internal/domain/errors"
	"todo/internal/errors"
)

// translateError maps a driver error into the domain taxonomy.
func translateError(err error, details string) error {
	if isUnavailable(err) {
		return errors.Wrap(domainerrors.ErrDatabaseUnavailable, details)
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}
