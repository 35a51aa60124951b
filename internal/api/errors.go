package api

import (
	"errors"

	"github.com/phrazzld/jsonapi-utils/internal/apierror"
	"github.com/phrazzld/jsonapi-utils/internal/store"
)

// errorSource maps an internal error onto the error objects rendered for it.
// Unrecognized errors become a generic internal server error so that no
// internal detail reaches the client.
func errorSource(err error) any {
	var (
		validation *apierror.Validation
		exception  *apierror.Exception
	)
	switch {
	case errors.As(err, &validation):
		return validation
	case errors.As(err, &exception):
		return exception
	case errors.Is(err, store.ErrNotFound):
		return apierror.RecordNotFound("")
	case errors.Is(err, store.ErrDuplicate):
		return apierror.Conflict()
	case errors.Is(err, store.ErrInvalidEntity):
		return apierror.NewValidation(errors.New("violates a data constraint"), nil, nil)
	default:
		return apierror.InternalServerError()
	}
}
