package apierror

import (
	"fmt"
	"net/http"
)

// Exception is an error carrying ready-made error objects.
// It satisfies the Errors accessor consumed by Normalize.
type Exception struct {
	status  int
	message string
	errs    []Error
}

// NewException builds an exception from error objects.
func NewException(status int, message string, errs ...Error) *Exception {
	return &Exception{status: status, message: message, errs: errs}
}

// Error implements the error interface.
func (e *Exception) Error() string { return e.message }

// Errors returns the exception's error objects.
func (e *Exception) Errors() []Error { return e.errs }

// HTTPStatus returns the status the exception renders with.
func (e *Exception) HTTPStatus() int { return e.status }

// BadRequest is raised for requests the API cannot serve.
func BadRequest() *Exception {
	return NewException(http.StatusBadRequest, "bad request", Error{
		Title:  "Bad Request",
		Detail: "This request is not supported.",
		Code:   CodeBadRequest,
		Status: StatusText(http.StatusBadRequest),
	})
}

// InternalServerError is raised when request processing fails unexpectedly.
func InternalServerError() *Exception {
	return NewException(http.StatusInternalServerError, "internal server error", Error{
		Title:  "Internal Server Error",
		Detail: "An internal error occurred while processing the request.",
		Code:   CodeInternalServerError,
		Status: StatusText(http.StatusInternalServerError),
	})
}

// RecordNotFound is raised when a record addressed by id does not exist.
func RecordNotFound(id string) *Exception {
	if id == "" {
		id = "(no identifier)"
	}
	return NewException(http.StatusNotFound, "record not found: "+id, Error{
		Title:  "Record not found",
		Detail: fmt.Sprintf("The record identified by %s could not be found.", id),
		Code:   CodeRecordNotFound,
		Status: StatusText(http.StatusNotFound),
	})
}

// FilterNotAllowed reports a filter the resource does not accept.
func FilterNotAllowed(filter string) Error {
	return Error{
		Title:  "Filter not allowed",
		Detail: fmt.Sprintf("%s is not allowed.", filter),
		Code:   CodeFilterNotAllowed,
		Source: Parameter("filter[" + filter + "]"),
		Status: StatusText(http.StatusBadRequest),
	}
}

// InvalidFiltersSyntax reports a filter parameter that is not a mapping.
func InvalidFiltersSyntax(value string) Error {
	return Error{
		Title:  "Invalid filters syntax",
		Detail: fmt.Sprintf("%s is not a valid syntax for filtering.", value),
		Code:   CodeInvalidFiltersSyntax,
		Source: Parameter("filter"),
		Status: StatusText(http.StatusBadRequest),
	}
}

// InvalidSortCriteria reports a sort field the resource does not define.
func InvalidSortCriteria(field string) Error {
	return Error{
		Title:  "Invalid sort criteria",
		Detail: fmt.Sprintf("%s is not a valid sort criteria for this resource.", field),
		Code:   CodeInvalidSortCriteria,
		Source: Parameter("sort"),
		Status: StatusText(http.StatusBadRequest),
	}
}

// InvalidPageValue reports a page parameter holding an unusable value.
func InvalidPageValue(key, value string) Error {
	return Error{
		Title:  "Invalid page value",
		Detail: fmt.Sprintf("%s is not a valid value for %s page parameter.", value, key),
		Code:   CodeInvalidPageValue,
		Source: Parameter("page[" + key + "]"),
		Status: StatusText(http.StatusBadRequest),
	}
}

// PageParamNotAllowed reports a page key the active paginator does not read.
func PageParamNotAllowed(key string) Error {
	return Error{
		Title:  "Page parameter not allowed",
		Detail: fmt.Sprintf("%s is not an allowed page parameter.", key),
		Code:   CodeParamNotAllowed,
		Source: Parameter("page[" + key + "]"),
		Status: StatusText(http.StatusBadRequest),
	}
}

// InvalidPageObject reports a page parameter that is not a mapping.
func InvalidPageObject() Error {
	return Error{
		Title:  "Invalid page object",
		Detail: "The page parameter must be an object.",
		Code:   CodeInvalidPageObject,
		Source: Parameter("page"),
		Status: StatusText(http.StatusBadRequest),
	}
}

// InvalidResource reports a request document whose resource type does not
// match the endpoint.
func InvalidResource(resourceType string) *Exception {
	return NewException(http.StatusConflict, "invalid resource type: "+resourceType, Error{
		Title:  "Invalid resource",
		Detail: fmt.Sprintf("%s is not a valid resource.", resourceType),
		Code:   CodeInvalidResource,
		Source: Pointer("/data/type"),
		Status: StatusText(http.StatusConflict),
	})
}

// InvalidFieldValue reports a member of the request document whose value
// cannot be used. pointer locates the member.
func InvalidFieldValue(pointer, value string) *Exception {
	return NewException(http.StatusBadRequest, "invalid field value: "+pointer, Error{
		Title:  "Invalid field value",
		Detail: fmt.Sprintf("%s is not a valid value for this field.", value),
		Code:   CodeInvalidFieldValue,
		Source: Pointer(pointer),
		Status: StatusText(http.StatusBadRequest),
	})
}

// InvalidDocument reports a request body that is not a resource document.
func InvalidDocument() *Exception {
	return NewException(http.StatusBadRequest, "invalid request document", Error{
		Title:  "Bad Request",
		Detail: "The request body must be a JSON:API document with a data member.",
		Code:   CodeBadRequest,
		Source: Pointer("/data"),
		Status: StatusText(http.StatusBadRequest),
	})
}

// Conflict is raised when a write collides with an existing record.
func Conflict() *Exception {
	return NewException(http.StatusConflict, "conflict", Error{
		Title:  "Conflict",
		Detail: "The resource conflicts with an existing record.",
		Code:   CodeConflict,
		Status: StatusText(http.StatusConflict),
	})
}
