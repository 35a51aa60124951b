package document

import (
	"github.com/phrazzld/jsonapi-utils/internal/apierror"
)

// Document is a JSON:API top-level document.
type Document struct {
	// Data is a *resource.ResourceObject, a slice of them, or nil. It is
	// always serialized, as null for a missing record.
	Data  any               `json:"data"`
	Links map[string]string `json:"links,omitempty"`
	Meta  map[string]any    `json:"meta,omitempty"`
}

// ErrorDocument is a JSON:API error document.
type ErrorDocument struct {
	Errors []apierror.Error `json:"errors"`
	Meta   map[string]any   `json:"meta,omitempty"`
}

// Errors builds an error document from any error source understood by
// apierror.Normalize.
func Errors(source any) ErrorDocument {
	return ErrorDocument{Errors: apierror.Normalize(source)}
}
