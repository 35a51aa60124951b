package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/jsonapi-utils/internal/resource"
)

// MaxBodyBytes bounds request documents.
const MaxBodyBytes = 1 << 20

// Global validator instance for reuse
var validate = validator.New(validator.WithRequiredStructEnabled())

// ResourceDocument is a request document carrying one resource object.
type ResourceDocument struct {
	Data *ResourceInput `json:"data" validate:"required"`
}

// ResourceInput is the resource object of a create or update request.
type ResourceInput struct {
	Type          string                       `json:"type" validate:"required"`
	ID            string                       `json:"id,omitempty"`
	Attributes    map[string]any               `json:"attributes"`
	Relationships map[string]RelationshipInput `json:"relationships"`
}

// RelationshipInput is a to-one relationship linkage in a request document.
type RelationshipInput struct {
	Data *resource.Identifier `json:"data"`
}

// DecodeJSON decodes the request body into v. Numbers decode as
// json.Number so that identifiers keep their precision.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty request body: %w", err)
		}
		return err
	}
	return nil
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v any) error {
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}
	return validate.Struct(v)
}
