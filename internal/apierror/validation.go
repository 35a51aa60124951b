package apierror

import (
	"errors"
	"net/http"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/jsonapi-utils/internal/resource"
)

// Validation decorates a failed validation of a record rendered with Schema.
// Its Errors accessor yields one error object per failed rule.
type Validation struct {
	Err        error
	Schema     *resource.Schema
	Translator ut.Translator
}

// NewValidation wraps err, usually a validator.ValidationErrors value.
func NewValidation(err error, schema *resource.Schema, trans ut.Translator) *Validation {
	return &Validation{Err: err, Schema: schema, Translator: trans}
}

// Error implements the error interface.
func (v *Validation) Error() string {
	if v.Err == nil {
		return "validation failed"
	}
	return v.Err.Error()
}

// Unwrap returns the wrapped validation error.
func (v *Validation) Unwrap() error { return v.Err }

// Errors returns the error objects describing each failed rule.
func (v *Validation) Errors() []Error {
	if v.Err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(v.Err, &fieldErrs) {
		return []Error{v.build("", "invalid", v.Err.Error())}
	}

	out := make([]Error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := fe.Error()
		if v.Translator != nil {
			msg = fe.Translate(v.Translator)
		}
		out = append(out, v.build(fe.Field(), fe.Tag(), msg))
	}
	return out
}

// build turns one failed rule on field into an error object. An empty field
// denotes an error on the record as a whole.
func (v *Validation) build(field, tag, message string) Error {
	e := Error{
		Title:  message,
		Code:   CodeValidation,
		Status: StatusText(http.StatusUnprocessableEntity),
	}

	if field == "" {
		e.ID = "base#" + tag
		e.Detail = message
		e.Source = Pointer("/data")
		return e
	}

	key := field
	formatted := field
	if v.Schema != nil {
		key = v.Schema.ResourceKeyFor(field)
		formatted = v.Schema.ToExternal(key)
	}

	tagKey := strings.ToLower(strings.Join(strings.Fields(tag), "_"))
	if v.Schema != nil {
		tagKey = v.Schema.ToExternal(tagKey)
	}
	e.ID = formatted + "#" + tagKey
	e.Detail = resource.Humanize(key) + " " + message

	if v.Schema == nil {
		return e
	}
	if _, isRel := v.Schema.Relationship(key); isRel {
		e.Source = Pointer("/data/relationships/" + formatted)
	} else if v.Schema.HasAttribute(key) {
		e.Source = Pointer("/data/attributes/" + formatted)
	}
	return e
}
