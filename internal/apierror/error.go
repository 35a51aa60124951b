package apierror

import (
	"net/http"
	"strconv"
)

// Error codes shared with clients. Codes below 400 are application codes;
// the rest mirror HTTP statuses.
const (
	CodeValidation           = "100"
	CodeInvalidResource      = "101"
	CodeFilterNotAllowed     = "102"
	CodeInvalidFieldValue    = "103"
	CodeParamNotAllowed      = "105"
	CodeInvalidSortCriteria  = "114"
	CodeInvalidPageObject    = "117"
	CodeInvalidPageValue     = "118"
	CodeInvalidFiltersSyntax = "120"
	CodeBadRequest           = "400"
	CodeRecordNotFound       = "404"
	CodeConflict             = "409"
	CodeInternalServerError  = "500"
)

// Members lists the recognized error members in their serialization order.
var Members = []string{"title", "detail", "id", "code", "source", "links", "status", "meta"}

// Error is a JSON:API error object. Field order is the serialization order;
// members without a value are omitted.
type Error struct {
	Title  string `json:"title,omitempty"`
	Detail string `json:"detail,omitempty"`
	ID     string `json:"id,omitempty"`
	Code   string `json:"code,omitempty"`
	Source any    `json:"source,omitempty"`
	Links  any    `json:"links,omitempty"`
	Status string `json:"status,omitempty"`
	Meta   any    `json:"meta,omitempty"`
}

// Source points at the part of the request an error relates to.
type Source struct {
	Pointer   string `json:"pointer,omitempty"`
	Parameter string `json:"parameter,omitempty"`
}

// Pointer is shorthand for a JSON Pointer source.
func Pointer(p string) *Source {
	return &Source{Pointer: p}
}

// Parameter is shorthand for a query parameter source.
func Parameter(p string) *Source {
	return &Source{Parameter: p}
}

// StatusText renders an HTTP status the way error objects carry it.
func StatusText(status int) string {
	return strconv.Itoa(status)
}

// Status derives the response status from the first error's status, then
// its code. fallback is used when neither holds an HTTP status.
func Status(errs []Error, fallback int) int {
	if len(errs) == 0 {
		return fallback
	}
	for _, candidate := range []string{errs[0].Status, errs[0].Code} {
		if n, err := strconv.Atoi(candidate); err == nil && n >= 400 && n < 600 {
			return n
		}
	}
	return fallback
}

// DefaultStatus is the status used when errors carry none.
const DefaultStatus = http.StatusBadRequest
