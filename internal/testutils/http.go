package testutils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MediaType is the JSON:API media type responses must carry.
const MediaType = "application/vnd.api+json"

// Resource is a decoded resource object.
type Resource struct {
	ID            string                     `json:"id"`
	Type          string                     `json:"type"`
	Attributes    map[string]any             `json:"attributes"`
	Relationships map[string]json.RawMessage `json:"relationships"`
	Links         map[string]string          `json:"links"`
}

// CollectionResponse is a decoded collection document.
type CollectionResponse struct {
	Data  []Resource        `json:"data"`
	Links map[string]string `json:"links"`
	Meta  map[string]any    `json:"meta"`
}

// IDs returns the ids of the collection's resources in order.
func (c CollectionResponse) IDs() []string {
	out := make([]string, len(c.Data))
	for i, r := range c.Data {
		out[i] = r.ID
	}
	return out
}

// SingleResponse is a decoded single-resource document.
type SingleResponse struct {
	Data *Resource `json:"data"`
}

// ErrorObject is a decoded error object.
type ErrorObject struct {
	Title  string            `json:"title"`
	Detail string            `json:"detail"`
	ID     string            `json:"id"`
	Code   string            `json:"code"`
	Status string            `json:"status"`
	Source map[string]string `json:"source"`
}

// ErrorResponse is a decoded error document.
type ErrorResponse struct {
	Errors []ErrorObject `json:"errors"`
}

// Decode asserts the recorder holds a JSON:API response with the expected
// status and decodes its body into v.
func Decode(t *testing.T, rec *httptest.ResponseRecorder, status int, v any) {
	t.Helper()
	assert.Equal(t, status, rec.Code, "body: %s", rec.Body.String())
	assert.Equal(t, MediaType, rec.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), "body: %s", rec.Body.String())
}
