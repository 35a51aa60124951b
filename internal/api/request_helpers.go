package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/jsonapi-utils/internal/query"
)

// pathID extracts a positive integer id from the URL path parameters.
func pathID(r *http.Request, paramName string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, paramName), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// customFilter returns the value of a custom filter given in internal key
// form.
func customFilter(req *query.Request, key string) (string, bool) {
	if req.Params.Filter == nil {
		return "", false
	}
	v, ok := req.Params.Filter[req.Schema.ToExternal(key)]
	return v, ok
}
