package document

import (
	"encoding/json"
	"testing"

	"github.com/phrazzld/jsonapi-utils/internal/apierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsDocument(t *testing.T) {
	doc := Errors(apierror.RecordNotFound("42"))

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"errors":[{
		"title":"Record not found",
		"detail":"The record identified by 42 could not be found.",
		"code":"404",
		"status":"404"
	}]}`, string(raw))
}

func TestErrorsDocumentIsNeverNull(t *testing.T) {
	raw, err := json.Marshal(Errors(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"errors":[]}`, string(raw))
}
