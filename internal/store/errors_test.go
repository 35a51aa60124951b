package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "wrapped ErrNotFound", err: fmt.Errorf("lookup: %w", ErrNotFound), expected: true},
		{name: "ErrRecordNotFound", err: ErrRecordNotFound, expected: true},
		{name: "statement invalid", err: ErrStatementInvalid, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	err := NewStoreError("users", "count", "query failed", ErrStatementInvalid)

	assert.Equal(t, "count operation on users failed: query failed: statement invalid", err.Error())
	assert.ErrorIs(t, err, ErrStatementInvalid)

	bare := NewStoreError("posts", "load", "no rows", nil)
	assert.Equal(t, "load operation on posts failed: no rows", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestDistinctCountExpr(t *testing.T) {
	rel := stubRelation{table: "foos", pk: "id"}
	assert.Equal(t, "DISTINCT foos.id", DistinctCountExpr(rel))
}

type stubRelation struct {
	Relation
	table string
	pk    string
}

func (s stubRelation) TableName() string  { return s.table }
func (s stubRelation) PrimaryKey() string { return s.pk }
