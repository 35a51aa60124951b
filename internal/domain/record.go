package domain

import (
	"fmt"
	"strconv"
)

// Record is the minimal contract of anything rendered as a resource object.
// Both persisted entities and plain keyed-value structures satisfy it.
type Record interface {
	// GetID returns the record identifier in its wire form. An empty string
	// means the record has no identity.
	GetID() string

	// Attribute returns the value stored under the internal key name.
	Attribute(name string) (any, bool)
}

// MapRecord adapts a plain keyed-value structure to Record.
type MapRecord map[string]any

// GetID implements Record.
func (m MapRecord) GetID() string {
	v, ok := m["id"]
	if !ok || v == nil {
		return ""
	}
	return FormatID(v)
}

// Attribute implements Record.
func (m MapRecord) Attribute(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// Records converts plain structures into a slice of records.
func Records(items ...map[string]any) []Record {
	out := make([]Record, 0, len(items))
	for _, item := range items {
		out = append(out, MapRecord(item))
	}
	return out
}

// FormatID renders an identifier value in its wire form.
func FormatID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case int:
		return strconv.Itoa(id)
	case int32:
		return strconv.FormatInt(int64(id), 10)
	case int64:
		return strconv.FormatInt(id, 10)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case fmt.Stringer:
		return id.String()
	default:
		return fmt.Sprint(v)
	}
}
