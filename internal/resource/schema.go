package resource

import (
	"fmt"
	"slices"
	"strings"

	"github.com/phrazzld/jsonapi-utils/internal/domain"
)

// Relationship declares an association of a resource type.
type Relationship struct {
	// Name is the relationship name in internal key form, e.g. "author".
	Name string
	// Type is the JSON:API type of the related resources.
	Type string
	// ForeignKey is the attribute holding the related id for to-one
	// relationships ("user_id"), or the column on the related table
	// referencing this resource for to-many relationships.
	ForeignKey string
	// ToMany marks has-many relationships.
	ToMany bool
}

// Schema is the field and relationship whitelist of one resource type.
type Schema struct {
	Type          string
	Attributes    []string
	Relationships []Relationship
	// Filters lists the attributes that accept equality filters.
	Filters []string
	// CustomFilters are allowed in requests but applied by caller-provided
	// logic rather than the equality filter.
	CustomFilters []string
	// ListFilters are filters whose value is a comma-separated list matching
	// any of its elements. Every other filter value is one literal.
	ListFilters []string
	// SortFields, when set, replaces the attribute list as the sort
	// whitelist. Computed attributes have no column to order by.
	SortFields []string
	Codec      KeyCodec
}

// codec falls back to Underscored when none was configured.
func (s *Schema) codec() KeyCodec {
	if s.Codec == nil {
		return Underscored{}
	}
	return s.Codec
}

// WithCodec returns a copy of the schema using the given codec.
func (s *Schema) WithCodec(c KeyCodec) *Schema {
	cp := *s
	cp.Codec = c
	return &cp
}

// ToInternal converts a wire key to its internal form.
func (s *Schema) ToInternal(name string) string { return s.codec().ToInternal(name) }

// ToExternal converts an internal key to its wire form.
func (s *Schema) ToExternal(name string) string { return s.codec().ToExternal(name) }

// HasAttribute reports whether key (internal form) is a declared attribute.
func (s *Schema) HasAttribute(key string) bool {
	return slices.Contains(s.Attributes, key)
}

// Relationship returns the relationship declared under name.
func (s *Schema) Relationship(name string) (Relationship, bool) {
	for _, r := range s.Relationships {
		if r.Name == name {
			return r, true
		}
	}
	return Relationship{}, false
}

// Fetchable reports whether key names an attribute or relationship.
func (s *Schema) Fetchable(key string) bool {
	if s.HasAttribute(key) {
		return true
	}
	_, ok := s.Relationship(key)
	return ok
}

// Sortable reports whether key may appear in a sort directive.
func (s *Schema) Sortable(key string) bool {
	if s.SortFields != nil {
		return key == "id" || slices.Contains(s.SortFields, key)
	}
	return key == "id" || s.HasAttribute(key)
}

// FilterAllowed reports whether key may appear as a filter.
func (s *Schema) FilterAllowed(key string) bool {
	return key == "id" || slices.Contains(s.Filters, key) || s.IsCustomFilter(key)
}

// IsListFilter reports whether key takes a comma-separated list of values.
func (s *Schema) IsListFilter(key string) bool {
	return slices.Contains(s.ListFilters, key)
}

// IsCustomFilter reports whether key is handled by a custom filter.
func (s *Schema) IsCustomFilter(key string) bool {
	return slices.Contains(s.CustomFilters, key)
}

// ResourceKeyFor maps a record field onto the resource member describing it:
// foreign keys resolve to their to-one relationship, e.g. user_id => author.
func (s *Schema) ResourceKeyFor(field string) string {
	for _, r := range s.Relationships {
		if !r.ToMany && r.ForeignKey == field {
			return r.Name
		}
	}
	return field
}

// Resource wraps a record into a resource object. baseURL, when not empty,
// is the collection URL used for self and relationship links.
func (s *Schema) Resource(record domain.Record, baseURL string) (*ResourceObject, error) {
	if record == nil {
		return nil, fmt.Errorf("%s resource: %w", s.Type, domain.ErrMissingID)
	}
	id := record.GetID()
	if id == "" {
		return nil, fmt.Errorf("%s resource: %w", s.Type, domain.ErrMissingID)
	}

	obj := &ResourceObject{ID: id, Type: s.Type}

	if len(s.Attributes) > 0 {
		obj.Attributes = make(map[string]any, len(s.Attributes))
		for _, name := range s.Attributes {
			v, _ := record.Attribute(name)
			obj.Attributes[s.ToExternal(name)] = v
		}
	}

	self := ""
	if baseURL != "" {
		self = strings.TrimRight(baseURL, "/") + "/" + id
		obj.Links = map[string]string{"self": self}
	}

	if len(s.Relationships) > 0 {
		obj.Relationships = make(map[string]RelationshipObject, len(s.Relationships))
		for _, rel := range s.Relationships {
			key := s.ToExternal(rel.Name)
			ro := RelationshipObject{}
			if self != "" {
				ro.Links = map[string]string{
					"self":    self + "/relationships/" + key,
					"related": self + "/" + key,
				}
			}
			if !rel.ToMany {
				if v, ok := record.Attribute(rel.ForeignKey); ok && v != nil {
					ro.Data = &Identifier{Type: rel.Type, ID: domain.FormatID(v)}
				}
			}
			obj.Relationships[key] = ro
		}
	}

	return obj, nil
}

// Humanize turns an internal key into a label: first_name => "First name",
// author_id => "Author".
func Humanize(key string) string {
	key = strings.TrimSuffix(key, "_id")
	key = strings.ReplaceAll(key, "_", " ")
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
