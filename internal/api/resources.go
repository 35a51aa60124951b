package api

import "github.com/phrazzld/jsonapi-utils/internal/resource"

// Schemas are the resource schemas served by the API.
type Schemas struct {
	Users *resource.Schema
	Posts *resource.Schema
}

// postTitleFilter selects users who authored a post with the given title.
const postTitleFilter = "post_title"

// NewSchemas declares the users and posts resources with key names rendered
// by codec.
func NewSchemas(codec resource.KeyCodec) Schemas {
	return Schemas{
		Users: &resource.Schema{
			Type:       "users",
			Attributes: []string{"first_name", "last_name", "full_name", "created_at"},
			Relationships: []resource.Relationship{
				{Name: "posts", Type: "posts", ForeignKey: "user_id", ToMany: true},
			},
			Filters:       []string{"first_name", "last_name"},
			CustomFilters: []string{postTitleFilter},
			ListFilters:   []string{"id"},
			SortFields:    []string{"first_name", "last_name", "created_at"},
			Codec:         codec,
		},
		Posts: &resource.Schema{
			Type:       "posts",
			Attributes: []string{"title", "body", "created_at"},
			Relationships: []resource.Relationship{
				{Name: "author", Type: "users", ForeignKey: "user_id"},
				{Name: "category", Type: "categories", ForeignKey: "category_id"},
			},
			Filters:     []string{"title", "user_id", "category_id"},
			ListFilters: []string{"id", "user_id", "category_id"},
			Codec:       codec,
		},
	}
}
