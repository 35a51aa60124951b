package postgres

import (
	"database/sql"

	"github.com/phrazzld/jsonapi-utils/internal/domain"
)

// PostsTable maps the posts table onto domain.Post.
var PostsTable = &Table{
	Name:       "posts",
	PrimaryKey: "id",
	Columns:    []string{"id", "title", "body", "user_id", "category_id", "created_at"},
	Scan: func(scan Scanner) (domain.Record, error) {
		var (
			p        domain.Post
			category sql.NullInt64
		)
		if err := scan(&p.ID, &p.Title, &p.Body, &p.UserID, &category, &p.CreatedAt); err != nil {
			return nil, err
		}
		if category.Valid {
			p.CategoryID = &category.Int64
		}
		return &p, nil
	},
}

// UsersTable maps the users table onto domain.User.
var UsersTable = &Table{
	Name:       "users",
	PrimaryKey: "id",
	Columns:    []string{"id", "first_name", "last_name", "created_at"},
	Scan: func(scan Scanner) (domain.Record, error) {
		var u domain.User
		if err := scan(&u.ID, &u.FirstName, &u.LastName, &u.CreatedAt); err != nil {
			return nil, err
		}
		return &u, nil
	},
}
