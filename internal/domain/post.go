package domain

import (
	"strconv"
	"time"
)

// Post is an article written by a user and optionally filed under a category.
type Post struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title" validate:"required,max=200"`
	Body       string    `json:"body" validate:"required"`
	UserID     int64     `json:"user_id" validate:"required,gt=0"`
	CategoryID *int64    `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	CreatedAt  time.Time `json:"created_at"`
}

// GetID implements Record.
func (p *Post) GetID() string {
	if p.ID == 0 {
		return ""
	}
	return strconv.FormatInt(p.ID, 10)
}

// Attribute implements Record.
func (p *Post) Attribute(name string) (any, bool) {
	switch name {
	case "id":
		return p.ID, true
	case "title":
		return p.Title, true
	case "body":
		return p.Body, true
	case "user_id":
		return p.UserID, true
	case "category_id":
		if p.CategoryID == nil {
			return nil, true
		}
		return *p.CategoryID, true
	case "created_at":
		return p.CreatedAt, true
	}
	return nil, false
}

// Validate checks the post against its business rules.
// The returned error is a validator.ValidationErrors value when rules fail.
func (p *Post) Validate() error {
	return Validator().Struct(p)
}
