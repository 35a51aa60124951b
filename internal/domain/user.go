package domain

import (
	"strconv"
	"time"
)

// User is an author of posts.
type User struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name" validate:"required,max=100"`
	LastName  string    `json:"last_name" validate:"required,max=100"`
	CreatedAt time.Time `json:"created_at"`
}

// GetID implements Record.
func (u *User) GetID() string {
	if u.ID == 0 {
		return ""
	}
	return strconv.FormatInt(u.ID, 10)
}

// Attribute implements Record. full_name is computed.
func (u *User) Attribute(name string) (any, bool) {
	switch name {
	case "id":
		return u.ID, true
	case "first_name":
		return u.FirstName, true
	case "last_name":
		return u.LastName, true
	case "full_name":
		return u.FirstName + " " + u.LastName, true
	case "created_at":
		return u.CreatedAt, true
	}
	return nil, false
}
