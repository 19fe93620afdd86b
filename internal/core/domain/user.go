package domain

import "time"

// User models a registered account. Email is unique across users.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Field exposes the filterable attributes of a user.
func (u *User) Field(name string) string {
	if name == FieldID {
		return u.ID
	}
	return ""
}

// Actor returns the request identity for u.
func (u *User) Actor() *Actor {
	return &Actor{ID: u.ID, Role: u.Role}
}
