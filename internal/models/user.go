// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account.
//
// Password is an opaque credential compared by exact match; it is serialized
// only in the signup response (existing behavior) and stripped everywhere else
// via Public().
type User struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	Password     string    `json:"password,omitempty"`
	Nickname     string    `json:"nickname"`
	ProfileImage string    `json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserProfile is the public view of a user, safe to return from lookups.
type UserProfile struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"created_at"`
}

// Public returns the password-free view of the user.
func (u *User) Public() UserProfile {
	return UserProfile{
		ID:        u.ID,
		Email:     u.Email,
		Nickname:  u.Nickname,
		CreatedAt: u.CreatedAt,
	}
}
