package models

import "time"

// Comment is a user's comment on a post. Ownership checks compare UserID,
// unlike posts which are keyed on the writer nickname.
type Comment struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	UserID    uint      `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentView is the listing read-model: the author nickname is resolved at
// read time, never denormalized onto the row.
type CommentView struct {
	ID        uint      `json:"id"`
	Nickname  string    `json:"nickname"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
