package models

import "time"

// Post is a board entry.
//
// Writer carries the author's nickname, denormalized at creation time; post
// ownership checks compare against it rather than a user ID. LikeCount is
// maintained exclusively by the like toggle and cascade paths and is never
// recomputed from like rows on reads.
type Post struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	Writer    string    `json:"writer"`
	ViewCount int       `json:"view_count"`
	LikeCount int       `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
}

// PostSummary is a listing read-model: the post plus aggregates joined in at
// read time.
type PostSummary struct {
	Post
	CommentCount       int    `json:"comment_count"`
	WriterProfileImage string `json:"writer_profile_image,omitempty"`
}

// PostDetail is the single-post read-model for an authenticated viewer.
type PostDetail struct {
	Post
	IsLiked            bool   `json:"is_liked"`
	WriterProfileImage string `json:"writer_profile_image,omitempty"`
}
