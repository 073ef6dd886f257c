package models

// Like records that a user likes a post. It is a pure relation row with no
// identity of its own; at most one may exist per (UserID, PostID) pair.
type Like struct {
	UserID uint `json:"user_id"`
	PostID uint `json:"post_id"`
}

// LikeOutcome reports which state a like toggle resulted in.
type LikeOutcome string

const (
	// Liked means the toggle created a like row.
	Liked LikeOutcome = "LIKED"
	// Unliked means the toggle removed an existing like row.
	Unliked LikeOutcome = "UNLIKED"
)
