package store

import (
	"context"

	"plaza/internal/models"
	"plaza/internal/observability"
)

// deletedAuthorNickname labels comments whose author no longer exists.
// Authorship is resolved at read time, unlike a post's denormalized writer.
const deletedAuthorNickname = "unknown"

// EngagementStore holds comment and like rows, owns comment mutations and the
// like toggle.
type EngagementStore interface {
	ListComments(ctx context.Context, postID uint) ([]models.CommentView, error)
	CreateComment(ctx context.Context, postID, userID uint, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID, requesterID uint) error
	// ToggleLike flips the (user, post) like relation and keeps the post's
	// like counter in step, atomically: concurrent toggles for the same pair
	// serialize, so the pair-uniqueness invariant cannot be violated.
	ToggleLike(ctx context.Context, postID, userID uint) (models.LikeOutcome, error)
	IsLiked(ctx context.Context, userID, postID uint) bool
	LikeCount(ctx context.Context, postID uint) int
}

type engagementStore struct {
	db       *DB
	comments *observability.StoreLogger
	likes    *observability.StoreLogger
}

// NewEngagementStore creates a new EngagementStore backed by db.
func NewEngagementStore(db *DB) EngagementStore {
	return &engagementStore{
		db:       db,
		comments: observability.NewStoreLogger("comments"),
		likes:    observability.NewStoreLogger("likes"),
	}
}

func (s *engagementStore) ListComments(_ context.Context, postID uint) ([]models.CommentView, error) {
	defer observability.TrackStoreOp("list", "comments")()

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if s.db.postByIDLocked(postID) == nil {
		return nil, models.NewNotFoundError("Post", postID)
	}

	out := []models.CommentView{}
	for _, c := range s.db.comments {
		if c.PostID != postID {
			continue
		}
		nickname := deletedAuthorNickname
		if u := s.db.userByIDLocked(c.UserID); u != nil {
			nickname = u.Nickname
		}
		out = append(out, models.CommentView{
			ID:        c.ID,
			Nickname:  nickname,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}
	return out, nil
}

// CreateComment verifies the post inside its own critical section, so a
// concurrent post cascade can never leave the new comment dangling.
func (s *engagementStore) CreateComment(ctx context.Context, postID, userID uint, content string) (*models.Comment, error) {
	defer observability.TrackStoreOp("create", "comments")()

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if s.db.postByIDLocked(postID) == nil {
		return nil, models.NewNotFoundError("Post", postID)
	}

	comment := &models.Comment{
		ID:        s.db.nextCommentID,
		PostID:    postID,
		UserID:    userID,
		Content:   content,
		CreatedAt: s.db.now(),
	}
	s.db.nextCommentID++
	s.db.comments = append(s.db.comments, comment)

	s.comments.LogMutation(ctx, "create", map[string]interface{}{
		"comment_id": comment.ID,
		"post_id":    postID,
	})

	out := *comment
	return &out, nil
}

func (s *engagementStore) DeleteComment(ctx context.Context, commentID, requesterID uint) error {
	defer observability.TrackStoreOp("delete", "comments")()

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for i, c := range s.db.comments {
		if c.ID != commentID {
			continue
		}
		if c.UserID != requesterID {
			return models.NewForbiddenError("Only the author may delete this comment")
		}
		s.db.comments = append(s.db.comments[:i], s.db.comments[i+1:]...)
		s.comments.LogMutation(ctx, "delete", map[string]interface{}{"comment_id": commentID})
		return nil
	}
	return models.NewNotFoundError("Comment", commentID)
}

func (s *engagementStore) ToggleLike(ctx context.Context, postID, userID uint) (models.LikeOutcome, error) {
	defer observability.TrackStoreOp("toggle", "likes")()

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	post := s.db.postByIDLocked(postID)
	if post == nil {
		return "", models.NewNotFoundError("Post", postID)
	}

	if i := s.db.likeIndexLocked(userID, postID); i >= 0 {
		s.db.likes = append(s.db.likes[:i], s.db.likes[i+1:]...)
		decLikeCountLocked(post)
		observability.LikeToggles.WithLabelValues("unliked").Inc()
		s.likes.LogMutation(ctx, "unlike", map[string]interface{}{
			"post_id": postID,
			"user_id": userID,
		})
		return models.Unliked, nil
	}

	s.db.likes = append(s.db.likes, models.Like{UserID: userID, PostID: postID})
	post.LikeCount++
	observability.LikeToggles.WithLabelValues("liked").Inc()
	s.likes.LogMutation(ctx, "like", map[string]interface{}{
		"post_id": postID,
		"user_id": userID,
	})
	return models.Liked, nil
}

func (s *engagementStore) IsLiked(_ context.Context, userID, postID uint) bool {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.db.likeIndexLocked(userID, postID) >= 0
}

func (s *engagementStore) LikeCount(_ context.Context, postID uint) int {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	if p := s.db.postByIDLocked(postID); p != nil {
		return p.LikeCount
	}
	return 0
}
