package service

import (
	"context"

	"plaza/internal/models"
	"plaza/internal/store"
)

const maxCommentLen = 10000

type CommentService struct {
	engagement store.EngagementStore
}

type CreateCommentInput struct {
	PostID  uint
	UserID  uint
	Content string
}

type DeleteCommentInput struct {
	CommentID uint
	UserID    uint
}

func NewCommentService(engagement store.EngagementStore) *CommentService {
	return &CommentService{engagement: engagement}
}

func (s *CommentService) List(ctx context.Context, postID uint) ([]models.CommentView, error) {
	return s.engagement.ListComments(ctx, postID)
}

func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}
	return s.engagement.CreateComment(ctx, in.PostID, in.UserID, in.Content)
}

func (s *CommentService) Delete(ctx context.Context, in DeleteCommentInput) error {
	return s.engagement.DeleteComment(ctx, in.CommentID, in.UserID)
}

// ToggleLike flips the viewer's like on the post and returns the resulting
// state together with the post's current like count.
func (s *CommentService) ToggleLike(ctx context.Context, postID, userID uint) (models.LikeOutcome, int, error) {
	outcome, err := s.engagement.ToggleLike(ctx, postID, userID)
	if err != nil {
		return "", 0, err
	}
	return outcome, s.engagement.LikeCount(ctx, postID), nil
}
