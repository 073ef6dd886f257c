package service

import (
	"context"
	"strings"
	"testing"

	"plaza/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// engagementStoreStub is a stub for store.EngagementStore.
type engagementStoreStub struct {
	listCommentsFn  func(context.Context, uint) ([]models.CommentView, error)
	createCommentFn func(context.Context, uint, uint, string) (*models.Comment, error)
	deleteCommentFn func(context.Context, uint, uint) error
	toggleLikeFn    func(context.Context, uint, uint) (models.LikeOutcome, error)
	isLikedFn       func(context.Context, uint, uint) bool
	likeCountFn     func(context.Context, uint) int
}

func (s *engagementStoreStub) ListComments(ctx context.Context, postID uint) ([]models.CommentView, error) {
	return s.listCommentsFn(ctx, postID)
}
func (s *engagementStoreStub) CreateComment(ctx context.Context, postID, userID uint, content string) (*models.Comment, error) {
	return s.createCommentFn(ctx, postID, userID, content)
}
func (s *engagementStoreStub) DeleteComment(ctx context.Context, commentID, requesterID uint) error {
	return s.deleteCommentFn(ctx, commentID, requesterID)
}
func (s *engagementStoreStub) ToggleLike(ctx context.Context, postID, userID uint) (models.LikeOutcome, error) {
	return s.toggleLikeFn(ctx, postID, userID)
}
func (s *engagementStoreStub) IsLiked(ctx context.Context, userID, postID uint) bool {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *engagementStoreStub) LikeCount(ctx context.Context, postID uint) int {
	return s.likeCountFn(ctx, postID)
}

func noopEngagementStore() *engagementStoreStub {
	return &engagementStoreStub{
		listCommentsFn: func(_ context.Context, _ uint) ([]models.CommentView, error) { return nil, nil },
		createCommentFn: func(_ context.Context, postID, userID uint, content string) (*models.Comment, error) {
			return &models.Comment{ID: 1, PostID: postID, UserID: userID, Content: content}, nil
		},
		deleteCommentFn: func(_ context.Context, _, _ uint) error { return nil },
		toggleLikeFn: func(_ context.Context, _, _ uint) (models.LikeOutcome, error) {
			return models.Liked, nil
		},
		isLikedFn:   func(_ context.Context, _, _ uint) bool { return false },
		likeCountFn: func(_ context.Context, _ uint) int { return 0 },
	}
}

func TestCreateCommentValidation(t *testing.T) {
	svc := NewCommentService(noopEngagementStore())

	_, err := svc.Create(context.Background(), CreateCommentInput{PostID: 1, UserID: 1})
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))

	_, err = svc.Create(context.Background(), CreateCommentInput{
		PostID:  1,
		UserID:  1,
		Content: strings.Repeat("x", 10001),
	})
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))
}

func TestCreateCommentPassesThrough(t *testing.T) {
	svc := NewCommentService(noopEngagementStore())

	comment, err := svc.Create(context.Background(), CreateCommentInput{
		PostID:  3,
		UserID:  5,
		Content: "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(3), comment.PostID)
	assert.Equal(t, uint(5), comment.UserID)
}

func TestToggleLikeReturnsCount(t *testing.T) {
	stub := noopEngagementStore()
	stub.toggleLikeFn = func(_ context.Context, _, _ uint) (models.LikeOutcome, error) {
		return models.Liked, nil
	}
	stub.likeCountFn = func(_ context.Context, _ uint) int { return 4 }
	svc := NewCommentService(stub)

	outcome, count, err := svc.ToggleLike(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, models.Liked, outcome)
	assert.Equal(t, 4, count)
}

func TestToggleLikeUnknownPost(t *testing.T) {
	stub := noopEngagementStore()
	stub.toggleLikeFn = func(_ context.Context, postID, _ uint) (models.LikeOutcome, error) {
		return "", models.NewNotFoundError("Post", postID)
	}
	svc := NewCommentService(stub)

	_, _, err := svc.ToggleLike(context.Background(), 9, 2)
	assert.True(t, models.IsNotFound(err))
}

func TestDeleteCommentSurfacesForbidden(t *testing.T) {
	stub := noopEngagementStore()
	stub.deleteCommentFn = func(_ context.Context, _, _ uint) error {
		return models.NewForbiddenError("Only the author may delete this comment")
	}
	svc := NewCommentService(stub)

	err := svc.Delete(context.Background(), DeleteCommentInput{CommentID: 1, UserID: 2})
	assert.True(t, models.IsForbidden(err))
}
