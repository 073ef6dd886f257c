package service

import (
	"context"

	"plaza/internal/models"
	"plaza/internal/store"
	"plaza/internal/validation"
)

type PostService struct {
	posts store.PostStore
	query store.Query
}

type CreatePostInput struct {
	Title    string
	Content  string
	ImageURL string
	Writer   string
}

type UpdatePostInput struct {
	PostID    uint
	Title     string
	Content   string
	ImageURL  *string
	Requester string
}

func NewPostService(posts store.PostStore, query store.Query) *PostService {
	return &PostService{posts: posts, query: query}
}

// List returns one page of post summaries; page and size must be >= 1.
func (s *PostService) List(ctx context.Context, page, size int) ([]models.PostSummary, error) {
	return s.query.PostsPage(ctx, page, size)
}

func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidateTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	return s.posts.Create(ctx, store.CreatePostInput{
		Title:    in.Title,
		Content:  in.Content,
		ImageURL: in.ImageURL,
		Writer:   in.Writer,
	})
}

// Detail returns the post read-model for the viewer, bumping the view count.
func (s *PostService) Detail(ctx context.Context, postID, viewerID uint) (*models.PostDetail, error) {
	return s.query.PostDetail(ctx, postID, viewerID)
}

func (s *PostService) Update(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if in.Title != "" {
		if err := validation.ValidateTitle(in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	return s.posts.Update(ctx, store.UpdatePostInput{
		ID:        in.PostID,
		Title:     in.Title,
		Content:   in.Content,
		ImageURL:  in.ImageURL,
		Requester: in.Requester,
	})
}

func (s *PostService) Delete(ctx context.Context, postID uint, requesterNickname string) error {
	return s.posts.Delete(ctx, postID, requesterNickname)
}
