package store

import (
	"context"

	"plaza/internal/models"
	"plaza/internal/observability"
)

// PostStore holds post rows and owns view-count bumps and post mutations.
type PostStore interface {
	// ListPage returns the creation-ordered slice [(page-1)*size, ...+size).
	// page and size must already be validated to be >= 1 by the caller;
	// pages past the end yield an empty slice, never an error.
	ListPage(ctx context.Context, page, size int) ([]models.Post, error)
	Create(ctx context.Context, in CreatePostInput) (*models.Post, error)
	// GetAndBumpView returns the post and increments its view count by
	// exactly one as a side effect of every successful call.
	GetAndBumpView(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, in UpdatePostInput) (*models.Post, error)
	Delete(ctx context.Context, id uint, requesterNickname string) error
}

// CreatePostInput carries the fields for a new post.
type CreatePostInput struct {
	Title    string
	Content  string
	ImageURL string
	Writer   string
}

// UpdatePostInput is a partial update. Title and Content apply only when
// non-empty; ImageURL applies whenever the pointer is set, including to the
// empty string (explicit clearing). The asymmetry is a preserved behavior.
type UpdatePostInput struct {
	ID        uint
	Title     string
	Content   string
	ImageURL  *string
	Requester string
}

type postStore struct {
	db  *DB
	log *observability.StoreLogger
}

// NewPostStore creates a new PostStore backed by db.
func NewPostStore(db *DB) PostStore {
	return &postStore{db: db, log: observability.NewStoreLogger("posts")}
}

func (s *postStore) ListPage(_ context.Context, page, size int) ([]models.Post, error) {
	defer observability.TrackStoreOp("list", "posts")()

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	// Checked before multiplying: (page-1)*size and start+size can both
	// wrap negative for huge page or size values, which would slice with
	// bad bounds instead of yielding the empty page.
	if page-1 > (len(s.db.posts)-1)/size {
		return []models.Post{}, nil
	}
	start := (page - 1) * size
	if start >= len(s.db.posts) {
		return []models.Post{}, nil
	}
	end := len(s.db.posts)
	if size < end-start {
		end = start + size
	}

	out := make([]models.Post, 0, end-start)
	for _, p := range s.db.posts[start:end] {
		out = append(out, *p)
	}
	return out, nil
}

func (s *postStore) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	defer observability.TrackStoreOp("create", "posts")()

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	post := &models.Post{
		ID:        s.db.nextPostID,
		Title:     in.Title,
		Content:   in.Content,
		ImageURL:  in.ImageURL,
		Writer:    in.Writer,
		ViewCount: 0,
		LikeCount: 0,
		CreatedAt: s.db.now(),
	}
	s.db.nextPostID++
	s.db.posts = append(s.db.posts, post)

	s.log.LogMutation(ctx, "create", map[string]interface{}{"post_id": post.ID})

	out := *post
	return &out, nil
}

func (s *postStore) GetAndBumpView(_ context.Context, id uint) (*models.Post, error) {
	defer observability.TrackStoreOp("get_bump_view", "posts")()

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	post := s.db.postByIDLocked(id)
	if post == nil {
		return nil, models.NewNotFoundError("Post", id)
	}
	post.ViewCount++
	observability.PostViews.Inc()

	out := *post
	return &out, nil
}

func (s *postStore) Update(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	defer observability.TrackStoreOp("update", "posts")()

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	post := s.db.postByIDLocked(in.ID)
	if post == nil {
		return nil, models.NewNotFoundError("Post", in.ID)
	}
	if post.Writer != in.Requester {
		return nil, models.NewForbiddenError("Only the writer may update this post")
	}

	if in.Title != "" {
		post.Title = in.Title
	}
	if in.Content != "" {
		post.Content = in.Content
	}
	if in.ImageURL != nil {
		post.ImageURL = *in.ImageURL
	}

	s.log.LogMutation(ctx, "update", map[string]interface{}{"post_id": post.ID})

	out := *post
	return &out, nil
}

// Delete removes the post together with its comments and likes as one
// logically atomic step.
func (s *postStore) Delete(ctx context.Context, id uint, requesterNickname string) error {
	defer observability.TrackStoreOp("delete", "posts")()

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	post := s.db.postByIDLocked(id)
	if post == nil {
		return models.NewNotFoundError("Post", id)
	}
	if post.Writer != requesterNickname {
		return models.NewForbiddenError("Only the writer may delete this post")
	}

	s.db.deletePostCascadeLocked(id)
	s.log.LogMutation(ctx, "cascade_delete", map[string]interface{}{"post_id": id})
	return nil
}
