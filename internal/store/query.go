package store

import (
	"context"

	"plaza/internal/models"
	"plaza/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// Query assembles read-models by joining post, comment and user data inside a
// single critical section, so each response reflects one consistent snapshot.
type Query interface {
	// PostsPage validates page and size (both must be >= 1, otherwise
	// InvalidArgument) and returns the page with live comment counts and
	// writer profile images attached.
	PostsPage(ctx context.Context, page, size int) ([]models.PostSummary, error)
	// PostDetail fetches the post, bumps its view count, and attaches the
	// viewer's like state and the writer's profile image.
	PostDetail(ctx context.Context, postID, viewerID uint) (*models.PostDetail, error)
}

type query struct {
	db *DB
}

// NewQuery creates a Query backed by db.
func NewQuery(db *DB) Query {
	return &query{db: db}
}

func (q *query) PostsPage(ctx context.Context, page, size int) ([]models.PostSummary, error) {
	defer observability.TrackStoreOp("posts_page", "query")()
	span, _ := observability.NewSpan(ctx, "query.PostsPage")
	defer span.End()
	span.AddAttributes(
		attribute.Int("page", page),
		attribute.Int("size", size),
	)

	// An earlier revision silently returned an empty page here; the
	// corrected contract fails loudly on malformed parameters.
	if page < 1 || size < 1 {
		err := models.NewInvalidArgumentError("page and size must be >= 1")
		span.SetError(err)
		return nil, err
	}

	q.db.mu.RLock()
	defer q.db.mu.RUnlock()

	// Checked before multiplying: (page-1)*size and start+size can both
	// wrap negative for huge page or size values, which would slice with
	// bad bounds instead of yielding the empty page.
	if page-1 > (len(q.db.posts)-1)/size {
		return []models.PostSummary{}, nil
	}
	start := (page - 1) * size
	if start >= len(q.db.posts) {
		return []models.PostSummary{}, nil
	}
	end := len(q.db.posts)
	if size < end-start {
		end = start + size
	}

	out := make([]models.PostSummary, 0, end-start)
	for _, p := range q.db.posts[start:end] {
		out = append(out, models.PostSummary{
			Post:               *p,
			CommentCount:       q.db.commentCountLocked(p.ID),
			WriterProfileImage: q.db.profileImageByNicknameLocked(p.Writer),
		})
	}
	return out, nil
}

func (q *query) PostDetail(ctx context.Context, postID, viewerID uint) (*models.PostDetail, error) {
	defer observability.TrackStoreOp("post_detail", "query")()
	span, _ := observability.NewSpan(ctx, "query.PostDetail")
	defer span.End()
	span.AddAttributes(attribute.Int("post_id", int(postID)))

	q.db.mu.Lock()
	defer q.db.mu.Unlock()

	post := q.db.postByIDLocked(postID)
	if post == nil {
		err := models.NewNotFoundError("Post", postID)
		span.SetError(err)
		return nil, err
	}
	post.ViewCount++
	observability.PostViews.Inc()

	return &models.PostDetail{
		Post:               *post,
		IsLiked:            q.db.likeIndexLocked(viewerID, postID) >= 0,
		WriterProfileImage: q.db.profileImageByNicknameLocked(post.Writer),
	}, nil
}
