package store

import (
	"context"
	"fmt"
	"math"
	"testing"

	"plaza/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPosts(t *testing.T, posts PostStore, n int, writer string) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := posts.Create(context.Background(), CreatePostInput{
			Title:   fmt.Sprintf("post %d", i+1),
			Content: "content",
			Writer:  writer,
		})
		require.NoError(t, err)
	}
}

func TestListPagePaginationDeterminism(t *testing.T) {
	db := New()
	posts := NewPostStore(db)
	seedPosts(t, posts, 25, "alpha")
	ctx := context.Background()

	page, err := posts.ListPage(ctx, 2, 10)
	require.NoError(t, err)
	require.Len(t, page, 10)
	// Creation order, zero-indexed slice [10, 20).
	assert.Equal(t, "post 11", page[0].Title)
	assert.Equal(t, "post 20", page[9].Title)

	tail, err := posts.ListPage(ctx, 3, 10)
	require.NoError(t, err)
	assert.Len(t, tail, 5)

	empty, err := posts.ListPage(ctx, 4, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListPageExtremeBounds(t *testing.T) {
	db := New()
	posts := NewPostStore(db)
	seedPosts(t, posts, 3, "alpha")
	ctx := context.Background()

	tests := []struct {
		name     string
		page     int
		size     int
		expected int
	}{
		// (page-1)*size wraps negative without the pre-multiply guard.
		{"page near max", math.MaxInt/3 + 2, 3, 0},
		{"max page", math.MaxInt, 1, 0},
		{"max page and size", math.MaxInt, math.MaxInt, 0},
		// start+size would wrap negative when clamping end naively.
		{"max size on first page", 1, math.MaxInt, 3},
		{"max size past the end", 2, math.MaxInt, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := posts.ListPage(ctx, tt.page, tt.size)
			require.NoError(t, err)
			assert.Len(t, page, tt.expected)
		})
	}
}

func TestGetAndBumpViewMonotonicity(t *testing.T) {
	db := New()
	posts := NewPostStore(db)
	ctx := context.Background()

	created, err := posts.Create(ctx, CreatePostInput{Title: "t", Content: "c", Writer: "alpha"})
	require.NoError(t, err)
	assert.Zero(t, created.ViewCount)

	const reads = 5
	var last *models.Post
	for i := 0; i < reads; i++ {
		last, err = posts.GetAndBumpView(ctx, created.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, reads, last.ViewCount)

	_, err = posts.GetAndBumpView(ctx, 999)
	assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
}

func TestUpdatePostPartialFields(t *testing.T) {
	db := New()
	posts := NewPostStore(db)
	ctx := context.Background()

	created, err := posts.Create(ctx, CreatePostInput{
		Title:    "original title",
		Content:  "original content",
		ImageURL: "cover.png",
		Writer:   "alpha",
	})
	require.NoError(t, err)

	// Empty title and content mean "no change".
	updated, err := posts.Update(ctx, UpdatePostInput{
		ID:        created.ID,
		Title:     "",
		Content:   "",
		Requester: "alpha",
	})
	require.NoError(t, err)
	assert.Equal(t, "original title", updated.Title)
	assert.Equal(t, "original content", updated.Content)
	assert.Equal(t, "cover.png", updated.ImageURL)

	// A set ImageURL pointer applies even when empty: explicit clearing.
	empty := ""
	updated, err = posts.Update(ctx, UpdatePostInput{
		ID:        created.ID,
		Title:     "new title",
		ImageURL:  &empty,
		Requester: "alpha",
	})
	require.NoError(t, err)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, "original content", updated.Content)
	assert.Empty(t, updated.ImageURL)
}

func TestUpdatePostOwnership(t *testing.T) {
	db := New()
	posts := NewPostStore(db)
	ctx := context.Background()

	created, err := posts.Create(ctx, CreatePostInput{Title: "t", Content: "c", Writer: "alpha"})
	require.NoError(t, err)

	_, err = posts.Update(ctx, UpdatePostInput{ID: created.ID, Title: "x", Requester: "beta"})
	assert.Equal(t, models.CodeForbidden, models.CodeOf(err))

	_, err = posts.Update(ctx, UpdatePostInput{ID: 999, Title: "x", Requester: "alpha"})
	assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
}

func TestDeletePostOwnership(t *testing.T) {
	db := New()
	posts := NewPostStore(db)
	ctx := context.Background()

	created, err := posts.Create(ctx, CreatePostInput{Title: "t", Content: "c", Writer: "alpha"})
	require.NoError(t, err)

	err = posts.Delete(ctx, created.ID, "beta")
	assert.Equal(t, models.CodeForbidden, models.CodeOf(err))

	require.NoError(t, posts.Delete(ctx, created.ID, "alpha"))

	err = posts.Delete(ctx, created.ID, "alpha")
	assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
}

func TestPostIDsNeverReused(t *testing.T) {
	db := New()
	posts := NewPostStore(db)
	ctx := context.Background()

	first, err := posts.Create(ctx, CreatePostInput{Title: "t", Content: "c", Writer: "alpha"})
	require.NoError(t, err)
	require.NoError(t, posts.Delete(ctx, first.ID, "alpha"))

	second, err := posts.Create(ctx, CreatePostInput{Title: "t2", Content: "c", Writer: "alpha"})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}
