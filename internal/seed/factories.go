// Package seed creates demo data for development and testing. It drives the
// same store interfaces the HTTP layer uses, so seeded data obeys every
// invariant the application enforces.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"plaza/internal/models"
	"plaza/internal/store"

	"github.com/brianvoe/gofakeit/v6"
)

// maxTitleRunes mirrors the post title limit enforced at signup time.
const (
	maxTitleRunes    = 26
	maxNicknameRunes = 10
)

// Factory builds domain entities through the store layer.
type Factory struct {
	users      store.UserStore
	posts      store.PostStore
	engagement store.EngagementStore
	rng        *rand.Rand
}

// NewFactory creates a Factory bound to the given stores.
func NewFactory(users store.UserStore, posts store.PostStore, engagement store.EngagementStore) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		users:      users,
		posts:      posts,
		engagement: engagement,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// fakeNickname generates a display name that passes validation.
func (f *Factory) fakeNickname() string {
	name := strings.ToLower(gofakeit.Username())
	name = strings.Map(func(r rune) rune {
		if r == '.' || r == '-' {
			return '_'
		}
		return r
	}, name)
	return truncateRunes(name, maxNicknameRunes)
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated input before saving.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*store.CreateUserInput)) (*models.User, error) {
	in := store.CreateUserInput{
		Email:        gofakeit.Email(),
		Password:     "password123",
		Nickname:     f.fakeNickname(),
		ProfileImage: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(&in)
	}
	return f.users.Create(ctx, in)
}

// CreatePost constructs and persists a sample post authored by the given user.
func (f *Factory) CreatePost(ctx context.Context, author *models.User, overrides ...func(*store.CreatePostInput)) (*models.Post, error) {
	in := store.CreatePostInput{
		Title:    truncateRunes(gofakeit.Sentence(3), maxTitleRunes),
		Content:  gofakeit.Paragraph(1, 3, 5, "\n"),
		ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		Writer:   author.Nickname,
	}
	for _, override := range overrides {
		override(&in)
	}
	return f.posts.Create(ctx, in)
}

// CreateComment persists a sample comment by the given user on the given post.
func (f *Factory) CreateComment(ctx context.Context, post *models.Post, author *models.User) (*models.Comment, error) {
	return f.engagement.CreateComment(ctx, post.ID, author.ID, gofakeit.Sentence(8))
}

// Like sets (not toggles) the like relation for the pair. Seeding may visit
// the same pair twice; a second toggle would silently undo the first.
func (f *Factory) Like(ctx context.Context, post *models.Post, user *models.User) error {
	if f.engagement.IsLiked(ctx, user.ID, post.ID) {
		return nil
	}
	_, err := f.engagement.ToggleLike(ctx, post.ID, user.ID)
	return err
}
