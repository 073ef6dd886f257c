package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"plaza/internal/models"
	"plaza/internal/store"

	"gopkg.in/yaml.v3"
)

// Options configuration for the seeder.
type Options struct {
	NumUsers        int
	PostsPerUser    int
	CommentsPerPost int
	LikeProbability float64
	PresetFile      string
}

// DefaultOptions returns a small but lively demo data set.
func DefaultOptions() Options {
	return Options{
		NumUsers:        8,
		PostsPerUser:    3,
		CommentsPerPost: 2,
		LikeProbability: 0.4,
	}
}

// Preset describes a deterministic data mix loaded from YAML. It overrides
// the random knobs in Options when a preset file is configured.
type Preset struct {
	Users []PresetUser `yaml:"users"`
}

// PresetUser is one seeded account plus its authored posts.
type PresetUser struct {
	Email    string       `yaml:"email"`
	Password string       `yaml:"password"`
	Nickname string       `yaml:"nickname"`
	Posts    []PresetPost `yaml:"posts"`
}

// PresetPost is one seeded post.
type PresetPost struct {
	Title    string   `yaml:"title"`
	Content  string   `yaml:"content"`
	ImageURL string   `yaml:"image_url"`
	Comments []string `yaml:"comments"`
}

// LoadPreset parses a preset definition from a YAML file.
func LoadPreset(path string) (*Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read preset: %w", err)
	}
	var p Preset
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("seed: parse preset: %w", err)
	}
	return &p, nil
}

// Run populates the store with demo data. When opts.PresetFile is set the
// YAML preset drives the content; otherwise random data is generated from
// the numeric knobs.
func Run(ctx context.Context, logger *slog.Logger, f *Factory, opts Options) error {
	if opts.PresetFile != "" {
		preset, err := LoadPreset(opts.PresetFile)
		if err != nil {
			return err
		}
		return runPreset(ctx, logger, f, preset)
	}
	return runRandom(ctx, logger, f, opts)
}

func runRandom(ctx context.Context, logger *slog.Logger, f *Factory, opts Options) error {
	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		u, err := f.CreateUser(ctx)
		if err != nil {
			return fmt.Errorf("seed: create user: %w", err)
		}
		users = append(users, u)
	}

	posts := make([]*models.Post, 0, opts.NumUsers*opts.PostsPerUser)
	for _, u := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			p, err := f.CreatePost(ctx, u)
			if err != nil {
				return fmt.Errorf("seed: create post: %w", err)
			}
			posts = append(posts, p)
		}
	}

	for _, p := range posts {
		for i := 0; i < opts.CommentsPerPost; i++ {
			commenter := users[f.rng.Intn(len(users))]
			if _, err := f.CreateComment(ctx, p, commenter); err != nil {
				return fmt.Errorf("seed: create comment: %w", err)
			}
		}
		for _, u := range users {
			if f.rng.Float64() < opts.LikeProbability {
				if err := f.Like(ctx, p, u); err != nil {
					return fmt.Errorf("seed: like post: %w", err)
				}
			}
		}
	}

	logger.Info("demo data seeded",
		slog.Int("users", len(users)),
		slog.Int("posts", len(posts)),
	)
	return nil
}

func runPreset(ctx context.Context, logger *slog.Logger, f *Factory, preset *Preset) error {
	var postCount int
	accounts := make(map[string]*models.User, len(preset.Users))

	for _, pu := range preset.Users {
		pu := pu
		u, err := f.CreateUser(ctx, func(in *store.CreateUserInput) {
			in.Email = pu.Email
			in.Nickname = pu.Nickname
			if pu.Password != "" {
				in.Password = pu.Password
			}
		})
		if err != nil {
			return fmt.Errorf("seed: preset user %q: %w", pu.Nickname, err)
		}
		accounts[pu.Nickname] = u
	}

	for _, pu := range preset.Users {
		author := accounts[pu.Nickname]
		for _, pp := range pu.Posts {
			pp := pp
			post, err := f.CreatePost(ctx, author, func(in *store.CreatePostInput) {
				in.Title = pp.Title
				in.Content = pp.Content
				in.ImageURL = pp.ImageURL
			})
			if err != nil {
				return fmt.Errorf("seed: preset post %q: %w", pp.Title, err)
			}
			postCount++
			for i, text := range pp.Comments {
				// Spread comments round-robin over the preset accounts.
				commenter := accounts[preset.Users[i%len(preset.Users)].Nickname]
				if _, err := f.engagement.CreateComment(ctx, post.ID, commenter.ID, text); err != nil {
					return fmt.Errorf("seed: preset comment on %q: %w", pp.Title, err)
				}
			}
		}
	}

	logger.Info("preset data seeded",
		slog.Int("users", len(accounts)),
		slog.Int("posts", postCount),
	)
	return nil
}
