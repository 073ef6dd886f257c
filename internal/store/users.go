package store

import (
	"context"

	"plaza/internal/models"
	"plaza/internal/observability"
)

// UserStore holds user rows and resolves credentials and identities.
type UserStore interface {
	Create(ctx context.Context, in CreateUserInput) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (models.UserProfile, error)
	ProfileImageByNickname(ctx context.Context, nickname string) string
	Delete(ctx context.Context, id uint) error
}

// CreateUserInput carries the fields for a signup.
type CreateUserInput struct {
	Email        string
	Password     string
	Nickname     string
	ProfileImage string
}

type userStore struct {
	db  *DB
	log *observability.StoreLogger
}

// NewUserStore creates a new UserStore backed by db.
func NewUserStore(db *DB) UserStore {
	return &userStore{db: db, log: observability.NewStoreLogger("users")}
}

func (s *userStore) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	defer observability.TrackStoreOp("create", "users")()

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, u := range s.db.users {
		if u.Email == in.Email {
			return nil, models.NewDuplicateEmailError(in.Email)
		}
	}

	user := &models.User{
		ID:           s.db.nextUserID,
		Email:        in.Email,
		Password:     in.Password,
		Nickname:     in.Nickname,
		ProfileImage: in.ProfileImage,
		CreatedAt:    s.db.now(),
	}
	s.db.nextUserID++
	s.db.users = append(s.db.users, user)

	s.log.LogMutation(ctx, "create", map[string]interface{}{"user_id": user.ID})

	out := *user
	return &out, nil
}

func (s *userStore) Authenticate(_ context.Context, email, password string) (*models.User, error) {
	defer observability.TrackStoreOp("authenticate", "users")()

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, u := range s.db.users {
		if u.Email == email && u.Password == password {
			out := *u
			return &out, nil
		}
	}
	return nil, models.NewInvalidCredentialsError()
}

func (s *userStore) GetByID(_ context.Context, id uint) (models.UserProfile, error) {
	defer observability.TrackStoreOp("get", "users")()

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if u := s.db.userByIDLocked(id); u != nil {
		return u.Public(), nil
	}
	return models.UserProfile{}, models.NewNotFoundError("User", id)
}

// ProfileImageByNickname is a best-effort lookup used for denormalized
// display; nicknames are not unique, so the first match wins.
func (s *userStore) ProfileImageByNickname(_ context.Context, nickname string) string {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return s.db.profileImageByNicknameLocked(nickname)
}

// Delete removes the user and everything the user owns: posts (with their
// comments and likes), then the user's comments and likes on surviving posts,
// then the user row itself, all in one critical section.
func (s *userStore) Delete(ctx context.Context, id uint) error {
	defer observability.TrackStoreOp("delete", "users")()

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	user := s.db.userByIDLocked(id)
	if user == nil {
		return models.NewNotFoundError("User", id)
	}

	s.db.deleteUserCascadeLocked(user)
	s.log.LogMutation(ctx, "cascade_delete", map[string]interface{}{"user_id": id})
	return nil
}
