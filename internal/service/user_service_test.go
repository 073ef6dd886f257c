package service

import (
	"context"
	"testing"

	"plaza/internal/models"
	"plaza/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userStoreStub is a stub for store.UserStore.
type userStoreStub struct {
	createFn       func(context.Context, store.CreateUserInput) (*models.User, error)
	authenticateFn func(context.Context, string, string) (*models.User, error)
	getByIDFn      func(context.Context, uint) (models.UserProfile, error)
	profileImageFn func(context.Context, string) string
	deleteFn       func(context.Context, uint) error
}

func (s *userStoreStub) Create(ctx context.Context, in store.CreateUserInput) (*models.User, error) {
	return s.createFn(ctx, in)
}
func (s *userStoreStub) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	return s.authenticateFn(ctx, email, password)
}
func (s *userStoreStub) GetByID(ctx context.Context, id uint) (models.UserProfile, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userStoreStub) ProfileImageByNickname(ctx context.Context, nickname string) string {
	return s.profileImageFn(ctx, nickname)
}
func (s *userStoreStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserStore() *userStoreStub {
	return &userStoreStub{
		createFn: func(_ context.Context, in store.CreateUserInput) (*models.User, error) {
			return &models.User{ID: 1, Email: in.Email, Nickname: in.Nickname}, nil
		},
		authenticateFn: func(_ context.Context, _, _ string) (*models.User, error) {
			return &models.User{ID: 1}, nil
		},
		getByIDFn: func(_ context.Context, id uint) (models.UserProfile, error) {
			return models.UserProfile{ID: id}, nil
		},
		profileImageFn: func(_ context.Context, _ string) string { return "" },
		deleteFn:       func(_ context.Context, _ uint) error { return nil },
	}
}

func TestSignupValidation(t *testing.T) {
	tests := []struct {
		name  string
		input SignupInput
	}{
		{"bad email", SignupInput{Email: "nope", Password: "password123", Nickname: "alpha"}},
		{"short password", SignupInput{Email: "a@example.com", Password: "short", Nickname: "alpha"}},
		{"missing nickname", SignupInput{Email: "a@example.com", Password: "password123"}},
		{"long nickname", SignupInput{Email: "a@example.com", Password: "password123", Nickname: "elevenchars"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := noopUserStore()
			stub.createFn = func(_ context.Context, _ store.CreateUserInput) (*models.User, error) {
				t.Fatal("store must not be reached on invalid input")
				return nil, nil
			}
			svc := NewUserService(stub)

			_, err := svc.Signup(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, models.CodeValidation, models.CodeOf(err))
		})
	}
}

func TestSignupPassesThrough(t *testing.T) {
	stub := noopUserStore()
	var got store.CreateUserInput
	stub.createFn = func(_ context.Context, in store.CreateUserInput) (*models.User, error) {
		got = in
		return &models.User{ID: 7, Email: in.Email, Nickname: in.Nickname}, nil
	}
	svc := NewUserService(stub)

	user, err := svc.Signup(context.Background(), SignupInput{
		Email:        "a@example.com",
		Password:     "password123",
		Nickname:     "alpha",
		ProfileImage: "alpha.png",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, "alpha.png", got.ProfileImage)
}

func TestSignupDuplicateEmailSurfaces(t *testing.T) {
	stub := noopUserStore()
	stub.createFn = func(_ context.Context, in store.CreateUserInput) (*models.User, error) {
		return nil, models.NewDuplicateEmailError(in.Email)
	}
	svc := NewUserService(stub)

	_, err := svc.Signup(context.Background(), SignupInput{
		Email:    "a@example.com",
		Password: "password123",
		Nickname: "alpha",
	})
	assert.Equal(t, models.CodeDuplicateEmail, models.CodeOf(err))
}

func TestLoginRequiresCredentials(t *testing.T) {
	svc := NewUserService(noopUserStore())

	_, err := svc.Login(context.Background(), LoginInput{Email: "", Password: "pw"})
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))

	_, err = svc.Login(context.Background(), LoginInput{Email: "a@example.com", Password: ""})
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))
}

func TestLoginSurfacesInvalidCredentials(t *testing.T) {
	stub := noopUserStore()
	stub.authenticateFn = func(_ context.Context, _, _ string) (*models.User, error) {
		return nil, models.NewInvalidCredentialsError()
	}
	svc := NewUserService(stub)

	_, err := svc.Login(context.Background(), LoginInput{Email: "a@example.com", Password: "nope"})
	assert.Equal(t, models.CodeInvalidCredentials, models.CodeOf(err))
}
