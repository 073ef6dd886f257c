// Package service contains the application's use-case layer between HTTP
// handlers and the store.
package service

import (
	"context"

	"plaza/internal/models"
	"plaza/internal/store"
	"plaza/internal/validation"
)

type UserService struct {
	users store.UserStore
}

type SignupInput struct {
	Email        string
	Password     string
	Nickname     string
	ProfileImage string
}

type LoginInput struct {
	Email    string
	Password string
}

func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateNickname(in.Nickname); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	return s.users.Create(ctx, store.CreateUserInput{
		Email:        in.Email,
		Password:     in.Password,
		Nickname:     in.Nickname,
		ProfileImage: in.ProfileImage,
	})
}

func (s *UserService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}
	return s.users.Authenticate(ctx, in.Email, in.Password)
}

func (s *UserService) Get(ctx context.Context, id uint) (models.UserProfile, error) {
	return s.users.GetByID(ctx, id)
}

// DeleteAccount removes the user and cascades over everything they own.
func (s *UserService) DeleteAccount(ctx context.Context, id uint) error {
	return s.users.Delete(ctx, id)
}
