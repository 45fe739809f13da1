package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/foodgram/internal/errs"
	"github.com/deppfellow/foodgram/internal/lib/job"
	"github.com/deppfellow/foodgram/internal/lib/storage"
	"github.com/deppfellow/foodgram/internal/model"
	"github.com/deppfellow/foodgram/internal/server"
)

// UserService manages accounts, profiles and avatars.
type UserService struct {
	server  *server.Server
	auth    *AuthService
	users   UserStore
	present presenter
}

func NewUserService(s *server.Server, stores Stores, auth *AuthService) *UserService {
	return &UserService{
		server:  s,
		auth:    auth,
		users:   stores.Users,
		present: presenter{stores: stores, storage: s.Storage},
	}
}

// CreateUserInput is a validated registration request.
type CreateUserInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// Create registers a user and queues the welcome email.
// A taken email or username surfaces as a 409 from the unique constraint.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*model.CreatedUser, error) {
	hash, err := s.auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        in.Email,
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.enqueueWelcome(ctx, user)

	return &model.CreatedUser{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

// enqueueWelcome never fails registration; a lost email is only logged.
func (s *UserService) enqueueWelcome(ctx context.Context, user *model.User) {
	if s.server.Job == nil {
		return
	}

	task, err := job.NewWelcomeEmailTask(user.Email, user.FirstName, user.Username)
	if err == nil {
		err = s.server.Job.Enqueue(ctx, task)
	}
	if err != nil {
		s.server.Logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to enqueue welcome email")
	}
}

// List returns one page of profiles ordered by username.
func (s *UserService) List(ctx context.Context, viewer *model.User, page model.Pagination) ([]model.UserProfile, int, error) {
	users, total, err := s.users.ListUsers(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	profiles, err := s.present.profiles(ctx, viewerID(viewer), users)
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (s *UserService) Get(ctx context.Context, viewer *model.User, id int64) (*model.UserProfile, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profiles, err := s.present.profiles(ctx, viewerID(viewer), []model.User{*user})
	if err != nil {
		return nil, err
	}
	return &profiles[0], nil
}

// Me is the current user's own profile; nobody is subscribed to themselves.
func (s *UserService) Me(user *model.User) *model.UserProfile {
	profile := s.present.profile(*user, false)
	return &profile
}

// SetAvatar stores a new avatar and removes the previous file.
func (s *UserService) SetAvatar(ctx context.Context, user *model.User, encoded string) (*model.AvatarResponse, error) {
	path, err := s.server.Storage.SaveBase64(storage.DirAvatars, encoded)
	if err != nil {
		return nil, imageError("avatar", err)
	}

	if err := s.users.UpdateAvatar(ctx, user.ID, path); err != nil {
		s.server.Storage.Delete(path)
		return nil, err
	}
	s.server.Storage.Delete(user.Avatar)

	return &model.AvatarResponse{Avatar: s.server.Storage.URL(path)}, nil
}

// DeleteAvatar clears the avatar.
func (s *UserService) DeleteAvatar(ctx context.Context, user *model.User) error {
	if err := s.users.UpdateAvatar(ctx, user.ID, ""); err != nil {
		return err
	}
	s.server.Storage.Delete(user.Avatar)
	return nil
}

// SetPassword replaces the password after checking the current one.
func (s *UserService) SetPassword(ctx context.Context, user *model.User, current, next string) error {
	if !CheckPassword(user.PasswordHash, current) {
		return errs.NewFieldError("current_password", "is incorrect")
	}

	hash, err := s.auth.HashPassword(next)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	return nil
}

// imageError turns a storage decoding failure into a field error;
// anything else passes through.
func imageError(field string, err error) error {
	switch {
	case errors.Is(err, storage.ErrEmptyImage):
		return errs.NewFieldError(field, "is required")
	case errors.Is(err, storage.ErrInvalidBase64),
		errors.Is(err, storage.ErrNotAnImage),
		errors.Is(err, storage.ErrImageTooLarge):
		return errs.NewFieldError(field, err.Error())
	default:
		return err
	}
}
