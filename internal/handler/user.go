package handler

import (
	"strings"

	"github.com/deppfellow/foodgram/internal/model"
	"github.com/deppfellow/foodgram/internal/server"
	"github.com/deppfellow/foodgram/internal/service"
	"github.com/deppfellow/foodgram/internal/validation"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Handler
	users         *service.UserService
	subscriptions *service.SubscriptionService
}

func NewUserHandler(s *server.Server, users *service.UserService, subscriptions *service.SubscriptionService) *UserHandler {
	return &UserHandler{
		Handler:       NewHandler(s),
		users:         users,
		subscriptions: subscriptions,
	}
}

type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Username  string `json:"username" validate:"required,max=150,username"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
}

func (r *CreateUserRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.Username = strings.TrimSpace(r.Username)
	return validation.Struct(r)
}

func (h *UserHandler) CreateUser(c echo.Context, req *CreateUserRequest) (*model.CreatedUser, error) {
	return h.users.Create(c.Request().Context(), service.CreateUserInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
}

type ListUsersRequest struct {
	PageQuery
}

func (r *ListUsersRequest) Validate() error {
	return validation.Struct(r)
}

func (h *UserHandler) ListUsers(c echo.Context, req *ListUsersRequest) (*model.PaginatedResponse[model.UserProfile], error) {
	page := req.Pagination()
	profiles, total, err := h.users.List(c.Request().Context(), currentUser(c), page)
	if err != nil {
		return nil, err
	}
	return paginate(c, page, total, profiles), nil
}

func (h *UserHandler) GetUser(c echo.Context, req *IDRequest) (*model.UserProfile, error) {
	return h.users.Get(c.Request().Context(), currentUser(c), req.ID)
}

func (h *UserHandler) Me(c echo.Context, _ *EmptyRequest) (*model.UserProfile, error) {
	return h.users.Me(currentUser(c)), nil
}

type SetAvatarRequest struct {
	Avatar string `json:"avatar" validate:"required"`
}

func (r *SetAvatarRequest) Validate() error {
	return validation.Struct(r)
}

func (h *UserHandler) SetAvatar(c echo.Context, req *SetAvatarRequest) (*model.AvatarResponse, error) {
	return h.users.SetAvatar(c.Request().Context(), currentUser(c), req.Avatar)
}

func (h *UserHandler) DeleteAvatar(c echo.Context, _ *EmptyRequest) error {
	return h.users.DeleteAvatar(c.Request().Context(), currentUser(c))
}

type SetPasswordRequest struct {
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
	CurrentPassword string `json:"current_password" validate:"required"`
}

func (r *SetPasswordRequest) Validate() error {
	return validation.Struct(r)
}

func (h *UserHandler) SetPassword(c echo.Context, req *SetPasswordRequest) error {
	return h.users.SetPassword(c.Request().Context(), currentUser(c), req.CurrentPassword, req.NewPassword)
}

// --- Subscriptions -----------------------------------------------------------

type ListSubscriptionsRequest struct {
	PageQuery
}

func (r *ListSubscriptionsRequest) Validate() error {
	return validation.Struct(r)
}

func (h *UserHandler) ListSubscriptions(c echo.Context, req *ListSubscriptionsRequest) (*model.PaginatedResponse[model.AuthorCard], error) {
	limit, err := recipesLimit(c)
	if err != nil {
		return nil, err
	}

	page := req.Pagination()
	cards, total, err := h.subscriptions.List(c.Request().Context(), currentUser(c), page, limit)
	if err != nil {
		return nil, err
	}
	return paginate(c, page, total, cards), nil
}

func (h *UserHandler) Subscribe(c echo.Context, req *IDRequest) (*model.AuthorCard, error) {
	limit, err := recipesLimit(c)
	if err != nil {
		return nil, err
	}
	return h.subscriptions.Subscribe(c.Request().Context(), currentUser(c), req.ID, limit)
}

func (h *UserHandler) Unsubscribe(c echo.Context, req *IDRequest) error {
	return h.subscriptions.Unsubscribe(c.Request().Context(), currentUser(c), req.ID)
}
