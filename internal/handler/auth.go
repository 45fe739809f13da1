package handler

import (
	"github.com/deppfellow/foodgram/internal/middleware"
	"github.com/deppfellow/foodgram/internal/model"
	"github.com/deppfellow/foodgram/internal/server"
	"github.com/deppfellow/foodgram/internal/service"
	"github.com/deppfellow/foodgram/internal/validation"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Handler: NewHandler(s), auth: auth}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validation.Struct(r)
}

// Login exchanges credentials for the user's token.
func (h *AuthHandler) Login(c echo.Context, req *LoginRequest) (*model.TokenResponse, error) {
	return h.auth.Login(c.Request().Context(), req.Email, req.Password)
}

// Logout revokes the token the request was made with.
func (h *AuthHandler) Logout(c echo.Context, _ *EmptyRequest) error {
	return h.auth.Logout(c.Request().Context(), middleware.GetToken(c))
}
