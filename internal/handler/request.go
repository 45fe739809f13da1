package handler

import (
	"strconv"
	"strings"

	"github.com/deppfellow/foodgram/internal/errs"
	"github.com/deppfellow/foodgram/internal/middleware"
	"github.com/deppfellow/foodgram/internal/model"
	"github.com/deppfellow/foodgram/internal/validation"
	"github.com/labstack/echo/v4"
)

// EmptyRequest is the payload of endpoints that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error { return nil }

// IDRequest carries the :id path parameter.
type IDRequest struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

func (r *IDRequest) Validate() error {
	return validation.Struct(r)
}

// currentUser is non-nil behind RequireAuth.
func currentUser(c echo.Context) *model.User {
	return middleware.GetUser(c)
}

// parseFlag reads the boolean query values the frontend sends: "1" or "true".
func parseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true":
		return true
	default:
		return false
	}
}

// recipesLimit reads ?recipes_limit. echo only binds query parameters for
// GET, DELETE and HEAD, so POST /subscribe reads it by hand.
func recipesLimit(c echo.Context) (int, error) {
	raw := c.QueryParam("recipes_limit")
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, errs.NewFieldError("recipes_limit", "must be a non-negative integer")
	}
	return limit, nil
}
