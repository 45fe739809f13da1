package middleware

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/deppfellow/foodgram/internal/errs"
	"github.com/deppfellow/foodgram/internal/model"
	"github.com/deppfellow/foodgram/internal/server"
	"github.com/labstack/echo/v4"
)

const (
	// AuthScheme is the Authorization header scheme: "Token <key>".
	AuthScheme = "Token"

	// UserKey holds the authenticated *model.User in the echo context.
	UserKey = "user"

	// TokenKey holds the raw token so logout can revoke it.
	TokenKey = "auth_token"
)

// Authenticator resolves a token to its user.
// The auth service implements it.
type Authenticator interface {
	Authenticate(ctx context.Context, key string) (*model.User, error)
}

// AuthMiddleware authenticates requests carrying "Authorization: Token <key>".
type AuthMiddleware struct {
	server *server.Server
	auth   Authenticator
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server, auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		auth:   auth,
	}
}

// RequireAuth rejects requests without a valid token with 401.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		key, ok := tokenFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return errs.NewUnauthorizedError("Authentication credentials were not provided", false)
		}

		if err := auth.authenticate(c, key); err != nil {
			auth.server.Logger.Warn().
				Err(err).
				Str("function", "RequireAuth").
				Str("request_id", GetRequestID(c)).
				Dur("duration", time.Since(start)).
				Msg("token rejected")
			return err
		}

		return next(c)
	}
}

// OptionalAuth attaches the user when a valid token is sent and lets
// anonymous requests through. A token that is sent but invalid is still
// rejected, the client asked to be somebody.
func (auth *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key, ok := tokenFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return next(c)
		}

		if err := auth.authenticate(c, key); err != nil {
			return err
		}
		return next(c)
	}
}

// RequireStaff must run after RequireAuth.
func (auth *AuthMiddleware) RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := GetUser(c)
		if user == nil {
			return errs.NewUnauthorizedError("Authentication credentials were not provided", false)
		}
		if !user.IsStaff && !user.IsSuperuser {
			return errs.NewForbiddenError("You do not have permission to perform this action", false)
		}
		return next(c)
	}
}

func (auth *AuthMiddleware) authenticate(c echo.Context, key string) error {
	user, err := auth.auth.Authenticate(c.Request().Context(), key)
	if err != nil {
		return err
	}

	c.Set(UserKey, user)
	c.Set(TokenKey, key)
	// String copy for logging and tracing.
	c.Set(UserIDKey, strconv.FormatInt(user.ID, 10))

	return nil
}

// tokenFromHeader parses "Token <key>". The scheme is case-insensitive.
func tokenFromHeader(header string) (string, bool) {
	scheme, key, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, AuthScheme) {
		return "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}
	return key, true
}

// GetUser returns the authenticated user or nil for anonymous requests.
func GetUser(c echo.Context) *model.User {
	if user, ok := c.Get(UserKey).(*model.User); ok {
		return user
	}
	return nil
}

// GetToken returns the token the request was authenticated with.
func GetToken(c echo.Context) string {
	if key, ok := c.Get(TokenKey).(string); ok {
		return key
	}
	return ""
}
