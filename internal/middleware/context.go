package middleware

import (
	"context"

	"github.com/deppfellow/foodgram/internal/logger"
	"github.com/deppfellow/foodgram/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

type loggerContextKey struct{}

const (
	// UserIDKey is the string form of the authenticated user id, set by the
	// auth middleware and picked up by logging and tracing.
	UserIDKey = "user_id"

	// LoggerKey stores the request-scoped logger in the echo context.
	LoggerKey = "logger"
)

// ContextEnhancer builds a request-scoped logger carrying request_id,
// method, path, ip and, when present, the New Relic trace ids and user_id.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext stores the logger in both the echo context and the request
// context, so code that only sees a context.Context can use LoggerFromContext.
//
// Route group auth runs after this, so user_id is attached lazily by GetLogger.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			c.Set(LoggerKey, &contextLogger)

			ctx := context.WithValue(c.Request().Context(), loggerContextKey{}, &contextLogger)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetUserID returns the authenticated user id as a string, "" if anonymous.
func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetLogger returns the request-scoped logger, a no-op logger when
// EnhanceContext did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	l, ok := c.Get(LoggerKey).(*zerolog.Logger)
	if !ok {
		nop := zerolog.Nop()
		return &nop
	}

	if userID := GetUserID(c); userID != "" {
		withUser := l.With().Str("user_id", userID).Logger()
		return &withUser
	}
	return l
}

// LoggerFromContext is GetLogger for code without an echo.Context.
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(loggerContextKey{}).(*zerolog.Logger); ok {
		return l
	}
	nop := zerolog.Nop()
	return &nop
}
