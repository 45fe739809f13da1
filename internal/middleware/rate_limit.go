package middleware

import (
	"github.com/deppfellow/foodgram/internal/errs"
	"github.com/deppfellow/foodgram/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware throttles clients by IP with a token bucket per
// visitor. State is kept in memory, so limits apply per process.
type RateLimitMiddleware struct {
	server *server.Server
	store  middleware.RateLimiterStore
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	limit := rate.Limit(s.Config.Server.RateLimit)
	return &RateLimitMiddleware{
		server: s,
		store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:  limit,
			Burst: max(int(limit)*2, 1),
		}),
	}
}

// Limit answers 429 once a client exceeds its budget.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: r.store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewBadRequestError("Could not identify client", false, nil, nil)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("client", identifier).Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError("Request was throttled. Try again later")
		},
	})
}

// RecordRateLimitHit sends a RateLimitHit event to New Relic when enabled.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}
