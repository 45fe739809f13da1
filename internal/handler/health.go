package handler

import (
	"net/http"
	"time"

	"github.com/deppfellow/foodgram/internal/lib/health"
	"github.com/deppfellow/foodgram/internal/middleware"
	"github.com/deppfellow/foodgram/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler serves /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// HealthResponse is the /status body.
type HealthResponse struct {
	Status      string                   `json:"status"`
	Timestamp   time.Time                `json:"timestamp"`
	Environment string                   `json:"environment"`
	Checks      map[string]health.Result `json:"checks"`
}

// CheckHealth runs every dependency probe now. It answers 200 when all
// required checks pass and 503 otherwise; optional checks (Redis) are
// reported without affecting the status code.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	report := h.server.Health.Run(c.Request().Context())

	response := HealthResponse{
		Status:      report.Status,
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      report.Checks,
	}

	if !report.Healthy() {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent("HealthCheckError", map[string]any{
				"check_type":        "overall",
				"operation":         "health_check",
				"error_type":        "overall_unhealthy",
				"total_duration_ms": time.Since(start).Milliseconds(),
			})
		}

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}
