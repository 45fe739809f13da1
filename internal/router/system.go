package router

import (
	"github.com/deppfellow/foodgram/internal/handler"
	"github.com/deppfellow/foodgram/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes mounts the endpoints outside the API: health,
// docs and the files under the static and media roots.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, s *server.Server) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", handler.StaticDir)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)

	r.Static(s.Storage.MediaURL(), s.Storage.Root())
}
