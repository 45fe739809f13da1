package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/deppfellow/foodgram/internal/server"
	"github.com/labstack/echo/v4"
)

// StaticDir holds the docs UI (openapi.html) and the API description (openapi.json).
const StaticDir = "static"

// OpenAPIHandler serves the API documentation UI.
type OpenAPIHandler struct {
	Handler
	dir string
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		dir:     StaticDir,
	}
}

// ServeOpenAPIUI serves static/openapi.html, uncached so doc edits show up
// on reload.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	templateBytes, err := os.ReadFile(filepath.Join(h.dir, "openapi.html"))
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTML(http.StatusOK, string(templateBytes)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
