package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/foodgram/internal/config"
	"github.com/deppfellow/foodgram/internal/errs"
	"github.com/deppfellow/foodgram/internal/server"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGlobal() *GlobalMiddlewares {
	logger := zerolog.Nop()
	return NewGlobalMiddlewares(&server.Server{
		Logger: &logger,
		Config: &config.Config{Storage: config.DefaultStorageConfig()},
	})
}

func handleError(t *testing.T, method string, err error) (*httptest.ResponseRecorder, errs.HTTPError) {
	t.Helper()
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(method, "/", nil), rec)

	newGlobal().GlobalErrorHandler(err, c)

	var body errs.HTTPError
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestGlobalErrorHandler(t *testing.T) {
	cases := map[string]struct {
		err     error
		status  int
		code    string
		message string
	}{
		"http error": {
			err:    errs.NewForbiddenError("nope", true),
			status: http.StatusForbidden, code: "FORBIDDEN", message: "nope",
		},
		"missing row": {
			err:    fmt.Errorf("table:recipes:%w", pgx.ErrNoRows),
			status: http.StatusNotFound, code: "NOT_FOUND", message: "Recipe not found",
		},
		"unique violation": {
			err:    fmt.Errorf("insert tag: %w", &pgconn.PgError{Code: "23505", TableName: "tags", ConstraintName: "tags_slug_key"}),
			status: http.StatusConflict, code: "TAG_ALREADY_EXISTS", message: "A Tag with this Slug already exists",
		},
		"foreign key": {
			err:    &pgconn.PgError{Code: "23503", TableName: "recipe_tags", ColumnName: "tag_id"},
			status: http.StatusBadRequest, code: "RECIPE_TAG_NOT_FOUND", message: "The referenced Tag does not exist",
		},
		"unknown route": {
			err:    echo.ErrNotFound,
			status: http.StatusNotFound, code: "NOT_FOUND", message: "Route not found",
		},
		"wrong method": {
			err:    echo.ErrMethodNotAllowed,
			status: http.StatusMethodNotAllowed, code: "METHOD_NOT_ALLOWED", message: "Method not allowed",
		},
		"echo error": {
			err:    echo.NewHTTPError(http.StatusRequestEntityTooLarge, "too big"),
			status: http.StatusRequestEntityTooLarge, code: "REQUEST_ENTITY_TOO_LARGE", message: "too big",
		},
		"anything else": {
			err:    errors.New("disk on fire"),
			status: http.StatusInternalServerError, code: "INTERNAL_SERVER_ERROR", message: "Internal Server Error",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec, body := handleError(t, http.MethodGet, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.status, body.Status)
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, tc.message, body.Message)
		})
	}
}

func TestGlobalErrorHandlerHead(t *testing.T) {
	rec, _ := handleError(t, http.MethodHead, errs.NewNotFoundError("gone", false, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusConflict, statusOf(errs.NewConflictError("dup", true, nil)))
	assert.Equal(t, http.StatusNotFound, statusOf(echo.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, statusOf(fmt.Errorf("table:users:%w", pgx.ErrNoRows)))
	assert.Equal(t, http.StatusInternalServerError, statusOf(errors.New("boom")))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "1K", formatBytes(0))
	assert.Equal(t, "2K", formatBytes(1024))
	assert.Equal(t, "6891K", formatBytes(5<<20*4/3+64<<10))
}
