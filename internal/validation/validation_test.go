package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/foodgram/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct {
	ID     int64 `json:"id" validate:"required,gt=0"`
	Amount int   `json:"amount" validate:"required,min=1,max=32000"`
}

type sampleRequest struct {
	ID       int64  `param:"id" json:"-"`
	Username string `json:"username" validate:"required,max=150,username"`
	Slug     string `json:"slug" validate:"omitempty,slug"`
	Lines    []line `json:"lines" validate:"required,min=1,dive"`
}

func (r *sampleRequest) Validate() error {
	return Struct(r)
}

type Paging struct {
	Page *int `query:"page" validate:"omitempty,gte=1"`
}

type pagedRequest struct {
	Paging
	Name string `query:"name" validate:"omitempty,max=5"`
}

func (r *pagedRequest) Validate() error {
	return Struct(r)
}

type customRequest struct{}

func (r *customRequest) Validate() error {
	return CustomValidationErrors{{Field: "tags", Message: "must not repeat"}}
}

func bind(t *testing.T, body string, payload Validatable) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	return BindAndValidate(c, payload)
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)

	fields := map[string]string{}
	for _, fe := range httpErr.Errors {
		fields[fe.Field] = fe.Error
	}
	return fields
}

func TestBindAndValidateOK(t *testing.T) {
	req := &sampleRequest{}
	err := bind(t, `{"username":"john.doe+1@x","slug":"break-fast_1","lines":[{"id":1,"amount":5}]}`, req)
	require.NoError(t, err)
	assert.Equal(t, "john.doe+1@x", req.Username)
	assert.Len(t, req.Lines, 1)
}

func TestBindAndValidateFieldErrors(t *testing.T) {
	err := bind(t, `{"username":"bad name!","slug":"no spaces","lines":[{"id":0,"amount":40000}]}`, &sampleRequest{})
	fields := fieldsOf(t, err)

	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "slug")
	assert.Equal(t, "is required", fields["lines[0].id"])
	assert.Equal(t, "must not exceed 32000", fields["lines[0].amount"])
	assert.Len(t, fields, 4, "keys carry neither the root type nor Go field names: %v", fields)
}

func TestEmbeddedStructFieldNames(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?page=0&name=toolong", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	fields := fieldsOf(t, BindAndValidate(c, &pagedRequest{}))
	assert.Equal(t, map[string]string{
		"page": "must be at least 1",
		"name": "must not exceed 5 characters",
	}, fields)
}

func TestOptionalPointerSkippedWhenAbsent(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	r := &pagedRequest{}
	require.NoError(t, BindAndValidate(c, r))
	assert.Nil(t, r.Page)
}

func TestReservedUsername(t *testing.T) {
	fields := fieldsOf(t, bind(t, `{"username":"me","lines":[{"id":1,"amount":1}]}`, &sampleRequest{}))
	assert.Contains(t, fields["username"], `"me"`)
}

func TestEmptyCollection(t *testing.T) {
	fields := fieldsOf(t, bind(t, `{"username":"john","lines":[]}`, &sampleRequest{}))
	assert.Equal(t, "must contain at least 1 items", fields["lines"])
}

func TestMalformedJSON(t *testing.T) {
	err := bind(t, `{"username":`, &sampleRequest{})
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Empty(t, httpErr.Errors)
}

func TestWrongType(t *testing.T) {
	err := bind(t, `{"username":42}`, &sampleRequest{})
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestCustomValidationErrors(t *testing.T) {
	fields := fieldsOf(t, bind(t, `{}`, &customRequest{}))
	assert.Equal(t, map[string]string{"tags": "must not repeat"}, fields)
}
