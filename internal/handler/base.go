package handler

import (
	"mime"
	"net/http"
	"reflect"
	"time"

	"github.com/deppfellow/foodgram/internal/middleware"
	"github.com/deppfellow/foodgram/internal/server"
	"github.com/deppfellow/foodgram/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is embedded by every concrete handler for access to the shared
// dependencies on *server.Server.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint: it receives a bound and validated request
// and returns the response body.
//
// Req is a pointer type, e.g. *CreateUserRequest.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// HandlerFuncNoContent is a typed endpoint without a response body.
type HandlerFuncNoContent[Req validation.Validatable] func(c echo.Context, req Req) error

// ResponseHandler writes a successful result and annotates the transaction.
type ResponseHandler interface {
	Handle(c echo.Context, result any) error

	// GetOperation names the handler kind in logs.
	GetOperation() string

	AddAttributes(txn *newrelic.Transaction, result any)
}

// JSONResponseHandler writes JSON responses with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result any) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {}

// NoContentResponseHandler writes an empty body, typically 204.
type NoContentResponseHandler struct {
	status int
}

func (h NoContentResponseHandler) Handle(c echo.Context, result any) error {
	return c.NoContent(h.status)
}

func (h NoContentResponseHandler) GetOperation() string {
	return "handler_no_content"
}

func (h NoContentResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {}

// FileResponseHandler sends the []byte result as a download.
type FileResponseHandler struct {
	status      int
	filename    string
	contentType string
}

func (h FileResponseHandler) Handle(c echo.Context, result any) error {
	data, _ := result.([]byte)

	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": h.filename}))

	return c.Blob(h.status, h.contentType, data)
}

func (h FileResponseHandler) GetOperation() string {
	return "handler_file"
}

func (h FileResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {
	if txn == nil {
		return
	}
	txn.AddAttribute("file.name", h.filename)
	txn.AddAttribute("file.content_type", h.contentType)
	if data, ok := result.([]byte); ok {
		txn.AddAttribute("file.size_bytes", len(data))
	}
}

// RedirectResponseHandler answers with a redirect to the string result.
type RedirectResponseHandler struct {
	status int
}

func (h RedirectResponseHandler) Handle(c echo.Context, result any) error {
	location, _ := result.(string)
	return c.Redirect(h.status, location)
}

func (h RedirectResponseHandler) GetOperation() string {
	return "handler_redirect"
}

func (h RedirectResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {
	if txn == nil {
		return
	}
	if location, ok := result.(string); ok {
		txn.AddAttribute("redirect.location", location)
	}
}

// newRequest allocates a fresh request of the same type as proto.
//
// Routes are registered with a single prototype value, binding into it
// directly would share state between concurrent requests.
func newRequest[Req validation.Validatable](proto Req) Req {
	t := reflect.TypeOf(proto)
	if t == nil || t.Kind() != reflect.Pointer {
		return proto
	}
	return reflect.New(t.Elem()).Interface().(Req)
}

// handleRequest is the pipeline every typed endpoint runs through: bind and
// validate, run the handler, write the response. Each phase is timed, logged
// with the request-scoped logger and recorded on the New Relic transaction.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	proto Req,
	handler func(c echo.Context, req Req) (any, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()
	req := newRequest(proto)

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
		responseHandler.AddAttributes(txn, nil)
	}

	loggerBuilder := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route)

	if fileHandler, ok := responseHandler.(FileResponseHandler); ok {
		loggerBuilder = loggerBuilder.
			Str("filename", fileHandler.filename).
			Str("content_type", fileHandler.contentType)
	}

	logger := loggerBuilder.Logger()

	logger.Debug().Msg("handling request")

	// bind + validate
	validationStart := time.Now()

	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	// execute
	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)

		logger.Warn().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	if err := responseHandler.Handle(c, result); err != nil {
		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
		}
		return err
	}
	return nil
}

// Handle registers a typed JSON endpoint:
//
//	api.POST("/recipes", handler.Handle(h.Handler, h.CreateRecipe, http.StatusCreated, &CreateRecipeRequest{}))
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	req Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, req, func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// HandleFile registers an endpoint whose []byte result is sent as an attachment.
func HandleFile[Req validation.Validatable](
	h Handler,
	handler HandlerFunc[Req, []byte],
	status int,
	req Req,
	filename string,
	contentType string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, req, func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, FileResponseHandler{
			status:      status,
			filename:    filename,
			contentType: contentType,
		})
	}
}

// HandleNoContent registers an endpoint that answers with an empty body.
func HandleNoContent[Req validation.Validatable](
	h Handler,
	handler HandlerFuncNoContent[Req],
	status int,
	req Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, req, func(c echo.Context, req Req) (any, error) {
			return nil, handler(c, req)
		}, NoContentResponseHandler{status: status})
	}
}

// HandleRedirect registers an endpoint whose string result is the redirect target.
func HandleRedirect[Req validation.Validatable](
	h Handler,
	handler HandlerFunc[Req, string],
	req Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, req, func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, RedirectResponseHandler{status: http.StatusFound})
	}
}
