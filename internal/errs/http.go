package errs

import (
	"net/http"
	"strings"
)

// FieldError points at one invalid request field, e.g.
// {"field": "ingredients[0].amount", "error": "must be at least 1"}.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is returned by services and handlers and rendered as-is by the
// global error handler.
//
// Override tells clients the message is safe to show to end users.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError regardless of its code or status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

func NewConflictError(message string, override bool, code *string) *HTTPError {
	return &HTTPError{
		Code:     codeOr(code, http.StatusConflict),
		Message:  message,
		Status:   http.StatusConflict,
		Override: override,
	}
}

func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:    codeOr(nil, http.StatusTooManyRequests),
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

// NewFieldError is a 400 carrying a single field error, for checks validator
// tags cannot express such as "tag 7 does not exist".
func NewFieldError(field, message string) *HTTPError {
	return NewBadRequestError("Validation failed", true, nil, []FieldError{{Field: field, Error: message}})
}

// Code returns a pointer to code, for the optional code parameters.
func Code(code string) *string {
	return &code
}

func codeOr(code *string, status int) string {
	if code != nil {
		return *code
	}
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}
