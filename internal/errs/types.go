package errs

import (
	"net/http"
)

// NewUnauthorizedError is returned for missing or unknown tokens.
func NewUnauthorizedError(message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     codeOr(nil, http.StatusUnauthorized),
		Message:  message,
		Status:   http.StatusUnauthorized,
		Override: override,
	}
}

// NewForbiddenError is returned when the caller is known but not allowed,
// e.g. editing someone else's recipe.
func NewForbiddenError(message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     codeOr(nil, http.StatusForbidden),
		Message:  message,
		Status:   http.StatusForbidden,
		Override: override,
	}
}

// NewBadRequestError defaults code to BAD_REQUEST when nil.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	return &HTTPError{
		Code:     codeOr(code, http.StatusBadRequest),
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
	}
}

func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	return &HTTPError{
		Code:     codeOr(code, http.StatusNotFound),
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewInternalServerError never carries the underlying error; it is logged
// by the error handler instead.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    codeOr(nil, http.StatusInternalServerError),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}
