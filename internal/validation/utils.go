package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/deppfellow/foodgram/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required,email"`)
//   - Implement Validate() error that runs validation.Struct(req)
//   - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// CustomValidationError is a validation issue no struct tag can express.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds path params, query params and the body into payload
// and validates it. payload must be a pointer.
//
// Both failures turn into a 400 *errs.HTTPError.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors)
	}

	return nil
}

func bindError(err error) error {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusUnsupportedMediaType {
			return errs.NewBadRequestError("Unsupported content type", false, nil, nil)
		}
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			return errs.NewBadRequestError(msg, false, nil, nil)
		}
	}
	return errs.NewBadRequestError("Malformed request", false, nil, nil)
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customErrors CustomValidationErrors
	if errors.As(err, &customErrors) {
		for _, e := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: e.Field, Error: e.Message})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", []errs.FieldError{{Field: "non_field_errors", Error: err.Error()}}
	}

	for _, e := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: fieldPath(e),
			Error: message(e),
		})
	}

	return "Validation failed", fieldErrors
}

// fieldPath drops the root struct and embedded struct names from the
// namespace: "CreateRecipeRequest.ingredients[0].amount" -> "ingredients[0].amount",
// "ListUsersRequest.PageQuery.page" -> "page".
//
// An embedded struct carries no json/query/param tag, so it is named after its
// Go field in both namespaces; tagged fields differ between the two.
func fieldPath(e validator.FieldError) string {
	segments := strings.Split(e.Namespace(), ".")
	goSegments := strings.Split(e.StructNamespace(), ".")
	if len(segments) < 2 || len(segments) != len(goSegments) {
		return e.Field()
	}

	last := len(segments) - 1
	kept := make([]string, 0, last)
	for i := 1; i < last; i++ {
		if segments[i] == goSegments[i] {
			continue
		}
		kept = append(kept, segments[i])
	}
	kept = append(kept, segments[last])
	return strings.Join(kept, ".")
}

func message(e validator.FieldError) string {
	isString := e.Kind() == reflect.String
	isCollection := e.Kind() == reflect.Slice || e.Kind() == reflect.Array || e.Kind() == reflect.Map

	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		switch {
		case isString:
			return fmt.Sprintf("must be at least %s characters", e.Param())
		case isCollection:
			return fmt.Sprintf("must contain at least %s items", e.Param())
		}
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		switch {
		case isString:
			return fmt.Sprintf("must not exceed %s characters", e.Param())
		case isCollection:
			return fmt.Sprintf("must not contain more than %s items", e.Param())
		}
		return fmt.Sprintf("must not exceed %s", e.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "lte":
		return fmt.Sprintf("must not exceed %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "email":
		return "must be a valid email address"
	case "username":
		return fmt.Sprintf("may contain only letters, digits and . @ + - _ and must not be %q", ReservedUsername)
	case "slug":
		return "may contain only letters, digits, hyphens and underscores"
	case "unique":
		return "must not contain duplicates"
	case "nefield":
		return fmt.Sprintf("must differ from %s", strings.ToLower(e.Param()))
	case "dive":
		return "some items are invalid"
	default:
		if e.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", e.Field(), e.Tag(), e.Param())
		}
		return fmt.Sprintf("%s: %s", e.Field(), e.Tag())
	}
}
