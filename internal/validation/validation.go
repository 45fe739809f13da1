// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or email formats) defined in struct tags
// and extracts validation errors into a format the client can
// understand
package validation

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ReservedUsername is the path segment of the current-user endpoint.
const ReservedUsername = "me"

var (
	usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)
	slugRegex     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator with the project's custom tags:
//
//   - username: letters, digits and . @ + - _ only, and not "me"
//   - slug: letters, digits, - and _ only
//
// Field names in errors follow the json tags so they match the request body.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "query", "param"} {
				name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return field.Name
		})

		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			return value != ReservedUsername && usernameRegex.MatchString(value)
		})
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugRegex.MatchString(fl.Field().String())
		})

		instance = v
	})
	return instance
}

// Struct validates s with the shared validator.
func Struct(s any) error {
	return Validator().Struct(s)
}
