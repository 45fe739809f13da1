// Package utils holds helpers shared by services that have no better home.
package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Capitalize upper-cases the first letter of s and lower-cases the rest,
// so "SALT" and "salt" both become "Salt".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	// Casers keep state, so they are not shared between goroutines.
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Und).String(s[:size]) + cases.Lower(language.Und).String(s[size:])
}

// RandomHex returns n random bytes hex encoded (2n characters).
func RandomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
