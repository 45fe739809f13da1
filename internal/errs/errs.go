// Package errs holds the error shape every API response uses.
package errs
