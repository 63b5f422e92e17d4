// Package apperr defines the error kinds every core operation fails with.
// Callers test with errors.Is and map kinds to transport status codes.
package apperr

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrInvalidArgument = errors.New("invalid argument")
)
