// Package apperr defines the error categories surfaced by vault operations.
//
// Operations wrap one of these sentinels together with the underlying cause,
// so callers test the category with errors.Is and can still unwrap the
// underlying *fs.PathError.
package apperr

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidEncoding = errors.New("invalid encoding")
	ErrIO              = errors.New("i/o error")
	ErrInvalidPath     = errors.New("invalid path")
	ErrExists          = errors.New("already exists")
)
