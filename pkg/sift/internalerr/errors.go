package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrLengthMismatch = errors.New("vector length mismatch")
	ErrUnavailable    = errors.New("model unavailable")
	ErrInvalidConfig  = errors.New("invalid configuration")
)
