package logging

import "errors"

// Sentinel errors for logging operations
var (
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidOutput   = errors.New("invalid log output")
)
