package config

import "errors"

// Sentinel errors for configuration validation.
var (
	ErrRingCapacityTooSmall      = errors.New("ring capacity too small: must be at least 64")
	ErrRingCapacityNotPowerOfTwo = errors.New("ring capacity must be a power of two")
	ErrInvalidErrorRateLimit     = errors.New("invalid error rate limit: must be non-negative")
	ErrInvalidDrainTimeout       = errors.New("invalid drain timeout: must be non-negative")
)
