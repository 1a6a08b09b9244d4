package node

import "errors"

// Sentinel errors for node write validation and operator execution.
var (
	ErrInvalidInput    = errors.New("node: value is not finite")
	ErrShapeMismatch   = errors.New("node: vector size mismatch")
	ErrIndexOutOfBounds = errors.New("node: index out of bounds")
	ErrOperatorFailure = errors.New("node: operator panicked during stabilize")
)
