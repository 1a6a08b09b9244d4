package dirtyset

import "errors"

// ErrIndexOutOfRange names an index outside [0, N). No method of Set
// returns it: Set, Clear, and Test do not check their index against N.
var ErrIndexOutOfRange = errors.New("dirtyset: index out of range")
