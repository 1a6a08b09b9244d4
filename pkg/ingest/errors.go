package ingest

import "errors"

var (
	// ErrRingFull describes a ring buffer with no free slots. Publish
	// does not return it: Publish reports a full ring by returning
	// false, and the caller (producer) decides whether to retry,
	// block, or drop.
	ErrRingFull = errors.New("ingestion ring buffer is full")

	// ErrInvalidCapacity is returned by New when the configured ring
	// capacity is not a power of two, or is zero.
	ErrInvalidCapacity = errors.New("ring capacity must be a power of two greater than zero")
)
