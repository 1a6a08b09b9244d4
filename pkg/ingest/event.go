package ingest

// UpdateEvent is the fixed flyweight carried by the ring buffer. It is
// shared in-process memory only, not a wire format: producers and the
// consumer must agree on nothing beyond Go's own struct layout.
type UpdateEvent struct {
	// TargetIndex is the topological index of the source node this
	// event updates.
	TargetIndex uint32

	// DoubleValue is the scalar value, or the value to place at
	// VectorIndex when this is a vector-element update.
	DoubleValue float64

	// VectorIndex is the element offset within a vector source, or -1
	// to mean "this is a scalar update".
	VectorIndex int32

	// ForceFlush asserts the end of the producer's logical batch,
	// triggering a stabilization pass even if the ring is not yet
	// empty.
	ForceFlush bool

	// Sequence is the producer's monotonic publication order, used
	// only for diagnostics; the ring itself enforces order via its
	// head/tail counters.
	Sequence uint64
}

// IsScalar reports whether this event targets a scalar source rather
// than one element of a vector source.
func (e UpdateEvent) IsScalar() bool { return e.VectorIndex < 0 }
