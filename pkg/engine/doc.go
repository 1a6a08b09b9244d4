// Package engine runs stabilization passes over a compiled topology.
//
// An Engine owns the dirty set, the epoch counter, and the health
// flag; it is single-threaded per the invocation model in the
// package's design — only one goroutine may ever call Stabilize,
// MarkDirty, UpdateScalar, or UpdateVectorAt concurrently with each
// other. IsHealthy is the one exception: it is read from foreign
// threads (dashboards, health probes) and is therefore backed by an
// atomic flag rather than a plain bool.
package engine
