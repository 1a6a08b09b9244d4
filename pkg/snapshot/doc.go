// Package snapshot publishes a consistent subset of node values to
// foreign threads through a wait-free triple buffer: three []float64
// buffers and a single atomic index swapped between them. No locks,
// no retries — the only failure mode is staleness, bounded by how
// often the engine thread calls Writer.Publish.
package snapshot
