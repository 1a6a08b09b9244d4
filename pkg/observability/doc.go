// Package observability provides the stabilization engine's listener
// interface, a synchronous composite fan-out, a latency aggregator,
// and a per-node profile table, plus an OpenTelemetry/Prometheus
// metrics provider.
//
// # Overview
//
// Unlike a workflow engine that can afford to notify observers on
// their own goroutines (correctness does not depend on ordering, and
// workflows run for milliseconds to seconds), a pricing engine's
// listener callbacks sit directly on the stabilization hot path: they
// must be synchronous, allocation-free, and bounded, or they defeat
// the engine's own latency goals. Composite registers listeners once
// at startup behind a copy-on-write slice and calls each one inline,
// in registration order, from the same goroutine running the pass.
package observability
