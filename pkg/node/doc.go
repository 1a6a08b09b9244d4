// Package node implements the per-node runtime: the fixed set of node
// kinds a compiled topology can hold, their value storage, and the
// stabilize contract each kind fulfills.
//
// # Overview
//
// Every node kind is a concrete struct, not a boxed interface over a
// class hierarchy: ScalarSource, ScalarDerived, Boolean, Selector,
// VectorSource, VectorDerived, VectorElement, and KeyedMap. Dynamic
// dispatch is reserved for the one place it is unavoidable — the
// operator boundary, where a user-supplied compute function is stored
// as a plain Go func value behind the fixed-arity shapes in
// pkg/operator. Every node implements the Node interface; kind-specific
// value accessors (ScalarValuer, VectorValuer, BoolValuer, KeyedValuer)
// let a derived node hold references to its parents without caring how
// they were produced.
//
// # Stabilize contract
//
// Stabilize recomputes a node's value, updates its bookkeeping
// (previous value, initialized flag), and returns whether the node's
// cutoff says children should be marked dirty. A panic inside a
// user-supplied operator is trapped at the call site: the node's value
// becomes NaN, the error is handed to an errorreporter.Reporter, and
// Stabilize returns the trapped error to the caller (the engine), which
// is responsible for marking the pass failed without aborting it.
package node
