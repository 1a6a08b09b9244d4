// Package cutoff implements the change-detection predicates a node
// applies to decide whether its children need to be marked dirty.
//
// # Overview
//
// A Func is a pure `(previous, current float64) bool` predicate: true
// means "propagate to children". The built-in constructors are
// Always, Never, Exact, Absolute(tau), and Relative(tau). Always,
// Exact, Absolute, and Relative treat a NaN-vs-non-NaN transition as
// changed (Never reports unchanged for every input), matching the is-NaN-status
// rule node stabilization applies before consulting the cutoff at all.
package cutoff
