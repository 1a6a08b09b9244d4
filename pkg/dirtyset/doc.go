// Package dirtyset implements the packed bitset the stabilization
// engine scans each pass to find nodes needing recomputation.
//
// # Overview
//
// A Set holds ceil(N/64) 64-bit words. Set, Clear, and Test are O(1).
// SetByName resolves a node name through a topology's name index
// before setting its bit, O(1) amortized. A Cursor walks the set
// word-at-a-time, skipping whole empty words instead of testing every
// bit individually. The engine's stabilization pass does not use a
// Cursor; it calls Test for each index in topological order.
package dirtyset
