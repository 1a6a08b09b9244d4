// Package topology compiles a node/edge description into an immutable,
// compressed-sparse-row (CSR) directed acyclic graph.
//
// # Overview
//
// A Builder accumulates named nodes and directed edges between them.
// Compile runs Kahn's algorithm to produce a topological order, detect
// cycles, and lay the graph out as three flat slices indexed by
// topological position: child offsets, child indices, and parent
// counts. The resulting Topology is read-only and safe for concurrent
// readers — nothing mutates it after Compile returns.
//
// # Key algorithm
//
// Kahn's algorithm (as the teacher's pkg/graph package implements it):
//
//  1. Compute in-degree for every node.
//  2. Seed a queue with all zero in-degree nodes in insertion order,
//     so ties are broken deterministically by build order.
//  3. Dequeue, append to the order, decrement each child's in-degree,
//     enqueue any child that reaches zero.
//  4. If the order's length is less than the node count, a cycle
//     remains among the unprocessed nodes.
//
// # CSR layout
//
// Children of topological index i live at
// childIndices[childOffsets[i]:childOffsets[i+1]]. This is the same
// adjacency-in-one-slice trick used for fast graph traversal without
// per-node slice headers.
package topology
