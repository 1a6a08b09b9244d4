// Package engine implements the stabilization pass: walking the
// topological order, recomputing dirty nodes, propagating change to
// children, and tracking epoch and health.
package engine

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lumenquant/reactor/pkg/dirtyset"
	"github.com/lumenquant/reactor/pkg/logging"
	"github.com/lumenquant/reactor/pkg/node"
	"github.com/lumenquant/reactor/pkg/observability"
	"github.com/lumenquant/reactor/pkg/topology"
)

// PostStabilizeFunc is invoked on the consumer thread once a pass
// completes, with the epoch and count of nodes stabilized. The
// ingestion bridge uses this hook to refresh the snapshot substrate.
type PostStabilizeFunc func(epoch uint64, nodesStabilized int)

// Engine runs stabilization passes over a compiled Topology. It is
// single-threaded per the invocation model: exactly one goroutine may
// drive Stabilize, MarkDirty, and the Update* methods. IsHealthy is
// safe to call from any goroutine.
type Engine struct {
	id      string
	topo    *topology.Topology
	nodes   []node.Node
	dirty   *dirtyset.Set
	epoch   uint64
	healthy atomic.Bool

	listener observability.Composite
	logger   *logging.Logger

	lastErr error
}

// New builds an Engine over topo and nodes, where nodes[i] must be the
// node compiled to topological index i. Every source node's dirty bit
// is set so the first Stabilize call initializes the whole graph.
func New(topo *topology.Topology, nodes []node.Node) *Engine {
	id := uuid.New().String()
	e := &Engine{
		id:     id,
		topo:   topo,
		nodes:  nodes,
		dirty:  dirtyset.New(topo.NodeCount()),
		logger: logging.New(logging.DefaultConfig()).WithEngineID(id),
	}
	e.healthy.Store(true)

	for i := 0; i < topo.NodeCount(); i++ {
		if topo.IsSource(i) {
			e.dirty.Set(i)
		}
	}
	return e
}

// ID returns the engine's generated run identifier, used to scope
// structured log lines across a process hosting multiple engines.
func (e *Engine) ID() string { return e.id }

// Topology returns the compiled topology the engine was built from.
func (e *Engine) Topology() *topology.Topology { return e.topo }

// Nodes returns the node backing every topological index, in index
// order. The slice is owned by the engine; callers must not mutate it,
// only inspect individual nodes (e.g. to export persistable state).
func (e *Engine) Nodes() []node.Node { return e.nodes }

// MarkAllDirty sets every node's dirty bit, forcing the next Stabilize
// call to revisit the entire graph. Used after restoring source state
// from a snapshot, since a derived node's value is never itself
// persisted — it is recomputed from its restored ancestors instead.
func (e *Engine) MarkAllDirty() {
	e.dirty.SetAll()
}

// Epoch returns the number of passes that have run to completion.
func (e *Engine) Epoch() uint64 { return e.epoch }

// IsHealthy reports whether the engine will accept the next
// Stabilize call. Safe to call from any goroutine.
func (e *Engine) IsHealthy() bool { return e.healthy.Load() }

// ResetHealth clears the unhealthy flag after a trapped operator
// failure. The caller is assumed to have fixed or accepted the
// underlying fault; the reset itself is logged for audit.
func (e *Engine) ResetHealth() {
	e.healthy.Store(true)
	e.lastErr = nil
	e.logger.WithEpoch(e.epoch).Info("engine health reset")
}

// AddListener registers an additional observability listener. Not
// safe to call concurrently with Stabilize; intended for startup-time
// wiring.
func (e *Engine) AddListener(l observability.Listener) {
	e.listener.Add(l)
}

// MarkDirty sets the dirty bit of the node named name.
func (e *Engine) MarkDirty(name string) error {
	idx, ok := e.topo.IndexOf(name)
	if !ok {
		return ErrUnknownNode
	}
	e.dirty.Set(idx)
	return nil
}

// MarkDirtyIndex sets the dirty bit of the node at topological index
// idx.
func (e *Engine) MarkDirtyIndex(idx int) error {
	if idx < 0 || idx >= e.topo.NodeCount() {
		return ErrIndexOutOfBounds
	}
	e.dirty.Set(idx)
	return nil
}

// UpdateScalar writes value into the scalar source at topological
// index idx and marks it dirty. It rejects non-finite values and
// indices that do not name a scalar-writable source.
func (e *Engine) UpdateScalar(idx int, value float64) error {
	if idx < 0 || idx >= len(e.nodes) {
		return ErrIndexOutOfBounds
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ErrNonFiniteValue
	}
	w, ok := e.nodes[idx].(node.ScalarWriter)
	if !ok {
		return ErrNotScalarNode
	}
	if err := w.Write(value); err != nil {
		return err
	}
	e.dirty.Set(idx)
	return nil
}

// UpdateVectorAt writes value into element vecIndex of the vector
// source at topological index idx and marks it dirty.
func (e *Engine) UpdateVectorAt(idx int, vecIndex int, value float64) error {
	if idx < 0 || idx >= len(e.nodes) {
		return ErrIndexOutOfBounds
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ErrNonFiniteValue
	}
	w, ok := e.nodes[idx].(node.VectorElementWriter)
	if !ok {
		return ErrNotVectorNode
	}
	if err := w.WriteAt(vecIndex, value); err != nil {
		return err
	}
	e.dirty.Set(idx)
	return nil
}

// Stabilize runs one pass: it walks the topological order, recomputes
// every dirty node, propagates change to children, and returns the
// number of nodes visited. If a prior pass left the engine unhealthy,
// it fails immediately with ErrEngineUnhealthy and the epoch does not
// advance.
func (e *Engine) Stabilize() (int, error) {
	if !e.healthy.Load() {
		return 0, ErrEngineUnhealthy
	}

	e.epoch++
	epoch := e.epoch
	nodesStabilized := 0
	var passFailed bool
	var firstErr error
	var firstErrName string

	e.listener.OnPassStart(epoch)

	n := e.topo.NodeCount()
	for ti := 0; ti < n; ti++ {
		if !e.dirty.Test(ti) {
			continue
		}
		e.dirty.Clear(ti)

		t0 := time.Now()
		changed, err := e.nodes[ti].Stabilize()
		durationNs := time.Since(t0).Nanoseconds()

		if err != nil {
			passFailed = true
			if firstErr == nil {
				firstErr = err
				firstErrName = e.nodes[ti].Name()
			}
			e.logger.WithEpoch(epoch).WithNodeIndex(ti).WithNodeName(e.nodes[ti].Name()).WithError(err).Warn("node stabilize failed")
			e.listener.OnNodeError(epoch, ti, e.nodes[ti].Name(), err)
		}

		// A trapped operator error isolates to this node's own value
		// (already forced to NaN by Stabilize); its changed signal
		// still propagates normally, so unrelated downstream nodes
		// that depend on it observe the NaN rather than a stale value.
		nodesStabilized++
		e.listener.OnNodeStabilized(epoch, ti, e.nodes[ti].Name(), changed, durationNs)

		if changed {
			start, end := e.topo.ChildrenRange(ti)
			for pos := start; pos < end; pos++ {
				e.dirty.Set(e.topo.ChildAt(pos))
			}
		}
	}

	e.listener.OnPassEnd(epoch, nodesStabilized)

	if passFailed {
		e.healthy.Store(false)
		e.lastErr = &StabilizationFailedError{NodeName: firstErrName, Cause: firstErr}
		e.logger.WithEpoch(epoch).WithError(e.lastErr).Error("stabilization pass failed")
		return nodesStabilized, e.lastErr
	}
	return nodesStabilized, nil
}
