package node

import (
	"math"

	"github.com/lumenquant/reactor/pkg/cutoff"
)

// VectorElement extracts one index from a vector node, presenting it
// as a scalar. It behaves like a trivial scalar-derived node: its
// previous value advances unconditionally each pass.
type VectorElement struct {
	name        string
	parent      VectorValuer
	index       int
	cutoffFn    cutoff.Func
	previous    float64
	current     float64
	initialized bool
}

// NewVectorElement returns a VectorElement named name extracting
// index from parent, using cutoffFn for change detection.
func NewVectorElement(name string, parent VectorValuer, index int, cutoffFn cutoff.Func) *VectorElement {
	return &VectorElement{name: name, parent: parent, index: index, cutoffFn: cutoffFn}
}

func (e *VectorElement) Name() string { return e.name }
func (e *VectorElement) Kind() Kind   { return KindVectorElement }

// Value returns the value as of the last stabilize call.
func (e *VectorElement) Value() float64 { return e.current }

// Stabilize re-reads the parent's element and applies the cutoff. The
// first call always reports changed.
func (e *VectorElement) Stabilize() (bool, error) {
	e.previous = e.current
	e.current = e.parent.At(e.index)

	if !e.initialized {
		e.initialized = true
		return true, nil
	}
	if math.IsNaN(e.previous) != math.IsNaN(e.current) {
		return true, nil
	}
	return e.cutoffFn(e.previous, e.current), nil
}
