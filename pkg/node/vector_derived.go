package node

import (
	"fmt"
	"math"

	"github.com/lumenquant/reactor/pkg/errorreporter"
	"github.com/lumenquant/reactor/pkg/operator"
)

// VectorComputeFunc recomputes a vector node's value into the
// caller-owned out buffer. Any inputs it needs are closed over by the
// constructor; this keeps the same "opaque operator" boundary as the
// scalar operator shapes in pkg/operator, sized for vector outputs.
type VectorComputeFunc func(out []float64)

// VectorDerived recomputes a []f64 into a pre-allocated buffer on
// every stabilize call, comparing elementwise against the previous
// buffer with an absolute tolerance.
type VectorDerived struct {
	name        string
	tolerance   float64
	compute     VectorComputeFunc
	reporter    *errorreporter.Reporter
	previous    []float64
	current     []float64
	initialized bool
}

// NewVectorDerived returns a VectorDerived named name with the given
// size and elementwise absolute tolerance.
func NewVectorDerived(name string, size int, tolerance float64, reporter *errorreporter.Reporter, compute VectorComputeFunc) *VectorDerived {
	return &VectorDerived{
		name:      name,
		tolerance: tolerance,
		compute:   compute,
		reporter:  reporter,
		previous:  make([]float64, size),
		current:   make([]float64, size),
	}
}

// NewVectorDerived1 builds a VectorDerived over a single vector input,
// copying in's elements into an owned buffer each pass before handing
// it to fn so fn never observes in's internal storage directly.
func NewVectorDerived1(name string, tolerance float64, reporter *errorreporter.Reporter, in VectorValuer, fn operator.VectorFunc1) *VectorDerived {
	inBuf := make([]float64, in.Size())
	return NewVectorDerived(name, in.Size(), tolerance, reporter, func(out []float64) {
		for i := range inBuf {
			inBuf[i] = in.At(i)
		}
		fn(inBuf, out)
	})
}

func (d *VectorDerived) Name() string { return d.name }
func (d *VectorDerived) Kind() Kind   { return KindVectorDerived }
func (d *VectorDerived) Size() int    { return len(d.current) }

// At returns element i as of the last stabilize call.
func (d *VectorDerived) At(i int) float64 { return d.current[i] }

// Stabilize copies current into previous, recomputes current via the
// operator (trapping any panic into all-NaN output), then compares
// elementwise. The first call always reports changed.
func (d *VectorDerived) Stabilize() (changed bool, err error) {
	copy(d.previous, d.current)

	if trapErr := d.invoke(); trapErr != nil {
		if d.reporter != nil {
			d.reporter.Report(fmt.Sprintf("operator failed for node %q", d.name), trapErr)
		}
		err = fmt.Errorf("%w: %s: %v", ErrOperatorFailure, d.name, trapErr)
	}

	if !d.initialized {
		d.initialized = true
		return true, err
	}
	return vectorChanged(d.previous, d.current, d.tolerance), err
}

func (d *VectorDerived) invoke() (trapped error) {
	defer func() {
		if r := recover(); r != nil {
			for i := range d.current {
				d.current[i] = math.NaN()
			}
			trapped = fmt.Errorf("panic: %v", r)
		}
	}()
	d.compute(d.current)
	return nil
}
