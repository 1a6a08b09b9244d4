package node

import (
	"fmt"
	"math"

	"github.com/lumenquant/reactor/pkg/cutoff"
	"github.com/lumenquant/reactor/pkg/errorreporter"
	"github.com/lumenquant/reactor/pkg/operator"
)

// ScalarDerived recomputes an f64 from its input nodes via an opaque
// operator on every stabilize call. Unlike ScalarSource, its previous
// value advances unconditionally each pass (the value just computed
// becomes next pass's comparison baseline), matching the way an
// incrementally recomputed value should be compared against its
// immediately preceding state rather than a change-gated baseline.
type ScalarDerived struct {
	name        string
	cutoffFn    cutoff.Func
	compute     func() float64
	reporter    *errorreporter.Reporter
	previous    float64
	current     float64
	initialized bool
}

func newScalarDerived(name string, cutoffFn cutoff.Func, reporter *errorreporter.Reporter, compute func() float64) *ScalarDerived {
	return &ScalarDerived{name: name, cutoffFn: cutoffFn, reporter: reporter, compute: compute}
}

// NewScalarDerived1 builds a ScalarDerived over a single input.
func NewScalarDerived1(name string, cutoffFn cutoff.Func, reporter *errorreporter.Reporter, in ScalarValuer, fn operator.Func1) *ScalarDerived {
	return newScalarDerived(name, cutoffFn, reporter, func() float64 { return fn(in.Value()) })
}

// NewScalarDerived2 builds a ScalarDerived over two inputs.
func NewScalarDerived2(name string, cutoffFn cutoff.Func, reporter *errorreporter.Reporter, a, b ScalarValuer, fn operator.Func2) *ScalarDerived {
	return newScalarDerived(name, cutoffFn, reporter, func() float64 { return fn(a.Value(), b.Value()) })
}

// NewScalarDerived3 builds a ScalarDerived over three inputs.
func NewScalarDerived3(name string, cutoffFn cutoff.Func, reporter *errorreporter.Reporter, a, b, c ScalarValuer, fn operator.Func3) *ScalarDerived {
	return newScalarDerived(name, cutoffFn, reporter, func() float64 { return fn(a.Value(), b.Value(), c.Value()) })
}

// NewScalarDerivedN builds a ScalarDerived over an arbitrary number of
// inputs. The float64 slice passed to fn is owned and reused by this
// node across stabilize calls.
func NewScalarDerivedN(name string, cutoffFn cutoff.Func, reporter *errorreporter.Reporter, inputs []ScalarValuer, fn operator.FuncN) *ScalarDerived {
	buf := make([]float64, len(inputs))
	return newScalarDerived(name, cutoffFn, reporter, func() float64 {
		for i, in := range inputs {
			buf[i] = in.Value()
		}
		return fn(buf)
	})
}

func (d *ScalarDerived) Name() string { return d.name }
func (d *ScalarDerived) Kind() Kind   { return KindScalarDerived }

// Value returns the value as of the last stabilize call.
func (d *ScalarDerived) Value() float64 { return d.current }

// Stabilize recomputes the node's value, trapping any panic raised by
// the underlying operator into a NaN value and a reported error. The
// first call always reports changed.
func (d *ScalarDerived) Stabilize() (changed bool, err error) {
	d.previous = d.current

	current, trapErr := d.invoke()
	d.current = current
	if trapErr != nil {
		if d.reporter != nil {
			d.reporter.Report(fmt.Sprintf("operator failed for node %q", d.name), trapErr)
		}
		err = fmt.Errorf("%w: %s: %v", ErrOperatorFailure, d.name, trapErr)
	}

	if !d.initialized {
		d.initialized = true
		return true, err
	}
	if math.IsNaN(d.previous) != math.IsNaN(d.current) {
		return true, err
	}
	return d.cutoffFn(d.previous, d.current), err
}

func (d *ScalarDerived) invoke() (result float64, trapped error) {
	defer func() {
		if r := recover(); r != nil {
			result = math.NaN()
			trapped = fmt.Errorf("panic: %v", r)
		}
	}()
	return d.compute(), nil
}
