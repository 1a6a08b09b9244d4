package node

import "github.com/lumenquant/reactor/pkg/cutoff"

// Selector picks one of two scalar inputs based on a boolean input:
// output = cond ? ifTrue : ifFalse. It always uses an EXACT cutoff —
// any change in the selected value, including a flip between which
// input is selected, propagates.
type Selector struct {
	name        string
	cond        BoolValuer
	ifTrue      ScalarValuer
	ifFalse     ScalarValuer
	cutoffFn    cutoff.Func
	current     float64
	initialized bool
}

// NewSelector returns a Selector named name.
func NewSelector(name string, cond BoolValuer, ifTrue, ifFalse ScalarValuer) *Selector {
	return &Selector{name: name, cond: cond, ifTrue: ifTrue, ifFalse: ifFalse, cutoffFn: cutoff.Exact()}
}

func (s *Selector) Name() string { return s.name }
func (s *Selector) Kind() Kind   { return KindSelector }

// Value returns the value as of the last stabilize call.
func (s *Selector) Value() float64 { return s.current }

// Stabilize selects ifTrue or ifFalse according to cond and applies
// the EXACT cutoff against the previous selection. The first call
// always reports changed.
func (s *Selector) Stabilize() (bool, error) {
	previous := s.current
	if s.cond.Bool() {
		s.current = s.ifTrue.Value()
	} else {
		s.current = s.ifFalse.Value()
	}
	changed := !s.initialized || s.cutoffFn(previous, s.current)
	s.initialized = true
	return changed, nil
}
