package node

// BoolPredicate is the opaque computation a Boolean node applies to
// its scalar input.
type BoolPredicate func(float64) bool

// Boolean is a scalar predicate over one scalar input, exposing a
// bool value with bit-equality change detection.
type Boolean struct {
	name        string
	input       ScalarValuer
	predicate   BoolPredicate
	current     bool
	initialized bool
}

// NewBoolean returns a Boolean node named name evaluating predicate
// over input on every stabilize call.
func NewBoolean(name string, input ScalarValuer, predicate BoolPredicate) *Boolean {
	return &Boolean{name: name, input: input, predicate: predicate}
}

func (b *Boolean) Name() string { return b.name }
func (b *Boolean) Kind() Kind   { return KindBoolean }

// Bool returns the value as of the last stabilize call.
func (b *Boolean) Bool() bool { return b.current }

// Stabilize evaluates the predicate and reports changed on any
// bit-level flip of the boolean value. The first call always reports
// changed.
func (b *Boolean) Stabilize() (bool, error) {
	previous := b.current
	b.current = b.predicate(b.input.Value())
	changed := !b.initialized || previous != b.current
	b.initialized = true
	return changed, nil
}
