package node

import (
	"fmt"
	"math"

	"github.com/lumenquant/reactor/pkg/errorreporter"
)

// KeyedWriter lets a KeyedMap's operator write values by ordinal
// without needing to know the node's internal buffer layout.
type KeyedWriter interface {
	Set(ordinal int, value float64)
}

// KeyedComputeFunc recomputes a KeyedMap's values through w.
type KeyedComputeFunc func(w KeyedWriter)

type keyedWriter struct {
	buf []float64
}

func (w *keyedWriter) Set(ordinal int, value float64) {
	w.buf[ordinal] = value
}

// KeyedMap is a fixed, ordered set of string keys whose values are
// parallel f64s, recomputed by an opaque operator through an
// ordinal-based writer. Change detection is elementwise absolute
// tolerance against the previous vector, same as VectorDerived.
type KeyedMap struct {
	name        string
	keys        []string
	ordinal     map[string]int
	tolerance   float64
	compute     KeyedComputeFunc
	reporter    *errorreporter.Reporter
	previous    []float64
	current     []float64
	writer      keyedWriter
	initialized bool
}

// NewKeyedMap returns a KeyedMap named name over keys (order is
// frozen and defines each key's ordinal), with the given elementwise
// absolute tolerance.
func NewKeyedMap(name string, keys []string, tolerance float64, reporter *errorreporter.Reporter, compute KeyedComputeFunc) *KeyedMap {
	ordinal := make(map[string]int, len(keys))
	for i, k := range keys {
		ordinal[k] = i
	}
	current := make([]float64, len(keys))
	return &KeyedMap{
		name:      name,
		keys:      keys,
		ordinal:   ordinal,
		tolerance: tolerance,
		compute:   compute,
		reporter:  reporter,
		previous:  make([]float64, len(keys)),
		current:   current,
		writer:    keyedWriter{buf: current},
	}
}

func (m *KeyedMap) Name() string    { return m.name }
func (m *KeyedMap) Kind() Kind      { return KindKeyedMap }
func (m *KeyedMap) Keys() []string  { return m.keys }

// Get returns the value for key as of the last stabilize call, and
// whether key exists in this map.
func (m *KeyedMap) Get(key string) (float64, bool) {
	ordinal, ok := m.ordinal[key]
	if !ok {
		return 0, false
	}
	return m.current[ordinal], true
}

// Stabilize recomputes every value via the operator (trapping a panic
// into all-NaN output), then compares elementwise. The first call
// always reports changed, matching the NaN-sentinel-forces-change
// rule for a map whose previous vector starts uninitialized.
func (m *KeyedMap) Stabilize() (changed bool, err error) {
	copy(m.previous, m.current)

	if trapErr := m.invoke(); trapErr != nil {
		if m.reporter != nil {
			m.reporter.Report(fmt.Sprintf("operator failed for node %q", m.name), trapErr)
		}
		err = fmt.Errorf("%w: %s: %v", ErrOperatorFailure, m.name, trapErr)
	}

	if !m.initialized {
		m.initialized = true
		return true, err
	}
	return vectorChanged(m.previous, m.current, m.tolerance), err
}

func (m *KeyedMap) invoke() (trapped error) {
	defer func() {
		if r := recover(); r != nil {
			for i := range m.current {
				m.current[i] = math.NaN()
			}
			trapped = fmt.Errorf("panic: %v", r)
		}
	}()
	m.compute(&m.writer)
	return nil
}
