package node

import (
	"encoding/json"
	"math"

	"github.com/lumenquant/reactor/pkg/cutoff"
)

// VectorSource holds a fixed-length []f64 mutated by external
// writers. Like ScalarSource, its baseline only advances on a pass
// that reports changed, so writes that drift within tolerance across
// many passes cannot silently accumulate.
type VectorSource struct {
	name        string
	tolerance   float64
	baseline    []float64
	writer      []float64
	initialized bool
}

// NewVectorSource returns a VectorSource named name with the given
// size and elementwise absolute tolerance. Values start at 0.
func NewVectorSource(name string, size int, tolerance float64) *VectorSource {
	return &VectorSource{
		name:      name,
		tolerance: tolerance,
		baseline:  make([]float64, size),
		writer:    make([]float64, size),
	}
}

func (v *VectorSource) Name() string { return v.name }
func (v *VectorSource) Kind() Kind   { return KindVectorSource }
func (v *VectorSource) Size() int    { return len(v.baseline) }

// At returns element i as of the last stabilize call.
func (v *VectorSource) At(i int) float64 { return v.baseline[i] }

// WriteVector copies values into the internal writer buffer (never
// aliasing the caller's slice). It rejects a size mismatch and any
// non-finite element.
func (v *VectorSource) WriteVector(values []float64) error {
	if len(values) != len(v.writer) {
		return ErrShapeMismatch
	}
	for _, x := range values {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return ErrInvalidInput
		}
	}
	copy(v.writer, values)
	return nil
}

// WriteAt sets element i of the writer buffer, bounds- and
// finiteness-checked.
func (v *VectorSource) WriteAt(i int, value float64) error {
	if i < 0 || i >= len(v.writer) {
		return ErrIndexOutOfBounds
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ErrInvalidInput
	}
	v.writer[i] = value
	return nil
}

// Stabilize compares the writer buffer elementwise against the
// baseline with the node's absolute tolerance, returning true on the
// first exceedance (or unconditionally on the first call).
func (v *VectorSource) Stabilize() (bool, error) {
	changed := !v.initialized || vectorChanged(v.baseline, v.writer, v.tolerance)
	if changed {
		copy(v.baseline, v.writer)
		v.initialized = true
	}
	return changed, nil
}

type vectorSourceState struct {
	Baseline    []float64 `json:"baseline"`
	Initialized bool      `json:"initialized"`
}

// ExportState captures the baseline and initialized flag; the writer
// buffer is transient producer state and is not persisted.
func (v *VectorSource) ExportState() ([]byte, error) {
	return json.Marshal(vectorSourceState{Baseline: append([]float64(nil), v.baseline...), Initialized: v.initialized})
}

// ImportState restores the baseline and initialized flag. It rejects a
// size mismatch between the stored and configured vector width.
func (v *VectorSource) ImportState(data []byte) error {
	var st vectorSourceState
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	if len(st.Baseline) != len(v.baseline) {
		return ErrShapeMismatch
	}
	copy(v.baseline, st.Baseline)
	copy(v.writer, st.Baseline)
	v.initialized = st.Initialized
	return nil
}

// vectorChanged reports whether any element of cur differs from the
// matching element of prev by more than tolerance, short-circuiting
// on the first exceedance found.
func vectorChanged(prev, cur []float64, tolerance float64) bool {
	cmp := cutoff.Absolute(tolerance)
	for i := range cur {
		if cmp(prev[i], cur[i]) {
			return true
		}
	}
	return false
}
