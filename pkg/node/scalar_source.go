package node

import (
	"encoding/json"
	"math"

	"github.com/lumenquant/reactor/pkg/cutoff"
)

// ScalarSource holds one f64 mutated by external writers (typically
// the ingestion bridge's consumer loop). Its baseline — the value
// compared against on the next stabilize — only advances when a pass
// reports the value changed; writes that land within the cutoff's
// tolerance between passes never perturb it, so small sub-threshold
// drift cannot silently accumulate across many passes.
type ScalarSource struct {
	name        string
	cutoffFn    cutoff.Func
	baseline    float64
	writerValue float64
	initialized bool
}

// NewScalarSource returns a ScalarSource named name using cutoffFn for
// change detection. The initial writer value is 0.
func NewScalarSource(name string, cutoffFn cutoff.Func) *ScalarSource {
	return &ScalarSource{name: name, cutoffFn: cutoffFn}
}

func (s *ScalarSource) Name() string { return s.name }
func (s *ScalarSource) Kind() Kind   { return KindScalarSource }

// Value returns the value as of the last stabilize call.
func (s *ScalarSource) Value() float64 { return s.baseline }

// Write sets the value an upcoming stabilize call will observe. It
// rejects non-finite values with ErrInvalidInput and does not itself
// mark any dirty bit; the caller (the ingestion bridge) owns that.
func (s *ScalarSource) Write(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrInvalidInput
	}
	s.writerValue = v
	return nil
}

// Stabilize compares the current writer value against the baseline
// using the source's cutoff. The first call always reports changed.
func (s *ScalarSource) Stabilize() (bool, error) {
	changed := !s.initialized || s.cutoffFn(s.baseline, s.writerValue)
	if changed {
		s.baseline = s.writerValue
		s.initialized = true
	}
	return changed, nil
}

type scalarSourceState struct {
	Baseline    float64 `json:"baseline"`
	Initialized bool    `json:"initialized"`
}

// ExportState captures the baseline and initialized flag; the writer
// buffer is transient producer state and is not persisted.
func (s *ScalarSource) ExportState() ([]byte, error) {
	return json.Marshal(scalarSourceState{Baseline: s.baseline, Initialized: s.initialized})
}

// ImportState restores the baseline and initialized flag. The writer
// buffer is set to match, so a stabilize call with no intervening
// Write reports no change.
func (s *ScalarSource) ImportState(data []byte) error {
	var st scalarSourceState
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	s.baseline = st.Baseline
	s.writerValue = st.Baseline
	s.initialized = st.Initialized
	return nil
}
