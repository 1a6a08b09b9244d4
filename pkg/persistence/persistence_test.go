package persistence

import (
	"errors"
	"testing"
	"time"

	"github.com/lumenquant/reactor/pkg/cutoff"
	"github.com/lumenquant/reactor/pkg/engine"
	"github.com/lumenquant/reactor/pkg/node"
	"github.com/lumenquant/reactor/pkg/operator"
	"github.com/lumenquant/reactor/pkg/topology"
)

func buildDoublerEngine(t *testing.T) *engine.Engine {
	t.Helper()
	b := topology.NewBuilder()
	b.AddNode("x")
	b.AddNode("y")
	if err := b.AddEdge("x", "y"); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	topo, err := b.Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	x := node.NewScalarSource("x", cutoff.Exact())
	nodes := make([]node.Node, topo.NodeCount())
	xIdx, _ := topo.IndexOf("x")
	yIdx, _ := topo.IndexOf("y")
	nodes[xIdx] = x
	nodes[yIdx] = node.NewScalarDerived1("y", cutoff.Exact(), nil, x, operator.Func1(func(v float64) float64 { return v * 2 }))

	return engine.New(topo, nodes)
}

func TestSaveRestore_RoundTripsSourceState(t *testing.T) {
	eng := buildDoublerEngine(t)
	xIdx, _ := eng.Topology().IndexOf("x")
	if err := eng.UpdateScalar(xIdx, 21); err != nil {
		t.Fatalf("UpdateScalar() error = %v", err)
	}
	if _, err := eng.Stabilize(); err != nil {
		t.Fatalf("Stabilize() error = %v", err)
	}

	env, err := Save(eng)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	raw, err := Marshal(env)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	restored, err := Unmarshal(raw)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	eng2 := buildDoublerEngine(t)
	if err := Restore(eng2, restored); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	n, err := eng2.Stabilize()
	if err != nil {
		t.Fatalf("Stabilize() after restore error = %v", err)
	}
	if n != 2 {
		t.Errorf("nodes stabilized after restore = %d, want 2 (Restore marks every node dirty)", n)
	}

	yIdx, _ := eng2.Topology().IndexOf("y")
	y := eng2.Nodes()[yIdx].(node.ScalarValuer)
	if y.Value() != 42 {
		t.Errorf("y.Value() after restore+stabilize = %v, want 42", y.Value())
	}
}

func TestSave_SetsCapturedAt(t *testing.T) {
	eng := buildDoublerEngine(t)
	before := time.Now()
	env, err := Save(eng)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if env.CapturedAt.Before(before) {
		t.Errorf("CapturedAt = %v, want at or after %v", env.CapturedAt, before)
	}
	if env.CapturedAt.IsZero() {
		t.Error("CapturedAt should not be the zero value")
	}
}

func TestRestore_RejectsIncompatibleTopology(t *testing.T) {
	eng := buildDoublerEngine(t)
	env, err := Save(eng)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	b := topology.NewBuilder()
	b.AddNode("x")
	b.AddNode("y")
	b.AddNode("z")
	b.AddEdge("x", "y")
	b.AddEdge("y", "z")
	topo, err := b.Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	x := node.NewScalarSource("x", cutoff.Exact())
	nodes := make([]node.Node, topo.NodeCount())
	xIdx, _ := topo.IndexOf("x")
	yIdx, _ := topo.IndexOf("y")
	zIdx, _ := topo.IndexOf("z")
	nodes[xIdx] = x
	yNode := node.NewScalarDerived1("y", cutoff.Exact(), nil, x, operator.Func1(func(v float64) float64 { return v * 2 }))
	nodes[yIdx] = yNode
	nodes[zIdx] = node.NewScalarDerived1("z", cutoff.Exact(), nil, yNode, operator.Func1(func(v float64) float64 { return v + 1 }))
	differentEng := engine.New(topo, nodes)

	if err := Restore(differentEng, env); !errors.Is(err, ErrIncompatibleSnapshot) {
		t.Errorf("Restore() error = %v, want ErrIncompatibleSnapshot", err)
	}
}

func TestUnmarshal_RejectsMalformedEnvelope(t *testing.T) {
	if _, err := Unmarshal([]byte(`{"version": "1.0.0"}`)); err == nil {
		t.Error("Unmarshal() on an envelope missing required fields should fail schema validation")
	}
}

func TestFingerprint_StableAcrossEquivalentBuilds(t *testing.T) {
	eng1 := buildDoublerEngine(t)
	eng2 := buildDoublerEngine(t)

	f1 := Fingerprint(eng1.Topology(), eng1.Nodes())
	f2 := Fingerprint(eng2.Topology(), eng2.Nodes())
	if f1 != f2 {
		t.Errorf("Fingerprint() differs across two identically-built topologies: %q vs %q", f1, f2)
	}
}
