package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/lumenquant/reactor/pkg/config"
	"github.com/lumenquant/reactor/pkg/cutoff"
	"github.com/lumenquant/reactor/pkg/engine"
	"github.com/lumenquant/reactor/pkg/node"
	"github.com/lumenquant/reactor/pkg/operator"
	"github.com/lumenquant/reactor/pkg/topology"
)

func buildDoublerEngine(t *testing.T) (*engine.Engine, int) {
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

	return engine.New(topo, nodes), xIdx
}

func TestBridge_CoalescesBurstIntoOnePass(t *testing.T) {
	eng, xIdx := buildDoublerEngine(t)
	cfg := config.Testing()
	br, err := New(eng, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var passes []int
	br.SetPostStabilizeFunc(func(epoch uint64, nodesStabilized int) {
		passes = append(passes, nodesStabilized)
	})

	for i := 0; i < 10; i++ {
		if !br.Publish(UpdateEvent{TargetIndex: uint32(xIdx), DoubleValue: float64(i), VectorIndex: -1}) {
			t.Fatalf("Publish() failed at i=%d", i)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	go func() {
		for !br.ring.empty() {
			time.Sleep(time.Millisecond)
		}
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()
	br.Run(ctx)

	if len(passes) != 1 {
		t.Fatalf("stabilization passes run = %d, want 1 (burst coalesced)", len(passes))
	}
	if passes[0] != 2 {
		t.Errorf("nodes_stabilized = %d, want 2", passes[0])
	}
}

func TestBridge_BatchCoalescingDisabledRunsOnePassPerEvent(t *testing.T) {
	eng, xIdx := buildDoublerEngine(t)
	cfg := config.Testing()
	cfg.BatchCoalescing = false
	br, err := New(eng, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var passes []int
	br.SetPostStabilizeFunc(func(epoch uint64, nodesStabilized int) {
		passes = append(passes, nodesStabilized)
	})

	for i := 0; i < 5; i++ {
		if !br.Publish(UpdateEvent{TargetIndex: uint32(xIdx), DoubleValue: float64(i), VectorIndex: -1}) {
			t.Fatalf("Publish() failed at i=%d", i)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	go func() {
		for !br.ring.empty() {
			time.Sleep(time.Millisecond)
		}
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()
	br.Run(ctx)

	if len(passes) != 5 {
		t.Fatalf("stabilization passes run = %d, want 5 (one per event, coalescing disabled)", len(passes))
	}
}

func TestBridge_DropsEventForNonSourceTarget(t *testing.T) {
	eng, _ := buildDoublerEngine(t)
	cfg := config.Testing()
	br, err := New(eng, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	yIdx, _ := eng.Topology().IndexOf("y")
	br.Publish(UpdateEvent{TargetIndex: uint32(yIdx), DoubleValue: 1.0, VectorIndex: -1, ForceFlush: true})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	go br.Run(ctx)
	time.Sleep(20 * time.Millisecond)
	cancel()

	if got := br.DroppedEvents(); got != 1 {
		t.Errorf("DroppedEvents() = %d, want 1", got)
	}
}

func TestBridge_ShutdownDrainsPendingEvents(t *testing.T) {
	eng, xIdx := buildDoublerEngine(t)
	cfg := config.Testing()
	br, err := New(eng, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	br.Publish(UpdateEvent{TargetIndex: uint32(xIdx), DoubleValue: 5.0, VectorIndex: -1})
	br.Shutdown(cfg.DrainTimeout)

	yIdx, _ := eng.Topology().IndexOf("y")
	_ = yIdx
	if !br.ring.empty() {
		t.Error("ring should be empty after Shutdown drains it")
	}
	if eng.Epoch() != 1 {
		t.Errorf("Epoch() = %d, want 1 after Shutdown's final pass", eng.Epoch())
	}
}
