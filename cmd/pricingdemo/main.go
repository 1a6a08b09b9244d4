// Command pricingdemo wires a small bid/ask pricing graph through the
// ingestion bridge and reads it back out through the snapshot
// substrate, printing mid/spread as synthetic market ticks arrive.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/lumenquant/reactor/pkg/config"
	"github.com/lumenquant/reactor/pkg/cutoff"
	"github.com/lumenquant/reactor/pkg/engine"
	"github.com/lumenquant/reactor/pkg/ingest"
	"github.com/lumenquant/reactor/pkg/node"
	"github.com/lumenquant/reactor/pkg/observability"
	"github.com/lumenquant/reactor/pkg/operator"
	"github.com/lumenquant/reactor/pkg/snapshot"
	"github.com/lumenquant/reactor/pkg/topology"
)

func main() {
	fmt.Println("=================================================")
	fmt.Println("Mid/Spread Pricing Demo")
	fmt.Println("=================================================")
	fmt.Println()

	eng, bidIdx, askIdx := buildMidSpreadEngine()

	cfg := config.Default()
	cfg.RingCapacity = 256
	cfg.WaitStrategy = config.WaitYield
	cfg.Listeners = []config.ListenerConfig{{Kind: "latency"}, {Kind: "profile"}}

	names := make([]string, eng.Topology().NodeCount())
	for i := range names {
		names[i] = eng.Topology().Name(i)
	}

	var latency *observability.LatencyAggregator
	var profile *observability.Profile
	for _, lc := range cfg.Listeners {
		l, err := observability.Build(lc, names, nil, context.Background())
		if err != nil {
			fmt.Printf("failed to build listener %q: %v\n", lc.Kind, err)
			return
		}
		eng.AddListener(l)
		switch v := l.(type) {
		case *observability.LatencyAggregator:
			latency = v
		case *observability.Profile:
			profile = v
		}
	}

	br, err := ingest.New(eng, cfg)
	if err != nil {
		fmt.Printf("failed to build ingestion bridge: %v\n", err)
		return
	}

	mid, _ := eng.Topology().IndexOf("mid")
	spread, _ := eng.Topology().IndexOf("spread")
	writer := snapshot.NewWriter(
		[]string{"mid", "spread"},
		[]node.ScalarValuer{
			eng.Nodes()[mid].(node.ScalarValuer),
			eng.Nodes()[spread].(node.ScalarValuer),
		},
	)
	reader := snapshot.NewReader(writer)
	br.SetPostStabilizeFunc(func(epoch uint64, nodesStabilized int) {
		writer.Publish()
	})

	ctx, cancel := context.WithCancel(context.Background())
	go br.Run(ctx)

	ticks := []struct{ bid, ask float64 }{
		{99.50, 100.50},
		{99.75, 100.25},
		{99.75, 100.25}, // repeat: should not move mid/spread
		{98.00, 102.00},
	}

	for i, tick := range ticks {
		br.Publish(ingest.UpdateEvent{TargetIndex: uint32(bidIdx), DoubleValue: tick.bid, VectorIndex: -1})
		br.Publish(ingest.UpdateEvent{TargetIndex: uint32(askIdx), DoubleValue: tick.ask, VectorIndex: -1, ForceFlush: true})

		time.Sleep(10 * time.Millisecond)
		reader.Refresh()
		midVal, _ := reader.Get("mid")
		spreadVal, _ := reader.Get("spread")
		fmt.Printf("tick %d: bid=%.2f ask=%.2f -> mid=%.2f spread=%.2f\n", i+1, tick.bid, tick.ask, midVal, spreadVal)
	}

	br.Shutdown(cfg.DrainTimeout)
	cancel()

	fmt.Println()
	fmt.Printf("passes run: %d, avg pass latency: %.1fus, dropped events: %d\n",
		latency.Count(), latency.Avg()/1000, br.DroppedEvents())
	fmt.Println()
	fmt.Print(profile.Dump())
}

func buildMidSpreadEngine() (eng *engine.Engine, bidIdx, askIdx int) {
	b := topology.NewBuilder()
	b.AddNode("bid")
	b.AddNode("ask")
	b.AddNode("mid")
	b.AddNode("spread")
	b.AddEdge("bid", "mid")
	b.AddEdge("ask", "mid")
	b.AddEdge("bid", "spread")
	b.AddEdge("ask", "spread")

	topo, err := b.Compile()
	if err != nil {
		panic(err)
	}

	bid := node.NewScalarSource("bid", cutoff.Exact())
	ask := node.NewScalarSource("ask", cutoff.Exact())

	nodes := make([]node.Node, topo.NodeCount())
	bidIdx, _ = topo.IndexOf("bid")
	askIdx, _ = topo.IndexOf("ask")
	midIdx, _ := topo.IndexOf("mid")
	spreadIdx, _ := topo.IndexOf("spread")

	nodes[bidIdx] = bid
	nodes[askIdx] = ask
	nodes[midIdx] = node.NewScalarDerived2("mid", cutoff.Exact(), nil, bid, ask, operator.Mean2())
	nodes[spreadIdx] = node.NewScalarDerived2("spread", cutoff.Exact(), nil, ask, bid, operator.Subtract())

	return engine.New(topo, nodes), bidIdx, askIdx
}
