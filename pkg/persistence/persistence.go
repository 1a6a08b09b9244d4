package persistence

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lumenquant/reactor/pkg/engine"
	"github.com/lumenquant/reactor/pkg/node"
)

// Save captures every Persistable node's state from eng into an
// Envelope. Nodes that do not implement Persistable (every derived
// kind) are skipped; they are reconstructed by the full stabilization
// pass Restore forces after loading a snapshot.
func Save(eng *engine.Engine) (*Envelope, error) {
	topo := eng.Topology()
	nodes := eng.Nodes()

	env := &Envelope{
		Version:             envelopeVersion,
		TopologyFingerprint: Fingerprint(topo, nodes),
		CapturedAt:          time.Now(),
		Epoch:               eng.Epoch(),
	}

	for i, n := range nodes {
		p, ok := n.(node.Persistable)
		if !ok {
			continue
		}
		data, err := p.ExportState()
		if err != nil {
			return nil, fmt.Errorf("export state for node %q: %w", topo.Name(i), err)
		}
		env.Nodes = append(env.Nodes, NodeState{Name: topo.Name(i), Data: data})
	}
	return env, nil
}

// Marshal serializes env as JSON.
func Marshal(env *Envelope) ([]byte, error) {
	return json.MarshalIndent(env, "", "  ")
}

// Unmarshal deserializes JSON bytes into an Envelope, validating
// structural shape via JSON Schema first.
func Unmarshal(data []byte) (*Envelope, error) {
	if err := validateEnvelopeJSON(data); err != nil {
		return nil, err
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	return &env, nil
}

// Restore applies env's node states onto eng, then marks every node
// dirty so the next Stabilize call recomputes the whole graph from the
// restored sources. It rejects env if its format version is
// unsupported or its topology fingerprint does not match eng's
// compiled topology.
func Restore(eng *engine.Engine, env *Envelope) error {
	if env.Version != envelopeVersion {
		return fmt.Errorf("%w: got %q, want %q", ErrUnsupportedVersion, env.Version, envelopeVersion)
	}

	topo := eng.Topology()
	nodes := eng.Nodes()
	if got := Fingerprint(topo, nodes); got != env.TopologyFingerprint {
		return fmt.Errorf("%w: got %q, want %q", ErrIncompatibleSnapshot, got, env.TopologyFingerprint)
	}

	for _, ns := range env.Nodes {
		idx, ok := topo.IndexOf(ns.Name)
		if !ok {
			return fmt.Errorf("%w: snapshot references unknown node %q", ErrIncompatibleSnapshot, ns.Name)
		}
		p, ok := nodes[idx].(node.Persistable)
		if !ok {
			return fmt.Errorf("%w: node %q is no longer persistable", ErrIncompatibleSnapshot, ns.Name)
		}
		if err := p.ImportState(ns.Data); err != nil {
			return fmt.Errorf("restore state for node %q: %w", ns.Name, err)
		}
	}

	eng.MarkAllDirty()
	return nil
}
