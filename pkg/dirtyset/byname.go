package dirtyset

import "github.com/lumenquant/reactor/pkg/topology"

// SetByName resolves name through topo's name index and marks the
// corresponding node dirty. It returns topology.ErrUnknownNode if the
// name does not exist.
func (s *Set) SetByName(name string, topo *topology.Topology) error {
	idx, ok := topo.IndexOf(name)
	if !ok {
		return topology.ErrUnknownNode
	}
	s.Set(idx)
	return nil
}
