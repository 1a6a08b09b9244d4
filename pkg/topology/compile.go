package topology

import "sort"

// Compile freezes the builder's nodes and edges into an immutable
// Topology, computing a topological order with Kahn's algorithm and
// laying the graph out in CSR form indexed by that order.
//
// Compile runs in O(V + E). A cycle anywhere in the graph is reported
// as ErrCycleDetected, naming the node names still unprocessed when
// the queue empties.
func (b *Builder) Compile() (*Topology, error) {
	numNodes := len(b.names)
	if numNodes == 0 {
		return &Topology{}, nil
	}

	// build-time adjacency: parent build index -> child build indices
	children := make([][]int, numNodes)
	inDegree := make([]int, numNodes)
	for childIdx := 0; childIdx < numNodes; childIdx++ {
		parents := b.parents[childIdx]
		inDegree[childIdx] = len(parents)
		for _, parentIdx := range parents {
			children[parentIdx] = append(children[parentIdx], childIdx)
		}
	}

	// seed the queue with zero in-degree nodes in insertion order;
	// ties among nodes that reach zero in-degree later are likewise
	// broken by the order children are visited below, so the overall
	// topological order is stable for a given build order.
	var orphans []int
	for i := 0; i < numNodes; i++ {
		if inDegree[i] == 0 {
			orphans = append(orphans, i)
		}
	}

	remaining := append([]int(nil), inDegree...)
	queue := make([]int, numNodes)
	queueStart, queueEnd := 0, len(orphans)
	copy(queue, orphans)

	order := make([]int, 0, numNodes)
	for queueStart < queueEnd {
		current := queue[queueStart]
		queueStart++
		order = append(order, current)

		for _, child := range children[current] {
			remaining[child]--
			if remaining[child] == 0 {
				queue[queueEnd] = child
				queueEnd++
			}
		}
	}

	if len(order) != numNodes {
		return nil, cycleError(b.names, remaining)
	}

	buildToTopo := make([]int, numNodes)
	for topoIdx, buildIdx := range order {
		buildToTopo[buildIdx] = topoIdx
	}

	childOffsets := make([]int32, numNodes+1)
	var childIndices []int32
	parentCounts := make([]int32, numNodes)
	sourceBits := make([]bool, numNodes)
	names := make([]string, numNodes)
	nameToIndex := make(map[string]int, numNodes)

	for topoIdx, buildIdx := range order {
		names[topoIdx] = b.names[buildIdx]
		nameToIndex[b.names[buildIdx]] = topoIdx
		parentCounts[topoIdx] = int32(inDegree[buildIdx])
		sourceBits[topoIdx] = inDegree[buildIdx] == 0

		childOffsets[topoIdx] = int32(len(childIndices))
		for _, childBuildIdx := range children[buildIdx] {
			childIndices = append(childIndices, int32(buildToTopo[childBuildIdx]))
		}
	}
	childOffsets[numNodes] = int32(len(childIndices))

	return &Topology{
		names:        names,
		nameToIndex:  nameToIndex,
		childOffsets: childOffsets,
		childIndices: childIndices,
		parentCounts: parentCounts,
		sourceBits:   sourceBits,
	}, nil
}

// cycleError reports the names of nodes that never reached zero
// in-degree, i.e. the nodes participating in (or downstream of) a
// cycle.
func cycleError(names []string, remaining []int) error {
	var stuck []string
	for i, r := range remaining {
		if r > 0 {
			stuck = append(stuck, names[i])
		}
	}
	sort.Strings(stuck)
	return &CycleError{Nodes: stuck}
}
