package node

// Kind identifies which concrete node variant a Node is, for
// observability and debugging (the engine never switches on Kind to
// decide how to stabilize a node — that is Stabilize's job).
type Kind int

const (
	KindScalarSource Kind = iota
	KindScalarDerived
	KindBoolean
	KindSelector
	KindVectorSource
	KindVectorDerived
	KindVectorElement
	KindKeyedMap
)

func (k Kind) String() string {
	switch k {
	case KindScalarSource:
		return "scalar_source"
	case KindScalarDerived:
		return "scalar_derived"
	case KindBoolean:
		return "boolean"
	case KindSelector:
		return "selector"
	case KindVectorSource:
		return "vector_source"
	case KindVectorDerived:
		return "vector_derived"
	case KindVectorElement:
		return "vector_element"
	case KindKeyedMap:
		return "keyed_map"
	default:
		return "unknown"
	}
}

// Node is the contract every node kind fulfills. Stabilize recomputes
// the node's value and reports whether the change should propagate to
// children; it is only ever called by the stabilization engine's
// single consumer thread.
type Node interface {
	Name() string
	Kind() Kind
	Stabilize() (changed bool, err error)
}

// ScalarValuer is implemented by any node that exposes a current f64
// value: ScalarSource, ScalarDerived, Selector, VectorElement.
type ScalarValuer interface {
	Value() float64
}

// BoolValuer is implemented by Boolean.
type BoolValuer interface {
	Bool() bool
}

// VectorValuer is implemented by VectorSource and VectorDerived.
type VectorValuer interface {
	At(i int) float64
	Size() int
}

// KeyedValuer is implemented by KeyedMap.
type KeyedValuer interface {
	Get(key string) (float64, bool)
	Keys() []string
}

// ScalarWriter is implemented by ScalarSource; it is the engine's entry
// point for external scalar updates.
type ScalarWriter interface {
	Write(v float64) error
}

// VectorElementWriter is implemented by VectorSource; it is the
// engine's entry point for external per-element vector updates.
type VectorElementWriter interface {
	WriteAt(i int, value float64) error
}

// Persistable is implemented by node kinds whose state cannot be
// recomputed from other nodes: ScalarSource and VectorSource. A
// derived node's value is a pure function of its ancestors, so only a
// source's externally-written baseline needs to round-trip through a
// snapshot; restoring every Persistable node and then forcing a full
// stabilization pass reconstructs the rest of the graph.
type Persistable interface {
	ExportState() ([]byte, error)
	ImportState(data []byte) error
}
