package observability

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// profileEntry tracks stabilize timing for one node across every pass
// it was actually visited in (i.e. its dirty bit was set). A node the
// dirty set never marks is invisible here — the cheapest correct
// answer to "was this node touched this pass", matching count's role
// as a visit counter rather than a pass counter.
type profileEntry struct {
	name   string
	count  int64
	sumNs  int64
	minNs  int64
	maxNs  int64
	lastNs int64
}

// Profile is a flat table indexed by topological index, resized only
// once at graph build time. Record is called from the engine's
// single consumer thread on the stabilization hot path; Dump takes a
// lightweight lock so a foreign thread can read a consistent view
// without blocking the engine for long.
type Profile struct {
	mu      sync.Mutex
	entries []profileEntry
}

// NewProfile returns a Profile with one entry per element of names,
// indexed by topological position and labeled by name in the dump.
func NewProfile(names []string) *Profile {
	entries := make([]profileEntry, len(names))
	for i, n := range names {
		entries[i].name = n
	}
	return &Profile{entries: entries}
}

// Record folds one node's stabilize duration into its entry.
func (p *Profile) Record(topoIndex int, durationNs int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e := &p.entries[topoIndex]
	if e.count == 0 || durationNs < e.minNs {
		e.minNs = durationNs
	}
	if durationNs > e.maxNs {
		e.maxNs = durationNs
	}
	e.sumNs += durationNs
	e.lastNs = durationNs
	e.count++
}

// OnPassStart implements Listener.
func (p *Profile) OnPassStart(epoch uint64) {}

// OnNodeStabilized implements Listener, recording the node's duration.
func (p *Profile) OnNodeStabilized(epoch uint64, topoIndex int, name string, changed bool, durationNs int64) {
	p.Record(topoIndex, durationNs)
}

// OnNodeError implements Listener; errors do not affect timing.
func (p *Profile) OnNodeError(epoch uint64, topoIndex int, name string, err error) {}

// OnPassEnd implements Listener.
func (p *Profile) OnPassEnd(epoch uint64, nodesStabilized int) {}

// Dump formats a human-readable view sorted by total time descending,
// with locale-aware thousands separators on the counts and nanosecond
// sums.
func (p *Profile) Dump() string {
	p.mu.Lock()
	snapshot := make([]profileEntry, len(p.entries))
	copy(snapshot, p.entries)
	p.mu.Unlock()

	sort.Slice(snapshot, func(i, j int) bool { return snapshot[i].sumNs > snapshot[j].sumNs })

	printer := message.NewPrinter(language.English)
	var b strings.Builder
	for _, e := range snapshot {
		if e.count == 0 {
			continue
		}
		printer.Fprintf(&b, "%-24s count=%d sum_ns=%d min_ns=%d max_ns=%d last_ns=%d\n",
			e.name, e.count, e.sumNs, e.minNs, e.maxNs, e.lastNs)
	}
	return b.String()
}
