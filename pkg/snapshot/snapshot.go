package snapshot

import (
	"sync/atomic"

	"github.com/lumenquant/reactor/pkg/node"
)

// Writer owns the three buffers and publishes the current value of a
// fixed set of watched nodes. It is called from the engine thread,
// typically as the post-stabilization callback.
//
// A Writer supports exactly one Reader. The classic wait-free
// triple-buffer partitions exactly three buffer slots across exactly
// three roles — the writer's private "dirty" slot, the shared "clean"
// slot, and one reader's private "snap" slot; a second concurrent
// reader would need a fourth slot to stay non-blocking. An
// application needing more than one foreign-thread reader constructs
// one Writer (and watched-node list) per reader.
type Writer struct {
	names  []string
	index  map[string]int
	values []node.ScalarValuer

	buffers [3][]float64
	clean   atomic.Uint32
	dirty   uint32
}

// NewWriter returns a Writer publishing names[i] from values[i] on
// every Publish call. names must be unique.
func NewWriter(names []string, values []node.ScalarValuer) *Writer {
	k := len(names)
	w := &Writer{
		names:  append([]string(nil), names...),
		index:  make(map[string]int, k),
		values: append([]node.ScalarValuer(nil), values...),
		dirty:  1,
	}
	for i, n := range names {
		w.index[n] = i
	}
	for i := range w.buffers {
		w.buffers[i] = make([]float64, k)
	}
	w.clean.Store(0)
	return w
}

// Publish copies the current value of every watched node into the
// writer's private buffer, then atomically swaps it in as the new
// clean buffer. The reader's next Refresh after this call, if no
// later Publish intervenes, observes exactly this set of values — never
// a mix with an earlier or later Publish.
func (w *Writer) Publish() {
	buf := w.buffers[w.dirty]
	for i, v := range w.values {
		buf[i] = v.Value()
	}
	old := w.clean.Swap(w.dirty)
	w.dirty = old
}

// Reader reads a consistent snapshot of a Writer's watched nodes from
// any goroutine, without locks or coordination with the writer.
type Reader struct {
	w    *Writer
	snap uint32
}

// NewReader returns a Reader over w. snap starts at the one buffer
// index neither clean nor the writer's dirty slot can occupy at
// construction time.
func NewReader(w *Writer) *Reader {
	return &Reader{w: w, snap: 2}
}

// Refresh atomically swaps the reader's buffer for the shared clean
// buffer. After a Publish, that is the latest published snapshot. If
// no Publish happened since the previous Refresh, it is the buffer the
// reader handed over at that previous Refresh, which holds an older
// snapshot. Get without a preceding Refresh re-reads whatever snapshot
// the last Refresh captured.
func (r *Reader) Refresh() {
	old := r.w.clean.Swap(r.snap)
	r.snap = old
}

// Get returns the value of the watched node named name as of the last
// Refresh, and whether that name is watched by this reader's Writer.
func (r *Reader) Get(name string) (float64, bool) {
	idx, ok := r.w.index[name]
	if !ok {
		return 0, false
	}
	return r.w.buffers[r.snap][idx], true
}

// GetAt returns the value at watched-list position i as of the last
// Refresh. i must be in [0, len(names)) as passed to NewWriter.
func (r *Reader) GetAt(i int) float64 {
	return r.w.buffers[r.snap][i]
}

// ReadOne refreshes and returns a single named value in one call. It
// is convenient but reads only one value from one snapshot instant;
// calling it repeatedly for several names does NOT give a
// cross-value-consistent view, because each call may refresh to a
// different published snapshot. Use Refresh once followed by Get for
// every value a caller needs to compare together.
func (r *Reader) ReadOne(name string) (float64, bool) {
	r.Refresh()
	return r.Get(name)
}
