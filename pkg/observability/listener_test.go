package observability

import (
	"errors"
	"testing"
)

type recordingListener struct {
	passStarts []uint64
	stabilized []string
	errored    []string
	passEnds   []int
}

func (r *recordingListener) OnPassStart(epoch uint64) {
	r.passStarts = append(r.passStarts, epoch)
}

func (r *recordingListener) OnNodeStabilized(epoch uint64, topoIndex int, name string, changed bool, durationNs int64) {
	r.stabilized = append(r.stabilized, name)
}

func (r *recordingListener) OnNodeError(epoch uint64, topoIndex int, name string, err error) {
	r.errored = append(r.errored, name)
}

func (r *recordingListener) OnPassEnd(epoch uint64, nodesStabilized int) {
	r.passEnds = append(r.passEnds, nodesStabilized)
}

func TestComposite_FansOutToEveryListener(t *testing.T) {
	a := &recordingListener{}
	b := &recordingListener{}
	c := NewComposite()
	c.Add(a)
	c.Add(b)

	c.OnPassStart(1)
	c.OnNodeStabilized(1, 0, "mid", true, 100)
	c.OnNodeError(1, 1, "spread", errors.New("boom"))
	c.OnPassEnd(1, 2)

	for name, l := range map[string]*recordingListener{"a": a, "b": b} {
		if len(l.passStarts) != 1 || l.passStarts[0] != 1 {
			t.Errorf("%s.passStarts = %v, want [1]", name, l.passStarts)
		}
		if len(l.stabilized) != 1 || l.stabilized[0] != "mid" {
			t.Errorf("%s.stabilized = %v, want [mid]", name, l.stabilized)
		}
		if len(l.errored) != 1 || l.errored[0] != "spread" {
			t.Errorf("%s.errored = %v, want [spread]", name, l.errored)
		}
		if len(l.passEnds) != 1 || l.passEnds[0] != 2 {
			t.Errorf("%s.passEnds = %v, want [2]", name, l.passEnds)
		}
	}
}

func TestComposite_AddDoesNotMutatePreviouslyObservedSlice(t *testing.T) {
	c := NewComposite()
	a := &recordingListener{}
	c.Add(a)
	before := c.listeners

	b := &recordingListener{}
	c.Add(b)

	if len(before) != 1 {
		t.Fatalf("previously captured slice header changed length to %d, want 1 (Add must not mutate in place)", len(before))
	}
	if len(c.listeners) != 2 {
		t.Errorf("listeners after second Add = %d, want 2", len(c.listeners))
	}
}

func TestNoOpListener_SatisfiesListenerWithoutPanicking(t *testing.T) {
	var l Listener = NoOpListener{}
	l.OnPassStart(0)
	l.OnNodeStabilized(0, 0, "x", false, 0)
	l.OnNodeError(0, 0, "x", errors.New("boom"))
	l.OnPassEnd(0, 0)
}
