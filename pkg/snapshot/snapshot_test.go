package snapshot

import (
	"testing"

	"github.com/lumenquant/reactor/pkg/node"
)

type fakeScalar struct{ v float64 }

func (f *fakeScalar) Value() float64 { return f.v }

func TestWriter_PublishThenReaderRefreshSeesLatest(t *testing.T) {
	a := &fakeScalar{v: 1}
	b := &fakeScalar{v: 2}
	w := NewWriter([]string{"a", "b"}, []node.ScalarValuer{a, b})
	r := NewReader(w)

	r.Refresh()
	if v, ok := r.Get("a"); !ok || v != 0 {
		t.Fatalf("Get(a) before any Publish = %v, %v, want 0, true (zero-valued buffer)", v, ok)
	}

	w.Publish()
	r.Refresh()
	va, _ := r.Get("a")
	vb, _ := r.Get("b")
	if va != 1 || vb != 2 {
		t.Fatalf("after Publish: a=%v b=%v, want 1, 2", va, vb)
	}
}

func TestWriter_ReaderNeverMixesAcrossPasses(t *testing.T) {
	a := &fakeScalar{v: 0}
	b := &fakeScalar{v: 0}
	w := NewWriter([]string{"a", "b"}, []node.ScalarValuer{a, b})
	r := NewReader(w)

	for pass := 1; pass <= 5; pass++ {
		a.v = float64(pass)
		b.v = float64(pass) * 10
		w.Publish()

		r.Refresh()
		va, _ := r.Get("a")
		vb, _ := r.Get("b")
		if vb != va*10 {
			t.Fatalf("pass %d: a=%v b=%v, expected b == 10*a (values from the same Publish call)", pass, va, vb)
		}
	}
}

func TestWriter_StaleReadBeforeRefresh(t *testing.T) {
	a := &fakeScalar{v: 1}
	w := NewWriter([]string{"a"}, []node.ScalarValuer{a})
	r := NewReader(w)

	r.Refresh()
	a.v = 2
	w.Publish()

	// Get without an intervening Refresh still observes the prior
	// snapshot: staleness is the only allowed failure mode.
	v, _ := r.Get("a")
	if v != 0 {
		t.Fatalf("Get(a) before Refresh = %v, want 0 (the pre-Publish snapshot)", v)
	}

	r.Refresh()
	v, _ = r.Get("a")
	if v != 2 {
		t.Fatalf("Get(a) after Refresh = %v, want 2", v)
	}
}

func TestWriter_GetUnknownName(t *testing.T) {
	w := NewWriter([]string{"a"}, []node.ScalarValuer{&fakeScalar{v: 1}})
	r := NewReader(w)
	r.Refresh()
	if _, ok := r.Get("ghost"); ok {
		t.Error("Get(ghost) should report ok=false for an unwatched name")
	}
}

func TestReader_ReadOneRefreshesImplicitly(t *testing.T) {
	a := &fakeScalar{v: 7}
	w := NewWriter([]string{"a"}, []node.ScalarValuer{a})
	r := NewReader(w)
	w.Publish()

	v, ok := r.ReadOne("a")
	if !ok || v != 7 {
		t.Fatalf("ReadOne(a) = %v, %v, want 7, true", v, ok)
	}
}
