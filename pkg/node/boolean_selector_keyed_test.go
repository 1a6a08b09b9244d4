package node

import (
	"math"
	"testing"

	"github.com/lumenquant/reactor/pkg/cutoff"
)

func TestBoolean_FlipsOnPredicateChange(t *testing.T) {
	src := NewScalarSource("a", cutoff.Exact())
	src.Write(10)
	src.Stabilize()

	b := NewBoolean("a_gt_50", src, func(v float64) bool { return v > 50 })
	changed, _ := b.Stabilize()
	if !changed {
		t.Fatal("first stabilize should report changed")
	}
	if b.Bool() {
		t.Error("10 > 50 should be false")
	}

	src.Write(100)
	src.Stabilize()
	changed, _ = b.Stabilize()
	if !changed {
		t.Fatal("flipping from false to true should report changed")
	}
	if !b.Bool() {
		t.Error("100 > 50 should be true")
	}

	changed, _ = b.Stabilize()
	if changed {
		t.Fatal("re-evaluating an unchanged predicate should not report changed")
	}
}

func TestSelector_SwitchesBetweenInputs(t *testing.T) {
	cond := NewScalarSource("flag", cutoff.Exact())
	cond.Write(1)
	cond.Stabilize()
	predicate := NewBoolean("flag_set", cond, func(v float64) bool { return v != 0 })
	predicate.Stabilize()

	ifTrue := NewScalarSource("hi", cutoff.Exact())
	ifTrue.Write(100)
	ifTrue.Stabilize()
	ifFalse := NewScalarSource("lo", cutoff.Exact())
	ifFalse.Write(1)
	ifFalse.Stabilize()

	sel := NewSelector("picked", predicate, ifTrue, ifFalse)
	changed, _ := sel.Stabilize()
	if !changed || sel.Value() != 100 {
		t.Fatalf("Stabilize() changed=%v value=%v, want true/100", changed, sel.Value())
	}
}

func TestKeyedMap_ChangeDetectionAndTrapping(t *testing.T) {
	km := NewKeyedMap("legs", []string{"a", "b"}, 1e-9, nil, func(w KeyedWriter) {
		w.Set(0, 1.0)
		w.Set(1, 2.0)
	})
	changed, err := km.Stabilize()
	if err != nil {
		t.Fatalf("Stabilize() error = %v", err)
	}
	if !changed {
		t.Fatal("first stabilize should report changed")
	}
	if v, ok := km.Get("b"); !ok || v != 2.0 {
		t.Fatalf("Get(\"b\") = %v, %v, want 2.0, true", v, ok)
	}
	if _, ok := km.Get("ghost"); ok {
		t.Fatal("Get of an unknown key should report ok=false")
	}

	changed, _ = km.Stabilize()
	if changed {
		t.Fatal("recomputing identical values should not report changed")
	}
}

func TestKeyedMap_TrapsPanic(t *testing.T) {
	km := NewKeyedMap("legs", []string{"a"}, 1e-9, nil, func(w KeyedWriter) {
		panic("operator exploded")
	})
	_, err := km.Stabilize()
	if err == nil {
		t.Fatal("Stabilize() should return a trapped operator error")
	}
	v, _ := km.Get("a")
	if !math.IsNaN(v) {
		t.Errorf("Get(\"a\") = %v, want NaN after a trapped panic", v)
	}
}
