package guard

import (
	"errors"
	"testing"

	"github.com/backfill-labs/backfill/pkg/registry"
)

func TestAlways(t *testing.T) {
	ns := registry.NewTable()

	for _, want := range []bool{true, false} {
		got, err := Always(want).Eval(ns)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("Always(%v).Eval = %v", want, got)
		}
	}
	if !Always(true).Immediate() {
		t.Error("Always should be immediate")
	}
}

func TestBoundAndMissing(t *testing.T) {
	ns := registry.NewTable()
	if err := ns.Bind("present", 1); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		p        Predicate
		expected bool
	}{
		{"bound present", Bound("present"), true},
		{"bound absent", Bound("absent"), false},
		{"missing present", Missing("present"), false},
		{"missing absent", Missing("absent"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.p.Eval(ns)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Eval = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAndEvaluatesAllConjuncts(t *testing.T) {
	ns := registry.NewTable()

	var seen []int
	probe := func(i int, v bool) Predicate {
		return Cond(func(registry.Namespace) (bool, error) {
			seen = append(seen, i)
			return v, nil
		})
	}

	got, err := And(probe(0, true), probe(1, true), probe(2, true)).Eval(ns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Error("conjunction of trues should be true")
	}
	// Every conjunct must be consulted, not just a prefix of the list.
	if len(seen) != 3 {
		t.Errorf("evaluated %d conjuncts, want 3", len(seen))
	}

	seen = nil
	got, err = And(probe(0, true), probe(1, false), probe(2, true)).Eval(ns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Error("conjunction with a false operand should be false")
	}
	if len(seen) != 2 {
		t.Errorf("evaluated %d conjuncts before short-circuit, want 2", len(seen))
	}
}

func TestOrEvaluatesAllDisjuncts(t *testing.T) {
	ns := registry.NewTable()

	var count int
	probe := func(v bool) Predicate {
		return Cond(func(registry.Namespace) (bool, error) {
			count++
			return v, nil
		})
	}

	got, err := Or(probe(false), probe(false), probe(false)).Eval(ns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Error("disjunction of falses should be false")
	}
	if count != 3 {
		t.Errorf("evaluated %d disjuncts, want 3", count)
	}

	count = 0
	got, _ = Or(probe(false), probe(true), probe(false)).Eval(ns)
	if !got {
		t.Error("disjunction with a true operand should be true")
	}
	if count != 2 {
		t.Errorf("evaluated %d disjuncts before short-circuit, want 2", count)
	}
}

func TestCombinatorImmediacy(t *testing.T) {
	early := Always(true)
	late := Startup(func(registry.Namespace) (bool, error) { return true, nil })

	tests := []struct {
		name      string
		p         Predicate
		immediate bool
	}{
		{"and of immediates", And(early, early), true},
		{"and with deferred", And(early, late), false},
		{"or with deferred", Or(late, early), false},
		{"not deferred", Not(late), false},
		{"not immediate", Not(early), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Immediate(); got != tt.immediate {
				t.Errorf("Immediate = %v, want %v", got, tt.immediate)
			}
		})
	}
}

func TestCombinatorErrorPropagation(t *testing.T) {
	ns := registry.NewTable()
	boom := errors.New("probe failed")
	failing := Cond(func(registry.Namespace) (bool, error) { return false, boom })

	if _, err := And(Always(true), failing).Eval(ns); !errors.Is(err, boom) {
		t.Errorf("And should propagate operand error, got %v", err)
	}
	if _, err := Or(Always(false), failing).Eval(ns); !errors.Is(err, boom) {
		t.Errorf("Or should propagate operand error, got %v", err)
	}
	if _, err := Not(failing).Eval(ns); !errors.Is(err, boom) {
		t.Errorf("Not should propagate operand error, got %v", err)
	}
}
