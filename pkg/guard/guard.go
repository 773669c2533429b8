// Package guard provides version-independent predicates that gate shim
// installation. A predicate is either immediate (evaluable while the
// install plan is computed) or deferred to the startup re-check; combinators
// are immediate only when every operand is.
package guard

import (
	"fmt"

	"github.com/backfill-labs/backfill/pkg/registry"
)

// Predicate is a boolean condition over the host namespace, independent of
// the host version.
type Predicate interface {
	// Eval evaluates the condition.
	Eval(ns registry.Namespace) (bool, error)
	// Immediate reports whether Eval may run at plan time. Deferred
	// predicates are re-checked at host startup instead.
	Immediate() bool
}

type fn struct {
	eval      func(ns registry.Namespace) (bool, error)
	immediate bool
}

func (f fn) Eval(ns registry.Namespace) (bool, error) { return f.eval(ns) }
func (f fn) Immediate() bool                          { return f.immediate }

// Cond wraps a function as an immediate predicate.
func Cond(eval func(ns registry.Namespace) (bool, error)) Predicate {
	return fn{eval: eval, immediate: true}
}

// Startup wraps a function as a predicate that must not be evaluated before
// host startup, for conditions on state that only exists then.
func Startup(eval func(ns registry.Namespace) (bool, error)) Predicate {
	return fn{eval: eval, immediate: false}
}

// Always is an immediate predicate with a fixed value.
func Always(v bool) Predicate {
	return fn{
		eval:      func(registry.Namespace) (bool, error) { return v, nil },
		immediate: true,
	}
}

// Bound is true when name is occupied in the namespace.
func Bound(name string) Predicate {
	return fn{
		eval:      func(ns registry.Namespace) (bool, error) { return ns.Exists(name), nil },
		immediate: true,
	}
}

// Missing is true when name is not occupied in the namespace.
func Missing(name string) Predicate {
	return Not(Bound(name))
}

// Not negates a predicate, preserving immediacy.
func Not(p Predicate) Predicate {
	return fn{
		eval: func(ns registry.Namespace) (bool, error) {
			v, err := p.Eval(ns)
			if err != nil {
				return false, err
			}
			return !v, nil
		},
		immediate: p.Immediate(),
	}
}

// And is the conjunction of every operand. The whole operand list is
// evaluated positionally with short-circuiting on the first false.
func And(ps ...Predicate) Predicate {
	return fn{
		eval: func(ns registry.Namespace) (bool, error) {
			for i, p := range ps {
				v, err := p.Eval(ns)
				if err != nil {
					return false, fmt.Errorf("evaluating conjunct %d: %w", i, err)
				}
				if !v {
					return false, nil
				}
			}
			return true, nil
		},
		immediate: allImmediate(ps),
	}
}

// Or is the disjunction of every operand, short-circuiting on the first
// true.
func Or(ps ...Predicate) Predicate {
	return fn{
		eval: func(ns registry.Namespace) (bool, error) {
			for i, p := range ps {
				v, err := p.Eval(ns)
				if err != nil {
					return false, fmt.Errorf("evaluating disjunct %d: %w", i, err)
				}
				if v {
					return true, nil
				}
			}
			return false, nil
		},
		immediate: allImmediate(ps),
	}
}

func allImmediate(ps []Predicate) bool {
	for _, p := range ps {
		if !p.Immediate() {
			return false
		}
	}
	return true
}
