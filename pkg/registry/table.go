package registry

import "fmt"

// maxAliasDepth bounds alias-chain resolution so a misconfigured cycle
// surfaces as a lookup failure instead of an infinite loop.
const maxAliasDepth = 32

// entry is one slot in the indirection table. Exactly one of value or
// aliasOf is meaningful: an alias entry carries no value of its own.
type entry struct {
	value    any
	aliasOf  string
	isAlias  bool
	locality Locality
}

// Table is an in-memory Namespace: a name-to-implementation indirection
// table. Callers dispatch through Lookup rather than ambient global lookup,
// so rebinding a name by the installer is immediately visible to all
// subsequent calls.
//
// Table is not synchronized. It is intended to be populated from the single
// context performing host initialization; concurrent hosts must either add
// their own locking or finish registration before other goroutines start.
type Table struct {
	entries map[string]*entry
}

// NewTable returns an empty indirection table.
func NewTable() *Table {
	return &Table{entries: make(map[string]*entry)}
}

// Exists reports whether name is occupied by a binding or an alias.
func (t *Table) Exists(name string) bool {
	_, ok := t.entries[name]
	return ok
}

// Bind binds name directly to value, replacing any previous binding or
// alias under that name.
func (t *Table) Bind(name string, value any) error {
	if name == "" {
		return fmt.Errorf("binding empty name")
	}
	t.entries[name] = &entry{value: value}
	return nil
}

// Alias makes name resolve through target. The target need not exist yet;
// resolution happens at lookup time.
func (t *Table) Alias(name, target string) error {
	if name == "" || target == "" {
		return fmt.Errorf("aliasing requires both a name and a target")
	}
	if name == target {
		return fmt.Errorf("aliasing %q to itself", name)
	}
	t.entries[name] = &entry{aliasOf: target, isAlias: true}
	return nil
}

// MarkLocality records the locality of a bound variable. The name must
// already be bound.
func (t *Table) MarkLocality(name string, l Locality) error {
	e, ok := t.entries[name]
	if !ok {
		return fmt.Errorf("marking locality of unbound name %q", name)
	}
	e.locality = l
	return nil
}

// LocalityOf returns the recorded locality for name, following aliases.
func (t *Table) LocalityOf(name string) (Locality, bool) {
	e, ok := t.resolve(name)
	if !ok {
		return LocalityNone, false
	}
	return e.locality, true
}

// Lookup resolves name to the implementation currently occupying it,
// following alias chains. The second return is false if the name is unbound
// or the alias chain is broken or too deep.
func (t *Table) Lookup(name string) (any, bool) {
	e, ok := t.resolve(name)
	if !ok {
		return nil, false
	}
	return e.value, true
}

// resolve follows alias entries until a direct binding is reached.
func (t *Table) resolve(name string) (*entry, bool) {
	for depth := 0; depth < maxAliasDepth; depth++ {
		e, ok := t.entries[name]
		if !ok {
			return nil, false
		}
		if !e.isAlias {
			return e, true
		}
		name = e.aliasOf
	}
	return nil, false
}

// Len returns the number of occupied names, aliases included.
func (t *Table) Len() int { return len(t.entries) }
