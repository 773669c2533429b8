// Package registry models the host's global name-to-binding namespace and
// provides an in-memory implementation backed by an explicit indirection
// table. All mutation is expected to come from a single initialization
// context; see the concurrency note on Table.
package registry

// Locality describes how a variable binding is scoped once bound.
type Locality int

const (
	// LocalityNone binds the variable globally with no per-context shadowing.
	LocalityNone Locality = iota
	// LocalityLocal makes the variable automatically context-local on set.
	LocalityLocal
	// LocalityPermanentLocal is LocalityLocal, and the local value survives
	// a context reset.
	LocalityPermanentLocal
)

// String returns the locality as it appears in catalog files.
func (l Locality) String() string {
	switch l {
	case LocalityNone:
		return "none"
	case LocalityLocal:
		return "local"
	case LocalityPermanentLocal:
		return "permanent-local"
	default:
		return "unknown"
	}
}

// Namespace is the minimal surface the engine needs from the host's global
// namespace. The engine assumes nothing about the representation behind it.
type Namespace interface {
	// Exists reports whether a binding (or alias) occupies name.
	Exists(name string) bool
	// Bind binds name directly to value, replacing any previous binding.
	Bind(name string, value any) error
	// Alias makes name resolve to whatever target resolves to.
	Alias(name, target string) error
}

// LocalityMarker is implemented by namespaces that support variable
// locality. The installer type-asserts for it after binding a variable.
type LocalityMarker interface {
	MarkLocality(name string, l Locality) error
}
