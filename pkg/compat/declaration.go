// Package compat defines the capability declarations the backfill engine
// works from: one declaration per standard-library capability, tied to the
// host release the capability first shipped in, plus the catalog that holds
// an ordered set of them.
package compat

import (
	"fmt"

	"github.com/backfill-labs/backfill/pkg/guard"
	"github.com/backfill-labs/backfill/pkg/hostver"
	"github.com/backfill-labs/backfill/pkg/registry"
)

// Kind classifies what a capability binds as in the host namespace.
type Kind int

const (
	KindFunction Kind = iota
	KindMacro
	KindVariable
)

// String returns the kind as it appears in catalog files.
func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindMacro:
		return "macro"
	case KindVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// ParseKind converts a catalog-file string to a Kind, returning false if
// invalid.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "function":
		return KindFunction, true
	case "macro":
		return KindMacro, true
	case "variable":
		return KindVariable, true
	default:
		return 0, false
	}
}

// Strategy selects the name a fallback is installed under.
type Strategy int

const (
	// StrategyDirect installs the fallback under the original name.
	StrategyDirect Strategy = iota
	// StrategyIndirect installs under a synthesized real name and aliases
	// the original name to it when the fallback is needed.
	StrategyIndirect
	// StrategyPrefixedOnly installs unconditionally under an explicit
	// alternate name and never touches the original name.
	StrategyPrefixedOnly
)

// String returns the strategy as it appears in catalog files.
func (s Strategy) String() string {
	switch s {
	case StrategyDirect:
		return "direct"
	case StrategyIndirect:
		return "indirect"
	case StrategyPrefixedOnly:
		return "prefixed-only"
	default:
		return "unknown"
	}
}

// ParseStrategy converts a catalog-file string to a Strategy, returning
// false if invalid.
func ParseStrategy(s string) (Strategy, bool) {
	switch s {
	case "direct":
		return StrategyDirect, true
	case "indirect":
		return StrategyIndirect, true
	case "prefixed-only":
		return StrategyPrefixedOnly, true
	default:
		return 0, false
	}
}

// ParseLocality converts a catalog-file string to a registry.Locality,
// returning false if invalid.
func ParseLocality(s string) (registry.Locality, bool) {
	switch s {
	case "", "none":
		return registry.LocalityNone, true
	case "local":
		return registry.LocalityLocal, true
	case "permanent-local":
		return registry.LocalityPermanentLocal, true
	default:
		return 0, false
	}
}

// ConfigError reports a defective declaration. It is fatal: it signals a
// packaging mistake, not a transient condition.
type ConfigError struct {
	Name   string // original name of the offending declaration
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("declaration %q: %s: %v", e.Name, e.Reason, e.Err)
	}
	return fmt.Sprintf("declaration %q: %s", e.Name, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Declaration is the static metadata for one capability. Declarations are
// built once at load time and never mutated afterwards.
type Declaration struct {
	// Name is the original name callers use.
	Name string
	// Kind is what the capability binds as.
	Kind Kind
	// Introduced is the host release the capability first shipped in.
	// Empty when unknown (extension-supplied or never shipped).
	Introduced string
	// MinVersion and MaxVersion bound the host releases the declaration
	// applies to. Empty means unbounded on that side.
	MinVersion string
	MaxVersion string
	// Strategy selects the installed name.
	Strategy Strategy
	// RealName is the synthesized name used by StrategyIndirect and
	// StrategyPrefixedOnly.
	RealName string
	// Guard optionally forces or suppresses installation independent of
	// the host version.
	Guard guard.Predicate
	// DeferredUnit names an external loadable unit whose load should
	// trigger the installation. Empty for immediate handling.
	DeferredUnit string
	// Locality applies to KindVariable only.
	Locality registry.Locality
	// Body is the opaque fallback payload bound into the namespace.
	Body any

	introduced *hostver.Version
	minVersion *hostver.Version
	maxVersion *hostver.Version
	validated  bool
}

// Validate checks the declaration invariants and parses its version fields.
// All violations are *ConfigError. Validate is idempotent and is called
// implicitly by Catalog.Register and by the engine.
func (d *Declaration) Validate() error {
	if d.validated {
		return nil
	}

	if d.Name == "" {
		return &ConfigError{Name: d.Name, Reason: "missing original name"}
	}

	switch d.Strategy {
	case StrategyIndirect, StrategyPrefixedOnly:
		if d.RealName == "" {
			return &ConfigError{Name: d.Name, Reason: "strategy " + d.Strategy.String() + " requires a real name"}
		}
	}
	if d.Strategy == StrategyIndirect && d.RealName == d.Name {
		return &ConfigError{Name: d.Name, Reason: "self-aliasing declaration (real name equals original name)"}
	}
	if d.Strategy == StrategyPrefixedOnly && d.Introduced != "" {
		return &ConfigError{Name: d.Name, Reason: "prefixed-only declaration must not carry an introduced version"}
	}
	if d.Locality != registry.LocalityNone && d.Kind != KindVariable {
		return &ConfigError{Name: d.Name, Reason: "locality applies to variables only"}
	}

	var err error
	if d.introduced, err = parseOptional(d.Introduced); err != nil {
		return &ConfigError{Name: d.Name, Reason: "introduced version", Err: err}
	}
	if d.minVersion, err = parseOptional(d.MinVersion); err != nil {
		return &ConfigError{Name: d.Name, Reason: "minimum version", Err: err}
	}
	if d.maxVersion, err = parseOptional(d.MaxVersion); err != nil {
		return &ConfigError{Name: d.Name, Reason: "maximum version", Err: err}
	}
	if d.minVersion != nil && d.maxVersion != nil && d.minVersion.CompareTo(d.maxVersion) == hostver.Greater {
		return &ConfigError{Name: d.Name, Reason: fmt.Sprintf("version range %s..%s is inverted", d.MinVersion, d.MaxVersion)}
	}

	d.validated = true
	return nil
}

// InRange reports whether host falls inside the declaration's version
// range. The declaration must have been validated.
func (d *Declaration) InRange(host *hostver.Version) bool {
	if d.minVersion != nil && !host.AtLeast(d.minVersion) {
		return false
	}
	if d.maxVersion != nil && !host.AtMost(d.maxVersion) {
		return false
	}
	return true
}

// IntroducedVersion returns the parsed introduced version, or nil when
// unknown. The declaration must have been validated.
func (d *Declaration) IntroducedVersion() *hostver.Version { return d.introduced }

// TargetName returns the name the fallback binds under: the real name for
// indirect and prefixed-only strategies, the original name otherwise.
func (d *Declaration) TargetName() string {
	if d.Strategy == StrategyDirect {
		return d.Name
	}
	return d.RealName
}

func parseOptional(s string) (*hostver.Version, error) {
	if s == "" {
		return nil, nil
	}
	return hostver.Parse(s)
}
