package engine

import (
	"fmt"

	"github.com/backfill-labs/backfill/pkg/compat"
)

// Action is the decision the engine reached for one declaration.
type Action int

const (
	// ActionSkip leaves the namespace untouched, the expected common case
	// on hosts that already ship the capability.
	ActionSkip Action = iota
	// ActionInstallNow installs the fallback immediately.
	ActionInstallNow
	// ActionInstallGuarded installs behind a startup-time re-check of the
	// guard predicate.
	ActionInstallGuarded
	// ActionInstallDeferred waits for an external unit to load, then
	// re-runs the guarded path.
	ActionInstallDeferred
)

// String returns the action for plan listings.
func (a Action) String() string {
	switch a {
	case ActionSkip:
		return "skip"
	case ActionInstallNow:
		return "install"
	case ActionInstallGuarded:
		return "install-guarded"
	case ActionInstallDeferred:
		return "install-deferred"
	default:
		return "unknown"
	}
}

// Plan is the computed outcome for one declaration. Plans are computed
// once per declaration and, for the deferred case, re-evaluated once when
// the awaited unit loads.
type Plan struct {
	Action Action
	Decl   *compat.Declaration
	// Target is the name the fallback binds under. Empty for skip.
	Target string
	// AliasFrom is the original name aliased to Target under the indirect
	// strategy. Empty otherwise.
	AliasFrom string
}

// String summarizes the plan for listings and logs.
func (p *Plan) String() string {
	switch p.Action {
	case ActionSkip:
		return fmt.Sprintf("%s: skip", p.Decl.Name)
	case ActionInstallDeferred:
		return fmt.Sprintf("%s: %s -> %s (awaiting %s)", p.Decl.Name, p.Action, p.Target, p.Decl.DeferredUnit)
	default:
		if p.AliasFrom != "" {
			return fmt.Sprintf("%s: %s -> %s (aliased from %s)", p.Decl.Name, p.Action, p.Target, p.AliasFrom)
		}
		return fmt.Sprintf("%s: %s -> %s", p.Decl.Name, p.Action, p.Target)
	}
}
