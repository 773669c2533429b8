package engine

import (
	"fmt"

	"github.com/backfill-labs/backfill/pkg/compat"
	"github.com/backfill-labs/backfill/pkg/registry"
)

// Apply executes a plan against the namespace. Applying an already-applied
// plan leaves the namespace unchanged.
func (e *Engine) Apply(p *Plan) error {
	switch p.Action {
	case ActionSkip:
		return nil
	case ActionInstallNow:
		return e.install(p)
	case ActionInstallGuarded:
		return e.installGuarded(p)
	case ActionInstallDeferred:
		unit := p.Decl.DeferredUnit
		e.trigger.Register(unit, func() error {
			return e.installGuarded(p)
		})
		e.logger.Debug("installation deferred", "name", p.Decl.Name, "unit", unit)
		return nil
	default:
		return fmt.Errorf("unknown plan action %d for %q", p.Action, p.Decl.Name)
	}
}

// installGuarded re-evaluates needed at startup (or unit-load) time, then
// installs only when the fallback is still wanted.
func (e *Engine) installGuarded(p *Plan) error {
	needed, err := e.needed(p.Decl)
	if err != nil {
		return fmt.Errorf("re-checking guard for %q: %w", p.Decl.Name, err)
	}
	if !needed {
		e.logger.Debug("guard suppressed installation", "name", p.Decl.Name)
		return nil
	}
	return e.install(p)
}

// install binds the fallback body under the plan's target name, aliasing
// the original name for the indirect strategy. The synthesized names used
// by indirect and prefixed-only fallbacks are checked for existence before
// rebinding, so reinstallation cannot clobber a binding already in place.
func (e *Engine) install(p *Plan) error {
	d := p.Decl
	if e.applied[d.Name] {
		return nil
	}

	switch d.Strategy {
	case compat.StrategyDirect:
		if err := e.ns.Bind(d.Name, d.Body); err != nil {
			return fmt.Errorf("binding %q: %w", d.Name, err)
		}
	case compat.StrategyIndirect:
		if !e.ns.Exists(d.RealName) {
			if err := e.ns.Bind(d.RealName, d.Body); err != nil {
				return fmt.Errorf("binding %q: %w", d.RealName, err)
			}
		}
		if err := e.ns.Alias(d.Name, d.RealName); err != nil {
			return fmt.Errorf("aliasing %q to %q: %w", d.Name, d.RealName, err)
		}
	case compat.StrategyPrefixedOnly:
		if !e.ns.Exists(d.RealName) {
			if err := e.ns.Bind(d.RealName, d.Body); err != nil {
				return fmt.Errorf("binding %q: %w", d.RealName, err)
			}
		}
	}

	if d.Kind == compat.KindVariable && d.Locality != registry.LocalityNone {
		if lm, ok := e.ns.(registry.LocalityMarker); ok {
			if err := lm.MarkLocality(p.Target, d.Locality); err != nil {
				return fmt.Errorf("marking locality of %q: %w", p.Target, err)
			}
		}
	}

	e.applied[d.Name] = true
	e.logger.Debug("installed fallback", "name", d.Name, "target", p.Target, "strategy", d.Strategy.String())
	return nil
}
