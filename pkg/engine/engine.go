// Package engine decides, per capability declaration, whether and how to
// install a fallback into the host namespace, and executes those decisions.
// It is the single writer of the namespace during host initialization.
package engine

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/backfill-labs/backfill/pkg/compat"
	"github.com/backfill-labs/backfill/pkg/hostver"
	"github.com/backfill-labs/backfill/pkg/loader"
	"github.com/backfill-labs/backfill/pkg/registry"
)

// Engine computes and applies install plans against one host version and
// one namespace.
type Engine struct {
	host    *hostver.Version
	ns      registry.Namespace
	trigger *loader.Trigger
	logger  *log.Logger

	// applied records declarations whose installation has run, keyed by
	// original name. Reapplying a plan is a no-op.
	applied map[string]bool
}

// New builds an engine for the given host version identifier. Returns a
// *hostver.FormatError if the identifier is unparsable. A nil trigger or
// logger gets a default.
func New(hostVersion string, ns registry.Namespace, trigger *loader.Trigger, logger *log.Logger) (*Engine, error) {
	host, err := hostver.Parse(hostVersion)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "backfill"})
	}
	if trigger == nil {
		trigger = loader.NewTrigger(logger)
	}
	return &Engine{
		host:    host,
		ns:      ns,
		trigger: trigger,
		logger:  logger,
		applied: make(map[string]bool),
	}, nil
}

// Host returns the host version the engine was built for.
func (e *Engine) Host() *hostver.Version { return e.host }

// Trigger returns the deferred trigger; the host's module loader feeds
// unit-load notifications into it.
func (e *Engine) Trigger() *loader.Trigger { return e.trigger }

// ComputePlan maps one declaration to an install plan. The declaration is
// validated first; violations surface as *compat.ConfigError.
func (e *Engine) ComputePlan(d *compat.Declaration) (*Plan, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	// A host outside the declared range gets nothing, guard or not.
	if !d.InRange(e.host) {
		return &Plan{Action: ActionSkip, Decl: d}, nil
	}

	// Prefixed-only fallbacks install on every host and never touch the
	// original name.
	if d.Strategy == compat.StrategyPrefixedOnly {
		return &Plan{Action: ActionInstallNow, Decl: d, Target: d.RealName}, nil
	}

	// The host natively provides the capability and no guard overrides
	// that: skip rather than shadow the native implementation.
	if intro := d.IntroducedVersion(); intro != nil && e.host.AtLeast(intro) && d.Guard == nil {
		return &Plan{Action: ActionSkip, Decl: d}, nil
	}

	plan := &Plan{Decl: d, Target: d.TargetName()}
	if d.Strategy == compat.StrategyIndirect {
		plan.AliasFrom = d.Name
	}

	// Deferred declarations carry their decision to the unit's load;
	// needed is re-evaluated there.
	if d.DeferredUnit != "" {
		plan.Action = ActionInstallDeferred
		return plan, nil
	}

	if d.Guard == nil || d.Guard.Immediate() {
		needed, err := e.needed(d)
		if err != nil {
			return nil, fmt.Errorf("evaluating guard for %q: %w", d.Name, err)
		}
		if !needed {
			return &Plan{Action: ActionSkip, Decl: d}, nil
		}
		plan.Action = ActionInstallNow
		return plan, nil
	}

	plan.Action = ActionInstallGuarded
	return plan, nil
}

// needed combines the guard predicate (default true) with the
// native-binding check: a direct fallback with no known introduction must
// not shadow an equivalent the host already provides under the original
// name.
func (e *Engine) needed(d *compat.Declaration) (bool, error) {
	needed := true
	if d.Guard != nil {
		v, err := d.Guard.Eval(e.ns)
		if err != nil {
			return false, err
		}
		needed = v
	}
	if needed && d.Strategy == compat.StrategyDirect && d.IntroducedVersion() == nil && e.ns.Exists(d.Name) {
		needed = false
	}
	return needed, nil
}

// Run computes and applies a plan for every declaration in the catalog, in
// registration order. The first configuration error aborts the run.
func (e *Engine) Run(c *compat.Catalog) error {
	for _, d := range c.Declarations() {
		plan, err := e.ComputePlan(d)
		if err != nil {
			return err
		}
		if err := e.Apply(plan); err != nil {
			return err
		}
	}
	return nil
}

// PlanAll computes plans for every declaration without applying them.
func (e *Engine) PlanAll(c *compat.Catalog) ([]*Plan, error) {
	plans := make([]*Plan, 0, c.Len())
	for _, d := range c.Declarations() {
		plan, err := e.ComputePlan(d)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}
