// Package loader delivers unit-load notifications to pending installation
// callbacks. The host's module loader calls UnitLoaded as external units
// become available; callbacks registered against a unit fire exactly once,
// in registration order, on the unit's first load.
package loader

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// Callback is a deferred installation step. A returned error is reported
// and isolated; it never prevents sibling callbacks from firing.
type Callback func() error

// Trigger tracks which units have loaded and which callbacks are pending.
// Like the rest of the engine it expects the single-writer discipline of
// host initialization; it is not synchronized.
type Trigger struct {
	loaded  map[string]bool
	pending map[string][]Callback
	logger  *log.Logger
}

// NewTrigger returns a Trigger with no units loaded.
func NewTrigger(logger *log.Logger) *Trigger {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "loader"})
	}
	return &Trigger{
		loaded:  make(map[string]bool),
		pending: make(map[string][]Callback),
		logger:  logger,
	}
}

// Register subscribes cb to the first load of unit. If the unit is already
// marked loaded the callback is invoked synchronously before Register
// returns; otherwise it is enqueued FIFO. Registering never blocks the
// caller on a future load.
func (t *Trigger) Register(unit string, cb Callback) {
	if t.loaded[unit] {
		t.invoke(unit, cb)
		return
	}
	t.pending[unit] = append(t.pending[unit], cb)
}

// UnitLoaded marks unit as loaded and fires its pending callbacks in
// registration order. Only the first notification for a unit fires
// callbacks; later notifications are ignored.
func (t *Trigger) UnitLoaded(unit string) {
	if t.loaded[unit] {
		return
	}
	t.loaded[unit] = true

	cbs := t.pending[unit]
	delete(t.pending, unit)
	for _, cb := range cbs {
		t.invoke(unit, cb)
	}
}

// Loaded reports whether unit has been marked loaded.
func (t *Trigger) Loaded(unit string) bool { return t.loaded[unit] }

// Pending returns the number of callbacks still waiting on unit.
func (t *Trigger) Pending(unit string) int { return len(t.pending[unit]) }

// invoke runs one callback, containing errors and panics so one failing
// installation cannot abort the rest of the load notification.
func (t *Trigger) invoke(unit string, cb Callback) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("deferred installation panicked", "unit", unit, "panic", fmt.Sprint(r))
		}
	}()
	if err := cb(); err != nil {
		t.logger.Error("deferred installation failed", "unit", unit, "error", err)
	}
}
