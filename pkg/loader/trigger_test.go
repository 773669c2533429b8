package loader

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestRegisterBeforeLoad(t *testing.T) {
	tr := NewTrigger(quietLogger())

	calls := 0
	tr.Register("textutils", func() error { calls++; return nil })

	if calls != 0 {
		t.Fatalf("callback fired before unit load")
	}
	if tr.Pending("textutils") != 1 {
		t.Errorf("Pending = %d, want 1", tr.Pending("textutils"))
	}

	tr.UnitLoaded("textutils")
	if calls != 1 {
		t.Fatalf("callback fired %d times after load, want 1", calls)
	}

	// A second notification must not re-invoke the callback.
	tr.UnitLoaded("textutils")
	if calls != 1 {
		t.Errorf("second notification re-fired callback (%d calls)", calls)
	}
	if tr.Pending("textutils") != 0 {
		t.Errorf("Pending after load = %d, want 0", tr.Pending("textutils"))
	}
}

func TestRegisterAfterLoadFiresSynchronously(t *testing.T) {
	tr := NewTrigger(quietLogger())
	tr.UnitLoaded("seq")

	calls := 0
	tr.Register("seq", func() error { calls++; return nil })
	if calls != 1 {
		t.Fatalf("callback for already-loaded unit fired %d times, want 1 (synchronous)", calls)
	}

	tr.UnitLoaded("seq")
	if calls != 1 {
		t.Errorf("callback re-fired on duplicate notification")
	}
}

func TestCallbacksFireInRegistrationOrder(t *testing.T) {
	tr := NewTrigger(quietLogger())

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		tr.Register("subr-x", func() error { order = append(order, i); return nil })
	}
	tr.UnitLoaded("subr-x")

	if len(order) != 5 {
		t.Fatalf("fired %d callbacks, want 5", len(order))
	}
	for i, got := range order {
		if got != i {
			t.Fatalf("callbacks out of order: %v", order)
		}
	}
}

func TestCallbackFailureIsIsolated(t *testing.T) {
	tr := NewTrigger(quietLogger())

	var fired []string
	tr.Register("ring", func() error { fired = append(fired, "a"); return errors.New("a failed") })
	tr.Register("ring", func() error { fired = append(fired, "b"); return nil })
	tr.Register("other", func() error { fired = append(fired, "c"); return nil })

	tr.UnitLoaded("ring")
	tr.UnitLoaded("other")

	if len(fired) != 3 {
		t.Fatalf("fired %v, want all three callbacks", fired)
	}
}

func TestCallbackPanicIsContained(t *testing.T) {
	tr := NewTrigger(quietLogger())

	var fired []string
	tr.Register("ring", func() error { panic("boom") })
	tr.Register("ring", func() error { fired = append(fired, "b"); return nil })

	tr.UnitLoaded("ring")

	if len(fired) != 1 || fired[0] != "b" {
		t.Errorf("panicking callback aborted siblings: fired %v", fired)
	}
}

func TestLoaded(t *testing.T) {
	tr := NewTrigger(quietLogger())
	if tr.Loaded("x") {
		t.Error("unit should not be loaded initially")
	}
	tr.UnitLoaded("x")
	if !tr.Loaded("x") {
		t.Error("unit should be loaded after notification")
	}
}
