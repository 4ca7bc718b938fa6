package reactive

import (
	"testing"
)

func TestEffectRunsImmediately(t *testing.T) {
	runs := 0
	CreateEffect(func() Cleanup {
		runs++
		return nil
	})

	if runs != 1 {
		t.Errorf("effect should run immediately, got %d runs", runs)
	}
}

func TestEffectRerunsSynchronously(t *testing.T) {
	count := NewSignal(0)

	var observed []int
	CreateEffect(func() Cleanup {
		observed = append(observed, count.Get())
		return nil
	})

	count.Set(1)
	// The re-run must have happened before Set returned.
	if len(observed) != 2 || observed[1] != 1 {
		t.Fatalf("expected synchronous re-run, observed %v", observed)
	}

	count.Set(2)
	if len(observed) != 3 || observed[2] != 2 {
		t.Errorf("expected third run with value 2, observed %v", observed)
	}
}

func TestEffectCleanupBeforeRerun(t *testing.T) {
	count := NewSignal(0)

	var order []string
	CreateEffect(func() Cleanup {
		_ = count.Get()
		order = append(order, "run")
		return func() {
			order = append(order, "cleanup")
		}
	})

	count.Set(1)

	want := []string{"run", "cleanup", "run"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestEffectDispose(t *testing.T) {
	count := NewSignal(0)

	runs := 0
	cleaned := 0
	e := CreateEffect(func() Cleanup {
		_ = count.Get()
		runs++
		return func() { cleaned++ }
	})

	e.Dispose()
	if cleaned != 1 {
		t.Errorf("dispose should run the pending cleanup, got %d", cleaned)
	}

	count.Set(1)
	if runs != 1 {
		t.Errorf("disposed effect must not re-run, got %d runs", runs)
	}
	if !e.IsDisposed() {
		t.Error("effect should report disposed")
	}
}

func TestEffectDisposeIdempotent(t *testing.T) {
	cleaned := 0
	e := CreateEffect(func() Cleanup {
		return func() { cleaned++ }
	})

	e.Dispose()
	e.Dispose()
	if cleaned != 1 {
		t.Errorf("double dispose should clean up once, got %d", cleaned)
	}
}

func TestEffectSelfDispose(t *testing.T) {
	count := NewSignal(0)

	var self *Effect
	runs := 0
	self = CreateEffect(func() Cleanup {
		_ = count.Get()
		runs++
		if runs == 2 && self != nil {
			self.Dispose()
		}
		return nil
	})

	count.Set(1) // second run disposes from within the body
	count.Set(2)
	if runs != 2 {
		t.Errorf("self-disposed effect must not re-run, got %d runs", runs)
	}
}

func TestEffectSelfWriteDoesNotLoop(t *testing.T) {
	count := NewSignal(0)
	echo := NewSignal(0)

	runs := 0
	CreateEffect(func() Cleanup {
		runs++
		// Reads count and writes echo; also reads echo, which would
		// loop forever without the reentrancy guard.
		v := count.Get()
		_ = echo.Get()
		echo.Set(v * 10)
		return nil
	})

	count.Set(3)
	if echo.Peek() != 30 {
		t.Errorf("expected echo 30, got %d", echo.Peek())
	}
	if runs != 2 {
		t.Errorf("self-triggered write should not re-run the effect, got %d runs", runs)
	}
}

func TestEffectRetracksDependencies(t *testing.T) {
	useFirst := NewSignal(true)
	first := NewSignal("a")
	second := NewSignal("x")

	runs := 0
	CreateEffect(func() Cleanup {
		runs++
		if useFirst.Get() {
			_ = first.Get()
		} else {
			_ = second.Get()
		}
		return nil
	})

	// While tracking first, second is not a dependency.
	second.Set("y")
	if runs != 1 {
		t.Fatalf("untracked signal should not trigger, got %d runs", runs)
	}

	// Switch the branch, then first must no longer trigger.
	useFirst.Set(false)
	if runs != 2 {
		t.Fatalf("expected re-run after branch switch, got %d", runs)
	}

	first.Set("b")
	if runs != 2 {
		t.Errorf("stale dependency should be dropped, got %d runs", runs)
	}

	second.Set("z")
	if runs != 3 {
		t.Errorf("new dependency should trigger, got %d runs", runs)
	}
}

func TestOnUpdateSkipsFirstRun(t *testing.T) {
	count := NewSignal(0)

	calls := 0
	OnUpdate(
		func() { _ = count.Get() },
		func() { calls++ },
	)

	if calls != 0 {
		t.Fatalf("OnUpdate callback should skip the first run, got %d", calls)
	}

	count.Set(1)
	if calls != 1 {
		t.Errorf("expected 1 callback after change, got %d", calls)
	}
}

func TestEffectOwnedByCurrentOwner(t *testing.T) {
	count := NewSignal(0)
	owner := NewOwner(nil)

	runs := 0
	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			_ = count.Get()
			runs++
			return nil
		})
	})

	owner.Dispose()
	count.Set(1)
	if runs != 1 {
		t.Errorf("effect should die with its owner, got %d runs", runs)
	}
}
