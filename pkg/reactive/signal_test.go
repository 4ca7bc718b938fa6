package reactive

import (
	"testing"
)

func TestSignalBasic(t *testing.T) {
	count := NewSignal(0)

	// Initial value
	if count.Get() != 0 {
		t.Errorf("expected initial value 0, got %d", count.Get())
	}

	// Set value
	count.Set(5)
	if count.Get() != 5 {
		t.Errorf("expected value 5, got %d", count.Get())
	}

	// Update value
	count.Update(func(n int) int { return n * 2 })
	if count.Get() != 10 {
		t.Errorf("expected value 10, got %d", count.Get())
	}
}

func TestSignalPeek(t *testing.T) {
	count := NewSignal(42)

	// Peek should return value without subscribing
	listener := newTestListener()
	WithListener(listener, func() {
		value := count.Peek()
		if value != 42 {
			t.Errorf("expected 42, got %d", value)
		}
	})

	count.Set(100)
	if listener.getDirtyCount() != 0 {
		t.Errorf("Peek should not subscribe listener, got %d notifications", listener.getDirtyCount())
	}
}

func TestSignalSubscription(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()

	// Subscribe by reading within tracked context
	WithListener(listener, func() {
		_ = count.Get()
	})

	// Setting should notify
	count.Set(1)
	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification, got %d", listener.getDirtyCount())
	}

	// Same value should not notify
	count.Set(1)
	if listener.getDirtyCount() != 1 {
		t.Errorf("same value should not notify, got %d", listener.getDirtyCount())
	}

	// Different value should notify
	count.Set(2)
	if listener.getDirtyCount() != 2 {
		t.Errorf("expected 2 notifications, got %d", listener.getDirtyCount())
	}
}

func TestSignalNoTrackingOutsideContext(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()

	// Read outside of tracking context
	_ = count.Get()

	WithListener(listener, func() {
		// Don't read the signal here
	})

	count.Set(1)
	if listener.getDirtyCount() != 0 {
		t.Errorf("expected 0 notifications when not tracking, got %d", listener.getDirtyCount())
	}
}

func TestSignalUntracked(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()

	WithListener(listener, func() {
		Untracked(func() {
			_ = count.Get()
		})
	})

	count.Set(1)
	if listener.getDirtyCount() != 0 {
		t.Errorf("Untracked read should not subscribe, got %d notifications", listener.getDirtyCount())
	}
}

func TestSignalDeepEqualsStructs(t *testing.T) {
	type point struct{ X, Y int }
	p := NewSignal(point{1, 2})
	listener := newTestListener()

	WithListener(listener, func() {
		_ = p.Get()
	})

	// Equal struct value should not notify
	p.Set(point{1, 2})
	if listener.getDirtyCount() != 0 {
		t.Errorf("deep-equal struct should not notify, got %d", listener.getDirtyCount())
	}

	p.Set(point{3, 4})
	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification, got %d", listener.getDirtyCount())
	}
}

func TestSignalShallowEquals(t *testing.T) {
	type box struct{ V int }
	a := &box{1}
	s := NewSignal(a).WithEquals(ShallowEquals[*box])
	listener := newTestListener()

	WithListener(listener, func() {
		_ = s.Get()
	})

	// Same reference, even mutated, is not a change.
	a.V = 2
	s.Set(a)
	if listener.getDirtyCount() != 0 {
		t.Errorf("same reference should not notify under ShallowEquals, got %d", listener.getDirtyCount())
	}

	// A deep-equal but distinct reference is a change.
	s.Set(&box{2})
	if listener.getDirtyCount() != 1 {
		t.Errorf("distinct reference should notify, got %d", listener.getDirtyCount())
	}
}

func TestSignalAlwaysChanged(t *testing.T) {
	type box struct{ V int }
	a := &box{1}
	s := NewSignal(a).WithEquals(AlwaysChanged[*box])
	listener := newTestListener()

	WithListener(listener, func() {
		_ = s.Get()
	})

	// Writing back the same mutated reference notifies.
	s.Update(func(b *box) *box {
		b.V = 2
		return b
	})
	if listener.getDirtyCount() != 1 {
		t.Errorf("AlwaysChanged should notify on in-place update, got %d", listener.getDirtyCount())
	}
}

func TestShallowEqualsNilHandling(t *testing.T) {
	type box struct{ V int }

	if !ShallowEquals[*box](nil, nil) {
		t.Error("nil should shallow-equal nil")
	}
	if ShallowEquals(nil, &box{}) {
		t.Error("nil should not shallow-equal a value")
	}

	var m1, m2 map[string]int
	if !ShallowEquals(m1, m2) {
		t.Error("nil maps should shallow-equal")
	}
}

func TestSignalMultipleSubscribers(t *testing.T) {
	count := NewSignal(0)
	listeners := []*testListener{newTestListener(), newTestListener(), newTestListener()}

	for _, l := range listeners {
		WithListener(l, func() {
			_ = count.Get()
		})
	}

	count.Set(1)
	for i, l := range listeners {
		if l.getDirtyCount() != 1 {
			t.Errorf("listener %d expected 1 notification, got %d", i, l.getDirtyCount())
		}
	}
}

func TestSignalUnsubscribe(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()

	WithListener(listener, func() {
		_ = count.Get()
	})

	count.base.unsubscribe(listener)
	count.Set(1)
	if listener.getDirtyCount() != 0 {
		t.Errorf("unsubscribed listener should not be notified, got %d", listener.getDirtyCount())
	}
}

func TestSignalSubscribeDeduplicates(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()

	// Reading twice must not double-subscribe.
	WithListener(listener, func() {
		_ = count.Get()
		_ = count.Get()
	})

	count.Set(1)
	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 notification despite double read, got %d", listener.getDirtyCount())
	}
}
