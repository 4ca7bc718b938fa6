package reactive

import (
	"testing"
)

func TestBatchDefersNotifications(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)

	runs := 0
	CreateEffect(func() Cleanup {
		_ = a.Get()
		_ = b.Get()
		runs++
		return nil
	})

	Batch(func() {
		a.Set(1)
		b.Set(2)
		// Nothing may fire inside the batch.
		if runs != 1 {
			t.Errorf("effect ran inside batch, runs=%d", runs)
		}
	})

	// One deduplicated run after the batch completes.
	if runs != 2 {
		t.Errorf("expected single post-batch run, got %d", runs)
	}
}

func TestBatchNested(t *testing.T) {
	count := NewSignal(0)

	runs := 0
	CreateEffect(func() Cleanup {
		_ = count.Get()
		runs++
		return nil
	})

	Batch(func() {
		count.Set(1)
		Batch(func() {
			count.Set(2)
		})
		// Inner batch completion must not flush while outer is open.
		if runs != 1 {
			t.Errorf("inner batch flushed early, runs=%d", runs)
		}
	})

	if runs != 2 {
		t.Errorf("expected one run after outermost batch, got %d", runs)
	}
	if count.Peek() != 2 {
		t.Errorf("expected final value 2, got %d", count.Peek())
	}
}

func TestBatchDeduplicatesListeners(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()

	WithListener(listener, func() {
		_ = count.Get()
	})

	Batch(func() {
		count.Set(1)
		count.Set(2)
		count.Set(3)
	})

	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 deduplicated notification, got %d", listener.getDirtyCount())
	}
}

func TestBatchEmptyIsNoop(t *testing.T) {
	// Completing an empty batch must not panic or notify anyone.
	Batch(func() {})
}

func TestUntrackedGet(t *testing.T) {
	count := NewSignal(7)
	listener := newTestListener()

	WithListener(listener, func() {
		if UntrackedGet(count) != 7 {
			t.Error("UntrackedGet should return current value")
		}
	})

	count.Set(8)
	if listener.getDirtyCount() != 0 {
		t.Errorf("UntrackedGet should not subscribe, got %d", listener.getDirtyCount())
	}
}
