package reactive

import (
	"sync"
	"testing"
)

// testListener is a simple Listener implementation for testing.
type testListener struct {
	id         uint64
	dirtyCount int
	mu         sync.Mutex
}

func newTestListener() *testListener {
	return &testListener{id: nextID()}
}

func (l *testListener) MarkDirty() {
	l.mu.Lock()
	l.dirtyCount++
	l.mu.Unlock()
}

func (l *testListener) ID() uint64 {
	return l.id
}

func (l *testListener) getDirtyCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dirtyCount
}

func TestTrackingContextSameGoroutine(t *testing.T) {
	ctx1 := getTrackingContext()
	ctx2 := getTrackingContext()

	if ctx1 != ctx2 {
		t.Error("getTrackingContext should return same context for same goroutine")
	}
}

func TestTrackingContextIsolation(t *testing.T) {
	// Each goroutine should have its own context
	var wg sync.WaitGroup
	contexts := make(chan *TrackingContext, 2)

	wg.Add(2)

	go func() {
		defer wg.Done()
		contexts <- getTrackingContext()
	}()

	go func() {
		defer wg.Done()
		contexts <- getTrackingContext()
	}()

	wg.Wait()
	close(contexts)

	var seen []*TrackingContext
	for ctx := range contexts {
		seen = append(seen, ctx)
	}

	if len(seen) == 2 && seen[0] == seen[1] {
		t.Error("goroutines should have isolated tracking contexts")
	}
}

func TestWithListenerRestoresPrevious(t *testing.T) {
	outer := newTestListener()
	inner := newTestListener()

	WithListener(outer, func() {
		if getCurrentListener() != outer {
			t.Error("expected outer listener")
		}
		WithListener(inner, func() {
			if getCurrentListener() != inner {
				t.Error("expected inner listener")
			}
		})
		if getCurrentListener() != outer {
			t.Error("outer listener should be restored")
		}
	})

	if getCurrentListener() != nil {
		t.Error("listener should be cleared after WithListener")
	}
}

func TestWithOwnerRestoresPrevious(t *testing.T) {
	owner := NewOwner(nil)
	defer owner.Dispose()

	WithOwner(owner, func() {
		if getCurrentOwner() != owner {
			t.Error("expected owner inside WithOwner")
		}
	})

	if getCurrentOwner() != nil {
		t.Error("owner should be cleared after WithOwner")
	}
}
