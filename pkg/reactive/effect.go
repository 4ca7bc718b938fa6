package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect represents a reactive side effect that runs when its dependencies
// change. Effects are created using CreateEffect and are automatically
// tracked for dependencies during their execution.
//
// Effects run immediately when created and re-run synchronously, on the
// same call stack as the triggering mutation, whenever any signal or memo
// they read during execution changes. Inside a Batch, re-runs are deferred
// until the outermost batch completes. An effect can return a Cleanup
// function that will be called before the effect re-runs or when the
// effect is disposed.
type Effect struct {
	id uint64

	// fn is the effect function to run.
	fn func() Cleanup

	// cleanup is the cleanup function from the last run.
	cleanup Cleanup

	// sources are the signals/memos this effect depends on.
	sources   []*signalBase
	sourcesMu sync.Mutex

	// owner is the Owner that owns this effect.
	owner *Owner

	// running guards against reentrant runs: a write performed by the
	// effect body to one of its own dependencies does not re-trigger it.
	running atomic.Bool

	// disposed indicates the effect has been disposed.
	disposed atomic.Bool
}

// MarkDirty re-runs the effect. Outside a batch the run happens
// synchronously on the notifying call stack; batched notifications
// arrive here once the outermost batch completes.
// Implements the Listener interface.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}
	if e.running.Load() {
		// Self-triggered write during the effect body; ignore.
		return
	}
	e.run()
}

// ID returns the unique identifier for this effect.
// Implements the Listener interface.
func (e *Effect) ID() uint64 {
	return e.id
}

// run executes the effect function.
// This is called during initial creation and when dependencies change.
func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}
	if !e.running.CompareAndSwap(false, true) {
		return
	}
	defer e.running.Store(false)

	// Run cleanup from previous run
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	// Unsubscribe from old sources
	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
	e.sourcesMu.Unlock()

	// Track new sources during execution
	oldListener := setCurrentListener(e)

	cleanup := e.fn()

	// Restore previous listener
	setCurrentListener(oldListener)

	if e.disposed.Load() {
		// The body disposed its own effect; the subscriptions are
		// already torn down, so just run the fresh cleanup.
		if cleanup != nil {
			cleanup()
		}
		return
	}
	e.cleanup = cleanup
}

// addSource adds a source dependency.
// Called by signals when they are read during effect execution.
func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	// Check for duplicates
	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

// Dispose detaches the effect permanently: it runs the pending cleanup
// and unsubscribes from every source, so no further cost is paid when
// those sources change. Safe to call from within the effect body itself.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}

	// Run cleanup
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	// Unsubscribe from all sources
	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = nil
	e.sourcesMu.Unlock()
}

// IsDisposed returns true if the effect has been disposed.
func (e *Effect) IsDisposed() bool {
	return e.disposed.Load()
}

// CreateEffect creates and runs a new effect within the current owner
// context. The effect function runs immediately and re-runs when any
// signal or memo it reads changes. If the function returns a Cleanup,
// it will be called before the effect re-runs or when the effect is
// disposed.
//
// Example:
//
//	CreateEffect(func() Cleanup {
//	    fmt.Println("Count is:", count.Get())
//	    return func() { fmt.Println("Cleanup") }
//	})
func CreateEffect(fn func() Cleanup) *Effect {
	owner := getCurrentOwner()

	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: owner,
	}

	if owner != nil {
		owner.registerEffect(e)
	}

	// Run immediately
	e.run()

	return e
}

// OnUpdate creates an effect that skips the callback on the first run.
// This is useful when you only want to react to changes, not the initial
// value.
//
// The deps function is called on every run to establish dependencies.
// The callback is only called on subsequent runs when those dependencies
// change.
//
// Example:
//
//	OnUpdate(
//	    func() { _ = count.Get() },           // deps: read signals to track
//	    func() { fmt.Println("Updated!") },   // callback: only on changes
//	)
func OnUpdate(deps func(), callback func()) *Effect {
	first := true
	return CreateEffect(func() Cleanup {
		deps() // Always call to track dependencies
		if first {
			first = false
			return nil
		}
		callback()
		return nil
	})
}
