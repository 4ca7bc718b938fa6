package tether

import (
	"sync"
	"sync/atomic"

	"github.com/tether-dev/tether/pkg/reactive"
)

// Cell is a mutable reactive value tethered to an external default
// source. See the package documentation for the synchronization rules.
//
// Cell implements Source, so cells can be chained: one cell's value can
// serve as another cell's default.
type Cell[T any] struct {
	name string

	source  Source[T]
	cloneFn CloneFunc[T]

	deep           bool
	keepLocalEdits bool
	observer       Observer

	// value is the locally owned copy of the source value.
	value *reactive.Signal[T]

	// watching reports whether the tether is attached.
	watching atomic.Bool

	// internalWrite is true only during the synchronous span of a
	// source-to-cell copy. It is how the cell's own watcher tells a
	// synchronization write apart from a genuine local edit.
	internalWrite atomic.Bool

	// disposed marks the cell as torn down.
	disposed atomic.Bool

	// watchMu guards watcher attachment and detachment.
	watchMu     sync.Mutex
	sourceWatch *reactive.Effect
	valueWatch  *reactive.Effect
}

// New creates a cell seeded from the source's current value.
//
// The source value is captured once through the configured clone
// function, then two watchers are attached: one that copies every
// source change into the cell, and one that classifies cell writes as
// synchronization or genuine local edits.
//
// If a reactive Owner is current, the cell's watchers are detached when
// that owner is disposed.
func New[T any](source Source[T], opts ...Option[T]) *Cell[T] {
	cfg := applyOptions(opts)

	c := &Cell[T]{
		name:           cfg.name,
		source:         source,
		cloneFn:        cfg.cloneFn,
		deep:           cfg.deep,
		keepLocalEdits: cfg.keepLocalEdits,
		observer:       cfg.observer,
	}

	// Initial capture, untracked: constructing a cell inside an effect
	// must not subscribe that effect to the source.
	var initial T
	reactive.Untracked(func() {
		initial = c.cloneFn(source.Get())
	})

	// Deep cells treat every write as a change: an in-place mutation
	// handed to Update returns the same reference, which value
	// comparison cannot observe. Shallow cells compare by reference,
	// making nested mutation invisible to the graph.
	eq := reactive.AlwaysChanged[T]
	if !cfg.deep {
		eq = reactive.ShallowEquals[T]
	}
	c.value = reactive.NewSignal(initial).WithEquals(eq)

	c.attach()
	reactive.OnOwnerCleanup(c.Dispose)

	c.observer.CellCreated(c.name)
	return c
}

// NewFunc creates a cell whose source is a zero-argument accessor read
// reactively. Any signals the accessor touches become dependencies of
// the cell's source watcher.
func NewFunc[T any](source func() T, opts ...Option[T]) *Cell[T] {
	return New[T](SourceFunc[T](source), opts...)
}

// Get returns the cell's current value and subscribes the current
// listener, behaving like any other reactive container.
func (c *Cell[T]) Get() T {
	return c.value.Get()
}

// Peek returns the cell's current value without subscribing.
func (c *Cell[T]) Peek() T {
	return c.value.Peek()
}

// Set assigns a new value to the cell. This is a local mutation: it
// never writes back to the source, and under KeepLocalEdits it severs
// the tether.
func (c *Cell[T]) Set(v T) {
	c.value.Set(v)
}

// Update mutates the cell's value in place. For deep cells the change
// is observed even when fn returns the same reference it was given;
// for shallow cells only returning a different top-level value counts.
func (c *Cell[T]) Update(fn func(T) T) {
	c.value.Update(fn)
}

// Signal exposes the cell's underlying signal, for composing with
// memos and effects.
func (c *Cell[T]) Signal() *reactive.Signal[T] {
	return c.value
}

// Watching reports whether the tether is attached: true means source
// changes are currently being copied into the cell.
func (c *Cell[T]) Watching() bool {
	return c.watching.Load()
}

// Name returns the cell name reported to observers.
func (c *Cell[T]) Name() string {
	return c.name
}

// Reset restores the cell to the source's current value and re-attaches
// the tether if it was severed. Idempotent absent intervening mutation.
func (c *Cell[T]) Reset() {
	c.syncFromSource()
	if !c.watching.Load() && !c.disposed.Load() {
		c.attach()
	}
	c.observer.CellReset(c.name)
}

// Dispose detaches both watchers permanently. The cell's value remains
// readable and writable, but it no longer follows the source and Reset
// no longer re-attaches.
func (c *Cell[T]) Dispose() {
	if c.disposed.Swap(true) {
		return
	}
	c.detach()
	c.observer.CellDisposed(c.name)
}

// syncFromSource copies the source's current value into the cell under
// the internal-write flag, so the cell's own watcher does not mistake
// the write for a local edit. The flag is held only for the synchronous
// span of the copy.
func (c *Cell[T]) syncFromSource() {
	var v T
	reactive.Untracked(func() {
		v = c.source.Get()
	})

	c.internalWrite.Store(true)
	defer c.internalWrite.Store(false)
	c.value.Set(c.cloneFn(v))

	c.observer.CellSynced(c.name)
}

// attach wires the two watchers and marks the tether active.
func (c *Cell[T]) attach() {
	c.watchMu.Lock()
	defer c.watchMu.Unlock()

	// Source watcher: every source change overwrites the cell,
	// unconditionally. Severance policy never gates this; it only
	// removes the watcher itself.
	c.sourceWatch = reactive.Watch(c.source.Get, func(T, T) {
		c.syncFromSource()
	})

	// Cell watcher: classify writes. Synchronization writes carry the
	// internal flag; anything else is a genuine local edit.
	c.valueWatch = reactive.Watch(c.value.Get, func(T, T) {
		if c.internalWrite.Load() {
			return
		}
		c.observer.CellEdited(c.name)
		if c.keepLocalEdits {
			c.sever()
		}
	})

	c.watching.Store(true)
}

// sever detaches both watchers in response to a local edit. The
// detachment is real unsubscription: source changes cost nothing until
// Reset re-attaches.
func (c *Cell[T]) sever() {
	c.detach()
	c.observer.CellSevered(c.name)
}

// detach disposes both watchers and clears the watching flag.
func (c *Cell[T]) detach() {
	c.watchMu.Lock()
	sw, vw := c.sourceWatch, c.valueWatch
	c.sourceWatch, c.valueWatch = nil, nil
	c.watchMu.Unlock()

	if sw != nil {
		sw.Dispose()
	}
	if vw != nil {
		vw.Dispose()
	}
	c.watching.Store(false)
}
