package tether

// Option is a functional option for configuring a Cell.
// Options are generic over the cell's value type, so they are
// instantiated explicitly at the call site:
//
//	tether.New[Profile](src, tether.KeepLocalEdits[Profile]())
type Option[T any] func(*config[T])

// config holds the resolved cell configuration.
type config[T any] struct {
	// cloneFn overrides the copy strategy. nil selects the default for
	// the tracking mode: DeepClone for deep cells, reference
	// assignment for shallow cells.
	cloneFn CloneFunc[T]

	// deep selects deep tracking and deep cloning.
	deep bool

	// keepLocalEdits makes the first genuine local edit sever the
	// tether instead of letting later source changes override it.
	keepLocalEdits bool

	// name identifies the cell to observers.
	name string

	// observer receives cell events.
	observer Observer
}

// WithCloneFunc overrides the clone strategy used for the initial
// capture and every synchronization. Useful when the default deep copy
// is too expensive or the value type needs custom copy semantics.
func WithCloneFunc[T any](fn CloneFunc[T]) Option[T] {
	return func(c *config[T]) {
		c.cloneFn = fn
	}
}

// Shallow disables deep tracking and deep cloning: the cell holds the
// same reference as the source, in-place nested mutation is invisible
// to the reactive graph, and only top-level reassignment propagates.
func Shallow[T any]() Option[T] {
	return func(c *config[T]) {
		c.deep = false
	}
}

// KeepLocalEdits makes local edits stick: the first genuine local edit
// severs the tether, so later source changes are not reflected until
// Reset is called. Without this option a source change always
// overrides local edits.
func KeepLocalEdits[T any]() Option[T] {
	return func(c *config[T]) {
		c.keepLocalEdits = true
	}
}

// WithName sets the cell name reported to observers.
func WithName[T any](name string) Option[T] {
	return func(c *config[T]) {
		c.name = name
	}
}

// WithObserver attaches an observer for cell events.
func WithObserver[T any](o Observer) Option[T] {
	return func(c *config[T]) {
		c.observer = o
	}
}

// applyOptions resolves the option list into a config with defaults.
func applyOptions[T any](opts []Option[T]) config[T] {
	cfg := config[T]{
		deep:     true,
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.cloneFn == nil {
		if cfg.deep {
			cfg.cloneFn = DeepClone[T]
		} else {
			cfg.cloneFn = passthrough[T]
		}
	}
	return cfg
}
