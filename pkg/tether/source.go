package tether

// Source is the external value a Cell tethers to. Reading it inside a
// tracked context must establish reactive dependencies; both
// *reactive.Signal[T] and *reactive.Memo[T] satisfy this directly.
type Source[T any] interface {
	Get() T
}

// SourceFunc adapts a zero-argument accessor into a Source. The
// function body is read reactively, so any signals it touches become
// dependencies of the cell's source watcher.
type SourceFunc[T any] func() T

// Get implements Source.
func (f SourceFunc[T]) Get() T {
	return f()
}
