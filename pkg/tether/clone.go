package tether

import (
	"github.com/huandu/go-clone"
)

// CloneFunc produces an independent copy of a value. It is invoked for
// the initial capture and for every source-to-cell synchronization.
type CloneFunc[T any] func(T) T

// DeepClone is the default clone strategy for deep cells: a structural
// deep copy that follows pointers, maps and slices, and tolerates
// cyclic values. Non-reference values pass through unchanged.
func DeepClone[T any](v T) T {
	if any(v) == nil {
		return v
	}
	return clone.Slowly(v).(T)
}

// passthrough returns the value as-is. Shallow cells use it so the cell
// and the source share the same underlying reference until either side
// reassigns.
func passthrough[T any](v T) T {
	return v
}
