package reactive

// WatchOption is a functional option for configuring Watch.
type WatchOption func(*watchOptions)

// watchOptions holds configuration for watch behavior.
type watchOptions struct {
	// immediate invokes the callback with the initial value on attach.
	immediate bool
}

// Immediate causes the watch callback to fire once with the current
// value when the watcher is attached, instead of only on changes.
func Immediate() WatchOption {
	return func(o *watchOptions) {
		o.immediate = true
	}
}

// Watch observes a reactively-read accessor and invokes fn with the new
// and previous values whenever the accessor's dependencies change. The
// accessor is the "watch source": typically a signal's Get method or a
// closure reading one or more signals.
//
// The callback runs untracked, so signal reads inside it do not
// subscribe the watcher to additional dependencies. The callback fires
// synchronously on the call stack of the triggering mutation.
//
// The returned Effect detaches the watcher when disposed.
//
// Example:
//
//	w := Watch(name.Get, func(newV, oldV string) {
//	    fmt.Println(oldV, "->", newV)
//	})
//	defer w.Dispose()
func Watch[T any](source func() T, fn func(newV, oldV T), opts ...WatchOption) *Effect {
	var o watchOptions
	for _, opt := range opts {
		opt(&o)
	}

	var prev T
	first := true
	return CreateEffect(func() Cleanup {
		next := source() // Tracked read establishes dependencies
		if first {
			first = false
			prev = next
			if o.immediate {
				var zero T
				Untracked(func() { fn(next, zero) })
			}
			return nil
		}
		old := prev
		prev = next
		Untracked(func() { fn(next, old) })
		return nil
	})
}
