// Package reactive provides the fine-grained reactivity core for Tether.
//
// Dependencies are tracked automatically at runtime: reading a signal
// while a listener is active (a memo computation, an effect run, or a
// Watch callback's tracked read) subscribes that listener to the
// signal's changes.
//
// # Core Types
//
// Signal[T] is a reactive value container:
//
//	count := NewSignal(0)
//	value := count.Get()  // Read (subscribes current listener)
//	count.Set(5)          // Write (notifies subscribers)
//	count.Update(func(n int) int { return n + 1 })
//
// Memo[T] is a cached derived computation:
//
//	doubled := NewMemo(func() int { return count.Get() * 2 })
//	value := doubled.Get()  // Recomputes only if dependencies changed
//
// Effect runs side effects when dependencies change:
//
//	CreateEffect(func() Cleanup {
//	    fmt.Println("Count is:", count.Get())
//	    return func() { /* cleanup */ }
//	})
//
// # Synchronous Flush
//
// Notification is synchronous: an effect whose dependency changes
// re-runs on the same call stack as the triggering Set or Update,
// before the mutating call returns. Batch defers notification until
// the outermost batch completes:
//
//	Batch(func() {
//	    a.Set(1)
//	    b.Set(2)
//	})  // Single notification pass after both updates
//
// # Thread Safety
//
// All primitives are safe for concurrent use. The tracking context is
// per-goroutine, so goroutines spawned inside reactive code must
// propagate ownership explicitly via WithOwner.
package reactive
