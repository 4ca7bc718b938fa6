// Package tether provides Cell, a reactive value that tracks an
// external default source while allowing local, independent mutation.
//
// A Cell is seeded from a source (a signal, memo, or any accessor read
// reactively) at construction and keeps following it: while the tether
// is attached, every source change synchronously overwrites the cell's
// local value. The consumer can mutate the cell freely without touching
// the source.
//
// By default a source change always wins over local edits. With
// KeepLocalEdits, the first genuine local edit severs the tether — both
// watchers are detached, so later source changes cost nothing and are
// not reflected — until Reset is called. Reset always adopts the
// source's current value and re-attaches the tether.
//
//	defaults := reactive.NewSignal(Profile{Theme: "light"})
//	cell := tether.New[Profile](defaults)
//
//	cell.Set(Profile{Theme: "dark"})   // local edit
//	defaults.Set(Profile{Theme: "sepia"})
//	cell.Get()                         // Profile{Theme: "sepia"} (source wins)
//
//	cell2 := tether.New[Profile](defaults, tether.KeepLocalEdits[Profile]())
//	cell2.Set(Profile{Theme: "dark"})  // severs the tether
//	defaults.Set(Profile{Theme: "mono"})
//	cell2.Get()                        // still dark
//	cell2.Reset()                      // mono, tether re-attached
package tether
