package tether

// Observer receives lifecycle and synchronization events from a Cell.
// Implementations must be cheap and non-blocking: the hooks fire
// synchronously inside the mutating call stack.
//
// The observe package provides Prometheus and OpenTelemetry
// implementations.
type Observer interface {
	// CellCreated fires once when the cell is constructed.
	CellCreated(name string)

	// CellDisposed fires once when the cell is disposed.
	CellDisposed(name string)

	// CellSynced fires after every source-to-cell synchronization,
	// including the one performed by Reset.
	CellSynced(name string)

	// CellEdited fires on every genuine local edit (writes performed
	// by the cell's own synchronization are excluded).
	CellEdited(name string)

	// CellSevered fires when a local edit detaches the tether.
	CellSevered(name string)

	// CellReset fires on every Reset call.
	CellReset(name string)
}

// NopObserver is an Observer that ignores all events.
type NopObserver struct{}

func (NopObserver) CellCreated(string)  {}
func (NopObserver) CellDisposed(string) {}
func (NopObserver) CellSynced(string)   {}
func (NopObserver) CellEdited(string)   {}
func (NopObserver) CellSevered(string)  {}
func (NopObserver) CellReset(string)    {}

// MultiObserver fans events out to multiple observers in order.
func MultiObserver(observers ...Observer) Observer {
	return multiObserver(observers)
}

type multiObserver []Observer

func (m multiObserver) CellCreated(name string) {
	for _, o := range m {
		o.CellCreated(name)
	}
}

func (m multiObserver) CellDisposed(name string) {
	for _, o := range m {
		o.CellDisposed(name)
	}
}

func (m multiObserver) CellSynced(name string) {
	for _, o := range m {
		o.CellSynced(name)
	}
}

func (m multiObserver) CellEdited(name string) {
	for _, o := range m {
		o.CellEdited(name)
	}
}

func (m multiObserver) CellSevered(name string) {
	for _, o := range m {
		o.CellSevered(name)
	}
}

func (m multiObserver) CellReset(name string) {
	for _, o := range m {
		o.CellReset(name)
	}
}
