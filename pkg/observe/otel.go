package observe

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for tether cells.
const defaultTracerName = "tether"

// TracerConfig configures the OpenTelemetry cell observer.
type TracerConfig struct {
	// TracerName is the name of the tracer (default: "tether").
	TracerName string

	// IncludeSyncs emits a span for every synchronization. Syncs can be
	// high-frequency, so this is disabled by default; severances and
	// resets are always traced.
	IncludeSyncs bool

	// Attributes are added to every emitted span.
	Attributes []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// TracerOption configures the OpenTelemetry cell observer.
type TracerOption func(*TracerConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracerOption {
	return func(c *TracerConfig) {
		c.TracerName = name
	}
}

// WithIncludeSyncs enables a span per synchronization.
func WithIncludeSyncs(include bool) TracerOption {
	return func(c *TracerConfig) {
		c.IncludeSyncs = include
	}
}

// WithAttributes adds constant attributes to every span.
func WithAttributes(attrs ...attribute.KeyValue) TracerOption {
	return func(c *TracerConfig) {
		c.Attributes = append(c.Attributes, attrs...)
	}
}

// Tracer is a tether.Observer that emits OpenTelemetry spans for cell
// events. Cell hooks fire synchronously inside the mutating call
// stack, so each event becomes a zero-duration span rather than
// wrapping the mutation itself.
type Tracer struct {
	config TracerConfig
}

// NewTracer creates an OpenTelemetry observer.
func NewTracer(opts ...TracerOption) *Tracer {
	config := TracerConfig{
		TracerName: defaultTracerName,
	}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return &Tracer{config: config}
}

// event emits a point-in-time span for a cell event.
func (t *Tracer) event(name, cell string) {
	attrs := append([]attribute.KeyValue{
		attribute.String("tether.cell", cell),
	}, t.config.Attributes...)

	_, span := t.config.tracer.Start(context.Background(), name,
		trace.WithAttributes(attrs...))
	span.End()
}

// CellCreated implements tether.Observer.
func (t *Tracer) CellCreated(name string) {
	t.event("tether.cell.created", name)
}

// CellDisposed implements tether.Observer.
func (t *Tracer) CellDisposed(name string) {
	t.event("tether.cell.disposed", name)
}

// CellSynced implements tether.Observer.
func (t *Tracer) CellSynced(name string) {
	if t.config.IncludeSyncs {
		t.event("tether.cell.synced", name)
	}
}

// CellEdited implements tether.Observer.
func (t *Tracer) CellEdited(string) {
	// Local edits are not traced on their own; the interesting
	// transition is the severance they may cause.
}

// CellSevered implements tether.Observer.
func (t *Tracer) CellSevered(name string) {
	t.event("tether.cell.severed", name)
}

// CellReset implements tether.Observer.
func (t *Tracer) CellReset(name string) {
	t.event("tether.cell.reset", name)
}
