// Package observe provides ready-made tether.Observer implementations:
// Prometheus metrics and OpenTelemetry spans for cell activity.
//
//	metrics := observe.NewMetrics()
//	tracer := observe.NewTracer()
//	cell := tether.New[Profile](src,
//	    tether.WithName[Profile]("profile"),
//	    tether.WithObserver[Profile](tether.MultiObserver(metrics, tracer)),
//	)
package observe
