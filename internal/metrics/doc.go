// Package metrics records policygen service metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no call site needs a nil check:
//
//	svc := service.New(service.Options{Recorder: metrics.NewPrometheusRecorder(reg)})
//
// The Prometheus implementation registers its collectors on the registry it
// is given; HTTPHandler exposes that registry on the admin listener.
package metrics
