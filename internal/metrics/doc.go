// Package metrics records build metrics for sitegen.
//
// Components receive a Recorder through their constructors and default to
// NoopRecorder, so no call site needs a nil check:
//
//	gen := site.NewGenerator(cfg, site.WithRecorder(metrics.NoopRecorder{}))
//
// PrometheusRecorder backs the interface with client_golang collectors. A build
// is a short-lived batch job, so instead of serving /metrics the registry is
// written once per run to a node_exporter textfile-collector file:
//
//	rec := metrics.NewPrometheusRecorder(nil)
//	// ... run the build ...
//	err := rec.WriteTextfile("/var/lib/node_exporter/sitegen.prom")
package metrics
