// Package metrics records render outcomes.
//
// Components receive a Recorder and default to NoopRecorder, so metrics
// collection needs no nil checks at call sites. PrometheusRecorder forwards
// to a Prometheus registry, which the CLI can serve over HTTP or write as a
// node-exporter textfile snapshot.
package metrics
