// Package track provides the scalar-telemetry primitives for training runs:
// the Logger sink interface, the Tracker that buffers per-batch losses and
// fans epoch summaries out to every registered sink, and the Metric function
// type computed on (ground truth, predictions) at the end of an epoch.
// Concrete sinks live in track/sinks; stock metrics live in track/metrics.
package track
