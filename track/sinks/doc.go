// Package sinks provides the track.Logger implementations: structured logs
// (zap), dashboard event files (blob storage), the experiment database,
// Prometheus collectors, and a message-stream publisher. Sinks hold no
// Tracker state; each one turns a (tag, value, step) triple into a write
// against its backend and reports the backend's error verbatim.
package sinks
