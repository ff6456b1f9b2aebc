// Package metrics defines the observability sinks of the sizing service.
// Sinks like PromSink and InfluxSink record sizing requests, rejected
// requests and reference reloads and can be combined with NewMultiSink. The
// factory helpers return a MultiSink automatically when several sinks are
// configured. Optional recorder interfaces are discovered with type
// assertions so a sink only implements what it supports.
package metrics
