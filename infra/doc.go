// Package infra holds the adapters around the sizing core: the reference
// workbook reader, the MQTT transport, metrics sinks, Sentry monitoring and
// logging. They depend on the interfaces defined in the core packages.
package infra
