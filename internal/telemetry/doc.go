// Package telemetry installs the OpenTelemetry tracer provider that loader
// spans are exported through. When telemetry is disabled the global noop
// provider stays in place and nothing connects to a collector.
package telemetry
