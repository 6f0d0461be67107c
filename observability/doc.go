// Package observability wires OpenTelemetry tracing for the Courtly
// server. Tracing is optional; when InitTracer is never called the span
// helpers delegate to the otel no-op provider.
package observability
