// Package observability provides OpenTelemetry span helpers used by the
// provider middleware. Only the otel API is used: without an SDK installed
// by the embedding application, every helper is a no-op. Installing
// exporters and tracer providers is the application's job, not this
// library's.
package observability
