// Package diagnostic carries non-fatal notices out of the mapper.
//
// The mapper never fails because a header column has no matching field; it
// emits a Diagnostic to a Sink instead. Sinks:
//   - LogSink: zerolog events (NewStderrSink is the mapper default)
//   - Collector: in-memory, grouped by severity
//   - Discard: drops everything
package diagnostic
