// Package engine assembles computeFlow into an ambient service: it loads
// trust edges from storage, consults the result cache, runs the
// synchronous core under a context-cancellable wrapper, and records
// telemetry around the whole call.
package engine
