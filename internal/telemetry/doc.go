// Package telemetry records spans and metrics around a computeFlow call,
// built on the generic tracer and collectors in pkg/telemetry and
// pkg/metrics.
package telemetry
