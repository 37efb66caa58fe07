// Package cache wires the generic cache in pkg/cache (Redis or in-memory,
// per CacheConfig.Backend) into a
// ComputeFlow result cache: given a request's (source, sink, requested,
// edges), callers can skip recomputation when an identical request was
// served recently.
package cache
