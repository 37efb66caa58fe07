// Package transfer decomposes a used-edge map produced by package flow
// into an ordered list of concrete real-account transfers.
//
// It walks outward from the source, always picking the smallest-address
// account with a non-zero balance, and drains that balance through the
// pseudo-nodes it reaches, emitting one transfer per (pseudo-node,
// downstream arc) pair it consumes. The walk ranges over a sorted snapshot
// of each map's keys, which fixes the iteration order, while it decrements
// the live map and deletes entries whose flow drains to zero.
package transfer
