// Package graph turns the raw multi-edge trust relation into the simple
// directed capacity graph the solver operates on.
//
// A sender can extend several trust edges for the same token (to different
// receivers, or re-declared with a new capacity), so the raw edge set is a
// multigraph keyed on (from, token). Build collapses that into one pseudo
// node per (from, token) pair: a single upstream arc carries the largest
// capacity among the sender's edges for that token (not their sum), and one
// downstream arc per receiver
// carries that edge's own capacity. The resulting graph has at most one arc
// between any ordered pair of nodes, which is what the augmenting-path
// solver in package flow expects.
package graph
