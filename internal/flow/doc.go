// Package flow implements the augmenting-path max-flow engine that runs
// over the simple capacity graph produced by package graph.
//
// A single augmentation is a breadth-first search whose neighbour order is
// descending residual capacity (ties broken by the total order on
// domain.Node), which tends to saturate fat edges first and shortens the
// outer loop on wide graphs. Two maps evolve together as flow is pushed: a
// residual-capacity map C, seeded from the adjacency, and a used-edge map U
// that records which direction of each arc actually carried flow — the
// signed bookkeeping described on applyAugmentation, whose U package
// transfer decomposes.
package flow
