// Package store persists the trust edges a computeFlow request is built
// from: the Circles-style "who trusts whom, for how much, in which token"
// relationships that the graph builder collapses into pseudo-nodes.
package store
