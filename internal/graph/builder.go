package graph

import (
	"trustflow/pkg/apperror"
	"trustflow/pkg/domain"
)

// Adjacency is the simple directed capacity graph produced by Build: for
// each node, the set of outgoing arcs and their capacity. Build never
// produces a zero-capacity arc or a self-loop.
type Adjacency map[domain.Node]map[domain.Node]domain.Amount

// addArc records or raises the capacity of node -> to, creating the
// adjacency row on first use.
func (a Adjacency) addArc(node, to domain.Node, capacity domain.Amount) {
	row, ok := a[node]
	if !ok {
		row = make(map[domain.Node]domain.Amount)
		a[node] = row
	}
	row[to] = capacity
}

// raiseArc is addArc's variant for the upstream sender -> pseudo-node arc,
// which takes the max over every edge that feeds it rather than the last
// write.
func (a Adjacency) raiseArc(node, to domain.Node, capacity domain.Amount) {
	row, ok := a[node]
	if !ok {
		row = make(map[domain.Node]domain.Amount)
		a[node] = row
	}
	if existing, ok := row[to]; !ok || capacity.Cmp(existing) > 0 {
		row[to] = capacity
	}
}

// Nodes returns every node with at least one outgoing or incoming arc, in
// ascending order, for deterministic iteration. The solver and the
// extractor do not call it; they sort their own neighbour and key lists.
func (a Adjacency) Nodes() []domain.Node {
	seen := make(map[domain.Node]struct{}, len(a))
	for from, row := range a {
		seen[from] = struct{}{}
		for to := range row {
			seen[to] = struct{}{}
		}
	}
	nodes := make([]domain.Node, 0, len(seen))
	for n := range seen {
		nodes = append(nodes, n)
	}
	sortNodes(nodes)
	return nodes
}

func sortNodes(nodes []domain.Node) {
	for i := 1; i < len(nodes); i++ {
		for j := i; j > 0 && nodes[j].Less(nodes[j-1]); j-- {
			nodes[j], nodes[j-1] = nodes[j-1], nodes[j]
		}
	}
}

// Build collapses a raw trust-edge multigraph into a simple directed
// capacity graph, introducing one pseudo-node per (sender, token) pair.
//
// For every edge e = (from, to, token, capacity):
//   - the upstream arc from -> Pseudo(from, token) is raised to the max
//     capacity seen across every edge sharing that (from, token);
//   - the downstream arc Pseudo(from, token) -> to is set to e's own
//     capacity, last write wins if the input repeats a (from, to, token)
//     triple.
//
// Build rejects a zero-capacity edge, a self-loop (from == to), and a zero
// address anywhere in an edge, all as InvalidArgument: they cannot arise
// from a well-formed trust relation and would otherwise silently distort
// the solve.
func Build(edges []domain.Edge) (Adjacency, error) {
	adj := make(Adjacency, 2*len(edges))

	for i, e := range edges {
		if e.From.IsZero() || e.To.IsZero() || e.Token.IsZero() {
			return nil, apperror.InvalidArgumentf("graph: edge %d has a zero address", i)
		}
		if e.From == e.To {
			return nil, apperror.InvalidArgumentf("graph: edge %d is a self-loop on %s", i, e.From)
		}
		if !e.Capacity.IsPositive() {
			return nil, apperror.InvalidArgumentf("graph: edge %d has non-positive capacity", i)
		}

		pseudo := domain.Pseudo(e.From, e.Token)
		from := domain.Real(e.From)
		to := domain.Real(e.To)

		adj.raiseArc(from, pseudo, e.Capacity)
		adj.addArc(pseudo, to, e.Capacity)
	}

	return adj, nil
}
