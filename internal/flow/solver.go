package flow

import (
	"sort"

	"trustflow/internal/graph"
	"trustflow/pkg/apperror"
	"trustflow/pkg/domain"
)

// Solve runs repeated augmenting-path search over adj from source to sink,
// pushing flow until either requested is reached or no further augmenting
// path exists. adj is read-only; Solve works on its own residual copy and
// returns the used-edge map the transfer extractor decomposes.
//
// The caller is responsible for the source == sink and requested == 0
// short-circuits described at the computeFlow boundary — Solve performs at
// least one search attempt whenever requested is positive, and makes none
// when requested is zero.
func Solve(adj graph.Adjacency, source, sink domain.Node, requested domain.Amount) (domain.Amount, graph.Adjacency, error) {
	if requested.IsNegative() {
		return domain.Zero, nil, apperror.InvalidArgumentf("flow: requested amount is negative")
	}

	residual := cloneAdjacency(adj)
	used := make(graph.Adjacency)
	pushed := domain.Zero

	for pushed.Cmp(requested) < 0 {
		bottleneck, parent, found := augmentingSearch(residual, source, sink)
		if !found {
			break
		}

		delta := domain.Min(bottleneck, requested.Sub(pushed))
		if !delta.IsPositive() {
			break
		}

		if err := applyAugmentation(adj, residual, used, parent, source, sink, delta); err != nil {
			return domain.Zero, nil, err
		}

		pushed = pushed.Add(delta)
	}

	return pushed, used, nil
}

// augmentingSearch is a single breadth-first augmenting-path search over
// the residual graph. Neighbours are visited in descending residual
// capacity, with domain.Node's total order as a deterministic tie-break
// (spec §4.2.1). It returns the path's bottleneck capacity and its parent
// map, or found == false if sink is unreachable.
func augmentingSearch(residual graph.Adjacency, source, sink domain.Node) (domain.Amount, map[domain.Node]domain.Node, bool) {
	parent := map[domain.Node]domain.Node{}
	bottleneck := map[domain.Node]domain.Amount{source: domain.Max}
	visited := map[domain.Node]bool{source: true}
	queue := []domain.Node{source}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		if node == sink {
			return bottleneck[sink], parent, true
		}

		for _, to := range descendingNeighbors(residual, node) {
			if visited[to] {
				continue
			}
			cap := residual[node][to]
			if !cap.IsPositive() {
				continue
			}
			visited[to] = true
			parent[to] = node
			bottleneck[to] = domain.Min(bottleneck[node], cap)
			queue = append(queue, to)
		}
	}

	return domain.Zero, nil, false
}

// descendingNeighbors returns node's outgoing neighbours in the residual
// graph, ordered by descending capacity then ascending Node order.
func descendingNeighbors(residual graph.Adjacency, node domain.Node) []domain.Node {
	row := residual[node]
	neighbors := make([]domain.Node, 0, len(row))
	for to := range row {
		neighbors = append(neighbors, to)
	}
	sort.Slice(neighbors, func(i, j int) bool {
		ci, cj := row[neighbors[i]], row[neighbors[j]]
		if cmp := ci.Cmp(cj); cmp != 0 {
			return cmp > 0
		}
		return neighbors[i].Less(neighbors[j])
	})
	return neighbors
}

// applyAugmentation walks the parent chain from sink back to source and,
// for every arc (prev -> node) on the path, updates the residual capacity
// and the used-edge map per spec §4.2.2. A is the original adjacency: its
// absence of an arc node -> prev is what distinguishes a genuine forward
// push from the undoing of flow previously recorded on node -> prev.
func applyAugmentation(a, residual, used graph.Adjacency, parent map[domain.Node]domain.Node, source, sink domain.Node, delta domain.Amount) error {
	node := sink
	for node != source {
		prev, ok := parent[node]
		if !ok {
			return apperror.Internalf("flow: parent chain broken at node %s while reconstructing augmenting path", node)
		}

		decrementArc(residual, prev, node, delta)
		incrementArc(residual, node, prev, delta)

		if arcAmount(a, node, prev).IsPositive() {
			if err := decrementUsed(used, node, prev, delta); err != nil {
				return err
			}
		} else {
			incrementArc(used, prev, node, delta)
		}

		node = prev
	}
	return nil
}

func arcAmount(a graph.Adjacency, from, to domain.Node) domain.Amount {
	row, ok := a[from]
	if !ok {
		return domain.Zero
	}
	amt, ok := row[to]
	if !ok {
		return domain.Zero
	}
	return amt
}

func incrementArc(m graph.Adjacency, from, to domain.Node, delta domain.Amount) {
	row, ok := m[from]
	if !ok {
		row = make(map[domain.Node]domain.Amount)
		m[from] = row
	}
	row[to] = row[to].Add(delta)
}

func decrementArc(m graph.Adjacency, from, to domain.Node, delta domain.Amount) {
	row := m[from]
	next := row[to].Sub(delta)
	if next.IsZero() {
		delete(row, to)
	} else {
		row[to] = next
	}
}

// decrementUsed undoes previously recorded flow on used[from][to]. It is an
// internal inconsistency — not a user-facing error — for this to underflow,
// since delta is always bounded by the residual capacity the earlier push
// created.
func decrementUsed(used graph.Adjacency, from, to domain.Node, delta domain.Amount) error {
	row := used[from]
	current := row[to]
	if current.Cmp(delta) < 0 {
		return apperror.Internalf("flow: used-edge underflow on %s -> %s", from, to)
	}
	next := current.Sub(delta)
	if next.IsZero() {
		delete(row, to)
	} else {
		row[to] = next
	}
	return nil
}

func cloneAdjacency(a graph.Adjacency) graph.Adjacency {
	out := make(graph.Adjacency, len(a))
	for from, row := range a {
		cloned := make(map[domain.Node]domain.Amount, len(row))
		for to, amt := range row {
			cloned[to] = amt
		}
		out[from] = cloned
	}
	return out
}
