package transfer

import (
	"trustflow/internal/graph"
	"trustflow/pkg/domain"
)

// Extract decomposes a used-edge map into an ordered list of real-account
// transfers that realize flow units moving from source to sink. The
// emitted domain.Edge records reuse the Capacity field to carry the
// transfer amount, in keeping with the rest of the package: a transfer is
// just the real-graph edge it happened to move value along.
//
// used is consumed: its pseudo-node rows are drained and pruned as the
// walk proceeds. Pass a map the caller owns exclusively for this call.
func Extract(source, sink domain.Address, flow domain.Amount, used graph.Adjacency) []domain.Edge {
	if !flow.IsPositive() {
		return nil
	}

	balances := map[domain.Address]domain.Amount{source: flow}
	var transfers []domain.Edge

	for {
		if len(balances) == 0 {
			break
		}
		if len(balances) == 1 {
			if _, onlySink := balances[sink]; onlySink {
				break
			}
		}

		u := pickSmallest(balances)
		amount := balances[u]
		delete(balances, u)

		node := domain.Real(u)
		for _, pseudo := range snapshotKeys(used[node]) {
			transfers = drainPseudoNode(used, pseudo, &amount, balances, transfers)
		}
	}

	return transfers
}

// drainPseudoNode pushes as much of *amount as possible through pseudo's
// downstream arcs, emitting one transfer per non-zero arc it drains and
// crediting the receiving account's balance. It prunes pseudo's row of
// any arc left at zero once the scan completes (spec's "after scanning
// U[p], prune entries whose recorded flow has fallen to zero").
func drainPseudoNode(used graph.Adjacency, pseudo domain.Node, amount *domain.Amount, balances map[domain.Address]domain.Amount, transfers []domain.Edge) []domain.Edge {
	row := used[pseudo]
	for _, v := range snapshotKeys(row) {
		capacity := row[v]
		if !capacity.IsPositive() {
			continue
		}

		delta := domain.Min(*amount, capacity)
		if !delta.IsPositive() {
			continue
		}

		transfers = append(transfers, domain.Edge{
			From:     pseudo.Owner,
			To:       v.Addr,
			Token:    pseudo.Token,
			Capacity: delta,
		})

		*amount = amount.Sub(delta)
		row[v] = capacity.Sub(delta)
		balances[v.Addr] = balances[v.Addr].Add(delta)
	}

	pruneZero(row)
	return transfers
}

func pruneZero(row map[domain.Node]domain.Amount) {
	for node, amt := range row {
		if amt.IsZero() {
			delete(row, node)
		}
	}
}

// snapshotKeys returns row's keys in Node order. Sorting (rather than raw
// map iteration) keeps the walk deterministic: Go randomizes map iteration
// order, and spec's determinism guarantee (§5) requires bit-identical
// transfer sequences across runs on the same input.
func snapshotKeys(row map[domain.Node]domain.Amount) []domain.Node {
	keys := make([]domain.Node, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j].Less(keys[j-1]); j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

// pickSmallest returns the address with the smallest total order among
// balances' keys, the deterministic tie-break spec §4.3 and §5 require.
func pickSmallest(balances map[domain.Address]domain.Amount) domain.Address {
	first := true
	var smallest domain.Address
	for addr := range balances {
		if first || addr.Less(smallest) {
			smallest = addr
			first = false
		}
	}
	return smallest
}
