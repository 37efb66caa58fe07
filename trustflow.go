// Package trustflow computes the maximum transferable value between two
// accounts in a personalized-credit trust network and the concrete
// per-token transfers that realize it.
package trustflow

import (
	"trustflow/internal/flow"
	"trustflow/internal/graph"
	"trustflow/internal/transfer"
	"trustflow/pkg/apperror"
	"trustflow/pkg/domain"
)

// ComputeFlow is the library's single entry point. Given the current trust
// edges, it transforms them into a capacity graph, pushes as much flow as
// possible from source to sink up to requested, and decomposes the result
// into an ordered list of concrete transfers.
//
// requested = 0 and source == sink both short-circuit to (0, nil, nil)
// without touching the edge set, per the external-interface boundary
// constraints. Any other error is either InvalidArgument (malformed input)
// or Internal (an invariant violated by a bug in the solver or extractor).
func ComputeFlow(source, sink domain.Address, edges []domain.Edge, requested domain.Amount) (domain.Amount, []domain.Edge, error) {
	if requested.IsNegative() {
		return domain.Zero, nil, apperror.InvalidArgumentf("computeFlow: requested amount is negative")
	}
	if requested.IsZero() {
		return domain.Zero, nil, nil
	}
	if source == sink {
		return domain.Zero, nil, nil
	}

	adjacency, err := graph.Build(edges)
	if err != nil {
		return domain.Zero, nil, err
	}

	pushed, used, err := flow.Solve(adjacency, domain.Real(source), domain.Real(sink), requested)
	if err != nil {
		return domain.Zero, nil, err
	}

	transfers := transfer.Extract(source, sink, pushed, used)
	return pushed, transfers, nil
}
