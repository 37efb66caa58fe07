package trustflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustflow/pkg/apperror"
	"trustflow/pkg/domain"
)

func addr(b byte) domain.Address {
	var a domain.Address
	a[len(a)-1] = b
	return a
}

func edge(from, to, token byte, capacity int64) domain.Edge {
	return domain.Edge{From: addr(from), To: addr(to), Token: addr(token), Capacity: domain.NewAmount(capacity)}
}

func TestComputeFlowZeroRequestedIsNoOp(t *testing.T) {
	flow, transfers, err := ComputeFlow(addr(1), addr(2), []domain.Edge{edge(1, 2, 9, 10)}, domain.Zero)
	require.NoError(t, err)
	assert.True(t, flow.IsZero())
	assert.Empty(t, transfers)
}

func TestComputeFlowSourceEqualsSinkIsNoOp(t *testing.T) {
	flow, transfers, err := ComputeFlow(addr(1), addr(1), []domain.Edge{edge(1, 2, 9, 10)}, domain.NewAmount(5))
	require.NoError(t, err)
	assert.True(t, flow.IsZero())
	assert.Empty(t, transfers)
}

func TestComputeFlowRejectsNegativeRequested(t *testing.T) {
	negative := domain.Zero.Sub(domain.NewAmount(1))
	_, _, err := ComputeFlow(addr(1), addr(2), []domain.Edge{edge(1, 2, 9, 10)}, negative)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidArgument, apperror.Code(err))
}

// S1 — direct single hop.
func TestComputeFlowDirectSingleHop(t *testing.T) {
	flow, transfers, err := ComputeFlow(addr(1), addr(2), []domain.Edge{edge(1, 2, 9, 10)}, domain.NewAmount(100))
	require.NoError(t, err)
	assert.Equal(t, domain.NewAmount(10), flow)
	assert.Equal(t, []domain.Edge{edge(1, 2, 9, 10)}, transfers)
}

// S2 — bottleneck.
func TestComputeFlowBottleneck(t *testing.T) {
	edges := []domain.Edge{edge(1, 2, 9, 5), edge(2, 3, 9, 10)}
	flow, transfers, err := ComputeFlow(addr(1), addr(3), edges, domain.NewAmount(100))
	require.NoError(t, err)
	assert.Equal(t, domain.NewAmount(5), flow)
	assert.Equal(t, []domain.Edge{edge(1, 2, 9, 5), edge(2, 3, 9, 5)}, transfers)
}

// S6 — disconnected source/sink.
func TestComputeFlowDisconnected(t *testing.T) {
	flow, transfers, err := ComputeFlow(addr(3), addr(4), []domain.Edge{edge(1, 2, 9, 5)}, domain.NewAmount(1))
	require.NoError(t, err)
	assert.True(t, flow.IsZero())
	assert.Empty(t, transfers)
}

func TestComputeFlowRejectsSelfLoopEdge(t *testing.T) {
	_, _, err := ComputeFlow(addr(1), addr(2), []domain.Edge{edge(1, 1, 9, 5)}, domain.NewAmount(1))
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidArgument, apperror.Code(err))
}

func TestComputeFlowNeverExceedsRequested(t *testing.T) {
	edges := []domain.Edge{edge(1, 2, 9, 100)}
	flow, _, err := ComputeFlow(addr(1), addr(2), edges, domain.NewAmount(7))
	require.NoError(t, err)
	assert.True(t, flow.Cmp(domain.NewAmount(7)) <= 0)
}

func TestComputeFlowEmptyEdgeSet(t *testing.T) {
	flow, transfers, err := ComputeFlow(addr(1), addr(2), nil, domain.NewAmount(5))
	require.NoError(t, err)
	assert.True(t, flow.IsZero())
	assert.Empty(t, transfers)
}
