package engine

import (
	"context"

	"trustflow"
	"trustflow/internal/cache"
	"trustflow/internal/ids"
	"trustflow/internal/store"
	"trustflow/internal/telemetry"
	"trustflow/pkg/apperror"
	"trustflow/pkg/config"
	"trustflow/pkg/domain"
	"trustflow/pkg/logger"
	"trustflow/pkg/metrics"
)

// Service is the ambient entry point a transport layer calls into: it loads
// trust edges, consults the result cache, and runs computeFlow under a
// context-cancellable wrapper around the synchronous core.
type Service struct {
	edges  store.EdgeStore
	cache  *cache.FlowResultCache
	solver config.SolverConfig
}

// New builds a Service over an edge store and an optional result cache
// (nil disables caching).
func New(edges store.EdgeStore, flowCache *cache.FlowResultCache, solverCfg config.SolverConfig) *Service {
	return &Service{edges: edges, cache: flowCache, solver: solverCfg}
}

// ComputeFlow loads the current trust-edge set, serves a cached result when
// one matches, and otherwise runs the computeFlow core. The core itself is
// synchronous; ComputeFlow bounds it to ctx (and the configured solver
// timeout, whichever is shorter) by running it on a goroutine and racing it
// against cancellation, the same wrapper pattern the upstream
// context-aware augmenting-path runner uses.
func (s *Service) ComputeFlow(ctx context.Context, source, sink domain.Address, requested domain.Amount) (domain.Amount, []domain.Edge, error) {
	correlationID := ids.New()
	log := logger.WithRequestID(correlationID)

	if s.solver.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.solver.Timeout)
		defer cancel()
	}

	timer := metrics.NewTimer(metrics.Get().StoreDuration, "list_edges")
	edges, err := s.edges.ListEdges(ctx)
	timer.ObserveDuration()
	if err != nil {
		return domain.Zero, nil, err
	}

	if pushed, transfers, found := s.cache.Lookup(ctx, source, sink, requested, edges); found {
		log.Debug("computeFlow cache hit", "source", source, "sink", sink, "correlation_id", correlationID)
		return pushed, transfers, nil
	}

	pushed, transfers, err := telemetry.RecordFlow(ctx, source, sink, requested, len(edges),
		func(ctx context.Context) (domain.Amount, []domain.Edge, error) {
			return s.runWithContext(ctx, source, sink, edges, requested)
		})
	if err != nil {
		log.Error("computeFlow failed", "source", source, "sink", sink, "correlation_id", correlationID, "error", err)
		return domain.Zero, nil, err
	}

	if err := s.cache.Store(ctx, source, sink, requested, edges, pushed, transfers); err != nil {
		log.Warn("computeFlow cache store failed", "error", err, "correlation_id", correlationID)
	}

	return pushed, transfers, nil
}

// runWithContext races the synchronous core against ctx, returning early
// with a cancellation error if the deadline or caller cancellation fires
// first. The core itself keeps running in its goroutine until it finishes;
// it is not preemptible mid-search, matching the single-pass nature of a
// bounded augmenting-path computation.
func (s *Service) runWithContext(ctx context.Context, source, sink domain.Address, edges []domain.Edge, requested domain.Amount) (domain.Amount, []domain.Edge, error) {
	type result struct {
		pushed    domain.Amount
		transfers []domain.Edge
		err       error
	}

	done := make(chan result, 1)
	go func() {
		pushed, transfers, err := trustflow.ComputeFlow(source, sink, edges, requested)
		done <- result{pushed, transfers, err}
	}()

	select {
	case <-ctx.Done():
		return domain.Zero, nil, apperror.Wrap(ctx.Err(), apperror.CodeUnavailable, "computeFlow: canceled before completion")
	case r := <-done:
		return r.pushed, r.transfers, r.err
	}
}
