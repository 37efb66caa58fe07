package telemetry

import (
	"context"
	"math/big"
	"time"

	"trustflow/pkg/domain"
	"trustflow/pkg/metrics"
	"trustflow/pkg/telemetry"
)

// RecordFlow wraps a computeFlow call with a trace span and Prometheus
// metrics: graph size, duration, success/error, and the fraction of the
// requested amount actually pushed.
func RecordFlow(ctx context.Context, source, sink domain.Address, requested domain.Amount, edgesIn int, fn func(context.Context) (domain.Amount, []domain.Edge, error)) (domain.Amount, []domain.Edge, error) {
	m := metrics.Get()
	start := time.Now()

	tracker := m.InFlightTracker()
	tracker.Start("compute_flow")
	defer tracker.End("compute_flow")

	var pushed domain.Amount
	var transfers []domain.Edge

	err := telemetry.Wrap(ctx, "trustflow.compute_flow", func(ctx context.Context) error {
		telemetry.SetAttributes(ctx, telemetry.RequestAttributes(source.String(), sink.String(), requested.String(), edgesIn)...)

		var err error
		pushed, transfers, err = fn(ctx)
		if err != nil {
			return err
		}

		telemetry.SetAttributes(ctx, telemetry.ResultAttributes(edgesIn, pushed.String(), len(transfers))...)
		return nil
	})

	m.RecordGraphSize("compute_flow", 0, edgesIn)
	m.RecordFlowOperation(err == nil, time.Since(start), toFloat(requested), toFloat(pushed))
	if err == nil {
		m.RecordTransfers("success", len(transfers))
	}

	return pushed, transfers, err
}

// toFloat approximates an Amount as a float64 for histogram buckets and
// ratio metrics; it is never used for anything that must stay exact.
func toFloat(a domain.Amount) float64 {
	f := new(big.Float).SetInt(a.BigInt())
	v, _ := f.Float64()
	return v
}
