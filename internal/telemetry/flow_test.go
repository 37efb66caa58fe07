package telemetry

import (
	"context"
	"errors"
	"testing"

	"trustflow/pkg/domain"
)

func addr(b byte) domain.Address {
	var a domain.Address
	a[19] = b
	return a
}

func TestRecordFlow_Success(t *testing.T) {
	source, sink := addr(1), addr(2)
	transfers := []domain.Edge{{From: source, To: sink, Token: addr(9), Capacity: domain.NewAmount(5)}}

	pushed, got, err := RecordFlow(context.Background(), source, sink, domain.NewAmount(10), 3,
		func(ctx context.Context) (domain.Amount, []domain.Edge, error) {
			return domain.NewAmount(5), transfers, nil
		})
	if err != nil {
		t.Fatalf("RecordFlow() error = %v", err)
	}
	if pushed.Cmp(domain.NewAmount(5)) != 0 {
		t.Errorf("pushed = %v, want 5", pushed)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 transfer, got %d", len(got))
	}
}

func TestRecordFlow_PropagatesError(t *testing.T) {
	source, sink := addr(1), addr(2)
	wantErr := errors.New("no path")

	_, _, err := RecordFlow(context.Background(), source, sink, domain.NewAmount(10), 0,
		func(ctx context.Context) (domain.Amount, []domain.Edge, error) {
			return domain.Zero, nil, wantErr
		})
	if err != wantErr {
		t.Errorf("RecordFlow() error = %v, want %v", err, wantErr)
	}
}

func TestToFloat(t *testing.T) {
	if toFloat(domain.NewAmount(100)) != 100 {
		t.Errorf("toFloat(100) = %v, want 100", toFloat(domain.NewAmount(100)))
	}
	if toFloat(domain.Zero) != 0 {
		t.Errorf("toFloat(0) = %v, want 0", toFloat(domain.Zero))
	}
}
