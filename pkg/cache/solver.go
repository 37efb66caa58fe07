package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"trustflow/pkg/domain"
)

// FlowCache caches the result of a computeFlow call, keyed by the hash of
// its (source, sink, requested, edges) inputs.
type FlowCache struct {
	cache      Cache
	defaultTTL time.Duration
}

// CachedFlowResult is the cached shape of a computeFlow result: the pushed
// amount and the concrete transfers that realize it.
type CachedFlowResult struct {
	Pushed     string       `json:"pushed"`
	Transfers  []CachedEdge `json:"transfers,omitempty"`
	ComputedAt time.Time    `json:"computed_at"`
}

// CachedEdge is the JSON-marshalable form of a domain.Edge.
type CachedEdge struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Token    string `json:"token"`
	Capacity string `json:"capacity"`
}

// NewFlowCache creates a cache for computeFlow results.
func NewFlowCache(cache Cache, defaultTTL time.Duration) *FlowCache {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &FlowCache{cache: cache, defaultTTL: defaultTTL}
}

// Get looks up a previously cached result for the given request.
func (fc *FlowCache) Get(ctx context.Context, source, sink domain.Address, requested domain.Amount, edges []domain.Edge) (*CachedFlowResult, bool, error) {
	key := BuildSolveKey(ComputeFlowHash(source, sink, requested, edges))

	data, err := fc.cache.Get(ctx, key)
	if err != nil {
		if err == ErrKeyNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}

	var result CachedFlowResult
	if err := json.Unmarshal(data, &result); err != nil {
		_ = fc.cache.Delete(ctx, key) //nolint:errcheck // best effort cleanup of a corrupted entry
		return nil, false, nil
	}

	return &result, true, nil
}

// Set stores a computeFlow result for the given request.
func (fc *FlowCache) Set(ctx context.Context, source, sink domain.Address, requested domain.Amount, edges []domain.Edge, pushed domain.Amount, transfers []domain.Edge, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = fc.defaultTTL
	}

	key := BuildSolveKey(ComputeFlowHash(source, sink, requested, edges))

	result := &CachedFlowResult{
		Pushed:     pushed.String(),
		ComputedAt: time.Now(),
	}
	for _, t := range transfers {
		result.Transfers = append(result.Transfers, CachedEdge{
			From:     t.From.String(),
			To:       t.To.String(),
			Token:    t.Token.String(),
			Capacity: t.Capacity.String(),
		})
	}

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return fc.cache.Set(ctx, key, data, ttl)
}

// InvalidateAll removes every cached computeFlow result.
func (fc *FlowCache) InvalidateAll(ctx context.Context) (int64, error) {
	return fc.cache.DeleteByPattern(ctx, "flow:*")
}

// Edges decodes the cached transfers back into domain.Edge values.
func (r *CachedFlowResult) Edges() ([]domain.Edge, error) {
	edges := make([]domain.Edge, 0, len(r.Transfers))
	for _, t := range r.Transfers {
		from, err := domain.ParseAddress(t.From)
		if err != nil {
			return nil, fmt.Errorf("cache: decoding cached transfer: %w", err)
		}
		to, err := domain.ParseAddress(t.To)
		if err != nil {
			return nil, fmt.Errorf("cache: decoding cached transfer: %w", err)
		}
		token, err := domain.ParseAddress(t.Token)
		if err != nil {
			return nil, fmt.Errorf("cache: decoding cached transfer: %w", err)
		}
		capacity, ok := new(big.Int).SetString(t.Capacity, 10)
		if !ok {
			return nil, fmt.Errorf("cache: decoding cached transfer: invalid amount %q", t.Capacity)
		}
		edges = append(edges, domain.Edge{From: from, To: to, Token: token, Capacity: domain.NewAmountFromBigInt(capacity)})
	}
	return edges, nil
}
