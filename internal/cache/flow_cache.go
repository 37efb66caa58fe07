package cache

import (
	"context"

	pkgcache "trustflow/pkg/cache"
	"trustflow/pkg/config"
	"trustflow/pkg/domain"
)

// FlowResultCache caches computeFlow results. A nil *FlowResultCache is a
// valid no-op cache: every lookup misses and every store is dropped,
// letting the engine run uncached when caching is disabled.
type FlowResultCache struct {
	delegate *pkgcache.FlowCache
	backend  pkgcache.Cache
}

// New builds a FlowResultCache from the application configuration. It
// returns (nil, nil) when caching is disabled, and the caller should wire
// that nil straight into the engine.
func New(cfg config.CacheConfig) (*FlowResultCache, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	backend, err := pkgcache.New(pkgcache.FromConfig(&cfg))
	if err != nil {
		return nil, err
	}

	return &FlowResultCache{
		delegate: pkgcache.NewFlowCache(backend, cfg.DefaultTTL),
		backend:  backend,
	}, nil
}

// Lookup returns a previously cached result, if any. A nil receiver always
// misses.
func (c *FlowResultCache) Lookup(ctx context.Context, source, sink domain.Address, requested domain.Amount, edges []domain.Edge) (domain.Amount, []domain.Edge, bool) {
	if c == nil {
		return domain.Zero, nil, false
	}

	cached, found, err := c.delegate.Get(ctx, source, sink, requested, edges)
	if err != nil || !found {
		return domain.Zero, nil, false
	}

	transfers, err := cached.Edges()
	if err != nil {
		return domain.Zero, nil, false
	}

	pushed, ok := domain.ParseAmount(cached.Pushed)
	if !ok {
		return domain.Zero, nil, false
	}

	return pushed, transfers, true
}

// Store saves a computeFlow result for later lookups. A nil receiver is a
// no-op.
func (c *FlowResultCache) Store(ctx context.Context, source, sink domain.Address, requested domain.Amount, edges []domain.Edge, pushed domain.Amount, transfers []domain.Edge) error {
	if c == nil {
		return nil
	}
	return c.delegate.Set(ctx, source, sink, requested, edges, pushed, transfers, 0)
}

// Close releases the underlying cache backend's resources.
func (c *FlowResultCache) Close() error {
	if c == nil {
		return nil
	}
	return c.backend.Close()
}
