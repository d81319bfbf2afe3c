// internal/registry/registry.go
//
// Lazily-built requirement caches, one per schema version.
//
// Context
// -------
// Building a requirement cache costs one catalog query, so the registry
// keeps recently used versions in a bounded LRU and collapses concurrent
// misses for the same version into a single fetch.
//
// Workflow
// --------
//  1. Get probes the LRU.
//  2. On a miss, singleflight runs fetch → Build once per version; every
//     waiting caller receives the same *requirement.Cache.
//  3. Failures are returned to all waiters and never stored, so the next
//     Get retries the fetch.
//  4. The build runs detached from the caller's cancellation.  A caller
//     whose ctx ends stops waiting alone; the build continues for the
//     others and still lands in the LRU.
//
// Notes
// -----
//   - A returned Cache stays valid after eviction; eviction only drops the
//     registry's reference.
//   - Each build is logged with its row count and fingerprint.
package registry

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/yanizio/reqvalidator/internal/cache"
	"github.com/yanizio/reqvalidator/internal/metrics"
	"github.com/yanizio/reqvalidator/internal/requirement"
)

// DefaultMaxVersions bounds the number of versions held in memory.
const DefaultMaxVersions = 8

// Registry hands out requirement caches by schema version.
type Registry struct {
	src requirement.Source
	sfg singleflight.Group
	lru *cache.LRU[int, *requirement.Cache]
	log *zap.SugaredLogger
}

// New constructs a Registry over src.  maxVersions < 1 uses
// DefaultMaxVersions; a nil log discards output.
func New(src requirement.Source, maxVersions int, log *zap.SugaredLogger) *Registry {
	if maxVersions < 1 {
		maxVersions = DefaultMaxVersions
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	r := &Registry{src: src, log: log}
	r.lru = cache.New(maxVersions, func(version int, _ *requirement.Cache) {
		metrics.CacheEvictTotal.Inc()
		metrics.ActiveVersions.Dec()
		r.log.Infow("requirement cache evicted", "version", version)
	})
	return r
}

// Get returns the cache for version, building it on first use.
func (r *Registry) Get(ctx context.Context, version int) (*requirement.Cache, error) {
	if c, ok := r.lru.Get(version); ok {
		return c, nil
	}

	// The shared build must outlive any single waiter; the source's own
	// timeout still bounds it.
	buildCtx := context.WithoutCancel(ctx)
	ch := r.sfg.DoChan(strconv.Itoa(version), func() (any, error) {
		// Double-check after singleflight barrier.
		if c, ok := r.lru.Get(version); ok {
			return c, nil
		}
		return r.build(buildCtx, version)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*requirement.Cache), nil
	}
}

// build fetches and indexes version, then stores it.
func (r *Registry) build(ctx context.Context, version int) (*requirement.Cache, error) {
	rows, err := r.src.Fetch(ctx, version)
	if err != nil {
		r.buildFailed(version, err)
		return nil, err
	}
	c, err := requirement.Build(version, rows)
	if err != nil {
		r.buildFailed(version, err)
		return nil, err
	}

	r.lru.Add(version, c)
	metrics.CacheBuildTotal.Inc()
	metrics.ActiveVersions.Inc()
	r.log.Infow("requirement cache built",
		"version", version,
		"rows", c.Len(),
		"features", len(c.Features()),
		"fingerprint", strconv.FormatUint(c.Fingerprint(), 16),
	)
	return c, nil
}

// Invalidate drops version so the next Get refetches it.
func (r *Registry) Invalidate(version int) {
	r.lru.Remove(version)
}

// Len reports how many versions are currently held.
func (r *Registry) Len() int { return r.lru.Len() }

func (r *Registry) buildFailed(version int, err error) {
	kind := "other"
	switch {
	case errors.Is(err, requirement.ErrNoData):
		kind = "no_data"
	case errors.Is(err, requirement.ErrConnection):
		kind = "connection"
	case errors.Is(err, requirement.ErrMalformedRow):
		kind = "malformed"
	}
	metrics.CacheBuildErrorsTotal.WithLabelValues(kind).Inc()
	r.log.Errorw("requirement cache build failed", "version", version, "kind", kind, "err", err)
}
