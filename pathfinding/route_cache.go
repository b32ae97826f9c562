package pathfinding

import (
	"fmt"
	"sync"
	"sync/atomic"

	"textmapper/core"
	"textmapper/geometry"
)

// RouteKey identifies one routed segment. Routers with different step
// limits may disagree on whether a segment converges, so the limit is part
// of the key; zero stands for the default limit.
type RouteKey struct {
	From, To  core.Point
	Tiling    geometry.Tiling
	Parity    geometry.Parity
	Metric    Metric
	StepLimit int
}

// RouteCache stores previously routed segments for reuse. It is safe for
// concurrent use, so several sessions may share one.
type RouteCache struct {
	mu        sync.RWMutex
	cache     map[RouteKey][]core.Point
	maxSize   int
	hits      int64
	misses    int64
	evictions int64
}

// NewRouteCache creates a cache holding at most maxSize segments. Zero or
// less means unbounded.
func NewRouteCache(maxSize int) *RouteCache {
	return &RouteCache{
		cache:   make(map[RouteKey][]core.Point),
		maxSize: maxSize,
	}
}

// Get retrieves a copy of a segment if it exists.
func (rc *RouteCache) Get(key RouteKey) ([]core.Point, bool) {
	rc.mu.RLock()
	segment, found := rc.cache[key]
	rc.mu.RUnlock()

	if !found {
		atomic.AddInt64(&rc.misses, 1)
		return nil, false
	}
	atomic.AddInt64(&rc.hits, 1)
	return append([]core.Point(nil), segment...), true
}

// Put stores a segment.
func (rc *RouteCache) Put(key RouteKey, segment []core.Point) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if _, exists := rc.cache[key]; !exists && rc.maxSize > 0 && len(rc.cache) >= rc.maxSize {
		// Evict an arbitrary entry.
		for k := range rc.cache {
			delete(rc.cache, k)
			atomic.AddInt64(&rc.evictions, 1)
			break
		}
	}
	rc.cache[key] = append([]core.Point(nil), segment...)
}

// Clear removes all entries and resets the statistics.
func (rc *RouteCache) Clear() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.cache = make(map[RouteKey][]core.Point)
	atomic.StoreInt64(&rc.hits, 0)
	atomic.StoreInt64(&rc.misses, 0)
	atomic.StoreInt64(&rc.evictions, 0)
}

// Stats returns cache statistics.
func (rc *RouteCache) Stats() (hits, misses, evictions, size int) {
	rc.mu.RLock()
	size = len(rc.cache)
	rc.mu.RUnlock()

	hits = int(atomic.LoadInt64(&rc.hits))
	misses = int(atomic.LoadInt64(&rc.misses))
	evictions = int(atomic.LoadInt64(&rc.evictions))
	return hits, misses, evictions, size
}

// String returns a summary of the cache statistics.
func (rc *RouteCache) String() string {
	hits, misses, evictions, size := rc.Stats()
	hitRate := 0.0
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return fmt.Sprintf("RouteCache[size=%d/%d, hits=%d, misses=%d, hitRate=%.1f%%, evictions=%d]",
		size, rc.maxSize, hits, misses, hitRate, evictions)
}
