package assets

import (
	"sync"
)

// LazyRequest describes a load computation that can be memoized. Two
// requests with the same cache key share a single evaluation and its
// result, no matter how many handles were issued for them.
type LazyRequest interface {
	// CacheKey uniquely identifies the request. Exact match only.
	CacheKey() string
	// Run performs the load. Executed at most once per key unless it fails.
	Run() (interface{}, error)
}

// Executor runs submitted functions, typically the engine job system.
type Executor interface {
	Go(task func())
}

type lazyEntry struct {
	done  chan struct{}
	value interface{}
	err   error
}

// LazyHandle is the caller's reference to a possibly in-flight
// computation. Holding the handle keeps the memoized result alive.
type LazyHandle struct {
	key   string
	entry *lazyEntry
	cache *LazyCache
}

// LazyCache memoizes LazyRequest evaluations by cache key. Failed
// evaluations are discarded so an identical later request retries the load.
type LazyCache struct {
	mu      sync.Mutex
	entries map[string]*lazyEntry
	exec    Executor
}

func NewLazyCache(exec Executor) *LazyCache {
	return &LazyCache{
		entries: make(map[string]*lazyEntry),
		exec:    exec,
	}
}

// Submit registers the request and starts its evaluation unless an
// identical request is already cached or in flight.
func (lc *LazyCache) Submit(req LazyRequest) *LazyHandle {
	key := req.CacheKey()

	lc.mu.Lock()
	defer lc.mu.Unlock()

	if entry, ok := lc.entries[key]; ok {
		return &LazyHandle{key: key, entry: entry, cache: lc}
	}

	entry := &lazyEntry{done: make(chan struct{})}
	lc.entries[key] = entry

	lc.exec.Go(func() {
		entry.value, entry.err = req.Run()
		close(entry.done)
	})

	return &LazyHandle{key: key, entry: entry, cache: lc}
}

// Eval blocks until the computation completes and returns its result.
// On failure the entry is evicted so the next identical Submit retries;
// existing handles to the failed entry keep returning the same error.
func (h *LazyHandle) Eval() (interface{}, error) {
	<-h.entry.done

	if h.entry.err != nil {
		h.cache.mu.Lock()
		if h.cache.entries[h.key] == h.entry {
			delete(h.cache.entries, h.key)
		}
		h.cache.mu.Unlock()
		return nil, h.entry.err
	}
	return h.entry.value, nil
}
