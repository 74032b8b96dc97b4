package usecase

import (
	"sync"

	"github.com/3-lines-studio/viewpack/internal/core"
)

type cacheEntry struct {
	hash  string
	entry core.CompiledEntry
}

// CompileCache remembers compiled entries by absolute path and content hash
// so rebuilds only run engines for files that changed.
type CompileCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func NewCompileCache() *CompileCache {
	return &CompileCache{
		entries: make(map[string]cacheEntry),
	}
}

func (c *CompileCache) Get(path, hash string) (core.CompiledEntry, bool) {
	if c == nil {
		return core.CompiledEntry{}, false
	}

	c.mu.RLock()
	cached, ok := c.entries[path]
	c.mu.RUnlock()

	if !ok || cached.hash != hash {
		return core.CompiledEntry{}, false
	}
	return cached.entry, true
}

func (c *CompileCache) Put(path, hash string, entry core.CompiledEntry) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries[path] = cacheEntry{hash: hash, entry: entry}
	c.mu.Unlock()
}

// Invalidate drops the given paths. A path the cache does not know may be a
// partial some view includes, so it clears everything instead.
func (c *CompileCache) Invalidate(paths []string) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, path := range paths {
		if _, ok := c.entries[path]; !ok {
			c.entries = make(map[string]cacheEntry)
			return
		}
		delete(c.entries, path)
	}
}

// Retain drops entries whose path is not in keep.
func (c *CompileCache) Retain(keep map[string]struct{}) {
	if c == nil {
		return
	}
	c.mu.Lock()
	for path := range c.entries {
		if _, ok := keep[path]; !ok {
			delete(c.entries, path)
		}
	}
	c.mu.Unlock()
}

func (c *CompileCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
