package cache

import (
	"sync"

	"locparse/internal/locfile"
)

// Entry is a parse result together with the inputs it was produced from.
type Entry struct {
	// Content is the exact text that was parsed.
	Content string
	// File is the shared parse result.
	File *locfile.File
	// IgnoreString is the filter used for the parse, compared by reference.
	IgnoreString *locfile.StringFilter
}

// Matches reports whether the entry was produced from content with filter.
// Filters are compared by pointer, not by behavior.
func (e Entry) Matches(content string, filter *locfile.StringFilter) bool {
	return e.Content == content && e.IgnoreString == filter
}

// Cache stores one parse result per key.
type Cache interface {
	Get(key string) (Entry, bool)
	Set(key string, entry Entry)
}

// Memory is an unbounded in-memory Cache. Entries are never evicted.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]Entry),
	}
}

// Get returns the entry stored under key.
func (c *Memory) Get(key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

// Set stores entry under key, replacing any previous entry.
func (c *Memory) Set(key string, entry Entry) {
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
}

// Len returns the number of stored entries.
func (c *Memory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
