// Package cache keeps rendered dashboard payloads per user so repeated reads
// skip the database. Mutating operations invalidate the affected users.
package cache

import (
	"sync"
)

type key struct {
	view   string
	userID uint
}

type ViewCache struct {
	mu      sync.RWMutex
	entries map[key]interface{}
}

func NewViewCache() *ViewCache {
	return &ViewCache{entries: make(map[key]interface{})}
}

func (c *ViewCache) Get(view string, userID uint) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key{view: view, userID: userID}]
	return v, ok
}

func (c *ViewCache) Set(view string, userID uint, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key{view: view, userID: userID}] = value
}

// Invalidate drops every cached view of the given users.
func (c *ViewCache) Invalidate(userIDs ...uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		for _, id := range userIDs {
			if k.userID == id {
				delete(c.entries, k)
				break
			}
		}
	}
}
