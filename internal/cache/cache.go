// Package cache provides the bounded LRU used to cap live design
// renderings. Evictions fire a hook so the owner can unmount whatever
// the evicted entry was backing.
package cache

import (
	"container/list"
)

type LRUCache struct {
	size      int
	evictList *list.List
	items     map[string]*list.Element
	onEvict   func(key string, value any)
}

type entry struct {
	key   string
	value any
}

// NewLRUCache creates a cache holding at most size entries. onEvict may
// be nil.
func NewLRUCache(size int, onEvict func(key string, value any)) *LRUCache {
	if size < 1 {
		size = 1
	}
	return &LRUCache{
		size:      size,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
		onEvict:   onEvict,
	}
}

func (c *LRUCache) Get(key string) (value any, ok bool) {
	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		return ele.Value.(*entry).value, true
	}
	return
}

// Put inserts or refreshes an entry, evicting the least recently used
// one when the cache is over capacity.
func (c *LRUCache) Put(key string, value any) {
	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		ele.Value.(*entry).value = value
		return
	}

	ele := c.evictList.PushFront(&entry{key, value})
	c.items[key] = ele

	if c.evictList.Len() > c.size {
		c.removeOldest()
	}
}

// Remove evicts a single entry if present, firing the eviction hook.
func (c *LRUCache) Remove(key string) bool {
	if ele, hit := c.items[key]; hit {
		c.removeElement(ele)
		return true
	}
	return false
}

// Contains reports presence without refreshing recency.
func (c *LRUCache) Contains(key string) bool {
	_, hit := c.items[key]
	return hit
}

func (c *LRUCache) Len() int {
	return c.evictList.Len()
}

// Keys returns keys from most to least recently used.
func (c *LRUCache) Keys() []string {
	keys := make([]string, 0, c.evictList.Len())
	for ele := c.evictList.Front(); ele != nil; ele = ele.Next() {
		keys = append(keys, ele.Value.(*entry).key)
	}
	return keys
}

// Purge evicts every entry, firing the eviction hook for each.
func (c *LRUCache) Purge() {
	for c.evictList.Len() > 0 {
		c.removeOldest()
	}
}

func (c *LRUCache) removeOldest() {
	ele := c.evictList.Back()
	if ele != nil {
		c.removeElement(ele)
	}
}

func (c *LRUCache) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	kv := e.Value.(*entry)
	delete(c.items, kv.key)
	if c.onEvict != nil {
		c.onEvict(kv.key, kv.value)
	}
}
