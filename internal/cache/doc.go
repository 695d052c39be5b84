// Package cache provides a small generic LRU cache.
//
// The text package keeps shaped runs in it so that strings drawn every
// frame are shaped once.
//
//	c := cache.New[string, int](64)
//	c.Set("key", 42)
//	v, ok := c.Get("key")
//
// Cache is safe for concurrent use and must not be copied.
package cache
