// Package cache provides a small generic, thread-safe LRU cache used to memoise
// compiled lookups such as CSS selectors and input patterns.
//
// When the cache reaches its capacity the least recently used entry is
// dropped. All operations are O(1) and safe for concurrent use.
//
//	selectors := cache.NewLRUCache[string, cascadia.Sel](128)
//	sel := selectors.GetOrCompute(".popup__form", func() cascadia.Sel {
//		return compile(".popup__form")
//	})
package cache
