// Package cache provides a sharded LRU cache for render-side tile state.
//
// The render thread keeps recently used buckets resident while tiles scroll
// in and out of view; eviction hands the displaced value to an OnEvict
// callback so GPU resources can be released. The cache is generic and
// carries no GPU knowledge itself.
package cache
