// Package cache provides the bounded LRU cache used by the renderer for
// values that are costly to rebuild per frame, such as magnified glyph
// masks.
//
//	c := cache.New[key, *image.Alpha](256)
//	mask := c.GetOrCreate(k, func() *image.Alpha { return build(k) })
//
// A Cache is safe for concurrent use and must not be copied.
package cache
