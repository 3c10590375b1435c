// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

// Cache holds the target of one panel across frames. The target is
// rebuilt when the panel size changes or after Invalidate.
//
// A Cache is not safe for concurrent use.
type Cache struct {
	target *Target
	stale  bool
}

// Target returns a width x height target. fresh is true when the target
// was just (re)built and holds no pixels from an earlier frame.
func (c *Cache) Target(width, height int) (t *Target, fresh bool) {
	width, height = max(width, 1), max(height, 1)
	if c.target == nil || c.stale || c.target.Width() != width || c.target.Height() != height {
		c.target = NewTarget(width, height)
		c.stale = false
		return c.target, true
	}
	return c.target, false
}

// Invalidate forces the next Target call to rebuild.
func (c *Cache) Invalidate() {
	c.stale = true
}
