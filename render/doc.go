// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render rasterizes command streams.
//
// # Overview
//
// A Renderer interprets a recording.Stream against a Target: an
// *image.RGBA plus a small style register (stroke and fill color, line
// width and dash, glyph font) and a polyline buffer. MoveTo resets the
// buffer, PathTo extends it, and Stroke or Fill flush it as an open
// polyline or a closed polygon. PlaceGlyph draws one fixed-pitch
// character centered on its vertex.
//
// Coverage is computed with golang.org/x/image/vector; glyphs come from
// the fixed-pitch faces in golang.org/x/image/font.
//
// # Clipping
//
// Rasterizers work in float32 and scan every row a segment spans. A
// stream holding any coordinate beyond BigRadius is therefore rewritten
// first: each polyline is split into independent segments clipped to the
// target, fills are clipped as polygons, and everything wholly outside
// is dropped.
//
// # Stereo
//
// RenderStereo draws a red/cyan anaglyph by rendering twice into scratch
// targets with each vertex shifted by parallax times its depth, then
// merging the two eyes with complementary channel masks.
//
// # Caching
//
// Cache keeps one Target per panel and rebuilds it on resize or after
// Invalidate.
package render
