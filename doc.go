// Package tilelabel turns map features carrying text and icon labels into
// packed GPU vertex and index buffers for a tiled vector map renderer.
//
// # Overview
//
// tilelabel is the label-layout stage that runs between vector-tile decoding
// and GPU draw submission. A worker goroutine collects label candidates from
// decoded tile features, an external shaper turns them into textured quads,
// and the bucket subpackage packs those quads into fixed-stride vertex arrays
// under the 16-bit index budget. The finished bucket is serialized into a
// transfer-safe binary form, handed to the render side, uploaded, and later
// repositioned by an external placement pass without re-deriving geometry.
//
// # Pipeline
//
//	// Worker side: collect label candidates and their glyph/icon needs.
//	glyphs := tilelabel.GlyphDependencies{}
//	icons := tilelabel.IconDependencies{}
//	c := tilelabel.Collector{Layer: layer, Zoom: zoom}
//	features := c.Collect(rawFeatures, glyphs, icons)
//
//	// ... external shaping produces quads per feature ...
//
//	// Pack quads into the bucket and move it to the render side.
//	b := bucket.New(layerIDs, fontStackID, zoom, textSize, iconSize)
//	start, length := b.LineVertices.AddLine(anchor, line)
//	b.AddSymbols(b.Text, quads, sizeVertex, lineOffset, feat, mode, anchor, start, length)
//	transfer, _ := b.Serialize()
//
// # Architecture
//
// The library is organized into:
//   - tilelabel: domain model, feature collection, size interpolation,
//     the shared append-only arrays referenced by index ranges
//   - bucket: vertex/index packing, segmentation, serialization, GPU upload
//   - gpucore: the GPU resource abstraction buckets upload through
//   - backend/wgpu: a gpucore adapter backed by gogpu/wgpu
//
// Collision resolution, text shaping, glyph rasterization and style
// expression evaluation are external collaborators reached through narrow
// interfaces; tilelabel never decides label visibility itself.
package tilelabel
