package tilelabel

// The shared arrays in this file are growable contiguous buffers referenced
// by (start, length) index ranges. Referencing by index rather than by
// sub-slice keeps ranges valid across appends: callers re-resolve through
// the array at access time.

// GlyphOffsetArray holds one horizontal offset per emitted glyph,
// contiguous ranges of which are referenced by placed symbol entries.
// Append-only across all labels of a bucket.
type GlyphOffsetArray struct {
	offsets []float32
}

// Len returns the number of recorded glyph offsets.
func (a *GlyphOffsetArray) Len() int { return len(a.offsets) }

// Append records one glyph's horizontal offset and returns its index.
func (a *GlyphOffsetArray) Append(offset float32) int {
	a.offsets = append(a.offsets, offset)
	return len(a.offsets) - 1
}

// Offset returns the offset at index i.
func (a *GlyphOffsetArray) Offset(i int) float32 { return a.offsets[i] }

// Slice returns the offsets in [start, start+length). The returned slice
// aliases the array and is only valid until the next Append.
func (a *GlyphOffsetArray) Slice(start, length int) []float32 {
	return a.offsets[start : start+length]
}

// LineVertex is one line vertex touched by a line-anchored label: its
// tile-local coordinates and its arc-length distance from the label anchor.
type LineVertex struct {
	X, Y int16

	// Distance is the cumulative distance from the anchor measured along
	// the line in the direction away from the anchor, in tile units.
	Distance float32
}

// LineVertexArray holds one entry per line vertex touched by any
// line-anchored label of a bucket; ranges are referenced by placed symbol
// entries. Shared and append-only.
type LineVertexArray struct {
	verts []LineVertex
}

// Len returns the number of recorded line vertices.
func (a *LineVertexArray) Len() int { return len(a.verts) }

// Vertex returns the vertex at index i.
func (a *LineVertexArray) Vertex(i int) LineVertex { return a.verts[i] }

// AppendVertex adds one precomputed entry. Decoders rebuilding an array
// from a transfer use this; layout code goes through AddLine.
func (a *LineVertexArray) AppendVertex(v LineVertex) {
	a.verts = append(a.verts, v)
}

// AddLine appends one entry per vertex of line, each carrying the vertex's
// coordinates and its cumulative distance from anchor measured along the
// line away from the anchor: forward accumulation for vertices after the
// anchor segment, backward accumulation for vertices at or before it.
//
// The returned range lets a later placement pass reproject the label's
// glyphs along the line at arbitrary viewing angle without recomputing
// geometry from the feature's raw line. If the anchor carries no segment
// index the line is not recorded and length is zero.
func (a *LineVertexArray) AddLine(anchor Anchor, line []Point) (start, length int) {
	start = len(a.verts)
	// A valid segment index names the vertex pair [Segment, Segment+1].
	if anchor.Segment < 0 || anchor.Segment >= len(line)-1 {
		return start, 0
	}

	distances := make([]float32, len(line))

	sumForward := anchor.Distance(line[anchor.Segment+1])
	for i := anchor.Segment + 1; i < len(line); i++ {
		distances[i] = float32(sumForward)
		if i < len(line)-1 {
			sumForward += line[i].Distance(line[i+1])
		}
	}

	sumBackward := anchor.Distance(line[anchor.Segment])
	for i := anchor.Segment; i >= 0; i-- {
		distances[i] = float32(sumBackward)
		if i > 0 {
			sumBackward += line[i].Distance(line[i-1])
		}
	}

	for i, p := range line {
		a.verts = append(a.verts, LineVertex{
			X:        int16(p.X),
			Y:        int16(p.Y),
			Distance: distances[i],
		})
	}
	return start, len(line)
}

// PlacedSymbol is the GPU-adjacent summary of one emitted quad group. The
// packer appends entries; the external placement pass may later toggle
// Hidden and rewrite the dynamic vertex records the entry describes.
type PlacedSymbol struct {
	// AnchorX, AnchorY are the label anchor in tile units.
	AnchorX, AnchorY float32

	// GlyphStart and NumGlyphs reference the glyph offset array.
	GlyphStart, NumGlyphs int32

	// LineStart and LineLength reference the line vertex array.
	LineStart, LineLength int32

	// SegmentID is the vertex offset of the buffer segment the quads were
	// packed into.
	SegmentID int32

	// SizeX, SizeY are the two size-vertex components.
	SizeX, SizeY float32

	// LineOffsetX, LineOffsetY shift the label along and across its line.
	LineOffsetX, LineOffsetY float32

	// Zoom is the zoom level the geometry was built for.
	Zoom float32

	// WritingMode records the orientation this entry was shaped for.
	WritingMode WritingMode

	// Hidden is written by the placement pass; geometry stays resident.
	Hidden bool
}

// PlacedSymbolArray is the append-only list of placed symbol entries for
// one render target (text or icon).
type PlacedSymbolArray struct {
	entries []PlacedSymbol
}

// Len returns the number of placed entries.
func (a *PlacedSymbolArray) Len() int { return len(a.entries) }

// Append adds an entry and returns its index.
func (a *PlacedSymbolArray) Append(p PlacedSymbol) int {
	a.entries = append(a.entries, p)
	return len(a.entries) - 1
}

// At returns a pointer to entry i for in-place placement updates. The
// pointer is only valid until the next Append; callers must re-resolve
// rather than hold it across appends.
func (a *PlacedSymbolArray) At(i int) *PlacedSymbol { return &a.entries[i] }

// CollisionBox is one record of the shared collision store: an axis-aligned
// box or, when Radius is positive, a circular region centered on the
// anchor. Records are globally indexed; symbol instances reference them by
// range.
type CollisionBox struct {
	// X1, Y1, X2, Y2 are the box extent relative to the anchor, in pixels.
	X1, Y1, X2, Y2 float32

	// Anchor is the tile-local point the box is attached to.
	Anchor Point

	// Radius is positive for circular regions and zero for boxes.
	Radius float32

	// Distance is the region's arc-length distance from the label anchor
	// for line-placed circles.
	Distance float32

	// FeatureIndex back-references the originating feature.
	FeatureIndex int32
}

// IsCircle reports whether the record describes a circular region.
func (b CollisionBox) IsCircle() bool { return b.Radius > 0 }

// CollisionBoxArray is the shared append-only collision store. This package
// appends during layout and reads ranges by index; the placement pass is
// the only other reader.
type CollisionBoxArray struct {
	boxes []CollisionBox
}

// Len returns the number of records.
func (a *CollisionBoxArray) Len() int { return len(a.boxes) }

// Append adds a record and returns its index.
func (a *CollisionBoxArray) Append(b CollisionBox) int {
	a.boxes = append(a.boxes, b)
	return len(a.boxes) - 1
}

// At returns the record at index i.
func (a *CollisionBoxArray) At(i int) CollisionBox { return a.boxes[i] }
