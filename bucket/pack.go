package bucket

import (
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/tilelabel"
)

// Rect is an axis-aligned rectangle on the glyph/icon atlas, in pixels.
type Rect struct {
	X, Y, W, H uint16
}

// Quad is one shaped glyph or icon image for a label: corner offsets from
// the label anchor in pixels, the atlas rectangle it samples, and the
// glyph's horizontal offset along the label used for line following.
type Quad struct {
	TL, TR, BL, BR tilelabel.Point
	Tex            Rect
	GlyphOffsetX   float64
}

// quantizeOffset rounds a corner offset to the wire format's 1/64 pixel
// grid. The fixed-point value is what lands in the layout vertex, so the
// quantization here and the shader's descale must agree.
func quantizeOffset(p tilelabel.Point) (x, y fixed.Int26_6) {
	return fixed.Int26_6(math.Round(p.X * 64)), fixed.Int26_6(math.Round(p.Y * 64))
}

// PackUint8Pair packs two 8-bit values into a single float32 as a*256+b.
// Every pair maps to a distinct integer below 2^16, which float32
// represents exactly, so the pack/unpack round trip is lossless. This lets
// one vertex attribute carry two independent scalars.
func PackUint8Pair(a, b uint8) float32 {
	return float32(uint32(a)<<8 | uint32(b))
}

// UnpackUint8Pair recovers the two 8-bit values packed by PackUint8Pair.
// A paired renderer must decode with these exact scale factors to stay
// pixel-compatible.
func UnpackUint8Pair(v float32) (a, b uint8) {
	u := uint32(v)
	return uint8(u >> 8), uint8(u)
}

// PackAngleZoom packs a placement angle and a zoom level into one float:
// the angle is mapped from [0, 2π) to [0, 255], the zoom scaled by 10, and
// both bytes combined with PackUint8Pair.
func PackAngleZoom(angle, zoom float64) float32 {
	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	angleByte := uint8(math.Round(a / (2 * math.Pi) * 255))
	zoomByte := uint8(math.Max(0, math.Min(255, math.Round(zoom*10))))
	return PackUint8Pair(angleByte, zoomByte)
}

// UnpackAngleZoom recovers the angle (radians) and zoom packed by
// PackAngleZoom.
func UnpackAngleZoom(v float32) (angle, zoom float64) {
	a, z := UnpackUint8Pair(v)
	return float64(a) / 255 * 2 * math.Pi, float64(z) / 10
}

// AddSymbols packs one label's shaped quads into set and records its
// placement summary.
//
// For each quad it emits four layout vertices (anchor plus quantized corner
// offset, texture corner, size vertex), four identical dynamic records
// (anchor render position plus packed angle/zoom, angle starting at 0),
// four hidden opacity records, and two triangles. Each quad's horizontal
// glyph offset goes into the bucket's shared glyph offset array; after all
// quads one entry is appended to the target's placement array referencing
// the glyph and line ranges. Paint property streams are extended to stay
// 1:1 with the new vertex range.
//
// lineStart and lineLength reference the bucket's line vertex array (see
// tilelabel.LineVertexArray.AddLine); pass a zero-length range for
// point-placed labels.
//
// Returns the placement array index of the new entry, or ErrBucketFull when
// the bucket's instance cap or a segment's index budget cannot accommodate
// the label, leaving the bucket unchanged.
func (b *Bucket) AddSymbols(set *BufferSet, quads []Quad, sizeVertex [2]float32, lineOffset [2]float32, feature *tilelabel.SymbolFeature, writingMode tilelabel.WritingMode, anchor tilelabel.Anchor, lineStart, lineLength int) (int, error) {
	if b.sealed {
		return 0, ErrSealed
	}
	placed := b.placedFor(set)
	if placed == nil {
		return 0, ErrTargetKind
	}
	if b.instanceCount() >= MaxInstances {
		tilelabel.Logger().Warn("bucket instance cap reached",
			"layers", b.LayerIDs, "instances", b.instanceCount())
		return 0, ErrBucketFull
	}
	if len(quads)*4 > MaxVertexLength {
		// A single label larger than a whole segment cannot be packed at
		// all.
		return 0, ErrBucketFull
	}

	glyphStart := b.GlyphOffsets.Len()
	anchorX, anchorY := int16(anchor.X), int16(anchor.Y)
	packed := PackAngleZoom(0, b.Zoom)

	// The whole label is reserved at once so every quad lands in the same
	// segment and SegmentID describes all of them.
	var segmentID int
	var seg *Segment
	if len(quads) > 0 {
		seg = set.prepareSegment(4 * len(quads))
		segmentID = seg.VertexOffset
	}
	for qi := range quads {
		q := &quads[qi]
		base := uint16(seg.VertexLength)

		tlx, tly := quantizeOffset(q.TL)
		trx, try := quantizeOffset(q.TR)
		blx, bly := quantizeOffset(q.BL)
		brx, bry := quantizeOffset(q.BR)

		set.Layout.Append(LayoutVertex{
			X: anchorX, Y: anchorY,
			OffsetX: int16(tlx), OffsetY: int16(tly),
			TexX: q.Tex.X, TexY: q.Tex.Y,
			SizeX: uint16(sizeVertex[0]), SizeY: uint16(sizeVertex[1]),
		})
		set.Layout.Append(LayoutVertex{
			X: anchorX, Y: anchorY,
			OffsetX: int16(trx), OffsetY: int16(try),
			TexX: q.Tex.X + q.Tex.W, TexY: q.Tex.Y,
			SizeX: uint16(sizeVertex[0]), SizeY: uint16(sizeVertex[1]),
		})
		set.Layout.Append(LayoutVertex{
			X: anchorX, Y: anchorY,
			OffsetX: int16(blx), OffsetY: int16(bly),
			TexX: q.Tex.X, TexY: q.Tex.Y + q.Tex.H,
			SizeX: uint16(sizeVertex[0]), SizeY: uint16(sizeVertex[1]),
		})
		set.Layout.Append(LayoutVertex{
			X: anchorX, Y: anchorY,
			OffsetX: int16(brx), OffsetY: int16(bry),
			TexX: q.Tex.X + q.Tex.W, TexY: q.Tex.Y + q.Tex.H,
			SizeX: uint16(sizeVertex[0]), SizeY: uint16(sizeVertex[1]),
		})

		for i := 0; i < 4; i++ {
			set.Dynamic.Append(DynamicVertex{
				X:      float32(anchor.X),
				Y:      float32(anchor.Y),
				Packed: packed,
			})
			set.Opacity.Append(0)
		}

		set.Triangles.Append(base, base+1, base+2)
		set.Triangles.Append(base+1, base+2, base+3)
		seg.VertexLength += 4
		seg.PrimitiveLength += 2

		b.GlyphOffsets.Append(float32(q.GlyphOffsetX))
	}

	idx := placed.Append(tilelabel.PlacedSymbol{
		AnchorX:     float32(anchor.X),
		AnchorY:     float32(anchor.Y),
		GlyphStart:  int32(glyphStart),
		NumGlyphs:   int32(b.GlyphOffsets.Len() - glyphStart),
		LineStart:   int32(lineStart),
		LineLength:  int32(lineLength),
		SegmentID:   int32(segmentID),
		SizeX:       sizeVertex[0],
		SizeY:       sizeVertex[1],
		LineOffsetX: lineOffset[0],
		LineOffsetY: lineOffset[1],
		Zoom:        float32(b.Zoom),
		WritingMode: writingMode,
		Hidden:      false,
	})

	set.Paint.PopulatePaintArrays(set.Layout.Len(), feature)
	return idx, nil
}
