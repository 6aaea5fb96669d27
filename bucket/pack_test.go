package bucket

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/tilelabel"
)

func testBucket() *Bucket {
	return New(
		[]string{"poi-labels"},
		"Noto Sans Regular",
		14,
		tilelabel.SizeData{Kind: tilelabel.SizeConstant, LayoutSize: 16},
		tilelabel.SizeData{Kind: tilelabel.SizeConstant, LayoutSize: 1},
	)
}

func makeQuads(n int) []Quad {
	quads := make([]Quad, n)
	for i := range quads {
		quads[i] = Quad{
			TL: tilelabel.Point{X: -8, Y: -20},
			TR: tilelabel.Point{X: 8, Y: -20},
			BL: tilelabel.Point{X: -8, Y: 4},
			BR: tilelabel.Point{X: 8, Y: 4},
			Tex: Rect{
				X: uint16(64 + 16*i), Y: 32, W: 16, H: 24,
			},
			GlyphOffsetX: float64(i) * 16,
		}
	}
	return quads
}

func TestPackUint8Pair(t *testing.T) {
	tests := []struct {
		a, b uint8
		want float32
	}{
		{0, 0, 0},
		{0, 140, 140},
		{1, 0, 256},
		{128, 140, 32908},
		{255, 255, 65535},
	}
	for _, tt := range tests {
		if got := PackUint8Pair(tt.a, tt.b); got != tt.want {
			t.Errorf("PackUint8Pair(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		a, b := UnpackUint8Pair(tt.want)
		if a != tt.a || b != tt.b {
			t.Errorf("UnpackUint8Pair(%v) = (%d, %d), want (%d, %d)", tt.want, a, b, tt.a, tt.b)
		}
	}
}

func TestPackAngleZoom(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		zoom  float64
		want  float32
	}{
		{"zero angle", 0, 14, 140},
		{"half turn", math.Pi, 14, 128*256 + 140},
		{"three quarter turn", 3 * math.Pi / 2, 14, 191*256 + 140},
		{"negative angle wraps", -math.Pi / 2, 14, 191*256 + 140},
		{"zoom clamps high", 0, 40, 255},
		{"zoom clamps low", 0, -3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PackAngleZoom(tt.angle, tt.zoom); got != tt.want {
				t.Errorf("PackAngleZoom(%v, %v) = %v, want %v", tt.angle, tt.zoom, got, tt.want)
			}
		})
	}
}

func TestUnpackAngleZoomRoundTrip(t *testing.T) {
	angle, zoom := UnpackAngleZoom(PackAngleZoom(0, 14))
	if angle != 0 {
		t.Errorf("angle = %v, want 0", angle)
	}
	if zoom != 14 {
		t.Errorf("zoom = %v, want 14", zoom)
	}
}

func TestAddSymbolsSingleQuad(t *testing.T) {
	b := testBucket()
	anchor := tilelabel.NewAnchor(256, 256)
	feature := &tilelabel.SymbolFeature{Text: "A", Index: 7}

	idx, err := b.AddSymbols(b.Text, makeQuads(1), [2]float32{16, 16}, [2]float32{0, 0},
		feature, tilelabel.WritingModeHorizontal, anchor, 0, 0)
	if err != nil {
		t.Fatalf("AddSymbols: %v", err)
	}
	if idx != 0 {
		t.Errorf("placed index = %d, want 0", idx)
	}

	if got := b.Text.Layout.Len(); got != 4 {
		t.Fatalf("layout vertices = %d, want 4", got)
	}
	if got := b.Text.Triangles.Len(); got != 6 {
		t.Fatalf("triangle indices = %d, want 6", got)
	}
	if got := b.Text.Dynamic.Len(); got != 4 {
		t.Errorf("dynamic vertices = %d, want 4", got)
	}
	if got := b.Text.Opacity.Len(); got != 4 {
		t.Errorf("opacity vertices = %d, want 4", got)
	}

	// Corner offsets are 1/64 fixed point; texture corners walk the atlas
	// rectangle tl, tr, bl, br.
	wantOffsets := [4][2]int16{
		{-8 * 64, -20 * 64},
		{8 * 64, -20 * 64},
		{-8 * 64, 4 * 64},
		{8 * 64, 4 * 64},
	}
	wantTex := [4][2]uint16{
		{64, 32},
		{80, 32},
		{64, 56},
		{80, 56},
	}
	for i := 0; i < 4; i++ {
		v := b.Text.Layout.At(i)
		if v.X != 256 || v.Y != 256 {
			t.Errorf("vertex %d anchor = (%d, %d), want (256, 256)", i, v.X, v.Y)
		}
		if v.OffsetX != wantOffsets[i][0] || v.OffsetY != wantOffsets[i][1] {
			t.Errorf("vertex %d offset = (%d, %d), want (%d, %d)",
				i, v.OffsetX, v.OffsetY, wantOffsets[i][0], wantOffsets[i][1])
		}
		if v.TexX != wantTex[i][0] || v.TexY != wantTex[i][1] {
			t.Errorf("vertex %d tex = (%d, %d), want (%d, %d)",
				i, v.TexX, v.TexY, wantTex[i][0], wantTex[i][1])
		}
		if v.SizeX != 16 || v.SizeY != 16 {
			t.Errorf("vertex %d size = (%d, %d), want (16, 16)", i, v.SizeX, v.SizeY)
		}
	}

	wantIndices := []uint16{0, 1, 2, 1, 2, 3}
	for i, want := range wantIndices {
		if got := b.Text.Triangles.At(i); got != want {
			t.Errorf("index %d = %d, want %d", i, got, want)
		}
	}

	wantPacked := PackAngleZoom(0, 14)
	for i := 0; i < 4; i++ {
		d := b.Text.Dynamic.At(i)
		if d.X != 256 || d.Y != 256 || d.Packed != wantPacked {
			t.Errorf("dynamic %d = %+v, want anchor (256, 256) packed %v", i, d, wantPacked)
		}
		if b.Text.Opacity.At(i).TargetVisible() {
			t.Errorf("opacity %d: fresh geometry must start hidden", i)
		}
	}

	if b.TextPlaced.Len() != 1 {
		t.Fatalf("placed entries = %d, want 1", b.TextPlaced.Len())
	}
	p := b.TextPlaced.At(0)
	if p.AnchorX != 256 || p.AnchorY != 256 {
		t.Errorf("placed anchor = (%v, %v), want (256, 256)", p.AnchorX, p.AnchorY)
	}
	if p.GlyphStart != 0 || p.NumGlyphs != 1 {
		t.Errorf("placed glyph range = [%d, +%d), want [0, +1)", p.GlyphStart, p.NumGlyphs)
	}
	if p.SegmentID != 0 {
		t.Errorf("placed SegmentID = %d, want 0", p.SegmentID)
	}
	if p.Zoom != 14 {
		t.Errorf("placed zoom = %v, want 14", p.Zoom)
	}
	if p.Hidden {
		t.Error("placed entry must start unhidden")
	}

	seg := b.Text.Segments[0]
	if seg.VertexLength != 4 || seg.PrimitiveLength != 2 {
		t.Errorf("segment counters = (%d, %d), want (4, 2)", seg.VertexLength, seg.PrimitiveLength)
	}
}

func TestAddSymbolsGlyphRangesAreContiguous(t *testing.T) {
	b := testBucket()
	anchor := tilelabel.NewAnchor(100, 100)
	feature := &tilelabel.SymbolFeature{Text: "abc"}

	if _, err := b.AddSymbols(b.Text, makeQuads(3), [2]float32{16, 16}, [2]float32{0, 0},
		feature, tilelabel.WritingModeHorizontal, anchor, 0, 0); err != nil {
		t.Fatalf("first AddSymbols: %v", err)
	}
	if _, err := b.AddSymbols(b.Text, makeQuads(2), [2]float32{16, 16}, [2]float32{0, 0},
		feature, tilelabel.WritingModeHorizontal, anchor, 0, 0); err != nil {
		t.Fatalf("second AddSymbols: %v", err)
	}

	if got := b.Text.Layout.Len(); got != 20 {
		t.Errorf("layout vertices = %d, want 20", got)
	}
	if got := b.Text.Triangles.Len(); got != 30 {
		t.Errorf("triangle indices = %d, want 30", got)
	}
	if got := b.GlyphOffsets.Len(); got != 5 {
		t.Fatalf("glyph offsets = %d, want 5", got)
	}

	first, second := b.TextPlaced.At(0), b.TextPlaced.At(1)
	if first.GlyphStart != 0 || first.NumGlyphs != 3 {
		t.Errorf("first glyph range = [%d, +%d), want [0, +3)", first.GlyphStart, first.NumGlyphs)
	}
	if second.GlyphStart != 3 || second.NumGlyphs != 2 {
		t.Errorf("second glyph range = [%d, +%d), want [3, +2)", second.GlyphStart, second.NumGlyphs)
	}
}

func TestAddSymbolsLineRange(t *testing.T) {
	b := testBucket()
	line := []tilelabel.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 200, Y: 0}}
	anchor := tilelabel.NewAnchor(50, 0)
	anchor.Segment = 0

	start, length := b.LineVertices.AddLine(anchor, line)
	idx, err := b.AddSymbols(b.Text, makeQuads(1), [2]float32{16, 16}, [2]float32{0, 0},
		&tilelabel.SymbolFeature{}, tilelabel.WritingModeHorizontal, anchor, start, length)
	if err != nil {
		t.Fatalf("AddSymbols: %v", err)
	}

	p := b.TextPlaced.At(idx)
	if int(p.LineStart) != start || int(p.LineLength) != length {
		t.Errorf("line range = [%d, +%d), want [%d, +%d)", p.LineStart, p.LineLength, start, length)
	}
}

func TestAddSymbolsIconTarget(t *testing.T) {
	b := testBucket()
	anchor := tilelabel.NewAnchor(10, 10)

	if _, err := b.AddSymbols(b.Icon, makeQuads(1), [2]float32{1, 1}, [2]float32{0, 0},
		&tilelabel.SymbolFeature{Icon: "airport-15"}, 0, anchor, 0, 0); err != nil {
		t.Fatalf("AddSymbols: %v", err)
	}
	if b.IconPlaced.Len() != 1 {
		t.Errorf("icon placed entries = %d, want 1", b.IconPlaced.Len())
	}
	if b.TextPlaced.Len() != 0 {
		t.Errorf("text placed entries = %d, want 0", b.TextPlaced.Len())
	}
}

func TestAddSymbolsRejectsCollisionTargets(t *testing.T) {
	b := testBucket()
	anchor := tilelabel.NewAnchor(0, 0)

	for _, set := range []*BufferSet{b.CollisionBox, b.CollisionCircle} {
		_, err := b.AddSymbols(set, makeQuads(1), [2]float32{1, 1}, [2]float32{0, 0},
			&tilelabel.SymbolFeature{}, 0, anchor, 0, 0)
		if !errors.Is(err, ErrTargetKind) {
			t.Errorf("kind %v: got %v, want ErrTargetKind", set.Kind, err)
		}
	}
}

func TestAddSymbolsSealedBucket(t *testing.T) {
	b := testBucket()
	if _, err := b.Serialize(); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	_, err := b.AddSymbols(b.Text, makeQuads(1), [2]float32{1, 1}, [2]float32{0, 0},
		&tilelabel.SymbolFeature{}, 0, tilelabel.NewAnchor(0, 0), 0, 0)
	if !errors.Is(err, ErrSealed) {
		t.Errorf("got %v, want ErrSealed", err)
	}
}

func TestAddSymbolsOversizeLabel(t *testing.T) {
	b := testBucket()

	// 16384 quads need 65536 vertices, one more than a segment can index.
	_, err := b.AddSymbols(b.Text, makeQuads(16384), [2]float32{1, 1}, [2]float32{0, 0},
		&tilelabel.SymbolFeature{}, 0, tilelabel.NewAnchor(0, 0), 0, 0)
	if !errors.Is(err, ErrBucketFull) {
		t.Fatalf("got %v, want ErrBucketFull", err)
	}
	if b.Text.Layout.Len() != 0 || b.TextPlaced.Len() != 0 {
		t.Error("failed pack must leave the bucket unchanged")
	}
}

func TestAddSymbolsInstanceCap(t *testing.T) {
	b := testBucket()
	anchor := tilelabel.NewAnchor(0, 0)
	quads := makeQuads(1)

	for i := 0; i < MaxInstances; i++ {
		if _, err := b.AddSymbols(b.Text, quads, [2]float32{1, 1}, [2]float32{0, 0},
			&tilelabel.SymbolFeature{}, 0, anchor, 0, 0); err != nil {
			t.Fatalf("AddSymbols %d: %v", i, err)
		}
	}

	_, err := b.AddSymbols(b.Text, quads, [2]float32{1, 1}, [2]float32{0, 0},
		&tilelabel.SymbolFeature{}, 0, anchor, 0, 0)
	if !errors.Is(err, ErrBucketFull) {
		t.Errorf("got %v, want ErrBucketFull at the instance cap", err)
	}
}

func TestAddSymbolsSegmentRollover(t *testing.T) {
	b := testBucket()
	anchor := tilelabel.NewAnchor(0, 0)

	// 16383 quads fill a segment to 65532 of 65535 vertices.
	if _, err := b.AddSymbols(b.Text, makeQuads(16383), [2]float32{1, 1}, [2]float32{0, 0},
		&tilelabel.SymbolFeature{}, 0, anchor, 0, 0); err != nil {
		t.Fatalf("first AddSymbols: %v", err)
	}
	if len(b.Text.Segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(b.Text.Segments))
	}

	if _, err := b.AddSymbols(b.Text, makeQuads(1), [2]float32{1, 1}, [2]float32{0, 0},
		&tilelabel.SymbolFeature{}, 0, anchor, 0, 0); err != nil {
		t.Fatalf("second AddSymbols: %v", err)
	}
	if len(b.Text.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(b.Text.Segments))
	}

	second := b.Text.Segments[1]
	if second.VertexOffset != 16383*4 {
		t.Errorf("second segment VertexOffset = %d, want %d", second.VertexOffset, 16383*4)
	}
	if got := b.TextPlaced.At(1).SegmentID; got != int32(second.VertexOffset) {
		t.Errorf("second placed SegmentID = %d, want %d", got, second.VertexOffset)
	}
}

func TestAddSymbolsLabelNeverStraddlesSegments(t *testing.T) {
	b := testBucket()
	anchor := tilelabel.NewAnchor(0, 0)

	// 16382 quads leave room for exactly one more quad in the segment. A
	// two-quad label must move to a new segment as a whole so its single
	// SegmentID describes every quad.
	if _, err := b.AddSymbols(b.Text, makeQuads(16382), [2]float32{1, 1}, [2]float32{0, 0},
		&tilelabel.SymbolFeature{}, 0, anchor, 0, 0); err != nil {
		t.Fatalf("first AddSymbols: %v", err)
	}
	if _, err := b.AddSymbols(b.Text, makeQuads(2), [2]float32{1, 1}, [2]float32{0, 0},
		&tilelabel.SymbolFeature{}, 0, anchor, 0, 0); err != nil {
		t.Fatalf("second AddSymbols: %v", err)
	}

	if len(b.Text.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(b.Text.Segments))
	}
	first, second := b.Text.Segments[0], b.Text.Segments[1]
	if first.VertexLength != 16382*4 {
		t.Errorf("first segment VertexLength = %d, want %d", first.VertexLength, 16382*4)
	}
	if second.VertexLength != 8 {
		t.Errorf("second segment VertexLength = %d, want 8", second.VertexLength)
	}
	if got := b.TextPlaced.At(1).SegmentID; got != int32(second.VertexOffset) {
		t.Errorf("second placed SegmentID = %d, want %d", got, second.VertexOffset)
	}
}
