package bucket

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/tilelabel"
)

// Transfer semantics are move-only: Serialize seals the source bucket and
// hands ownership of the encoded bytes to the Transfer; Deserialize drains
// the Transfer and hands ownership to the rebuilt bucket. Neither side can
// be reused, so a bucket's data is live in exactly one place at a time.

// transferMagic and transferVersion head every encoded bucket. The version
// bumps whenever a stream layout in this package changes.
const (
	transferMagic   = "TLBK"
	transferVersion = 1
)

// Transfer carries one serialized bucket between the build side and the
// render side. A Transfer is drained by its first Deserialize.
type Transfer struct {
	data []byte
}

// Drained reports whether the transfer's payload has already been claimed.
func (t *Transfer) Drained() bool { return t.data == nil }

// Size returns the payload size in bytes, zero once drained.
func (t *Transfer) Size() int { return len(t.data) }

// Serialize encodes the bucket into a Transfer and seals it: the bucket
// rejects further packing afterwards. Feature properties and raw geometry
// are not carried; the render side never reads them.
func (b *Bucket) Serialize() (*Transfer, error) {
	if b.sealed {
		return nil, ErrSealed
	}
	b.sealed = true

	w := &transferWriter{}
	w.bytes([]byte(transferMagic))
	w.u16(transferVersion)

	w.f64(b.Zoom)
	w.str(b.FontStackID)
	w.u32(uint32(len(b.LayerIDs)))
	for _, id := range b.LayerIDs {
		w.str(id)
	}
	encodeSizeData(w, b.TextSizeData)
	encodeSizeData(w, b.IconSizeData)

	w.u32(uint32(b.GlyphOffsets.Len()))
	for i := 0; i < b.GlyphOffsets.Len(); i++ {
		w.f32(b.GlyphOffsets.Offset(i))
	}

	w.u32(uint32(b.LineVertices.Len()))
	for i := 0; i < b.LineVertices.Len(); i++ {
		v := b.LineVertices.Vertex(i)
		w.u16(uint16(v.X))
		w.u16(uint16(v.Y))
		w.f32(v.Distance)
	}

	encodePlaced(w, &b.TextPlaced)
	encodePlaced(w, &b.IconPlaced)

	w.u32(uint32(len(b.Features)))
	for i := range b.Features {
		f := &b.Features[i]
		w.str(f.Text)
		w.str(f.Icon)
		w.u8(uint8(f.Type))
		w.u32(uint32(f.Index))
		w.u32(uint32(f.SourceLayerIndex))
		w.u64(f.ID)
		w.bool(f.HasID)
	}

	w.u32(uint32(len(b.Instances)))
	for i := range b.Instances {
		encodeInstance(w, b, &b.Instances[i])
	}

	encodeBufferSet(w, b.Text)
	encodeBufferSet(w, b.Icon)
	encodeBufferSet(w, b.CollisionBox)
	encodeBufferSet(w, b.CollisionCircle)

	return &Transfer{data: w.buf}, nil
}

// Deserialize rebuilds a bucket from a transfer, draining it. A drained
// transfer returns ErrDrained; malformed payloads return ErrCorrupt and a
// version mismatch ErrVersion.
func Deserialize(t *Transfer) (*Bucket, error) {
	if t.data == nil {
		return nil, ErrDrained
	}
	r := &transferReader{buf: t.data}
	t.data = nil

	if string(r.bytes(len(transferMagic))) != transferMagic {
		return nil, ErrCorrupt
	}
	if r.u16() != transferVersion {
		return nil, ErrVersion
	}

	b := &Bucket{}
	b.Zoom = r.f64()
	b.FontStackID = r.str()
	b.LayerIDs = make([]string, r.count(4))
	for i := range b.LayerIDs {
		b.LayerIDs[i] = r.str()
	}
	b.TextSizeData = decodeSizeData(r)
	b.IconSizeData = decodeSizeData(r)

	for n := int(r.u32()); n > 0 && r.err == nil; n-- {
		b.GlyphOffsets.Append(r.f32())
	}
	for n := int(r.u32()); n > 0 && r.err == nil; n-- {
		b.LineVertices.AppendVertex(tilelabel.LineVertex{
			X:        int16(r.u16()),
			Y:        int16(r.u16()),
			Distance: r.f32(),
		})
	}

	decodePlaced(r, &b.TextPlaced)
	decodePlaced(r, &b.IconPlaced)

	b.Features = make([]tilelabel.SymbolFeature, 0, r.count(26))
	for n := cap(b.Features); n > 0 && r.err == nil; n-- {
		b.Features = append(b.Features, tilelabel.SymbolFeature{
			Text:             r.str(),
			Icon:             r.str(),
			Type:             tilelabel.FeatureType(r.u8()),
			Index:            int(r.u32()),
			SourceLayerIndex: int(r.u32()),
			ID:               r.u64(),
			HasID:            r.bool(),
		})
	}

	b.Instances = make([]tilelabel.SymbolInstance, 0, r.count(93))
	for n := cap(b.Instances); n > 0 && r.err == nil; n-- {
		b.Instances = append(b.Instances, decodeInstance(r, b))
	}

	b.Text = decodeBufferSet(r, TargetText)
	b.Icon = decodeBufferSet(r, TargetIcon)
	b.CollisionBox = decodeBufferSet(r, TargetCollisionBox)
	b.CollisionCircle = decodeBufferSet(r, TargetCollisionCircle)

	if r.err != nil {
		return nil, r.err
	}
	return b, nil
}

func encodeSizeData(w *transferWriter, d tilelabel.SizeData) {
	w.u8(uint8(d.Kind))
	w.f64(d.LayoutSize)
	w.f64(d.CoveringZoomRange[0])
	w.f64(d.CoveringZoomRange[1])
	w.f64(d.CoveringStopValues[0])
	w.f64(d.CoveringStopValues[1])
}

func decodeSizeData(r *transferReader) tilelabel.SizeData {
	return tilelabel.SizeData{
		Kind:               tilelabel.SizeKind(r.u8()),
		LayoutSize:         r.f64(),
		CoveringZoomRange:  [2]float64{r.f64(), r.f64()},
		CoveringStopValues: [2]float64{r.f64(), r.f64()},
	}
}

func encodePlaced(w *transferWriter, a *tilelabel.PlacedSymbolArray) {
	w.u32(uint32(a.Len()))
	for i := 0; i < a.Len(); i++ {
		p := a.At(i)
		w.f32(p.AnchorX)
		w.f32(p.AnchorY)
		w.u32(uint32(p.GlyphStart))
		w.u32(uint32(p.NumGlyphs))
		w.u32(uint32(p.LineStart))
		w.u32(uint32(p.LineLength))
		w.u32(uint32(p.SegmentID))
		w.f32(p.SizeX)
		w.f32(p.SizeY)
		w.f32(p.LineOffsetX)
		w.f32(p.LineOffsetY)
		w.f32(p.Zoom)
		w.u8(uint8(p.WritingMode))
		w.bool(p.Hidden)
	}
}

func decodePlaced(r *transferReader, a *tilelabel.PlacedSymbolArray) {
	for n := int(r.u32()); n > 0 && r.err == nil; n-- {
		a.Append(tilelabel.PlacedSymbol{
			AnchorX:     r.f32(),
			AnchorY:     r.f32(),
			GlyphStart:  int32(r.u32()),
			NumGlyphs:   int32(r.u32()),
			LineStart:   int32(r.u32()),
			LineLength:  int32(r.u32()),
			SegmentID:   int32(r.u32()),
			SizeX:       r.f32(),
			SizeY:       r.f32(),
			LineOffsetX: r.f32(),
			LineOffsetY: r.f32(),
			Zoom:        r.f32(),
			WritingMode: tilelabel.WritingMode(r.u8()),
			Hidden:      r.bool(),
		})
	}
}

func encodeInstance(w *transferWriter, b *Bucket, inst *tilelabel.SymbolInstance) {
	w.str(inst.Key)
	w.u32(uint32(inst.TextBoxStart))
	w.u32(uint32(inst.TextBoxEnd))
	w.u32(uint32(inst.IconBoxStart))
	w.u32(uint32(inst.IconBoxEnd))
	w.f64(inst.TextOffset.X)
	w.f64(inst.TextOffset.Y)
	w.f64(inst.IconOffset.X)
	w.f64(inst.IconOffset.Y)
	w.f64(inst.Anchor.X)
	w.f64(inst.Anchor.Y)
	w.u32(uint32(int32(inst.Anchor.Segment)))
	w.f64(inst.Anchor.Angle)
	w.u32(uint32(len(inst.Line)))
	for _, p := range inst.Line {
		w.f64(p.X)
		w.f64(p.Y)
	}
	w.u32(uint32(inst.FeatureIndex))
	// Feature pointers relink through the bucket's feature slice.
	pos := int32(-1)
	for i := range b.Features {
		if inst.Feature == &b.Features[i] {
			pos = int32(i)
			break
		}
	}
	w.u32(uint32(pos))
	w.u8(uint8(inst.WritingModes))
}

func decodeInstance(r *transferReader, b *Bucket) tilelabel.SymbolInstance {
	inst := tilelabel.SymbolInstance{
		Key:          r.str(),
		TextBoxStart: int(r.u32()),
		TextBoxEnd:   int(r.u32()),
		IconBoxStart: int(r.u32()),
		IconBoxEnd:   int(r.u32()),
		TextOffset:   tilelabel.Point{X: r.f64(), Y: r.f64()},
		IconOffset:   tilelabel.Point{X: r.f64(), Y: r.f64()},
	}
	inst.Anchor.X = r.f64()
	inst.Anchor.Y = r.f64()
	inst.Anchor.Segment = int(int32(r.u32()))
	inst.Anchor.Angle = r.f64()
	inst.Line = make([]tilelabel.Point, 0, r.count(16))
	for n := cap(inst.Line); n > 0 && r.err == nil; n-- {
		inst.Line = append(inst.Line, tilelabel.Point{X: r.f64(), Y: r.f64()})
	}
	inst.FeatureIndex = int(r.u32())
	if pos := int(int32(r.u32())); pos >= 0 && pos < len(b.Features) {
		inst.Feature = &b.Features[pos]
	}
	inst.WritingModes = tilelabel.WritingMode(r.u8())
	return inst
}

func encodeBufferSet(w *transferWriter, s *BufferSet) {
	w.u32(uint32(s.Layout.Len()))
	for i := 0; i < s.Layout.Len(); i++ {
		v := s.Layout.At(i)
		w.u16(uint16(v.X))
		w.u16(uint16(v.Y))
		w.u16(uint16(v.OffsetX))
		w.u16(uint16(v.OffsetY))
		w.u16(v.TexX)
		w.u16(v.TexY)
		w.u16(v.SizeX)
		w.u16(v.SizeY)
	}
	if s.Dynamic != nil {
		w.u32(uint32(s.Dynamic.Len()))
		for i := 0; i < s.Dynamic.Len(); i++ {
			v := s.Dynamic.At(i)
			w.f32(v.X)
			w.f32(v.Y)
			w.f32(v.Packed)
		}
	}
	if s.Opacity != nil {
		w.u32(uint32(s.Opacity.Len()))
		for i := 0; i < s.Opacity.Len(); i++ {
			w.u8(uint8(s.Opacity.At(i)))
		}
	}
	if s.Collision != nil {
		w.u32(uint32(s.Collision.Len()))
		for i := 0; i < s.Collision.Len(); i++ {
			v := s.Collision.At(i)
			w.u16(uint16(v.X))
			w.u16(uint16(v.Y))
			w.u16(uint16(v.AnchorX))
			w.u16(uint16(v.AnchorY))
			w.u16(uint16(v.ExtrudeX))
			w.u16(uint16(v.ExtrudeY))
		}
	}
	w.u32(uint32(s.indexLen()))
	for i := 0; i < s.indexLen(); i++ {
		if s.Triangles != nil {
			w.u16(s.Triangles.At(i))
		} else {
			w.u16(s.Lines.At(i))
		}
	}

	w.u32(uint32(len(s.Paint.Binders)))
	for _, binder := range s.Paint.Binders {
		w.str(binder.Name)
		w.u8(uint8(binder.Components))
		w.u32(uint32(len(binder.Constant)))
		for _, v := range binder.Constant {
			w.f32(v)
		}
		w.u32(uint32(len(binder.data)))
		for _, v := range binder.data {
			w.f32(v)
		}
	}

	w.u32(uint32(len(s.Segments)))
	for _, seg := range s.Segments {
		w.u32(uint32(seg.VertexOffset))
		w.u32(uint32(seg.IndexOffset))
		w.u32(uint32(seg.VertexLength))
		w.u32(uint32(seg.PrimitiveLength))
	}
}

func decodeBufferSet(r *transferReader, kind TargetKind) *BufferSet {
	s := NewBufferSet(kind)
	for n := int(r.u32()); n > 0 && r.err == nil; n-- {
		s.Layout.Append(LayoutVertex{
			X:       int16(r.u16()),
			Y:       int16(r.u16()),
			OffsetX: int16(r.u16()),
			OffsetY: int16(r.u16()),
			TexX:    r.u16(),
			TexY:    r.u16(),
			SizeX:   r.u16(),
			SizeY:   r.u16(),
		})
	}
	if s.Dynamic != nil {
		for n := int(r.u32()); n > 0 && r.err == nil; n-- {
			s.Dynamic.Append(DynamicVertex{X: r.f32(), Y: r.f32(), Packed: r.f32()})
		}
	}
	if s.Opacity != nil {
		for n := int(r.u32()); n > 0 && r.err == nil; n-- {
			s.Opacity.Append(OpacityVertex(r.u8()))
		}
	}
	if s.Collision != nil {
		for n := int(r.u32()); n > 0 && r.err == nil; n-- {
			s.Collision.Append(CollisionVertex{
				X:        int16(r.u16()),
				Y:        int16(r.u16()),
				AnchorX:  int16(r.u16()),
				AnchorY:  int16(r.u16()),
				ExtrudeX: int16(r.u16()),
				ExtrudeY: int16(r.u16()),
			})
		}
	}
	indexCount := int(r.u32())
	if s.Triangles != nil {
		if indexCount%3 != 0 && r.err == nil {
			r.err = ErrCorrupt
		}
		for n := indexCount; n > 2 && r.err == nil; n -= 3 {
			s.Triangles.Append(r.u16(), r.u16(), r.u16())
		}
	} else {
		if indexCount%2 != 0 && r.err == nil {
			r.err = ErrCorrupt
		}
		for n := indexCount; n > 1 && r.err == nil; n -= 2 {
			s.Lines.Append(r.u16(), r.u16())
		}
	}

	binders := make([]*PaintBinder, 0, r.count(13))
	for n := cap(binders); n > 0 && r.err == nil; n-- {
		binder := &PaintBinder{
			Name:       r.str(),
			Components: int(r.u8()),
		}
		binder.Constant = make([]float32, r.count(4))
		for i := range binder.Constant {
			binder.Constant[i] = r.f32()
		}
		binder.data = make([]float32, r.count(4))
		for i := range binder.data {
			binder.data[i] = r.f32()
		}
		binders = append(binders, binder)
	}
	s.Paint = NewPaintConfiguration(binders...)

	s.Segments = make([]Segment, 0, r.count(16))
	for n := cap(s.Segments); n > 0 && r.err == nil; n-- {
		s.Segments = append(s.Segments, Segment{
			VertexOffset:    int(r.u32()),
			IndexOffset:     int(r.u32()),
			VertexLength:    int(r.u32()),
			PrimitiveLength: int(r.u32()),
		})
	}
	return s
}

// transferWriter appends little-endian fields to a growing payload.
type transferWriter struct {
	buf []byte
}

func (w *transferWriter) bytes(b []byte) { w.buf = append(w.buf, b...) }
func (w *transferWriter) u8(v uint8)     { w.buf = append(w.buf, v) }

func (w *transferWriter) bool(v bool) {
	if v {
		w.u8(1)
	} else {
		w.u8(0)
	}
}

func (w *transferWriter) u16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *transferWriter) u32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *transferWriter) u64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

func (w *transferWriter) f32(v float32) { w.u32(math.Float32bits(v)) }
func (w *transferWriter) f64(v float64) { w.u64(math.Float64bits(v)) }

func (w *transferWriter) str(s string) {
	w.u32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

// transferReader consumes little-endian fields, latching ErrCorrupt on the
// first short read so callers can decode straight through and check once.
type transferReader struct {
	buf []byte
	off int
	err error
}

func (r *transferReader) bytes(n int) []byte {
	if r.err != nil || n < 0 || r.off+n > len(r.buf) {
		if r.err == nil {
			r.err = ErrCorrupt
		}
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *transferReader) u8() uint8 {
	b := r.bytes(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *transferReader) bool() bool { return r.u8() != 0 }

func (r *transferReader) u16() uint16 {
	b := r.bytes(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *transferReader) u32() uint32 {
	b := r.bytes(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *transferReader) u64() uint64 {
	b := r.bytes(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *transferReader) f32() float32 { return math.Float32frombits(r.u32()) }
func (r *transferReader) f64() float64 { return math.Float64frombits(r.u64()) }

// count reads a record count and bounds it by the bytes remaining, given a
// lower bound on the encoded record size. A count the payload cannot hold
// latches ErrCorrupt instead of driving an oversized allocation.
func (r *transferReader) count(minRecordSize int) int {
	n := int(r.u32())
	if r.err != nil {
		return 0
	}
	if n*minRecordSize > len(r.buf)-r.off {
		r.err = ErrCorrupt
		return 0
	}
	return n
}

func (r *transferReader) str() string { return string(r.bytes(int(r.u32()))) }
