package bucket

import (
	"encoding/binary"
	"math"
)

// Vertex formats are fixed-stride binary contracts shared with the paired
// renderer; field widths and order must not change without a format bump.

// LayoutVertex is one corner of a quad in the static layout stream: the
// label anchor in tile units, the corner's sub-pixel offset in 1/64 units,
// the atlas texture coordinate, and the two size-vertex components.
type LayoutVertex struct {
	X, Y             int16
	OffsetX, OffsetY int16
	TexX, TexY       uint16
	SizeX, SizeY     uint16
}

// layoutVertexStride is the byte size of one LayoutVertex record.
const layoutVertexStride = 16

// LayoutVertexArray is the static per-quad attribute stream.
type LayoutVertexArray struct {
	verts []LayoutVertex
}

// Len returns the number of vertices.
func (a *LayoutVertexArray) Len() int { return len(a.verts) }

// Append adds one vertex.
func (a *LayoutVertexArray) Append(v LayoutVertex) {
	a.verts = append(a.verts, v)
}

// At returns the vertex at index i.
func (a *LayoutVertexArray) At(i int) LayoutVertex { return a.verts[i] }

// Bytes serializes the stream in little-endian order at layoutVertexStride
// bytes per vertex.
func (a *LayoutVertexArray) Bytes() []byte {
	buf := make([]byte, len(a.verts)*layoutVertexStride)
	for i, v := range a.verts {
		o := i * layoutVertexStride
		binary.LittleEndian.PutUint16(buf[o:], uint16(v.X))
		binary.LittleEndian.PutUint16(buf[o+2:], uint16(v.Y))
		binary.LittleEndian.PutUint16(buf[o+4:], uint16(v.OffsetX))
		binary.LittleEndian.PutUint16(buf[o+6:], uint16(v.OffsetY))
		binary.LittleEndian.PutUint16(buf[o+8:], v.TexX)
		binary.LittleEndian.PutUint16(buf[o+10:], v.TexY)
		binary.LittleEndian.PutUint16(buf[o+12:], v.SizeX)
		binary.LittleEndian.PutUint16(buf[o+14:], v.SizeY)
	}
	return buf
}

// DynamicVertex is one corner of a quad in the dynamic stream: the anchor's
// render position plus the packed angle/zoom attribute. The placement pass
// rewrites this stream in place on pitch or orientation changes.
type DynamicVertex struct {
	X, Y   float32
	Packed float32
}

// dynamicVertexStride is the byte size of one DynamicVertex record.
const dynamicVertexStride = 12

// DynamicVertexArray is the per-frame-dynamic attribute stream.
type DynamicVertexArray struct {
	verts []DynamicVertex
}

// Len returns the number of vertices.
func (a *DynamicVertexArray) Len() int { return len(a.verts) }

// Append adds one vertex.
func (a *DynamicVertexArray) Append(v DynamicVertex) {
	a.verts = append(a.verts, v)
}

// At returns the vertex at index i.
func (a *DynamicVertexArray) At(i int) DynamicVertex { return a.verts[i] }

// Set overwrites the vertex at index i. Render-thread only.
func (a *DynamicVertexArray) Set(i int, v DynamicVertex) { a.verts[i] = v }

// Bytes serializes the stream in little-endian order.
func (a *DynamicVertexArray) Bytes() []byte {
	buf := make([]byte, len(a.verts)*dynamicVertexStride)
	for i, v := range a.verts {
		o := i * dynamicVertexStride
		binary.LittleEndian.PutUint32(buf[o:], math.Float32bits(v.X))
		binary.LittleEndian.PutUint32(buf[o+4:], math.Float32bits(v.Y))
		binary.LittleEndian.PutUint32(buf[o+8:], math.Float32bits(v.Packed))
	}
	return buf
}

// OpacityVertex packs one corner's fade state: bit 0 is the target
// visibility, bits 1..7 the current opacity in 1/127 steps. Freshly packed
// geometry starts fully hidden; the placement pass writes real values.
type OpacityVertex uint8

// PackOpacity packs an opacity in [0, 1] and a target visibility flag.
func PackOpacity(opacity float64, targetVisible bool) OpacityVertex {
	o := math.Round(math.Max(0, math.Min(1, opacity)) * 127)
	v := OpacityVertex(o) << 1
	if targetVisible {
		v |= 1
	}
	return v
}

// Opacity returns the packed opacity in [0, 1].
func (v OpacityVertex) Opacity() float64 { return float64(v>>1) / 127 }

// TargetVisible returns the packed target visibility flag.
func (v OpacityVertex) TargetVisible() bool { return v&1 != 0 }

// OpacityVertexArray is the fade-state stream.
type OpacityVertexArray struct {
	verts []OpacityVertex
}

// Len returns the number of vertices.
func (a *OpacityVertexArray) Len() int { return len(a.verts) }

// Append adds one vertex.
func (a *OpacityVertexArray) Append(v OpacityVertex) {
	a.verts = append(a.verts, v)
}

// At returns the vertex at index i.
func (a *OpacityVertexArray) At(i int) OpacityVertex { return a.verts[i] }

// Set overwrites the vertex at index i. Render-thread only.
func (a *OpacityVertexArray) Set(i int, v OpacityVertex) { a.verts[i] = v }

// Bytes serializes the stream, one byte per vertex.
func (a *OpacityVertexArray) Bytes() []byte {
	buf := make([]byte, len(a.verts))
	for i, v := range a.verts {
		buf[i] = byte(v)
	}
	return buf
}

// CollisionVertex is one corner of a collision debug quad: the box's own
// anchor point, the owning label's anchor, and the corner's extrusion from
// the box anchor in pixels.
type CollisionVertex struct {
	X, Y               int16
	AnchorX, AnchorY   int16
	ExtrudeX, ExtrudeY int16
}

// collisionVertexStride is the byte size of one CollisionVertex record.
const collisionVertexStride = 12

// CollisionVertexArray is the collision debug attribute stream.
type CollisionVertexArray struct {
	verts []CollisionVertex
}

// Len returns the number of vertices.
func (a *CollisionVertexArray) Len() int { return len(a.verts) }

// Append adds one vertex.
func (a *CollisionVertexArray) Append(v CollisionVertex) {
	a.verts = append(a.verts, v)
}

// At returns the vertex at index i.
func (a *CollisionVertexArray) At(i int) CollisionVertex { return a.verts[i] }

// Bytes serializes the stream in little-endian order.
func (a *CollisionVertexArray) Bytes() []byte {
	buf := make([]byte, len(a.verts)*collisionVertexStride)
	for i, v := range a.verts {
		o := i * collisionVertexStride
		binary.LittleEndian.PutUint16(buf[o:], uint16(v.X))
		binary.LittleEndian.PutUint16(buf[o+2:], uint16(v.Y))
		binary.LittleEndian.PutUint16(buf[o+4:], uint16(v.AnchorX))
		binary.LittleEndian.PutUint16(buf[o+6:], uint16(v.AnchorY))
		binary.LittleEndian.PutUint16(buf[o+8:], uint16(v.ExtrudeX))
		binary.LittleEndian.PutUint16(buf[o+10:], uint16(v.ExtrudeY))
	}
	return buf
}

// TriangleIndexArray is a 16-bit index stream with triangle topology.
type TriangleIndexArray struct {
	indices []uint16
}

// Len returns the number of indices.
func (a *TriangleIndexArray) Len() int { return len(a.indices) }

// Append adds one triangle.
func (a *TriangleIndexArray) Append(i, j, k uint16) {
	a.indices = append(a.indices, i, j, k)
}

// At returns the index at position i.
func (a *TriangleIndexArray) At(i int) uint16 { return a.indices[i] }

// Bytes serializes the stream in little-endian order.
func (a *TriangleIndexArray) Bytes() []byte {
	return indexBytes(a.indices)
}

// LineIndexArray is a 16-bit index stream with line topology.
type LineIndexArray struct {
	indices []uint16
}

// Len returns the number of indices.
func (a *LineIndexArray) Len() int { return len(a.indices) }

// Append adds one line segment.
func (a *LineIndexArray) Append(i, j uint16) {
	a.indices = append(a.indices, i, j)
}

// At returns the index at position i.
func (a *LineIndexArray) At(i int) uint16 { return a.indices[i] }

// Bytes serializes the stream in little-endian order.
func (a *LineIndexArray) Bytes() []byte {
	return indexBytes(a.indices)
}

func indexBytes(indices []uint16) []byte {
	buf := make([]byte, len(indices)*2)
	for i, v := range indices {
		binary.LittleEndian.PutUint16(buf[i*2:], v)
	}
	return buf
}
