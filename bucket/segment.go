package bucket

import "github.com/gogpu/tilelabel"

// MaxVertexLength is the largest number of vertices one segment may span.
// Index buffers are 16-bit, so a draw call can never address a vertex past
// this offset within its segment.
const MaxVertexLength = 1<<16 - 1

// Segment is a contiguous window inside one buffer set that a single draw
// call covers. New segments open when the running vertex count would
// overflow the 16-bit index budget.
type Segment struct {
	// VertexOffset and IndexOffset locate the window inside the set's
	// vertex and index arrays.
	VertexOffset int
	IndexOffset  int

	// VertexLength and PrimitiveLength are the counts packed so far.
	VertexLength    int
	PrimitiveLength int
}

// prepareSegment returns a segment with room for numVertices more vertices,
// opening a new one if the current segment would overflow the 16-bit index
// budget. The returned pointer is valid until the next prepareSegment call.
func (s *BufferSet) prepareSegment(numVertices int) *Segment {
	if len(s.Segments) > 0 {
		seg := &s.Segments[len(s.Segments)-1]
		if seg.VertexLength+numVertices <= MaxVertexLength {
			return seg
		}
		tilelabel.Logger().Debug("buffer segment rollover",
			"kind", s.Kind.String(), "vertices", seg.VertexLength)
	}
	s.Segments = append(s.Segments, Segment{
		VertexOffset: s.Layout.Len(),
		IndexOffset:  s.indexLen(),
	})
	return &s.Segments[len(s.Segments)-1]
}
