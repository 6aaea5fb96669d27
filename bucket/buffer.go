package bucket

// TargetKind identifies a bucket's render targets. Each target has a fixed
// attribute family and index topology; all four share the same BufferSet
// implementation.
type TargetKind uint8

// Render targets.
const (
	// TargetText draws glyph quads.
	TargetText TargetKind = iota
	// TargetIcon draws icon quads.
	TargetIcon
	// TargetCollisionBox draws collision box outlines for debugging.
	TargetCollisionBox
	// TargetCollisionCircle draws filled collision circles for debugging.
	TargetCollisionCircle
)

// String returns a human-readable name for the target kind.
func (k TargetKind) String() string {
	switch k {
	case TargetText:
		return "Text"
	case TargetIcon:
		return "Icon"
	case TargetCollisionBox:
		return "CollisionBox"
	case TargetCollisionCircle:
		return "CollisionCircle"
	default:
		return "Unknown"
	}
}

// Topology selects the index buffer primitive.
type Topology uint8

// Index topologies.
const (
	// TopologyTriangles draws filled quads, two triangles each.
	TopologyTriangles Topology = iota
	// TopologyLines draws outlines, one index pair per edge.
	TopologyLines
)

// attributeSet flags which optional vertex streams a render target
// declares. The layout stream and an index stream are always present.
type attributeSet uint8

const (
	attrDynamic attributeSet = 1 << iota
	attrOpacity
	attrCollision
)

// targetLayout is the static attribute-layout descriptor of one render
// target. The table below is the single source of truth for which streams
// each target carries; serialization and upload both consult it.
type targetLayout struct {
	topology Topology
	attrs    attributeSet
}

var targetLayouts = [4]targetLayout{
	TargetText:            {TopologyTriangles, attrDynamic | attrOpacity},
	TargetIcon:            {TopologyTriangles, attrDynamic | attrOpacity},
	TargetCollisionBox:    {TopologyLines, attrCollision},
	TargetCollisionCircle: {TopologyTriangles, attrCollision},
}

// BufferSet owns the GPU-bound arrays of one render target: the layout
// vertex stream, the target's optional streams, its index stream, the paint
// property streams, and the segment list keeping indices within 16 bits.
//
// A BufferSet moves through the states uninitialized, built (CPU-only),
// serialized, uploaded (GPU-resident) and destroyed; see the upload file
// for the GPU half of the lifecycle.
type BufferSet struct {
	Kind TargetKind

	Layout LayoutVertexArray

	// Dynamic, Opacity and Collision are nil when the target's attribute
	// family does not declare them.
	Dynamic   *DynamicVertexArray
	Opacity   *OpacityVertexArray
	Collision *CollisionVertexArray

	// Exactly one of Triangles and Lines is non-nil, per the target's
	// topology.
	Triangles *TriangleIndexArray
	Lines     *LineIndexArray

	Paint *PaintConfiguration

	Segments []Segment

	gpu *gpuState
}

// NewBufferSet creates the buffer set for one render target, allocating the
// streams its static attribute layout declares.
func NewBufferSet(kind TargetKind) *BufferSet {
	layout := targetLayouts[kind]
	s := &BufferSet{
		Kind:  kind,
		Paint: NewPaintConfiguration(),
	}
	if layout.attrs&attrDynamic != 0 {
		s.Dynamic = &DynamicVertexArray{}
	}
	if layout.attrs&attrOpacity != 0 {
		s.Opacity = &OpacityVertexArray{}
	}
	if layout.attrs&attrCollision != 0 {
		s.Collision = &CollisionVertexArray{}
	}
	if layout.topology == TopologyTriangles {
		s.Triangles = &TriangleIndexArray{}
	} else {
		s.Lines = &LineIndexArray{}
	}
	return s
}

// Topology returns the target's index topology.
func (s *BufferSet) Topology() Topology {
	return targetLayouts[s.Kind].topology
}

func (s *BufferSet) indexLen() int {
	if s.Triangles != nil {
		return s.Triangles.Len()
	}
	return s.Lines.Len()
}
