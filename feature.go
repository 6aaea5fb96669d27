package tilelabel

// FeatureType tags the geometry kind of a decoded tile feature.
type FeatureType uint8

// Feature geometry kinds.
const (
	FeatureUnknown FeatureType = iota
	FeaturePoint
	FeatureLine
	FeaturePolygon
)

// String returns a human-readable name for the feature type.
func (t FeatureType) String() string {
	switch t {
	case FeaturePoint:
		return "Point"
	case FeatureLine:
		return "Line"
	case FeaturePolygon:
		return "Polygon"
	default:
		return "Unknown"
	}
}

// SourceFeature is one decoded vector-tile feature as handed to the
// collector. Geometry is an ordered sequence of point sequences in
// tile-local units, supporting multi-part geometries.
type SourceFeature struct {
	// ID is the feature's external identifier; valid only when HasID is set.
	ID    uint64
	HasID bool

	// Type is the geometry kind.
	Type FeatureType

	// Geometry holds the tile-local point sequences.
	Geometry [][]Point

	// Properties is the decoded feature property mapping.
	Properties map[string]any

	// Index is the feature's stable position within its source layer.
	Index int

	// SourceLayerIndex identifies the source layer within the tile.
	SourceLayerIndex int
}

// SymbolFeature is one label candidate produced by the collector: a feature
// that evaluated to text, an icon, or both. Immutable after collection; the
// shaping collaborator consumes it.
type SymbolFeature struct {
	// Text is the resolved, transformed label text. Empty when the feature
	// carries no text label.
	Text string

	// Icon is the resolved icon name. Empty when the feature carries no
	// icon label.
	Icon string

	// Geometry, Type, Properties, Index, SourceLayerIndex, ID and HasID
	// carry over from the source feature.
	Geometry         [][]Point
	Type             FeatureType
	Properties       map[string]any
	Index            int
	SourceLayerIndex int
	ID               uint64
	HasID            bool
}
