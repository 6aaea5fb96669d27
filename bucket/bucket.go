package bucket

import "github.com/gogpu/tilelabel"

// MaxInstances is the hard cap on placed labels per bucket, imposed by the
// 16-bit index format of the transfer contract.
const MaxInstances = 1<<16 - 1

// Bucket is the per-tile, per-layer-group symbol container: four buffer
// sets, the shared arrays placed symbols reference, and the metadata the
// render-time evaluators need. A bucket is built by exactly one tile parse
// task, serialized once, and owned by the render side afterwards.
type Bucket struct {
	// LayerIDs are the style layers sharing this bucket's layout.
	LayerIDs []string

	// FontStackID names the font stack the text target was shaped with.
	FontStackID string

	// Zoom is the tile zoom the geometry was built for.
	Zoom float64

	// TextSizeData and IconSizeData are the precomputed size interpolation
	// descriptors.
	TextSizeData, IconSizeData tilelabel.SizeData

	// The four render targets.
	Text            *BufferSet
	Icon            *BufferSet
	CollisionBox    *BufferSet
	CollisionCircle *BufferSet

	// Shared append-only arrays referenced by placed symbol entries.
	GlyphOffsets tilelabel.GlyphOffsetArray
	LineVertices tilelabel.LineVertexArray

	// Placement summaries, one array per quad-emitting target.
	TextPlaced tilelabel.PlacedSymbolArray
	IconPlaced tilelabel.PlacedSymbolArray

	// Features and Instances are the label candidates and their placed
	// per-label bookkeeping.
	Features  []tilelabel.SymbolFeature
	Instances []tilelabel.SymbolInstance

	sealed   bool
	uploaded bool
}

// New creates an empty bucket for the given layers.
func New(layerIDs []string, fontStackID string, zoom float64, textSize, iconSize tilelabel.SizeData) *Bucket {
	return &Bucket{
		LayerIDs:        layerIDs,
		FontStackID:     fontStackID,
		Zoom:            zoom,
		TextSizeData:    textSize,
		IconSizeData:    iconSize,
		Text:            NewBufferSet(TargetText),
		Icon:            NewBufferSet(TargetIcon),
		CollisionBox:    NewBufferSet(TargetCollisionBox),
		CollisionCircle: NewBufferSet(TargetCollisionCircle),
	}
}

// Sealed reports whether the bucket has been serialized. Sealed buckets
// reject further packing; the transfer owns the data.
func (b *Bucket) Sealed() bool { return b.sealed }

// HasSymbols reports whether any target holds geometry. Empty buckets need
// neither transfer nor upload.
func (b *Bucket) HasSymbols() bool {
	return b.Text.Layout.Len() > 0 || b.Icon.Layout.Len() > 0
}

// placedFor returns the placement summary array matching a quad-emitting
// target, or nil for the collision debug targets.
func (b *Bucket) placedFor(set *BufferSet) *tilelabel.PlacedSymbolArray {
	switch set.Kind {
	case TargetText:
		return &b.TextPlaced
	case TargetIcon:
		return &b.IconPlaced
	default:
		return nil
	}
}

// instanceCount is the total number of placed entries across both targets.
func (b *Bucket) instanceCount() int {
	return b.TextPlaced.Len() + b.IconPlaced.Len()
}
