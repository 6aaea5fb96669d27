package tilelabel

// SymbolInstance is one placed label: the per-label bookkeeping the
// placement pass and the debug geometry emitter read. Instances are created
// after shaping and never mutated concurrently with placement.
type SymbolInstance struct {
	// Key groups duplicate labels across merged lines for suppression.
	Key string

	// TextBoxStart/TextBoxEnd and IconBoxStart/IconBoxEnd are [start, end)
	// ranges into the shared collision store for the label's text and icon
	// hit regions.
	TextBoxStart, TextBoxEnd int
	IconBoxStart, IconBoxEnd int

	// TextOffset and IconOffset are the label's pixel offsets.
	TextOffset, IconOffset Point

	// Anchor is the label anchor, with the line segment index for
	// line-placed labels.
	Anchor Anchor

	// Line is the originating line geometry, empty for point placement.
	Line []Point

	// FeatureIndex and Feature back-reference the originating feature.
	FeatureIndex int
	Feature      *SymbolFeature

	// WritingModes records which orientations the label was shaped for.
	WritingModes WritingMode

	// Lazily derived collision views for debug rendering.
	textCollision *CollisionView
	iconCollision *CollisionView
}

// CollisionView is a box-range view into the shared collision store for one
// hit region of a label.
type CollisionView struct {
	Array      *CollisionBoxArray
	Start, End int
}

// Boxes returns the view's records. The result is built by index lookup on
// each call, so it stays correct across store growth.
func (v *CollisionView) Boxes() []CollisionBox {
	out := make([]CollisionBox, 0, v.End-v.Start)
	for i := v.Start; i < v.End; i++ {
		out = append(out, v.Array.At(i))
	}
	return out
}

// TextCollision returns the instance's text hit-region view, deriving it on
// first use.
func (s *SymbolInstance) TextCollision(arr *CollisionBoxArray) *CollisionView {
	if s.textCollision == nil {
		s.textCollision = &CollisionView{Array: arr, Start: s.TextBoxStart, End: s.TextBoxEnd}
	}
	return s.textCollision
}

// IconCollision returns the instance's icon hit-region view, deriving it on
// first use.
func (s *SymbolInstance) IconCollision(arr *CollisionBoxArray) *CollisionView {
	if s.iconCollision == nil {
		s.iconCollision = &CollisionView{Array: arr, Start: s.IconBoxStart, End: s.IconBoxEnd}
	}
	return s.iconCollision
}

// FlatBox is a box record flattened for fast iteration by the placement
// pass.
type FlatBox struct {
	X1, Y1, X2, Y2 float32
	Anchor         Point
	FeatureIndex   int32
}

// FlatCircle is a circle record flattened for fast iteration by the
// placement pass.
type FlatCircle struct {
	Anchor       Point
	Radius       float32
	Distance     float32
	FeatureIndex int32
}

// FlattenBoxes converts the [start, end) sub-range of the collision store
// into parallel box primitives. If the range contains a circle record the
// caller asked for the wrong kind: the mismatch is logged and an empty
// slice returned, keeping the read path infallible without handing back
// corrupt data.
func FlattenBoxes(arr *CollisionBoxArray, start, end int) []FlatBox {
	out := make([]FlatBox, 0, end-start)
	for i := start; i < end; i++ {
		b := arr.At(i)
		if b.IsCircle() {
			Logger().Warn("collision record kind mismatch",
				"index", i, "want", "box", "got", "circle")
			return nil
		}
		out = append(out, FlatBox{
			X1: b.X1, Y1: b.Y1, X2: b.X2, Y2: b.Y2,
			Anchor:       b.Anchor,
			FeatureIndex: b.FeatureIndex,
		})
	}
	return out
}

// FlattenCircles converts the [start, end) sub-range of the collision store
// into parallel circle primitives, with the same kind-mismatch behavior as
// FlattenBoxes.
func FlattenCircles(arr *CollisionBoxArray, start, end int) []FlatCircle {
	out := make([]FlatCircle, 0, end-start)
	for i := start; i < end; i++ {
		b := arr.At(i)
		if !b.IsCircle() {
			Logger().Warn("collision record kind mismatch",
				"index", i, "want", "circle", "got", "box")
			return nil
		}
		out = append(out, FlatCircle{
			Anchor:       b.Anchor,
			Radius:       b.Radius,
			Distance:     b.Distance,
			FeatureIndex: b.FeatureIndex,
		})
	}
	return out
}
