package tilelabel

import "math"

// Extent is the tile-local coordinate range. Feature geometry handed to the
// collector uses coordinates in [0, Extent) regardless of tile zoom.
const Extent = 8192

// Point represents a 2D point or vector in tile-local units.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// NoSegment marks an anchor that is not attached to a line segment.
const NoSegment = -1

// Anchor is the tile-local reference point around which a label's glyph
// quads are positioned. For line-placed labels, Segment is the index of the
// line segment the anchor sits on; point-placed labels carry NoSegment.
type Anchor struct {
	Point

	// Segment indexes into the anchor's line geometry, or NoSegment.
	Segment int

	// Angle is the label's rotation at the anchor in radians.
	Angle float64
}

// NewAnchor creates a point-placed anchor with no line segment.
func NewAnchor(x, y float64) Anchor {
	return Anchor{Point: Pt(x, y), Segment: NoSegment}
}
