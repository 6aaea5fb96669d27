package bucket

import (
	"strings"
	"testing"

	"github.com/gogpu/tilelabel"
)

// pointLayer is the minimal style layer a point label flow needs.
type pointLayer struct{}

func (pointLayer) ID() string           { return "poi-labels" }
func (pointLayer) HasTextField() bool   { return true }
func (pointLayer) HasIconImage() bool   { return false }
func (pointLayer) FontStack() []string  { return []string{"Noto Sans Regular"} }
func (pointLayer) Filter(*tilelabel.SourceFeature) bool { return true }
func (pointLayer) TextField(*tilelabel.SourceFeature, float64) string {
	return "{name}"
}
func (pointLayer) TextFieldIsConstant() bool { return true }
func (pointLayer) IconImage(*tilelabel.SourceFeature, float64) string {
	return ""
}
func (pointLayer) IconImageIsConstant() bool { return true }
func (pointLayer) TextTransform() tilelabel.TextTransform {
	return tilelabel.TransformNone
}
func (pointLayer) Placement() tilelabel.Placement { return tilelabel.PlacementPoint }

// constSize is a zoom- and feature-constant size property.
type constSize struct{}

func (constSize) IsZoomConstant() bool      { return true }
func (constSize) IsFeatureConstant() bool   { return true }
func (constSize) Evaluate(float64) float64  { return 16 }
func (constSize) StopZoomLevels() []float64 { return nil }

// TestPointLabelFlow walks one point feature through collection, size
// precomputation, and packing, checking the chain end to end: the feature
// is retained with its resolved text, its glyph is recorded as a shaping
// dependency, and packing yields one visible placed entry.
func TestPointLabelFlow(t *testing.T) {
	const zoom = 14.0

	src := []tilelabel.SourceFeature{{
		Type:       tilelabel.FeaturePoint,
		Geometry:   [][]tilelabel.Point{{tilelabel.Pt(512, 512)}},
		Properties: map[string]any{"name": "A"},
	}}
	glyphs := tilelabel.GlyphDependencies{}

	c := &tilelabel.Collector{Layer: pointLayer{}, Zoom: zoom}
	features := c.Collect(src, glyphs, tilelabel.IconDependencies{})
	if len(features) != 1 {
		t.Fatalf("Collect() returned %d features, want 1", len(features))
	}
	if features[0].Text != "A" {
		t.Fatalf("collected text = %q, want %q", features[0].Text, "A")
	}
	stack := strings.Join(pointLayer{}.FontStack(), ",")
	if !glyphs[stack]['A'] {
		t.Errorf("glyph dependencies missing 'A' for stack %q", stack)
	}

	size := tilelabel.GetSizeData(zoom, constSize{})
	if size.Kind != tilelabel.SizeConstant {
		t.Fatalf("size kind = %v, want SizeConstant", size.Kind)
	}
	if size.LayoutSize != 16 {
		t.Fatalf("layout size = %v, want 16", size.LayoutSize)
	}

	b := New([]string{pointLayer{}.ID()}, stack, zoom, size, size)
	anchor := tilelabel.NewAnchor(512, 512)
	sizeVertex := [2]float32{float32(size.LayoutSize), float32(size.LayoutSize)}
	idx, err := b.AddSymbols(b.Text, makeQuads(1), sizeVertex, [2]float32{0, 0},
		&features[0], tilelabel.WritingModeHorizontal, anchor, 0, 0)
	if err != nil {
		t.Fatalf("AddSymbols: %v", err)
	}

	if b.TextPlaced.Len() != 1 {
		t.Fatalf("got %d placed entries, want 1", b.TextPlaced.Len())
	}
	p := b.TextPlaced.At(idx)
	if p.NumGlyphs < 1 {
		t.Errorf("placed NumGlyphs = %d, want >= 1", p.NumGlyphs)
	}
	if p.Hidden {
		t.Error("placed entry hidden, want visible")
	}
}
