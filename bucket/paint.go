package bucket

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/tilelabel"
)

// PaintEvaluator computes a feature's value for one data-driven paint
// property, one float per component.
type PaintEvaluator func(f *tilelabel.SymbolFeature) []float32

// PaintBinder feeds one data-driven paint property into a per-vertex
// attribute stream. Constant properties carry no stream and no evaluator.
type PaintBinder struct {
	// Name is the paint property the stream feeds.
	Name string

	// Components is the number of floats per vertex.
	Components int

	// Evaluate computes the per-feature value. Nil for constant binders.
	Evaluate PaintEvaluator

	// Constant is the value used when Evaluate is nil.
	Constant []float32

	data []float32
}

// IsConstant reports whether the binder carries no per-vertex stream.
func (b *PaintBinder) IsConstant() bool { return b.Evaluate == nil }

// Len returns the number of vertices covered by the stream.
func (b *PaintBinder) Len() int {
	if b.Components == 0 {
		return 0
	}
	return len(b.data) / b.Components
}

// Value returns component c of vertex i.
func (b *PaintBinder) Value(i, c int) float32 {
	return b.data[i*b.Components+c]
}

// populate extends the stream with the feature's value until it covers
// length vertices. The value repeats across the whole vertex range a label
// emitted; short evaluator results are zero-padded to Components.
func (b *PaintBinder) populate(length int, f *tilelabel.SymbolFeature) {
	if b.IsConstant() {
		return
	}
	value := b.Evaluate(f)
	for len(b.data) < length*b.Components {
		for c := 0; c < b.Components; c++ {
			var v float32
			if c < len(value) {
				v = value[c]
			}
			b.data = append(b.data, v)
		}
	}
}

// Bytes serializes the stream in little-endian order.
func (b *PaintBinder) Bytes() []byte {
	buf := make([]byte, len(b.data)*4)
	for i, v := range b.data {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// PaintConfiguration groups the paint binders of one buffer set. Buckets
// without data-driven paint properties carry an empty configuration.
type PaintConfiguration struct {
	Binders []*PaintBinder
}

// NewPaintConfiguration creates a configuration over the given binders.
func NewPaintConfiguration(binders ...*PaintBinder) *PaintConfiguration {
	return &PaintConfiguration{Binders: binders}
}

// PopulatePaintArrays extends every non-constant binder's stream to cover
// length vertices, evaluating each against the feature. Called once per
// packed label so paint streams stay aligned 1:1 with the layout stream.
func (c *PaintConfiguration) PopulatePaintArrays(length int, f *tilelabel.SymbolFeature) {
	for _, b := range c.Binders {
		b.populate(length, f)
	}
}
