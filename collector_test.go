package tilelabel

import (
	"reflect"
	"testing"
)

// fakeLayer implements LayerStyle with data-driven behavior for tests.
type fakeLayer struct {
	id            string
	textField     string
	textConstant  bool
	iconImage     string
	iconConstant  bool
	fontStack     []string
	transform     TextTransform
	placement     Placement
	filter        func(*SourceFeature) bool
	textByFeature map[int]string
}

func (l *fakeLayer) ID() string          { return l.id }
func (l *fakeLayer) HasTextField() bool  { return l.textField != "" || l.textByFeature != nil }
func (l *fakeLayer) HasIconImage() bool  { return l.iconImage != "" }
func (l *fakeLayer) FontStack() []string { return l.fontStack }
func (l *fakeLayer) Filter(f *SourceFeature) bool {
	if l.filter == nil {
		return true
	}
	return l.filter(f)
}
func (l *fakeLayer) TextField(f *SourceFeature, _ float64) string {
	if l.textByFeature != nil {
		return l.textByFeature[f.Index]
	}
	return l.textField
}
func (l *fakeLayer) TextFieldIsConstant() bool                { return l.textConstant }
func (l *fakeLayer) IconImage(*SourceFeature, float64) string { return l.iconImage }
func (l *fakeLayer) IconImageIsConstant() bool                { return l.iconConstant }
func (l *fakeLayer) TextTransform() TextTransform             { return l.transform }
func (l *fakeLayer) Placement() Placement                     { return l.placement }

func pointFeature(index int, props map[string]any) SourceFeature {
	return SourceFeature{
		Type:       FeaturePoint,
		Geometry:   [][]Point{{Pt(100, 100)}},
		Properties: props,
		Index:      index,
	}
}

func TestCollectorDropsEmptyFeatures(t *testing.T) {
	layer := &fakeLayer{
		id:            "labels",
		fontStack:     []string{"Open Sans Regular"},
		textConstant:  true,
		textByFeature: map[int]string{0: "Road", 1: ""},
	}
	src := []SourceFeature{pointFeature(0, nil), pointFeature(1, nil)}

	c := &Collector{Layer: layer, Zoom: 10}
	got := c.Collect(src, GlyphDependencies{}, IconDependencies{})

	if len(got) != 1 {
		t.Fatalf("Collect() returned %d features, want 1", len(got))
	}
	if got[0].Text != "Road" {
		t.Errorf("feature text = %q, want %q", got[0].Text, "Road")
	}
	for _, f := range got {
		if f.Text == "" && f.Icon == "" {
			t.Error("retained feature has neither text nor icon")
		}
	}
}

func TestCollectorLayerWithoutTextOrIcon(t *testing.T) {
	layer := &fakeLayer{id: "empty"}
	src := []SourceFeature{pointFeature(0, nil)}

	c := &Collector{Layer: layer, Zoom: 3}
	if got := c.Collect(src, GlyphDependencies{}, IconDependencies{}); got != nil {
		t.Errorf("Collect() = %v, want nil for a layer with neither text nor icon", got)
	}
}

func TestCollectorFilter(t *testing.T) {
	layer := &fakeLayer{
		id:           "filtered",
		textField:    "A",
		textConstant: true,
		fontStack:    []string{"Open Sans Regular"},
		filter:       func(f *SourceFeature) bool { return f.Index%2 == 0 },
	}
	src := []SourceFeature{pointFeature(0, nil), pointFeature(1, nil), pointFeature(2, nil)}

	c := &Collector{Layer: layer, Zoom: 3}
	got := c.Collect(src, GlyphDependencies{}, IconDependencies{})
	if len(got) != 2 {
		t.Fatalf("Collect() retained %d features, want 2", len(got))
	}
}

func TestCollectorGlyphDependencies(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		placement Placement
		want      []rune
	}{
		{
			name:      "latin point labels",
			text:      "Ab",
			placement: PlacementPoint,
			want:      []rune{'A', 'b'},
		},
		{
			name:      "distinct codepoints only",
			text:      "aa",
			placement: PlacementPoint,
			want:      []rune{'a'},
		},
		{
			name:      "vertical punctuation for line-placed CJK",
			text:      "永、",
			placement: PlacementLine,
			want:      []rune{'永', '、', '︑'},
		},
		{
			name:      "no vertical substitutes for point-placed CJK",
			text:      "永、",
			placement: PlacementPoint,
			want:      []rune{'永', '、'},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layer := &fakeLayer{
				id:           "glyphs",
				textField:    tt.text,
				textConstant: true,
				fontStack:    []string{"Noto Sans CJK"},
				placement:    tt.placement,
			}
			glyphs := GlyphDependencies{}
			c := &Collector{Layer: layer, Zoom: 7}
			c.Collect([]SourceFeature{pointFeature(0, nil)}, glyphs, IconDependencies{})

			stack := glyphs["Noto Sans CJK"]
			if len(stack) != len(tt.want) {
				t.Fatalf("glyph dependency count = %d, want %d (%v)", len(stack), len(tt.want), stack)
			}
			for _, r := range tt.want {
				if !stack[r] {
					t.Errorf("glyph dependencies missing %q", r)
				}
			}
		})
	}
}

func TestCollectorIconDependencies(t *testing.T) {
	layer := &fakeLayer{id: "icons", iconImage: "airport-15", iconConstant: true}
	icons := IconDependencies{}
	c := &Collector{Layer: layer, Zoom: 5}
	got := c.Collect([]SourceFeature{pointFeature(0, nil)}, GlyphDependencies{}, icons)

	if len(got) != 1 || got[0].Icon != "airport-15" {
		t.Fatalf("Collect() = %+v, want one feature with icon %q", got, "airport-15")
	}
	if !icons["airport-15"] {
		t.Errorf("icon dependencies = %v, want airport-15 recorded", icons)
	}
}

func TestCollectorMergeLines(t *testing.T) {
	layer := &fakeLayer{
		id:           "roads",
		textField:    "Main St",
		textConstant: true,
		fontStack:    []string{"Open Sans Regular"},
		placement:    PlacementLine,
	}
	merged := false
	c := &Collector{
		Layer: layer,
		Zoom:  12,
		MergeLines: func(fs []SymbolFeature) []SymbolFeature {
			merged = true
			return fs
		},
	}
	c.Collect([]SourceFeature{pointFeature(0, nil)}, GlyphDependencies{}, IconDependencies{})
	if !merged {
		t.Error("line-placed layer should invoke the merge step")
	}
}

func TestResolveTokens(t *testing.T) {
	props := map[string]any{
		"name":   "Berlin",
		"ref":    float64(100),
		"ele":    512.5,
		"oneway": true,
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"plain", "Berlin", "Berlin"},
		{"single token", "{name}", "Berlin"},
		{"token with suffix", "{ref} km", "100 km"},
		{"float property", "{ele}m", "512.5m"},
		{"bool property", "{oneway}", "true"},
		{"unknown token", "{missing}!", "!"},
		{"unclosed brace", "a{name", "a{name"},
		{"two tokens", "{name} {ref}", "Berlin 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveTokens(props, tt.template); got != tt.want {
				t.Errorf("ResolveTokens(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestApplyTextTransform(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		transform TextTransform
		want      string
	}{
		{"none", "Main St", TransformNone, "Main St"},
		{"upper", "Main St", TransformUppercase, "MAIN ST"},
		{"lower", "Main St", TransformLowercase, "main st"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyTextTransform(tt.in, tt.transform); got != tt.want {
				t.Errorf("applyTextTransform(%q, %v) = %q, want %q", tt.in, tt.transform, got, tt.want)
			}
		})
	}
}

func TestCollectorPreservesFeatureOrder(t *testing.T) {
	layer := &fakeLayer{
		id:            "ordered",
		textConstant:  true,
		fontStack:     []string{"Open Sans Regular"},
		textByFeature: map[int]string{0: "a", 1: "b", 2: "c"},
	}
	src := []SourceFeature{pointFeature(0, nil), pointFeature(1, nil), pointFeature(2, nil)}
	c := &Collector{Layer: layer, Zoom: 1}
	got := c.Collect(src, GlyphDependencies{}, IconDependencies{})

	var order []string
	for _, f := range got {
		order = append(order, f.Text)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(order, want) {
		t.Errorf("collected order = %v, want %v", order, want)
	}
}
