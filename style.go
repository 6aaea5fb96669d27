package tilelabel

// TextTransform is the case transform a style layer applies to label text
// after token resolution.
type TextTransform uint8

// Text transform modes.
const (
	// TransformNone leaves the text unchanged.
	TransformNone TextTransform = iota
	// TransformUppercase maps the text to upper case.
	TransformUppercase
	// TransformLowercase maps the text to lower case.
	TransformLowercase
)

// Placement selects how a layer anchors its labels.
type Placement uint8

// Placement modes.
const (
	// PlacementPoint anchors one label per feature point.
	PlacementPoint Placement = iota
	// PlacementLine repeats labels along line geometry and allows the
	// external merge step to join split lines across tile boundaries.
	PlacementLine
)

// LayerStyle is the narrow view of a style layer the collector consumes.
// Property evaluation is feature- and zoom-dependent; implementations come
// from the style/expression layer, which is outside this package.
type LayerStyle interface {
	// ID returns the style layer identifier.
	ID() string

	// HasTextField reports whether the layer can produce text labels at all
	// (a text field and a font stack are configured).
	HasTextField() bool

	// HasIconImage reports whether the layer can produce icon labels.
	HasIconImage() bool

	// Filter reports whether the feature passes the layer's filter
	// predicate.
	Filter(f *SourceFeature) bool

	// TextField evaluates the text-field layout property for f at zoom,
	// before token resolution and case transforms.
	TextField(f *SourceFeature, zoom float64) string

	// TextFieldIsConstant reports whether the text field is
	// feature-constant. Token substitution against feature properties only
	// applies to feature-constant values.
	TextFieldIsConstant() bool

	// IconImage evaluates the icon-image layout property for f at zoom.
	IconImage(f *SourceFeature, zoom float64) string

	// IconImageIsConstant reports whether the icon image is
	// feature-constant.
	IconImageIsConstant() bool

	// FontStack returns the layer's font stack, most preferred first.
	FontStack() []string

	// TextTransform returns the case transform applied to label text.
	TextTransform() TextTransform

	// Placement returns the layer's label placement mode.
	Placement() Placement
}

// SizeProperty is the zoom/feature dependence view of a size layout property
// (text size or icon size) used by size interpolation. Implementations come
// from the style layer.
type SizeProperty interface {
	// IsZoomConstant reports whether the property ignores zoom.
	IsZoomConstant() bool

	// IsFeatureConstant reports whether the property ignores the feature.
	IsFeatureConstant() bool

	// Evaluate returns the property value at zoom for a feature-constant
	// property. For feature-dependent properties the result is unspecified.
	Evaluate(zoom float64) float64

	// StopZoomLevels returns the declared stop zoom levels in ascending
	// order. Empty for zoom-constant properties.
	StopZoomLevels() []float64
}
