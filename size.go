package tilelabel

// SizeKind selects the render-time interpolation strategy for a size
// property, derived from its zoom/feature dependence.
type SizeKind uint8

// Size interpolation strategies.
const (
	// SizeConstant: zoom-constant and feature-constant. The size is
	// precomputed once at tileZoom+1.
	SizeConstant SizeKind = iota
	// SizeSource: zoom-constant but feature-dependent. Evaluated per
	// feature at render time; nothing is precomputed.
	SizeSource
	// SizeCamera: zoom-dependent and feature-constant. The covering stop
	// range and the sizes at both bracketing stops are precomputed.
	SizeCamera
	// SizeComposite: zoom- and feature-dependent. Only the covering stop
	// range is precomputed; per-feature values come from the size vertex.
	SizeComposite
)

// String returns a human-readable name for the size kind.
func (k SizeKind) String() string {
	switch k {
	case SizeConstant:
		return "Constant"
	case SizeSource:
		return "Source"
	case SizeCamera:
		return "Camera"
	case SizeComposite:
		return "Composite"
	default:
		return "Unknown"
	}
}

// SizeData is the precomputed interpolation descriptor the render-time size
// evaluator consumes. Which fields are meaningful depends on Kind.
type SizeData struct {
	Kind SizeKind

	// LayoutSize is the size at tileZoom+1. Set for SizeConstant.
	LayoutSize float64

	// CoveringZoomRange is the tightest declared stop pair bracketing the
	// evaluation zoom, clamped to the stop list bounds. Set for SizeCamera
	// and SizeComposite.
	CoveringZoomRange [2]float64

	// CoveringStopValues are the sizes evaluated at both covering stops.
	// Set for SizeCamera.
	CoveringStopValues [2]float64
}

// GetSizeData precomputes the interpolation descriptor for prop at tileZoom.
// Labels are evaluated half a zoom level past the tile's own zoom (tiles are
// rendered from zoom to zoom+1), so precomputed sizes use tileZoom+1.
func GetSizeData(tileZoom float64, prop SizeProperty) SizeData {
	if prop.IsZoomConstant() {
		if !prop.IsFeatureConstant() {
			return SizeData{Kind: SizeSource}
		}
		return SizeData{
			Kind:       SizeConstant,
			LayoutSize: prop.Evaluate(tileZoom + 1),
		}
	}

	lower, upper := coveringZoomStops(prop.StopZoomLevels(), tileZoom)
	if !prop.IsFeatureConstant() {
		return SizeData{
			Kind:              SizeComposite,
			CoveringZoomRange: [2]float64{lower, upper},
		}
	}
	return SizeData{
		Kind:              SizeCamera,
		CoveringZoomRange: [2]float64{lower, upper},
		CoveringStopValues: [2]float64{
			prop.Evaluate(lower),
			prop.Evaluate(upper),
		},
	}
}

// coveringZoomStops returns the tightest pair of declared stop levels
// bracketing (tileZoom, tileZoom+1], clamped to the stop list bounds. The
// returned pair lets the render-time evaluator interpolate without
// re-reading the full stop list.
func coveringZoomStops(levels []float64, tileZoom float64) (lower, upper float64) {
	if len(levels) == 0 {
		return tileZoom, tileZoom
	}

	lo := 0
	for lo < len(levels) && levels[lo] <= tileZoom {
		lo++
	}
	lo = max(0, lo-1)

	hi := lo
	for hi < len(levels) && levels[hi] < tileZoom+1 {
		hi++
	}
	hi = min(len(levels)-1, hi)

	return levels[lo], levels[hi]
}
