package tilelabel

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	xlang "golang.org/x/text/language"
)

// GlyphDependencies records, per font stack, the codepoints shaping will
// need. The map is shared across all buckets of a tile so one glyph fetch
// can batch the requests of many layers.
type GlyphDependencies map[string]map[rune]bool

// Add records r as needed for the given font stack.
func (d GlyphDependencies) Add(fontStack string, r rune) {
	stack, ok := d[fontStack]
	if !ok {
		stack = make(map[rune]bool)
		d[fontStack] = stack
	}
	stack[r] = true
}

// IconDependencies records the icon names shaping will need.
type IconDependencies map[string]bool

// LineMergeFunc joins adjacent same-text line features into longer lines.
// The real implementation lives with the shaping collaborator; the collector
// only invokes it for line-placed layers.
type LineMergeFunc func([]SymbolFeature) []SymbolFeature

// Collector scans decoded tile features for one style layer and produces the
// ordered label candidate list plus the glyph and icon dependency sets.
//
// A Collector is single-use per tile parse and is not safe for concurrent
// use; tile parses own their collectors exclusively.
type Collector struct {
	// Layer is the style layer being collected.
	Layer LayerStyle

	// Zoom is the tile zoom level properties are evaluated at.
	Zoom float64

	// MergeLines, when non-nil, is applied to the collected features of
	// line-placed layers to improve label continuity across tile-internal
	// line splits.
	MergeLines LineMergeFunc
}

// Collect walks src in order and returns the retained label candidates.
// Features failing the layer filter are skipped; features that evaluate to
// neither text nor icon are dropped. Glyph and icon dependencies of every
// retained feature are added to glyphs and icons in place.
func (c *Collector) Collect(src []SourceFeature, glyphs GlyphDependencies, icons IconDependencies) []SymbolFeature {
	layer := c.Layer
	hasText := layer.HasTextField() && len(layer.FontStack()) > 0
	hasIcon := layer.HasIconImage()
	if !hasText && !hasIcon {
		return nil
	}

	fontStack := strings.Join(layer.FontStack(), ",")
	verticalEligible := layer.Placement() == PlacementLine

	var features []SymbolFeature
	for i := range src {
		f := &src[i]
		if !layer.Filter(f) {
			continue
		}

		var text string
		if hasText {
			text = layer.TextField(f, c.Zoom)
			if text != "" && layer.TextFieldIsConstant() {
				text = ResolveTokens(f.Properties, text)
			}
			text = applyTextTransform(text, layer.TextTransform())
		}

		var icon string
		if hasIcon {
			icon = layer.IconImage(f, c.Zoom)
			if icon != "" && layer.IconImageIsConstant() {
				icon = ResolveTokens(f.Properties, icon)
			}
		}

		if text == "" && icon == "" {
			continue
		}

		features = append(features, SymbolFeature{
			Text:             text,
			Icon:             icon,
			Geometry:         f.Geometry,
			Type:             f.Type,
			Properties:       f.Properties,
			Index:            f.Index,
			SourceLayerIndex: f.SourceLayerIndex,
			ID:               f.ID,
			HasID:            f.HasID,
		})

		if icon != "" {
			icons[icon] = true
		}
		if text != "" {
			vertical := verticalEligible && AllowsVerticalWriting(text)
			for _, r := range text {
				glyphs.Add(fontStack, r)
				if vertical {
					if v, ok := VerticalPunctuation(r); ok {
						glyphs.Add(fontStack, v)
					}
				}
			}
		}
	}

	if layer.Placement() == PlacementLine && c.MergeLines != nil {
		features = c.MergeLines(features)
	}

	Logger().Debug("collected symbol features",
		"layer", layer.ID(), "features", len(features), "sources", len(src))
	return features
}

// ResolveTokens substitutes {field} references in template with the string
// form of the matching feature property. Unknown fields resolve to the empty
// string; braces without a closing counterpart are kept verbatim.
func ResolveTokens(properties map[string]any, template string) string {
	if !strings.ContainsRune(template, '{') {
		return template
	}
	var b strings.Builder
	b.Grow(len(template))
	for {
		open := strings.IndexByte(template, '{')
		if open < 0 {
			b.WriteString(template)
			break
		}
		closing := strings.IndexByte(template[open:], '}')
		if closing < 0 {
			b.WriteString(template)
			break
		}
		b.WriteString(template[:open])
		name := template[open+1 : open+closing]
		if v, ok := properties[name]; ok {
			b.WriteString(propertyString(v))
		}
		template = template[open+closing+1:]
	}
	return b.String()
}

// propertyString formats a feature property value for token substitution.
func propertyString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		// Trim the decimal point for integral values, matching how tile
		// sources print numeric attributes.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// applyTextTransform applies the layer's case transform.
func applyTextTransform(s string, t TextTransform) string {
	switch t {
	case TransformUppercase:
		return cases.Upper(xlang.Und).String(s)
	case TransformLowercase:
		return cases.Lower(xlang.Und).String(s)
	default:
		return s
	}
}
