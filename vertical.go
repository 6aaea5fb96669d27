package tilelabel

import (
	"github.com/go-text/typesetting/language"
	"golang.org/x/text/unicode/bidi"
)

// WritingMode is a bitmask of the glyph layout orientations a label was
// shaped for.
type WritingMode uint8

// Writing mode bits.
const (
	// WritingModeHorizontal lays glyphs out left to right.
	WritingModeHorizontal WritingMode = 1 << iota
	// WritingModeVertical lays glyphs out top to bottom. Only line-placed
	// labels in vertical-capable scripts use this mode.
	WritingModeVertical
)

// AllowsVerticalWriting reports whether any rune of s belongs to a script
// that has an upright vertical orientation (CJK and related scripts). Labels
// in these scripts get a vertical shaping variant when placed along lines.
func AllowsVerticalWriting(s string) bool {
	for _, r := range s {
		switch language.LookupScript(r) {
		case language.Han, language.Hangul, language.Hiragana, language.Katakana, language.Bopomofo, language.Yi:
			return true
		}
	}
	return false
}

// TextDirection reports whether s is right-to-left at the paragraph level.
// The shaper uses this to pick glyph ordering; the collector records it so
// the writing-mode bitmask stays consistent with shaping.
func TextDirection(s string) bidi.Direction {
	p := bidi.Paragraph{}
	if _, err := p.SetString(s, bidi.DefaultDirection(bidi.Neutral)); err != nil {
		return bidi.LeftToRight
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return bidi.LeftToRight
	}
	run := ordering.Run(0)
	if run.Direction() == bidi.RightToLeft {
		return bidi.RightToLeft
	}
	return bidi.LeftToRight
}

// verticalPunctuation maps punctuation to its vertical presentation form.
// Only characters with a dedicated vertical form appear here; everything
// else keeps its horizontal glyph when laid out vertically.
var verticalPunctuation = map[rune]rune{
	'!':      '︕',
	'(':      '︵',
	')':      '︶',
	',':      '︐',
	'-':      '︲',
	'.':      '・',
	':':      '︓',
	';':      '︔',
	'<':      '︿',
	'>':      '﹀',
	'?':      '︖',
	'[':      '﹇',
	']':      '﹈',
	'_':      '︳',
	'{':      '︷',
	'|':      '―',
	'}':      '︸',
	'–':      '︲',
	'—':      '︱',
	'‘':      '﹃',
	'’':      '﹄',
	'“':      '﹁',
	'”':      '﹂',
	'…':      '︙',
	'‧':      '・',
	'、':      '︑',
	'。':      '︒',
	'〈':      '︿',
	'〉':      '﹀',
	'《':      '︽',
	'》':      '︾',
	'「':      '﹁',
	'」':      '﹂',
	'『':      '﹃',
	'』':      '﹄',
	'【':      '︻',
	'】':      '︼',
	'〔':      '︹',
	'〕':      '︺',
	'〖':      '︗',
	'〗':      '︘',
	'！':      '︕',
	'（':      '︵',
	'）':      '︶',
	'，':      '︐',
	'－':      '︲',
	'．':      '・',
	'：':      '︓',
	'；':      '︔',
	'＜':      '︿',
	'＞':      '﹀',
	'？':      '︖',
	'［':      '﹇',
	'］':      '﹈',
	'＿':      '︳',
	'｛':      '︷',
	'｜':      '―',
	'｝':      '︸',
}

// VerticalPunctuation returns the vertical presentation form of r and
// whether one exists.
func VerticalPunctuation(r rune) (rune, bool) {
	v, ok := verticalPunctuation[r]
	return v, ok
}
