package text

import (
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/text/unicode/norm"
)

// ShapedGlyph is a positioned glyph produced by shaping.
type ShapedGlyph struct {
	// GID is the glyph to draw.
	GID GlyphID

	// Cluster is the index of the first rune of the glyph's cluster in the
	// normalized text.
	Cluster int

	// X and Y are the pen position for the glyph, in pixels, relative to the
	// start of the run. Y grows down.
	X, Y float64

	// XAdvance is the horizontal advance in pixels.
	XAdvance float64
}

// GoTextShaper shapes text using go-text/typesetting's HarfBuzz
// implementation: ligatures, kerning, and right-to-left scripts.
//
// GoTextShaper is safe for concurrent use. HarfbuzzShaper instances are not,
// so they are pooled.
type GoTextShaper struct {
	shaperPool sync.Pool
}

// NewGoTextShaper creates a GoTextShaper.
func NewGoTextShaper() *GoTextShaper {
	return &GoTextShaper{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
	}
}

// Shape converts text into positioned glyphs. Text is normalized to NFC
// first; the run direction follows the first strong character.
func (s *GoTextShaper) Shape(text string, face *Face) []ShapedGlyph {
	if text == "" || face == nil {
		return nil
	}

	runes := []rune(norm.NFC.String(text))
	dir := paragraphDirection(runes)

	// font.Face is not safe for concurrent use; it is cheap to create.
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      font.NewFace(face.font.shaper),
		Size:      face.ppem(),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.shaperPool.Put(hb)

	return convertGlyphs(output.Glyphs)
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// convertGlyphs converts go-text output to ShapedGlyphs, advancing the pen
// left to right in output order.
func convertGlyphs(glyphs []shaping.Glyph) []ShapedGlyph {
	if len(glyphs) == 0 {
		return nil
	}

	result := make([]ShapedGlyph, len(glyphs))
	var x float64
	for i, g := range glyphs {
		adv := fixedToFloat(g.XAdvance)
		result[i] = ShapedGlyph{
			GID:      GlyphID(uint16(g.GlyphID)), //nolint:gosec // sfnt glyph indices are 16-bit
			Cluster:  g.TextIndex(),
			X:        x + fixedToFloat(g.XOffset),
			Y:        -fixedToFloat(g.YOffset),
			XAdvance: adv,
		}
		x += adv
	}
	return result
}
