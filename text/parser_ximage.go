package text

import (
	"bytes"
	"fmt"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// GlyphID is a glyph index within a font.
type GlyphID uint16

// Font is a parsed TrueType or OpenType font. It is safe for concurrent use.
type Font struct {
	sfnt   *opentype.Font
	shaper *gotext.Font
	name   string
}

// ParseFont parses TTF or OTF data.
func ParseFont(data []byte) (*Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font for shaping: %w", err)
	}

	name, err := f.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		name = ""
	}
	return &Font{sfnt: f, shaper: face.Font, name: name}, nil
}

// Name returns the font family name, or "" if the font has none.
func (f *Font) Name() string { return f.name }

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int { return f.sfnt.NumGlyphs() }

// GlyphIndex returns the glyph for r, or 0 (.notdef) if the font has none.
func (f *Font) GlyphIndex(r rune) GlyphID {
	idx, err := f.sfnt.GlyphIndex(nil, r)
	if err != nil {
		return 0
	}
	return GlyphID(idx)
}
