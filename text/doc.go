// Package text caches rasterized glyphs in a DrawAtlas.
//
// Fonts are parsed twice: golang.org/x/image/font/sfnt supplies outlines
// and advances, go-text/typesetting supplies HarfBuzz shaping. Glyph masks
// are rasterized with golang.org/x/image/vector and packed into an A8
// atlas with one pixel of padding.
//
// Basic usage:
//
//	f, err := text.ParseFont(goregular.TTF)
//	face, err := text.NewFace(f, 16)
//	glyphs := text.NewGlyphAtlas(a)
//	run, err := glyphs.DrawString(rec, face, "Hello")
//	...
//	err = glyphs.EndFrame(rec)
//
// GlyphAtlas registers itself as the atlas eviction callback, so cached
// locators never outlive the plot they point into.
package text
