package text

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// GlyphMask is a rasterized glyph.
type GlyphMask struct {
	// Mask holds coverage. Its bounds are relative to the pen position on
	// the baseline, y down. Nil for glyphs without an outline (spaces).
	Mask *image.Alpha

	// Advance is the horizontal advance in pixels.
	Advance float64
}

// Bounds returns the mask bounds, or the empty rectangle.
func (g GlyphMask) Bounds() image.Rectangle {
	if g.Mask == nil {
		return image.Rectangle{}
	}
	return g.Mask.Rect
}

// Rasterize renders glyph gid of the face into an alpha mask.
func (f *Face) Rasterize(gid GlyphID) (GlyphMask, error) {
	var buf sfnt.Buffer
	ppem := f.ppem()

	advance, err := f.font.sfnt.GlyphAdvance(&buf, sfnt.GlyphIndex(gid), ppem, font.HintingNone)
	if err != nil {
		return GlyphMask{}, fmt.Errorf("text: advance of glyph %d: %w", gid, err)
	}
	segments, err := f.font.sfnt.LoadGlyph(&buf, sfnt.GlyphIndex(gid), ppem, nil)
	if err != nil {
		return GlyphMask{}, fmt.Errorf("text: load glyph %d: %w", gid, err)
	}
	g := GlyphMask{Advance: fixedToFloat(advance)}
	if len(segments) == 0 {
		return g, nil
	}

	b := segments.Bounds()
	r := image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil())
	if r.Empty() {
		return g, nil
	}

	// vector.Rasterizer only covers the positive quadrant.
	off := fixed.Point26_6{X: -fixed.I(r.Min.X), Y: -fixed.I(r.Min.Y)}
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X+off.X) / 64, float32(p.Y+off.Y) / 64
	}

	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.DrawOp = draw.Src
	for i, s := range segments {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if i > 0 {
				z.ClosePath()
			}
			z.MoveTo(pt(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			z.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(s.Args[0])
			x, y := pt(s.Args[1])
			z.QuadTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(s.Args[0])
			c2x, c2y := pt(s.Args[1])
			x, y := pt(s.Args[2])
			z.CubeTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	mask.Rect = r
	g.Mask = mask
	return g, nil
}
