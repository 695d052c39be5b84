// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import (
	"fmt"
	"image"
	"sync/atomic"
)

// Locator limits.
const (
	// MaxMultitexturePages is the largest number of pages an atlas may use.
	MaxMultitexturePages = 4

	// MaxPlots is the largest number of plots per page.
	MaxPlots = 32
)

const (
	generationBits = 48
	generationMask = 1<<generationBits - 1
	plotIndexShift = generationBits
	pageIndexShift = generationBits + 8
)

// GenerationCounter hands out strictly increasing generation numbers.
// A counter may be shared by several atlases (one per mask format, for
// example), so Next is safe for concurrent use.
type GenerationCounter struct {
	value atomic.Uint64
}

// NewGenerationCounter returns a counter whose first Next value is 1.
func NewGenerationCounter() *GenerationCounter {
	return &GenerationCounter{}
}

// Next returns a new generation, never 0.
func (c *GenerationCounter) Next() uint64 {
	for {
		v := c.value.Add(1) & generationMask
		if v != 0 {
			return v
		}
	}
}

// Current returns the most recently issued generation.
func (c *GenerationCounter) Current() uint64 {
	return c.value.Load() & generationMask
}

// PlotLocator identifies a plot and the generation of its contents.
// The zero value is invalid.
type PlotLocator struct {
	packed uint64
}

// NewPlotLocator packs a page index, plot index and generation.
func NewPlotLocator(pageIndex, plotIndex int, generation uint64) PlotLocator {
	assertf(pageIndex >= 0 && pageIndex < MaxMultitexturePages, "page index %d out of range", pageIndex)
	assertf(plotIndex >= 0 && plotIndex < MaxPlots, "plot index %d out of range", plotIndex)
	assertf(generation <= generationMask, "generation %d overflows", generation)
	return PlotLocator{
		packed: uint64(pageIndex)<<pageIndexShift | //nolint:gosec // bounded by MaxMultitexturePages
			uint64(plotIndex)<<plotIndexShift | //nolint:gosec // bounded by MaxPlots
			generation&generationMask,
	}
}

// IsValid reports whether l refers to a plot.
func (l PlotLocator) IsValid() bool {
	return l.packed != 0
}

// PageIndex returns the page the plot belongs to.
func (l PlotLocator) PageIndex() int {
	return int(l.packed >> pageIndexShift & 0xff)
}

// PlotIndex returns the plot index within its page.
func (l PlotLocator) PlotIndex() int {
	return int(l.packed >> plotIndexShift & 0xff)
}

// Generation returns the plot content generation the locator was issued for.
func (l PlotLocator) Generation() uint64 {
	return l.packed & generationMask
}

// String returns a human-readable form of the locator.
func (l PlotLocator) String() string {
	return fmt.Sprintf("Plot(page=%d plot=%d gen=%d)", l.PageIndex(), l.PlotIndex(), l.Generation())
}

// Rect16 is a compact rectangle in page texture coordinates.
type Rect16 struct {
	Left, Top, Right, Bottom int16
}

// Rect16XYWH builds a Rect16 from a position and size.
func Rect16XYWH(x, y, w, h int) Rect16 {
	return Rect16{
		Left:   int16(x),     //nolint:gosec // atlas dimensions fit in int16
		Top:    int16(y),     //nolint:gosec // atlas dimensions fit in int16
		Right:  int16(x + w), //nolint:gosec // atlas dimensions fit in int16
		Bottom: int16(y + h), //nolint:gosec // atlas dimensions fit in int16
	}
}

// Width returns the rectangle width.
func (r Rect16) Width() int { return int(r.Right) - int(r.Left) }

// Height returns the rectangle height.
func (r Rect16) Height() int { return int(r.Bottom) - int(r.Top) }

// Empty reports whether the rectangle has no area.
func (r Rect16) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Image converts the rectangle to an image.Rectangle.
func (r Rect16) Image() image.Rectangle {
	return image.Rect(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom))
}

// Offset returns r translated by (dx, dy).
func (r Rect16) Offset(dx, dy int) Rect16 {
	return Rect16XYWH(int(r.Left)+dx, int(r.Top)+dy, r.Width(), r.Height())
}

// AtlasLocator is the handle a client keeps for a rectangle placed in the
// atlas. It becomes stale once the plot it points into is evicted; clients
// detect that with DrawAtlas.HasID and re-add their data.
type AtlasLocator struct {
	plot PlotLocator
	rect Rect16
}

// PlotLocator returns the locator of the owning plot.
func (l AtlasLocator) PlotLocator() PlotLocator { return l.plot }

// PageIndex returns the page holding the rectangle.
func (l AtlasLocator) PageIndex() int { return l.plot.PageIndex() }

// PlotIndex returns the plot holding the rectangle.
func (l AtlasLocator) PlotIndex() int { return l.plot.PlotIndex() }

// Generation returns the plot generation the rectangle was placed in.
func (l AtlasLocator) Generation() uint64 { return l.plot.Generation() }

// Rect returns the rectangle in page texture coordinates.
func (l AtlasLocator) Rect() Rect16 { return l.rect }

// TopLeft returns the top-left corner in page texture coordinates.
func (l AtlasLocator) TopLeft() image.Point {
	return image.Point{X: int(l.rect.Left), Y: int(l.rect.Top)}
}

// Width returns the rectangle width.
func (l AtlasLocator) Width() int { return l.rect.Width() }

// Height returns the rectangle height.
func (l AtlasLocator) Height() int { return l.rect.Height() }

// InsetSrc shrinks the rectangle by padding on every side. Glyph clients
// add padding around masks to avoid sampling bleed and sample only the
// interior.
func (l *AtlasLocator) InsetSrc(padding int) {
	assertf(l.rect.Width() >= 2*padding && l.rect.Height() >= 2*padding,
		"inset %d larger than %dx%d rect", padding, l.rect.Width(), l.rect.Height())
	l.rect.Left += int16(padding)   //nolint:gosec // padding bounded by rect size
	l.rect.Top += int16(padding)    //nolint:gosec // padding bounded by rect size
	l.rect.Right -= int16(padding)  //nolint:gosec // padding bounded by rect size
	l.rect.Bottom -= int16(padding) //nolint:gosec // padding bounded by rect size
}

func (l *AtlasLocator) updatePlotLocator(p PlotLocator) { l.plot = p }

func (l *AtlasLocator) updateRect(r Rect16) { l.rect = r }

// String returns a human-readable form of the locator.
func (l AtlasLocator) String() string {
	return fmt.Sprintf("%v %v", l.plot, l.rect.Image())
}
