// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import (
	"fmt"
	"image"

	"github.com/gogpu/atlas/internal/rectpack"
)

// Plot is a fixed-size cell of a page texture. Rectangles are packed into a
// plot until it fills up; a plot is then recycled as a whole once nothing
// pending references it.
//
// Pixel data is staged in a host buffer and uploaded lazily: only the
// region touched since the last upload is sent.
type Plot struct {
	pageIndex int
	plotIndex int
	counter   *GenerationCounter

	genID   uint64
	locator PlotLocator

	// Offset of the plot within the page, in plot units.
	x, y int

	width, height int
	format        MaskFormat
	bpp           int

	packer *rectpack.Skyline

	data  []byte
	dirty image.Rectangle

	lastUse              Token
	flushesSinceLastUsed int
	full                 bool

	// MRU list links, as plot indices within the page; -1 terminates.
	prev, next int
}

func newPlot(pageIndex, plotIndex int, counter *GenerationCounter, x, y, width, height int, format MaskFormat) *Plot {
	p := &Plot{
		pageIndex: pageIndex,
		plotIndex: plotIndex,
		counter:   counter,
		genID:     counter.Next(),
		x:         x,
		y:         y,
		width:     width,
		height:    height,
		format:    format,
		bpp:       format.BytesPerPixel(),
		packer:    rectpack.NewSkyline(width, height),
		prev:      -1,
		next:      -1,
	}
	p.locator = NewPlotLocator(pageIndex, plotIndex, p.genID)
	return p
}

// PageIndex returns the page the plot belongs to.
func (p *Plot) PageIndex() int { return p.pageIndex }

// PlotIndex returns the plot index within its page.
func (p *Plot) PlotIndex() int { return p.plotIndex }

// GenID returns the current content generation.
func (p *Plot) GenID() uint64 { return p.genID }

// Locator returns the plot locator for the current generation.
func (p *Plot) Locator() PlotLocator { return p.locator }

// LastUseToken returns the flush token of the most recent use.
func (p *Plot) LastUseToken() Token { return p.lastUse }

// FlushesSinceLastUsed returns how many compactions passed without a use.
func (p *Plot) FlushesSinceLastUsed() int { return p.flushesSinceLastUsed }

// Full reports whether the plot has been closed to new rectangles.
func (p *Plot) Full() bool { return p.full }

// Empty reports whether no rectangle is allocated in the plot.
func (p *Plot) Empty() bool { return p.packer.Empty() }

// HasAllocation reports whether the plot holds a staging buffer.
func (p *Plot) HasAllocation() bool { return p.data != nil }

// Dirty returns the region modified since the last upload, in plot
// coordinates.
func (p *Plot) Dirty() image.Rectangle { return p.dirty }

// Origin returns the top-left of the plot in page coordinates.
func (p *Plot) Origin() image.Point {
	return image.Point{X: p.x * p.width, Y: p.y * p.height}
}

func (p *Plot) setLastUseToken(t Token) { p.lastUse = t }

func (p *Plot) resetFlushesSinceLastUsed() { p.flushesSinceLastUsed = 0 }

func (p *Plot) incFlushesSinceLastUsed() { p.flushesSinceLastUsed++ }

// addRect reserves a width x height rectangle and writes its page
// coordinates into loc.
func (p *Plot) addRect(width, height int, loc *AtlasLocator) bool {
	assertf(width <= p.width && height <= p.height, "rect %dx%d larger than plot", width, height)
	if p.full {
		return false
	}

	pos, ok := p.packer.Add(width, height)
	if !ok {
		return false
	}

	r := image.Rect(pos.X, pos.Y, pos.X+width, pos.Y+height)
	p.dirty = p.dirty.Union(r)

	origin := p.Origin()
	loc.updatePlotLocator(p.locator)
	loc.updateRect(Rect16XYWH(origin.X+pos.X, origin.Y+pos.Y, width, height))
	return true
}

// copySubImage writes pixels for a previously added rectangle into the
// staging buffer, allocating it on first use. src holds height rows of
// rowBytes each.
func (p *Plot) copySubImage(loc AtlasLocator, src []byte, rowBytes int) {
	origin := p.Origin()
	left := int(loc.rect.Left) - origin.X
	top := int(loc.rect.Top) - origin.Y
	width, height := loc.Width(), loc.Height()
	assertf(left >= 0 && top >= 0 && left+width <= p.width && top+height <= p.height,
		"locator %v outside plot %d", loc, p.plotIndex)

	if p.data == nil {
		p.data = make([]byte, p.bpp*p.width*p.height)
	}

	stride := p.bpp * p.width
	n := width * p.bpp
	dst := p.data[top*stride+left*p.bpp:]
	for y := 0; y < height; y++ {
		copy(dst[y*stride:y*stride+n], src[y*rowBytes:y*rowBytes+n])
	}
}

// prepareForUpload returns the dirty region of the staging buffer and its
// destination in page coordinates, then clears the dirty region. The left
// and right edges are widened so that every row starts and ends on a 4-byte
// boundary, which some GPU upload paths require.
func (p *Plot) prepareForUpload() ([]byte, image.Rectangle) {
	if p.data == nil || p.dirty.Empty() {
		return nil, image.Rectangle{}
	}

	clearBits := 0x3 / p.bpp
	r := p.dirty
	r.Min.X &^= clearBits
	r.Max.X = (r.Max.X + clearBits) &^ clearBits
	assertf(r.Max.X <= p.width, "aligned dirty rect %v exceeds plot width %d", r, p.width)

	stride := p.bpp * p.width
	start := r.Min.Y*stride + r.Min.X*p.bpp
	p.dirty = image.Rectangle{}
	return p.data[start:], r.Add(p.Origin())
}

// resetRects empties the plot and starts a new generation. Locators issued
// before the reset no longer match.
func (p *Plot) resetRects(freeData bool) {
	p.packer.Reset()
	p.genID = p.counter.Next()
	p.locator = NewPlotLocator(p.pageIndex, p.plotIndex, p.genID)
	p.lastUse = InvalidToken

	if p.data != nil {
		if freeData {
			p.data = nil
		} else {
			clear(p.data)
		}
	}
	p.dirty = image.Rectangle{}
	p.full = false
}

// markFullIfUsed closes a non-empty plot to further rectangles.
func (p *Plot) markFullIfUsed() {
	p.full = !p.Empty()
}

// String returns a human-readable form of the plot.
func (p *Plot) String() string {
	return fmt.Sprintf("Plot{page=%d index=%d gen=%d lastUse=%d idle=%d}",
		p.pageIndex, p.plotIndex, p.genID, uint64(p.lastUse), p.flushesSinceLastUsed)
}
