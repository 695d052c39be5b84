// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import (
	"fmt"
	"image"
	"math/bits"
	"sync/atomic"
)

// Compaction thresholds, counted in flushes in which the atlas was used.
const (
	// plotRecentlyUsedCount is the number of flushes after which an unused
	// plot is no longer considered in use.
	plotRecentlyUsedCount = 32

	// plotUsedCountBeforeEvict is the number of idle flushes after which a
	// plot on a sparsely used last page may be moved to an earlier page.
	plotUsedCountBeforeEvict = 8

	// atlasRecentlyUsedCount is the number of idle flushes after which the
	// whole atlas is considered unused and compacted anyway.
	atlasRecentlyUsedCount = 128
)

var nextAtlasID atomic.Uint32

// newAtlasID returns a process-unique atlas id, never 0.
func newAtlasID() uint32 {
	for {
		if id := nextAtlasID.Add(1); id != 0 {
			return id
		}
	}
}

// DrawAtlas is a multi-page texture cache for small images such as glyph
// masks and path coverage. Each page texture is divided into a grid of
// plots; rectangles are packed into plots and whole plots are recycled in
// least-recently-used order.
//
// Page textures are allocated lazily from the Recorder's TextureProvider,
// up to one page without multitexturing or MaxMultitexturePages with it.
// A plot is only reused once its last-use token is older than the
// recorder's next flush token, so uploads never overwrite texels that
// pending GPU work still samples. When every plot is pinned by the pending
// flush, AddRect returns TryAgain and the caller must flush and retry.
//
// DrawAtlas is not safe for concurrent use.
type DrawAtlas struct {
	format                MaskFormat
	bpp                   int
	width, height         int
	plotWidth, plotHeight int
	numPlotsX, numPlotsY  int
	numPlots              int
	storage               bool
	label                 string

	atlasID         uint32
	counter         *GenerationCounter
	atlasGeneration uint64

	prevFlushToken      Token
	flushesSinceLastUse int

	maxPages       int
	numActivePages int
	pages          [MaxMultitexturePages]page

	callbacks []PlotEvictionCallback
}

// New creates an atlas of width x height pages divided into plotWidth x
// plotHeight plots. gen is shared with every atlas whose locators must not
// collide, usually all atlases of a device.
func New(format MaskFormat, width, height, plotWidth, plotHeight int, gen *GenerationCounter, opts ...Option) (*DrawAtlas, error) {
	if gen == nil {
		return nil, &ConfigError{Field: "GenerationCounter", Reason: "must not be nil"}
	}
	if format != MaskFormatA8 && format != MaskFormatARGB {
		return nil, &ConfigError{Field: "Format", Reason: fmt.Sprintf("unsupported format %v", format)}
	}
	if !isPow2(width) || !isPow2(height) {
		return nil, &ConfigError{Field: "Dimensions", Reason: fmt.Sprintf("%dx%d is not a power of two", width, height)}
	}
	if width > MaxAtlasDim || height > MaxAtlasDim {
		return nil, &ConfigError{Field: "Dimensions", Reason: fmt.Sprintf("%dx%d exceeds %d", width, height, MaxAtlasDim)}
	}
	if plotWidth <= 0 || plotHeight <= 0 || width%plotWidth != 0 || height%plotHeight != 0 {
		return nil, &ConfigError{Field: "PlotSize", Reason: fmt.Sprintf("%dx%d does not divide %dx%d", plotWidth, plotHeight, width, height)}
	}
	numPlotsX, numPlotsY := width/plotWidth, height/plotHeight
	if numPlotsX*numPlotsY > MaxPlots {
		return nil, &ConfigError{Field: "PlotSize", Reason: fmt.Sprintf("%d plots exceed %d", numPlotsX*numPlotsY, MaxPlots)}
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	a := &DrawAtlas{
		format:          format,
		bpp:             format.BytesPerPixel(),
		width:           width,
		height:          height,
		plotWidth:       plotWidth,
		plotHeight:      plotHeight,
		numPlotsX:       numPlotsX,
		numPlotsY:       numPlotsY,
		numPlots:        numPlotsX * numPlotsY,
		storage:         o.storage,
		label:           o.label,
		atlasID:         newAtlasID(),
		counter:         gen,
		atlasGeneration: gen.Next(),
		maxPages:        1,
		callbacks:       o.callbacks,
	}
	if o.multitexturing {
		a.maxPages = MaxMultitexturePages
	}
	a.createPages()

	Logger().Debug("atlas: created",
		"label", a.label, "id", a.atlasID, "format", format.String(),
		"size", fmt.Sprintf("%dx%d", width, height),
		"plot", fmt.Sprintf("%dx%d", plotWidth, plotHeight),
		"maxPages", a.maxPages)
	return a, nil
}

func isPow2(v int) bool {
	return v > 0 && bits.OnesCount(uint(v)) == 1
}

// createPages builds every page's plots. Plots are created from the
// bottom-right corner and each is pushed to the head of the MRU list, so
// the initial most recently used plot is the top-left one.
func (a *DrawAtlas) createPages() {
	for i := 0; i < a.maxPages; i++ {
		pg := &a.pages[i]
		pg.list.plots = make([]*Plot, a.numPlots)
		pg.list.head, pg.list.tail = -1, -1
		for y, r := a.numPlotsY-1, 0; y >= 0; y, r = y-1, r+1 {
			for x, c := a.numPlotsX-1, 0; x >= 0; x, c = x-1, c+1 {
				plotIndex := r*a.numPlotsX + c
				p := newPlot(i, plotIndex, a.counter, x, y, a.plotWidth, a.plotHeight, a.format)
				pg.list.plots[plotIndex] = p
				pg.list.addToHead(p)
			}
		}
	}
}

// AddEvictionCallback registers cb to be notified of plot evictions.
func (a *DrawAtlas) AddEvictionCallback(cb PlotEvictionCallback) {
	if cb != nil {
		a.callbacks = append(a.callbacks, cb)
	}
}

// processEvictionAndResetRects notifies the eviction callbacks for a
// non-empty plot and then clears it.
func (a *DrawAtlas) processEvictionAndResetRects(p *Plot, freeData bool) {
	if !p.Empty() {
		loc := p.Locator()
		for _, cb := range a.callbacks {
			cb.Evict(loc)
		}
		a.atlasGeneration = a.counter.Next()
		Logger().Debug("atlas: evict plot", "label", a.label, "plot", loc.String())
	}
	p.resetRects(freeData)
}

func (a *DrawAtlas) makeMRU(p *Plot, pageIndex int) {
	a.pages[pageIndex].list.moveToHead(p)
}

func (a *DrawAtlas) updatePlot(p *Plot, loc *AtlasLocator) {
	a.makeMRU(p, p.pageIndex)
	loc.updatePlotLocator(p.Locator())
	a.validate(*loc)
}

// addRectToPage tries the page's plots in MRU order.
func (a *DrawAtlas) addRectToPage(pageIndex, width, height int, loc *AtlasLocator) bool {
	assertf(a.pages[pageIndex].proxy != nil, "page %d has no texture", pageIndex)

	placed := false
	a.pages[pageIndex].list.each(func(p *Plot) bool {
		if p.addRect(width, height, loc) {
			a.updatePlot(p, loc)
			placed = true
			return false
		}
		return true
	})
	return placed
}

// AddRect reserves a width x height rectangle and stores its position in
// loc. loc is modified only when the result is Succeeded.
//
// Placement is tried in order: free space in an active page (lowest page
// first), then a new page if fewer than MaxPages are active, then the least
// recently used plot of each page once all pages are active, provided the
// plot is not referenced by the pending flush. Zero-area rectangles
// succeed without consuming space.
func (a *DrawAtlas) AddRect(rec Recorder, width, height int, loc *AtlasLocator) ErrorCode {
	if width > a.plotWidth || height > a.plotHeight || width < 0 || height < 0 {
		return Error
	}
	if rec == nil {
		return Error
	}

	// Zero-sized rects are allowed so inverse fills can carry a locator,
	// but they never enter a packer.
	if width == 0 || height == 0 {
		if a.numActivePages == 0 && !a.activateNewPage(rec) {
			return Error
		}
		loc.updateRect(Rect16XYWH(0, 0, 0, 0))
		loc.updatePlotLocator(a.pages[0].list.front().Locator())
		return Succeeded
	}

	// Lower pages first, so the highest page drains and can be released.
	for i := 0; i < a.numActivePages; i++ {
		if a.addRectToPage(i, width, height, loc) {
			return Succeeded
		}
	}

	if a.numActivePages == a.maxPages {
		// Only recycle queued plots once every page is active, to maximize
		// reuse.
		next := rec.TokenTracker().NextFlushToken()
		for i := 0; i < a.numActivePages; i++ {
			p := a.pages[i].list.back()
			if p.LastUseToken() < next {
				a.processEvictionAndResetRects(p, false)
				ok := p.addRect(width, height, loc)
				assertf(ok, "rect %dx%d did not fit an emptied plot", width, height)
				a.updatePlot(p, loc)
				return Succeeded
			}
		}
	} else {
		if !a.activateNewPage(rec) {
			return Error
		}
		if a.addRectToPage(a.numActivePages-1, width, height, loc) {
			return Succeeded
		}
		return Error
	}

	if a.numActivePages == 0 {
		return Error
	}

	// Every plot is referenced by the pending flush.
	return TryAgain
}

// AddToAtlas reserves space like AddRect and copies pixels into it. pixels
// holds height tightly packed rows of width*bpp bytes.
func (a *DrawAtlas) AddToAtlas(rec Recorder, width, height int, pixels []byte, loc *AtlasLocator) ErrorCode {
	if width > 0 && height > 0 && len(pixels) < width*height*a.bpp {
		return Error
	}
	var next AtlasLocator
	ec := a.AddRect(rec, width, height, &next)
	if ec != Succeeded {
		return ec
	}
	if !next.rect.Empty() {
		p := a.findPlot(next)
		p.copySubImage(next, pixels, width*a.bpp)
	}
	*loc = next
	return Succeeded
}

func (a *DrawAtlas) findPlot(loc AtlasLocator) *Plot {
	assertf(a.HasID(loc.PlotLocator()), "stale locator %v", loc)
	return a.pages[loc.PageIndex()].list.plots[loc.PlotIndex()]
}

// PrepForRender returns a copy of the staged pixels of loc, for drawing on
// the CPU. The image bounds are loc's rectangle in page coordinates: an
// *image.Alpha for A8 atlases and an *image.RGBA otherwise.
func (a *DrawAtlas) PrepForRender(loc AtlasLocator) (image.Image, bool) {
	if !a.HasID(loc.PlotLocator()) {
		return nil, false
	}
	p := a.findPlot(loc)
	bounds := loc.rect.Image()

	var pix []byte
	var stride int
	var img image.Image
	switch a.format {
	case MaskFormatA8:
		m := image.NewAlpha(bounds)
		pix, stride, img = m.Pix, m.Stride, m
	default:
		m := image.NewRGBA(bounds)
		pix, stride, img = m.Pix, m.Stride, m
	}
	if p.data == nil || bounds.Empty() {
		return img, true
	}

	origin := p.Origin()
	plotStride := a.bpp * a.plotWidth
	left := (bounds.Min.X - origin.X) * a.bpp
	n := bounds.Dx() * a.bpp
	for y := 0; y < bounds.Dy(); y++ {
		src := (bounds.Min.Y-origin.Y+y)*plotStride + left
		copy(pix[y*stride:y*stride+n], p.data[src:src+n])
	}
	return img, true
}

// HasID reports whether loc still refers to live contents: its page is
// active and its plot has not been evicted since loc was issued.
func (a *DrawAtlas) HasID(loc PlotLocator) bool {
	if !loc.IsValid() {
		return false
	}
	plotIndex, pageIndex := loc.PlotIndex(), loc.PageIndex()
	if plotIndex >= a.numPlots || pageIndex >= a.numActivePages {
		return false
	}
	return a.pages[pageIndex].list.plots[plotIndex].GenID() == loc.Generation()
}

// SetLastUseToken marks the plot holding loc as used by the work stamped
// with token and makes it the page's most recently used plot.
func (a *DrawAtlas) SetLastUseToken(loc AtlasLocator, token Token) {
	assertf(a.HasID(loc.PlotLocator()), "stale locator %v", loc)
	pageIndex := loc.PageIndex()
	p := a.pages[pageIndex].list.plots[loc.PlotIndex()]
	a.makeMRU(p, pageIndex)
	p.setLastUseToken(token)
}

// SetLastUseTokenBulk stamps every plot collected by u. Plots on pages
// deactivated since they were added are skipped.
func (a *DrawAtlas) SetLastUseTokenBulk(u *BulkUsePlotUpdater, token Token) {
	for _, pd := range u.plots {
		if pd.pageIndex >= a.numActivePages {
			continue
		}
		p := a.pages[pd.pageIndex].list.plots[pd.plotIndex]
		a.makeMRU(p, pd.pageIndex)
		p.setLastUseToken(token)
	}
}

// RecordUploads hands the dirty region of every plot to rec. It returns
// false if rec refused an upload.
func (a *DrawAtlas) RecordUploads(rec Recorder) bool {
	if rec == nil {
		return false
	}
	ok := true
	for i := 0; i < a.numActivePages && ok; i++ {
		proxy := a.pages[i].proxy
		a.pages[i].list.each(func(p *Plot) bool {
			pixels, dst := p.prepareForUpload()
			if dst.Empty() {
				return true
			}
			if !rec.RecordUpload(proxy, Upload{
				Pixels:   pixels,
				RowBytes: a.bpp * a.plotWidth,
				Rect:     dst,
				Format:   a.format,
			}) {
				ok = false
				return false
			}
			return true
		})
	}
	return ok
}

// activateNewPage allocates the texture of the next page.
func (a *DrawAtlas) activateNewPage(rec Recorder) bool {
	assertf(a.numActivePages < a.maxPages, "all %d pages active", a.maxPages)
	assertf(a.pages[a.numActivePages].proxy == nil, "page %d already has a texture", a.numActivePages)

	usage := DefaultAtlasTextureUsage
	if a.storage {
		usage |= storageTextureUsage
	}
	info := TextureInfo{
		Label:     fmt.Sprintf("%s[%d]", a.label, a.numActivePages),
		Width:     a.width,
		Height:    a.height,
		Format:    a.format,
		Usage:     usage,
		Storage:   a.storage,
		Protected: rec.Protected(),
	}
	proxy, err := NewTextureProxy(rec.Provider(), info)
	if err != nil {
		Logger().Warn("atlas: page allocation failed", "label", info.Label, "err", err)
		return false
	}
	a.pages[a.numActivePages].proxy = proxy
	a.numActivePages++
	Logger().Debug("atlas: activated page", "label", a.label, "page", a.numActivePages-1)
	return true
}

// deactivateLastPage evicts every plot of the highest active page, frees
// their staging buffers and drops the page texture.
func (a *DrawAtlas) deactivateLastPage() {
	assertf(a.numActivePages > 0, "no active page")
	last := a.numActivePages - 1
	pg := &a.pages[last]

	pg.list.reset()
	for r := 0; r < a.numPlotsY; r++ {
		for c := 0; c < a.numPlotsX; c++ {
			p := pg.list.plots[r*a.numPlotsX+c]
			a.processEvictionAndResetRects(p, true)
			p.resetFlushesSinceLastUsed()
			pg.list.addToHead(p)
		}
	}

	pg.proxy.Unref()
	pg.proxy = nil
	a.numActivePages--
	Logger().Debug("atlas: deactivated page", "label", a.label, "page", last)
}

// Compact ages plots and releases the highest page when it is no longer
// needed. Call it after every flush with the recorder's next flush token.
//
// Compaction only runs when the atlas was used since the previous call, or
// has been idle for a long time, so that a briefly idle atlas (a blinking
// cursor) is not emptied. Plots on the last page that have aged out are
// evicted; if the last page is sparsely used and earlier pages have aged
// plots, its remaining plots are evicted so their contents get re-added to
// the earlier pages. A last page with no recently used plot is released.
func (a *DrawAtlas) Compact(startTokenForNextFlush Token) {
	if a.numActivePages < 1 {
		a.prevFlushToken = startTokenForNextFlush
		return
	}

	usedThisFlush := false
	for i := 0; i < a.numActivePages; i++ {
		a.pages[i].list.each(func(p *Plot) bool {
			if p.LastUseToken().InInterval(a.prevFlushToken, startTokenForNextFlush) {
				p.resetFlushesSinceLastUsed()
				usedThisFlush = true
			}
			return true
		})
	}

	if usedThisFlush {
		a.flushesSinceLastUse = 0
	} else {
		a.flushesSinceLastUse++
	}

	if usedThisFlush || a.flushesSinceLastUse > atlasRecentlyUsedCount {
		var available []*Plot
		last := a.numActivePages - 1

		// Idle counts only advance on flushes that used the atlas.
		for i := 0; i < last; i++ {
			a.pages[i].list.each(func(p *Plot) bool {
				if !p.LastUseToken().InInterval(a.prevFlushToken, startTokenForNextFlush) {
					p.incFlushesSinceLastUsed()
				}
				if p.FlushesSinceLastUsed() > plotRecentlyUsedCount {
					available = append(available, p)
				}
				return true
			})
		}

		usedPlots := 0
		a.pages[last].list.each(func(p *Plot) bool {
			if !p.LastUseToken().InInterval(a.prevFlushToken, startTokenForNextFlush) {
				p.incFlushesSinceLastUsed()
			}
			if p.FlushesSinceLastUsed() <= plotRecentlyUsedCount {
				usedPlots++
			} else if p.LastUseToken() != InvalidToken {
				a.processEvictionAndResetRects(p, false)
			}
			return true
		})

		// Move a sparsely used last page's contents down.
		if len(available) > 0 && usedPlots > 0 && usedPlots <= a.numPlots/4 {
			a.pages[last].list.each(func(p *Plot) bool {
				flushes := p.FlushesSinceLastUsed()
				if plotUsedCountBeforeEvict <= flushes && flushes <= plotRecentlyUsedCount {
					if len(available) > 0 {
						a.processEvictionAndResetRects(p, true)
						a.processEvictionAndResetRects(available[len(available)-1], false)
						available = available[:len(available)-1]
						usedPlots--
					}
					if usedPlots == 0 || len(available) == 0 {
						return false
					}
				}
				return true
			})
		}

		if usedPlots == 0 {
			a.deactivateLastPage()
			a.flushesSinceLastUse = 0
		}
	}

	a.prevFlushToken = startTokenForNextFlush
}

// FreeGPUResources releases pages from the highest down, stopping at the
// first page with a plot used between the previous compaction and token.
func (a *DrawAtlas) FreeGPUResources(token Token) {
	for i := a.numActivePages - 1; i >= 0; i-- {
		inUse := false
		a.pages[i].list.each(func(p *Plot) bool {
			if p.LastUseToken().InInterval(a.prevFlushToken, token) {
				inUse = true
				return false
			}
			return true
		})
		if inUse {
			return
		}
		a.deactivateLastPage()
	}
}

// EvictAllPlots evicts every plot of every active page and frees their
// staging buffers. Page textures stay allocated.
func (a *DrawAtlas) EvictAllPlots() {
	for i := 0; i < a.numActivePages; i++ {
		a.pages[i].list.each(func(p *Plot) bool {
			a.processEvictionAndResetRects(p, true)
			return true
		})
	}
}

// MarkUsedPlotsAsFull closes every non-empty plot to new rectangles.
// Renderers that cannot upload into a texture already sampled by recorded
// work call it at the end of a frame.
func (a *DrawAtlas) MarkUsedPlotsAsFull() {
	for i := 0; i < a.numActivePages; i++ {
		a.pages[i].list.each(func(p *Plot) bool {
			p.markFullIfUsed()
			return true
		})
	}
}

// validate checks that loc points at the plot covering its rectangle.
func (a *DrawAtlas) validate(loc AtlasLocator) {
	if !debugChecks {
		return
	}
	plotX := int(loc.rect.Left) / a.plotWidth
	plotY := int(loc.rect.Top) / a.plotHeight
	want := (a.numPlotsY-plotY-1)*a.numPlotsX + (a.numPlotsX - plotX - 1)
	assertf(loc.PlotIndex() == want, "locator %v plot index %d, want %d", loc, loc.PlotIndex(), want)
}

// NumActivePages returns the number of pages with an allocated texture.
func (a *DrawAtlas) NumActivePages() int { return a.numActivePages }

// MaxPages returns the page limit.
func (a *DrawAtlas) MaxPages() int { return a.maxPages }

// NumPlots returns the number of plots per page.
func (a *DrawAtlas) NumPlots() int { return a.numPlots }

// NumAllocatedPlots returns the number of active plots holding a staging
// buffer.
func (a *DrawAtlas) NumAllocatedPlots() int {
	return a.countPlots(func(p *Plot) bool { return p.HasAllocation() })
}

// NumNonEmptyPlots returns the number of active plots holding rectangles.
func (a *DrawAtlas) NumNonEmptyPlots() int {
	return a.countPlots(func(p *Plot) bool { return !p.Empty() })
}

func (a *DrawAtlas) countPlots(pred func(*Plot) bool) int {
	n := 0
	for i := 0; i < a.numActivePages; i++ {
		for _, p := range a.pages[i].plots() {
			if pred(p) {
				n++
			}
		}
	}
	return n
}

// Proxy returns the texture of page i, or nil if the page is inactive.
func (a *DrawAtlas) Proxy(i int) *TextureProxy {
	if i < 0 || i >= a.numActivePages {
		return nil
	}
	return a.pages[i].proxy
}

// Proxies returns the textures of the active pages.
func (a *DrawAtlas) Proxies() []*TextureProxy {
	out := make([]*TextureProxy, a.numActivePages)
	for i := range out {
		out[i] = a.pages[i].proxy
	}
	return out
}

// AtlasID returns the process-unique id of the atlas.
func (a *DrawAtlas) AtlasID() uint32 { return a.atlasID }

// AtlasGeneration changes whenever a non-empty plot is evicted, so clients
// can detect that any of their locators may have gone stale.
func (a *DrawAtlas) AtlasGeneration() uint64 { return a.atlasGeneration }

// PlotSize returns the plot dimensions.
func (a *DrawAtlas) PlotSize() image.Point {
	return image.Point{X: a.plotWidth, Y: a.plotHeight}
}

// Dimensions returns the page texture dimensions.
func (a *DrawAtlas) Dimensions() image.Point {
	return image.Point{X: a.width, Y: a.height}
}

// Format returns the pixel format of the atlas.
func (a *DrawAtlas) Format() MaskFormat { return a.format }

// Label returns the debug label.
func (a *DrawAtlas) Label() string { return a.label }

// Plot returns plot index of page, for inspection.
func (a *DrawAtlas) Plot(page, index int) *Plot {
	if page < 0 || page >= a.maxPages || index < 0 || index >= a.numPlots {
		return nil
	}
	return a.pages[page].list.plots[index]
}
