package text

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/internal/cache"
)

// GlyphPadding is the border of empty texels kept around each glyph mask.
const GlyphPadding = 1

// RunCacheSize is the number of shaped strings a GlyphAtlas remembers.
const RunCacheSize = 256

type runKey struct {
	font *Font
	size fixed.Int26_6
	text string
}

type glyphKey struct {
	font *Font
	size fixed.Int26_6
	gid  GlyphID
}

// Glyph is a glyph resident in the atlas.
type Glyph struct {
	GID GlyphID

	// Locator addresses the mask in the atlas, padding excluded. It is the
	// zero locator for glyphs without a mask.
	Locator atlas.AtlasLocator

	// Bounds is the mask rectangle relative to the pen position.
	Bounds image.Rectangle

	// Advance is the horizontal advance in pixels.
	Advance float64
}

// Empty reports whether the glyph has no mask (spaces).
func (g Glyph) Empty() bool { return g.Bounds.Empty() }

// PlacedGlyph is a glyph positioned in a run.
type PlacedGlyph struct {
	Glyph

	// X and Y are the pen position relative to the run origin.
	X, Y float64
}

// GlyphAtlas caches glyph masks of any number of faces in an A8 DrawAtlas.
//
// A GlyphAtlas is not safe for concurrent use, like the atlas it wraps.
type GlyphAtlas struct {
	atlas  *atlas.DrawAtlas
	shaper *GoTextShaper
	runs   *cache.Cache[runKey, []ShapedGlyph]

	glyphs map[glyphKey]Glyph
	byPlot map[atlas.PlotLocator][]glyphKey
	bulk   atlas.BulkUsePlotUpdater

	hits, misses, evicted, flushes uint64
}

// NewGlyphAtlas wraps a and registers the cache as its eviction callback.
func NewGlyphAtlas(a *atlas.DrawAtlas) (*GlyphAtlas, error) {
	if a.Format() != atlas.MaskFormatA8 {
		return nil, fmt.Errorf("%w: got %v", ErrWrongFormat, a.Format())
	}
	g := &GlyphAtlas{
		atlas:  a,
		shaper: NewGoTextShaper(),
		runs:   cache.New[runKey, []ShapedGlyph](RunCacheSize),
		glyphs: make(map[glyphKey]Glyph),
		byPlot: make(map[atlas.PlotLocator][]glyphKey),
	}
	a.AddEvictionCallback(g)
	return g, nil
}

// Atlas returns the wrapped atlas.
func (g *GlyphAtlas) Atlas() *atlas.DrawAtlas { return g.atlas }

// Evict implements atlas.PlotEvictionCallback.
func (g *GlyphAtlas) Evict(loc atlas.PlotLocator) {
	for _, k := range g.byPlot[loc] {
		delete(g.glyphs, k)
		g.evicted++
	}
	delete(g.byPlot, loc)
}

// Glyph returns glyph gid of face, rasterizing and uploading it on a miss.
// The glyph's plot is marked as used by the next flush of rec.
//
// When every plot is in use by the pending flush, the pending uploads are
// flushed and placement is retried once. Locators returned before that
// flush may then have been evicted; DrawString handles this.
func (g *GlyphAtlas) Glyph(rec atlas.Recorder, face *Face, gid GlyphID) (Glyph, error) {
	key := glyphKey{font: face.font, size: face.ppem(), gid: gid}
	if gl, ok := g.glyphs[key]; ok && (gl.Empty() || g.atlas.HasID(gl.Locator.PlotLocator())) {
		g.hits++
		g.markUsed(rec, gl)
		return gl, nil
	}
	g.misses++

	mask, err := face.Rasterize(gid)
	if err != nil {
		return Glyph{}, err
	}
	gl := Glyph{GID: gid, Bounds: mask.Bounds(), Advance: mask.Advance}
	if gl.Empty() {
		g.glyphs[key] = gl
		return gl, nil
	}

	w := gl.Bounds.Dx() + 2*GlyphPadding
	h := gl.Bounds.Dy() + 2*GlyphPadding
	if ps := g.atlas.PlotSize(); w > ps.X || h > ps.Y {
		return Glyph{}, fmt.Errorf("%w: %dx%d in %dx%d plots", ErrGlyphTooLarge, w, h, ps.X, ps.Y)
	}
	pixels := padMask(mask.Mask, w, h)

	var loc atlas.AtlasLocator
	code := g.atlas.AddToAtlas(rec, w, h, pixels, &loc)
	if code == atlas.TryAgain {
		if err := g.flush(rec); err != nil {
			return Glyph{}, err
		}
		code = g.atlas.AddToAtlas(rec, w, h, pixels, &loc)
	}
	if code != atlas.Succeeded {
		return Glyph{}, fmt.Errorf("%w: glyph %d: %v", ErrAtlasFull, gid, code)
	}

	loc.InsetSrc(GlyphPadding)
	gl.Locator = loc
	g.glyphs[key] = gl
	g.byPlot[loc.PlotLocator()] = append(g.byPlot[loc.PlotLocator()], key)
	g.markUsed(rec, gl)
	return gl, nil
}

func (g *GlyphAtlas) markUsed(rec atlas.Recorder, gl Glyph) {
	if gl.Empty() {
		return
	}
	g.atlas.SetLastUseToken(gl.Locator, rec.TokenTracker().NextFlushToken())
}

// padMask copies m into the centre of a zeroed w x h buffer.
func padMask(m *image.Alpha, w, h int) []byte {
	pixels := make([]byte, w*h)
	dx := m.Rect.Dx()
	for y := 0; y < m.Rect.Dy(); y++ {
		src := m.Pix[y*m.Stride : y*m.Stride+dx]
		copy(pixels[(y+GlyphPadding)*w+GlyphPadding:], src)
	}
	return pixels
}

// flush submits the pending uploads so that plots referenced only by them
// can be recycled.
func (g *GlyphAtlas) flush(rec atlas.Recorder) error {
	if !g.atlas.RecordUploads(rec) {
		return ErrUploadRefused
	}
	g.flushes++
	if err := rec.Flush(); err != nil {
		return fmt.Errorf("text: flush glyph uploads: %w", err)
	}
	atlas.Logger().Debug("text: flushed to make room", "atlas", g.atlas.Label())
	return nil
}

// DrawString shapes s and makes every glyph resident. If making room
// required a flush part way through, glyphs placed before it may have been
// evicted, so the run is rebuilt once with fresh locators.
func (g *GlyphAtlas) DrawString(rec atlas.Recorder, face *Face, s string) ([]PlacedGlyph, error) {
	shaped := g.runs.GetOrCreate(runKey{font: face.font, size: face.ppem(), text: s}, func() []ShapedGlyph {
		return g.shaper.Shape(s, face)
	})
	for attempt := 0; ; attempt++ {
		start := g.flushes
		run := make([]PlacedGlyph, 0, len(shaped))
		for _, sg := range shaped {
			gl, err := g.Glyph(rec, face, sg.GID)
			if err != nil {
				return nil, err
			}
			run = append(run, PlacedGlyph{Glyph: gl, X: sg.X, Y: sg.Y})
		}
		if g.flushes == start {
			return run, nil
		}
		if attempt > 0 {
			return nil, fmt.Errorf("%w: run of %d glyphs does not fit", ErrAtlasFull, len(shaped))
		}
	}
}

// Touch marks a previously built run as used by the next flush of rec. It
// returns false if any glyph has since been evicted, in which case the run
// must be rebuilt with DrawString.
func (g *GlyphAtlas) Touch(rec atlas.Recorder, run []PlacedGlyph) bool {
	g.bulk.Reset()
	for _, pg := range run {
		if pg.Empty() {
			continue
		}
		if !g.atlas.HasID(pg.Locator.PlotLocator()) {
			return false
		}
		g.bulk.Add(pg.Locator)
	}
	g.atlas.SetLastUseTokenBulk(&g.bulk, rec.TokenTracker().NextFlushToken())
	return true
}

// EndFrame records the frame's uploads, flushes rec, and compacts the atlas.
func (g *GlyphAtlas) EndFrame(rec atlas.Recorder) error {
	if err := g.flush(rec); err != nil {
		return err
	}
	g.atlas.Compact(rec.TokenTracker().NextFlushToken())
	return nil
}

// Render composites run onto dst with its origin on the baseline at
// origin, reading masks from the atlas staging memory.
func (g *GlyphAtlas) Render(dst draw.Image, run []PlacedGlyph, origin image.Point, c color.Color) {
	src := image.NewUniform(c)
	for _, pg := range run {
		if pg.Empty() {
			continue
		}
		mask, ok := g.atlas.PrepForRender(pg.Locator)
		if !ok {
			continue
		}
		pen := origin.Add(image.Pt(int(pg.X+0.5), int(pg.Y+0.5)))
		r := pg.Bounds.Add(pen)
		draw.DrawMask(dst, r, src, image.Point{}, mask, mask.Bounds().Min, draw.Over)
	}
}

// Len returns the number of cached glyphs.
func (g *GlyphAtlas) Len() int { return len(g.glyphs) }

// Stats returns cache hits, misses, and evictions so far.
func (g *GlyphAtlas) Stats() (hits, misses, evicted uint64) {
	return g.hits, g.misses, g.evicted
}
