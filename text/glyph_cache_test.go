package text

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/backend/raster"
)

func newTestGlyphAtlas(t *testing.T, size, plot int) (*GlyphAtlas, *atlas.UploadRecorder) {
	t.Helper()
	rec, err := atlas.NewRecorder(raster.NewProvider(raster.DefaultConfig()))
	if err != nil {
		t.Fatal(err)
	}
	a, err := atlas.New(atlas.MaskFormatA8, size, size, plot, plot, atlas.NewGenerationCounter(),
		atlas.WithLabel("glyphs"))
	if err != nil {
		t.Fatal(err)
	}
	g, err := NewGlyphAtlas(a)
	if err != nil {
		t.Fatal(err)
	}
	return g, rec
}

func TestNewGlyphAtlas_WrongFormat(t *testing.T) {
	a, err := atlas.New(atlas.MaskFormatARGB, 256, 256, 128, 128, atlas.NewGenerationCounter())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewGlyphAtlas(a); !errors.Is(err, ErrWrongFormat) {
		t.Errorf("NewGlyphAtlas(ARGB) error = %v, want %v", err, ErrWrongFormat)
	}
}

func TestGlyphAtlas_DrawString(t *testing.T) {
	g, rec := newTestGlyphAtlas(t, 256, 128)
	face := testFace(t, 16)

	run, err := g.DrawString(rec, face, "Hello world")
	if err != nil {
		t.Fatalf("DrawString() error = %v", err)
	}
	if len(run) != 11 {
		t.Fatalf("len(run) = %d, want 11", len(run))
	}

	// H e l o space w r d are distinct; l and o repeat.
	hits, misses, evicted := g.Stats()
	if misses != 8 || hits != 3 || evicted != 0 {
		t.Errorf("Stats() = %d hits, %d misses, %d evicted, want 3, 8, 0", hits, misses, evicted)
	}
	if g.Len() != 8 {
		t.Errorf("Len() = %d, want 8", g.Len())
	}

	space := run[5]
	if !space.Empty() || space.Advance <= 0 {
		t.Errorf("space glyph = %+v, want empty with an advance", space.Glyph)
	}
	for i, pg := range run {
		if pg.Empty() {
			continue
		}
		if !g.Atlas().HasID(pg.Locator.PlotLocator()) {
			t.Errorf("glyph %d has a stale locator", i)
		}
		if pg.Locator.Width() != pg.Bounds.Dx() || pg.Locator.Height() != pg.Bounds.Dy() {
			t.Errorf("glyph %d locator %v does not match bounds %v", i, pg.Locator, pg.Bounds)
		}
	}
	if err := g.EndFrame(rec); err != nil {
		t.Fatalf("EndFrame() error = %v", err)
	}
	if rec.Uploaded() == 0 {
		t.Error("EndFrame() should upload the new glyphs")
	}
}

func TestGlyphAtlas_Render(t *testing.T) {
	g, rec := newTestGlyphAtlas(t, 256, 128)
	face := testFace(t, 64)

	run, err := g.DrawString(rec, face, "I")
	if err != nil {
		t.Fatal(err)
	}
	dst := image.NewRGBA(image.Rect(0, 0, 96, 96))
	g.Render(dst, run, image.Pt(10, 80), color.Black)

	b := run[0].Bounds.Add(image.Pt(10, 80))
	mid := dst.RGBAAt((b.Min.X+b.Max.X)/2, (b.Min.Y+b.Max.Y)/2)
	if mid.A < 200 {
		t.Errorf("centre of I alpha = %d, want near 255", mid.A)
	}
	if corner := dst.RGBAAt(0, 0); corner.A != 0 {
		t.Errorf("pixel (0,0) alpha = %d, want 0", corner.A)
	}
}

// A single-plot atlas holds one large glyph at a time. Asking for a second
// one in the same frame forces a flush so the first can be evicted.
func TestGlyphAtlas_FlushesToMakeRoom(t *testing.T) {
	g, rec := newTestGlyphAtlas(t, 32, 32)
	face := testFace(t, 24)

	w, err := g.DrawString(rec, face, "W")
	if err != nil {
		t.Fatalf("DrawString(W) error = %v", err)
	}
	m, err := g.DrawString(rec, face, "M")
	if err != nil {
		t.Fatalf("DrawString(M) error = %v", err)
	}

	if _, _, evicted := g.Stats(); evicted != 1 {
		t.Errorf("evicted = %d, want 1", evicted)
	}
	if g.Atlas().HasID(w[0].Locator.PlotLocator()) {
		t.Error("W locator should be stale after eviction")
	}
	if !g.Atlas().HasID(m[0].Locator.PlotLocator()) {
		t.Error("M locator should be live")
	}
	if g.Touch(rec, w) {
		t.Error("Touch() on an evicted run should report false")
	}
	if !g.Touch(rec, m) {
		t.Error("Touch() on a live run should report true")
	}
}

func TestGlyphAtlas_RunTooLarge(t *testing.T) {
	g, rec := newTestGlyphAtlas(t, 32, 32)
	face := testFace(t, 24)

	if _, err := g.DrawString(rec, face, "WM"); !errors.Is(err, ErrAtlasFull) {
		t.Errorf("DrawString(WM) error = %v, want %v", err, ErrAtlasFull)
	}
}

func TestGlyphAtlas_GlyphTooLarge(t *testing.T) {
	g, rec := newTestGlyphAtlas(t, 32, 32)
	face := testFace(t, 96)

	if _, err := g.DrawString(rec, face, "W"); !errors.Is(err, ErrGlyphTooLarge) {
		t.Errorf("DrawString() error = %v, want %v", err, ErrGlyphTooLarge)
	}
}

func TestGlyphAtlas_SurvivesFrames(t *testing.T) {
	g, rec := newTestGlyphAtlas(t, 256, 128)
	face := testFace(t, 16)

	run, err := g.DrawString(rec, face, "frame")
	if err != nil {
		t.Fatal(err)
	}
	for frame := range 10 {
		if !g.Touch(rec, run) {
			t.Fatalf("frame %d: run evicted while in use", frame)
		}
		if err := g.EndFrame(rec); err != nil {
			t.Fatalf("frame %d: EndFrame() error = %v", frame, err)
		}
	}
	if g.Atlas().NumActivePages() != 1 {
		t.Errorf("NumActivePages() = %d, want 1", g.Atlas().NumActivePages())
	}
}

func TestGlyphAtlas_ReusesShapedRuns(t *testing.T) {
	g, rec := newTestGlyphAtlas(t, 256, 128)
	face := testFace(t, 16)

	for range 3 {
		if _, err := g.DrawString(rec, face, "cached"); err != nil {
			t.Fatalf("DrawString() error = %v", err)
		}
	}
	if _, err := g.DrawString(rec, testFace(t, 20), "cached"); err != nil {
		t.Fatalf("DrawString() error = %v", err)
	}

	s := g.runs.Stats()
	if s.Misses != 2 || s.Hits != 2 || s.Len != 2 {
		t.Errorf("run cache = %+v, want 2 misses, 2 hits, 2 entries", s)
	}
}
