package atlas

import (
	"errors"
	"image"
	"testing"
)

var errNoMemory = errors.New("out of texture memory")

// memTexture is a host-memory texture for tests.
type memTexture struct {
	info     TextureInfo
	pix      []byte
	writes   []image.Rectangle
	released int
}

func (t *memTexture) WritePixels(u Upload) error {
	bpp := t.info.Format.BytesPerPixel()
	stride := t.info.Width * bpp
	for y := 0; y < u.Rect.Dy(); y++ {
		off := (u.Rect.Min.Y+y)*stride + u.Rect.Min.X*bpp
		copy(t.pix[off:off+u.Rect.Dx()*bpp], u.Row(y))
	}
	t.writes = append(t.writes, u.Rect)
	return nil
}

func (t *memTexture) Release() { t.released++ }

func (t *memTexture) at(x, y int) byte {
	bpp := t.info.Format.BytesPerPixel()
	return t.pix[(y*t.info.Width+x)*bpp]
}

// memProvider creates memTextures; with limit > 0 it fails once limit
// textures exist.
type memProvider struct {
	textures []*memTexture
	limit    int
}

func newMemProvider() *memProvider { return &memProvider{} }

func (p *memProvider) CreateTexture(info TextureInfo) (Texture, error) {
	if p.limit > 0 && len(p.textures) >= p.limit {
		return nil, errNoMemory
	}
	t := &memTexture{info: info, pix: make([]byte, info.SizeBytes())}
	p.textures = append(p.textures, t)
	return t, nil
}

// evictionLog records evicted plot locators.
type evictionLog struct {
	evicted []PlotLocator
}

func (l *evictionLog) Evict(loc PlotLocator) { l.evicted = append(l.evicted, loc) }

func newTestRecorder(t *testing.T) (*UploadRecorder, *memProvider) {
	t.Helper()
	p := newMemProvider()
	rec, err := NewRecorder(p)
	if err != nil {
		t.Fatalf("NewRecorder() = %v", err)
	}
	return rec, p
}

func newTestAtlas(t *testing.T, format MaskFormat, w, h, pw, ph int, opts ...Option) *DrawAtlas {
	t.Helper()
	a, err := New(format, w, h, pw, ph, NewGenerationCounter(), opts...)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	return a
}

func mustAdd(t *testing.T, a *DrawAtlas, rec Recorder, w, h int) AtlasLocator {
	t.Helper()
	var loc AtlasLocator
	if ec := a.AddRect(rec, w, h, &loc); ec != Succeeded {
		t.Fatalf("AddRect(%d, %d) = %v, want Succeeded", w, h, ec)
	}
	return loc
}

// plotBounds returns the page-space bounds of the plot holding loc.
func plotBounds(a *DrawAtlas, loc AtlasLocator) image.Rectangle {
	p := a.Plot(loc.PageIndex(), loc.PlotIndex())
	return image.Rectangle{Min: p.Origin(), Max: p.Origin().Add(a.PlotSize())}
}

func solid(w, h, bpp int, v byte) []byte {
	b := make([]byte, w*h*bpp)
	for i := range b {
		b[i] = v
	}
	return b
}
