package raster

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gogpu/atlas"
)

// Texture is a page texture held in host memory.
//
// Texture is safe for concurrent use.
type Texture struct {
	mu       sync.RWMutex
	info     atlas.TextureInfo
	img      draw.Image
	provider *Provider
	released bool
}

func newTexture(p *Provider, info atlas.TextureInfo) *Texture {
	bounds := image.Rect(0, 0, info.Width, info.Height)
	var img draw.Image
	if info.Format == atlas.MaskFormatA8 {
		img = image.NewAlpha(bounds)
	} else {
		img = image.NewRGBA(bounds)
	}
	return &Texture{info: info, img: img, provider: p}
}

// Info returns the texture description.
func (t *Texture) Info() atlas.TextureInfo { return t.info }

// Released reports whether Release has been called.
func (t *Texture) Released() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.released
}

// WritePixels implements atlas.Texture.
func (t *Texture) WritePixels(u atlas.Upload) error {
	if u.Format != t.info.Format {
		return fmt.Errorf("%w: %v into %v", ErrFormatMismatch, u.Format, t.info.Format)
	}

	t.mu.Lock()
	if t.released {
		t.mu.Unlock()
		return atlas.ErrProxyReleased
	}
	if !u.Rect.In(t.img.Bounds()) {
		t.mu.Unlock()
		return fmt.Errorf("%w: %v not in %v", ErrOutOfBounds, u.Rect, t.img.Bounds())
	}
	draw.Copy(t.img, u.Rect.Min, uploadImage(u), u.Rect, draw.Src, nil)
	p := t.provider
	t.mu.Unlock()

	// Stats are updated outside the texture lock; Provider.Close takes the
	// locks in the opposite order.
	if p != nil {
		p.recordUpload(u.Rect.Dx() * u.Rect.Dy() * u.Format.BytesPerPixel())
	}
	return nil
}

// uploadImage views the upload's pixels as an image whose bounds are the
// destination rectangle.
func uploadImage(u atlas.Upload) image.Image {
	if u.Format == atlas.MaskFormatA8 {
		return &image.Alpha{Pix: u.Pixels, Stride: u.RowBytes, Rect: u.Rect}
	}
	return &image.RGBA{Pix: u.Pixels, Stride: u.RowBytes, Rect: u.Rect}
}

// Release implements atlas.Texture.
func (t *Texture) Release() {
	t.mu.Lock()
	if t.released {
		t.mu.Unlock()
		return
	}
	t.released = true
	p := t.provider
	t.provider = nil
	t.mu.Unlock()

	if p != nil {
		p.release(t)
	}
}

// Snapshot returns a copy of the texture contents.
func (t *Texture) Snapshot() *image.RGBA {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := image.NewRGBA(t.img.Bounds())
	draw.Copy(out, image.Point{}, t.img, t.img.Bounds(), draw.Src, nil)
	return out
}

// Preview returns the texture enlarged by an integer scale, using
// nearest-neighbor sampling so texel edges stay visible.
func (t *Texture) Preview(scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	b := t.img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(out, out.Bounds(), t.img, b, draw.Src, nil)
	return out
}

// At returns the first byte of the texel at (x, y): alpha for A8 textures
// and red for RGBA ones.
func (t *Texture) At(x, y int) byte {
	t.mu.RLock()
	defer t.mu.RUnlock()

	switch img := t.img.(type) {
	case *image.Alpha:
		return img.AlphaAt(x, y).A
	case *image.RGBA:
		return img.RGBAAt(x, y).R
	}
	return 0
}
