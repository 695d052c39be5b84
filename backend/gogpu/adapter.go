package gogpu

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/backend"
)

// destroyer is implemented by gogpu textures that own GPU memory.
type destroyer interface {
	Destroy()
}

// Provider implements atlas.TextureProvider on a gpucontext.TextureCreator.
//
// Thread Safety: Provider is safe for concurrent use. Each Texture
// serializes its own uploads.
type Provider struct {
	creator gpucontext.TextureCreator

	mu      sync.Mutex
	live    int
	created uint64
}

var _ atlas.TextureProvider = (*Provider)(nil)

// NewProvider creates a provider on creator.
func NewProvider(creator gpucontext.TextureCreator) (*Provider, error) {
	if creator == nil {
		return nil, ErrNilCreator
	}
	return &Provider{creator: creator}, nil
}

// CreateTexture implements atlas.TextureProvider. The texture starts
// transparent black.
func (p *Provider) CreateTexture(info atlas.TextureInfo) (atlas.Texture, error) {
	if info.Width <= 0 || info.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, info.Width, info.Height)
	}
	pixels := make([]byte, info.Width*info.Height*4)
	gpuTex, err := p.creator.NewTextureFromRGBA(info.Width, info.Height, pixels)
	if err != nil {
		return nil, fmt.Errorf("gogpu: create texture %q: %w", info.Label, err)
	}
	if gpuTex.Width() != info.Width || gpuTex.Height() != info.Height {
		destroy(gpuTex)
		return nil, fmt.Errorf("%w: creator returned %dx%d for %dx%d", ErrInvalidDimensions,
			gpuTex.Width(), gpuTex.Height(), info.Width, info.Height)
	}

	t := &Texture{gpu: gpuTex, info: info, provider: p}
	switch tex := gpuTex.(type) {
	case gpucontext.TextureRegionUpdater:
		t.region = tex
	case gpucontext.TextureUpdater:
		// Whole-texture updates need a host copy to patch regions into.
		t.full = tex
		t.shadow = pixels
	default:
		destroy(gpuTex)
		return nil, fmt.Errorf("%w: %T", ErrNotUpdatable, gpuTex)
	}

	p.mu.Lock()
	p.live++
	p.created++
	p.mu.Unlock()
	return t, nil
}

// Live returns the number of textures not yet released.
func (p *Provider) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live
}

// Created returns the number of textures created so far.
func (p *Provider) Created() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created
}

func (p *Provider) released() {
	p.mu.Lock()
	p.live--
	p.mu.Unlock()
}

func destroy(t gpucontext.Texture) {
	if d, ok := t.(destroyer); ok {
		d.Destroy()
	}
}

// Texture is an atlas page held by a gogpu renderer.
type Texture struct {
	mu sync.Mutex

	gpu      gpucontext.Texture
	info     atlas.TextureInfo
	provider *Provider

	region gpucontext.TextureRegionUpdater
	full   gpucontext.TextureUpdater
	shadow []byte

	released bool
}

// GPU returns the renderer texture, for use with a gpucontext.TextureDrawer.
func (t *Texture) GPU() gpucontext.Texture { return t.gpu }

// WritePixels implements atlas.Texture.
func (t *Texture) WritePixels(u atlas.Upload) error {
	bounds := image.Rect(0, 0, t.info.Width, t.info.Height)
	if !u.Rect.In(bounds) {
		return fmt.Errorf("%w: %v not in %v", ErrOutOfBounds, u.Rect, bounds)
	}
	rgba := expandRGBA(u)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.released {
		return ErrTextureReleased
	}

	if t.region != nil {
		r := u.Rect
		return t.region.UpdateRegion(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), rgba)
	}

	stride := t.info.Width * 4
	rowBytes := u.Rect.Dx() * 4
	for y := 0; y < u.Rect.Dy(); y++ {
		dst := (u.Rect.Min.Y+y)*stride + u.Rect.Min.X*4
		copy(t.shadow[dst:dst+rowBytes], rgba[y*rowBytes:(y+1)*rowBytes])
	}
	return t.full.UpdateData(t.shadow)
}

// Release implements atlas.Texture.
func (t *Texture) Release() {
	t.mu.Lock()
	if t.released {
		t.mu.Unlock()
		return
	}
	t.released = true
	t.shadow = nil
	t.mu.Unlock()

	destroy(t.gpu)
	t.provider.released()
}

// expandRGBA returns the upload as densely packed RGBA rows.
func expandRGBA(u atlas.Upload) []byte {
	w, h := u.Rect.Dx(), u.Rect.Dy()
	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		row := u.Row(y)
		dst := out[y*w*4 : (y+1)*w*4]
		if u.Format == atlas.MaskFormatA8 {
			for x, a := range row {
				dst[x*4], dst[x*4+1], dst[x*4+2], dst[x*4+3] = a, a, a, a
			}
			continue
		}
		copy(dst, row)
	}
	return out
}

// PageGap is the horizontal spacing DrawPages leaves between pages.
const PageGap = 8

// DrawPages draws every active page of a left to right starting at (x, y).
// It is meant for debug overlays; pages not created by a Provider are
// skipped.
func DrawPages(drawer gpucontext.TextureDrawer, a *atlas.DrawAtlas, x, y float32) error {
	for _, proxy := range a.Proxies() {
		if proxy == nil {
			continue
		}
		tex, ok := proxy.Texture().(*Texture)
		if !ok {
			continue
		}
		if err := drawer.DrawTexture(tex.gpu, x, y); err != nil {
			return fmt.Errorf("gogpu: draw %q: %w", proxy.Info().Label, err)
		}
		x += float32(tex.info.Width + PageGap)
	}
	return nil
}

// Register makes a provider on creator available as backend.BackendGoGPU.
func Register(creator gpucontext.TextureCreator) error {
	p, err := NewProvider(creator)
	if err != nil {
		return err
	}
	backend.Register(backend.BackendGoGPU, func() (atlas.TextureProvider, error) { return p, nil })
	return nil
}
