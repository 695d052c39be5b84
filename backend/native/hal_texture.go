package native

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/atlas"
)

// HALTexture is an atlas page backed by a hal.Texture.
//
// WritePixels and Release may be called from different goroutines; the
// texture is destroyed exactly once.
type HALTexture struct {
	mu sync.Mutex

	halTexture hal.Texture
	provider   *Provider
	info       atlas.TextureInfo
	descriptor hal.TextureDescriptor

	destroyed bool
}

// HAL returns the underlying HAL texture, or nil once released.
func (t *HALTexture) HAL() hal.Texture {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.destroyed {
		return nil
	}
	return t.halTexture
}

// Info returns the atlas description the texture was created from.
func (t *HALTexture) Info() atlas.TextureInfo { return t.info }

// Descriptor returns the HAL descriptor used to create the texture.
func (t *HALTexture) Descriptor() hal.TextureDescriptor { return t.descriptor }

// IsDestroyed reports whether the texture has been released.
func (t *HALTexture) IsDestroyed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.destroyed
}

// WritePixels implements atlas.Texture.
func (t *HALTexture) WritePixels(u atlas.Upload) error {
	if u.Format != t.info.Format {
		return fmt.Errorf("%w: %v into %v", ErrFormatMismatch, u.Format, t.info.Format)
	}
	bounds := image.Rect(0, 0, t.info.Width, t.info.Height)
	if !u.Rect.In(bounds) {
		return fmt.Errorf("%w: %v not in %v", ErrOutOfBounds, u.Rect, bounds)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.destroyed {
		return ErrTextureDestroyed
	}

	dst := &hal.ImageCopyTexture{
		Texture: t.halTexture,
		Origin: hal.Origin3D{
			X: uint32(u.Rect.Min.X), //nolint:gosec // bounds checked above
			Y: uint32(u.Rect.Min.Y), //nolint:gosec // bounds checked above
		},
		Aspect: gputypes.TextureAspectAll,
	}
	layout := &hal.ImageDataLayout{
		BytesPerRow:  uint32(u.RowBytes),  //nolint:gosec // stride of a texture row
		RowsPerImage: uint32(u.Rect.Dy()), //nolint:gosec // bounds checked above
	}
	size := &hal.Extent3D{
		Width:              uint32(u.Rect.Dx()), //nolint:gosec // bounds checked above
		Height:             uint32(u.Rect.Dy()), //nolint:gosec // bounds checked above
		DepthOrArrayLayers: 1,
	}
	if err := t.provider.queue.WriteTexture(dst, u.Pixels, layout, size); err != nil {
		return fmt.Errorf("native: write %v to %q: %w", u.Rect, t.info.Label, err)
	}
	t.provider.uploads.Add(1)
	return nil
}

// Release implements atlas.Texture. It is safe to call more than once.
func (t *HALTexture) Release() {
	t.mu.Lock()
	if t.destroyed {
		t.mu.Unlock()
		return
	}
	t.destroyed = true
	tex := t.halTexture
	t.halTexture = nil
	t.mu.Unlock()

	t.provider.destroy(t, tex)
}
