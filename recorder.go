package atlas

import (
	"errors"
	"fmt"
	"image"
	"sync/atomic"

	"github.com/gogpu/gputypes"
)

// TextureInfo describes a page texture to allocate.
type TextureInfo struct {
	// Label is an optional debug label.
	Label string

	// Width and Height are the texture dimensions in pixels.
	Width  int
	Height int

	// Format is the pixel format of the atlas.
	Format MaskFormat

	// Usage is the GPU usage of the texture.
	Usage gputypes.TextureUsage

	// Storage requests a storage-bindable texture (compute rasterized atlases).
	Storage bool

	// Mipmapped is always false for atlases; kept for providers that share
	// descriptors with other textures.
	Mipmapped bool

	// Protected requests protected memory when the recorder is protected.
	Protected bool
}

// DefaultAtlasTextureUsage is the usage of atlas page textures.
const DefaultAtlasTextureUsage = gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding

// Validate checks that the texture can be created.
func (i TextureInfo) Validate() error {
	if i.Width <= 0 || i.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidTextureInfo, i.Width, i.Height)
	}
	if i.Width > MaxAtlasDim || i.Height > MaxAtlasDim {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrInvalidTextureInfo, i.Width, i.Height, MaxAtlasDim)
	}
	return nil
}

// SizeBytes returns the memory the texture occupies.
func (i TextureInfo) SizeBytes() uint64 {
	return uint64(i.Width) * uint64(i.Height) * uint64(i.Format.BytesPerPixel()) //nolint:gosec // validated positive
}

// Upload is one sub-rectangle of pixel data destined for a page texture.
type Upload struct {
	// Pixels holds the rows, RowBytes apart; the first byte is the top-left
	// pixel of Rect.
	Pixels []byte

	// RowBytes is the stride between rows of Pixels.
	RowBytes int

	// Rect is the destination rectangle in texture coordinates.
	Rect image.Rectangle

	// Format is the pixel format of Pixels.
	Format MaskFormat
}

// Row returns the pixel bytes of row y (0-based within Rect).
func (u Upload) Row(y int) []byte {
	start := y * u.RowBytes
	return u.Pixels[start : start+u.Rect.Dx()*u.Format.BytesPerPixel()]
}

// Texture is a GPU (or host) texture created by a TextureProvider.
type Texture interface {
	// WritePixels copies an upload into the texture.
	WritePixels(u Upload) error

	// Release frees the texture. It is called exactly once.
	Release()
}

// TextureProvider allocates page textures.
type TextureProvider interface {
	CreateTexture(info TextureInfo) (Texture, error)
}

// TextureProxy is a reference-counted handle to a page texture. The atlas
// holds one reference per active page; recorded uploads hold another until
// they execute, so a page deactivated mid-frame keeps its texture alive
// until the GPU work referencing it has been submitted.
type TextureProxy struct {
	info TextureInfo
	tex  atomic.Pointer[textureHolder]
	refs atomic.Int32
}

type textureHolder struct{ t Texture }

// NewTextureProxy allocates a texture from provider and wraps it in a proxy
// holding one reference.
func NewTextureProxy(provider TextureProvider, info TextureInfo) (*TextureProxy, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}
	tex, err := provider.CreateTexture(info)
	if err != nil {
		return nil, fmt.Errorf("atlas: create texture %q: %w", info.Label, err)
	}
	p := &TextureProxy{info: info}
	p.tex.Store(&textureHolder{t: tex})
	p.refs.Store(1)
	return p, nil
}

// Info returns the texture description.
func (p *TextureProxy) Info() TextureInfo { return p.info }

// Texture returns the underlying texture, or nil once released.
func (p *TextureProxy) Texture() Texture {
	if h := p.tex.Load(); h != nil {
		return h.t
	}
	return nil
}

// Ref adds a reference and returns p.
func (p *TextureProxy) Ref() *TextureProxy {
	p.refs.Add(1)
	return p
}

// Unref drops a reference, releasing the texture with the last one.
func (p *TextureProxy) Unref() {
	if p.refs.Add(-1) != 0 {
		return
	}
	if h := p.tex.Swap(nil); h != nil {
		h.t.Release()
	}
}

// RefCount returns the current number of references.
func (p *TextureProxy) RefCount() int {
	return int(p.refs.Load())
}

// Released reports whether the texture has been freed.
func (p *TextureProxy) Released() bool {
	return p.tex.Load() == nil
}

func (p *TextureProxy) write(u Upload) error {
	tex := p.Texture()
	if tex == nil {
		return ErrProxyReleased
	}
	return tex.WritePixels(u)
}

// Recorder is the side of the rendering pipeline the atlas talks to: it
// allocates textures, tracks flush tokens, and records uploads to be
// executed with the next flush.
type Recorder interface {
	// Provider returns the provider used to allocate page textures.
	Provider() TextureProvider

	// TokenTracker returns the recorder's flush token tracker.
	TokenTracker() *TokenTracker

	// Protected reports whether textures must use protected memory.
	Protected() bool

	// RecordUpload queues pixels for proxy. It returns false if the upload
	// could not be recorded.
	RecordUpload(proxy *TextureProxy, u Upload) bool

	// Flush executes the recorded uploads and issues a new flush token.
	Flush() error
}

type pendingUpload struct {
	proxy  *TextureProxy
	upload Upload
}

// UploadRecorder is the default Recorder. Uploads are copied when recorded and
// written to their textures on Flush.
type UploadRecorder struct {
	provider  TextureProvider
	tokens    TokenTracker
	protected bool
	pending   []pendingUpload
	uploaded  uint64
}

// NewRecorder creates an UploadRecorder backed by provider.
func NewRecorder(provider TextureProvider) (*UploadRecorder, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	return &UploadRecorder{provider: provider}, nil
}

// Provider implements Recorder.
func (q *UploadRecorder) Provider() TextureProvider { return q.provider }

// TokenTracker implements Recorder.
func (q *UploadRecorder) TokenTracker() *TokenTracker { return &q.tokens }

// Protected implements Recorder.
func (q *UploadRecorder) Protected() bool { return q.protected }

// SetProtected sets whether new textures use protected memory.
func (q *UploadRecorder) SetProtected(protected bool) { q.protected = protected }

// RecordUpload implements Recorder. The pixels are copied into a tightly
// packed buffer, so the caller may reuse its staging memory immediately.
func (q *UploadRecorder) RecordUpload(proxy *TextureProxy, u Upload) bool {
	if proxy == nil || proxy.Released() || u.Rect.Empty() {
		return false
	}
	bpp := u.Format.BytesPerPixel()
	rowBytes := u.Rect.Dx() * bpp
	if u.RowBytes < rowBytes || len(u.Pixels) < (u.Rect.Dy()-1)*u.RowBytes+rowBytes {
		return false
	}

	packed := make([]byte, rowBytes*u.Rect.Dy())
	for y := 0; y < u.Rect.Dy(); y++ {
		copy(packed[y*rowBytes:(y+1)*rowBytes], u.Row(y))
	}

	q.pending = append(q.pending, pendingUpload{
		proxy: proxy.Ref(),
		upload: Upload{
			Pixels:   packed,
			RowBytes: rowBytes,
			Rect:     u.Rect,
			Format:   u.Format,
		},
	})
	return true
}

// Pending returns the number of recorded uploads not yet flushed.
func (q *UploadRecorder) Pending() int { return len(q.pending) }

// Uploaded returns the number of uploads executed so far.
func (q *UploadRecorder) Uploaded() uint64 { return q.uploaded }

// Flush implements Recorder. It writes every recorded upload to its texture, drops the references
// held for them, and issues a new flush token. Upload failures are joined
// and returned; the flush token advances regardless.
func (q *UploadRecorder) Flush() error {
	var errs []error
	for i := range q.pending {
		p := &q.pending[i]
		if err := p.proxy.write(p.upload); err != nil {
			errs = append(errs, fmt.Errorf("atlas: upload %v to %q: %w", p.upload.Rect, p.proxy.info.Label, err))
		} else {
			q.uploaded++
		}
		p.proxy.Unref()
		p.proxy = nil
	}
	q.pending = q.pending[:0]
	token := q.tokens.IssueFlushToken()
	Logger().Debug("atlas: flush", "token", uint64(token), "uploads", q.uploaded)
	return errors.Join(errs...)
}

// storageTextureUsage is added to pages of atlases created with
// WithStorageTextures.
const storageTextureUsage = gputypes.TextureUsageStorageBinding
