package native

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/backend"
)

// Device is the part of hal.Device the provider uses.
type Device interface {
	CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error)
	DestroyTexture(texture hal.Texture)
	CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error)
	DestroyShaderModule(module hal.ShaderModule)
}

// Queue is the part of hal.Queue the provider uses.
type Queue interface {
	WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D) error
}

var (
	_ Device = hal.Device(nil)
	_ Queue  = hal.Queue(nil)
)

// Provider implements atlas.TextureProvider on a HAL device.
type Provider struct {
	device Device
	queue  Queue

	mu       sync.Mutex
	textures map[*HALTexture]struct{}
	created  uint64

	uploads atomic.Uint64
}

var _ atlas.TextureProvider = (*Provider)(nil)

// NewProvider creates a provider that allocates textures on device and
// uploads pixels through queue.
func NewProvider(device Device, queue Queue) (*Provider, error) {
	if device == nil {
		return nil, ErrNilHALDevice
	}
	if queue == nil {
		return nil, ErrNilHALQueue
	}
	return &Provider{
		device:   device,
		queue:    queue,
		textures: make(map[*HALTexture]struct{}),
	}, nil
}

// Descriptor converts an atlas texture description into a HAL descriptor.
func Descriptor(info atlas.TextureInfo) (hal.TextureDescriptor, error) {
	if info.Width <= 0 || info.Height <= 0 {
		return hal.TextureDescriptor{}, fmt.Errorf("%w: %dx%d", ErrInvalidTextureSize, info.Width, info.Height)
	}
	if info.Format != atlas.MaskFormatA8 && info.Format != atlas.MaskFormatARGB {
		return hal.TextureDescriptor{}, fmt.Errorf("native: unsupported format %v", info.Format)
	}
	usage := info.Usage
	if usage == 0 {
		usage = atlas.DefaultAtlasTextureUsage
	}
	if info.Storage {
		usage |= gputypes.TextureUsageStorageBinding
	}
	return hal.TextureDescriptor{
		Label: info.Label,
		Size: hal.Extent3D{
			Width:              uint32(info.Width),  //nolint:gosec // validated positive
			Height:             uint32(info.Height), //nolint:gosec // validated positive
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        info.Format.TextureFormat(),
		Usage:         usage,
	}, nil
}

// CreateTexture implements atlas.TextureProvider.
func (p *Provider) CreateTexture(info atlas.TextureInfo) (atlas.Texture, error) {
	desc, err := Descriptor(info)
	if err != nil {
		return nil, err
	}
	halTex, err := p.device.CreateTexture(&desc)
	if err != nil {
		return nil, fmt.Errorf("native: create texture %q: %w", info.Label, err)
	}

	t := &HALTexture{
		halTexture: halTex,
		provider:   p,
		info:       info,
		descriptor: desc,
	}
	p.mu.Lock()
	p.textures[t] = struct{}{}
	p.created++
	p.mu.Unlock()

	atlas.Logger().Debug("native: texture created", "label", info.Label,
		"width", info.Width, "height", info.Height, "format", info.Format.String())
	return t, nil
}

func (p *Provider) destroy(t *HALTexture, tex hal.Texture) {
	p.mu.Lock()
	delete(p.textures, t)
	p.mu.Unlock()
	if tex != nil {
		p.device.DestroyTexture(tex)
	}
}

// Live returns the number of textures not yet released.
func (p *Provider) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.textures)
}

// Created returns the number of textures created so far.
func (p *Provider) Created() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created
}

// Uploads returns the number of WriteTexture calls that succeeded.
func (p *Provider) Uploads() uint64 { return p.uploads.Load() }

// Close releases every texture still alive.
func (p *Provider) Close() {
	p.mu.Lock()
	live := make([]*HALTexture, 0, len(p.textures))
	for t := range p.textures {
		live = append(live, t)
	}
	p.mu.Unlock()

	for _, t := range live {
		t.Release()
	}
}

// Register makes a provider on device and queue available as
// backend.BackendNative.
func Register(device Device, queue Queue) error {
	p, err := NewProvider(device, queue)
	if err != nil {
		return err
	}
	backend.Register(backend.BackendNative, func() (atlas.TextureProvider, error) { return p, nil })
	return nil
}
