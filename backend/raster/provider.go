package raster

import (
	"fmt"
	"sync"

	"github.com/gogpu/atlas"
)

// Provider allocates host-memory page textures within a memory budget.
//
// Provider is safe for concurrent use.
type Provider struct {
	mu sync.RWMutex

	budgetBytes uint64
	usedBytes   uint64

	textures map[*Texture]struct{}

	uploadCount   uint64
	uploadedBytes uint64

	closed bool
}

// NewProvider creates a provider with the given configuration.
func NewProvider(config Config) *Provider {
	return &Provider{
		budgetBytes: config.budget(),
		textures:    make(map[*Texture]struct{}),
	}
}

// CreateTexture implements atlas.TextureProvider.
func (p *Provider) CreateTexture(info atlas.TextureInfo) (atlas.Texture, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrProviderClosed
	}

	size := info.SizeBytes()
	if p.usedBytes+size > p.budgetBytes {
		return nil, fmt.Errorf("%w: need %d bytes, have %d bytes available",
			ErrMemoryBudgetExceeded, size, p.budgetBytes-p.usedBytes)
	}

	tex := newTexture(p, info)
	p.textures[tex] = struct{}{}
	p.usedBytes += size

	atlas.Logger().Debug("raster: texture created",
		"label", info.Label, "format", info.Format.String(),
		"width", info.Width, "height", info.Height)
	return tex, nil
}

// release returns a texture's memory to the budget.
func (p *Provider) release(tex *Texture) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.textures[tex]; !ok {
		return
	}
	delete(p.textures, tex)
	p.usedBytes -= tex.info.SizeBytes()
}

func (p *Provider) recordUpload(bytes int) {
	p.mu.Lock()
	p.uploadCount++
	p.uploadedBytes += uint64(bytes) //nolint:gosec // byte counts are non-negative
	p.mu.Unlock()
}

// Stats returns current memory usage statistics.
func (p *Provider) Stats() MemoryStats {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var utilization float64
	if p.budgetBytes > 0 {
		utilization = float64(p.usedBytes) / float64(p.budgetBytes)
	}

	return MemoryStats{
		TotalBytes:     p.budgetBytes,
		UsedBytes:      p.usedBytes,
		AvailableBytes: p.budgetBytes - p.usedBytes,
		TextureCount:   len(p.textures),
		UploadCount:    p.uploadCount,
		UploadedBytes:  p.uploadedBytes,
		Utilization:    utilization,
	}
}

// Textures returns the live textures. The returned slice is a copy.
func (p *Provider) Textures() []*Texture {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]*Texture, 0, len(p.textures))
	for tex := range p.textures {
		result = append(result, tex)
	}
	return result
}

// Close drops every texture and rejects further allocations.
func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	for tex := range p.textures {
		tex.mu.Lock()
		tex.provider = nil
		tex.mu.Unlock()
	}
	p.textures = nil
	p.usedBytes = 0
	p.closed = true
}
