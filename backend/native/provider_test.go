package native

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/backend"
)

type fakeHALTexture struct {
	id        int
	destroyed bool
}

func (t *fakeHALTexture) Destroy() { t.destroyed = true }
func (t *fakeHALTexture) NativeHandle() uintptr { return uintptr(t.id) }
func (t *fakeHALTexture) CurrentUsage() gputypes.TextureUsage { return 0 }
func (t *fakeHALTexture) AddPendingRef() {}
func (t *fakeHALTexture) DecPendingRef() {}

type fakeShaderModule struct{}

func (fakeShaderModule) Destroy() {}

type fakeDevice struct {
	created          []hal.TextureDescriptor
	destroyed        []hal.Texture
	shaders          []hal.ShaderModuleDescriptor
	destroyedShaders int
	createErr        error
	shaderErr        error
}

func (d *fakeDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	if d.createErr != nil {
		return nil, d.createErr
	}
	d.created = append(d.created, *desc)
	return &fakeHALTexture{id: len(d.created)}, nil
}

func (d *fakeDevice) DestroyTexture(tex hal.Texture) {
	tex.Destroy()
	d.destroyed = append(d.destroyed, tex)
}

func (d *fakeDevice) CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	if d.shaderErr != nil {
		return nil, d.shaderErr
	}
	d.shaders = append(d.shaders, *desc)
	return fakeShaderModule{}, nil
}

func (d *fakeDevice) DestroyShaderModule(hal.ShaderModule) { d.destroyedShaders++ }

type textureWrite struct {
	dst    hal.ImageCopyTexture
	data   []byte
	layout hal.ImageDataLayout
	size   hal.Extent3D
}

type fakeQueue struct {
	writes []textureWrite
	err    error
}

func (q *fakeQueue) WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D) error {
	if q.err != nil {
		return q.err
	}
	q.writes = append(q.writes, textureWrite{dst: *dst, data: data, layout: *layout, size: *size})
	return nil
}

func TestNewProvider_Nil(t *testing.T) {
	if _, err := NewProvider(nil, &fakeQueue{}); !errors.Is(err, ErrNilHALDevice) {
		t.Errorf("NewProvider(nil device) error = %v, want %v", err, ErrNilHALDevice)
	}
	if _, err := NewProvider(&fakeDevice{}, nil); !errors.Is(err, ErrNilHALQueue) {
		t.Errorf("NewProvider(nil queue) error = %v, want %v", err, ErrNilHALQueue)
	}
}

func TestDescriptor(t *testing.T) {
	tests := []struct {
		name       string
		info       atlas.TextureInfo
		wantFormat gputypes.TextureFormat
		wantUsage  gputypes.TextureUsage
		wantErr    bool
	}{
		{
			name:       "a8 default usage",
			info:       atlas.TextureInfo{Width: 512, Height: 256, Format: atlas.MaskFormatA8},
			wantFormat: gputypes.TextureFormatR8Unorm,
			wantUsage:  atlas.DefaultAtlasTextureUsage,
		},
		{
			name: "argb explicit usage",
			info: atlas.TextureInfo{Width: 64, Height: 64, Format: atlas.MaskFormatARGB,
				Usage: gputypes.TextureUsageCopyDst},
			wantFormat: gputypes.TextureFormatRGBA8Unorm,
			wantUsage:  gputypes.TextureUsageCopyDst,
		},
		{
			name:       "storage",
			info:       atlas.TextureInfo{Width: 64, Height: 64, Format: atlas.MaskFormatA8, Storage: true},
			wantFormat: gputypes.TextureFormatR8Unorm,
			wantUsage:  atlas.DefaultAtlasTextureUsage | gputypes.TextureUsageStorageBinding,
		},
		{name: "zero size", info: atlas.TextureInfo{Format: atlas.MaskFormatA8}, wantErr: true},
		{name: "unknown format", info: atlas.TextureInfo{Width: 8, Height: 8, Format: atlas.MaskFormat(9)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := Descriptor(tt.info)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Descriptor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if desc.Format != tt.wantFormat {
				t.Errorf("Format = %v, want %v", desc.Format, tt.wantFormat)
			}
			if desc.Usage != tt.wantUsage {
				t.Errorf("Usage = %v, want %v", desc.Usage, tt.wantUsage)
			}
			if desc.Dimension != gputypes.TextureDimension2D {
				t.Errorf("Dimension = %v, want 2D", desc.Dimension)
			}
			want := hal.Extent3D{Width: uint32(tt.info.Width), Height: uint32(tt.info.Height), DepthOrArrayLayers: 1}
			if desc.Size != want {
				t.Errorf("Size = %+v, want %+v", desc.Size, want)
			}
			if desc.MipLevelCount != 1 || desc.SampleCount != 1 {
				t.Errorf("MipLevelCount, SampleCount = %d, %d, want 1, 1", desc.MipLevelCount, desc.SampleCount)
			}
		})
	}
}

func TestProvider_CreateAndRelease(t *testing.T) {
	dev := &fakeDevice{}
	p, err := NewProvider(dev, &fakeQueue{})
	if err != nil {
		t.Fatal(err)
	}

	tex, err := p.CreateTexture(atlas.TextureInfo{Label: "glyphs[0]", Width: 128, Height: 128, Format: atlas.MaskFormatA8})
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	if len(dev.created) != 1 || dev.created[0].Label != "glyphs[0]" {
		t.Fatalf("device textures = %+v, want one labelled glyphs[0]", dev.created)
	}
	if p.Live() != 1 || p.Created() != 1 {
		t.Errorf("Live, Created = %d, %d, want 1, 1", p.Live(), p.Created())
	}

	ht := tex.(*HALTexture)
	if ht.HAL() == nil {
		t.Error("HAL() = nil before release")
	}

	tex.Release()
	tex.Release()
	if len(dev.destroyed) != 1 {
		t.Errorf("DestroyTexture calls = %d, want 1", len(dev.destroyed))
	}
	if !ht.IsDestroyed() || ht.HAL() != nil {
		t.Error("texture should report destroyed after Release")
	}
	if p.Live() != 0 {
		t.Errorf("Live() = %d, want 0", p.Live())
	}
	if err := tex.WritePixels(atlas.Upload{Rect: image.Rect(0, 0, 1, 1), RowBytes: 1, Pixels: []byte{1}}); !errors.Is(err, ErrTextureDestroyed) {
		t.Errorf("WritePixels() after Release error = %v, want %v", err, ErrTextureDestroyed)
	}
}

func TestProvider_CreateError(t *testing.T) {
	p, _ := NewProvider(&fakeDevice{createErr: errors.New("device lost")}, &fakeQueue{})
	if _, err := p.CreateTexture(atlas.TextureInfo{Width: 8, Height: 8}); err == nil {
		t.Error("CreateTexture() should fail when the device does")
	}
	if p.Live() != 0 {
		t.Errorf("Live() = %d, want 0", p.Live())
	}
}

func TestHALTexture_WritePixels(t *testing.T) {
	q := &fakeQueue{}
	p, _ := NewProvider(&fakeDevice{}, q)
	tex, err := p.CreateTexture(atlas.TextureInfo{Width: 64, Height: 32, Format: atlas.MaskFormatARGB})
	if err != nil {
		t.Fatal(err)
	}

	pixels := make([]byte, 4*3*2)
	u := atlas.Upload{Pixels: pixels, RowBytes: 12, Rect: image.Rect(8, 4, 11, 6), Format: atlas.MaskFormatARGB}
	if err := tex.WritePixels(u); err != nil {
		t.Fatalf("WritePixels() error = %v", err)
	}

	if len(q.writes) != 1 {
		t.Fatalf("WriteTexture calls = %d, want 1", len(q.writes))
	}
	w := q.writes[0]
	if w.dst.Origin != (hal.Origin3D{X: 8, Y: 4}) {
		t.Errorf("Origin = %+v, want {8 4 0}", w.dst.Origin)
	}
	if w.dst.Aspect != gputypes.TextureAspectAll {
		t.Errorf("Aspect = %v, want All", w.dst.Aspect)
	}
	if w.layout.BytesPerRow != 12 || w.layout.RowsPerImage != 2 {
		t.Errorf("layout = %+v, want 12 bytes per row, 2 rows", w.layout)
	}
	if w.size != (hal.Extent3D{Width: 3, Height: 2, DepthOrArrayLayers: 1}) {
		t.Errorf("size = %+v, want 3x2x1", w.size)
	}
	if p.Uploads() != 1 {
		t.Errorf("Uploads() = %d, want 1", p.Uploads())
	}
}

func TestHALTexture_WritePixelsErrors(t *testing.T) {
	q := &fakeQueue{}
	p, _ := NewProvider(&fakeDevice{}, q)
	tex, _ := p.CreateTexture(atlas.TextureInfo{Width: 16, Height: 16, Format: atlas.MaskFormatA8})

	tests := []struct {
		name string
		u    atlas.Upload
		want error
	}{
		{
			name: "format mismatch",
			u:    atlas.Upload{Pixels: make([]byte, 4), RowBytes: 4, Rect: image.Rect(0, 0, 1, 1), Format: atlas.MaskFormatARGB},
			want: ErrFormatMismatch,
		},
		{
			name: "out of bounds",
			u:    atlas.Upload{Pixels: make([]byte, 4), RowBytes: 4, Rect: image.Rect(14, 0, 18, 1), Format: atlas.MaskFormatA8},
			want: ErrOutOfBounds,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tex.WritePixels(tt.u); !errors.Is(err, tt.want) {
				t.Errorf("WritePixels() error = %v, want %v", err, tt.want)
			}
		})
	}

	q.err = errors.New("queue lost")
	err := tex.WritePixels(atlas.Upload{Pixels: []byte{1}, RowBytes: 1, Rect: image.Rect(0, 0, 1, 1), Format: atlas.MaskFormatA8})
	if err == nil {
		t.Error("WritePixels() should surface queue errors")
	}
	if p.Uploads() != 0 {
		t.Errorf("Uploads() = %d, want 0", p.Uploads())
	}
}

func TestProvider_Close(t *testing.T) {
	dev := &fakeDevice{}
	p, _ := NewProvider(dev, &fakeQueue{})
	for range 3 {
		if _, err := p.CreateTexture(atlas.TextureInfo{Width: 8, Height: 8}); err != nil {
			t.Fatal(err)
		}
	}
	p.Close()
	if p.Live() != 0 || len(dev.destroyed) != 3 {
		t.Errorf("after Close: Live = %d, destroyed = %d, want 0, 3", p.Live(), len(dev.destroyed))
	}
}

// The atlas drives the provider end to end: pages become HAL textures and
// flushed uploads become queue writes.
func TestProvider_WithDrawAtlas(t *testing.T) {
	dev := &fakeDevice{}
	q := &fakeQueue{}
	p, _ := NewProvider(dev, q)
	rec, err := atlas.NewRecorder(p)
	if err != nil {
		t.Fatal(err)
	}
	a, err := atlas.New(atlas.MaskFormatA8, 256, 256, 128, 128, atlas.NewGenerationCounter(),
		atlas.WithLabel("glyphs"))
	if err != nil {
		t.Fatal(err)
	}

	var loc atlas.AtlasLocator
	pixels := make([]byte, 10*12)
	if code := a.AddToAtlas(rec, 10, 12, pixels, &loc); code != atlas.Succeeded {
		t.Fatalf("AddToAtlas() = %v, want Succeeded", code)
	}
	if len(dev.created) != 1 || dev.created[0].Label != "glyphs[0]" {
		t.Fatalf("created = %+v, want glyphs[0]", dev.created)
	}
	if !a.RecordUploads(rec) {
		t.Fatal("RecordUploads() = false")
	}
	if err := rec.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if len(q.writes) != 1 {
		t.Fatalf("WriteTexture calls = %d, want 1", len(q.writes))
	}
	// A8 rows are widened to a 4-byte boundary.
	if got := q.writes[0].size; got.Width != 12 || got.Height != 12 {
		t.Errorf("uploaded size = %dx%d, want 12x12", got.Width, got.Height)
	}
}

func TestRegister(t *testing.T) {
	t.Cleanup(func() { backend.Unregister(backend.BackendNative) })

	if err := Register(nil, &fakeQueue{}); !errors.Is(err, ErrNilHALDevice) {
		t.Errorf("Register(nil device) error = %v, want %v", err, ErrNilHALDevice)
	}
	if err := Register(&fakeDevice{}, &fakeQueue{}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	p, err := backend.Get(backend.BackendNative)
	if err != nil {
		t.Fatalf("backend.Get() error = %v", err)
	}
	if _, ok := p.(*Provider); !ok {
		t.Errorf("backend.Get() = %T, want *Provider", p)
	}
}
