package atlas

import (
	"errors"
	"image"
	"testing"
)

type failingTexture struct{ memTexture }

func (t *failingTexture) WritePixels(Upload) error { return errNoMemory }

type failingWriteProvider struct{}

func (failingWriteProvider) CreateTexture(TextureInfo) (Texture, error) {
	return &failingTexture{}, nil
}

func TestTextureInfo_Validate(t *testing.T) {
	tests := []struct {
		name    string
		info    TextureInfo
		wantErr bool
	}{
		{"ok", TextureInfo{Width: 256, Height: 256}, false},
		{"max", TextureInfo{Width: MaxAtlasDim, Height: MaxAtlasDim}, false},
		{"zero", TextureInfo{Width: 0, Height: 256}, true},
		{"negative", TextureInfo{Width: 256, Height: -1}, true},
		{"too large", TextureInfo{Width: 4096, Height: 256}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.info.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidTextureInfo) {
				t.Errorf("Validate() = %v, want ErrInvalidTextureInfo", err)
			}
		})
	}
}

func TestTextureProxy_RefCount(t *testing.T) {
	p := newMemProvider()
	proxy, err := NewTextureProxy(p, TextureInfo{Width: 16, Height: 16, Format: MaskFormatARGB})
	if err != nil {
		t.Fatal(err)
	}
	if proxy.RefCount() != 1 {
		t.Errorf("RefCount() = %d, want 1", proxy.RefCount())
	}

	proxy.Ref()
	proxy.Unref()
	if proxy.Released() {
		t.Fatal("released with a reference left")
	}

	proxy.Unref()
	if !proxy.Released() || proxy.Texture() != nil {
		t.Error("not released after the last Unref")
	}
	if p.textures[0].released != 1 {
		t.Errorf("Release() called %d times, want 1", p.textures[0].released)
	}
	if err := proxy.write(Upload{}); !errors.Is(err, ErrProxyReleased) {
		t.Errorf("write after release = %v, want ErrProxyReleased", err)
	}
}

func TestNewTextureProxy_Errors(t *testing.T) {
	if _, err := NewTextureProxy(nil, TextureInfo{Width: 1, Height: 1}); !errors.Is(err, ErrNilProvider) {
		t.Errorf("nil provider: %v", err)
	}
	if _, err := NewTextureProxy(newMemProvider(), TextureInfo{}); !errors.Is(err, ErrInvalidTextureInfo) {
		t.Errorf("zero info: %v", err)
	}
	limited := &memProvider{limit: 1, textures: []*memTexture{{}}}
	if _, err := NewTextureProxy(limited, TextureInfo{Width: 1, Height: 1}); !errors.Is(err, errNoMemory) {
		t.Errorf("failing provider: %v", err)
	}
}

func TestNewRecorder_NilProvider(t *testing.T) {
	if _, err := NewRecorder(nil); !errors.Is(err, ErrNilProvider) {
		t.Errorf("NewRecorder(nil) = %v, want ErrNilProvider", err)
	}
}

func TestUploadRecorder_CopiesPixels(t *testing.T) {
	rec, p := newTestRecorder(t)
	proxy, err := NewTextureProxy(p, TextureInfo{Width: 8, Height: 8, Format: MaskFormatA8})
	if err != nil {
		t.Fatal(err)
	}

	src := make([]byte, 4*16)
	for i := range src {
		src[i] = 5
	}
	ok := rec.RecordUpload(proxy, Upload{
		Pixels:   src,
		RowBytes: 16,
		Rect:     image.Rect(2, 2, 6, 6),
		Format:   MaskFormatA8,
	})
	if !ok {
		t.Fatal("RecordUpload() = false")
	}
	if proxy.RefCount() != 2 {
		t.Errorf("RefCount() = %d, want 2 while pending", proxy.RefCount())
	}

	// The staging memory may be reused right away.
	clear(src)

	if err := rec.Flush(); err != nil {
		t.Fatalf("Flush() = %v", err)
	}
	if proxy.RefCount() != 1 {
		t.Errorf("RefCount() = %d, want 1 after flush", proxy.RefCount())
	}
	if rec.Uploaded() != 1 || rec.Pending() != 0 {
		t.Errorf("Uploaded() = %d, Pending() = %d", rec.Uploaded(), rec.Pending())
	}
	if got := p.textures[0].at(3, 3); got != 5 {
		t.Errorf("texel = %d, want 5", got)
	}
	if got := p.textures[0].at(1, 1); got != 0 {
		t.Errorf("texel outside upload = %d, want 0", got)
	}
}

func TestUploadRecorder_Rejects(t *testing.T) {
	rec, p := newTestRecorder(t)
	proxy, err := NewTextureProxy(p, TextureInfo{Width: 8, Height: 8, Format: MaskFormatARGB})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		proxy *TextureProxy
		u     Upload
	}{
		{"nil proxy", nil, Upload{Pixels: make([]byte, 16), RowBytes: 4, Rect: image.Rect(0, 0, 1, 1)}},
		{"empty rect", proxy, Upload{Pixels: make([]byte, 16), RowBytes: 4}},
		{"short stride", proxy, Upload{Pixels: make([]byte, 64), RowBytes: 4, Rect: image.Rect(0, 0, 2, 2), Format: MaskFormatARGB}},
		{"short buffer", proxy, Upload{Pixels: make([]byte, 8), RowBytes: 8, Rect: image.Rect(0, 0, 2, 2), Format: MaskFormatARGB}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec.RecordUpload(tt.proxy, tt.u) {
				t.Error("RecordUpload() = true")
			}
		})
	}
	if rec.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", rec.Pending())
	}
}

func TestUploadRecorder_FlushErrors(t *testing.T) {
	rec, err := NewRecorder(failingWriteProvider{})
	if err != nil {
		t.Fatal(err)
	}
	proxy, err := NewTextureProxy(failingWriteProvider{}, TextureInfo{Width: 4, Height: 4})
	if err != nil {
		t.Fatal(err)
	}
	rec.RecordUpload(proxy, Upload{Pixels: make([]byte, 4), RowBytes: 4, Rect: image.Rect(0, 0, 4, 1)})

	before := rec.TokenTracker().NextFlushToken()
	if err := rec.Flush(); !errors.Is(err, errNoMemory) {
		t.Errorf("Flush() = %v, want errNoMemory", err)
	}
	if rec.TokenTracker().NextFlushToken() != before+1 {
		t.Error("flush token did not advance on failure")
	}
	if proxy.RefCount() != 1 {
		t.Errorf("RefCount() = %d, want 1", proxy.RefCount())
	}
}
