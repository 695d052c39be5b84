// Command atlasdemo packs glyphs and images into dynamic atlases over a
// number of simulated frames and writes the resulting pages as PNG files.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/backend"
	"github.com/gogpu/atlas/backend/raster"
	"github.com/gogpu/atlas/codec"
	"github.com/gogpu/atlas/text"
)

func main() {
	var (
		backendName = flag.String("backend", "", "texture backend (default: best available)")
		outDir      = flag.String("out", ".", "output directory")
		frames      = flag.Int("frames", 4, "number of frames to simulate")
		fontSize    = flag.Float64("size", 24, "font size in pixels")
		fontPath    = flag.String("font", "", "TrueType font file (default: Go Regular)")
		scale       = flag.Int("scale", 2, "page preview scale")
		verbose     = flag.Bool("v", false, "log atlas activity")
	)
	flag.Parse()

	if *verbose {
		atlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	provider, err := selectProvider(*backendName)
	if err != nil {
		log.Fatalf("Failed to select backend: %v", err)
	}
	rec, err := atlas.NewRecorder(provider)
	if err != nil {
		log.Fatalf("Failed to create recorder: %v", err)
	}

	face, err := loadFace(*fontPath, *fontSize)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	gen := atlas.NewGenerationCounter()
	glyphAtlas, err := atlas.New(atlas.MaskFormatA8, 512, 512, 256, 256, gen, atlas.WithLabel("glyphs"))
	if err != nil {
		log.Fatalf("Failed to create glyph atlas: %v", err)
	}
	glyphs, err := text.NewGlyphAtlas(glyphAtlas)
	if err != nil {
		log.Fatalf("Failed to create glyph cache: %v", err)
	}
	images, err := atlas.New(atlas.MaskFormatARGB, 256, 256, 128, 128, gen,
		atlas.WithLabel("images"), atlas.WithMultitexturing(true))
	if err != nil {
		log.Fatalf("Failed to create image atlas: %v", err)
	}

	sprites, err := decodeSprites()
	if err != nil {
		log.Fatalf("Failed to decode sprites: %v", err)
	}

	lines := []string{
		"The quick brown fox jumps over the lazy dog",
		"Pack my box with five dozen liquor jugs",
		"Sphinx of black quartz, judge my vow",
		"0123456789 !?@#$%&*()[]{}",
	}

	var run []text.PlacedGlyph
	for frame := 0; frame < *frames; frame++ {
		if err := placeSprites(rec, images, sprites, frame); err != nil {
			log.Fatalf("Frame %d: %v", frame, err)
		}
		images.RecordUploads(rec)

		line := lines[frame%len(lines)]
		run, err = glyphs.DrawString(rec, face, line)
		if err != nil {
			log.Fatalf("Frame %d: %v", frame, err)
		}
		if err := glyphs.EndFrame(rec); err != nil {
			log.Fatalf("Frame %d: %v", frame, err)
		}
		images.Compact(rec.TokenTracker().NextFlushToken())
	}

	if err := writePages(*outDir, *scale, glyphAtlas, images); err != nil {
		log.Fatalf("Failed to write pages: %v", err)
	}
	if err := writeRun(filepath.Join(*outDir, "text.png"), glyphs, run, face); err != nil {
		log.Fatalf("Failed to write text: %v", err)
	}

	hits, misses, evicted := glyphs.Stats()
	log.Printf("%d frames, %d uploads, glyphs: %d cached, %d hits, %d misses, %d evicted\n",
		*frames, rec.Uploaded(), glyphs.Len(), hits, misses, evicted)
	log.Printf("Pages: glyphs %d, images %d\n", glyphAtlas.NumActivePages(), images.NumActivePages())
	if rp, ok := provider.(*raster.Provider); ok {
		stats := rp.Stats()
		log.Printf("Texture memory: %s of %s, uploaded %s\n",
			humanize.Bytes(stats.UsedBytes), humanize.Bytes(stats.TotalBytes), humanize.Bytes(stats.UploadedBytes))
	}
}

func selectProvider(name string) (atlas.TextureProvider, error) {
	if name == "" {
		return backend.Default()
	}
	p, err := backend.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(backend.Available(), ", "))
	}
	return p, nil
}

func loadFace(path string, size float64) (*text.Face, error) {
	data := goregular.TTF
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, err
		}
	}
	f, err := text.ParseFont(data)
	if err != nil {
		return nil, err
	}
	return text.NewFace(f, size)
}

// decodeSprites encodes a few generated images and decodes them back the
// way files loaded from disk would be.
func decodeSprites() ([]*codec.Image, error) {
	colors := []color.NRGBA{
		{R: 230, G: 60, B: 60, A: 255},
		{R: 60, G: 200, B: 90, A: 255},
		{R: 70, G: 110, B: 240, A: 200},
		{R: 240, G: 200, B: 40, A: 160},
	}
	sizes := []image.Point{{48, 48}, {96, 40}, {40, 100}, {64, 64}}

	out := make([]*codec.Image, 0, len(colors))
	for i, c := range colors {
		var buf bytes.Buffer
		if err := png.Encode(&buf, checkerboard(sizes[i], c, 8)); err != nil {
			return nil, err
		}
		img, res, err := codec.Decode(&buf, codec.Options{})
		if err != nil {
			return nil, fmt.Errorf("sprite %d: %v: %w", i, res, err)
		}
		out = append(out, img)
	}
	return out, nil
}

func checkerboard(size image.Point, c color.NRGBA, cell int) *image.NRGBA {
	img := image.NewNRGBA(image.Rectangle{Max: size})
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	return img
}

// placeSprites adds a rotating subset of sprites, flushing when the atlas
// asks for it.
func placeSprites(rec *atlas.UploadRecorder, a *atlas.DrawAtlas, sprites []*codec.Image, frame int) error {
	for i := 0; i < len(sprites); i++ {
		img := sprites[(frame+i)%len(sprites)]
		b := img.Bounds()
		pixels := img.Pixels(a.Format())

		var loc atlas.AtlasLocator
		code := a.AddToAtlas(rec, b.Dx(), b.Dy(), pixels, &loc)
		if code == atlas.TryAgain {
			a.RecordUploads(rec)
			if err := rec.Flush(); err != nil {
				return err
			}
			code = a.AddToAtlas(rec, b.Dx(), b.Dy(), pixels, &loc)
		}
		if code != atlas.Succeeded {
			return fmt.Errorf("sprite %dx%d: %v", b.Dx(), b.Dy(), code)
		}
		a.SetLastUseToken(loc, rec.TokenTracker().NextFlushToken())
	}
	return nil
}

func writePages(dir string, scale int, atlases ...*atlas.DrawAtlas) error {
	for _, a := range atlases {
		for i, proxy := range a.Proxies() {
			if proxy == nil {
				continue
			}
			tex, ok := proxy.Texture().(*raster.Texture)
			if !ok {
				log.Printf("Skipping %s page %d: not a host texture\n", a.Label(), i)
				continue
			}
			name := filepath.Join(dir, fmt.Sprintf("%s-page%d.png", a.Label(), i))
			if err := savePNG(name, tex.Preview(scale)); err != nil {
				return err
			}
			log.Printf("Page saved to %s\n", name)
		}
	}
	return nil
}

func writeRun(name string, glyphs *text.GlyphAtlas, run []text.PlacedGlyph, face *text.Face) error {
	var width float64
	for _, pg := range run {
		width = pg.X + pg.Advance
	}
	h := int(face.Size()*1.5) + 1
	dst := image.NewRGBA(image.Rect(0, 0, int(width)+16, h))
	for i := range dst.Pix {
		dst.Pix[i] = 255
	}
	glyphs.Render(dst, run, image.Pt(8, int(face.Size())), color.Black)
	return savePNG(name, dst)
}

func savePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
