package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/yuv"
)

// Errors returned alongside a failing Result.
var (
	ErrUnsupportedFormat = errors.New("codec: unsupported format")
	ErrTooLarge          = errors.New("codec: image exceeds size limit")
	ErrInvalidOptions    = errors.New("codec: invalid options")
	ErrEmptyInput        = errors.New("codec: empty input")
)

// Options control decoding.
type Options struct {
	// MaxWidth and MaxHeight bound the decoded dimensions. Zero means
	// atlas.MaxAtlasDim.
	MaxWidth, MaxHeight int

	// ColorSpace converts YCbCr JPEG data to RGB. The zero value is
	// yuv.JPEGFull, the JFIF encoding.
	ColorSpace yuv.ColorSpace
}

func (o Options) limits() (int, int, error) {
	w, h := o.MaxWidth, o.MaxHeight
	if w < 0 || h < 0 {
		return 0, 0, fmt.Errorf("%w: negative limit %dx%d", ErrInvalidOptions, w, h)
	}
	if !o.ColorSpace.Valid() {
		return 0, 0, fmt.Errorf("%w: color space %v", ErrInvalidOptions, o.ColorSpace)
	}
	if w == 0 {
		w = atlas.MaxAtlasDim
	}
	if h == 0 {
		h = atlas.MaxAtlasDim
	}
	return w, h, nil
}

// Image is a decoded image in premultiplied RGBA.
type Image struct {
	Format Format
	RGBA   *image.RGBA
}

// Bounds returns the image bounds, with the origin at (0, 0).
func (img *Image) Bounds() image.Rectangle { return img.RGBA.Bounds() }

// Pixels returns tightly packed rows in the given atlas format, ready for
// DrawAtlas.AddToAtlas. A8 keeps the alpha channel.
func (img *Image) Pixels(format atlas.MaskFormat) []byte {
	b := img.RGBA.Bounds()
	switch format {
	case atlas.MaskFormatA8:
		out := make([]byte, b.Dx()*b.Dy())
		for y := 0; y < b.Dy(); y++ {
			row := img.RGBA.Pix[y*img.RGBA.Stride:]
			for x := 0; x < b.Dx(); x++ {
				out[y*b.Dx()+x] = row[x*4+3]
			}
		}
		return out
	default:
		n := b.Dx() * 4
		out := make([]byte, n*b.Dy())
		for y := 0; y < b.Dy(); y++ {
			copy(out[y*n:(y+1)*n], img.RGBA.Pix[y*img.RGBA.Stride:])
		}
		return out
	}
}

// Decode reads one image from r. The whole input is buffered, so r need
// not support seeking.
func Decode(r io.Reader, opts Options) (*Image, Result, error) {
	maxW, maxH, err := opts.limits()
	if err != nil {
		return nil, InvalidParameters, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, classify(err), fmt.Errorf("codec: read: %w", err)
	}
	if len(data) == 0 {
		return nil, InvalidInput, ErrEmptyInput
	}

	format := Sniff(data)
	switch {
	case format == FormatUnknown:
		return nil, InvalidInput, fmt.Errorf("%w: unrecognized data", ErrUnsupportedFormat)
	case !format.Supported():
		return nil, Unimplemented, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}

	cfg, err := decodeConfig(format, bytes.NewReader(data))
	if err != nil {
		return nil, classify(err), fmt.Errorf("codec: %v header: %w", format, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > maxW || cfg.Height > maxH {
		return nil, InvalidScale, fmt.Errorf("%w: %dx%d, limit %dx%d", ErrTooLarge, cfg.Width, cfg.Height, maxW, maxH)
	}

	src, err := decodeImage(format, bytes.NewReader(data))
	if err != nil {
		return nil, classify(err), fmt.Errorf("codec: decode %v: %w", format, err)
	}

	atlas.Logger().Debug("codec: decoded", "format", format.String(), "width", cfg.Width, "height", cfg.Height)
	return &Image{Format: format, RGBA: toRGBA(src, opts.ColorSpace)}, Success, nil
}

func decodeConfig(format Format, r io.Reader) (image.Config, error) {
	switch format {
	case FormatPNG:
		return png.DecodeConfig(r)
	case FormatJPEG:
		return jpeg.DecodeConfig(r)
	case FormatGIF:
		return gif.DecodeConfig(r)
	case FormatBMP:
		return bmp.DecodeConfig(r)
	case FormatWebP:
		return webp.DecodeConfig(r)
	case FormatTIFF:
		return tiff.DecodeConfig(r)
	}
	return image.Config{}, ErrUnsupportedFormat
}

func decodeImage(format Format, r io.Reader) (image.Image, error) {
	switch format {
	case FormatPNG:
		return png.Decode(r)
	case FormatJPEG:
		return jpeg.Decode(r)
	case FormatGIF:
		return gif.Decode(r)
	case FormatBMP:
		return bmp.Decode(r)
	case FormatWebP:
		return webp.Decode(r)
	case FormatTIFF:
		return tiff.Decode(r)
	}
	return nil, ErrUnsupportedFormat
}

// classify maps a decoder error to a Result.
func classify(err error) Result {
	var (
		pngUnsupported  png.UnsupportedError
		jpegUnsupported jpeg.UnsupportedError
		tiffUnsupported tiff.UnsupportedError
	)
	switch {
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return IncompleteInput
	case errors.As(err, &pngUnsupported), errors.As(err, &jpegUnsupported),
		errors.As(err, &tiffUnsupported), errors.Is(err, bmp.ErrUnsupported):
		return Unimplemented
	case errors.Is(err, ErrUnsupportedFormat):
		return InternalError
	}
	return ErrorInInput
}

// toRGBA converts src to premultiplied RGBA with its origin at (0, 0).
// YCbCr sources are converted with the matrix of cs.
func toRGBA(src image.Image, cs yuv.ColorSpace) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if ycc, ok := src.(*image.YCbCr); ok {
		m := yuv.YUVToRGB(cs)
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				yi := ycc.YOffset(b.Min.X+x, b.Min.Y+y)
				ci := ycc.COffset(b.Min.X+x, b.Min.Y+y)
				r, g, bl, _ := m.Apply8(ycc.Y[yi], ycc.Cb[ci], ycc.Cr[ci], 255)
				i := dst.PixOffset(x, y)
				dst.Pix[i+0], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = r, g, bl, 255
			}
		}
		return dst
	}
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
