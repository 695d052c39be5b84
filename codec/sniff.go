package codec

import (
	"github.com/h2non/filetype"
)

// Format is an encoded image format.
type Format int

// Formats recognized by Sniff.
const (
	FormatUnknown Format = iota
	FormatPNG
	FormatJPEG
	FormatGIF
	FormatBMP
	FormatWebP
	FormatTIFF

	// FormatOther is an image format Sniff recognizes but Decode does not
	// support, such as HEIF or AVIF.
	FormatOther
)

var formatNames = [...]string{
	FormatUnknown: "unknown",
	FormatPNG:     "png",
	FormatJPEG:    "jpeg",
	FormatGIF:     "gif",
	FormatBMP:     "bmp",
	FormatWebP:    "webp",
	FormatTIFF:    "tiff",
	FormatOther:   "other",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// Supported reports whether Decode can decode f.
func (f Format) Supported() bool {
	return f > FormatUnknown && f < FormatOther
}

// SniffLen is the number of leading bytes Sniff needs.
const SniffLen = 262

var extFormats = map[string]Format{
	"png":  FormatPNG,
	"jpg":  FormatJPEG,
	"gif":  FormatGIF,
	"bmp":  FormatBMP,
	"webp": FormatWebP,
	"tif":  FormatTIFF,
}

// Sniff identifies the image format from the leading bytes of an encoded
// image.
func Sniff(header []byte) Format {
	if len(header) == 0 {
		return FormatUnknown
	}
	kind, err := filetype.Image(header)
	if err != nil || kind == filetype.Unknown {
		return FormatUnknown
	}
	if f, ok := extFormats[kind.Extension]; ok {
		return f
	}
	return FormatOther
}
