package atlas

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// MaskFormat is the pixel format stored in an atlas.
type MaskFormat uint8

const (
	// MaskFormatA8 stores single-channel coverage masks (glyphs, paths).
	MaskFormatA8 MaskFormat = iota

	// MaskFormatARGB stores 8-bit RGBA color (color glyphs, emoji, images).
	MaskFormatARGB
)

// String returns a human-readable name for the format.
func (f MaskFormat) String() string {
	switch f {
	case MaskFormatA8:
		return "A8"
	case MaskFormatARGB:
		return "ARGB"
	default:
		return fmt.Sprintf("Unknown(%d)", f)
	}
}

// BytesPerPixel returns the number of bytes per pixel for the format.
func (f MaskFormat) BytesPerPixel() int {
	switch f {
	case MaskFormatA8:
		return 1
	default:
		return 4
	}
}

// TextureFormat returns the GPU texture format that stores f.
func (f MaskFormat) TextureFormat() gputypes.TextureFormat {
	switch f {
	case MaskFormatA8:
		return gputypes.TextureFormatR8Unorm
	default:
		return gputypes.TextureFormatRGBA8Unorm
	}
}
