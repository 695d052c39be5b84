// Package yuv provides the color matrices that convert between RGB and the
// YUV family of encodings used by video and JPEG images.
//
// Matrices use color matrix layout: four rows (Y, U, V, A) of five columns,
// the last column a translation in normalized [0, 1] units. Tables for every
// ColorSpace are precomputed; MakeRGBToYUV and Invert rebuild them from the
// standard coefficients.
package yuv

import (
	"errors"
	"fmt"
	"strings"
)

// ColorSpace identifies a YUV encoding: the luma coefficients, the bit depth
// used for range offsets, and full or limited (studio) range.
type ColorSpace int

// Color spaces, in a stable order.
const (
	JPEGFull ColorSpace = iota
	Rec601Limited
	Rec709Full
	Rec709Limited
	BT2020_8BitFull
	BT2020_8BitLimited
	BT2020_10BitFull
	BT2020_10BitLimited
	BT2020_12BitFull
	BT2020_12BitLimited
	BT2020_16BitFull
	BT2020_16BitLimited
	FCCFull
	FCCLimited
	SMPTE240Full
	SMPTE240Limited
	YDZDXFull
	YDZDXLimited
	GBRFull
	GBRLimited
	YCgCo8BitFull
	YCgCo8BitLimited
	YCgCo10BitFull
	YCgCo10BitLimited
	YCgCo12BitFull
	YCgCo12BitLimited
	YCgCo16BitFull
	YCgCo16BitLimited

	// Identity passes values through unchanged.
	Identity
)

// Common aliases.
const (
	Rec601  = Rec601Limited
	Rec709  = Rec709Limited
	BT2020  = BT2020_8BitLimited
	JPEG    = JPEGFull
	Default = Rec601Limited
)

// ErrUnknownColorSpace is returned by Parse for unrecognized names.
var ErrUnknownColorSpace = errors.New("yuv: unknown color space")

var colorSpaceNames = [...]string{
	JPEGFull:            "jpeg_full",
	Rec601Limited:       "rec601_limited",
	Rec709Full:          "rec709_full",
	Rec709Limited:       "rec709_limited",
	BT2020_8BitFull:     "bt2020_8bit_full",
	BT2020_8BitLimited:  "bt2020_8bit_limited",
	BT2020_10BitFull:    "bt2020_10bit_full",
	BT2020_10BitLimited: "bt2020_10bit_limited",
	BT2020_12BitFull:    "bt2020_12bit_full",
	BT2020_12BitLimited: "bt2020_12bit_limited",
	BT2020_16BitFull:    "bt2020_16bit_full",
	BT2020_16BitLimited: "bt2020_16bit_limited",
	FCCFull:             "fcc_full",
	FCCLimited:          "fcc_limited",
	SMPTE240Full:        "smpte240_full",
	SMPTE240Limited:     "smpte240_limited",
	YDZDXFull:           "ydzdx_full",
	YDZDXLimited:        "ydzdx_limited",
	GBRFull:             "gbr_full",
	GBRLimited:          "gbr_limited",
	YCgCo8BitFull:       "ycgco_8bit_full",
	YCgCo8BitLimited:    "ycgco_8bit_limited",
	YCgCo10BitFull:      "ycgco_10bit_full",
	YCgCo10BitLimited:   "ycgco_10bit_limited",
	YCgCo12BitFull:      "ycgco_12bit_full",
	YCgCo12BitLimited:   "ycgco_12bit_limited",
	YCgCo16BitFull:      "ycgco_16bit_full",
	YCgCo16BitLimited:   "ycgco_16bit_limited",
	Identity:            "identity",
}

// Valid reports whether cs is a known color space, Identity included.
func (cs ColorSpace) Valid() bool {
	return cs >= 0 && cs <= Identity
}

// String returns the lower-case name of the color space, such as
// "rec709_limited".
func (cs ColorSpace) String() string {
	if !cs.Valid() {
		return fmt.Sprintf("ColorSpace(%d)", int(cs))
	}
	return colorSpaceNames[cs]
}

// Limited reports whether cs uses limited (studio) range.
func (cs ColorSpace) Limited() bool {
	return cs.Valid() && strings.HasSuffix(colorSpaceNames[cs], "_limited")
}

// Parse returns the color space named s, as produced by String. Matching
// ignores case; "-" may be used for "_".
func Parse(s string) (ColorSpace, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for cs, n := range colorSpaceNames {
		if n == name {
			return ColorSpace(cs), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColorSpace, s)
}
