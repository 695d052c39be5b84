package text

import (
	"fmt"

	"golang.org/x/image/math/fixed"
)

// MaxFaceSize bounds face sizes so that glyph masks stay well below atlas
// plot sizes.
const MaxFaceSize = 256

// Face is a font at a pixel size.
type Face struct {
	font *Font
	size float64
}

// NewFace returns f at size pixels per em.
func NewFace(f *Font, size float64) (*Face, error) {
	if f == nil {
		return nil, ErrNilFont
	}
	if size <= 0 || size > MaxFaceSize {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSize, size)
	}
	return &Face{font: f, size: size}, nil
}

// Font returns the face's font.
func (f *Face) Font() *Font { return f.font }

// Size returns the size in pixels per em.
func (f *Face) Size() float64 { return f.size }

func (f *Face) ppem() fixed.Int26_6 { return floatToFixed(f.size) }

// floatToFixed converts a float64 font size to fixed.Int26_6.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
