package yuv

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/mat"
)

// ErrSingular is returned by Invert for matrices without an inverse.
var ErrSingular = errors.New("yuv: matrix is singular")

// Matrix is a 4x5 color matrix in row-major order.
type Matrix [20]float32

// IdentityMatrix returns the matrix that leaves colors unchanged.
func IdentityMatrix() Matrix {
	var m Matrix
	m[0], m[6], m[12], m[18] = 1, 1, 1, 1
	return m
}

// RGBToYUV returns the precomputed RGB to YUV matrix for cs. Identity and
// unknown color spaces yield the identity matrix.
func RGBToYUV(cs ColorSpace) Matrix {
	if cs < 0 || cs >= Identity {
		return IdentityMatrix()
	}
	return rgbToYUVTables[cs]
}

// YUVToRGB returns the precomputed YUV to RGB matrix for cs. Identity and
// unknown color spaces yield the identity matrix.
func YUVToRGB(cs ColorSpace) Matrix {
	if cs < 0 || cs >= Identity {
		return IdentityMatrix()
	}
	return yuvToRGBTables[cs]
}

// Apply transforms the normalized color (r, g, b, a).
func (m Matrix) Apply(r, g, b, a float32) (float32, float32, float32, float32) {
	in := [4]float32{r, g, b, a}
	var out [4]float32
	for row := range 4 {
		v := m[row*5+4]
		for col := range 4 {
			v += m[row*5+col] * in[col]
		}
		out[row] = v
	}
	return out[0], out[1], out[2], out[3]
}

// Apply8 transforms an 8-bit color, clamping the result.
func (m Matrix) Apply8(r, g, b, a uint8) (uint8, uint8, uint8, uint8) {
	const s = 255
	x, y, z, w := m.Apply(float32(r)/s, float32(g)/s, float32(b)/s, float32(a)/s)
	return to8(x), to8(y), to8(z), to8(w)
}

func to8(v float32) uint8 {
	return uint8(math32.Round(math32.Min(math32.Max(v, 0), 1) * 255))
}

// ApproxEqual reports whether every entry of m and o differs by at most tol.
func (m Matrix) ApproxEqual(o Matrix, tol float32) bool {
	for i := range m {
		if math32.Abs(m[i]-o[i]) > tol {
			return false
		}
	}
	return true
}

// Invert returns the inverse of m. The alpha row and column are assumed to
// be the identity, as in every YUV matrix; only the 3x3 color part and its
// translation are inverted.
func Invert(m Matrix) (Matrix, error) {
	a := mat.NewDense(4, 4, []float64{
		float64(m[0]), float64(m[1]), float64(m[2]), float64(m[4]),
		float64(m[5]), float64(m[6]), float64(m[7]), float64(m[9]),
		float64(m[10]), float64(m[11]), float64(m[12]), float64(m[14]),
		0, 0, 0, 1,
	})
	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		return Matrix{}, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	var out Matrix
	for row := range 3 {
		out[row*5+0] = float32(inv.At(row, 0))
		out[row*5+1] = float32(inv.At(row, 1))
		out[row*5+2] = float32(inv.At(row, 2))
		out[row*5+4] = float32(inv.At(row, 3))
	}
	out[18] = 1
	return out, nil
}

type coefficients struct {
	kr, kb  float32
	bits    int
	limited bool
}

var ycbcrCoefficients = [...]coefficients{
	JPEGFull:            {0.2990, 0.1140, 8, false},
	Rec601Limited:       {0.2990, 0.1140, 8, true},
	Rec709Full:          {0.2126, 0.0722, 8, false},
	Rec709Limited:       {0.2126, 0.0722, 8, true},
	BT2020_8BitFull:     {0.2627, 0.0593, 8, false},
	BT2020_8BitLimited:  {0.2627, 0.0593, 8, true},
	BT2020_10BitFull:    {0.2627, 0.0593, 10, false},
	BT2020_10BitLimited: {0.2627, 0.0593, 10, true},
	BT2020_12BitFull:    {0.2627, 0.0593, 12, false},
	BT2020_12BitLimited: {0.2627, 0.0593, 12, true},
	BT2020_16BitFull:    {0.2627, 0.0593, 16, false},
	BT2020_16BitLimited: {0.2627, 0.0593, 16, true},
	FCCFull:             {0.3000, 0.1100, 8, false},
	FCCLimited:          {0.3000, 0.1100, 8, true},
	SMPTE240Full:        {0.2120, 0.0870, 8, false},
	SMPTE240Limited:     {0.2120, 0.0870, 8, true},
}

// rangeScale returns the luma scale and offset and the chroma scale for a
// bit depth. Full range uses the whole code space.
func rangeScale(bits int, limited bool) (scaleY, addY, scaleUV float32) {
	shift := bits - 8
	denom := float32(int(1)<<bits - 1)
	if !limited {
		return 1, 0, 1
	}
	return float32(int(219)<<shift) / denom, float32(int(16)<<shift) / denom, float32(int(224)<<shift) / denom
}

func scaleRow(m *Matrix, row int, s float32) {
	for i := range 3 {
		m[row*5+i] *= s
	}
}

// MakeRGBToYUV computes the RGB to YUV matrix of cs from its defining
// coefficients.
func MakeRGBToYUV(cs ColorSpace) Matrix {
	switch {
	case cs >= JPEGFull && cs <= SMPTE240Limited:
		return makeYCbCr(ycbcrCoefficients[cs])
	case cs == YDZDXFull || cs == YDZDXLimited:
		return makeYDZDX(cs == YDZDXLimited)
	case cs == GBRFull || cs == GBRLimited:
		return makeGBR(cs == GBRLimited)
	case cs >= YCgCo8BitFull && cs <= YCgCo16BitLimited:
		bits := [...]int{8, 10, 12, 16}[(cs-YCgCo8BitFull)/2]
		return makeYCgCo(bits, cs.Limited())
	default:
		return IdentityMatrix()
	}
}

// MakeYUVToRGB computes the YUV to RGB matrix of cs by inverting
// MakeRGBToYUV.
func MakeYUVToRGB(cs ColorSpace) (Matrix, error) {
	return Invert(MakeRGBToYUV(cs))
}

func makeYCbCr(c coefficients) Matrix {
	kg := 1 - c.kr - c.kb
	cr := 0.5 / (1 - c.kb)
	cb := 0.5 / (1 - c.kr)

	scaleY, addY, scaleUV := rangeScale(c.bits, c.limited)
	addUV := float32(int(128)<<(c.bits-8)) / float32(int(1)<<c.bits-1)

	m := Matrix{
		c.kr, kg, c.kb, 0, addY,
		-c.kr, -kg, 1 - c.kb, 0, addUV,
		1 - c.kr, -kg, -c.kb, 0, addUV,
		0, 0, 0, 1, 0,
	}
	scaleRow(&m, 0, scaleY)
	scaleRow(&m, 1, cr*scaleUV)
	scaleRow(&m, 2, cb*scaleUV)
	return m
}

func makeYDZDX(limited bool) Matrix {
	scaleY, addY, scaleUV := rangeScale(8, limited)
	addUV := float32(128) / 255

	m := Matrix{
		0, 1, 0, 0, addY,
		0, -0.5, 0.986566 / 2, 0, addUV,
		0.5, -0.991902 / 2, 0, 0, addUV,
		0, 0, 0, 1, 0,
	}
	scaleRow(&m, 0, scaleY)
	scaleRow(&m, 1, scaleUV)
	scaleRow(&m, 2, scaleUV)
	return m
}

func makeGBR(limited bool) Matrix {
	scaleY, addY, _ := rangeScale(8, limited)

	m := Matrix{
		0, 1, 0, 0, addY,
		0, 0, 1, 0, addY,
		1, 0, 0, 0, addY,
		0, 0, 0, 1, 0,
	}
	for row := range 3 {
		scaleRow(&m, row, scaleY)
	}
	return m
}

func makeYCgCo(bits int, limited bool) Matrix {
	scaleY, addY, _ := rangeScale(bits, limited)
	chroma := float32(int(1)<<(bits-1)) / float32(int(1)<<bits-1)

	m := Matrix{
		0.25, 0.5, 0.25, 0, addY,
		-0.25, 0.5, -0.25, 0, chroma,
		0.5, 0, -0.5, 0, chroma,
		0, 0, 0, 1, 0,
	}
	for row := range 3 {
		scaleRow(&m, row, scaleY)
	}
	return m
}
