package yuv

import (
	"errors"
	"testing"
)

const tolerance = 1e-5

func TestMakeRGBToYUVMatchesTables(t *testing.T) {
	for cs := JPEGFull; cs < Identity; cs++ {
		t.Run(cs.String(), func(t *testing.T) {
			got := MakeRGBToYUV(cs)
			if want := RGBToYUV(cs); !got.ApproxEqual(want, tolerance) {
				t.Errorf("MakeRGBToYUV(%v) = %v, want %v", cs, got, want)
			}
		})
	}
}

func TestInvertMatchesReverseTables(t *testing.T) {
	for cs := JPEGFull; cs < Identity; cs++ {
		t.Run(cs.String(), func(t *testing.T) {
			got, err := Invert(RGBToYUV(cs))
			if err != nil {
				t.Fatalf("Invert() error = %v", err)
			}
			if want := YUVToRGB(cs); !got.ApproxEqual(want, tolerance) {
				t.Errorf("Invert(RGBToYUV(%v)) = %v, want %v", cs, got, want)
			}

			computed, err := MakeYUVToRGB(cs)
			if err != nil {
				t.Fatalf("MakeYUVToRGB() error = %v", err)
			}
			if !computed.ApproxEqual(got, tolerance) {
				t.Errorf("MakeYUVToRGB(%v) = %v, want %v", cs, computed, got)
			}
		})
	}
}

func TestIdentity(t *testing.T) {
	id := IdentityMatrix()
	for _, cs := range []ColorSpace{Identity, Identity + 1, -1} {
		if got := RGBToYUV(cs); got != id {
			t.Errorf("RGBToYUV(%d) = %v, want identity", cs, got)
		}
		if got := YUVToRGB(cs); got != id {
			t.Errorf("YUVToRGB(%d) = %v, want identity", cs, got)
		}
	}
	if got := MakeRGBToYUV(Identity); got != id {
		t.Errorf("MakeRGBToYUV(Identity) = %v, want identity", got)
	}
	inv, err := Invert(id)
	if err != nil || inv != id {
		t.Errorf("Invert(identity) = %v, %v; want identity", inv, err)
	}
}

func TestInvertSingular(t *testing.T) {
	var m Matrix
	m[18] = 1
	if _, err := Invert(m); !errors.Is(err, ErrSingular) {
		t.Errorf("Invert(zero) error = %v, want ErrSingular", err)
	}
}

func TestApply8RoundTrip(t *testing.T) {
	colors := [][4]uint8{
		{0, 0, 0, 255},
		{255, 255, 255, 255},
		{200, 30, 90, 128},
		{12, 240, 100, 0},
	}
	for _, cs := range []ColorSpace{JPEGFull, Rec709Full, BT2020_10BitFull, YCgCo8BitFull, GBRFull} {
		fwd, rev := RGBToYUV(cs), YUVToRGB(cs)
		for _, c := range colors {
			y, u, v, a := fwd.Apply(float32(c[0])/255, float32(c[1])/255, float32(c[2])/255, float32(c[3])/255)
			r, g, b, a2 := rev.Apply(y, u, v, a)
			got := [4]uint8{to8(r), to8(g), to8(b), to8(a2)}
			if got != c {
				t.Errorf("%v: round trip of %v = %v", cs, c, got)
			}
		}
	}
}

func TestApply8Luma(t *testing.T) {
	tests := []struct {
		cs    ColorSpace
		white uint8
		black uint8
	}{
		{JPEGFull, 255, 0},
		{Rec601Limited, 235, 16},
		{Rec709Limited, 235, 16},
	}
	for _, tt := range tests {
		m := RGBToYUV(tt.cs)
		if y, _, _, _ := m.Apply8(255, 255, 255, 255); y != tt.white {
			t.Errorf("%v: Y(white) = %d, want %d", tt.cs, y, tt.white)
		}
		if y, u, v, _ := m.Apply8(0, 0, 0, 255); y != tt.black || u != 128 || v != 128 {
			t.Errorf("%v: YUV(black) = %d,%d,%d, want %d,128,128", tt.cs, y, u, v, tt.black)
		}
	}
}

func TestRangeScale(t *testing.T) {
	tests := []struct {
		bits    int
		limited bool
		y, a, c float32
	}{
		{8, false, 1, 0, 1},
		{10, false, 1, 0, 1},
		{8, true, 219.0 / 255, 16.0 / 255, 224.0 / 255},
		{10, true, 876.0 / 1023, 64.0 / 1023, 896.0 / 1023},
		{12, true, 3504.0 / 4095, 256.0 / 4095, 3584.0 / 4095},
	}
	for _, tt := range tests {
		y, a, c := rangeScale(tt.bits, tt.limited)
		if !near(y, tt.y) || !near(a, tt.a) || !near(c, tt.c) {
			t.Errorf("rangeScale(%d, %v) = %v, %v, %v, want %v, %v, %v",
				tt.bits, tt.limited, y, a, c, tt.y, tt.a, tt.c)
		}
	}
}

func near(a, b float32) bool {
	d := a - b
	return d < tolerance && d > -tolerance
}
