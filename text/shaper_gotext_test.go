package text

import (
	"sync"
	"testing"

	"github.com/go-text/typesetting/di"
)

func TestGoTextShaper_BasicLatin(t *testing.T) {
	face := testFace(t, 16)
	shaper := NewGoTextShaper()

	result := shaper.Shape("Hello", face)
	if len(result) != 5 {
		t.Fatalf("Shape(\"Hello\"): got %d glyphs, want 5", len(result))
	}

	var prevX float64
	for i, g := range result {
		if g.XAdvance <= 0 {
			t.Errorf("glyph %d: XAdvance=%f, want > 0", i, g.XAdvance)
		}
		if i > 0 && g.X <= prevX {
			t.Errorf("glyph %d: X=%f should be > previous X=%f", i, g.X, prevX)
		}
		prevX = g.X
	}
	if result[2].GID != result[3].GID {
		t.Errorf("both 'l' should share a glyph, got %d and %d", result[2].GID, result[3].GID)
	}
}

func TestGoTextShaper_Empty(t *testing.T) {
	shaper := NewGoTextShaper()
	if got := shaper.Shape("", testFace(t, 16)); got != nil {
		t.Errorf("Shape(\"\") = %v, want nil", got)
	}
	if got := shaper.Shape("a", nil); got != nil {
		t.Errorf("Shape(nil face) = %v, want nil", got)
	}
}

func TestGoTextShaper_Normalizes(t *testing.T) {
	face := testFace(t, 16)
	shaper := NewGoTextShaper()

	// e + combining acute composes to U+00E9.
	result := shaper.Shape("e\u0301", face)
	if len(result) != 1 {
		t.Fatalf("Shape(decomposed é): got %d glyphs, want 1", len(result))
	}
	if want := face.Font().GlyphIndex('\u00e9'); result[0].GID != want {
		t.Errorf("GID = %d, want %d", result[0].GID, want)
	}
}

func TestGoTextShaper_Concurrent(t *testing.T) {
	face := testFace(t, 16)
	shaper := NewGoTextShaper()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				if got := len(shaper.Shape("concurrent", face)); got != 10 {
					t.Errorf("Shape() = %d glyphs, want 10", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestParagraphDirection(t *testing.T) {
	tests := []struct {
		text string
		want di.Direction
	}{
		{"", di.DirectionLTR},
		{"abc", di.DirectionLTR},
		{"123 abc", di.DirectionLTR},
		{"שלום", di.DirectionRTL},
		{"  مرحبا", di.DirectionRTL},
		{"...", di.DirectionLTR},
	}
	for _, tt := range tests {
		if got := paragraphDirection([]rune(tt.text)); got != tt.want {
			t.Errorf("paragraphDirection(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
