package text

import "errors"

// Package errors.
var (
	// ErrNilFont is returned when creating a face without a font.
	ErrNilFont = errors.New("text: font is nil")

	// ErrInvalidSize is returned for non-positive or enormous face sizes.
	ErrInvalidSize = errors.New("text: invalid font size")

	// ErrGlyphTooLarge is returned when a glyph mask exceeds an atlas plot.
	ErrGlyphTooLarge = errors.New("text: glyph larger than an atlas plot")

	// ErrAtlasFull is returned when a glyph cannot be placed even after a
	// flush.
	ErrAtlasFull = errors.New("text: glyph atlas full")

	// ErrUploadRefused is returned when the recorder rejects glyph uploads.
	ErrUploadRefused = errors.New("text: recorder refused glyph uploads")

	// ErrWrongFormat is returned when the atlas does not store A8 masks.
	ErrWrongFormat = errors.New("text: glyph atlas must be A8")
)
