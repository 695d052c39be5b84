// Package codec decodes encoded images into pixel buffers that can be
// copied into an atlas plot.
//
// Decoding reports a Result alongside any error, so callers can distinguish
// truncated input, which may succeed once more bytes arrive, from input that
// will never decode.
package codec

import "fmt"

// Result is the outcome of a decode.
type Result int

const (
	// Success means the image was fully decoded.
	Success Result = iota

	// IncompleteInput means the input ended early. The standard library
	// decoders discard partial output, so no image is returned.
	IncompleteInput

	// ErrorInInput means the input is malformed.
	ErrorInInput

	// InvalidConversion means the image cannot be converted to the
	// requested pixel format.
	InvalidConversion

	// InvalidScale means the requested dimensions cannot be produced.
	InvalidScale

	// InvalidParameters means the options are invalid.
	InvalidParameters

	// InvalidInput means the input is empty or not an image.
	InvalidInput

	// CouldNotRewind means the stream could not be restarted.
	CouldNotRewind

	// InternalError means the decoder failed unexpectedly.
	InternalError

	// Unimplemented means the format is recognized but not supported.
	Unimplemented
)

var resultNames = [...]string{
	Success:           "success",
	IncompleteInput:   "incomplete input",
	ErrorInInput:      "error in input",
	InvalidConversion: "requested format conversion not supported",
	InvalidScale:      "cannot scale to requested size",
	InvalidParameters: "invalid parameters",
	InvalidInput:      "invalid input",
	CouldNotRewind:    "cannot rewind",
	InternalError:     "internal error",
	Unimplemented:     "unimplemented",
}

// String returns a description of the result.
func (r Result) String() string {
	if r < 0 || int(r) >= len(resultNames) {
		return fmt.Sprintf("Result(%d)", int(r))
	}
	return resultNames[r]
}

// OK reports whether r carries a usable image.
func (r Result) OK() bool {
	return r == Success
}
