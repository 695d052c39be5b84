// Package gogpu allocates atlas page textures through the gpucontext
// interfaces implemented by gogpu renderers.
//
// The provider only needs a gpucontext.TextureCreator, so it works with any
// window or offscreen renderer that exposes one. Page textures are RGBA;
// A8 uploads are expanded to premultiplied white with the coverage in every
// channel.
package gogpu

import "errors"

// Package errors for the gogpu backend.
var (
	// ErrNilCreator is returned when creating a provider without a texture creator.
	ErrNilCreator = errors.New("gogpu: texture creator is nil")

	// ErrNotUpdatable is returned when the creator returns textures that
	// accept no pixel updates.
	ErrNotUpdatable = errors.New("gogpu: texture does not support updates")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("gogpu: invalid dimensions")

	// ErrTextureReleased is returned when writing to a released texture.
	ErrTextureReleased = errors.New("gogpu: texture released")

	// ErrOutOfBounds is returned when an upload falls outside the texture.
	ErrOutOfBounds = errors.New("gogpu: upload outside texture bounds")
)
