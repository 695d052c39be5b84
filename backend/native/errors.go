package native

import "errors"

// Package errors for the native backend.
var (
	// ErrNilHALDevice is returned when creating a provider without a HAL device.
	ErrNilHALDevice = errors.New("native: HAL device is nil")

	// ErrNilHALQueue is returned when creating a provider without a HAL queue.
	ErrNilHALQueue = errors.New("native: HAL queue is nil")

	// ErrTextureDestroyed is returned when writing to a released texture.
	ErrTextureDestroyed = errors.New("native: texture has been destroyed")

	// ErrInvalidTextureSize is returned when texture dimensions are invalid.
	ErrInvalidTextureSize = errors.New("native: invalid texture size")

	// ErrFormatMismatch is returned when an upload's format differs from the texture's.
	ErrFormatMismatch = errors.New("native: upload format does not match texture")

	// ErrOutOfBounds is returned when an upload falls outside the texture.
	ErrOutOfBounds = errors.New("native: upload outside texture bounds")
)
