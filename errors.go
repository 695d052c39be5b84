package atlas

import (
	"errors"
	"fmt"
)

// ErrorCode is the result of placing a rectangle in the atlas.
type ErrorCode int

const (
	// Succeeded means the rectangle was placed and the locator updated.
	Succeeded ErrorCode = iota

	// TryAgain means every plot is in use by the pending flush. The caller
	// must flush its recorded work, advance the flush token and retry.
	TryAgain

	// Error means the request can never succeed as issued: the rectangle
	// is larger than a plot, or a page texture could not be allocated.
	Error
)

// String returns the name of the code.
func (c ErrorCode) String() string {
	switch c {
	case Succeeded:
		return "Succeeded"
	case TryAgain:
		return "TryAgain"
	case Error:
		return "Error"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// Sentinel errors.
var (
	// ErrNilRecorder is returned when an operation needs a recorder and none was given.
	ErrNilRecorder = errors.New("atlas: recorder is nil")

	// ErrNilProvider is returned when a recorder is created without a texture provider.
	ErrNilProvider = errors.New("atlas: texture provider is nil")

	// ErrInvalidTextureInfo is returned for texture requests with bad dimensions.
	ErrInvalidTextureInfo = errors.New("atlas: invalid texture info")

	// ErrProxyReleased is returned when uploading to a proxy whose texture is gone.
	ErrProxyReleased = errors.New("atlas: texture proxy released")
)

// ConfigError reports an invalid atlas configuration.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid config." + e.Field + ": " + e.Reason
}
