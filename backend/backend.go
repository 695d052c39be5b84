// Package backend keeps a registry of atlas texture providers.
//
// Host backends register themselves on import; GPU backends need a device
// and register once the application has one:
//
//	import _ "github.com/gogpu/atlas/backend/raster"
//
//	native.Register(device, queue)
//	provider, err := backend.Default()
package backend

import (
	"errors"

	"github.com/gogpu/atlas"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Backend name constants.
const (
	// BackendRaster is the name of the host memory backend.
	BackendRaster = "raster"
	// BackendNative is the name of the Pure Go GPU backend (gogpu/wgpu HAL).
	BackendNative = "native"
	// BackendGoGPU is the name of the gpucontext backend (gogpu renderers).
	BackendGoGPU = "gogpu"
)

// ProviderFactory creates a texture provider.
type ProviderFactory func() (atlas.TextureProvider, error)
