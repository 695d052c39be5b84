package raster

import (
	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/backend"
)

// init registers the raster backend with the default budget.
func init() {
	backend.Register(backend.BackendRaster, func() (atlas.TextureProvider, error) {
		return NewProvider(DefaultConfig()), nil
	})
}
