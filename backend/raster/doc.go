// Package raster provides a software atlas.TextureProvider.
//
// Page textures are host images (image.Alpha for A8 atlases, image.RGBA
// for ARGB) and uploads are blitted with golang.org/x/image/draw. The
// provider enforces a memory budget the same way a GPU driver would, so
// atlas behavior under allocation failure can be exercised without a
// device. It is also the provider used by CPU fallback rendering and by
// cmd/atlasdemo to dump page contents.
package raster
