// Package native allocates atlas page textures on a gogpu/wgpu HAL device.
//
// Provider implements atlas.TextureProvider: every page becomes a 2D
// hal.Texture and every upload a Queue.WriteTexture call. The package also
// carries the WGSL program that samples atlas pages, compiled to SPIR-V
// with naga.
//
//	provider, err := native.NewProvider(device, queue)
//	rec, err := atlas.NewRecorder(provider)
//	a, err := atlas.New(atlas.MaskFormatA8, 2048, 2048, 512, 512, gen)
package native
