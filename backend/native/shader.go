package native

import (
	_ "embed"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/atlas_sample.wgsl
var atlasSampleWGSL string

// Entry points of the atlas sampling shader.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// AtlasShaderSource returns the WGSL source of the atlas sampling shader.
func AtlasShaderSource() string { return atlasSampleWGSL }

// CompileShaderToSPIRV compiles WGSL source to SPIR-V words.
func CompileShaderToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("native: compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("native: SPIR-V length %d is not word aligned", len(spirvBytes))
	}

	// SPIR-V is a stream of little-endian 32-bit words.
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return code, nil
}

// CreateAtlasShader compiles the atlas sampling shader and creates a module
// for it on the provider's device. The caller destroys it with
// DestroyShader.
func (p *Provider) CreateAtlasShader() (hal.ShaderModule, error) {
	code, err := CompileShaderToSPIRV(atlasSampleWGSL)
	if err != nil {
		return nil, err
	}
	module, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "atlas_sample",
		Source: hal.ShaderSource{SPIRV: code},
	})
	if err != nil {
		return nil, fmt.Errorf("native: create shader module: %w", err)
	}
	return module, nil
}

// DestroyShader destroys a module returned by CreateAtlasShader.
func (p *Provider) DestroyShader(module hal.ShaderModule) {
	if module != nil {
		p.device.DestroyShaderModule(module)
	}
}
