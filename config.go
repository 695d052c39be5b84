// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

import (
	"image"
	"math/bits"
)

// MaxAtlasDim is the largest page dimension the atlas uses.
const MaxAtlasDim = 2048

// argbDimensions are the ARGB atlas sizes by memory tier. Tier i is used
// when 2^(18+i) <= maxBytes < 2^(19+i); the last tier has no upper bound.
var argbDimensions = [...]image.Point{
	{X: 256, Y: 256},
	{X: 512, Y: 256},
	{X: 512, Y: 512},
	{X: 1024, Y: 512},
	{X: 1024, Y: 1024},
	{X: 2048, Y: 1024},
}

// Config chooses atlas and plot sizes for a device.
type Config struct {
	argb           image.Point
	maxTextureSize int
}

// NewConfig derives atlas sizes from the device's maximum texture size and
// the memory budget for glyph atlases.
func NewConfig(maxTextureSize int, maxBytes uint64) Config {
	index := 0
	if shifted := maxBytes >> 18; shifted > 0 {
		index = min(bits.Len64(shifted)-1, len(argbDimensions)-1)
	}
	dims := argbDimensions[index]
	return Config{
		argb:           image.Point{X: min(dims.X, maxTextureSize), Y: min(dims.Y, maxTextureSize)},
		maxTextureSize: min(maxTextureSize, MaxAtlasDim),
	}
}

// DefaultConfig returns the configuration for a device without a specific
// texture limit and a 8 MiB budget.
func DefaultConfig() Config {
	return NewConfig(MaxAtlasDim, 1<<23)
}

// Validate checks that the configuration produces usable atlases.
func (c Config) Validate() error {
	if c.maxTextureSize <= 0 {
		return &ConfigError{Field: "MaxTextureSize", Reason: "must be positive"}
	}
	if c.argb.X <= 0 || c.argb.Y <= 0 {
		return &ConfigError{Field: "Dimensions", Reason: "must be positive"}
	}
	return nil
}

// MaxTextureSize returns the effective texture size limit.
func (c Config) MaxTextureSize() int { return c.maxTextureSize }

// AtlasDimensions returns the page size for an atlas of the given format.
// A8 atlases are twice as large in each dimension as ARGB ones, since their
// pixels are a quarter of the size.
func (c Config) AtlasDimensions(format MaskFormat) image.Point {
	if format == MaskFormatA8 {
		return image.Point{
			X: min(2*c.argb.X, c.maxTextureSize),
			Y: min(2*c.argb.Y, c.maxTextureSize),
		}
	}
	return c.argb
}

// PlotDimensions returns the plot size for an atlas of the given format.
func (c Config) PlotDimensions(format MaskFormat) image.Point {
	if format == MaskFormatA8 {
		dims := c.AtlasDimensions(format)
		plot := image.Point{X: 256, Y: 256}
		if dims.X >= 2048 {
			plot.X = 512
		}
		if dims.Y >= 2048 {
			plot.Y = 512
		}
		return plot
	}
	return image.Point{X: 256, Y: 256}
}

// NewFromConfig creates an atlas sized by cfg for format.
func NewFromConfig(cfg Config, format MaskFormat, gen *GenerationCounter, opts ...Option) (*DrawAtlas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dims := cfg.AtlasDimensions(format)
	plot := cfg.PlotDimensions(format)
	return New(format, dims.X, dims.Y, plot.X, plot.Y, gen, opts...)
}
