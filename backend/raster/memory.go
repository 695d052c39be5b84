package raster

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

// Memory management errors.
var (
	// ErrMemoryBudgetExceeded is returned when an allocation would exceed the budget.
	ErrMemoryBudgetExceeded = errors.New("raster: memory budget exceeded")

	// ErrProviderClosed is returned when allocating from a closed provider.
	ErrProviderClosed = errors.New("raster: provider closed")

	// ErrFormatMismatch is returned when an upload's format differs from the texture's.
	ErrFormatMismatch = errors.New("raster: upload format does not match texture")

	// ErrOutOfBounds is returned when an upload falls outside the texture.
	ErrOutOfBounds = errors.New("raster: upload outside texture bounds")
)

// Default memory limits.
const (
	// DefaultMaxMemoryMB is the default texture memory budget (64 MB).
	DefaultMaxMemoryMB = 64

	// MinMemoryMB is the smallest accepted budget.
	MinMemoryMB = 1
)

// Config holds provider configuration.
type Config struct {
	// MaxMemoryMB is the texture memory budget in megabytes.
	// Defaults to DefaultMaxMemoryMB if < MinMemoryMB.
	MaxMemoryMB int

	// BudgetBytes overrides MaxMemoryMB with an exact byte budget when > 0.
	BudgetBytes uint64
}

// DefaultConfig returns the default provider configuration.
func DefaultConfig() Config {
	return Config{MaxMemoryMB: DefaultMaxMemoryMB}
}

func (c Config) budget() uint64 {
	if c.BudgetBytes > 0 {
		return c.BudgetBytes
	}
	mb := c.MaxMemoryMB
	if mb < MinMemoryMB {
		mb = DefaultMaxMemoryMB
	}
	return uint64(mb) * 1024 * 1024 //nolint:gosec // bounded below by MinMemoryMB
}

// MemoryStats contains texture memory usage statistics.
type MemoryStats struct {
	// TotalBytes is the memory budget in bytes.
	TotalBytes uint64

	// UsedBytes is the memory held by live textures.
	UsedBytes uint64

	// AvailableBytes is the remaining budget.
	AvailableBytes uint64

	// TextureCount is the number of live textures.
	TextureCount int

	// UploadCount is the number of uploads applied.
	UploadCount uint64

	// UploadedBytes is the number of pixel bytes uploaded.
	UploadedBytes uint64

	// Utilization is the fraction of the budget used (0.0 to 1.0).
	Utilization float64
}

// String returns a human-readable string of memory stats.
func (s MemoryStats) String() string {
	return fmt.Sprintf("Memory[%.1f%% used, %s/%s, %d textures, %d uploads (%s)]",
		s.Utilization*100,
		humanize.Bytes(s.UsedBytes),
		humanize.Bytes(s.TotalBytes),
		s.TextureCount,
		s.UploadCount,
		humanize.Bytes(s.UploadedBytes))
}
