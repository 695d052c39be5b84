package backend

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/atlas"
)

// registry holds registered providers.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]ProviderFactory)
	// Priority order for provider selection (first available wins).
	// GPU backends come first; raster is the fallback.
	backendPriority = []string{BackendNative, BackendGoGPU, BackendRaster}
)

// Register registers a provider factory with the given name.
// If a factory with the same name is already registered, it is replaced.
func Register(name string, factory ProviderFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a factory from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered backend names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Get creates a provider by name.
func Get(name string) (atlas.TextureProvider, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return factory()
}

// Default creates a provider from the best registered backend. Backends
// whose factory fails are skipped.
func Default() (atlas.TextureProvider, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		factory, ok := factories[name]
		if !ok {
			continue
		}
		p, err := factory()
		if err != nil {
			atlas.Logger().Warn("backend: factory failed", "backend", name, "err", err)
			continue
		}
		return p, nil
	}
	return nil, ErrBackendNotAvailable
}
