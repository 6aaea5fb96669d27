package backend

import (
	"sync"

	"github.com/gogpu/tilelabel/gpucore"
)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)

	// Priority order for Default (first registered name wins).
	priority = []string{BackendWGPU}
)

// Register registers a backend factory with the given name. This is
// typically called from init() functions in backend packages. Registering
// an existing name replaces the previous factory.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend from the registry. Useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}

// IsRegistered reports whether a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// New creates an adapter from the named backend.
func New(name string, handle gpucore.DeviceHandle) (gpucore.Adapter, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, ErrUnknownBackend
	}
	return factory(handle)
}

// Default creates an adapter from the best available backend, walking the
// priority list and then any remaining registrations.
func Default(handle gpucore.DeviceHandle) (gpucore.Adapter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var lastErr error
	tried := make(map[string]bool)
	for _, name := range priority {
		if factory, ok := factories[name]; ok {
			tried[name] = true
			a, err := factory(handle)
			if err == nil {
				return a, nil
			}
			lastErr = err
		}
	}
	for name, factory := range factories {
		if tried[name] {
			continue
		}
		a, err := factory(handle)
		if err == nil {
			return a, nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrBackendNotAvailable
}
