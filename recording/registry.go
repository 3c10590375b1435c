package recording

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownBackend is returned (wrapped) by NewBackend for unregistered names.
var ErrUnknownBackend = errors.New("recording: unknown backend")

// BackendFactory creates a backend for a panel of the given size.
// Factories are registered via Register() and called by NewBackend().
type BackendFactory func(width, height int) Backend

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
)

// Register registers a backend factory with the given name.
// This function is typically called from init() in backend packages,
// following the database/sql driver pattern:
//
//	func init() {
//	    recording.Register("raster", func(w, h int) recording.Backend {
//	        return New(w, h)
//	    })
//	}
//
// Register panics if:
//   - factory is nil
//   - a backend with the same name is already registered
//
// This ensures that duplicate registrations are caught early during
// program initialization rather than silently overwriting backends.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("recording: Register factory is nil")
	}
	if _, dup := backends[name]; dup {
		panic("recording: Register called twice for " + name)
	}
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is primarily useful for testing to clean up between tests.
// If the backend is not registered, this is a no-op.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// NewBackend creates a new backend instance by name for a width x height
// panel. The name must match a previously registered backend.
//
// Example:
//
//	import _ "github.com/gogpu/optiview/recording/backends/archive"
//
//	backend, err := recording.NewBackend("archive", 800, 600)
//	if err != nil {
//	    // Handle error - backend not registered
//	}
//
// Returns an error wrapping ErrUnknownBackend if the name is not
// registered. The message includes a hint about forgotten imports.
func NewBackend(name string, width, height int) (Backend, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknownBackend, name)
	}
	return factory(width, height), nil
}

// MustBackend creates a new backend instance by name, panicking on error.
// This is useful when backend availability is guaranteed.
//
// Example:
//
//	backend := recording.MustBackend("raster", 800, 600)
func MustBackend(name string, width, height int) Backend {
	b, err := NewBackend(name, width, height)
	if err != nil {
		panic(err)
	}
	return b
}

// Backends returns a sorted list of registered backend names.
// The list is sorted alphabetically for consistent output.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Count returns the number of registered backends.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(backends)
}
