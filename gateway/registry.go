package gateway

import (
	"fmt"
	"sync"
)

// Factory builds a fresh, uninitialized adapter for one provider.
type Factory func() Gateway

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a provider available under the given name. Provider packages
// call it from init; importing the package is what enables the provider.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// New returns a fresh adapter for the named provider, or ErrUnknownProvider
// if no package registered that name.
func New(name string) (Gateway, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return factory(), nil
}

// Providers lists the registered provider names, for diagnostics.
func Providers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
