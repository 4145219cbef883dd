package auth

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Pyons/cypht/internal/config"
	"github.com/Pyons/cypht/internal/core"
	"github.com/Pyons/cypht/internal/store"
)

// Factory creates an AuthProvider from configuration. The store is nil
// unless the backend keeps its accounts locally.
type Factory func(cfg *config.Config, s *store.Store) (core.AuthProvider, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[Backend]Factory)
)

// Register adds a provider factory to the registry. It panics if called
// with an empty name or nil factory, or if the name is already
// registered.
func Register(name Backend, factory Factory) {
	if name == "" {
		panic("auth: Register called with empty backend name")
	}
	if factory == nil {
		panic("auth: Register called with nil factory")
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; exists {
		panic("auth: Register called twice for " + string(name))
	}
	registry[name] = factory
}

// Open constructs the single active provider for the configured auth
// mode. The application calls this exactly once at startup; every
// verification request is routed to the provider it returns.
func Open(cfg *config.Config, s *store.Store) (core.AuthProvider, error) {
	registryMu.RLock()
	factory, ok := registry[Backend(cfg.AuthMode)]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotRegistered, cfg.AuthMode)
	}
	return factory(cfg, s)
}

// RegisteredBackends returns a sorted list of registered backend names.
func RegisteredBackends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(BackendLocal, func(cfg *config.Config, s *store.Store) (core.AuthProvider, error) {
		if s == nil {
			return nil, fmt.Errorf("%w: local backend requires a database", ErrConfigIncomplete)
		}
		return NewLocalProvider(s, cfg.AuthFailureDelay), nil
	})
	Register(BackendIMAP, func(cfg *config.Config, _ *store.Store) (core.AuthProvider, error) {
		return NewIMAPProvider(cfg), nil
	})
	Register(BackendPOP3, func(cfg *config.Config, _ *store.Store) (core.AuthProvider, error) {
		return NewPOP3Provider(cfg), nil
	})
	Register(BackendLDAP, func(cfg *config.Config, _ *store.Store) (core.AuthProvider, error) {
		return NewLDAPProvider(cfg), nil
	})
	Register(BackendNone, func(_ *config.Config, _ *store.Store) (core.AuthProvider, error) {
		return NewNullProvider(), nil
	})
}
