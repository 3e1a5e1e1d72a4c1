package packages

import (
	"context"
	"fmt"

	"learnscript/internal/logger"
	"learnscript/pkg/lsltypes"
)

// Fetcher obtains a capability bundle from outside the interpreter.
// It may block on network or file I/O.
type Fetcher interface {
	Fetch(ctx context.Context, name, identifier string) (*lsltypes.PackageHandle, error)
}

// Loader resolves package names against a registry and caches the result.
// A Loader belongs to a single execution context; its cache is not
// synchronized.
type Loader struct {
	registry *Registry
	fetcher  Fetcher
	cache    map[string]*lsltypes.PackageHandle
}

// NewLoader creates a loader with an empty cache.
func NewLoader(registry *Registry, fetcher Fetcher) *Loader {
	return &Loader{
		registry: registry,
		fetcher:  fetcher,
		cache:    make(map[string]*lsltypes.PackageHandle),
	}
}

// Resolve returns the cached bundle for name, fetching it exactly once on
// first use. Names outside the registry fail with ErrPackageNotFound
// without reaching the fetcher. A failed fetch is not cached.
func (l *Loader) Resolve(ctx context.Context, name string) (*lsltypes.PackageHandle, error) {
	if handle, ok := l.cache[name]; ok {
		logger.PackageResolution(name, true)
		return handle, nil
	}

	entry, ok := l.registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", lsltypes.ErrPackageNotFound, name)
	}

	logger.PackageResolution(name, false)
	handle, err := l.fetcher.Fetch(ctx, name, entry.Identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to load package %s: %w", name, err)
	}

	l.cache[name] = handle
	return handle, nil
}

// Loaded reports whether name is already cached.
func (l *Loader) Loaded(name string) bool {
	_, ok := l.cache[name]
	return ok
}

// LoadedNames returns the cached package names in registry order.
func (l *Loader) LoadedNames() []string {
	var names []string
	for _, name := range l.registry.Names() {
		if l.Loaded(name) {
			names = append(names, name)
		}
	}
	return names
}

// Registry returns the registry the loader resolves against.
func (l *Loader) Registry() *Registry {
	return l.registry
}
