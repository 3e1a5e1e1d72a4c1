// Package packages resolves named capability bundles for a script run.
// A Registry maps short package names to bundle identifiers, a Fetcher
// obtains a bundle from an external collaborator, and a Loader memoizes
// fetched bundles for the lifetime of one execution context.
package packages

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"learnscript/internal/data/embedded"
)

// Entry describes one registered package.
type Entry struct {
	Identifier   string   `yaml:"identifier" json:"identifier"`
	Version      string   `yaml:"version" json:"version"`
	Capabilities []string `yaml:"capabilities" json:"capabilities"`
}

// Registry is a read-only table of known packages. It is safe for
// concurrent use because it is never mutated after construction.
type Registry struct {
	entries map[string]Entry
}

type registryFile struct {
	Packages map[string]Entry `yaml:"packages"`
}

// NewRegistry builds a registry from entries. The map is copied.
func NewRegistry(entries map[string]Entry) *Registry {
	copied := make(map[string]Entry, len(entries))
	for name, e := range entries {
		caps := make([]string, len(e.Capabilities))
		copy(caps, e.Capabilities)
		e.Capabilities = caps
		copied[name] = e
	}
	return &Registry{entries: copied}
}

// ParseRegistry decodes a registry from YAML of the form
// `packages: {name: {identifier, version, capabilities}}`.
func ParseRegistry(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse package registry: %w", err)
	}
	for name, e := range file.Packages {
		if e.Identifier == "" {
			return nil, fmt.Errorf("package %s has no identifier", name)
		}
	}
	return NewRegistry(file.Packages), nil
}

// DefaultRegistry returns the registry compiled into the binary:
// tensor, vision, audio, text, math, plot and data.
func DefaultRegistry() *Registry {
	r, err := ParseRegistry(embedded.PackageRegistryData)
	if err != nil {
		panic(fmt.Sprintf("embedded package registry is invalid: %v", err))
	}
	return r
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Names returns the registered package names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
