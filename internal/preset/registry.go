// Package preset provides named bundles of configuration defaults.
package preset

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/wesleyorama2/runcfg/internal/config"
)

// ErrNotFound is wrapped by every lookup that does not know a preset name.
var ErrNotFound = errors.New("preset not found")

// Registry is an in-memory set of presets. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	presets map[string]config.Raw
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{presets: make(map[string]config.Raw)}
}

// Register adds or replaces the preset called name.
func (r *Registry) Register(name string, defaults config.Raw) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presets[name] = defaults.Clone()
}

// Lookup returns a copy of the preset called name.
func (r *Registry) Lookup(name string) (config.Raw, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	raw, ok := r.presets[name]
	if !ok {
		return config.Raw{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return raw.Clone(), nil
}

// Names returns the registered preset names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Chain tries each lookup in order. A lookup reporting ErrNotFound passes
// the name on to the next one; any other error stops the chain.
type Chain []config.PresetLookup

// Lookup implements config.PresetLookup.
func (c Chain) Lookup(name string) (config.Raw, error) {
	for _, lookup := range c {
		raw, err := lookup.Lookup(name)
		if err == nil {
			return raw, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return config.Raw{}, err
		}
	}
	return config.Raw{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}
