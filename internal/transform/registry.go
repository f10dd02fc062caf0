// Package transform describes the source transformers a test engine can load.
//
// runcfg never runs a transformer. The registry only answers whether an
// identifier is known and whether the options configured for it are well formed.
package transform

import (
	"fmt"
	"sort"
	"sync"

	"github.com/wesleyorama2/runcfg/pkg/jsonschema"
)

// Transformer describes one known transformer.
type Transformer struct {
	// ID is the identifier used in transform rules
	ID string

	// Description is a short human readable summary
	Description string

	// OptionsSchema is an optional JSON Schema for the transformer's options
	OptionsSchema string

	schema *jsonschema.Schema
}

// Registry holds known transformers. It is safe for concurrent use and
// satisfies config.TransformerResolver.
type Registry struct {
	mu           sync.RWMutex
	transformers map[string]*Transformer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{transformers: make(map[string]*Transformer)}
}

// Register adds or replaces a transformer. The options schema, if any, is
// compiled immediately.
func (r *Registry) Register(t Transformer) error {
	if t.ID == "" {
		return fmt.Errorf("transformer id cannot be empty")
	}

	if t.OptionsSchema != "" {
		schema, err := jsonschema.Compile(t.ID+".options.json", t.OptionsSchema)
		if err != nil {
			return fmt.Errorf("transformer %s: %w", t.ID, err)
		}
		t.schema = schema
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.transformers[t.ID] = &t
	return nil
}

// Lookup returns the transformer registered under id.
func (r *Registry) Lookup(id string) (Transformer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.transformers[id]
	if !ok {
		return Transformer{}, false
	}
	return *t, true
}

// HasTransformer reports whether id is registered.
func (r *Registry) HasTransformer(id string) bool {
	_, ok := r.Lookup(id)
	return ok
}

// ValidateOptions checks options against the transformer's options schema.
// Transformers without a schema accept any options. Nil options are
// validated as an empty object.
func (r *Registry) ValidateOptions(id string, options map[string]interface{}) error {
	t, ok := r.Lookup(id)
	if !ok {
		return fmt.Errorf("unknown transformer %q", id)
	}
	if t.schema == nil {
		return nil
	}

	var value interface{} = map[string]interface{}{}
	if options != nil {
		value = options
	}
	if errs := t.schema.Validate(value); len(errs) > 0 {
		return errs
	}
	return nil
}

// IDs returns the registered identifiers, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.transformers))
	for id := range r.transformers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
