// Package registry provides the process-wide catalog of registered schemas and
// their model configurations. Registration happens once, during initialization;
// lookups and the family discovery views are safe for concurrent readers.
package registry

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/benchtop-io/benchtop/internal/model"
	"github.com/benchtop-io/benchtop/internal/schema"
)

// Entry is one registered schema with its configuration. Entries are created
// at registration and never mutated; the family is classified once and stored.
type Entry struct {
	Schema schema.Schema
	Config *model.Config
	Family schema.Family
	Site   string // file:line of the registering call
}

// Registry is an append-only catalog mapping schema identity to configuration
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	order   []string
}

// New creates an empty registry
func New() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// DuplicateError reports a second registration of an already-registered
// schema, including where the first registration happened
type DuplicateError struct {
	Model string
	Site  string
}

// Error implements the error interface
func (e *DuplicateError) Error() string {
	if e.Site != "" {
		return fmt.Sprintf("model %s is already registered (first registered at %s)", e.Model, e.Site)
	}
	return fmt.Sprintf("model %s is already registered", e.Model)
}

// UnknownFamilyError reports a schema that derives from neither recognized
// abstract base
type UnknownFamilyError struct {
	Model     string
	Ancestors []string
}

// Error implements the error interface
func (e *UnknownFamilyError) Error() string {
	return fmt.Sprintf("model %s derives from neither %s nor %s (ancestors: %v)",
		e.Model, schema.SampleBase, schema.MeasurementBase, e.Ancestors)
}

// Register validates a configuration and adds it to the catalog. Registration
// is atomic: on any failure no entry is stored. The second registration of a
// schema fails with a DuplicateError carrying the original registration site.
func (r *Registry) Register(s schema.Schema, cfg *model.Config) error {
	if s == nil || cfg == nil || cfg.Schema == nil {
		return fmt.Errorf("register: schema and configuration are required")
	}
	if cfg.Schema != s {
		return fmt.Errorf("register: configuration belongs to %s, not %s",
			cfg.Schema.Qualified(), s.Qualified())
	}

	site := callerSite()

	r.mu.Lock()
	defer r.mu.Unlock()

	name := s.Qualified()
	if existing, ok := r.entries[name]; ok {
		return &DuplicateError{Model: name, Site: existing.Site}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	family := schema.Classify(s)
	if family == schema.FamilyUnknown {
		return &UnknownFamilyError{Model: name, Ancestors: s.Ancestors()}
	}

	r.entries[name] = &Entry{Schema: s, Config: cfg, Family: family, Site: site}
	r.order = append(r.order, name)
	return nil
}

// callerSite captures the file:line of the code that called Register
func callerSite() string {
	if _, file, line, ok := runtime.Caller(2); ok {
		return fmt.Sprintf("%s:%d", file, line)
	}
	return ""
}

// Get returns the configuration registered for a schema. The boolean result
// distinguishes an expected miss from a present entry.
func (r *Registry) Get(s schema.Schema) (*model.Config, bool) {
	if s == nil {
		return nil, false
	}
	return r.GetByName(s.Qualified())
}

// GetByName returns the configuration registered under a "namespace.name"
// identifier
func (r *Registry) GetByName(name string) (*model.Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return entry.Config, true
}

// Entry returns the full registered entry for a qualified name
func (r *Registry) Entry(name string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	return entry, ok
}

// Entries returns every registered entry in registration order
func (r *Registry) Entries() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Entry, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name])
	}
	return out
}

// Names returns every registered qualified name in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered schemas
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Samples returns every sample-family schema in registration order
func (r *Registry) Samples() []schema.Schema {
	return r.byFamily(schema.FamilySample)
}

// Measurements returns every measurement-family schema in registration order
func (r *Registry) Measurements() []schema.Schema {
	return r.byFamily(schema.FamilyMeasurement)
}

func (r *Registry) byFamily(family schema.Family) []schema.Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []schema.Schema
	for _, name := range r.order {
		if entry := r.entries[name]; entry.Family == family {
			out = append(out, entry.Schema)
		}
	}
	return out
}
