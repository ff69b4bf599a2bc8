// Package model provides the per-schema declarative configuration that drives
// artifact generation: which fields each artifact covers, caller-supplied
// overrides, and descriptive metadata. A configuration is validated once at
// registration and immutable afterwards, except for its lazily-built artifact
// cache.
package model

import (
	"fmt"
	"strings"
	"sync"

	"github.com/benchtop-io/benchtop/internal/artifact"
	"github.com/benchtop-io/benchtop/internal/schema"
)

// Meta is the descriptive metadata block attached to a configuration
type Meta struct {
	Label       string `json:"label,omitempty"`
	LabelPlural string `json:"label_plural,omitempty"`
	Description string `json:"description,omitempty"`
}

// Config declares how artifacts are derived for one schema.
// Fields is the shared parent list; ArtifactFields narrows it per artifact;
// when both are absent the schema's safe field set applies.
type Config struct {
	Schema         schema.Schema
	Fields         []string
	ArtifactFields map[artifact.Kind][]string
	Overrides      map[artifact.Kind]artifact.Artifact
	Meta           Meta

	mu    sync.Mutex
	built map[artifact.Kind]artifact.Artifact
}

// New creates a configuration for a schema
func New(s schema.Schema) *Config {
	return &Config{Schema: s}
}

// InvalidConfigError aggregates every problem found while validating a
// configuration. Validation never stops at the first failure.
type InvalidConfigError struct {
	Model  string
	Issues []error
}

// Error implements the error interface
func (e *InvalidConfigError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "configuration for %s invalid with %d problems:", e.Model, len(e.Issues))
	for i, issue := range e.Issues {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, issue.Error())
	}
	return b.String()
}

// Unwrap exposes the individual problems for errors.Is/As
func (e *InvalidConfigError) Unwrap() []error { return e.Issues }

// Validate checks every declared field name and every override against the
// schema, aggregating all failures into a single error
func (c *Config) Validate() error {
	if c.Schema == nil {
		return &InvalidConfigError{Model: "?", Issues: []error{fmt.Errorf("configuration has no schema")}}
	}

	var issues []error

	for _, name := range c.Fields {
		if _, err := schema.Resolve(c.Schema, name); err != nil {
			issues = append(issues, err)
		}
	}

	// Deterministic kind order keeps aggregated messages stable
	for _, kind := range artifact.Kinds {
		for _, name := range c.ArtifactFields[kind] {
			if _, err := schema.Resolve(c.Schema, name); err != nil {
				issues = append(issues, err)
			}
		}
	}

	for _, kind := range artifact.Kinds {
		if supplied, ok := c.Overrides[kind]; ok {
			if err := artifact.CheckOverride(kind, supplied); err != nil {
				issues = append(issues, err)
			}
		}
	}

	if len(issues) > 0 {
		return &InvalidConfigError{Model: c.Schema.Qualified(), Issues: issues}
	}
	return nil
}

// FieldsFor resolves the field list for an artifact kind: the per-artifact
// list when present, then the shared list, then the schema's safe field set.
func (c *Config) FieldsFor(kind artifact.Kind) []string {
	if fields := c.ArtifactFields[kind]; len(fields) > 0 {
		return fields
	}
	if len(c.Fields) > 0 {
		return c.Fields
	}
	return schema.SafeFields(c.Schema)
}

// Get returns the artifact for a kind, generating it on first access.
// An override replaces generation entirely. The factory runs at most once
// per kind even under concurrent access; a failed generation is not cached
// and a later call retries.
func (c *Config) Get(kind artifact.Kind) (artifact.Artifact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if a, ok := c.built[kind]; ok {
		return a, nil
	}

	a, err := c.build(kind)
	if err != nil {
		return nil, err
	}

	if c.built == nil {
		c.built = make(map[artifact.Kind]artifact.Artifact)
	}
	c.built[kind] = a
	return a, nil
}

// build produces the artifact for a kind; callers hold c.mu
func (c *Config) build(kind artifact.Kind) (artifact.Artifact, error) {
	if supplied, ok := c.Overrides[kind]; ok {
		return supplied, nil
	}

	factory, ok := artifact.For(kind)
	if !ok {
		return nil, fmt.Errorf("no factory for artifact kind %s", kind)
	}
	return factory.Generate(c.Schema, c.FieldsFor(kind))
}
