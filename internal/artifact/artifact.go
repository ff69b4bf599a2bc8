// Package artifact generates the interface components derived from a registered
// schema: editable forms, tabular views, query filters, interchange schemas,
// import/export mappings, and admin panels. Each generator maps field kinds to
// an artifact-appropriate representation from a fixed mapping table.
package artifact

import (
	"fmt"

	"github.com/benchtop-io/benchtop/internal/schema"
)

// Kind identifies one of the six generated artifact types
type Kind int

const (
	Form Kind = iota
	Table
	Filter
	Interchange
	Transfer
	Admin
)

// Kinds lists every artifact kind in a stable order
var Kinds = []Kind{Form, Table, Filter, Interchange, Transfer, Admin}

// String returns the string representation of the artifact kind
func (k Kind) String() string {
	switch k {
	case Form:
		return "form"
	case Table:
		return "table"
	case Filter:
		return "filter"
	case Interchange:
		return "interchange"
	case Transfer:
		return "transfer"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}

// ParseKind converts a string to an artifact Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "form":
		return Form, nil
	case "table":
		return Table, nil
	case "filter":
		return Filter, nil
	case "interchange":
		return Interchange, nil
	case "transfer":
		return Transfer, nil
	case "admin":
		return Admin, nil
	default:
		return 0, fmt.Errorf("unknown artifact kind: %s", s)
	}
}

// Artifact is a generated interface component. Implementations are immutable
// once returned from a factory and safe to share across callers.
type Artifact interface {
	// ArtifactKind identifies which of the six artifact types this is
	ArtifactKind() Kind

	// ModelName returns the qualified name of the schema it was derived from
	ModelName() string
}

// Factory builds one artifact kind from a schema and a resolved field list
type Factory interface {
	// Kind returns the artifact kind this factory produces
	Kind() Kind

	// Generate builds the artifact for the given schema and fields.
	// Field names must already resolve on the schema; the only expected
	// failure is a field kind the artifact cannot represent.
	Generate(s schema.Schema, fields []string) (Artifact, error)
}

// factories maps each kind to its generator
var factories = map[Kind]Factory{
	Form:        &FormFactory{},
	Table:       &TableFactory{},
	Filter:      &FilterFactory{},
	Interchange: &InterchangeFactory{},
	Transfer:    &TransferFactory{},
	Admin:       &AdminFactory{},
}

// For returns the factory for an artifact kind
func For(kind Kind) (Factory, bool) {
	f, ok := factories[kind]
	return f, ok
}

// UnsupportedKindError reports a field whose kind has no representation for
// the requested artifact type. Generation is lazy, so this surfaces on first
// access rather than at registration.
type UnsupportedKindError struct {
	Field     string
	FieldKind schema.Kind
	Artifact  Kind
}

// Error implements the error interface
func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("field %q: kind %s has no %s representation", e.Field, e.FieldKind, e.Artifact)
}

// InvalidOverrideError reports a caller-supplied artifact that does not
// satisfy the minimal contract for its declared kind
type InvalidOverrideError struct {
	Kind     Kind
	Supplied Artifact
}

// Error implements the error interface
func (e *InvalidOverrideError) Error() string {
	if e.Supplied == nil {
		return fmt.Sprintf("override for %s artifact is nil", e.Kind)
	}
	return fmt.Sprintf("override for %s artifact reports kind %s", e.Kind, e.Supplied.ArtifactKind())
}

// CheckOverride verifies a caller-supplied artifact satisfies the minimal
// structural contract for the given kind
func CheckOverride(kind Kind, supplied Artifact) error {
	if supplied == nil || supplied.ArtifactKind() != kind {
		return &InvalidOverrideError{Kind: kind, Supplied: supplied}
	}
	return nil
}
