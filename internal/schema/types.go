// Package schema provides the field-level description of registered data models.
// It defines the closed set of field kinds, the Schema contract consumed from the
// persistence framework, and a concrete Def builder used wherever schemas are
// declared in-process (catalogs, tests, examples).
package schema

import "fmt"

// Kind represents the closed set of field kinds a schema can declare
type Kind int

const (
	// Scalar covers numeric and boolean fields
	Scalar Kind = iota
	Text
	Temporal
	Choice
	// Relation is a single-valued reference to another schema
	Relation
	// ManyRelation is a multi-valued reference to another schema
	ManyRelation
	// Identity covers primary keys, discriminators, and inheritance pointers
	Identity
)

// String returns the string representation of the field kind
func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Text:
		return "text"
	case Temporal:
		return "temporal"
	case Choice:
		return "choice"
	case Relation:
		return "relation"
	case ManyRelation:
		return "many_relation"
	case Identity:
		return "identity"
	default:
		return "unknown"
	}
}

// ParseKind converts a string to a Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "scalar":
		return Scalar, nil
	case "text":
		return Text, nil
	case "temporal":
		return Temporal, nil
	case "choice":
		return Choice, nil
	case "relation":
		return Relation, nil
	case "many_relation":
		return ManyRelation, nil
	case "identity":
		return Identity, nil
	default:
		return 0, fmt.Errorf("unknown field kind: %s", s)
	}
}

// FieldSpec describes a single declared field
type FieldSpec struct {
	Name     string
	Kind     Kind
	Nullable bool

	// Related is the target schema for Relation and ManyRelation fields
	Related *Def

	// Choices holds the allowed values for Choice fields
	Choices []string

	// System marks auto-managed or otherwise non-editable fields
	System bool
}

// IsRelation returns true for single- and many-valued relation kinds
func (f FieldSpec) IsRelation() bool {
	return f.Kind == Relation || f.Kind == ManyRelation
}

// Editable returns true if the field belongs in the default field set
func (f FieldSpec) Editable() bool {
	return !f.System && f.Kind != Identity
}

// Recognized abstract bases. Every registrable schema ultimately derives
// from exactly one of these.
const (
	SampleBase      = "core.Sample"
	MeasurementBase = "core.Measurement"
)

// Family partitions registered schemas for discovery
type Family int

const (
	FamilyUnknown Family = iota
	FamilySample
	FamilyMeasurement
)

// String returns the string representation of the family
func (f Family) String() string {
	switch f {
	case FamilySample:
		return "sample"
	case FamilyMeasurement:
		return "measurement"
	default:
		return "unknown"
	}
}

// Schema is the description contract the persistence framework supplies for a
// registered data model. Implementations must return fields in declaration order.
type Schema interface {
	// Name returns the schema's bare name
	Name() string

	// Namespace returns the owning namespace (application/package label)
	Namespace() string

	// Qualified returns the "namespace.name" identifier
	Qualified() string

	// Fields returns every declared field in declaration order
	Fields() []FieldSpec

	// Field looks up a declared field by name
	Field(name string) (FieldSpec, bool)

	// NaturalKey returns the name of the human-readable key field, or ""
	NaturalKey() string

	// Ancestors returns the abstract base chain, most-derived first
	Ancestors() []string
}

// Classify walks a schema's ancestry and reports which recognized abstract
// base it derives from. Returns FamilyUnknown when neither base appears.
func Classify(s Schema) Family {
	for _, base := range s.Ancestors() {
		switch base {
		case SampleBase:
			return FamilySample
		case MeasurementBase:
			return FamilyMeasurement
		}
	}
	return FamilyUnknown
}

// Def is an in-process Schema implementation built field by field.
// It backs catalog-declared schemas and test fixtures.
type Def struct {
	name       string
	namespace  string
	naturalKey string
	ancestors  []string
	fields     []FieldSpec
	index      map[string]int
}

// New creates an empty schema definition deriving from the given bases
func New(namespace, name string, ancestors ...string) *Def {
	return &Def{
		name:      name,
		namespace: namespace,
		ancestors: ancestors,
		index:     make(map[string]int),
	}
}

// AddField appends a field declaration. Redeclaring a name replaces the
// earlier declaration in place, preserving its position.
func (d *Def) AddField(f FieldSpec) *Def {
	if i, ok := d.index[f.Name]; ok {
		d.fields[i] = f
		return d
	}
	d.index[f.Name] = len(d.fields)
	d.fields = append(d.fields, f)
	return d
}

// WithNaturalKey declares the field exported in place of opaque identifiers
func (d *Def) WithNaturalKey(field string) *Def {
	d.naturalKey = field
	return d
}

// Name returns the schema's bare name
func (d *Def) Name() string { return d.name }

// Namespace returns the owning namespace
func (d *Def) Namespace() string { return d.namespace }

// Qualified returns the "namespace.name" identifier
func (d *Def) Qualified() string { return d.namespace + "." + d.name }

// Fields returns every declared field in declaration order
func (d *Def) Fields() []FieldSpec {
	out := make([]FieldSpec, len(d.fields))
	copy(out, d.fields)
	return out
}

// Field looks up a declared field by name
func (d *Def) Field(name string) (FieldSpec, bool) {
	if i, ok := d.index[name]; ok {
		return d.fields[i], true
	}
	return FieldSpec{}, false
}

// NaturalKey returns the declared natural key field name, or ""
func (d *Def) NaturalKey() string { return d.naturalKey }

// Ancestors returns the abstract base chain
func (d *Def) Ancestors() []string {
	out := make([]string, len(d.ancestors))
	copy(out, d.ancestors)
	return out
}
