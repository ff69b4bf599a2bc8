package artifact

import "github.com/benchtop-io/benchtop/internal/schema"

// Predicate represents the comparison a filter field supports
type Predicate int

const (
	// Compare supports exact and range comparisons on numeric/boolean values
	Compare Predicate = iota
	// Contains is a partial-match predicate on text values
	Contains
	// Range is a from/to predicate on temporal values
	Range
	// Exact matches a single value (choices, references, identifiers)
	Exact
	// Membership matches any element of a many-valued relation
	Membership
)

// String returns the string representation of the predicate
func (p Predicate) String() string {
	switch p {
	case Compare:
		return "compare"
	case Contains:
		return "contains"
	case Range:
		return "range"
	case Exact:
		return "exact"
	case Membership:
		return "membership"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler for JSON output
func (p Predicate) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// FilterField is one queryable predicate on a generated filter
type FilterField struct {
	Name      string    `json:"name"`
	Predicate Predicate `json:"predicate"`
	Target    string    `json:"target,omitempty"` // qualified target schema for reference predicates
}

// FilterSpec is the generated query/filter definition for a schema
type FilterSpec struct {
	Model  string        `json:"model"`
	Fields []FilterField `json:"fields"`
}

// ArtifactKind identifies this as a filter artifact
func (f *FilterSpec) ArtifactKind() Kind { return Filter }

// ModelName returns the qualified schema name
func (f *FilterSpec) ModelName() string { return f.Model }

// FilterFactory builds query/filter definitions
type FilterFactory struct{}

// Kind returns the artifact kind this factory produces
func (ff *FilterFactory) Kind() Kind { return Filter }

// Generate maps each field to its filter predicate
func (ff *FilterFactory) Generate(s schema.Schema, fields []string) (Artifact, error) {
	spec := &FilterSpec{Model: s.Qualified(), Fields: make([]FilterField, 0, len(fields))}

	for _, name := range fields {
		field, err := schema.Resolve(s, name)
		if err != nil {
			return nil, err
		}

		pred := FilterField{Name: name}
		switch field.Kind {
		case schema.Scalar:
			pred.Predicate = Compare
		case schema.Text:
			pred.Predicate = Contains
		case schema.Temporal:
			pred.Predicate = Range
		case schema.Choice, schema.Identity:
			pred.Predicate = Exact
		case schema.Relation:
			pred.Predicate = Exact
			pred.Target = field.Related.Qualified()
		case schema.ManyRelation:
			pred.Predicate = Membership
			pred.Target = field.Related.Qualified()
		default:
			return nil, &UnsupportedKindError{Field: name, FieldKind: field.Kind, Artifact: Filter}
		}

		spec.Fields = append(spec.Fields, pred)
	}

	return spec, nil
}
