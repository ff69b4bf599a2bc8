package artifact

import "github.com/benchtop-io/benchtop/internal/schema"

// WireType represents how a field is carried in the interchange schema
type WireType int

const (
	WireNumber WireType = iota
	WireString
	// WireDateTime is serialized in ISO 8601 form
	WireDateTime
	WireEnum
	// WireRef is a nested or linked reference to another schema
	WireRef
	WireRefList
	// WireID is an opaque identifier
	WireID
)

// String returns the string representation of the wire type
func (w WireType) String() string {
	switch w {
	case WireNumber:
		return "number"
	case WireString:
		return "string"
	case WireDateTime:
		return "datetime"
	case WireEnum:
		return "enum"
	case WireRef:
		return "ref"
	case WireRefList:
		return "ref_list"
	case WireID:
		return "id"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler for JSON output
func (w WireType) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// InterchangeField is one field of the data-interchange schema
type InterchangeField struct {
	Name     string   `json:"name"`
	Type     WireType `json:"type"`
	Nullable bool     `json:"nullable"`
	Choices  []string `json:"choices,omitempty"`
	Target   string   `json:"target,omitempty"` // qualified target schema for references
}

// InterchangeSpec is the generated data-interchange schema for a model
type InterchangeSpec struct {
	Model  string             `json:"model"`
	Fields []InterchangeField `json:"fields"`
}

// ArtifactKind identifies this as an interchange artifact
func (i *InterchangeSpec) ArtifactKind() Kind { return Interchange }

// ModelName returns the qualified schema name
func (i *InterchangeSpec) ModelName() string { return i.Model }

// InterchangeFactory builds data-interchange schemas
type InterchangeFactory struct{}

// Kind returns the artifact kind this factory produces
func (inf *InterchangeFactory) Kind() Kind { return Interchange }

// Generate maps each field to its wire representation
func (inf *InterchangeFactory) Generate(s schema.Schema, fields []string) (Artifact, error) {
	spec := &InterchangeSpec{Model: s.Qualified(), Fields: make([]InterchangeField, 0, len(fields))}

	for _, name := range fields {
		field, err := schema.Resolve(s, name)
		if err != nil {
			return nil, err
		}

		wire := InterchangeField{Name: name, Nullable: field.Nullable}
		switch field.Kind {
		case schema.Scalar:
			wire.Type = WireNumber
		case schema.Text:
			wire.Type = WireString
		case schema.Temporal:
			wire.Type = WireDateTime
		case schema.Choice:
			wire.Type = WireEnum
			wire.Choices = field.Choices
		case schema.Relation:
			wire.Type = WireRef
			wire.Target = field.Related.Qualified()
		case schema.ManyRelation:
			wire.Type = WireRefList
			wire.Target = field.Related.Qualified()
		case schema.Identity:
			wire.Type = WireID
		default:
			return nil, &UnsupportedKindError{Field: name, FieldKind: field.Kind, Artifact: Interchange}
		}

		spec.Fields = append(spec.Fields, wire)
	}

	return spec, nil
}
