package artifact

import "github.com/benchtop-io/benchtop/internal/schema"

// Widget represents the input control used for a form field
type Widget int

const (
	InputNumber Widget = iota
	InputText
	InputDateTime
	SelectOne
	PickReference
	SelectMany
)

// String returns the string representation of the widget
func (w Widget) String() string {
	switch w {
	case InputNumber:
		return "number_input"
	case InputText:
		return "text_input"
	case InputDateTime:
		return "datetime_input"
	case SelectOne:
		return "select"
	case PickReference:
		return "reference_picker"
	case SelectMany:
		return "multi_select"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler for JSON output
func (w Widget) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// FormField is one editable input on a generated form
type FormField struct {
	Name     string   `json:"name"`
	Widget   Widget   `json:"widget"`
	Required bool     `json:"required"`
	Choices  []string `json:"choices,omitempty"`
	Target   string   `json:"target,omitempty"` // qualified target schema for reference widgets
}

// FormSpec is the generated editable-record form for a schema
type FormSpec struct {
	Model  string      `json:"model"`
	Fields []FormField `json:"fields"`
}

// ArtifactKind identifies this as a form artifact
func (f *FormSpec) ArtifactKind() Kind { return Form }

// ModelName returns the qualified schema name
func (f *FormSpec) ModelName() string { return f.Model }

// FormFactory builds editable-record forms
type FormFactory struct{}

// Kind returns the artifact kind this factory produces
func (ff *FormFactory) Kind() Kind { return Form }

// Generate maps each field to an input widget. Identity fields are not
// editable and have no form representation.
func (ff *FormFactory) Generate(s schema.Schema, fields []string) (Artifact, error) {
	spec := &FormSpec{Model: s.Qualified(), Fields: make([]FormField, 0, len(fields))}

	for _, name := range fields {
		field, err := schema.Resolve(s, name)
		if err != nil {
			return nil, err
		}

		input := FormField{Name: name, Required: !field.Nullable}
		switch field.Kind {
		case schema.Scalar:
			input.Widget = InputNumber
		case schema.Text:
			input.Widget = InputText
		case schema.Temporal:
			input.Widget = InputDateTime
		case schema.Choice:
			input.Widget = SelectOne
			input.Choices = field.Choices
		case schema.Relation:
			input.Widget = PickReference
			input.Target = field.Related.Qualified()
		case schema.ManyRelation:
			input.Widget = SelectMany
			input.Target = field.Related.Qualified()
		default:
			return nil, &UnsupportedKindError{Field: name, FieldKind: field.Kind, Artifact: Form}
		}

		spec.Fields = append(spec.Fields, input)
	}

	return spec, nil
}
