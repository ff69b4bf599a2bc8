package artifact

import "github.com/benchtop-io/benchtop/internal/schema"

// PanelSpec is the generated administrative interface for a schema: a column
// per resolved field, plus the text fields the panel's search box covers.
type PanelSpec struct {
	Model        string   `json:"model"`
	Columns      []string `json:"columns"`
	SearchFields []string `json:"search_fields,omitempty"`
}

// ArtifactKind identifies this as an admin artifact
func (p *PanelSpec) ArtifactKind() Kind { return Admin }

// ModelName returns the qualified schema name
func (p *PanelSpec) ModelName() string { return p.Model }

// AdminFactory builds administrative panels
type AdminFactory struct{}

// Kind returns the artifact kind this factory produces
func (af *AdminFactory) Kind() Kind { return Admin }

// Generate emits one column per resolved field, ordered as listed. Text
// fields additionally become search fields.
func (af *AdminFactory) Generate(s schema.Schema, fields []string) (Artifact, error) {
	spec := &PanelSpec{Model: s.Qualified(), Columns: make([]string, 0, len(fields))}

	for _, name := range fields {
		field, err := schema.Resolve(s, name)
		if err != nil {
			return nil, err
		}
		spec.Columns = append(spec.Columns, name)
		if field.Kind == schema.Text {
			spec.SearchFields = append(spec.SearchFields, name)
		}
	}

	return spec, nil
}
