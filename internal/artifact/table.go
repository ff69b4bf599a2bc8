package artifact

import "github.com/benchtop-io/benchtop/internal/schema"

// TableColumn is one column of a generated tabular view
type TableColumn struct {
	Name string      `json:"name"`
	Kind schema.Kind `json:"-"`
}

// TableSpec is the generated tabular list view for a schema. Columns appear
// in resolved-field order; every field kind renders as a column.
type TableSpec struct {
	Model   string        `json:"model"`
	Columns []TableColumn `json:"columns"`
}

// ArtifactKind identifies this as a table artifact
func (t *TableSpec) ArtifactKind() Kind { return Table }

// ModelName returns the qualified schema name
func (t *TableSpec) ModelName() string { return t.Model }

// TableFactory builds tabular list views
type TableFactory struct{}

// Kind returns the artifact kind this factory produces
func (tf *TableFactory) Kind() Kind { return Table }

// Generate emits one column per resolved field, ordered as listed
func (tf *TableFactory) Generate(s schema.Schema, fields []string) (Artifact, error) {
	spec := &TableSpec{Model: s.Qualified(), Columns: make([]TableColumn, 0, len(fields))}

	for _, name := range fields {
		field, err := schema.Resolve(s, name)
		if err != nil {
			return nil, err
		}
		spec.Columns = append(spec.Columns, TableColumn{Name: name, Kind: field.Kind})
	}

	return spec, nil
}
