package artifact

import "github.com/benchtop-io/benchtop/internal/schema"

// TransferColumn is one column of a bulk import/export mapping. When Via is
// set, the column carries the target schema's natural key instead of an
// opaque identifier.
type TransferColumn struct {
	Name   string `json:"name"`
	Target string `json:"target,omitempty"` // qualified target schema for relation columns
	Via    string `json:"via,omitempty"`    // natural key field on the target, if it declares one
}

// TransferSpec is the generated bulk import/export mapping for a schema
type TransferSpec struct {
	Model   string           `json:"model"`
	Columns []TransferColumn `json:"columns"`
}

// ArtifactKind identifies this as a transfer artifact
func (t *TransferSpec) ArtifactKind() Kind { return Transfer }

// ModelName returns the qualified schema name
func (t *TransferSpec) ModelName() string { return t.Model }

// TransferFactory builds bulk import/export mappings
type TransferFactory struct{}

// Kind returns the artifact kind this factory produces
func (tf *TransferFactory) Kind() Kind { return Transfer }

// Generate emits one column per resolved field. Relation columns resolve
// through the target's natural key when it exposes one.
func (tf *TransferFactory) Generate(s schema.Schema, fields []string) (Artifact, error) {
	spec := &TransferSpec{Model: s.Qualified(), Columns: make([]TransferColumn, 0, len(fields))}

	for _, name := range fields {
		field, err := schema.Resolve(s, name)
		if err != nil {
			return nil, err
		}

		col := TransferColumn{Name: name}
		if field.IsRelation() {
			col.Target = field.Related.Qualified()
			col.Via = field.Related.NaturalKey()
		}
		spec.Columns = append(spec.Columns, col)
	}

	return spec, nil
}
