package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchtop-io/benchtop/internal/artifact"
)

const sampleCatalog = `
schemas:
  - name: site
    namespace: samples
    base: sample
    natural_key: code
    fields:
      - name: id
        kind: identity
      - name: code
        kind: text
  - name: water_sample
    namespace: samples
    base: sample
    fields:
      - name: id
        kind: identity
      - name: name
        kind: text
      - name: ph
        kind: scalar
      - name: collected
        kind: temporal
      - name: site
        kind: relation
        target: samples.site
  - name: ph_reading
    namespace: lab
    base: measurement
    fields:
      - name: id
        kind: identity
      - name: value
        kind: scalar

models:
  - schema: samples.water_sample
    label: Water sample
    fields: [name, ph, collected]
    artifact_fields:
      table: [name, collected]
  - schema: lab.ph_reading
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	reg, err := Load(writeCatalog(t, sampleCatalog))
	require.NoError(t, err)

	assert.Equal(t, 2, reg.Len())
	assert.Len(t, reg.Samples(), 1)
	assert.Len(t, reg.Measurements(), 1)

	cfg, ok := reg.GetByName("samples.water_sample")
	require.True(t, ok)
	assert.Equal(t, "Water sample", cfg.Meta.Label)
	assert.Equal(t, []string{"name", "ph", "collected"}, cfg.FieldsFor(artifact.Form))
	assert.Equal(t, []string{"name", "collected"}, cfg.FieldsFor(artifact.Table))
}

func TestLoad_RelationTargetLinked(t *testing.T) {
	reg, err := Load(writeCatalog(t, sampleCatalog))
	require.NoError(t, err)

	cfg, ok := reg.GetByName("samples.water_sample")
	require.True(t, ok)

	field, ok := cfg.Schema.Field("site")
	require.True(t, ok)
	require.NotNil(t, field.Related)
	assert.Equal(t, "samples.site", field.Related.Qualified())
	assert.Equal(t, "code", field.Related.NaturalKey())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestBuild_UnknownBase(t *testing.T) {
	_, err := Build(&File{
		Schemas: []SchemaDecl{{Name: "x", Namespace: "ns", Base: "specimen"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown base")
}

func TestBuild_UnknownRelationTarget(t *testing.T) {
	_, err := Build(&File{
		Schemas: []SchemaDecl{{
			Name: "x", Namespace: "ns", Base: "sample",
			Fields: []FieldDecl{{Name: "ref", Kind: "relation", Target: "ns.missing"}},
		}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not declared in catalog")
}

func TestBuild_UnknownFieldKind(t *testing.T) {
	_, err := Build(&File{
		Schemas: []SchemaDecl{{
			Name: "x", Namespace: "ns", Base: "sample",
			Fields: []FieldDecl{{Name: "f", Kind: "blob"}},
		}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field kind")
}

func TestBuild_ModelWithoutSchema(t *testing.T) {
	_, err := Build(&File{
		Models: []ModelDecl{{Schema: "ns.ghost"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not declared")
}

func TestBuild_InvalidModelFieldsPropagate(t *testing.T) {
	_, err := Build(&File{
		Schemas: []SchemaDecl{{
			Name: "x", Namespace: "ns", Base: "sample",
			Fields: []FieldDecl{{Name: "name", Kind: "text"}},
		}},
		Models: []ModelDecl{{Schema: "ns.x", Fields: []string{"nmae"}}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean")
}
