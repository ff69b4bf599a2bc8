package artifact

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchtop-io/benchtop/internal/schema"
)

func siteSchema() *schema.Def {
	return schema.New("samples", "site", schema.SampleBase).
		WithNaturalKey("code").
		AddField(schema.FieldSpec{Name: "id", Kind: schema.Identity}).
		AddField(schema.FieldSpec{Name: "code", Kind: schema.Text})
}

func waterSampleSchema() *schema.Def {
	return schema.New("samples", "water_sample", schema.SampleBase).
		AddField(schema.FieldSpec{Name: "id", Kind: schema.Identity}).
		AddField(schema.FieldSpec{Name: "name", Kind: schema.Text}).
		AddField(schema.FieldSpec{Name: "ph", Kind: schema.Scalar}).
		AddField(schema.FieldSpec{Name: "collected", Kind: schema.Temporal}).
		AddField(schema.FieldSpec{Name: "status", Kind: schema.Choice, Choices: []string{"raw", "analyzed"}}).
		AddField(schema.FieldSpec{Name: "site", Kind: schema.Relation, Related: siteSchema()}).
		AddField(schema.FieldSpec{Name: "tags", Kind: schema.ManyRelation, Nullable: true,
			Related: schema.New("core", "tag", schema.SampleBase).
				AddField(schema.FieldSpec{Name: "label", Kind: schema.Text})})
}

func TestFilterFactory_Mapping(t *testing.T) {
	s := waterSampleSchema()

	a, err := (&FilterFactory{}).Generate(s, []string{"name", "ph", "collected", "status", "site", "tags"})
	require.NoError(t, err)

	spec, ok := a.(*FilterSpec)
	require.True(t, ok)
	assert.Equal(t, "samples.water_sample", spec.ModelName())

	byName := map[string]FilterField{}
	for _, f := range spec.Fields {
		byName[f.Name] = f
	}

	assert.Equal(t, Contains, byName["name"].Predicate)
	assert.Equal(t, Compare, byName["ph"].Predicate)
	assert.Equal(t, Range, byName["collected"].Predicate)
	assert.Equal(t, Exact, byName["status"].Predicate)
	assert.Equal(t, Exact, byName["site"].Predicate)
	assert.Equal(t, "samples.site", byName["site"].Target)
	assert.Equal(t, Membership, byName["tags"].Predicate)
}

func TestFormFactory_Mapping(t *testing.T) {
	s := waterSampleSchema()

	a, err := (&FormFactory{}).Generate(s, []string{"name", "ph", "collected", "status", "site", "tags"})
	require.NoError(t, err)

	spec := a.(*FormSpec)
	require.Len(t, spec.Fields, 6)

	assert.Equal(t, InputText, spec.Fields[0].Widget)
	assert.Equal(t, InputNumber, spec.Fields[1].Widget)
	assert.Equal(t, InputDateTime, spec.Fields[2].Widget)
	assert.Equal(t, SelectOne, spec.Fields[3].Widget)
	assert.Equal(t, []string{"raw", "analyzed"}, spec.Fields[3].Choices)
	assert.Equal(t, PickReference, spec.Fields[4].Widget)
	assert.Equal(t, SelectMany, spec.Fields[5].Widget)

	// Nullability drives requiredness
	assert.True(t, spec.Fields[0].Required)
	assert.False(t, spec.Fields[5].Required)
}

func TestFormFactory_IdentityUnsupported(t *testing.T) {
	s := waterSampleSchema()

	_, err := (&FormFactory{}).Generate(s, []string{"id"})
	require.Error(t, err)

	var unsupported *UnsupportedKindError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "id", unsupported.Field)
	assert.Equal(t, schema.Identity, unsupported.FieldKind)
	assert.Equal(t, Form, unsupported.Artifact)
}

func TestInterchangeFactory_Mapping(t *testing.T) {
	s := waterSampleSchema()

	a, err := (&InterchangeFactory{}).Generate(s, []string{"id", "name", "ph", "collected", "status", "site", "tags"})
	require.NoError(t, err)

	spec := a.(*InterchangeSpec)
	byName := map[string]InterchangeField{}
	for _, f := range spec.Fields {
		byName[f.Name] = f
	}

	assert.Equal(t, WireID, byName["id"].Type)
	assert.Equal(t, WireString, byName["name"].Type)
	assert.Equal(t, WireNumber, byName["ph"].Type)
	assert.Equal(t, WireDateTime, byName["collected"].Type)
	assert.Equal(t, WireEnum, byName["status"].Type)
	assert.Equal(t, WireRef, byName["site"].Type)
	assert.Equal(t, WireRefList, byName["tags"].Type)
	assert.True(t, byName["tags"].Nullable)
}

func TestTableFactory_ColumnsInOrder(t *testing.T) {
	s := waterSampleSchema()

	a, err := (&TableFactory{}).Generate(s, []string{"collected", "name", "id"})
	require.NoError(t, err)

	spec := a.(*TableSpec)
	require.Len(t, spec.Columns, 3)
	assert.Equal(t, "collected", spec.Columns[0].Name)
	assert.Equal(t, "name", spec.Columns[1].Name)
	assert.Equal(t, "id", spec.Columns[2].Name)
}

func TestAdminFactory_SearchFields(t *testing.T) {
	s := waterSampleSchema()

	a, err := (&AdminFactory{}).Generate(s, []string{"name", "ph", "collected"})
	require.NoError(t, err)

	spec := a.(*PanelSpec)
	assert.Equal(t, []string{"name", "ph", "collected"}, spec.Columns)
	assert.Equal(t, []string{"name"}, spec.SearchFields)
}

func TestTransferFactory_NaturalKey(t *testing.T) {
	s := waterSampleSchema()

	a, err := (&TransferFactory{}).Generate(s, []string{"name", "site", "tags"})
	require.NoError(t, err)

	spec := a.(*TransferSpec)
	byName := map[string]TransferColumn{}
	for _, c := range spec.Columns {
		byName[c.Name] = c
	}

	// site declares a natural key, tag does not
	assert.Equal(t, "code", byName["site"].Via)
	assert.Equal(t, "samples.site", byName["site"].Target)
	assert.Empty(t, byName["tags"].Via)
	assert.Empty(t, byName["name"].Target)
}

func TestFactories_DottedPathFields(t *testing.T) {
	s := waterSampleSchema()

	a, err := (&TableFactory{}).Generate(s, []string{"name", "site.code"})
	require.NoError(t, err)

	spec := a.(*TableSpec)
	assert.Equal(t, "site.code", spec.Columns[1].Name)
	assert.Equal(t, schema.Text, spec.Columns[1].Kind)
}
