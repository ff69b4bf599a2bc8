package model

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchtop-io/benchtop/internal/artifact"
	"github.com/benchtop-io/benchtop/internal/schema"
)

func waterSampleSchema() *schema.Def {
	site := schema.New("samples", "site", schema.SampleBase).
		WithNaturalKey("code").
		AddField(schema.FieldSpec{Name: "code", Kind: schema.Text})

	return schema.New("samples", "water_sample", schema.SampleBase).
		AddField(schema.FieldSpec{Name: "id", Kind: schema.Identity}).
		AddField(schema.FieldSpec{Name: "name", Kind: schema.Text}).
		AddField(schema.FieldSpec{Name: "ph", Kind: schema.Scalar}).
		AddField(schema.FieldSpec{Name: "collected", Kind: schema.Temporal}).
		AddField(schema.FieldSpec{Name: "site", Kind: schema.Relation, Related: site})
}

func TestValidate_AggregatesAllProblems(t *testing.T) {
	cfg := New(waterSampleSchema())
	cfg.Fields = []string{"name", "bogus_one", "bogus_two"}
	cfg.ArtifactFields = map[artifact.Kind][]string{
		artifact.Table: {"bogus_three"},
	}
	cfg.Overrides = map[artifact.Kind]artifact.Artifact{
		artifact.Form: &artifact.FilterSpec{Model: "samples.water_sample"},
	}

	err := cfg.Validate()
	require.Error(t, err)

	var invalid *InvalidConfigError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "samples.water_sample", invalid.Model)

	// Three bad fields plus one bad override, never just the first
	require.Len(t, invalid.Issues, 4)
	assert.Contains(t, err.Error(), "bogus_one")
	assert.Contains(t, err.Error(), "bogus_two")
	assert.Contains(t, err.Error(), "bogus_three")
}

func TestValidate_SuggestionsForTypo(t *testing.T) {
	cfg := New(waterSampleSchema())
	cfg.Fields = []string{"nmae"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean")
	assert.Contains(t, err.Error(), "name")
}

func TestValidate_DottedPathsAllowed(t *testing.T) {
	cfg := New(waterSampleSchema())
	cfg.Fields = []string{"name", "site.code"}

	assert.NoError(t, cfg.Validate())
}

func TestFieldsFor_Precedence(t *testing.T) {
	cfg := New(waterSampleSchema())
	cfg.Fields = []string{"a", "b"}
	cfg.ArtifactFields = map[artifact.Kind][]string{
		artifact.Table: {"c"},
	}

	// Per-artifact list wins for its kind; the shared list covers the rest
	assert.Equal(t, []string{"c"}, cfg.FieldsFor(artifact.Table))
	assert.Equal(t, []string{"a", "b"}, cfg.FieldsFor(artifact.Form))
}

func TestFieldsFor_DefaultsToSafeFields(t *testing.T) {
	cfg := New(waterSampleSchema())

	expected := []string{"name", "ph", "collected", "site"}
	for _, kind := range artifact.Kinds {
		assert.Equal(t, expected, cfg.FieldsFor(kind), "kind %s", kind)
	}
}

func TestGet_IdempotentGeneration(t *testing.T) {
	cfg := New(waterSampleSchema())
	cfg.Fields = []string{"name", "ph"}

	first, err := cfg.Get(artifact.Table)
	require.NoError(t, err)
	second, err := cfg.Get(artifact.Table)
	require.NoError(t, err)

	// The identical instance, not an equal copy
	assert.Same(t, first, second)
}

func TestGet_ConcurrentFirstAccess(t *testing.T) {
	cfg := New(waterSampleSchema())

	const workers = 16
	results := make([]artifact.Artifact, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := cfg.Get(artifact.Filter)
			assert.NoError(t, err)
			results[i] = a
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestGet_OverrideShortCircuitsGeneration(t *testing.T) {
	supplied := &artifact.FilterSpec{Model: "samples.water_sample"}

	cfg := New(waterSampleSchema())
	// Field lists that would fail generation prove the factory never runs
	cfg.ArtifactFields = map[artifact.Kind][]string{
		artifact.Filter: {"no_such_field"},
	}
	cfg.Overrides = map[artifact.Kind]artifact.Artifact{
		artifact.Filter: supplied,
	}

	got, err := cfg.Get(artifact.Filter)
	require.NoError(t, err)
	assert.Same(t, artifact.Artifact(supplied), got)
}

func TestGet_FailureNotCached(t *testing.T) {
	cfg := New(waterSampleSchema())
	cfg.ArtifactFields = map[artifact.Kind][]string{
		artifact.Form: {"id"}, // identity has no form representation
	}

	_, err := cfg.Get(artifact.Form)
	require.Error(t, err)

	var unsupported *artifact.UnsupportedKindError
	require.True(t, errors.As(err, &unsupported))

	// A failed attempt does not poison the cache; supplying an override
	// lets a later call succeed
	cfg.Overrides = map[artifact.Kind]artifact.Artifact{
		artifact.Form: &artifact.FormSpec{Model: "samples.water_sample"},
	}
	a, err := cfg.Get(artifact.Form)
	require.NoError(t, err)
	assert.Equal(t, artifact.Form, a.ArtifactKind())
}

func TestValidate_NoSchema(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.Validate())
}
