// Package catalog loads schema and model declarations from a YAML catalog file
// and registers them. It is the explicit initialization routine for processes
// that declare their models in configuration rather than in code.
package catalog

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/benchtop-io/benchtop/internal/artifact"
	"github.com/benchtop-io/benchtop/internal/model"
	"github.com/benchtop-io/benchtop/internal/registry"
	"github.com/benchtop-io/benchtop/internal/schema"
)

// File is the root of a catalog document
type File struct {
	Schemas []SchemaDecl `mapstructure:"schemas"`
	Models  []ModelDecl  `mapstructure:"models"`
}

// SchemaDecl declares one schema
type SchemaDecl struct {
	Name       string      `mapstructure:"name"`
	Namespace  string      `mapstructure:"namespace"`
	Base       string      `mapstructure:"base"` // "sample" or "measurement"
	NaturalKey string      `mapstructure:"natural_key"`
	Fields     []FieldDecl `mapstructure:"fields"`
}

// FieldDecl declares one field of a schema
type FieldDecl struct {
	Name     string   `mapstructure:"name"`
	Kind     string   `mapstructure:"kind"`
	Nullable bool     `mapstructure:"nullable"`
	System   bool     `mapstructure:"system"`
	Target   string   `mapstructure:"target"` // qualified schema name for relation kinds
	Choices  []string `mapstructure:"choices"`
}

// ModelDecl declares the model configuration for a schema
type ModelDecl struct {
	Schema         string              `mapstructure:"schema"`
	Label          string              `mapstructure:"label"`
	LabelPlural    string              `mapstructure:"label_plural"`
	Description    string              `mapstructure:"description"`
	Fields         []string            `mapstructure:"fields"`
	ArtifactFields map[string][]string `mapstructure:"artifact_fields"`
}

// Load reads a catalog file and registers its declarations into a new registry
func Load(path string) (*registry.Registry, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var file File
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	return Build(&file)
}

// Build turns a decoded catalog into a populated registry. Schemas are built
// in two passes so relation fields can target schemas declared later in the
// file.
func Build(file *File) (*registry.Registry, error) {
	defs := make(map[string]*schema.Def, len(file.Schemas))
	order := make([]string, 0, len(file.Schemas))

	for _, decl := range file.Schemas {
		base, err := baseAncestor(decl.Base)
		if err != nil {
			return nil, fmt.Errorf("schema %s.%s: %w", decl.Namespace, decl.Name, err)
		}

		def := schema.New(decl.Namespace, decl.Name, base)
		if decl.NaturalKey != "" {
			def = def.WithNaturalKey(decl.NaturalKey)
		}

		qualified := def.Qualified()
		if _, ok := defs[qualified]; ok {
			return nil, fmt.Errorf("schema %s declared twice", qualified)
		}
		defs[qualified] = def
		order = append(order, qualified)
	}

	// Second pass: fields, now that every relation target is known
	for _, decl := range file.Schemas {
		def := defs[decl.Namespace+"."+decl.Name]
		for _, fd := range decl.Fields {
			field, err := buildField(fd, defs)
			if err != nil {
				return nil, fmt.Errorf("schema %s: %w", def.Qualified(), err)
			}
			def.AddField(field)
		}
	}

	reg := registry.New()
	for _, decl := range file.Models {
		def, ok := defs[decl.Schema]
		if !ok {
			return nil, fmt.Errorf("model %s: schema not declared in catalog", decl.Schema)
		}

		cfg, err := buildConfig(def, decl)
		if err != nil {
			return nil, err
		}

		if err := reg.Register(def, cfg); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

// baseAncestor maps a catalog base label to the recognized abstract base
func baseAncestor(base string) (string, error) {
	switch base {
	case "sample":
		return schema.SampleBase, nil
	case "measurement":
		return schema.MeasurementBase, nil
	default:
		return "", fmt.Errorf("unknown base %q (expected sample or measurement)", base)
	}
}

// buildField converts a field declaration to a FieldSpec
func buildField(fd FieldDecl, defs map[string]*schema.Def) (schema.FieldSpec, error) {
	kind, err := schema.ParseKind(fd.Kind)
	if err != nil {
		return schema.FieldSpec{}, fmt.Errorf("field %s: %w", fd.Name, err)
	}

	field := schema.FieldSpec{
		Name:     fd.Name,
		Kind:     kind,
		Nullable: fd.Nullable,
		System:   fd.System,
		Choices:  fd.Choices,
	}

	if field.IsRelation() {
		target, ok := defs[fd.Target]
		if !ok {
			return schema.FieldSpec{}, fmt.Errorf("field %s: relation target %q not declared in catalog", fd.Name, fd.Target)
		}
		field.Related = target
	} else if fd.Target != "" {
		return schema.FieldSpec{}, fmt.Errorf("field %s: target is only valid on relation kinds", fd.Name)
	}

	return field, nil
}

// buildConfig converts a model declaration to a model.Config
func buildConfig(def *schema.Def, decl ModelDecl) (*model.Config, error) {
	cfg := model.New(def)
	cfg.Fields = decl.Fields
	cfg.Meta = model.Meta{
		Label:       decl.Label,
		LabelPlural: decl.LabelPlural,
		Description: decl.Description,
	}

	if len(decl.ArtifactFields) > 0 {
		cfg.ArtifactFields = make(map[artifact.Kind][]string, len(decl.ArtifactFields))
		for name, fields := range decl.ArtifactFields {
			kind, err := artifact.ParseKind(name)
			if err != nil {
				return nil, fmt.Errorf("model %s: %w", decl.Schema, err)
			}
			cfg.ArtifactFields[kind] = fields
		}
	}

	return cfg, nil
}
