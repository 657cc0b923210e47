package remap

import (
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// SchemaSpec is a data-driven schema description, the declarative counterpart
// of the Builder. It is what schema files (YAML or JSON) unmarshal into.
type SchemaSpec struct {
	Name   string      `yaml:"name" json:"name"`
	Fields []FieldSpec `yaml:"fields" json:"fields"`
}

// FieldSpec describes one field. Exactly one of Type, Enum, One or Many must
// be set. Defaults use nil-means-unset semantics: an explicit null default
// cannot be expressed in a spec file (use the Builder for that).
type FieldSpec struct {
	Name        string      `yaml:"name" json:"name"`
	Key         string      `yaml:"key,omitempty" json:"key,omitempty"`
	Type        string      `yaml:"type,omitempty" json:"type,omitempty"`
	Required    bool        `yaml:"required,omitempty" json:"required,omitempty"`
	Default     any         `yaml:"default,omitempty" json:"default,omitempty"`
	LoadDefault any         `yaml:"load_default,omitempty" json:"load_default,omitempty"`
	DumpDefault any         `yaml:"dump_default,omitempty" json:"dump_default,omitempty"`
	Virtual     bool        `yaml:"virtual,omitempty" json:"virtual,omitempty"`
	Enum        []string    `yaml:"enum,omitempty" json:"enum,omitempty"`
	One         *SchemaSpec `yaml:"one,omitempty" json:"one,omitempty"`
	Many        *SchemaSpec `yaml:"many,omitempty" json:"many,omitempty"`
}

// CompileSpec turns a schema description into the same immutable Schema the
// Builder produces.
func CompileSpec(spec SchemaSpec) (*Schema, error) {
	b := NewSchema(spec.Name)
	for _, fs := range spec.Fields {
		st, err := openStep(b, fs)
		if err != nil {
			return nil, err
		}
		if fs.Key != "" {
			st.Key(fs.Key)
		}
		if fs.Required {
			st.Required()
		}
		if fs.Virtual {
			st.Virtual()
		}
		if fs.Default != nil {
			st.Default(fs.Default)
		}
		if fs.LoadDefault != nil {
			st.LoadDefault(fs.LoadDefault)
		}
		if fs.DumpDefault != nil {
			st.DumpDefault(fs.DumpDefault)
		}
	}
	return b.Build()
}

func openStep(b *Builder, fs FieldSpec) (*FieldStep, error) {
	declared := 0
	if fs.Type != "" {
		declared++
	}
	if len(fs.Enum) > 0 {
		declared++
	}
	if fs.One != nil {
		declared++
	}
	if fs.Many != nil {
		declared++
	}
	if declared != 1 {
		return nil, fmt.Errorf("remap: field %q must declare exactly one of type, enum, one or many", fs.Name)
	}
	switch {
	case len(fs.Enum) > 0:
		return b.FieldOf(fs.Name, Enum(fs.Enum...)), nil
	case fs.One != nil:
		inner, err := CompileSpec(*fs.One)
		if err != nil {
			return nil, err
		}
		return b.HasOne(fs.Name, inner), nil
	case fs.Many != nil:
		inner, err := CompileSpec(*fs.Many)
		if err != nil {
			return nil, err
		}
		return b.HasMany(fs.Name, inner), nil
	default:
		return b.Field(fs.Name, fs.Type), nil
	}
}

// CompileYAML unmarshals a YAML schema description and compiles it.
func CompileYAML(b []byte) (*Schema, error) {
	var spec SchemaSpec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return nil, fmt.Errorf("remap: decode schema description: %w", err)
	}
	return CompileSpec(spec)
}

// CompileJSON unmarshals a JSON schema description and compiles it.
func CompileJSON(b []byte) (*Schema, error) {
	var spec SchemaSpec
	if err := json.Unmarshal(b, &spec); err != nil {
		return nil, fmt.Errorf("remap: decode schema description: %w", err)
	}
	return CompileSpec(spec)
}
