package remap

import (
	"context"
	"fmt"
)

// Builder assembles a Schema from declarative field steps. It mirrors the
// definition DSL of the original schema language as a fluent API: each
// Field/HasOne/HasMany call opens a step, chained methods refine it, and
// Build resolves type tags and freezes the result.
type Builder struct {
	name  string
	steps []*FieldStep
}

// NewSchema starts a builder for a schema with the given identifier.
func NewSchema(name string) *Builder {
	return &Builder{name: name}
}

// FieldStep is the in-progress descriptor for one field. Its methods return
// the step itself so refinements chain; Field/HasOne/HasMany/Build continue
// on the parent builder.
type FieldStep struct {
	b          *Builder
	f          Field
	tag        string
	hasTag     bool
	setUnified bool
	setLoad    bool
	setDump    bool
}

// Field opens a scalar field declared by type tag, resolved against the
// registry at Build time.
func (b *Builder) Field(name, tag string) *FieldStep {
	st := &FieldStep{b: b, f: Field{Name: name}, tag: tag, hasTag: true}
	b.steps = append(b.steps, st)
	return st
}

// FieldOf opens a scalar field with an explicit Type value, bypassing the
// registry (useful for Enum and unregistered custom types).
func (b *Builder) FieldOf(name string, t Type) *FieldStep {
	st := &FieldStep{b: b, f: Field{Name: name, Type: t}}
	b.steps = append(b.steps, st)
	return st
}

// HasOne opens a nested-object field backed by the inner schema.
func (b *Builder) HasOne(name string, inner *Schema) *FieldStep {
	st := &FieldStep{b: b, f: Field{Name: name, Single: inner}}
	b.steps = append(b.steps, st)
	return st
}

// HasMany opens a nested-collection field backed by the inner schema.
func (b *Builder) HasMany(name string, inner *Schema) *FieldStep {
	st := &FieldStep{b: b, f: Field{Name: name, Many: inner}}
	b.steps = append(b.steps, st)
	return st
}

// Build resolves tags, checks declaration invariants and returns the
// immutable schema.
func (b *Builder) Build() (*Schema, error) {
	fields := make([]Field, 0, len(b.steps))
	for _, st := range b.steps {
		if st.setUnified && (st.setLoad || st.setDump) {
			return nil, fmt.Errorf("remap: field %q: default and load/dump defaults are mutually exclusive", st.f.Name)
		}
		if st.hasTag {
			t, err := TypeByName(st.tag)
			if err != nil {
				return nil, err
			}
			st.f.Type = t
		}
		fields = append(fields, st.f)
	}
	return newSchema(b.name, fields)
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Key overrides the external representation key.
func (st *FieldStep) Key(key string) *FieldStep {
	st.f.Key = key
	return st
}

// Required marks the field as required on load and validate.
func (st *FieldStep) Required() *FieldStep {
	st.f.Required = true
	return st
}

// Default sets the same default for both directions. Mutually exclusive with
// LoadDefault/DumpDefault.
func (st *FieldStep) Default(v any) *FieldStep {
	st.f.LoadDefault, st.f.HasLoadDefault = v, true
	st.f.DumpDefault, st.f.HasDumpDefault = v, true
	st.setUnified = true
	return st
}

// LoadDefault sets the value substituted for absent or null input on load.
func (st *FieldStep) LoadDefault(v any) *FieldStep {
	st.f.LoadDefault, st.f.HasLoadDefault = v, true
	st.setLoad = true
	return st
}

// DumpDefault sets the value substituted for absent or null input on dump.
func (st *FieldStep) DumpDefault(v any) *FieldStep {
	st.f.DumpDefault, st.f.HasDumpDefault = v, true
	st.setDump = true
	return st
}

// Validate attaches an arity-1 validator.
func (st *FieldStep) Validate(fn func(ctx context.Context, v any) error) *FieldStep {
	st.f.Validator = ValidateFunc(fn)
	return st
}

// ValidateWith attaches an arity-2 validator with static arguments.
func (st *FieldStep) ValidateWith(fn func(ctx context.Context, v any, args map[string]any) error, args map[string]any) *FieldStep {
	st.f.Validator = ValidateWith(fn, args)
	return st
}

// OnLoad installs a load-side override hook.
func (st *FieldStep) OnLoad(h Hook) *FieldStep {
	st.f.OnLoad = h
	return st
}

// OnDump installs a dump-side override hook.
func (st *FieldStep) OnDump(h Hook) *FieldStep {
	st.f.OnDump = h
	return st
}

// Virtual marks the field as definition-only; it is skipped by load and dump.
func (st *FieldStep) Virtual() *FieldStep {
	st.f.Virtual = true
	return st
}

// Field continues the parent builder with a new tagged field.
func (st *FieldStep) Field(name, tag string) *FieldStep { return st.b.Field(name, tag) }

// FieldOf continues the parent builder with a new typed field.
func (st *FieldStep) FieldOf(name string, t Type) *FieldStep { return st.b.FieldOf(name, t) }

// HasOne continues the parent builder with a nested-object field.
func (st *FieldStep) HasOne(name string, inner *Schema) *FieldStep { return st.b.HasOne(name, inner) }

// HasMany continues the parent builder with a nested-collection field.
func (st *FieldStep) HasMany(name string, inner *Schema) *FieldStep {
	return st.b.HasMany(name, inner)
}

// Build delegates to the parent builder.
func (st *FieldStep) Build() (*Schema, error) { return st.b.Build() }

// MustBuild delegates to the parent builder.
func (st *FieldStep) MustBuild() *Schema { return st.b.MustBuild() }
