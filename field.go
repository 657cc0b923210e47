package remap

import "context"

// Hook is a per-field override receiving the current value and the full
// sibling input node. When set on a field it supersedes the default coercion
// for that direction.
type Hook func(ctx context.Context, value any, input map[string]any) (any, error)

// Validator wraps a user-supplied post-load check. Validators run after
// successful coercion, approve or reject, and never transform the value.
type Validator struct {
	fn     func(ctx context.Context, v any) error
	fnArgs func(ctx context.Context, v any, args map[string]any) error
	args   map[string]any
}

// ValidateFunc wraps an arity-1 validator.
func ValidateFunc(fn func(ctx context.Context, v any) error) *Validator {
	return &Validator{fn: fn}
}

// ValidateWith wraps an arity-2 validator paired with static arguments.
func ValidateWith(fn func(ctx context.Context, v any, args map[string]any) error, args map[string]any) *Validator {
	return &Validator{fnArgs: fn, args: args}
}

// run applies the validator; a nil validator is an automatic pass.
func (va *Validator) run(ctx context.Context, v any) error {
	if va == nil {
		return nil
	}
	if va.fn != nil {
		return va.fn(ctx, v)
	}
	if va.fnArgs != nil {
		return va.fnArgs(ctx, v, va.args)
	}
	return nil
}

// Field is one schema node. Exactly one of Type, Single or Many is set:
// Type for scalar fields, Single for a nested object, Many for a nested
// collection. Fields are value-copied into the Schema at build time and
// immutable afterwards.
type Field struct {
	// Name is the internal identifier, unique within a schema.
	Name string
	// Key is the external representation key; defaults to Name.
	Key string

	Type   Type
	Single *Schema
	Many   *Schema

	// Required is enforced on load and validate, never on dump.
	Required bool

	LoadDefault    any
	HasLoadDefault bool
	DumpDefault    any
	HasDumpDefault bool

	Validator *Validator
	OnLoad    Hook
	OnDump    Hook

	// Virtual fields exist in the definition but are never transferred.
	Virtual bool
}

func (f *Field) composite() bool { return f.Single != nil || f.Many != nil }
