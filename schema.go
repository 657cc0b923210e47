package remap

import "fmt"

// Schema is an ordered, immutable collection of field descriptors. It is built
// once (via Builder or CompileSpec) and never mutated by traversal, so a
// single Schema may serve concurrent Load/Dump/Validate calls.
type Schema struct {
	name   string
	fields []Field
	byName map[string]int
	byKey  map[string]int
}

// Name returns the schema's identifier (may be empty).
func (s *Schema) Name() string { return s.name }

// Fields returns the descriptors in declaration order. The slice is shared;
// callers must treat it as read-only.
func (s *Schema) Fields() []Field { return s.fields }

// FieldByName looks a field up by its internal name.
func (s *Schema) FieldByName(name string) (*Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return &s.fields[i], true
}

// FieldByKey looks a field up by its external key; first match wins when keys
// are not unique.
func (s *Schema) FieldByKey(key string) (*Field, bool) {
	i, ok := s.byKey[key]
	if !ok {
		return nil, false
	}
	return &s.fields[i], true
}

// FieldNames returns the internal names in declaration order.
func (s *Schema) FieldNames() []string {
	out := make([]string, len(s.fields))
	for i := range s.fields {
		out[i] = s.fields[i].Name
	}
	return out
}

// newSchema checks build-time invariants and freezes the field list.
func newSchema(name string, fields []Field) (*Schema, error) {
	s := &Schema{
		name:   name,
		fields: fields,
		byName: make(map[string]int, len(fields)),
		byKey:  make(map[string]int, len(fields)),
	}
	for i := range s.fields {
		f := &s.fields[i]
		if f.Name == "" {
			return nil, fmt.Errorf("remap: field name must not be empty")
		}
		if _, dup := s.byName[f.Name]; dup {
			return nil, fmt.Errorf("remap: duplicate field %q", f.Name)
		}
		if f.Key == "" {
			f.Key = f.Name
		}
		if f.composite() {
			if f.Single != nil && f.Many != nil {
				return nil, fmt.Errorf("remap: field %q declares both a single and a collection schema", f.Name)
			}
			if f.Type != nil {
				return nil, fmt.Errorf("remap: field %q declares both a type and a nested schema", f.Name)
			}
			if f.OnLoad != nil || f.OnDump != nil {
				return nil, fmt.Errorf("remap: field %q: hooks are not allowed on nested-schema fields", f.Name)
			}
		} else if f.Type == nil {
			return nil, fmt.Errorf("remap: field %q has no type", f.Name)
		}
		if err := checkDefault(f, f.HasLoadDefault, f.LoadDefault, "load default"); err != nil {
			return nil, err
		}
		if err := checkDefault(f, f.HasDumpDefault, f.DumpDefault, "dump default"); err != nil {
			return nil, err
		}
		s.byName[f.Name] = i
		if _, taken := s.byKey[f.Key]; !taken {
			s.byKey[f.Key] = i
		}
	}
	return s, nil
}

// checkDefault validates a default value against the field's type membership.
// Nil defaults and nested-schema fields are exempt.
func checkDefault(f *Field, has bool, v any, what string) error {
	if !has || v == nil || f.Type == nil {
		return nil
	}
	if err := f.Type.Validate(v); err != nil {
		return fmt.Errorf("remap: %s for field %q: %s", what, f.Name, err)
	}
	return nil
}
