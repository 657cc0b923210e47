package remap

import (
	"context"
	"fmt"
)

// Validate runs load's field loop without coercing or materializing anything:
// leaf values must already be members of their declared type, required fields
// are enforced (a field with either default counts as satisfiable), field
// validators run, and nested schemas are validated recursively. It returns
// nil or the aggregated error tree.
func Validate(ctx context.Context, s *Schema, input any, opts ...Opt) error {
	if s == nil {
		return ErrNilSchema
	}
	opt := pickOpt(opts)
	if opt.Many {
		list, ok := input.([]any)
		if !ok {
			return fmt.Errorf("remap: expected a list input with Many, got %T", input)
		}
		errs := IndexedErrors{}
		for i, el := range list {
			m, ok := stringKeyed(el)
			if !ok {
				errs[i] = reasonInvalidInner
				continue
			}
			if et := validateMap(ctx, s, m, opt); len(et) > 0 {
				errs[i] = et
			}
		}
		if len(errs) > 0 {
			return errs
		}
		return nil
	}
	if _, isList := input.([]any); isList {
		return ErrNotMany
	}
	m, ok := stringKeyed(input)
	if !ok {
		return fmt.Errorf("remap: expected a map input, got %T", input)
	}
	if et := validateMap(ctx, s, m, opt); len(et) > 0 {
		return et
	}
	return nil
}

func validateMap(ctx context.Context, s *Schema, in map[string]any, opt Opt) ErrorTree {
	errs := ErrorTree{}
	for i := range s.fields {
		f := &s.fields[i]
		dec, sub := resolveExclusion(opt.Exclude, f.Name)
		if dec == excludeField {
			continue
		}
		if f.Virtual {
			continue
		}
		v, present, reason := fetch(f, in)
		if reason != "" {
			errs[f.Name] = reason
			continue
		}
		hasDefault := f.HasLoadDefault || f.HasDumpDefault
		if !present {
			if !hasDefault && f.Required {
				errs[f.Name] = reasonRequired
			}
			continue
		}
		if v == nil {
			if opt.IgnoreNil || hasDefault {
				continue
			}
			if f.Required {
				errs[f.Name] = reasonRequired
			}
			continue
		}
		if sv, ok := v.(string); ok && sv == "" && opt.IgnoreEmpty {
			continue
		}
		if errNode := validateValue(ctx, f, v, sub, opt); errNode != nil {
			errs[f.Name] = errNode
		}
	}
	if opt.Unknown == UnknownError {
		for k := range in {
			if _, known := s.byKey[k]; known {
				continue
			}
			if _, known := s.byName[k]; known {
				continue
			}
			errs[k] = reasonUnknownField
		}
	}
	return errs
}

func validateValue(ctx context.Context, f *Field, v any, sub []Exclusion, opt Opt) any {
	// Fields with a load override have no declared external shape to check;
	// only the user validator applies.
	if f.OnLoad != nil {
		if err := f.Validator.run(ctx, v); err != nil {
			return err.Error()
		}
		return nil
	}
	switch {
	case f.Single != nil:
		m, ok := stringKeyed(v)
		if !ok {
			return reasonInvalidInner
		}
		subOpt := opt
		subOpt.Exclude = sub
		if et := validateMap(ctx, f.Single, m, subOpt); len(et) > 0 {
			return et
		}
	case f.Many != nil:
		list, ok := v.([]any)
		if !ok {
			return reasonInvalidList
		}
		ie := IndexedErrors{}
		for i, el := range list {
			m, ok := stringKeyed(el)
			if !ok {
				ie[i] = reasonInvalidInner
				continue
			}
			subOpt := opt
			subOpt.Exclude = sub
			if et := validateMap(ctx, f.Many, m, subOpt); len(et) > 0 {
				ie[i] = et
			}
		}
		if len(ie) > 0 {
			return ie
		}
	default:
		if err := f.Type.Validate(v); err != nil {
			return err.Error()
		}
	}
	if err := f.Validator.run(ctx, v); err != nil {
		return err.Error()
	}
	return nil
}
