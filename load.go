package remap

import (
	"context"
	"fmt"
)

// Load converts untrusted external data into the schema's internal shape,
// coercing leaf values, substituting load defaults, enforcing required fields
// and recursing into nested schemas. All data errors for one call are
// aggregated into a single error tree; processing never stops at the first
// failing field.
//
// The input must be a map-shaped node, or a list of map-shaped nodes when the
// Many option is set. Structural misuse (a list without Many, a scalar input)
// is reported as a plain error, not an error tree.
func Load(ctx context.Context, s *Schema, input any, opts ...Opt) (any, error) {
	if s == nil {
		return nil, ErrNilSchema
	}
	opt := pickOpt(opts)
	if opt.Many {
		list, ok := input.([]any)
		if !ok {
			return nil, fmt.Errorf("remap: expected a list input with Many, got %T", input)
		}
		out := make([]any, 0, len(list))
		errs := IndexedErrors{}
		for i, el := range list {
			m, ok := stringKeyed(el)
			if !ok {
				errs[i] = reasonInvalidInner
				continue
			}
			res, et := loadMap(ctx, s, m, opt)
			if len(et) > 0 {
				errs[i] = et
				continue
			}
			out = append(out, res)
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return out, nil
	}
	if _, isList := input.([]any); isList {
		return nil, ErrNotMany
	}
	m, ok := stringKeyed(input)
	if !ok {
		return nil, fmt.Errorf("remap: expected a map input, got %T", input)
	}
	res, errs := loadMap(ctx, s, m, opt)
	if len(errs) > 0 {
		return nil, errs
	}
	return res, nil
}

// loadMap runs the per-field load loop over one map node.
func loadMap(ctx context.Context, s *Schema, in map[string]any, opt Opt) (map[string]any, ErrorTree) {
	out := make(map[string]any, len(s.fields))
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
		if !present {
			if f.HasLoadDefault {
				out[f.Name] = f.LoadDefault
			} else if f.Required {
				errs[f.Name] = reasonRequired
			}
			continue
		}
		if v == nil {
			if opt.IgnoreNil {
				if f.HasLoadDefault {
					out[f.Name] = f.LoadDefault
				}
				continue
			}
			if f.HasLoadDefault {
				out[f.Name] = f.LoadDefault
				continue
			}
			if f.Required {
				errs[f.Name] = reasonRequired
				continue
			}
			out[f.Name] = nil
			continue
		}
		if sv, ok := v.(string); ok && sv == "" && opt.IgnoreEmpty {
			if f.HasLoadDefault {
				out[f.Name] = f.LoadDefault
			}
			continue
		}
		loaded, errNode := loadValue(ctx, f, v, in, sub, opt)
		if errNode != nil {
			errs[f.Name] = errNode
			continue
		}
		out[f.Name] = loaded
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
	return out, errs
}

// fetch resolves a field's value from the input node. A field whose key
// differs from its name may also be addressed by name (already-loaded maps);
// both keys present at once is ambiguous and rejected.
func fetch(f *Field, in map[string]any) (v any, present bool, reason string) {
	v, byKey := in[f.Key]
	if f.Name == f.Key {
		return v, byKey, ""
	}
	v2, byName := in[f.Name]
	switch {
	case byKey && byName:
		return nil, false, reasonKeyCollision
	case byName:
		return v2, true, ""
	default:
		return v, byKey, ""
	}
}

// loadValue coerces a present, non-null value. The returned error node is a
// reason string for leaf failures, an ErrorTree for nested objects, or
// IndexedErrors for nested collections.
func loadValue(ctx context.Context, f *Field, v any, in map[string]any, sub []Exclusion, opt Opt) (any, any) {
	if f.OnLoad != nil {
		v2, err := f.OnLoad(ctx, v, in)
		if err != nil {
			return nil, err.Error()
		}
		return checked(ctx, f, v2)
	}
	switch {
	case f.Single != nil:
		m, ok := stringKeyed(v)
		if !ok {
			return nil, reasonInvalidInner
		}
		subOpt := opt
		subOpt.Exclude = sub
		res, et := loadMap(ctx, f.Single, m, subOpt)
		if len(et) > 0 {
			return nil, et
		}
		return checked(ctx, f, res)
	case f.Many != nil:
		list, ok := v.([]any)
		if !ok {
			return nil, reasonInvalidList
		}
		ie := IndexedErrors{}
		items := make([]any, 0, len(list))
		for i, el := range list {
			m, ok := stringKeyed(el)
			if !ok {
				ie[i] = reasonInvalidInner
				continue
			}
			subOpt := opt
			subOpt.Exclude = sub
			res, et := loadMap(ctx, f.Many, m, subOpt)
			if len(et) > 0 {
				ie[i] = et
				continue
			}
			items = append(items, res)
		}
		if len(ie) > 0 {
			return nil, ie
		}
		return checked(ctx, f, items)
	default:
		cv, err := f.Type.Load(v)
		if err != nil {
			return nil, err.Error()
		}
		return checked(ctx, f, cv)
	}
}

// checked applies the field validator to a successfully coerced value.
func checked(ctx context.Context, f *Field, v any) (any, any) {
	if err := f.Validator.run(ctx, v); err != nil {
		return nil, err.Error()
	}
	return v, nil
}
