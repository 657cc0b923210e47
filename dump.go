package remap

import (
	"context"
	"fmt"
)

// Dump converts internal data back into its wire representation: fields are
// read by internal name, written under their external key, dump defaults fill
// absent values, and leaf types perform light-weight stringification. Dump
// enforces no required fields and runs no validators; its input is trusted.
//
// The input may be a map keyed by field name, a struct (exported fields are
// matched through the same tag resolution as Bind), or a list of either when
// the Many option is set.
func Dump(ctx context.Context, s *Schema, input any, opts ...Opt) (any, error) {
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
			m, ok := nameKeyed(el)
			if !ok {
				errs[i] = reasonInvalidInner
				continue
			}
			res, et := dumpMap(ctx, s, m, opt)
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
	m, ok := nameKeyed(input)
	if !ok {
		return nil, fmt.Errorf("remap: expected a map or struct input, got %T", input)
	}
	res, errs := dumpMap(ctx, s, m, opt)
	if len(errs) > 0 {
		return nil, errs
	}
	return res, nil
}

// nameKeyed normalizes internal data to a map keyed by field name, unwrapping
// structs through reflection when needed.
func nameKeyed(v any) (map[string]any, bool) {
	if m, ok := stringKeyed(v); ok {
		return m, true
	}
	return structToMap(v)
}

// dumpMap runs the per-field dump loop. Errors stay keyed by internal name;
// results are keyed by external key.
func dumpMap(ctx context.Context, s *Schema, in map[string]any, opt Opt) (map[string]any, ErrorTree) {
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
		v, present := in[f.Name]
		if !present {
			if f.HasDumpDefault {
				out[f.Key] = f.DumpDefault
			}
			continue
		}
		if v == nil {
			if opt.IgnoreNil {
				if f.HasDumpDefault {
					out[f.Key] = f.DumpDefault
				}
				continue
			}
			if f.HasDumpDefault {
				out[f.Key] = f.DumpDefault
				continue
			}
			out[f.Key] = nil
			continue
		}
		if sv, ok := v.(string); ok && sv == "" && opt.IgnoreEmpty {
			if f.HasDumpDefault {
				out[f.Key] = f.DumpDefault
			}
			continue
		}
		dumped, errNode := dumpValue(ctx, f, v, in, sub, opt)
		if errNode != nil {
			errs[f.Name] = errNode
			continue
		}
		out[f.Key] = dumped
	}
	return out, errs
}

func dumpValue(ctx context.Context, f *Field, v any, in map[string]any, sub []Exclusion, opt Opt) (any, any) {
	if f.OnDump != nil {
		v2, err := f.OnDump(ctx, v, in)
		if err != nil {
			return nil, err.Error()
		}
		return v2, nil
	}
	switch {
	case f.Single != nil:
		m, ok := nameKeyed(v)
		if !ok {
			return nil, reasonInvalidInner
		}
		subOpt := opt
		subOpt.Exclude = sub
		res, et := dumpMap(ctx, f.Single, m, subOpt)
		if len(et) > 0 {
			return nil, et
		}
		return res, nil
	case f.Many != nil:
		list, ok := v.([]any)
		if !ok {
			return nil, reasonInvalidList
		}
		ie := IndexedErrors{}
		items := make([]any, 0, len(list))
		for i, el := range list {
			m, ok := nameKeyed(el)
			if !ok {
				ie[i] = reasonInvalidInner
				continue
			}
			subOpt := opt
			subOpt.Exclude = sub
			res, et := dumpMap(ctx, f.Many, m, subOpt)
			if len(et) > 0 {
				ie[i] = et
				continue
			}
			items = append(items, res)
		}
		if len(ie) > 0 {
			return nil, ie
		}
		return items, nil
	default:
		dv, err := f.Type.Dump(v)
		if err != nil {
			return nil, err.Error()
		}
		return dv, nil
	}
}
