package remap

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ResolveFieldName applies the repository-wide rule to resolve a struct
// field's schema name for binding.
// Priority: remap:"name" > json tag name > Go field name; "-" disables.
func ResolveFieldName(sf reflect.StructField) string {
	if rt := sf.Tag.Get("remap"); rt != "" {
		if i := strings.IndexByte(rt, ','); i >= 0 {
			return rt[:i]
		}
		return rt
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// Bound pairs a schema with a struct type T, materializing load results into
// T and unbinding T back into name-keyed maps for dump. It is the typed
// rendering of the dynamic struct-materialization option.
type Bound[T any] struct {
	schema *Schema
	rt     reflect.Type
}

// Bind binds a schema to struct type T.
func Bind[T any](s *Schema) (*Bound[T], error) {
	if s == nil {
		return nil, ErrNilSchema
	}
	var zero T
	rt := reflect.TypeOf(zero)
	if rt == nil || rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("remap: Bind requires a struct type, got %v", rt)
	}
	return &Bound[T]{schema: s, rt: rt}, nil
}

// MustBind is like Bind but panics on error.
func MustBind[T any](s *Schema) *Bound[T] {
	b, err := Bind[T](s)
	if err != nil {
		panic(err)
	}
	return b
}

// Schema returns the underlying schema.
func (b *Bound[T]) Schema() *Schema { return b.schema }

// Load loads a single map-shaped input and materializes it into T.
func (b *Bound[T]) Load(ctx context.Context, input any, opts ...Opt) (T, error) {
	var zero T
	res, err := Load(ctx, b.schema, input, opts...)
	if err != nil {
		return zero, err
	}
	m, ok := res.(map[string]any)
	if !ok {
		return zero, fmt.Errorf("remap: Bound.Load requires a single object result; drop the Many option")
	}
	rv := reflect.New(b.rt).Elem()
	if err := assignMap(m, rv); err != nil {
		return zero, err
	}
	return rv.Interface().(T), nil
}

// Dump unbinds v into a name-keyed map and dumps it.
func (b *Bound[T]) Dump(ctx context.Context, v T, opts ...Opt) (any, error) {
	return Dump(ctx, b.schema, v, opts...)
}

// Validate delegates to Validate with the bound schema.
func (b *Bound[T]) Validate(ctx context.Context, input any, opts ...Opt) error {
	return Validate(ctx, b.schema, input, opts...)
}

// LoadInto loads a single map-shaped input into the struct pointed to by dst.
func LoadInto(ctx context.Context, s *Schema, input any, dst any, opts ...Opt) error {
	res, err := Load(ctx, s, input, opts...)
	if err != nil {
		return err
	}
	m, ok := res.(map[string]any)
	if !ok {
		return fmt.Errorf("remap: LoadInto requires a single object result; drop the Many option")
	}
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("remap: LoadInto requires a non-nil struct pointer, got %T", dst)
	}
	return assignMap(m, rv.Elem())
}

// assignMap writes a loaded map into a struct value field by field.
func assignMap(m map[string]any, rv reflect.Value) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := ResolveFieldName(sf)
		if name == "" || name == "-" {
			continue
		}
		val, ok := m[name]
		if !ok {
			continue
		}
		if err := setValue(rv.Field(i), val, name); err != nil {
			return err
		}
	}
	return nil
}

func setValue(fv reflect.Value, val any, path string) error {
	if val == nil {
		switch fv.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			fv.Set(reflect.Zero(fv.Type()))
		}
		// non-nillable fields keep their zero value
		return nil
	}
	vv := reflect.ValueOf(val)
	if vv.Type().AssignableTo(fv.Type()) {
		fv.Set(vv)
		return nil
	}
	// Convert only when the target is not a string: reflect would otherwise
	// turn integers into rune strings.
	if fv.Kind() != reflect.String && vv.Type().ConvertibleTo(fv.Type()) {
		fv.Set(vv.Convert(fv.Type()))
		return nil
	}
	if m, ok := stringKeyed(val); ok {
		target := fv
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				fv.Set(reflect.New(fv.Type().Elem()))
			}
			target = fv.Elem()
		}
		if target.Kind() == reflect.Struct {
			return assignMap(m, target)
		}
	}
	if list, ok := val.([]any); ok && fv.Kind() == reflect.Slice {
		out := reflect.MakeSlice(fv.Type(), len(list), len(list))
		for i, el := range list {
			if err := setValue(out.Index(i), el, path+"/"+strconv.Itoa(i)); err != nil {
				return err
			}
		}
		fv.Set(out)
		return nil
	}
	return fmt.Errorf("remap: cannot assign %T to field %q", val, path)
}

// structToMap unbinds a struct into a map keyed by resolved field names.
func structToMap(v any) (map[string]any, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	rt := rv.Type()
	out := make(map[string]any, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := ResolveFieldName(sf)
		if name == "" || name == "-" {
			continue
		}
		out[name] = rv.Field(i).Interface()
	}
	return out, true
}
