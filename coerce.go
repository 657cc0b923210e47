package remap

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Built-in scalar types. Each value is stateless and safe for concurrent use.
var (
	String  Type = stringType{}
	Atom    Type = atomType{}
	Integer Type = integerType{}
	Float   Type = floatType{}
	Boolean Type = booleanType{}
	Map     Type = mapType{}
	Array   Type = arrayType{}
	Any     Type = anyType{}
)

var (
	errInvalidString  = errors.New("invalid string type")
	errInvalidAtom    = errors.New("invalid atom type")
	errInvalidInteger = errors.New("invalid integer type")
	errInvalidFloat   = errors.New("invalid float type")
	errInvalidBoolean = errors.New("invalid boolean type")
	errInvalidMap     = errors.New("invalid map type")
	errInvalidArray   = errors.New("invalid array type")
	errInvalidEnum    = errors.New("invalid enum type")
	errNotEnumValue   = errors.New("is not a valid enum value")
)

type stringType struct{}

func (stringType) Load(v any) (any, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return nil, errInvalidString
}

func (stringType) Dump(v any) (any, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return nil, errInvalidString
}

func (stringType) Validate(v any) error {
	if _, ok := v.(string); !ok {
		return errInvalidString
	}
	return nil
}

// atomType loads external strings as plain Go strings. Loading always succeeds
// for string input; there is no interned symbol table. Closed value sets use
// Enum instead.
type atomType struct{}

func (atomType) Load(v any) (any, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return nil, errInvalidAtom
}

func (atomType) Dump(v any) (any, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return nil, errInvalidAtom
}

func (atomType) Validate(v any) error {
	if _, ok := v.(string); !ok {
		return errInvalidAtom
	}
	return nil
}

// Enum returns a Type accepting only the given string values. It is the strict
// counterpart of the atom type.
func Enum(values ...string) Type {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	return enumType{allowed: allowed}
}

type enumType struct {
	allowed map[string]struct{}
}

func (e enumType) Load(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, errInvalidEnum
	}
	if _, ok := e.allowed[s]; !ok {
		return nil, errNotEnumValue
	}
	return s, nil
}

func (e enumType) Dump(v any) (any, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return nil, errInvalidEnum
}

func (e enumType) Validate(v any) error {
	s, ok := v.(string)
	if !ok {
		return errInvalidEnum
	}
	if _, ok := e.allowed[s]; !ok {
		return errNotEnumValue
	}
	return nil
}

// integerType coerces to int64. Load accepts Go integer kinds, integral
// floats, json.Number and base-10 strings.
type integerType struct{}

func (integerType) Load(v any) (any, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return nil, errInvalidInteger
		}
		return int64(n), nil
	case float32:
		return integralFloat(float64(n))
	case float64:
		return integralFloat(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		if f, err := n.Float64(); err == nil {
			return integralFloat(f)
		}
		return nil, errInvalidInteger
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return nil, errInvalidInteger
		}
		return i, nil
	}
	return nil, errInvalidInteger
}

func integralFloat(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, errInvalidInteger
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, errInvalidInteger
	}
	return int64(f), nil
}

func (integerType) Dump(v any) (any, error) {
	if err := (integerType{}).Validate(v); err != nil {
		return nil, err
	}
	return reflect.ValueOf(v).Convert(reflect.TypeOf(int64(0))).Interface(), nil
}

func (integerType) Validate(v any) error {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32:
		return nil
	case uint64:
		if v.(uint64) > math.MaxInt64 {
			return errInvalidInteger
		}
		return nil
	}
	return errInvalidInteger
}

// floatType coerces to float64, accepting integer widening.
type floatType struct{}

func (floatType) Load(v any) (any, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return nil, errInvalidFloat
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return nil, errInvalidFloat
		}
		return f, nil
	}
	return nil, errInvalidFloat
}

func (floatType) Dump(v any) (any, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int, int8, int16, int32, int64:
		return float64(reflect.ValueOf(n).Int()), nil
	}
	return nil, errInvalidFloat
}

func (floatType) Validate(v any) error {
	switch v.(type) {
	case float32, float64:
		return nil
	case int, int8, int16, int32, int64:
		// integer widening is part of the float contract
		return nil
	}
	return errInvalidFloat
}

// booleanType accepts bool, numeric 0/1 and case-insensitive "true"/"false".
type booleanType struct{}

func (booleanType) Load(v any) (any, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case int:
		return zeroOne(float64(b))
	case int64:
		return zeroOne(float64(b))
	case float64:
		return zeroOne(b)
	case json.Number:
		f, err := b.Float64()
		if err != nil {
			return nil, errInvalidBoolean
		}
		return zeroOne(f)
	case string:
		switch strings.ToLower(b) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return nil, errInvalidBoolean
}

func zeroOne(f float64) (any, error) {
	switch f {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return nil, errInvalidBoolean
}

func (booleanType) Dump(v any) (any, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return nil, errInvalidBoolean
}

func (booleanType) Validate(v any) error {
	if _, ok := v.(bool); !ok {
		return errInvalidBoolean
	}
	return nil
}

type mapType struct{}

func (mapType) Load(v any) (any, error) {
	if m, ok := stringKeyed(v); ok {
		return m, nil
	}
	return nil, errInvalidMap
}

func (mapType) Dump(v any) (any, error) {
	if m, ok := stringKeyed(v); ok {
		return m, nil
	}
	return nil, errInvalidMap
}

func (mapType) Validate(v any) error {
	if _, ok := v.(map[string]any); !ok {
		return errInvalidMap
	}
	return nil
}

// stringKeyed normalizes map-shaped values to map[string]any. YAML decoding
// may yield map[any]any; it is accepted when every key is a string.
func stringKeyed(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}

type arrayType struct{}

func (arrayType) Load(v any) (any, error) {
	switch l := v.(type) {
	case []any:
		return l, nil
	case nil:
		return nil, errInvalidArray
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	}
	return nil, errInvalidArray
}

func (arrayType) Dump(v any) (any, error) {
	return (arrayType{}).Load(v)
}

func (arrayType) Validate(v any) error {
	if _, ok := v.([]any); !ok {
		return errInvalidArray
	}
	return nil
}

// anyType is a passthrough with zero validation.
type anyType struct{}

func (anyType) Load(v any) (any, error) { return v, nil }
func (anyType) Dump(v any) (any, error) { return v, nil }
func (anyType) Validate(v any) error    { return nil }
