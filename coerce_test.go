package remap_test

import (
	"encoding/json"
	"testing"

	remap "github.com/remapd/remap"
)

func TestIntegerType_Load(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int64
	}{
		{"int", 32, 32},
		{"int64", int64(7), 7},
		{"integral float", float64(32), 32},
		{"string", "32", 32},
		{"negative string", "-8", -8},
		{"json number", json.Number("99"), 99},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := remap.Integer.Load(tc.in)
			if err != nil {
				t.Fatalf("load %v: %v", tc.in, err)
			}
			if v != tc.want {
				t.Fatalf("load %v: got %v (%T), want %v", tc.in, v, v, tc.want)
			}
		})
	}

	for _, bad := range []any{"not a number", 1.5, true, nil, []any{}} {
		if _, err := remap.Integer.Load(bad); err == nil {
			t.Fatalf("expected error for %v (%T)", bad, bad)
		} else if err.Error() != "invalid integer type" {
			t.Fatalf("unexpected reason: %v", err)
		}
	}
}

func TestIntegerType_Validate(t *testing.T) {
	if err := remap.Integer.Validate(int64(1)); err != nil {
		t.Fatalf("int64 should be a member: %v", err)
	}
	// strict membership: no coercion on validate
	if err := remap.Integer.Validate("32"); err == nil {
		t.Fatalf("string must not pass strict validation")
	}
	if err := remap.Integer.Validate(32.0); err == nil {
		t.Fatalf("float must not pass strict validation")
	}
}

func TestFloatType_Load(t *testing.T) {
	v, err := remap.Float.Load(3)
	if err != nil || v != float64(3) {
		t.Fatalf("integer widening failed: v=%v err=%v", v, err)
	}
	v, err = remap.Float.Load("2.5")
	if err != nil || v != 2.5 {
		t.Fatalf("string parse failed: v=%v err=%v", v, err)
	}
	if _, err := remap.Float.Load(true); err == nil {
		t.Fatalf("expected error for bool")
	}
}

func TestBooleanType_Load(t *testing.T) {
	cases := map[string]struct {
		in   any
		want bool
	}{
		"bool":         {true, true},
		"one":          {1, true},
		"zero":         {0, false},
		"float one":    {1.0, true},
		"string true":  {"TRUE", true},
		"string false": {"false", false},
	}
	for name, tc := range cases {
		v, err := remap.Boolean.Load(tc.in)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if v != tc.want {
			t.Fatalf("%s: got %v, want %v", name, v, tc.want)
		}
	}
	for _, bad := range []any{2, "yes", 0.5} {
		if _, err := remap.Boolean.Load(bad); err == nil {
			t.Fatalf("expected error for %v", bad)
		}
	}
}

func TestStringType(t *testing.T) {
	if v, err := remap.String.Load("x"); err != nil || v != "x" {
		t.Fatalf("string passthrough failed: v=%v err=%v", v, err)
	}
	if _, err := remap.String.Load(1); err == nil || err.Error() != "invalid string type" {
		t.Fatalf("unexpected: %v", err)
	}
}

func TestAtomType_AlwaysSucceedsForStrings(t *testing.T) {
	v, err := remap.Atom.Load("anything-goes")
	if err != nil || v != "anything-goes" {
		t.Fatalf("atom load: v=%v err=%v", v, err)
	}
	if _, err := remap.Atom.Load(1); err == nil {
		t.Fatalf("expected error for non-string")
	}
}

func TestEnumType(t *testing.T) {
	e := remap.Enum("active", "inactive")
	if v, err := e.Load("active"); err != nil || v != "active" {
		t.Fatalf("member load failed: v=%v err=%v", v, err)
	}
	if _, err := e.Load("deleted"); err == nil || err.Error() != "is not a valid enum value" {
		t.Fatalf("unexpected: %v", err)
	}
	if _, err := e.Load(3); err == nil {
		t.Fatalf("expected error for non-string")
	}
	if err := e.Validate("inactive"); err != nil {
		t.Fatalf("validate member: %v", err)
	}
	if err := e.Validate("deleted"); err == nil {
		t.Fatalf("validate must reject non-members")
	}
}

func TestMapType_Load(t *testing.T) {
	m := map[string]any{"a": 1}
	if v, err := remap.Map.Load(m); err != nil {
		t.Fatalf("map passthrough: %v", err)
	} else if v.(map[string]any)["a"] != 1 {
		t.Fatalf("unexpected map: %v", v)
	}

	// YAML-style keys normalize when every key is a string
	v, err := remap.Map.Load(map[any]any{"a": 1})
	if err != nil {
		t.Fatalf("map[any]any load: %v", err)
	}
	if v.(map[string]any)["a"] != 1 {
		t.Fatalf("unexpected normalized map: %v", v)
	}

	if _, err := remap.Map.Load(map[any]any{1: "a"}); err == nil {
		t.Fatalf("expected error for non-string keys")
	}
	if _, err := remap.Map.Load("nope"); err == nil {
		t.Fatalf("expected error for non-map")
	}
}

func TestArrayType_Load(t *testing.T) {
	if v, err := remap.Array.Load([]any{1, 2}); err != nil || len(v.([]any)) != 2 {
		t.Fatalf("array passthrough: v=%v err=%v", v, err)
	}
	v, err := remap.Array.Load([]string{"a", "b"})
	if err != nil {
		t.Fatalf("typed slice load: %v", err)
	}
	if got := v.([]any); len(got) != 2 || got[0] != "a" {
		t.Fatalf("unexpected slice: %v", got)
	}
	if _, err := remap.Array.Load("nope"); err == nil || err.Error() != "invalid array type" {
		t.Fatalf("unexpected: %v", err)
	}
}

func TestAnyType_Passthrough(t *testing.T) {
	for _, v := range []any{1, "x", nil, []any{1}, map[string]any{}} {
		got, err := remap.Any.Load(v)
		if err != nil {
			t.Fatalf("any must never fail: %v", err)
		}
		if err := remap.Any.Validate(v); err != nil {
			t.Fatalf("any validate must never fail: %v", err)
		}
		_ = got
	}
}

func TestTypeRegistry(t *testing.T) {
	ty, err := remap.TypeByName("integer")
	if err != nil || ty == nil {
		t.Fatalf("builtin lookup failed: %v", err)
	}
	_, err = remap.TypeByName("frobnicator")
	if err == nil {
		t.Fatalf("expected lookup failure")
	}
	if got := err.Error(); got != "frobnicator is not a valid type" {
		t.Fatalf("unexpected message: %q", got)
	}

	if err := remap.Register("upper", upperType{}); err != nil {
		t.Fatalf("register: %v", err)
	}
	ty, err = remap.TypeByName("upper")
	if err != nil {
		t.Fatalf("custom lookup: %v", err)
	}
	v, err := ty.Load("abc")
	if err != nil || v != "ABC" {
		t.Fatalf("custom type load: v=%v err=%v", v, err)
	}
}

// upperType is a custom type used to exercise the registry contract.
type upperType struct{}

func (upperType) Load(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, errInvalidUpper
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out), nil
}

func (upperType) Dump(v any) (any, error) { return v, nil }

func (upperType) Validate(v any) error {
	if _, ok := v.(string); !ok {
		return errInvalidUpper
	}
	return nil
}

var errInvalidUpper = errInvalid("invalid upper type")

type errInvalid string

func (e errInvalid) Error() string { return string(e) }
