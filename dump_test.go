package remap_test

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	remap "github.com/remapd/remap"
)

func TestDump_KeyRenaming(t *testing.T) {
	s := remap.NewSchema("user").
		Field("name", remap.TagString).Key("first_name").
		Field("age", remap.TagInteger).
		MustBuild()
	v, err := remap.Dump(context.Background(), s, map[string]any{"name": "Ana", "age": int64(30)})
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	want := map[string]any{"first_name": "Ana", "age": int64(30)}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("got %#v, want %#v", v, want)
	}
}

func TestDump_NoRequiredEnforcement(t *testing.T) {
	s := remap.NewSchema("user").
		Field("age", remap.TagInteger).Required().
		MustBuild()
	v, err := remap.Dump(context.Background(), s, map[string]any{})
	if err != nil {
		t.Fatalf("dump must not enforce required: %v", err)
	}
	if len(v.(map[string]any)) != 0 {
		t.Fatalf("unexpected output: %#v", v)
	}
}

func TestDump_NoValidators(t *testing.T) {
	reject := func(ctx context.Context, v any) error { return fmt.Errorf("never valid") }
	s := remap.NewSchema("x").
		Field("age", remap.TagInteger).Validate(reject).
		MustBuild()
	if _, err := remap.Dump(context.Background(), s, map[string]any{"age": int64(1)}); err != nil {
		t.Fatalf("dump must not run validators: %v", err)
	}
}

func TestDump_DumpDefault(t *testing.T) {
	s := remap.NewSchema("x").
		Field("role", remap.TagString).DumpDefault("member").
		MustBuild()
	for name, in := range map[string]map[string]any{
		"absent": {},
		"null":   {"role": nil},
	} {
		v, err := remap.Dump(context.Background(), s, in)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if v.(map[string]any)["role"] != "member" {
			t.Fatalf("%s: default not applied: %#v", name, v)
		}
	}
}

func TestDump_TemporalStringification(t *testing.T) {
	s := remap.NewSchema("x").
		Field("born", remap.TagDate).
		MustBuild()
	loaded, err := remap.Load(context.Background(), s, map[string]any{"born": "2021-05-06"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	v, err := remap.Dump(context.Background(), s, loaded)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if v.(map[string]any)["born"] != "2021-05-06" {
		t.Fatalf("unexpected dump value: %#v", v)
	}
}

func TestDump_NestedRecursion(t *testing.T) {
	inner := remap.NewSchema("address").
		Field("city", remap.TagString).
		Field("number", remap.TagInteger).Key("no").
		MustBuild()
	s := remap.NewSchema("user").
		HasMany("addresses", inner).
		MustBuild()
	v, err := remap.Dump(context.Background(), s, map[string]any{
		"addresses": []any{
			map[string]any{"city": "Lisbon", "number": int64(12)},
		},
	})
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	want := map[string]any{
		"addresses": []any{
			map[string]any{"city": "Lisbon", "no": int64(12)},
		},
	}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("got %#v, want %#v", v, want)
	}
}

func TestDump_ErrorsKeyedByName(t *testing.T) {
	s := remap.NewSchema("x").
		Field("born", remap.TagDate).Key("birth_date").
		MustBuild()
	_, err := remap.Dump(context.Background(), s, map[string]any{"born": 12345})
	tree, ok := remap.AsTree(err)
	if !ok || tree["born"] != "invalid date type" {
		t.Fatalf("unexpected: %v", err)
	}
}

func TestDump_Exclusions(t *testing.T) {
	inner := remap.NewSchema("address").
		Field("city", remap.TagString).
		Field("street", remap.TagString).
		MustBuild()
	s := remap.NewSchema("user").
		Field("age", remap.TagInteger).
		HasOne("address", inner).
		MustBuild()
	v, err := remap.Dump(context.Background(), s, map[string]any{
		"age":     int64(1),
		"address": map[string]any{"city": "X", "street": "Y"},
	}, remap.Opt{Exclude: []remap.Exclusion{
		remap.Skip("age"),
		remap.SkipIn("address", remap.Skip("street")),
	}})
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	m := v.(map[string]any)
	if _, ok := m["age"]; ok {
		t.Fatalf("excluded field present: %#v", m)
	}
	addr := m["address"].(map[string]any)
	if _, ok := addr["street"]; ok {
		t.Fatalf("nested exclusion ignored: %#v", addr)
	}
}

func TestDump_OnDumpHook(t *testing.T) {
	s := remap.NewSchema("x").
		Field("name", remap.TagString).OnDump(func(ctx context.Context, v any, in map[string]any) (any, error) {
			return fmt.Sprintf("%v!", v), nil
		}).
		MustBuild()
	v, err := remap.Dump(context.Background(), s, map[string]any{"name": "Ana"})
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if v.(map[string]any)["name"] != "Ana!" {
		t.Fatalf("hook not applied: %#v", v)
	}
}

func TestDump_ManyTopLevel(t *testing.T) {
	s := remap.NewSchema("user").
		Field("age", remap.TagInteger).
		MustBuild()
	v, err := remap.Dump(context.Background(), s, []any{
		map[string]any{"age": int64(1)},
		map[string]any{"age": int64(2)},
	}, remap.Opt{Many: true})
	if err != nil {
		t.Fatalf("dump many: %v", err)
	}
	if list := v.([]any); len(list) != 2 || list[1].(map[string]any)["age"] != int64(2) {
		t.Fatalf("unexpected: %#v", v)
	}

	if _, err := remap.Dump(context.Background(), s, []any{}); err != remap.ErrNotMany {
		t.Fatalf("expected ErrNotMany, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	inner := remap.NewSchema("address").
		Field("city", remap.TagString).
		Field("number", remap.TagInteger).
		MustBuild()
	s := remap.NewSchema("user").
		Field("name", remap.TagString).Key("first_name").
		Field("age", remap.TagInteger).
		Field("born", remap.TagDate).
		HasMany("addresses", inner).
		MustBuild()

	wire := map[string]any{
		"first_name": "Ana",
		"age":        "32",
		"born":       "1990-01-02",
		"addresses": []any{
			map[string]any{"city": "Lisbon", "number": 12},
		},
	}
	loaded, err := remap.Load(context.Background(), s, wire)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	dumped, err := remap.Dump(context.Background(), s, loaded)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	reloaded, err := remap.Load(context.Background(), s, dumped)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(loaded, reloaded) {
		t.Fatalf("round trip diverged:\n  first  %#v\n  second %#v", loaded, reloaded)
	}
}
