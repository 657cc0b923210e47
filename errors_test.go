package remap_test

import (
	"fmt"
	"testing"

	remap "github.com/remapd/remap"
)

func TestErrorTree_Flatten(t *testing.T) {
	tree := remap.ErrorTree{
		"age": "invalid integer type",
		"addresses": remap.IndexedErrors{
			1: remap.ErrorTree{"number": "invalid integer type"},
		},
		"profile": remap.ErrorTree{"bio": "is required"},
	}
	ff := tree.Flatten()
	if len(ff) != 3 {
		t.Fatalf("expected 3 leaves, got %d: %v", len(ff), ff)
	}
	// path-sorted
	if ff[0].Path != "/addresses/1/number" || ff[1].Path != "/age" || ff[2].Path != "/profile/bio" {
		t.Fatalf("unexpected order: %v", ff)
	}
	if ff[0].Reason != "invalid integer type" {
		t.Fatalf("unexpected reason: %v", ff[0])
	}
}

func TestErrorTree_ErrorSummary(t *testing.T) {
	tree := remap.ErrorTree{
		"a": "is required",
		"b": "is required",
		"c": "is required",
		"d": "is required",
	}
	s := tree.Error()
	if s == "" {
		t.Fatalf("expected non-empty summary")
	}
	if want := "(total 4)"; len(s) < len(want) || s[len(s)-len(want):] != want {
		t.Fatalf("expected truncation marker, got %q", s)
	}
}

func TestAsTree(t *testing.T) {
	var err error = remap.ErrorTree{"x": "is required"}
	tree, ok := remap.AsTree(err)
	if !ok || tree["x"] != "is required" {
		t.Fatalf("AsTree failed: %v %v", tree, ok)
	}
	wrapped := fmt.Errorf("loading config: %w", err)
	if _, ok := remap.AsTree(wrapped); !ok {
		t.Fatalf("AsTree must unwrap")
	}
	if _, ok := remap.AsTree(nil); ok {
		t.Fatalf("nil must not match")
	}
	if _, ok := remap.AsIndexed(err); ok {
		t.Fatalf("ErrorTree must not match AsIndexed")
	}
}
