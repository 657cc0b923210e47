package remap

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Canonical reason strings shared across the engine.
const (
	reasonRequired     = "is required"
	reasonUnknownField = "unknown field"
	reasonInvalidInner = "invalid inner data type"
	reasonInvalidList  = "invalid list type"
	reasonKeyCollision = "is present under both its key and its name"
)

// ErrNotMany signals caller misuse: a list was given as the top-level input
// without the Many option. It is returned directly, never inside an error tree.
var ErrNotMany = errors.New("remap: received a list input, pass Many: true")

// ErrNilSchema is returned when a nil schema is passed to Load/Dump/Validate.
var ErrNilSchema = errors.New("remap: nil schema")

// ErrorTree maps field names to their failures. Values are one of:
// a reason string (leaf failure), a nested ErrorTree (single nested object),
// or IndexedErrors (nested collection, failing indices only).
type ErrorTree map[string]any

// IndexedErrors maps collection indices to element failures. Indices are
// always integers; values follow the same convention as ErrorTree values.
type IndexedErrors map[int]any

// FieldError is one flattened failure with a pointer-style path
// (for example: /addresses/1/number).
type FieldError struct {
	Path   string
	Reason string
}

// Flatten renders the tree as a path-sorted list of leaf failures.
func (e ErrorTree) Flatten() []FieldError {
	var out []FieldError
	flattenNode("", e, &out)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Flatten renders the indexed errors as a path-sorted list of leaf failures.
func (e IndexedErrors) Flatten() []FieldError {
	var out []FieldError
	flattenNode("", e, &out)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func flattenNode(base string, node any, out *[]FieldError) {
	switch t := node.(type) {
	case string:
		*out = append(*out, FieldError{Path: base, Reason: t})
	case ErrorTree:
		for k, v := range t {
			flattenNode(base+"/"+k, v, out)
		}
	case IndexedErrors:
		for i, v := range t {
			flattenNode(base+"/"+strconv.Itoa(i), v, out)
		}
	case error:
		*out = append(*out, FieldError{Path: base, Reason: t.Error()})
	default:
		*out = append(*out, FieldError{Path: base, Reason: fmt.Sprintf("%v", t)})
	}
}

// Error summarizes the first few failures.
func (e ErrorTree) Error() string { return summarize(e.Flatten()) }

// Error summarizes the first few failures.
func (e IndexedErrors) Error() string { return summarize(e.Flatten()) }

func summarize(ff []FieldError) string {
	if len(ff) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := len(ff)
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", ff[i].Reason, ff[i].Path)
	}
	if len(ff) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(ff))
	}
	return b.String()
}

// AsTree extracts an ErrorTree from an error using errors.As internally.
func AsTree(err error) (ErrorTree, bool) {
	if err == nil {
		return nil, false
	}
	var et ErrorTree
	if errors.As(err, &et) {
		return et, true
	}
	return nil, false
}

// AsIndexed extracts IndexedErrors from an error using errors.As internally.
func AsIndexed(err error) (IndexedErrors, bool) {
	if err == nil {
		return nil, false
	}
	var ie IndexedErrors
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
