package remap

import (
	"fmt"
	"sync"
)

// Type is the coercion contract every field type satisfies, built-in or custom.
//
// Load coerces an external-shaped value into the internal representation and
// must accept the internal representation itself as a passthrough. Dump goes
// the other way and assumes its input already passed Load/Validate, so it
// performs lighter-weight stringification. Validate is a strict membership
// check with no coercion; it is also used to check default values at
// schema-build time.
type Type interface {
	Load(v any) (any, error)
	Dump(v any) (any, error)
	Validate(v any) error
}

// Built-in type tags.
const (
	TagString        = "string"
	TagAtom          = "atom"
	TagInteger       = "integer"
	TagFloat         = "float"
	TagBoolean       = "boolean"
	TagMap           = "map"
	TagArray         = "array"
	TagDate          = "date"
	TagTime          = "time"
	TagDateTime      = "datetime"
	TagNaiveDateTime = "naive_datetime"
	TagAny           = "any"
	TagDecimal       = "decimal"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]Type{
		TagString:        String,
		TagAtom:          Atom,
		TagInteger:       Integer,
		TagFloat:         Float,
		TagBoolean:       Boolean,
		TagMap:           Map,
		TagArray:         Array,
		TagDate:          Date,
		TagTime:          Time,
		TagDateTime:      DateTime,
		TagNaiveDateTime: NaiveDateTime,
		TagAny:           Any,
		TagDecimal:       Decimal,
	}
)

// Register installs a custom type under the given tag, making it addressable
// from Field/FieldSpec declarations. Re-registering a tag replaces it.
func Register(tag string, t Type) error {
	if tag == "" {
		return fmt.Errorf("remap: type tag must not be empty")
	}
	if t == nil {
		return fmt.Errorf("remap: nil type for tag %q", tag)
	}
	registryMu.Lock()
	registry[tag] = t
	registryMu.Unlock()
	return nil
}

// TypeByName resolves a tag to its Type implementation. An unknown tag is a
// schema-construction bug, reported as a hard error.
func TypeByName(tag string) (Type, error) {
	registryMu.RLock()
	t, ok := registry[tag]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s is not a valid type", tag)
	}
	return t, nil
}
