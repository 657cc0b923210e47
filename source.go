package remap

import (
	"bytes"
	"context"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Source abstracts over polymorphic encoded inputs. A Source decodes to the
// in-memory tree the traversal engine consumes; the engine itself never sees
// raw bytes.
type Source interface {
	Decode() (any, error)
	Name() string
}

// JSONBytes wraps a byte slice as a JSON Source. Numbers decode as
// json.Number so large integers survive coercion.
func JSONBytes(b []byte) Source { return jsonSource{r: bytes.NewReader(b)} }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return jsonSource{r: r} }

type jsonSource struct{ r io.Reader }

func (s jsonSource) Decode() (any, error) {
	dec := json.NewDecoder(s.r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func (jsonSource) Name() string { return "json" }

// YAMLBytes wraps a byte slice as a YAML Source.
func YAMLBytes(b []byte) Source { return yamlSource{r: bytes.NewReader(b)} }

// YAMLReader wraps an io.Reader as a YAML Source.
func YAMLReader(r io.Reader) Source { return yamlSource{r: r} }

type yamlSource struct{ r io.Reader }

func (s yamlSource) Decode() (any, error) {
	dec := yaml.NewDecoder(s.r)
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func (yamlSource) Name() string { return "yaml" }

// LoadFrom decodes the source and loads the resulting tree.
func LoadFrom(ctx context.Context, s *Schema, src Source, opts ...Opt) (any, error) {
	v, err := src.Decode()
	if err != nil {
		return nil, fmt.Errorf("remap: decode %s input: %w", src.Name(), err)
	}
	return Load(ctx, s, v, opts...)
}

// ValidateFrom decodes the source and validates the resulting tree.
func ValidateFrom(ctx context.Context, s *Schema, src Source, opts ...Opt) error {
	v, err := src.Decode()
	if err != nil {
		return fmt.Errorf("remap: decode %s input: %w", src.Name(), err)
	}
	return Validate(ctx, s, v, opts...)
}

// DumpJSON dumps the input and encodes the wire tree as JSON.
func DumpJSON(ctx context.Context, s *Schema, input any, opts ...Opt) ([]byte, error) {
	v, err := Dump(ctx, s, input, opts...)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}
