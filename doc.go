// Package remap provides:
//
// - Schema-driven transformation of untrusted decoded trees into typed data (Load)
//   and of internal data back into wire-shaped maps (Dump), plus strict checking (Validate)
// - A shape-preserving error model via ErrorTree/IndexedErrors (field-keyed maps,
//   integer-indexed collections, flattenable to pointer-style paths)
// - A pluggable coercion protocol where built-in and custom types share one Type contract
// - Struct materialization through Bind[T]/LoadInto
// - JSON/YAML sources and a data-driven schema description compiler
//
// Design policy:
// - Keep the public API in the root package; the CLI lives under cmd/remap.
// - The engine performs no I/O and no logging; callers decide how to surface results.
// - Schemas are immutable after Build and safe for concurrent use.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := remap.NewSchema("user").
//		Field("age", remap.TagInteger).Required().
//		Field("first_name", remap.TagString).Key("firstName").
//		MustBuild()
//
//	v, err := remap.Load(ctx, s, input)
//	wire, err := remap.Dump(ctx, s, v)
package remap
