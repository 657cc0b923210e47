package remap

// UnknownPolicy controls how top-level input keys absent from the schema are
// handled on load.
type UnknownPolicy int

const (
	UnknownStrip UnknownPolicy = iota // Drop unknown keys silently (default).
	UnknownError                      // Report each unknown key in the error tree.
)

// Opt bundles traversal options. Pass at most one; when several are given the
// last wins.
type Opt struct {
	Unknown     UnknownPolicy
	Exclude     []Exclusion
	IgnoreNil   bool // Treat present-but-null values as absent.
	IgnoreEmpty bool // Treat empty strings as absent.
	Many        bool // Accept a list as the top-level input.
}

func pickOpt(opts []Opt) Opt {
	if len(opts) > 0 {
		return opts[len(opts)-1]
	}
	return Opt{}
}

// Exclusion declares a field to skip. A nil Nested list excludes the field
// entirely; a non-nil Nested list keeps the field and applies the sublist
// inside its nested schema.
type Exclusion struct {
	Name   string
	Nested []Exclusion
}

// Skip excludes a field entirely.
func Skip(name string) Exclusion { return Exclusion{Name: name} }

// SkipIn keeps the named field but excludes the given sublist within its
// nested schema.
func SkipIn(name string, nested ...Exclusion) Exclusion {
	if nested == nil {
		nested = []Exclusion{}
	}
	return Exclusion{Name: name, Nested: nested}
}

type exclusionDecision int

const (
	includeField exclusionDecision = iota
	excludeField
	recurseField
)

// resolveExclusion decides a field's fate against the exclusion list. A bare
// entry wins over a partial one when the name appears in both forms.
func resolveExclusion(list []Exclusion, name string) (exclusionDecision, []Exclusion) {
	dec := includeField
	var sub []Exclusion
	for _, ex := range list {
		if ex.Name != name {
			continue
		}
		if ex.Nested == nil {
			return excludeField, nil
		}
		dec = recurseField
		sub = ex.Nested
	}
	return dec, sub
}
